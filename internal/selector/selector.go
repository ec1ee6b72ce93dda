// Package selector picks the comment served for a post and company,
// cascading from the post's own comments to cross-post and synthetic
// fallbacks.
package selector

import (
	"context"
	"errors"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/lokvaani/commentengine/internal/models"
	"github.com/lokvaani/commentengine/internal/personalize"
	"github.com/lokvaani/commentengine/internal/pool"
	"github.com/lokvaani/commentengine/internal/random"
	"github.com/lokvaani/commentengine/internal/rotation"
	"github.com/lokvaani/commentengine/pkg/logging"
	"github.com/lokvaani/commentengine/pkg/telemetry"
)

// Source tags reported with every selected comment
const (
	SourceLongRotated = "existing_dataset_long_rotated"
	SourceExpanded    = "existing_dataset_expanded"
	SourceSamePost    = "fallback_same_post"
	SourceCrossPost   = "fallback_cross_post"
	SourceSynthetic   = "synthetic_template"
)

// ErrEmptyPool means the cascade ended without a comment. The synthetic
// stage always produces text, so this indicates a broken template table.
var ErrEmptyPool = errors.New("no comment available for selection")

// Result is a selected and post-processed comment
type Result struct {
	Text         string
	Source       string
	OriginPostID string
}

// Options configures the cascade
type Options struct {
	// RotateFallbacks serves cross-post fallbacks through the sequential
	// rotation cursor instead of a uniform random draw
	RotateFallbacks bool
}

// Selector runs the fallback cascade
type Selector struct {
	pool         *pool.Pool
	store        *rotation.Store
	personalizer *personalize.Personalizer
	rng          random.Source
	opts         Options
	logger       *zap.Logger

	// synthesize is swapped in tests to reach the empty-pool path
	synthesize func(models.Post, models.Company, random.Source) string
}

// New creates a Selector. rng must be safe for concurrent use when the
// selector is shared between requests.
func New(p *pool.Pool, store *rotation.Store, personalizer *personalize.Personalizer, rng random.Source, opts Options) *Selector {
	return &Selector{
		pool:         p,
		store:        store,
		personalizer: personalizer,
		rng:          rng,
		opts:         opts,
		logger:       logging.WithComponent("selector"),
		synthesize:   Synthesize,
	}
}

// Select returns the comment for post voiced for company
func (s *Selector) Select(ctx context.Context, post models.Post, company models.Company) (Result, error) {
	_, span := telemetry.StartSpan(ctx, "selector.Select")
	defer span.End()

	res, ok := s.fromDataset(post, company)
	if !ok {
		res, ok = s.fromFallbacks(post)
	}
	if !ok {
		res = Result{Text: s.synthesize(post, company, s.rng), Source: SourceSynthetic}
	}
	if res.Text == "" {
		s.logger.Error("Selection cascade produced no comment",
			zap.String("post_id", post.PostID),
			zap.String("category", company.Category.String()))
		return Result{}, ErrEmptyPool
	}

	if res.Source != SourceLongRotated && res.Source != SourceExpanded {
		res.Text = s.personalizer.Personalize(res.Text, company.Category, s.rng)
	}
	res.Text = s.personalizer.EnsureMinimumWords(res.Text, company.Category, s.rng)

	span.SetAttributes(
		attribute.String("post_id", post.PostID),
		attribute.String("source", res.Source),
	)
	s.logger.Debug("Comment selected",
		zap.String("post_id", post.PostID),
		zap.String("source", res.Source),
		zap.String("origin_post_id", res.OriginPostID))
	return res, nil
}

// fromDataset serves the post's own long comments, then its short ones,
// through the rotation store
func (s *Selector) fromDataset(post models.Post, company models.Company) (Result, bool) {
	for _, ct := range []pool.CommentType{pool.TypeLong, pool.TypeShort} {
		eligible := s.pool.Eligible(post.PostID, ct)
		if len(eligible) == 0 {
			continue
		}
		key := rotation.Key{PostID: post.PostID, Type: string(ct)}
		idx, ok := s.store.Select(key, len(eligible), s.rng)
		if !ok {
			continue
		}
		text := s.personalizer.Personalize(eligible[idx].CommentText, company.Category, s.rng)
		if ct == pool.TypeLong {
			return Result{Text: text, Source: SourceLongRotated, OriginPostID: post.PostID}, true
		}
		return Result{Text: text, Source: SourceExpanded, OriginPostID: post.PostID}, true
	}
	return Result{}, false
}

func (s *Selector) fromFallbacks(post models.Post) (Result, bool) {
	if same := s.pool.FallbackSamePost(post.PostID); len(same) > 0 {
		r := random.Choice(s.rng, same)
		return Result{Text: r.CommentText, Source: SourceSamePost, OriginPostID: post.PostID}, true
	}

	cross := s.pool.EligibleCrossPost(post.PostID)
	if len(cross) == 0 {
		return Result{}, false
	}
	var pick pool.CrossPostRecord
	if s.opts.RotateFallbacks {
		key := rotation.Key{PostID: post.PostID, Type: string(pool.TypeCrossPost)}
		idx, _ := s.store.SelectSequential(key, len(cross))
		pick = cross[idx]
	} else {
		pick = random.Choice(s.rng, cross)
	}
	return Result{Text: pick.Record.CommentText, Source: SourceCrossPost, OriginPostID: pick.OriginPostID}, true
}
