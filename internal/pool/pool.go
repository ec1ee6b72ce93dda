// Package pool filters the raw comment corpus into per-post eligible
// candidate lists.
package pool

import (
	"strings"
	"unicode/utf8"

	"github.com/lokvaani/commentengine/internal/dataset"
	"github.com/lokvaani/commentengine/internal/models"
	"github.com/lokvaani/commentengine/pkg/config"
)

// CommentType names an eligibility class and a rotation bucket
type CommentType string

// Comment classes
const (
	TypeLong      CommentType = "long"
	TypeShort     CommentType = "short"
	TypeCrossPost CommentType = "cross_post"
)

// Placeholder values left in exported datasets in place of real text
var sentinels = map[string]struct{}{
	"actual_comment":  {},
	"actual_comments": {},
}

// Thresholds controls eligibility
type Thresholds struct {
	LongMinWords      int
	ShortMinChars     int
	CrossPostMinWords int
	FallbackMinWords  int
}

// ThresholdsFromConfig maps the configuration section
func ThresholdsFromConfig(cfg config.ThresholdConfig) Thresholds {
	return Thresholds{
		LongMinWords:      cfg.LongMinWords,
		ShortMinChars:     cfg.ShortMinChars,
		CrossPostMinWords: cfg.CrossPostMinWords,
		FallbackMinWords:  cfg.FallbackMinWords,
	}
}

// DefaultThresholds returns the production thresholds
func DefaultThresholds() Thresholds {
	return Thresholds{
		LongMinWords:      50,
		ShortMinChars:     10,
		CrossPostMinWords: 35,
		FallbackMinWords:  30,
	}
}

// CrossPostRecord is an eligible comment from another post
type CrossPostRecord struct {
	Record       models.CommentRecord
	OriginPostID string
}

// Pool computes eligible candidate lists. Results are recomputed on every
// call; ordering follows the dataset so indices stay stable across calls.
type Pool struct {
	data       *dataset.Dataset
	thresholds Thresholds
}

// New creates a pool over data
func New(data *dataset.Dataset, thresholds Thresholds) *Pool {
	return &Pool{data: data, thresholds: thresholds}
}

// WordCount counts whitespace-delimited words
func WordCount(text string) int {
	return len(strings.Fields(text))
}

func usable(text string) bool {
	if text == "" {
		return false
	}
	_, sentinel := sentinels[text]
	return !sentinel
}

func (p *Pool) matches(text string, commentType CommentType) bool {
	if !usable(text) {
		return false
	}
	switch commentType {
	case TypeLong:
		return WordCount(text) >= p.thresholds.LongMinWords
	case TypeShort:
		return utf8.RuneCountInString(strings.TrimSpace(text)) > p.thresholds.ShortMinChars
	default:
		return false
	}
}

// Eligible returns the deduplicated long or short candidates of a post.
// The first occurrence of a text wins.
func (p *Pool) Eligible(postID string, commentType CommentType) []models.CommentRecord {
	records := p.data.Comments(postID)
	seen := make(map[string]struct{}, len(records))
	var out []models.CommentRecord
	for _, r := range records {
		if !p.matches(r.CommentText, commentType) {
			continue
		}
		if _, dup := seen[r.CommentText]; dup {
			continue
		}
		seen[r.CommentText] = struct{}{}
		out = append(out, r)
	}
	return out
}

// EligibleCrossPost returns candidates from every post except
// excludePostID, in post order then record order. Cross-post lists are
// not deduplicated.
func (p *Pool) EligibleCrossPost(excludePostID string) []CrossPostRecord {
	var out []CrossPostRecord
	for _, postID := range p.data.CommentPosts() {
		if postID == excludePostID {
			continue
		}
		for _, r := range p.data.Comments(postID) {
			if usable(r.CommentText) && WordCount(r.CommentText) >= p.thresholds.CrossPostMinWords {
				out = append(out, CrossPostRecord{Record: r, OriginPostID: postID})
			}
		}
	}
	return out
}

// FallbackSamePost returns the post's comments meeting the relaxed
// fallback word threshold
func (p *Pool) FallbackSamePost(postID string) []models.CommentRecord {
	var out []models.CommentRecord
	for _, r := range p.data.Comments(postID) {
		if usable(r.CommentText) && WordCount(r.CommentText) >= p.thresholds.FallbackMinWords {
			out = append(out, r)
		}
	}
	return out
}
