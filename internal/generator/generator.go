// Package generator orchestrates one comment generation request.
package generator

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/lokvaani/commentengine/internal/dataset"
	"github.com/lokvaani/commentengine/internal/models"
	"github.com/lokvaani/commentengine/internal/pool"
	"github.com/lokvaani/commentengine/internal/random"
	"github.com/lokvaani/commentengine/internal/rotation"
	"github.com/lokvaani/commentengine/internal/selector"
	"github.com/lokvaani/commentengine/internal/weighting"
	"github.com/lokvaani/commentengine/pkg/logging"
	"github.com/lokvaani/commentengine/pkg/telemetry"
)

var (
	// ErrPostNotFound is returned when no post matches the request
	ErrPostNotFound = errors.New("post not found")
	// ErrCompanyNotFound is returned when no company matches the request
	ErrCompanyNotFound = errors.New("company not found")
)

// Timestamps are drawn from calendar year 2022
const (
	timestampMin int64 = 1640995200
	timestampMax int64 = 1672531200
)

// Diagnostic listing sizes
const (
	PostListLimit    = 15
	CompanyListLimit = 20
)

// Request selects the post and company; empty ids pick at random
type Request struct {
	PostID    string `json:"post_id"`
	CompanyID string `json:"company_id"`
}

// Response is a generated comment with its metadata
type Response struct {
	Success     bool              `json:"success"`
	PostID      string            `json:"postId"`
	CompanyID   models.FlexString `json:"companyId"`
	CompanyName string            `json:"companyName"`
	Category    models.Category   `json:"category"`
	Comment     string            `json:"comment"`
	WordCount   int               `json:"wordCount"`
	WeightScore float64           `json:"weightScore"`
	PostTitle   string            `json:"postTitle"`
	State       string            `json:"state"`
	Timestamp   string            `json:"timestamp"`
	Source      string            `json:"source"`
}

// Listing is a truncated id or name listing with the full count
type Listing struct {
	Count int
	List  []string
}

// Generator serves generation requests
type Generator struct {
	data     *dataset.Dataset
	selector *selector.Selector
	counter  *rotation.Counter
	rng      random.Source
	now      func() time.Time
	logger   *zap.Logger
}

// New creates a Generator
func New(data *dataset.Dataset, sel *selector.Selector, counter *rotation.Counter, rng random.Source) *Generator {
	return &Generator{
		data:     data,
		selector: sel,
		counter:  counter,
		rng:      rng,
		now:      time.Now,
		logger:   logging.WithComponent("generator"),
	}
}

// Generate produces one comment
func (g *Generator) Generate(ctx context.Context, req Request) (*Response, error) {
	ctx, span := telemetry.StartSpan(ctx, "generator.Generate")
	defer span.End()

	g.counter.Tick(ctx, g.now())

	post, err := g.resolvePost(req.PostID)
	if err != nil {
		return nil, err
	}
	company, err := g.resolveCompany(req.CompanyID)
	if err != nil {
		return nil, err
	}

	res, err := g.selector.Select(ctx, post, company)
	if err != nil {
		return nil, fmt.Errorf("failed to select comment for post %s: %w", post.PostID, err)
	}
	telemetry.RecordGenerated(ctx, res.Source)

	ts := timestampMin + g.rng.Int64N(timestampMax-timestampMin+1)
	return &Response{
		Success:     true,
		PostID:      post.PostID,
		CompanyID:   company.CompanyID,
		CompanyName: company.CompanyName,
		Category:    company.Category,
		Comment:     res.Text,
		WordCount:   pool.WordCount(res.Text),
		WeightScore: math.Round(weighting.Weight(company.Category)*100) / 100,
		PostTitle:   post.Title,
		State:       company.State,
		Timestamp:   strconv.FormatInt(ts, 10),
		Source:      res.Source,
	}, nil
}

func (g *Generator) resolvePost(id string) (models.Post, error) {
	if id != "" {
		post, ok := g.data.Post(id)
		if !ok {
			g.logger.Debug("Post not found", zap.String("post_id", id))
			return models.Post{}, ErrPostNotFound
		}
		return post, nil
	}
	if len(g.data.Posts) == 0 {
		return models.Post{}, ErrPostNotFound
	}
	return random.Choice(g.rng, g.data.Posts), nil
}

func (g *Generator) resolveCompany(id string) (models.Company, error) {
	if id != "" {
		company, ok := g.data.Company(id)
		if !ok {
			g.logger.Debug("Company not found", zap.String("company_id", id))
			return models.Company{}, ErrCompanyNotFound
		}
		return company, nil
	}
	return weighting.Select(g.data.Companies, g.rng), nil
}

// Posts lists the first post ids
func (g *Generator) Posts() Listing {
	posts := g.data.Posts
	out := Listing{Count: len(posts), List: make([]string, 0, PostListLimit)}
	for i := 0; i < len(posts) && i < PostListLimit; i++ {
		out.List = append(out.List, posts[i].PostID)
	}
	return out
}

// Companies lists the first company names
func (g *Generator) Companies() Listing {
	companies := g.data.Companies
	out := Listing{Count: len(companies), List: make([]string, 0, CompanyListLimit)}
	for i := 0; i < len(companies) && i < CompanyListLimit; i++ {
		out.List = append(out.List, companies[i].CompanyName)
	}
	return out
}
