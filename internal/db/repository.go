package db

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/lokvaani/commentengine/internal/models"
)

// ErrDisabled is returned when persistence is not configured
var ErrDisabled = errors.New("database is disabled")

// AnalysisRepository provides analyzed comment database operations
type AnalysisRepository struct {
	db *gorm.DB
}

// NewAnalysisRepository creates a new repository. A nil d yields a
// repository whose methods return ErrDisabled.
func NewAnalysisRepository(d *DB) *AnalysisRepository {
	if d == nil {
		return &AnalysisRepository{}
	}
	return &AnalysisRepository{db: d.DB}
}

// upsertColumns are rewritten when a content hash is analyzed again
var upsertColumns = []string{
	"original", "translated", "language_type", "sentiment", "sentiment_score", "score",
	"tone", "tone_confidence", "summary", "status", "processing_error", "created_at",
}

// Create stores a result. A stored ANALYZED row is only replaced by another
// ANALYZED result; a FAILED row is replaced by anything.
func (r *AnalysisRepository) Create(ctx context.Context, rec *models.AnalyzedComment) error {
	if r == nil || r.db == nil {
		return ErrDisabled
	}
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "content_hash"}},
			DoUpdates: clause.AssignmentColumns(upsertColumns),
			Where: clause.Where{Exprs: []clause.Expression{
				gorm.Expr("analyzed_comments.status <> ? OR excluded.status = ?", models.StatusAnalyzed, models.StatusAnalyzed),
			}},
		}).
		Create(rec).Error
	if err != nil {
		return fmt.Errorf("failed to store analysis %s: %w", rec.ContentHash, err)
	}
	return nil
}

// GetByHash retrieves a result by content hash; nil when absent
func (r *AnalysisRepository) GetByHash(ctx context.Context, hash string) (*models.AnalyzedComment, error) {
	if r == nil || r.db == nil {
		return nil, ErrDisabled
	}
	var rec models.AnalyzedComment
	if err := r.db.WithContext(ctx).Where("content_hash = ?", hash).First(&rec).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rec, nil
}

// CountByLanguage returns the number of analyzed comments per language type
func (r *AnalysisRepository) CountByLanguage(ctx context.Context) (map[string]int64, error) {
	if r == nil || r.db == nil {
		return nil, ErrDisabled
	}
	var rows []struct {
		LanguageType string
		Count        int64
	}
	err := r.db.WithContext(ctx).
		Model(&models.AnalyzedComment{}).
		Select("language_type, count(*) as count").
		Where("status = ?", models.StatusAnalyzed).
		Group("language_type").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make(map[string]int64, len(rows))
	for _, row := range rows {
		out[row.LanguageType] = row.Count
	}
	return out, nil
}
