// Package analysis runs the comment analysis pipeline: language detection,
// translation, sentiment, tone and summary.
package analysis

import (
	"context"
	"errors"
	"math"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/lokvaani/commentengine/internal/cache"
	"github.com/lokvaani/commentengine/internal/db"
	"github.com/lokvaani/commentengine/internal/langdetect"
	"github.com/lokvaani/commentengine/internal/models"
	"github.com/lokvaani/commentengine/internal/sentiment"
	"github.com/lokvaani/commentengine/internal/summarize"
	"github.com/lokvaani/commentengine/internal/translate"
	"github.com/lokvaani/commentengine/pkg/logging"
	"github.com/lokvaani/commentengine/pkg/telemetry"
)

var (
	// ErrEmptyComment is returned for a missing or blank comment
	ErrEmptyComment = errors.New("comment is required")
	// ErrStatsUnavailable is returned when no store is configured
	ErrStatsUnavailable = errors.New("analysis statistics require persistence")
)

const cachePrefix = "analysis:"

// Response is the analysis result returned to clients
type Response struct {
	Success          bool            `json:"success"`
	Original         string          `json:"original"`
	Translated       string          `json:"translated"`
	DetectedLanguage string          `json:"detected_language"`
	LanguageType     string          `json:"language_type"`
	Sentiment        sentiment.Label `json:"sentiment"`
	SentimentScore   float64         `json:"sentimentScore"`
	Summary          string          `json:"summary"`
	Score            float64         `json:"score"`
	Tone             sentiment.Tone  `json:"tone"`
	ToneConfidence   float64         `json:"toneConfidence"`
}

// Translator turns a comment into English
type Translator interface {
	Process(ctx context.Context, text string) translate.Result
}

// Cache stores encoded responses
type Cache interface {
	GetJSON(ctx context.Context, key string, dest interface{}) error
	SetJSON(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// Store persists analyzed comments
type Store interface {
	Create(ctx context.Context, rec *models.AnalyzedComment) error
	GetByHash(ctx context.Context, hash string) (*models.AnalyzedComment, error)
	CountByLanguage(ctx context.Context) (map[string]int64, error)
}

// Service analyzes comments. Cache and Store are optional.
type Service struct {
	translator Translator
	model      sentiment.Classifier
	tone       *sentiment.ToneAnalyzer
	summarizer summarize.Summarizer
	cache      Cache
	store      Store
	logger     *zap.Logger
}

// Option configures a Service
type Option func(*Service)

// WithCache enables result caching
func WithCache(c Cache) Option {
	return func(s *Service) { s.cache = c }
}

// WithStore enables result persistence
func WithStore(st Store) Option {
	return func(s *Service) { s.store = st }
}

// New creates a Service. A nil model falls back to tone-derived sentiment.
func New(translator Translator, model sentiment.Classifier, summarizer summarize.Summarizer, opts ...Option) *Service {
	tone := sentiment.NewToneAnalyzer()
	if model == nil {
		model = sentiment.NewToneClassifier(tone)
	}
	s := &Service{
		translator: translator,
		model:      model,
		tone:       tone,
		summarizer: summarizer,
		logger:     logging.WithComponent("analysis"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Analyze runs the full pipeline on comment, returning a stored result when
// the same text was analyzed before.
func (s *Service) Analyze(ctx context.Context, comment string) (*Response, error) {
	return s.analyze(ctx, comment, false)
}

// Refresh analyzes comment again, ignoring and evicting any stored result
func (s *Service) Refresh(ctx context.Context, comment string) (*Response, error) {
	return s.analyze(ctx, comment, true)
}

func (s *Service) analyze(ctx context.Context, comment string, refresh bool) (*Response, error) {
	comment = strings.TrimSpace(comment)
	if comment == "" {
		return nil, ErrEmptyComment
	}
	ctx, span := telemetry.StartSpan(ctx, "analysis.analyze")
	defer span.End()

	hash := cache.HashKey(comment)
	if refresh {
		s.evict(ctx, hash)
	} else if resp := s.lookup(ctx, hash); resp != nil {
		return resp, nil
	}

	// failed names the collaborators that fell back; such results are
	// served but never cached and stored as FAILED
	var failed []string

	tr := s.translator.Process(ctx, comment)
	if tr.Degraded {
		failed = append(failed, "translation")
	}
	toneResult := s.tone.Analyze(tr.Translated)

	start := time.Now()
	pred, err := s.model.Classify(ctx, tr.Translated)
	telemetry.ObserveCollaborator(ctx, "sentiment", start)
	if err != nil {
		s.logger.Warn("Sentiment model failed, using tone fallback", zap.Error(err))
		telemetry.RecordCollaboratorFailure(ctx, "sentiment")
		pred = sentiment.PredictionFromTone(toneResult)
		failed = append(failed, "sentiment")
	}

	summary := summarize.Unavailable
	if s.summarizer != nil {
		start = time.Now()
		text, err := s.summarizer.Summarize(ctx, tr.Translated)
		telemetry.ObserveCollaborator(ctx, "summary", start)
		if err != nil {
			s.logger.Warn("Summarization failed", zap.Error(err))
			telemetry.RecordCollaboratorFailure(ctx, "summary")
			failed = append(failed, "summary")
		} else {
			summary = text
		}
	}

	resp := &Response{
		Success:          true,
		Original:         tr.Original,
		Translated:       tr.Translated,
		DetectedLanguage: string(tr.Language),
		LanguageType:     LanguageLabel(tr.Language),
		Sentiment:        pred.Label,
		SentimentScore:   round4(pred.Polarity),
		Summary:          summary,
		Score:            round4(pred.Score),
		Tone:             toneResult.Tone,
		ToneConfidence:   toneResult.Confidence,
	}
	telemetry.RecordAnalysis(ctx, string(tr.Language))

	s.remember(ctx, hash, resp, failed)
	return resp, nil
}

// LanguageCounts returns the number of stored analyses per language code
func (s *Service) LanguageCounts(ctx context.Context) (map[string]int64, error) {
	if s.store == nil {
		return nil, ErrStatsUnavailable
	}
	counts, err := s.store.CountByLanguage(ctx)
	if errors.Is(err, db.ErrDisabled) {
		return nil, ErrStatsUnavailable
	}
	return counts, err
}

// lookup returns a previously computed response from the cache or the
// store. Backend errors are logged and treated as a miss.
func (s *Service) lookup(ctx context.Context, hash string) *Response {
	if s.cache != nil {
		var resp Response
		err := s.cache.GetJSON(ctx, cachePrefix+hash, &resp)
		switch {
		case err == nil:
			return &resp
		case errors.Is(err, cache.ErrCacheMiss), errors.Is(err, cache.ErrCacheDisabled):
		default:
			s.logger.Warn("Cache lookup failed", zap.String("hash", hash), zap.Error(err))
		}
	}
	if s.store != nil {
		rec, err := s.store.GetByHash(ctx, hash)
		switch {
		case err != nil && !errors.Is(err, db.ErrDisabled):
			s.logger.Warn("Store lookup failed", zap.String("hash", hash), zap.Error(err))
		case rec != nil && rec.Status == models.StatusAnalyzed:
			return responseFromRecord(rec)
		}
	}
	return nil
}

func (s *Service) evict(ctx context.Context, hash string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, cachePrefix+hash); err != nil && !errors.Is(err, cache.ErrCacheDisabled) {
		s.logger.Warn("Cache eviction failed", zap.String("hash", hash), zap.Error(err))
	}
}

func (s *Service) remember(ctx context.Context, hash string, resp *Response, failed []string) {
	if s.cache != nil && len(failed) == 0 {
		if err := s.cache.SetJSON(ctx, cachePrefix+hash, resp, 0); err != nil && !errors.Is(err, cache.ErrCacheDisabled) {
			s.logger.Warn("Cache write failed", zap.String("hash", hash), zap.Error(err))
		}
	}
	if s.store != nil {
		if err := s.store.Create(ctx, recordFromResponse(hash, resp, failed)); err != nil && !errors.Is(err, db.ErrDisabled) {
			s.logger.Warn("Store write failed", zap.String("hash", hash), zap.Error(err))
		}
	}
}

func recordFromResponse(hash string, resp *Response, failed []string) *models.AnalyzedComment {
	rec := &models.AnalyzedComment{
		ContentHash:    hash,
		Original:       resp.Original,
		Translated:     resp.Translated,
		LanguageType:   resp.DetectedLanguage,
		Sentiment:      string(resp.Sentiment),
		SentimentScore: resp.SentimentScore,
		Score:          resp.Score,
		Tone:           string(resp.Tone),
		ToneConfidence: resp.ToneConfidence,
		Summary:        resp.Summary,
		Status:         models.StatusAnalyzed,
		CreatedAt:      time.Now().UTC(),
	}
	if len(failed) > 0 {
		rec.Status = models.StatusFailed
		rec.ProcessingError = strings.Join(failed, ",")
	}
	return rec
}

func responseFromRecord(rec *models.AnalyzedComment) *Response {
	lang := langdetect.Language(rec.LanguageType)
	return &Response{
		Success:          true,
		Original:         rec.Original,
		Translated:       rec.Translated,
		DetectedLanguage: string(lang),
		LanguageType:     LanguageLabel(lang),
		Sentiment:        sentiment.Label(rec.Sentiment),
		SentimentScore:   rec.SentimentScore,
		Summary:          rec.Summary,
		Score:            rec.Score,
		Tone:             sentiment.Tone(rec.Tone),
		ToneConfidence:   rec.ToneConfidence,
	}
}

// LanguageLabel returns the display name of lang
func LanguageLabel(lang langdetect.Language) string {
	switch lang {
	case langdetect.Hindi:
		return "Hindi"
	case langdetect.Hinglish:
		return "Hinglish"
	default:
		return "English"
	}
}

func round4(v float64) float64 {
	return math.Round(v*10000) / 10000
}
