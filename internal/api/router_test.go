package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/lokvaani/commentengine/internal/analysis"
	"github.com/lokvaani/commentengine/internal/cache"
	"github.com/lokvaani/commentengine/internal/dataset"
	"github.com/lokvaani/commentengine/internal/generator"
	"github.com/lokvaani/commentengine/internal/langdetect"
	"github.com/lokvaani/commentengine/internal/models"
	"github.com/lokvaani/commentengine/internal/personalize"
	"github.com/lokvaani/commentengine/internal/pool"
	"github.com/lokvaani/commentengine/internal/random"
	"github.com/lokvaani/commentengine/internal/rotation"
	"github.com/lokvaani/commentengine/internal/selector"
	"github.com/lokvaani/commentengine/internal/translate"
	"github.com/lokvaani/commentengine/pkg/logging"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newGeneratorEngine(t *testing.T) *gin.Engine {
	t.Helper()
	posts := []models.Post{{PostID: "P1", Title: "Insolvency amendment"}}
	companies := []models.Company{{CompanyID: "10", CompanyName: "Acme", Category: models.CategoryInvestors, State: "Goa"}}
	comments := map[string][]models.CommentRecord{
		"P1": {{PostID: "P1", CommentText: strings.Repeat("the resolution timeline needs review ", 12)}},
	}
	d := dataset.New(posts, companies, comments)
	rng := random.New(7)
	store := rotation.NewStore(15)
	sel := selector.New(
		pool.New(d, pool.DefaultThresholds()),
		store,
		personalize.New(personalize.DefaultPrefixMaxChars, personalize.DefaultMinimumWords),
		rng,
		selector.Options{},
	)
	gen := generator.New(d, sel, rotation.NewCounter(store, 500, true, time.Now()), rng)

	engine := NewEngine(logging.GetLogger())
	NewGeneratorRouter(gen).SetupRoutes(engine)
	return engine
}

func serve(engine *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("invalid JSON %q: %v", rec.Body.String(), err)
	}
	return out
}

func TestGeneratorActive(t *testing.T) {
	rec := serve(newGeneratorEngine(t), http.MethodGet, "/active", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if got := decode(t, rec); got["active"] != true {
		t.Errorf("body = %v", got)
	}
}

func TestGenerate(t *testing.T) {
	engine := newGeneratorEngine(t)
	tests := []struct {
		name      string
		method    string
		path      string
		body      string
		wantCode  int
		wantError string
	}{
		{"random GET", http.MethodGet, "/generate", "", http.StatusOK, ""},
		{"empty POST", http.MethodPost, "/generate", "", http.StatusOK, ""},
		{"explicit POST", http.MethodPost, "/generate", `{"post_id":"P1","company_id":"10"}`, http.StatusOK, ""},
		{"query ids", http.MethodGet, "/generate?post_id=P1&company_id=10", "", http.StatusOK, ""},
		{"unknown post", http.MethodPost, "/generate", `{"post_id":"nope"}`, http.StatusOK, "No post found"},
		{"unknown company", http.MethodPost, "/generate", `{"post_id":"P1","company_id":"99"}`, http.StatusOK, "No company found"},
		{"malformed body", http.MethodPost, "/generate", `{"post_id":`, http.StatusBadRequest, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(engine, tt.method, tt.path, tt.body)
			if rec.Code != tt.wantCode {
				t.Fatalf("status = %d, want %d (%s)", rec.Code, tt.wantCode, rec.Body.String())
			}
			got := decode(t, rec)
			switch {
			case tt.wantCode == http.StatusBadRequest:
				if got["success"] != false || got["error"] == "" {
					t.Errorf("body = %v", got)
				}
			case tt.wantError != "":
				if got["error"] != tt.wantError {
					t.Errorf("error = %v, want %s", got["error"], tt.wantError)
				}
			default:
				if got["success"] != true || got["postId"] != "P1" || got["companyName"] != "Acme" {
					t.Errorf("body = %v", got)
				}
				if wc, _ := got["wordCount"].(float64); wc < 50 {
					t.Errorf("wordCount = %v, want >= 50", got["wordCount"])
				}
			}
		})
	}
}

func TestListings(t *testing.T) {
	engine := newGeneratorEngine(t)

	got := decode(t, serve(engine, http.MethodGet, "/posts", ""))
	if got["posts"] != float64(1) {
		t.Errorf("posts = %v", got)
	}
	got = decode(t, serve(engine, http.MethodGet, "/companies", ""))
	if got["companies"] != float64(1) {
		t.Errorf("companies = %v", got)
	}
	if list, _ := got["list"].([]interface{}); len(list) != 1 || list[0] != "Acme" {
		t.Errorf("list = %v", got["list"])
	}
}

func TestRecovery(t *testing.T) {
	engine := NewEngine(logging.GetLogger())
	engine.GET("/panic", func(*gin.Context) { panic("boom") })

	rec := serve(engine, http.MethodGet, "/panic", "")
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d", rec.Code)
	}
	got := decode(t, rec)
	if got["success"] != false || !strings.Contains(got["error"].(string), "boom") {
		t.Errorf("body = %v", got)
	}
}

func TestRespondError(t *testing.T) {
	engine := NewEngine(logging.GetLogger())
	engine.GET("/api-error", func(c *gin.Context) { respondError(c, NewError(http.StatusTeapot, "short and stout")) })
	engine.GET("/plain-error", func(c *gin.Context) { respondError(c, errors.New("disk full")) })

	rec := serve(engine, http.MethodGet, "/api-error", "")
	if rec.Code != http.StatusTeapot || decode(t, rec)["error"] != "short and stout" {
		t.Errorf("api error: %d %s", rec.Code, rec.Body.String())
	}
	rec = serve(engine, http.MethodGet, "/plain-error", "")
	if rec.Code != http.StatusInternalServerError || decode(t, rec)["error"] != "disk full" {
		t.Errorf("plain error: %d %s", rec.Code, rec.Body.String())
	}
}

type staticHealth struct{ err error }

func (s staticHealth) Health(context.Context) error { return s.err }

func newAnalyzerEngine(backends map[string]HealthChecker) *gin.Engine {
	classifier := langdetect.NewClassifier(nil, langdetect.DefaultThreshold)
	pipeline := translate.NewPipeline(classifier, nil, translate.NewGlossary(), true)
	svc := analysis.New(pipeline, nil, nil)

	engine := NewEngine(logging.GetLogger())
	NewAnalyzerRouter(svc, backends).SetupRoutes(engine)
	return engine
}

func TestAnalyzerActive(t *testing.T) {
	rec := serve(newAnalyzerEngine(nil), http.MethodGet, "/active", "")
	if rec.Code != http.StatusOK || rec.Body.String() != "active" {
		t.Errorf("active: %d %q", rec.Code, rec.Body.String())
	}
}

func TestAnalyze(t *testing.T) {
	engine := newAnalyzerEngine(nil)
	tests := []struct {
		name     string
		body     string
		wantCode int
	}{
		{"english", `{"comment":"I fully support this amendment"}`, http.StatusOK},
		{"refresh", `{"comment":"I fully support this amendment","refresh":true}`, http.StatusOK},
		{"refresh blank", `{"comment":"","refresh":true}`, http.StatusBadRequest},
		{"missing comment", `{}`, http.StatusBadRequest},
		{"blank comment", `{"comment":"   "}`, http.StatusBadRequest},
		{"malformed", `{"comment":`, http.StatusBadRequest},
		{"no body", "", http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(engine, http.MethodPost, "/analyze", tt.body)
			if rec.Code != tt.wantCode {
				t.Fatalf("status = %d, want %d (%s)", rec.Code, tt.wantCode, rec.Body.String())
			}
			got := decode(t, rec)
			if tt.wantCode != http.StatusOK {
				if got["success"] != false {
					t.Errorf("body = %v", got)
				}
				return
			}
			if got["success"] != true || got["language_type"] != "English" || got["sentiment"] != "Positive" {
				t.Errorf("body = %v", got)
			}
		})
	}
}

func TestAnalyzerHealth(t *testing.T) {
	engine := newAnalyzerEngine(map[string]HealthChecker{
		"redis":    staticHealth{err: cache.ErrCacheDisabled},
		"postgres": staticHealth{},
	})
	got := decode(t, serve(engine, http.MethodGet, "/health", ""))
	if got["status"] != "OK" {
		t.Errorf("status = %v", got["status"])
	}
	backends := got["backends"].(map[string]interface{})
	if backends["redis"] != "disabled" || backends["postgres"] != "ok" {
		t.Errorf("backends = %v", backends)
	}

	engine = newAnalyzerEngine(map[string]HealthChecker{"redis": staticHealth{err: errors.New("refused")}})
	if got := decode(t, serve(engine, http.MethodGet, "/health", "")); got["status"] != "DEGRADED" {
		t.Errorf("status = %v", got["status"])
	}
}

type countingStore struct {
	records map[string]*models.AnalyzedComment
}

func (s *countingStore) Create(_ context.Context, rec *models.AnalyzedComment) error {
	s.records[rec.ContentHash] = rec
	return nil
}

func (s *countingStore) GetByHash(_ context.Context, hash string) (*models.AnalyzedComment, error) {
	return s.records[hash], nil
}

func (s *countingStore) CountByLanguage(context.Context) (map[string]int64, error) {
	out := map[string]int64{}
	for _, rec := range s.records {
		if rec.Status == models.StatusAnalyzed {
			out[rec.LanguageType]++
		}
	}
	return out, nil
}

func TestAnalyzerStats(t *testing.T) {
	rec := serve(newAnalyzerEngine(nil), http.MethodGet, "/stats", "")
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("stats without store: %d %s", rec.Code, rec.Body.String())
	}
	if got := decode(t, rec); got["success"] != false {
		t.Errorf("body = %v", got)
	}

	classifier := langdetect.NewClassifier(nil, langdetect.DefaultThreshold)
	pipeline := translate.NewPipeline(classifier, nil, translate.NewGlossary(), true)
	store := &countingStore{records: map[string]*models.AnalyzedComment{}}
	engine := NewEngine(logging.GetLogger())
	NewAnalyzerRouter(analysis.New(pipeline, nil, nil, analysis.WithStore(store)), nil).SetupRoutes(engine)

	for _, body := range []string{
		`{"comment":"I fully support this amendment"}`,
		`{"comment":"The penalty clause is far too harsh"}`,
		`{"comment":"यह संशोधन अच्छा है"}`,
	} {
		if rec := serve(engine, http.MethodPost, "/analyze", body); rec.Code != http.StatusOK {
			t.Fatalf("analyze %s: %d", body, rec.Code)
		}
	}

	rec = serve(engine, http.MethodGet, "/stats", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("stats: %d %s", rec.Code, rec.Body.String())
	}
	got := decode(t, rec)
	analyzed, ok := got["analyzed"].(map[string]interface{})
	if !ok || analyzed["en"] != float64(2) || analyzed["hi"] != float64(1) {
		t.Errorf("body = %v", got)
	}
}
