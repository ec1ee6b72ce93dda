package api

import (
	"bytes"
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"go.uber.org/zap"

	"github.com/lokvaani/commentengine/internal/analysis"
	"github.com/lokvaani/commentengine/internal/cache"
	"github.com/lokvaani/commentengine/internal/db"
	"github.com/lokvaani/commentengine/internal/generator"
	"github.com/lokvaani/commentengine/pkg/logging"
)

// GeneratorRouter serves the comment generation API
type GeneratorRouter struct {
	gen    *generator.Generator
	logger *zap.Logger
}

// NewGeneratorRouter creates a new generation API router
func NewGeneratorRouter(gen *generator.Generator) *GeneratorRouter {
	return &GeneratorRouter{
		gen:    gen,
		logger: logging.WithComponent("generator-api"),
	}
}

// SetupRoutes sets up all generation routes
func (r *GeneratorRouter) SetupRoutes(engine *gin.Engine) {
	engine.GET("/active", r.activeHandler)
	engine.GET("/generate", r.generateHandler)
	engine.POST("/generate", r.generateHandler)
	engine.GET("/posts", r.postsHandler)
	engine.GET("/companies", r.companiesHandler)
	engine.GET("/health", r.healthHandler)
	engine.GET("/.well-known/healthcheck.json", r.healthHandler)
}

func (r *GeneratorRouter) activeHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"active": true})
}

// generateHandler accepts the ids as query parameters or as an optional
// JSON body; an empty body picks both at random
func (r *GeneratorRouter) generateHandler(c *gin.Context) {
	req := generator.Request{
		PostID:    c.Query("post_id"),
		CompanyID: c.Query("company_id"),
	}
	if c.Request.Method == http.MethodPost {
		body, err := c.GetRawData()
		if err != nil {
			respondError(c, NewError(http.StatusBadRequest, "failed to read request body"))
			return
		}
		if len(bytes.TrimSpace(body)) > 0 {
			if err := binding.JSON.BindBody(body, &req); err != nil {
				respondError(c, NewError(http.StatusBadRequest, "invalid JSON body: "+err.Error()))
				return
			}
		}
	}

	resp, err := r.gen.Generate(c.Request.Context(), req)
	switch {
	case errors.Is(err, generator.ErrPostNotFound):
		c.JSON(http.StatusOK, gin.H{"error": "No post found"})
	case errors.Is(err, generator.ErrCompanyNotFound):
		c.JSON(http.StatusOK, gin.H{"error": "No company found"})
	case err != nil:
		r.logger.Error("Comment generation failed", zap.Error(err))
		respondError(c, err)
	default:
		c.JSON(http.StatusOK, resp)
	}
}

func (r *GeneratorRouter) postsHandler(c *gin.Context) {
	l := r.gen.Posts()
	c.JSON(http.StatusOK, gin.H{"posts": l.Count, "list": l.List})
}

func (r *GeneratorRouter) companiesHandler(c *gin.Context) {
	l := r.gen.Companies()
	c.JSON(http.StatusOK, gin.H{"companies": l.Count, "list": l.List})
}

func (r *GeneratorRouter) healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "OK",
		"service": "comment-generator",
	})
}

// HealthChecker reports the health of an optional backend
type HealthChecker interface {
	Health(ctx context.Context) error
}

// AnalyzerRouter serves the comment analysis API
type AnalyzerRouter struct {
	svc      *analysis.Service
	backends map[string]HealthChecker
	logger   *zap.Logger
}

// NewAnalyzerRouter creates a new analysis API router. backends are
// reported by name on /health.
func NewAnalyzerRouter(svc *analysis.Service, backends map[string]HealthChecker) *AnalyzerRouter {
	return &AnalyzerRouter{
		svc:      svc,
		backends: backends,
		logger:   logging.WithComponent("analyzer-api"),
	}
}

// SetupRoutes sets up all analysis routes
func (r *AnalyzerRouter) SetupRoutes(engine *gin.Engine) {
	engine.GET("/active", r.activeHandler)
	engine.POST("/analyze", r.analyzeHandler)
	engine.GET("/stats", r.statsHandler)
	engine.GET("/health", r.healthHandler)
	engine.GET("/.well-known/healthcheck.json", r.healthHandler)
}

func (r *AnalyzerRouter) activeHandler(c *gin.Context) {
	c.String(http.StatusOK, "active")
}

type analyzeRequest struct {
	Comment string `json:"comment"`
	// Refresh skips stored results and recomputes
	Refresh bool `json:"refresh"`
}

func (r *AnalyzerRouter) analyzeHandler(c *gin.Context) {
	var req analyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, NewError(http.StatusBadRequest, "invalid JSON body: "+err.Error()))
		return
	}

	analyze := r.svc.Analyze
	if req.Refresh {
		analyze = r.svc.Refresh
	}
	resp, err := analyze(c.Request.Context(), req.Comment)
	if err != nil {
		if errors.Is(err, analysis.ErrEmptyComment) {
			respondError(c, NewError(http.StatusBadRequest, "No comment provided"))
			return
		}
		r.logger.Error("Comment analysis failed", zap.Error(err))
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (r *AnalyzerRouter) statsHandler(c *gin.Context) {
	counts, err := r.svc.LanguageCounts(c.Request.Context())
	if err != nil {
		if errors.Is(err, analysis.ErrStatsUnavailable) {
			respondError(c, NewError(http.StatusServiceUnavailable, err.Error()))
			return
		}
		r.logger.Error("Loading analysis statistics failed", zap.Error(err))
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"analyzed": counts,
	})
}

// healthHandler is always 200; a failing optional backend degrades the
// reported status
func (r *AnalyzerRouter) healthHandler(c *gin.Context) {
	status := "OK"
	backends := make(gin.H, len(r.backends))
	for name, hc := range r.backends {
		switch err := hc.Health(c.Request.Context()); {
		case err == nil:
			backends[name] = "ok"
		case isDisabled(err):
			backends[name] = "disabled"
		default:
			backends[name] = "error"
			status = "DEGRADED"
			r.logger.Warn("Backend unhealthy", zap.String("backend", name), zap.Error(err))
		}
	}
	c.JSON(http.StatusOK, gin.H{
		"status":   status,
		"service":  "comment-analyzer",
		"backends": backends,
	})
}

func isDisabled(err error) bool {
	return errors.Is(err, cache.ErrCacheDisabled) || errors.Is(err, db.ErrDisabled)
}
