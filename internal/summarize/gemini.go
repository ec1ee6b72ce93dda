package summarize

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"google.golang.org/genai"

	"github.com/lokvaani/commentengine/pkg/telemetry"
)

// DefaultModel is used when no model is configured
const DefaultModel = "gemini-2.5-flash-lite"

// ErrNoCandidate is returned when the model produced no text
var ErrNoCandidate = errors.New("model returned no candidate")

const promptTemplate = `Summarize the following public consultation comment in at most %d words.
Keep the commenter's position and any concrete suggestion. Reply with the summary text only.

Comment:
%s`

// Gemini summarizes with a Gemini model
type Gemini struct {
	client   *genai.Client
	model    string
	maxWords int
	timeout  time.Duration
}

// NewGemini creates a Gemini summarizer
func NewGemini(ctx context.Context, apiKey, model string, maxWords int, timeout time.Duration) (*Gemini, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("summary api key is required")
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}
	if model == "" {
		model = DefaultModel
	}
	if maxWords <= 0 {
		maxWords = DefaultMaxWords
	}
	return &Gemini{client: client, model: model, maxWords: maxWords, timeout: timeout}, nil
}

// Summarize implements Summarizer
func (g *Gemini) Summarize(ctx context.Context, text string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", ErrEmptyText
	}
	ctx, span := telemetry.StartSpan(ctx, "summarize.gemini")
	defer span.End()
	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	prompt := fmt.Sprintf(promptTemplate, g.maxWords, text)
	result, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), nil)
	if err != nil {
		return "", fmt.Errorf("gemini request failed: %w", err)
	}
	if result == nil || len(result.Candidates) == 0 || result.Candidates[0].Content == nil ||
		len(result.Candidates[0].Content.Parts) == 0 {
		return "", ErrNoCandidate
	}
	summary := strings.TrimSpace(result.Candidates[0].Content.Parts[0].Text)
	if summary == "" {
		return "", ErrNoCandidate
	}
	return summary, nil
}
