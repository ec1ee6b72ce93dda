package translate

import (
	"context"
	"fmt"
	"html"
	"time"

	"cloud.google.com/go/translate"
	"golang.org/x/text/language"
	"google.golang.org/api/option"

	"github.com/lokvaani/commentengine/internal/langdetect"
)

// GoogleTranslator calls the Cloud Translation API
type GoogleTranslator struct {
	client  *translate.Client
	timeout time.Duration
}

// NewGoogleTranslator creates a client authenticated with apiKey. An empty
// key falls back to application default credentials.
func NewGoogleTranslator(ctx context.Context, apiKey string, timeout time.Duration) (*GoogleTranslator, error) {
	var opts []option.ClientOption
	if apiKey != "" {
		opts = append(opts, option.WithAPIKey(apiKey))
	}
	client, err := translate.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create translation client: %w", err)
	}
	return &GoogleTranslator{client: client, timeout: timeout}, nil
}

// Translate implements Translator. Hindi is sent with an explicit source;
// Hinglish is left to provider auto-detection.
func (g *GoogleTranslator) Translate(ctx context.Context, text string, source langdetect.Language) (string, error) {
	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	opts := &translate.Options{Format: translate.Text}
	if source == langdetect.Hindi {
		opts.Source = language.Hindi
	}
	resp, err := g.client.Translate(ctx, []string{text}, language.English, opts)
	if err != nil {
		return "", fmt.Errorf("cloud translate: %w", err)
	}
	if len(resp) == 0 || resp[0].Text == "" {
		return "", ErrEmptyTranslation
	}
	return html.UnescapeString(resp[0].Text), nil
}

// Close releases the client
func (g *GoogleTranslator) Close() error {
	return g.client.Close()
}
