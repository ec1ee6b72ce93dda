// Package summarize condenses analyzed comments into a short summary.
package summarize

import (
	"context"
	"errors"
	"regexp"
	"strings"
)

// Unavailable is returned to clients when no summary could be produced
const Unavailable = "Summary unavailable"

// DefaultMaxWords bounds extractive summaries
const DefaultMaxWords = 40

// ErrEmptyText is returned for blank input
var ErrEmptyText = errors.New("nothing to summarize")

// Summarizer produces a summary of text
type Summarizer interface {
	Summarize(ctx context.Context, text string) (string, error)
}

var sentenceEnd = regexp.MustCompile(`[.!?।]+\s+`)

// Lead is an extractive summarizer that keeps whole leading sentences
// up to MaxWords. A first sentence longer than MaxWords is cut at the limit.
type Lead struct {
	MaxWords int
}

// NewLead creates a Lead summarizer
func NewLead(maxWords int) *Lead {
	if maxWords <= 0 {
		maxWords = DefaultMaxWords
	}
	return &Lead{MaxWords: maxWords}
}

// Summarize implements Summarizer
func (l *Lead) Summarize(_ context.Context, text string) (string, error) {
	text = strings.Join(strings.Fields(text), " ")
	if text == "" {
		return "", ErrEmptyText
	}

	var (
		out   []string
		words int
	)
	for _, sentence := range splitSentences(text) {
		n := len(strings.Fields(sentence))
		if words+n > l.MaxWords {
			if len(out) == 0 {
				fields := strings.Fields(sentence)[:l.MaxWords]
				return strings.Join(fields, " ") + "...", nil
			}
			break
		}
		out = append(out, sentence)
		words += n
	}
	return strings.Join(out, " "), nil
}

func splitSentences(text string) []string {
	var out []string
	last := 0
	for _, loc := range sentenceEnd.FindAllStringIndex(text, -1) {
		out = append(out, strings.TrimSpace(text[last:loc[1]]))
		last = loc[1]
	}
	if rest := strings.TrimSpace(text[last:]); rest != "" {
		out = append(out, rest)
	}
	return out
}

// WithFallback tries primary and falls back to secondary on error or an
// empty result
type WithFallback struct {
	primary   Summarizer
	secondary Summarizer
}

// NewWithFallback chains two summarizers
func NewWithFallback(primary, secondary Summarizer) *WithFallback {
	return &WithFallback{primary: primary, secondary: secondary}
}

// Summarize implements Summarizer
func (f *WithFallback) Summarize(ctx context.Context, text string) (string, error) {
	summary, err := f.primary.Summarize(ctx, text)
	if err == nil && strings.TrimSpace(summary) != "" {
		return summary, nil
	}
	return f.secondary.Summarize(ctx, text)
}
