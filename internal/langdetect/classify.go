// Package langdetect classifies comment text as English, Hindi or
// Hinglish (Romanized Hindi mixed with English).
package langdetect

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/lokvaani/commentengine/internal/hinglish"
	"github.com/lokvaani/commentengine/pkg/logging"
)

// Language is a classification result
type Language string

// Supported languages
const (
	English  Language = "en"
	Hindi    Language = "hi"
	Hinglish Language = "hinglish"
)

// String returns the language code
func (l Language) String() string {
	return string(l)
}

// NeedsTranslation reports whether text in l is translated before analysis
func (l Language) NeedsTranslation() bool {
	return l == Hindi || l == Hinglish
}

// DefaultThreshold is the default number of function-word hits marking
// text as Hinglish
const DefaultThreshold = 2

// vocabularyThreshold applies to the glossary pass used when the
// statistical detector fails
const vocabularyThreshold = 2

// Detector is a statistical language identifier returning ISO 639-1 codes
type Detector interface {
	Detect(ctx context.Context, text string) (string, error)
}

// Classifier applies the script, lexical and statistical rules in order
type Classifier struct {
	detector  Detector
	threshold int
	logger    *zap.Logger
}

// NewClassifier creates a Classifier. A nil detector skips the
// statistical step and behaves as if detection failed.
func NewClassifier(detector Detector, threshold int) *Classifier {
	if threshold < 1 {
		threshold = DefaultThreshold
	}
	return &Classifier{
		detector:  detector,
		threshold: threshold,
		logger:    logging.WithComponent("langdetect"),
	}
}

// HasDevanagari reports whether text contains a code point in U+0900–U+097F
func HasDevanagari(text string) bool {
	return strings.IndexFunc(text, func(r rune) bool {
		return r >= 0x0900 && r <= 0x097F
	}) >= 0
}

// Classify returns the language of text. Blank text is English.
func (c *Classifier) Classify(ctx context.Context, text string) Language {
	if strings.TrimSpace(text) == "" {
		return English
	}
	if HasDevanagari(text) {
		return Hindi
	}
	if hinglish.FunctionWordHits(text) >= c.threshold {
		return Hinglish
	}

	if c.detector != nil {
		code, err := c.detector.Detect(ctx, text)
		if err == nil {
			if code == "hi" || code == "ur" {
				return Hinglish
			}
			return English
		}
		c.logger.Debug("Language detector failed, using vocabulary", zap.Error(err))
	}

	if hinglish.VocabularyHits(text) >= vocabularyThreshold {
		return Hinglish
	}
	return English
}
