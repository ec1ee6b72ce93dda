package langdetect

import (
	"context"
	"errors"
	"fmt"

	"github.com/abadojack/whatlanggo"
)

// ErrUnreliable is returned when the detector is not confident
var ErrUnreliable = errors.New("language detection unreliable")

// WhatlangDetector identifies languages with trigram statistics
type WhatlangDetector struct {
	options whatlanggo.Options
}

// NewWhatlangDetector creates a detector limited to English, Hindi and
// Urdu. whatlanggo picks candidates by script first, so Latin-script text
// can only come back as "en"; Romanized Hindi that misses the
// function-word list is classified English here. In practice the detector
// decides Arabic-script Urdu, which Classify treats as Hinglish, and
// unreliable results send Classify to its vocabulary pass.
func NewWhatlangDetector() *WhatlangDetector {
	return &WhatlangDetector{
		options: whatlanggo.Options{
			Whitelist: map[whatlanggo.Lang]bool{
				whatlanggo.Eng: true,
				whatlanggo.Hin: true,
				whatlanggo.Urd: true,
			},
		},
	}
}

// Detect implements Detector
func (d *WhatlangDetector) Detect(_ context.Context, text string) (string, error) {
	info := whatlanggo.DetectWithOptions(text, d.options)
	if info.Lang == -1 {
		return "", fmt.Errorf("no language detected: %w", ErrUnreliable)
	}
	if !info.IsReliable() {
		return "", fmt.Errorf("%s with confidence %.2f: %w", info.Lang.Iso6391(), info.Confidence, ErrUnreliable)
	}
	return info.Lang.Iso6391(), nil
}
