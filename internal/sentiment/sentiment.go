// Package sentiment classifies comment sentiment with a hosted model and
// scores tone lexically.
package sentiment

import (
	"context"
	"errors"
)

// Label is a sentiment class
type Label string

// Sentiment classes
const (
	Positive Label = "Positive"
	Neutral  Label = "Neutral"
	Negative Label = "Negative"
)

// String returns the label
func (l Label) String() string {
	return string(l)
}

// ErrNoPrediction is returned when a model answers without a usable label
var ErrNoPrediction = errors.New("model returned no prediction")

// Prediction is a sentiment classification
type Prediction struct {
	Label Label
	// Score is the confidence of Label in [0, 1]
	Score float64
	// Polarity is P(positive) - P(negative) in [-1, 1]
	Polarity float64
}

// Classifier predicts the sentiment of English text
type Classifier interface {
	Classify(ctx context.Context, text string) (Prediction, error)
}
