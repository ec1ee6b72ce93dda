package sentiment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/lokvaani/commentengine/pkg/logging"
	"github.com/lokvaani/commentengine/pkg/telemetry"
)

// Output labels of cardiffnlp/twitter-roberta-base-sentiment
var modelLabels = map[string]Label{
	"LABEL_0":  Negative,
	"LABEL_1":  Neutral,
	"LABEL_2":  Positive,
	"negative": Negative,
	"neutral":  Neutral,
	"positive": Positive,
}

// HuggingFace calls a hosted text-classification model
type HuggingFace struct {
	url      string
	token    string
	maxChars int
	client   *http.Client
	logger   *zap.Logger
}

// NewHuggingFace creates a client for the inference endpoint at url
func NewHuggingFace(url, token string, timeout time.Duration, maxChars int) *HuggingFace {
	return &HuggingFace{
		url:      url,
		token:    token,
		maxChars: maxChars,
		client:   &http.Client{Timeout: timeout},
		logger:   logging.WithComponent("sentiment"),
	}
}

type labelScore struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

// Classify implements Classifier
func (h *HuggingFace) Classify(ctx context.Context, text string) (Prediction, error) {
	ctx, span := telemetry.StartSpan(ctx, "sentiment.huggingface")
	defer span.End()

	body, err := json.Marshal(map[string]interface{}{
		"inputs":  truncate(text, h.maxChars),
		"options": map[string]bool{"wait_for_model": true},
	})
	if err != nil {
		return Prediction{}, fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, h.url, bytes.NewReader(body))
	if err != nil {
		return Prediction{}, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if h.token != "" {
		req.Header.Set("Authorization", "Bearer "+h.token)
	}

	resp, err := h.client.Do(req)
	if err != nil {
		return Prediction{}, fmt.Errorf("sentiment request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return Prediction{}, fmt.Errorf("failed to read sentiment response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return Prediction{}, fmt.Errorf("sentiment model returned %d: %s", resp.StatusCode, truncate(string(data), 200))
	}

	scores, err := decodeScores(data)
	if err != nil {
		return Prediction{}, err
	}
	return predictionFromScores(scores)
}

// The endpoint answers [[{label, score}...]] for a single input; some
// deployments flatten it to [{label, score}...].
func decodeScores(data []byte) ([]labelScore, error) {
	var nested [][]labelScore
	if err := json.Unmarshal(data, &nested); err == nil {
		if len(nested) == 0 {
			return nil, ErrNoPrediction
		}
		return nested[0], nil
	}
	var flat []labelScore
	if err := json.Unmarshal(data, &flat); err != nil {
		return nil, fmt.Errorf("failed to decode sentiment response: %w", err)
	}
	return flat, nil
}

func predictionFromScores(scores []labelScore) (Prediction, error) {
	var (
		best     labelScore
		bestOK   bool
		byLabel  = make(map[Label]float64, 3)
		bestName Label
	)
	for _, s := range scores {
		label, ok := modelLabels[s.Label]
		if !ok {
			continue
		}
		byLabel[label] = s.Score
		if !bestOK || s.Score > best.Score {
			best, bestOK, bestName = s, true, label
		}
	}
	if !bestOK {
		return Prediction{}, ErrNoPrediction
	}

	polarity := byLabel[Positive] - byLabel[Negative]
	if len(byLabel) == 1 {
		// Only the top label was returned
		switch bestName {
		case Positive:
			polarity = best.Score
		case Negative:
			polarity = -best.Score
		}
	}
	return Prediction{Label: bestName, Score: best.Score, Polarity: polarity}, nil
}

// truncate cuts s to at most n runes
func truncate(s string, n int) string {
	if n <= 0 || utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return string(runes[:n])
}
