package sentiment

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
	"unicode/utf8"
)

func TestHuggingFaceClassify(t *testing.T) {
	var gotInput string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer secret" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		var body struct {
			Inputs string `json:"inputs"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		gotInput = body.Inputs
		w.Write([]byte(`[[{"label":"LABEL_2","score":0.81},{"label":"LABEL_1","score":0.15},{"label":"LABEL_0","score":0.04}]]`))
	}))
	defer srv.Close()

	hf := NewHuggingFace(srv.URL, "secret", time.Second, 512)
	p, err := hf.Classify(context.Background(), strings.Repeat("a", 600))
	if err != nil {
		t.Fatalf("Classify: %v", err)
	}
	if p.Label != Positive || p.Score != 0.81 {
		t.Errorf("unexpected prediction: %+v", p)
	}
	if math.Abs(p.Polarity-0.77) > 1e-9 {
		t.Errorf("polarity = %v, want 0.77", p.Polarity)
	}
	if utf8.RuneCountInString(gotInput) != 512 {
		t.Errorf("input not truncated: %d", len(gotInput))
	}
}

func TestHuggingFaceErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte(`{"error":"Model is loading"}`))
	}))
	defer srv.Close()

	_, err := NewHuggingFace(srv.URL, "", time.Second, 512).Classify(context.Background(), "hello")
	if err == nil || !strings.Contains(err.Error(), "503") {
		t.Errorf("expected status error, got %v", err)
	}
}

func TestDecodeScores(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		want    Label
		wantErr error
	}{
		{"nested", `[[{"label":"LABEL_0","score":0.9},{"label":"LABEL_2","score":0.1}]]`, Negative, nil},
		{"flat", `[{"label":"LABEL_1","score":0.7}]`, Neutral, nil},
		{"named labels", `[[{"label":"positive","score":0.6}]]`, Positive, nil},
		{"empty", `[]`, "", ErrNoPrediction},
		{"unknown labels", `[[{"label":"joy","score":0.6}]]`, "", ErrNoPrediction},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scores, err := decodeScores([]byte(tt.body))
			if err == nil {
				var p Prediction
				p, err = predictionFromScores(scores)
				if err == nil && p.Label != tt.want {
					t.Errorf("label = %s, want %s", p.Label, tt.want)
				}
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
			if tt.wantErr == nil && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestSingleLabelPolarity(t *testing.T) {
	p, err := predictionFromScores([]labelScore{{Label: "LABEL_0", Score: 0.6}})
	if err != nil {
		t.Fatal(err)
	}
	if p.Polarity != -0.6 {
		t.Errorf("polarity = %v, want -0.6", p.Polarity)
	}
}
