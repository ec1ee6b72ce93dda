package sentiment

import (
	"context"
	"testing"
)

func TestAnalyzeTone(t *testing.T) {
	tests := []struct {
		text string
		want Tone
	}{
		{"This is an excellent move for ease of doing business! Great initiative by the government.", Supportive},
		{"I am deeply concerned about this amendment. It poses significant risks to investor protection.", Concerned},
		{"I suggest adding more safeguards to prevent misuse. Maybe we should consider a phased approach.", Suggestive},
		{"Wow, what a brilliant idea! Obviously the best solution for all our problems!!", Sarcastic},
		{"Please provide more details about the implementation timeline and procedures.", ToneNeutral},
		{"Yeh policy bahut accha hai", Supportive},
		{"ok", ToneNeutral},
	}
	a := NewToneAnalyzer()
	for _, tt := range tests {
		if got := a.Analyze(tt.text); got.Tone != tt.want {
			t.Errorf("Analyze(%q) = %s (%v), want %s", tt.text, got.Tone, got.Scores, tt.want)
		}
	}
}

func TestAnalyzeToneConfidence(t *testing.T) {
	a := NewToneAnalyzer()
	if got := a.Analyze("Excellent move, great step."); got.Confidence != 1 {
		t.Errorf("single-tone text confidence = %v, want 1", got.Confidence)
	}
	if got := a.Analyze("Nothing to see in this sentence"); got.Confidence != 0.5 || got.Tone != ToneNeutral {
		t.Errorf("unmatched text = %+v, want neutral 0.5", got)
	}
	mixed := a.Analyze("Good idea but I am worried")
	if mixed.Confidence <= 0 || mixed.Confidence >= 1 {
		t.Errorf("mixed text confidence = %v", mixed.Confidence)
	}
}

func TestAcronymsAreNotShouting(t *testing.T) {
	if s := sarcasmScore("MCA and RBI should act", "mca and rbi should act"); s != 0 {
		t.Errorf("known acronyms scored %v", s)
	}
	if s := sarcasmScore("This is TERRIBLE", "this is terrible"); s != 1 {
		t.Errorf("shouting scored %v, want 1", s)
	}
}

func TestContextModifiers(t *testing.T) {
	scores := map[Tone]float64{Supportive: 1, Concerned: 1}
	applyContext("this brings growth and progress", scores)
	if scores[Supportive] != 1.2 || scores[Concerned] != 0.8 {
		t.Errorf("positive context: %v", scores)
	}
}

func TestToneClassifier(t *testing.T) {
	tests := []struct {
		text string
		want Label
	}{
		{"Excellent move, fully support this", Positive},
		{"Deeply concerned, this is risky", Negative},
		{"I suggest a phased approach", Neutral},
	}
	c := NewToneClassifier(NewToneAnalyzer())
	for _, tt := range tests {
		p, err := c.Classify(context.Background(), tt.text)
		if err != nil {
			t.Fatalf("Classify: %v", err)
		}
		if p.Label != tt.want {
			t.Errorf("Classify(%q) = %s, want %s", tt.text, p.Label, tt.want)
		}
		if p.Polarity < -1 || p.Polarity > 1 {
			t.Errorf("polarity %v out of range", p.Polarity)
		}
	}
}
