package translate

import (
	"strings"
	"testing"
)

func TestGlossaryTranslate(t *testing.T) {
	g := NewGlossary()
	tests := []struct {
		in   string
		want string
	}{
		{"Is draft ki intentions theek hain.", "The intentions of this draft are correct."},
		{"borrowing limit kaafi high hai", "The borrowing limit is quite high"},
		{"iska misuse karna easy hai", "It is easy to misuse it"},
		{"pehle bhi auditors fail ho chuke hain", "Auditors have failed before as well"},
		{"safeguards add karne chahiye", "Should add safeguards"},
		{"thoda aur strict", "Stricter"},
		{"chances badh jaayenge", "Chances will increase"},
		{"kuch problems bhi hain", "There are also some problems"},
		{"yeh sahi hai", "This right is"},
	}
	for _, tt := range tests {
		if got := g.Translate(tt.in); got != tt.want {
			t.Errorf("Translate(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestGlossaryKeepsSentences(t *testing.T) {
	got := NewGlossary().Translate("Yeh accha hai. Lekin thoda aur strict hona chahiye!")
	parts := strings.Split(got, ". ")
	if len(parts) != 2 {
		t.Fatalf("expected two sentences, got %q", got)
	}
	if strings.HasSuffix(got, ".") {
		t.Errorf("input did not end with a period: %q", got)
	}
}

func TestGlossaryLongestMatch(t *testing.T) {
	if got := NewGlossary().Translate("karne"); got != "To do" {
		t.Errorf("expected whole-word match, got %q", got)
	}
}
