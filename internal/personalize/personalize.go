// Package personalize voices comments for a stakeholder category and pads
// short comments up to the minimum word count.
package personalize

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/lokvaani/commentengine/internal/models"
	"github.com/lokvaani/commentengine/internal/random"
)

// Defaults used by the generation service
const (
	DefaultPrefixMaxChars = 50
	DefaultMinimumWords   = 50
)

// maxOvershoot bounds how far a generic filler may exceed the deficit
const maxOvershoot = 10

// Personalizer applies persona prefixes and minimum-length expansion
type Personalizer struct {
	prefixMaxChars int
	minimumWords   int
}

// New creates a Personalizer. Texts shorter than prefixMaxChars runes get
// a persona prefix; EnsureMinimumWords pads to minimumWords.
func New(prefixMaxChars, minimumWords int) *Personalizer {
	return &Personalizer{prefixMaxChars: prefixMaxChars, minimumWords: minimumWords}
}

// Personalize prefixes short text with a category voice and normalizes
// doubled spaces and terminators
func (p *Personalizer) Personalize(text string, category models.Category, rng random.Source) string {
	out := text
	if utf8.RuneCountInString(text) < p.prefixMaxChars {
		if options, ok := prefixes[category]; ok {
			out = random.Choice(rng, options) + lowerFirst(text)
		}
	}
	return normalize(out)
}

func lowerFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 || !unicode.IsUpper(r) {
		return s
	}
	return string(unicode.ToLower(r)) + s[size:]
}

func normalize(s string) string {
	s = strings.ReplaceAll(s, ".. ", ". ")
	for strings.Contains(s, "  ") {
		s = strings.ReplaceAll(s, "  ", " ")
	}
	return s
}

func wordCount(s string) int {
	return len(strings.Fields(s))
}

// EnsureMinimumWords returns text unchanged when it already has the
// configured number of words. Otherwise it appends the category filler
// and then generic fillers until the floor is met.
func (p *Personalizer) EnsureMinimumWords(text string, category models.Category, rng random.Source) string {
	return ensureMinimumWords(text, category, p.minimumWords, rng)
}

func ensureMinimumWords(text string, category models.Category, minWords int, rng random.Source) string {
	count := wordCount(text)
	if count >= minWords {
		return text
	}

	var b strings.Builder
	b.WriteString(text)
	appendSentence := func(s string) {
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(s)
		count += wordCount(s)
	}

	if filler, ok := categoryFillers[category]; ok {
		appendSentence(filler)
	}

	for count < minWords {
		remaining := minWords - count
		suitable := make([]string, 0, len(genericFillers))
		for _, f := range genericFillers {
			if wordCount(f) <= remaining+maxOvershoot {
				suitable = append(suitable, f)
			}
		}
		if len(suitable) > 0 {
			appendSentence(random.Choice(rng, suitable))
		} else {
			appendSentence(ClosingSentence)
		}
	}
	return b.String()
}
