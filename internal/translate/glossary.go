package translate

import (
	"regexp"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/lokvaani/commentengine/internal/hinglish"
)

type rewrite struct {
	pattern     *regexp.Regexp
	replacement string
}

func rewrites(pairs ...string) []rewrite {
	out := make([]rewrite, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		out = append(out, rewrite{regexp.MustCompile(`(?i)` + pairs[i]), pairs[i+1]})
	}
	return out
}

// Common Hinglish sentence shapes, applied before word substitution
var sentencePatterns = rewrites(
	`\b(is|yeh|yah)\s+(\w+)\s+ki\s+(\w+)\s+(theek|sahi|acchi|accha)\s+(hain|hai)\b`, `the $3 of this $2 are correct`,
	`\bkuch\s+(\w+)\s+bhi\s+(hain|hai)\b`, `there are also some $1`,
	`(₹\s*[\d,]+\s*(?:crore|lakh)?)\s+(kaafi|bahut)\s+(high|low)\s+(hai|hain)\b`, `$1 is quite $3`,
	`\b(\w+)\s+(\w+)\s+(kaafi|bahut|bohot)\s+(high|low|good|bad)\s+(hai|hain)\b`, `the $1 $2 is quite $4`,
	`\b(iska|uska)\s+(\w+)\s+karna\s+(easy|difficult|hard)\s+(hai|hain)\b`, `it is $3 to $2 it`,
	`\b(\w+)\s+par\s+([a-z-]+)\s+(risky|dangerous|safe)\s+(hai|hain)\b`, `$2 on $1 is $3`,
	`\bpehle\s+bhi\s+(\w+)\s+(fail|pass)\s+ho\s+chuke\s+(hain|hai)\b`, `$1 have ${2}ed before as well`,
	`\b(\w+)\s+ke\s+liye\s+(ek|one)\s+(\w+)\s+ban\s+sakte\s+(hain|hai)\b`, `can become a $3 for $1`,
	`\b(\w+)\s+add\s+karne\s+chahiye\b`, `should add $1`,
	`\b(\w+)\s+karne\s+chahiye\b`, `should do $1`,
	`\bthoda\s+aur\s+(\w+)\b`, `more $1`,
	`\b(\w+)\s+badh\s+jaayenge\b`, `$1 will increase`,
	`\b(\w+)\s+karna\s+(risky|safe|dangerous)\s+(hai|hain)\b`, `doing $1 is $2`,
)

var grammarFixes = rewrites(
	`\bthe the\b`, `the`,
	`\ba a\b`, `a`,
	`\bis are\b`, `are`,
	`\bare is\b`, `is`,
	`\bto to\b`, `to`,
	`\bfor for\b`, `for`,
	`\band and\b`, `and`,
	`\bbut but\b`, `but`,
	`\bmore strict\b`, `stricter`,
	`\bfor of\b`, `for`,
)

var (
	sentenceSplit = regexp.MustCompile(`[.!?]+`)
	whitespace    = regexp.MustCompile(`\s+`)
)

// Glossary translates Hinglish with sentence patterns and a word
// dictionary. It is the offline fallback for the translation provider.
type Glossary struct {
	dictionary map[string]string
	words      *regexp.Regexp
}

// NewGlossary builds a glossary over the shared Hinglish dictionary
func NewGlossary() *Glossary {
	keys := make([]string, 0, len(hinglish.Dictionary))
	for k := range hinglish.Dictionary {
		// Skipped so that English output of the sentence patterns survives
		if hinglish.IsHomograph(k) {
			continue
		}
		keys = append(keys, regexp.QuoteMeta(k))
	}
	// Longer alternatives first so "karne" is not matched as "kar"
	sort.Slice(keys, func(i, j int) bool {
		if len(keys[i]) != len(keys[j]) {
			return len(keys[i]) > len(keys[j])
		}
		return keys[i] < keys[j]
	})
	return &Glossary{
		dictionary: hinglish.Dictionary,
		words:      regexp.MustCompile(`(?i)\b(` + strings.Join(keys, "|") + `)\b`),
	}
}

// Translate converts text sentence by sentence
func (g *Glossary) Translate(text string) string {
	var out []string
	for _, sentence := range sentenceSplit.Split(text, -1) {
		if s := strings.TrimSpace(sentence); s != "" {
			out = append(out, g.translateSentence(s))
		}
	}
	result := strings.Join(out, ". ")
	if strings.HasSuffix(strings.TrimSpace(text), ".") {
		result += "."
	}
	return result
}

func (g *Glossary) translateSentence(sentence string) string {
	result := strings.ToLower(sentence)
	for _, rw := range sentencePatterns {
		result = rw.pattern.ReplaceAllString(result, rw.replacement)
	}
	result = g.words.ReplaceAllStringFunc(result, func(w string) string {
		if en, ok := g.dictionary[strings.ToLower(w)]; ok {
			return en
		}
		return w
	})

	result = whitespace.ReplaceAllString(result, " ")
	for _, rw := range grammarFixes {
		result = rw.pattern.ReplaceAllString(result, rw.replacement)
	}
	return upperFirst(strings.TrimSpace(result))
}

func upperFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
