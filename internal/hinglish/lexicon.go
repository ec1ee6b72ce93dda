// Package hinglish holds the Romanized Hindi vocabulary shared by language
// classification and glossary translation.
package hinglish

import (
	"strings"
	"unicode"
)

// FunctionWords are high-frequency Romanized Hindi words used for
// lexical Hinglish detection. Words that are also common English words
// ("to", "me", "par") are left out.
var FunctionWords = []string{
	// verbs and question words
	"hai", "hain", "kar", "karke", "karne", "karna", "kya", "kyun", "yeh", "yah", "jo", "se", "mein", "ko", "ka", "ki", "ke",
	// connectives
	"aur", "lekin", "kyunki", "agar", "toh", "bhi", "bahut", "bohot", "thoda", "jyada", "zyada",
	// judgement
	"sahi", "galat", "accha", "achha", "bura", "kharab", "theek", "badhiya", "badiya",
	// necessity
	"zaruri", "zaroori", "chahiye", "hoga", "hoge", "honge", "hona",
	// perception
	"lagta", "laga", "lage", "lagi", "samjh", "samjha", "samjhe", "pata", "malum",
}

// Dictionary maps Romanized Hindi words to English
var Dictionary = map[string]string{
	"hai": "is", "hain": "are", "ho": "be", "hota": "happens", "hoti": "happens",
	"kar": "do", "kare": "do", "karna": "to do", "karke": "by doing", "karne": "to do",
	"bana": "make", "banane": "to make", "banaye": "make", "banta": "is made",
	"mile": "get", "milega": "will get", "mil": "get",
	"lagta": "seems", "laga": "felt", "lage": "seem", "lagi": "felt",
	"hoga": "will be", "hoge": "will be", "honge": "will be", "hona": "to be",

	"kya": "what", "kyun": "why", "kaise": "how", "kahan": "where", "kab": "when",
	"yeh": "this", "yah": "this", "woh": "that", "jo": "which", "jab": "when",
	"iska": "its", "uska": "its", "unka": "their", "hamara": "our",

	"aur": "and", "ya": "or", "par": "but", "lekin": "but", "kyunki": "because",
	"agar": "if", "to": "then", "toh": "then", "se": "from", "mein": "in", "me": "in",
	"ko": "to", "ka": "of", "ki": "of", "ke": "of", "liye": "for",

	"sahi": "right", "galat": "wrong", "theek": "correct", "accha": "good", "achha": "good", "acchi": "good",
	"bura": "bad", "kharab": "bad", "badhiya": "great", "badiya": "great",
	"kaafi": "quite", "bahut": "very", "bohot": "very", "thoda": "little", "jyada": "more", "zyada": "more",

	"zaruri": "necessary", "zaroori": "necessary",
	"chahiye": "should", "chaahiye": "should", "jarurat": "need",
	"samjh": "understand", "samjha": "understood", "samjhe": "understand",
	"pata": "know", "malum": "know", "mujhe": "I", "humein": "we",

	"intenses": "intentions", "striat": "strict", "sub": "subsidiary",
	"pehle": "previously", "bhi": "also", "chuke": "have",
	"ban": "become", "sakte": "can", "sakta": "can", "sakti": "can",
	"dobara": "again", "sochna": "think", "kami": "lack",
	"karta": "does", "karti": "does",
	"bharosa": "trust", "badh": "increase", "jaayenge": "will",
}

// English words that are also dictionary keys. They are translated inside
// Hinglish text but never count as evidence of Hinglish.
var homographs = map[string]struct{}{
	"to": {}, "me": {}, "par": {}, "ya": {}, "ban": {}, "sub": {}, "mile": {}, "jab": {},
	"intenses": {}, "striat": {},
}

// IsHomograph reports whether w is a dictionary key that is also an
// ordinary English word
func IsHomograph(w string) bool {
	_, ok := homographs[strings.ToLower(w)]
	return ok
}

var vocabulary = buildVocabulary()

func buildVocabulary() map[string]struct{} {
	v := make(map[string]struct{}, len(Dictionary)+len(FunctionWords))
	for k := range Dictionary {
		if _, skip := homographs[k]; !skip {
			v[k] = struct{}{}
		}
	}
	for _, w := range FunctionWords {
		v[w] = struct{}{}
	}
	return v
}

var functionWords = func() map[string]struct{} {
	m := make(map[string]struct{}, len(FunctionWords))
	for _, w := range FunctionWords {
		m[w] = struct{}{}
	}
	return m
}()

// Tokens lower-cases text and splits it on anything that is not a letter
// or digit, which gives word-boundary matching
func Tokens(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && !unicode.IsMark(r)
	})
}

// FunctionWordHits counts tokens of text that are Hinglish function words
func FunctionWordHits(text string) int {
	return countIn(text, functionWords)
}

// VocabularyHits counts tokens of text found in the broader Hinglish
// vocabulary
func VocabularyHits(text string) int {
	return countIn(text, vocabulary)
}

func countIn(text string, set map[string]struct{}) int {
	hits := 0
	for _, tok := range Tokens(text) {
		if _, ok := set[tok]; ok {
			hits++
		}
	}
	return hits
}
