package sentiment

import (
	"context"
	"math"
	"regexp"
	"strings"
)

// Tone is the rhetorical stance of a comment
type Tone string

// Tones, in tie-break order
const (
	Supportive  Tone = "supportive"
	Concerned   Tone = "concerned"
	Suggestive  Tone = "suggestive"
	Sarcastic   Tone = "sarcastic"
	ToneNeutral Tone = "neutral"
)

var toneOrder = []Tone{Supportive, Concerned, Suggestive, Sarcastic, ToneNeutral}

type toneRules struct {
	keywords []*regexp.Regexp
	phrases  []*regexp.Regexp
	weight   float64
}

func wordPatterns(words ...string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, len(words))
	for i, w := range words {
		out[i] = regexp.MustCompile(`\b` + regexp.QuoteMeta(w) + `\b`)
	}
	return out
}

func patterns(exprs ...string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, len(exprs))
	for i, e := range exprs {
		out[i] = regexp.MustCompile(e)
	}
	return out
}

var toneTable = map[Tone]toneRules{
	Supportive: {
		keywords: wordPatterns(
			"excellent", "great", "good", "positive", "welcome", "appreciate", "support",
			"commendable", "praiseworthy", "beneficial", "helpful", "constructive",
			"fantastic", "wonderful", "amazing", "brilliant", "outstanding",
			"approve", "endorse", "favor", "backing", "agreement", "align",
			"accha", "achha", "badhiya", "sahi", "theek", "samarthan"),
		phrases: patterns(
			`excellent move`, `great step`, `good initiative`, `positive development`,
			`welcome change`, `right direction`, `much needed`, `long overdue`,
			`fully support`, `completely agree`, `strongly endorse`,
			`game changer`, `progressive step`, `forward thinking`,
			`yeh sahi hai`, `bilkul theek`, `bahut accha`),
		weight: 1.0,
	},
	Concerned: {
		keywords: wordPatterns(
			"worried", "concerned", "dangerous", "risky", "problematic", "alarming",
			"troubling", "disturbing", "cautious", "skeptical", "doubtful",
			"against", "oppose", "disagree", "reject", "protest",
			"risk", "threat", "issue", "problem", "challenge", "difficulty",
			"chinta", "pareshani", "khatra", "musibat", "dikkat"),
		phrases: patterns(
			`deeply concerned`, `serious concerns`, `major issues`, `significant problems`,
			`potential risks`, `dangerous precedent`, `alarming trend`,
			`strongly against`, `completely disagree`, `totally oppose`,
			`recipe for disaster`, `big mistake`, `wrong direction`,
			`bada khatra`, `bohot risky`, `galat direction`),
		weight: 1.0,
	},
	Suggestive: {
		keywords: wordPatterns(
			"suggest", "recommend", "propose", "consider", "should", "could", "might",
			"perhaps", "maybe", "alternatively", "instead", "modify", "improve",
			"enhance", "add", "include", "strengthen", "clarify", "specify",
			"sujhaav", "salah", "mashwara", "chahiye", "karna chahiye"),
		phrases: patterns(
			`i suggest`, `my suggestion`, `would recommend`, `should consider`,
			`might want to`, `could improve`, `better approach`, `alternative would be`,
			`what if`, `how about`, `why not`, `it would be better`,
			`mera sujhaav`, `behtar hoga`, `aur accha hoga`),
		weight: 1.0,
	},
	Sarcastic: {
		keywords: wordPatterns(
			"brilliant", "genius", "fantastic", "wonderful", "perfect", "exactly",
			"obviously", "clearly", "surely", "definitely", "absolutely",
			"great job", "well done", "congratulations"),
		phrases: patterns(
			`what a brilliant idea`, `genius move`, `perfect solution`,
			`exactly what we needed`, `obviously the best`, `clearly thought through`,
			`well done.*government`, `congratulations.*achievement`,
			`fantastic.*decision`, `wonderful.*policy`,
			`kya baat hai`, `wah kya idea`, `zabardast`),
		weight: 0.8,
	},
	ToneNeutral: {
		keywords: wordPatterns(
			"noted", "acknowledged", "received", "understood", "information",
			"details", "clarification", "question", "inquiry", "request",
			"general", "standard", "normal", "typical", "usual"),
		phrases: patterns(
			`for your information`, `please clarify`, `need more details`,
			`seeking clarification`, `requesting information`,
			`general inquiry`, `standard procedure`),
		weight: 0.5,
	},
}

// Matched against the original casing
var sarcasmIndicators = patterns(`!{2,}`, `\?{2,}`, `\.{3,}`, `(?i)haha`, `(?i)\blol\b`, `(?i)really\?`, `(?i)seriously\?`)

var (
	shouting         = regexp.MustCompile(`\b[A-Z]{3,}\b`)
	repeatedPunct    = regexp.MustCompile(`[!?]{2,}`)
	sarcasmPositives = []string{"excellent", "great", "wonderful", "brilliant", "perfect"}
	sarcasmNegatives = []string{"problem", "issue", "disaster", "failure", "mistake"}
	positiveContext  = []string{"growth", "development", "progress", "improvement", "benefit", "opportunity", "advancement", "success", "achievement"}
	negativeContext  = []string{"failure", "decline", "loss", "damage", "harm", "destruction", "crisis", "disaster", "collapse", "breakdown"}
)

// Regulatory acronyms are not shouting
var knownAcronyms = map[string]struct{}{
	"MCA": {}, "IFSC": {}, "IFSCA": {}, "RBI": {}, "SFIO": {}, "NBFC": {}, "SEBI": {},
	"IBBI": {}, "IBC": {}, "NCLT": {}, "CIRP": {}, "GST": {}, "MSME": {}, "LLP": {},
}

// ToneResult is the outcome of tone analysis
type ToneResult struct {
	Tone       Tone
	Confidence float64
	// Scores are normalized to sum to 1 when any tone matched
	Scores map[Tone]float64
}

// ToneAnalyzer scores comments against tone lexicons
type ToneAnalyzer struct{}

// NewToneAnalyzer creates a ToneAnalyzer
func NewToneAnalyzer() *ToneAnalyzer {
	return &ToneAnalyzer{}
}

// Analyze returns the dominant tone of text. Text under five characters
// is neutral with confidence 0.5.
func (a *ToneAnalyzer) Analyze(text string) ToneResult {
	if len(strings.TrimSpace(text)) < 5 {
		return ToneResult{Tone: ToneNeutral, Confidence: 0.5, Scores: map[Tone]float64{ToneNeutral: 1}}
	}

	lower := strings.ToLower(text)
	scores := make(map[Tone]float64, len(toneOrder))
	for _, tone := range toneOrder {
		rules := toneTable[tone]
		score := 0.0
		for _, re := range rules.keywords {
			if re.MatchString(lower) {
				score++
			}
		}
		for _, re := range rules.phrases {
			if re.MatchString(lower) {
				score += 2
			}
		}
		if tone == Sarcastic {
			score += sarcasmScore(text, lower)
		}
		scores[tone] = score * rules.weight
	}
	applyContext(lower, scores)

	total := 0.0
	for _, s := range scores {
		total += s
	}
	if total == 0 {
		return ToneResult{Tone: ToneNeutral, Confidence: 0.5, Scores: scores}
	}

	best := toneOrder[0]
	for _, tone := range toneOrder[1:] {
		if scores[tone] > scores[best] {
			best = tone
		}
	}
	confidence := math.Min(scores[best]/math.Max(total, 1), 1)

	normalized := make(map[Tone]float64, len(scores))
	for tone, s := range scores {
		normalized[tone] = s / total
	}
	return ToneResult{
		Tone:       best,
		Confidence: math.Round(confidence*100) / 100,
		Scores:     normalized,
	}
}

func sarcasmScore(original, lower string) float64 {
	score := 0.0
	for _, re := range sarcasmIndicators {
		if re.MatchString(original) {
			score++
		}
	}
	for _, w := range shouting.FindAllString(original, -1) {
		if _, known := knownAcronyms[w]; !known {
			score++
			break
		}
	}
	if containsAny(lower, sarcasmPositives) && containsAny(lower, sarcasmNegatives) {
		score += 2
	}
	if repeatedPunct.MatchString(original) {
		score++
	}
	return score
}

func applyContext(lower string, scores map[Tone]float64) {
	pos, neg := countAny(lower, positiveContext), countAny(lower, negativeContext)
	switch {
	case pos > neg:
		scores[Supportive] *= 1.2
		scores[Concerned] *= 0.8
	case neg > pos:
		scores[Concerned] *= 1.2
		scores[Supportive] *= 0.8
	}
}

func containsAny(s string, words []string) bool {
	return countAny(s, words) > 0
}

func countAny(s string, words []string) int {
	n := 0
	for _, w := range words {
		if strings.Contains(s, w) {
			n++
		}
	}
	return n
}

// ToneClassifier derives a sentiment prediction from tone. It stands in
// for the model when the model is unavailable.
type ToneClassifier struct {
	analyzer *ToneAnalyzer
}

// NewToneClassifier wraps analyzer
func NewToneClassifier(analyzer *ToneAnalyzer) *ToneClassifier {
	return &ToneClassifier{analyzer: analyzer}
}

// Classify implements Classifier
func (c *ToneClassifier) Classify(_ context.Context, text string) (Prediction, error) {
	res := c.analyzer.Analyze(text)
	return PredictionFromTone(res), nil
}

// PredictionFromTone maps a tone result onto the sentiment labels
func PredictionFromTone(res ToneResult) Prediction {
	label := Neutral
	switch res.Tone {
	case Supportive:
		label = Positive
	case Concerned, Sarcastic:
		label = Negative
	}
	polarity := res.Scores[Supportive] - res.Scores[Concerned] - res.Scores[Sarcastic]
	return Prediction{
		Label:    label,
		Score:    res.Confidence,
		Polarity: math.Max(-1, math.Min(1, polarity)),
	}
}
