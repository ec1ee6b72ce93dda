// Package translate turns Hindi and Hinglish comments into English.
package translate

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/lokvaani/commentengine/internal/langdetect"
	"github.com/lokvaani/commentengine/pkg/logging"
	"github.com/lokvaani/commentengine/pkg/telemetry"
)

// ErrEmptyTranslation is returned when a provider answers without text
var ErrEmptyTranslation = errors.New("provider returned no translation")

// Translator translates text in the given source language to English
type Translator interface {
	Translate(ctx context.Context, text string, source langdetect.Language) (string, error)
}

// Result is the outcome of Pipeline.Process
type Result struct {
	Original      string
	Translated    string
	Language      langdetect.Language
	WasTranslated bool
	// Degraded is set when the provider failed and a fallback produced
	// Translated. Results without a configured provider are not degraded.
	Degraded bool
}

// Pipeline classifies text and routes it to the provider, falling back to
// the glossary for Hinglish and to the original text otherwise. Provider
// errors never reach the caller.
type Pipeline struct {
	classifier       *langdetect.Classifier
	provider         Translator
	glossary         *Glossary
	glossaryFallback bool
	logger           *zap.Logger
}

// NewPipeline creates a Pipeline. provider may be nil, in which case only
// the glossary is used.
func NewPipeline(classifier *langdetect.Classifier, provider Translator, glossary *Glossary, glossaryFallback bool) *Pipeline {
	return &Pipeline{
		classifier:       classifier,
		provider:         provider,
		glossary:         glossary,
		glossaryFallback: glossaryFallback,
		logger:           logging.WithComponent("translate"),
	}
}

// Process classifies text and translates it when needed
func (p *Pipeline) Process(ctx context.Context, text string) Result {
	ctx, span := telemetry.StartSpan(ctx, "translate.Process")
	defer span.End()

	lang := p.classifier.Classify(ctx, text)
	res := Result{Original: text, Translated: text, Language: lang}
	if !lang.NeedsTranslation() {
		return res
	}

	translated, ok, failed := p.fromProvider(ctx, text, lang)
	res.Degraded = failed
	if !ok && lang == langdetect.Hinglish && p.glossaryFallback && p.glossary != nil {
		translated, ok = p.glossary.Translate(text), true
	}
	if !ok {
		return res
	}

	res.Translated = restoreProtected(text, translated)
	res.WasTranslated = res.Translated != text
	return res
}

// fromProvider reports ok when the provider produced a usable translation
// and failed when the provider call itself errored
func (p *Pipeline) fromProvider(ctx context.Context, text string, lang langdetect.Language) (out string, ok, failed bool) {
	if p.provider == nil {
		return "", false, false
	}
	start := time.Now()
	out, err := p.provider.Translate(ctx, text, lang)
	telemetry.ObserveCollaborator(ctx, "translation", start)
	if err != nil {
		telemetry.RecordCollaboratorFailure(ctx, "translation")
		p.logger.Warn("Translation provider failed",
			zap.String("language", lang.String()),
			zap.Error(err))
		return "", false, true
	}
	// The provider often echoes Romanized Hindi back with little change
	if lang == langdetect.Hinglish && mostlyUnchanged(text, out) {
		p.logger.Debug("Provider left Hinglish untranslated")
		return "", false, false
	}
	return out, true, false
}

// mostlyUnchanged reports whether at least 70% of the distinct words of
// original survive in translated
func mostlyUnchanged(original, translated string) bool {
	orig := wordSet(original)
	if len(orig) == 0 {
		return true
	}
	trans := wordSet(translated)
	shared := 0
	for w := range orig {
		if _, ok := trans[w]; ok {
			shared++
		}
	}
	return float64(shared) >= float64(len(orig))*0.7
}

func wordSet(s string) map[string]struct{} {
	out := make(map[string]struct{})
	for _, w := range strings.Fields(strings.ToLower(s)) {
		out[w] = struct{}{}
	}
	return out
}

// Two-letter capitals (IT, US, OK) collide with ordinary words and are
// left alone
var (
	acronymPattern = regexp.MustCompile(`\b[A-Z]{3,}s?\b`)
	amountPattern  = regexp.MustCompile(`₹\s*[\d,]+(?:\s*crore|\s*lakh)?`)
)

// Terms whose casing is restored regardless of the source text
var fixedTerms = []string{"MCA", "IFSC", "IFSCA", "RBI", "NBFCs", "SFIO", "Companies Act", "Corporate Affairs"}

// restoreProtected puts acronyms and rupee amounts of original back into
// translated when the provider or glossary mangled them
func restoreProtected(original, translated string) string {
	terms := append(acronymPattern.FindAllString(original, -1), fixedTerms...)
	for _, term := range terms {
		re := regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(term) + `\b`)
		translated = re.ReplaceAllLiteralString(translated, term)
	}

	for _, amount := range amountPattern.FindAllString(original, -1) {
		if strings.Contains(translated, amount) {
			continue
		}
		replaced := false
		translated = amountPattern.ReplaceAllStringFunc(translated, func(m string) string {
			if replaced {
				return m
			}
			replaced = true
			return amount
		})
	}
	return translated
}
