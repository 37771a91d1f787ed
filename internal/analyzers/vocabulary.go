package analyzers

import (
	"regexp"

	"veritext/internal/textutil"
)

var (
	formalWords    = []string{"utilize", "commence", "endeavor", "peruse", "pursuant", "aforementioned", "herein", "therein"}
	formalPatterns = compileWordList(formalWords)
	contraction    = regexp.MustCompile(`(?i)\b(don't|can't|won't|it's|we're|they're|i'm|we've)\b`)
)

func compileWordList(words []string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, 0, len(words))
	for _, w := range words {
		out = append(out, regexp.MustCompile(`(?i)\b`+regexp.QuoteMeta(w)+`\b`))
	}
	return out
}

type VocabularyResult struct {
	TypeTokenRatio  int
	FormalWordCount int
	ContractionRate int
	Risk            int
	Patterns        []string
}

// Vocabulary flags registers that do not occur together in natural prose:
// thesaurus-level diversity, stiff formal words, and a contraction drought.
func Vocabulary(doc textutil.Document) VocabularyResult {
	if len(doc.Sentences) == 0 || len(doc.Words) == 0 {
		return VocabularyResult{}
	}

	unique := map[string]struct{}{}
	for _, w := range doc.Words {
		unique[w] = struct{}{}
	}
	ttr := float64(len(unique)) / float64(len(doc.Words)) * 100

	formalCount := 0
	for _, re := range formalPatterns {
		formalCount += len(re.FindAllString(doc.Text, -1))
	}

	contractions := len(contraction.FindAllString(doc.Text, -1))
	contractionRate := int(float64(contractions) / float64(len(doc.Sentences)) * 100)

	var patterns []string
	risk := 0

	if ttr > 85 {
		patterns = append(patterns, "Unnaturally high vocabulary diversity (possible thesaurus abuse)")
		risk += 20
	} else if ttr > 75 {
		patterns = append(patterns, "High vocabulary diversity")
		risk += 10
	}

	if formalCount > 5 {
		patterns = append(patterns, "Excessive formal vocabulary")
		risk += 15
	}

	if contractionRate < 10 && ttr > 70 {
		patterns = append(patterns, "Few contractions despite formal tone")
		risk += 12
	}

	return VocabularyResult{
		TypeTokenRatio:  int(ttr + 0.5),
		FormalWordCount: formalCount,
		ContractionRate: contractionRate,
		Risk:            clampRisk(risk),
		Patterns:        patterns,
	}
}
