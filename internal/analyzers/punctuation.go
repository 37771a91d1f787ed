package analyzers

import (
	"regexp"
	"strings"

	"veritext/internal/textutil"
)

var allCapsWord = regexp.MustCompile(`\b[A-Z]{2,}\b`)

type PunctuationResult struct {
	ExclamationRate float64
	EmDashRate      float64
	SemicolonRate   float64
	EllipsisRate    float64
	Risk            int
	Patterns        []string
}

// Punctuation scores expressive-punctuation habits. Generated text rarely
// shouts, interrupts itself, or trails off; it does love semicolons.
func Punctuation(doc textutil.Document) PunctuationResult {
	if len(doc.Sentences) == 0 {
		return PunctuationResult{}
	}

	n := float64(len(doc.Sentences))
	exclamationRate := float64(strings.Count(doc.Text, "!")) / n * 100
	emDashRate := float64(strings.Count(doc.Text, "—")) / n * 100
	semicolonRate := float64(strings.Count(doc.Text, ";")) / n * 100
	ellipsisRate := float64(strings.Count(doc.Text, "...")) / n * 100

	var patterns []string
	risk := 0

	if exclamationRate < 2 {
		patterns = append(patterns, "No or very few exclamation marks")
		risk += 5
	}
	if emDashRate < 1 {
		patterns = append(patterns, "No em-dashes (humans use them more)")
		risk += 3
	}
	if semicolonRate > 5 {
		patterns = append(patterns, "Excessive semicolons (AI overuse)")
		risk += 8
	}
	if ellipsisRate < 0.5 {
		patterns = append(patterns, "No ellipsis (humans use them for pauses)")
		risk += 3
	}
	if len(allCapsWord.FindAllString(doc.Text, -1)) == 0 {
		patterns = append(patterns, "No ALL CAPS for emphasis")
		risk += 2
	} else {
		risk -= 3
	}

	return PunctuationResult{
		ExclamationRate: textutil.Round2(exclamationRate),
		EmDashRate:      textutil.Round2(emDashRate),
		SemicolonRate:   textutil.Round2(semicolonRate),
		EllipsisRate:    textutil.Round2(ellipsisRate),
		Risk:            clampRisk(risk),
		Patterns:        patterns,
	}
}
