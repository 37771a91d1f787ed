package humanize

import (
	"regexp"

	"veritext/internal/textutil"
)

// Validation summarizes a quick post-pass check of the transformed text.
type Validation struct {
	MeaningPreserved bool    `json:"meaningPreserved"`
	Similarity       float64 `json:"similarity"`
	QuickScore       float64 `json:"quickScore"`
	ResidualPhrases  int     `json:"residualPhrases"`
	Valid            bool    `json:"valid"`
	NeedsRefinement  bool    `json:"needsRefinement"`
}

var (
	// Possessives do not count; only real contractions lower the score.
	contractionCheck = regexp.MustCompile(`(?i)\b(?:don't|can't|won't|it's|we're|they're|i'm|haven't|doesn't|isn't|aren't|wasn't|weren't|wouldn't|shouldn't|couldn't|mightn't)\b`)
	casualCheck      = regexp.MustCompile(`(?i)\b(?:honestly|look|basically|you know|right|really|actually|the thing is|seriously|literally)\b`)

	// Cheap signals the transform did not bite: phrases the removal stage
	// should have caught, still present verbatim.
	residualCheck = regexp.MustCompile(`(?i)\b(?:moreover|furthermore|delve into|in today's digital age|it is important to note|plays a crucial role)\b`)
)

// Validate compares original and transformed text. The meaning floor is a
// word-set Jaccard above 0.65; the quick score penalizes text that still
// reads machine-polished (no contractions, no casual register, leftover
// stock phrases).
func Validate(original, transformed string) Validation {
	sim := textutil.Jaccard(textutil.WordSet(original), textutil.WordSet(transformed))

	residual := len(residualCheck.FindAllString(transformed, -1))

	score := 100.0
	if contractionCheck.MatchString(transformed) {
		score -= 20
	}
	if casualCheck.MatchString(transformed) {
		score -= 20
	}
	score -= float64(residual) * 10
	if score < 0 {
		score = 0
	}

	v := Validation{
		MeaningPreserved: sim > 0.65,
		Similarity:       textutil.Round2(sim),
		QuickScore:       score,
		ResidualPhrases:  residual,
	}
	v.Valid = v.MeaningPreserved && score < 30
	v.NeedsRefinement = score > 35
	return v
}
