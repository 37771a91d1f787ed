package analyzers

import (
	"veritext/internal/textutil"
)

type CoherenceResult struct {
	AverageCoherence     float64
	CoherenceVariance    float64
	SmoothTransitionRate int
	Risk                 int
	Patterns             []string
}

// Coherence scores lexical overlap between adjacent sentences. Humans drift;
// generated text tends to connect every sentence to the next at the same
// strength.
func Coherence(doc textutil.Document) CoherenceResult {
	if len(doc.Sentences) < 2 {
		return CoherenceResult{}
	}

	scores := make([]float64, 0, len(doc.Sentences)-1)
	for i := 0; i+1 < len(doc.Sentences); i++ {
		a := textutil.ContentWordSet(doc.Sentences[i].Text)
		b := textutil.ContentWordSet(doc.Sentences[i+1].Text)
		scores = append(scores, textutil.Jaccard(a, b))
	}

	mean, sd := textutil.MeanStd(scores)
	average := textutil.Round2(mean)
	variance := textutil.Round2(sd * sd)

	smooth := 0
	for _, s := range scores {
		if s > 0.65 {
			smooth++
		}
	}
	smoothRate := int(float64(smooth) / float64(len(scores)) * 100)

	var patterns []string
	risk := 0

	if average > 0.75 {
		patterns = append(patterns, "Unnaturally high semantic coherence")
		risk += 20
	} else if average > 0.65 {
		patterns = append(patterns, "Higher than average semantic coherence")
		risk += 10
	}
	if variance < 0.05 {
		patterns = append(patterns, "Perfect coherence consistency (all sentences connect identically)")
		risk += 15
	}
	if smoothRate > 80 {
		patterns = append(patterns, "Nearly perfect transitions between all sentences")
		risk += 12
	}

	return CoherenceResult{
		AverageCoherence:     average,
		CoherenceVariance:    variance,
		SmoothTransitionRate: smoothRate,
		Risk:                 clampRisk(risk),
		Patterns:             patterns,
	}
}
