package analyzers

import (
	"regexp"

	"veritext/internal/textutil"
)

var transitionOpener = regexp.MustCompile(`(?i)^\s*(Furthermore|Moreover|Additionally|However|Meanwhile|In addition|On the other hand|As a result)`)

type BurstinessResult struct {
	CoefficientOfVariation float64
	SentenceLengthStdDev   float64
	ParagraphLengthStdDev  float64
	ComplexityStdDev       float64
	Risk                   int
	Patterns               []string
}

// Burstiness measures structural variance. Human writing is uneven; machine
// output tends toward uniform sentence and paragraph shapes.
func Burstiness(doc textutil.Document) BurstinessResult {
	if len(doc.Sentences) == 0 {
		return BurstinessResult{}
	}

	sentenceLengths := make([]float64, len(doc.Sentences))
	complexities := make([]float64, len(doc.Sentences))
	for i, s := range doc.Sentences {
		sentenceLengths[i] = float64(s.WordCount)
		wc := s.WordCount
		if wc == 0 {
			wc = 1
		}
		punct := s.ClauseCount - 1
		complexities[i] = float64(s.WordCount+punct) / float64(wc)
	}
	sentenceMean, sentenceSD := textutil.MeanStd(sentenceLengths)
	_, complexitySD := textutil.MeanStd(complexities)

	paragraphLengths := make([]float64, 0, len(doc.Paragraphs))
	for _, p := range doc.Paragraphs {
		paragraphLengths = append(paragraphLengths, float64(len(textutil.Words(p))))
	}
	_, paragraphSD := textutil.MeanStd(paragraphLengths)

	cv := 0.0
	if sentenceMean > 0 {
		cv = textutil.Round2(sentenceSD / sentenceMean * 100)
	}

	var patterns []string
	risk := 0

	if allParagraphsInSentenceRange(doc.Paragraphs, 3, 5) {
		patterns = append(patterns, "Perfect paragraph structure (3-5 sentences each)")
		risk += 15
	}

	if len(sentenceLengths) > 5 && allLengthsInRange(sentenceLengths, 15, 25) {
		patterns = append(patterns, "Uniform sentence length (15-25 words)")
		risk += 20
	}

	if cv < 25 {
		patterns = append(patterns, "Unnaturally consistent structure")
		risk += 15
	} else if cv > 40 {
		risk -= 10
	}

	withTransition := 0
	for _, p := range doc.Paragraphs {
		if transitionOpener.MatchString(p) {
			withTransition++
		}
	}
	if len(doc.Paragraphs) > 0 && float64(withTransition) > float64(len(doc.Paragraphs))*0.7 {
		patterns = append(patterns, "Perfect transitions between paragraphs")
		risk += 10
	}

	return BurstinessResult{
		CoefficientOfVariation: cv,
		SentenceLengthStdDev:   textutil.Round2(sentenceSD),
		ParagraphLengthStdDev:  textutil.Round2(paragraphSD),
		ComplexityStdDev:       textutil.Round2(complexitySD),
		Risk:                   clampRisk(risk),
		Patterns:               patterns,
	}
}

func allParagraphsInSentenceRange(paragraphs []string, lo, hi int) bool {
	if len(paragraphs) == 0 {
		return false
	}
	for _, p := range paragraphs {
		n := len(textutil.Sentences(p))
		if n < lo || n > hi {
			return false
		}
	}
	return true
}

func allLengthsInRange(lengths []float64, lo, hi float64) bool {
	for _, l := range lengths {
		if l < lo || l > hi {
			return false
		}
	}
	return true
}
