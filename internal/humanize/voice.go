package humanize

import (
	"math/rand"
	"regexp"
	"strings"
)

var personalQualifiers = []string{
	"Honestly,",
	"In my view,",
	"From what I've seen,",
	"In my experience,",
	"I think",
	"I believe",
	"The way I see it,",
	"Truthfully,",
	"Look,",
	"Actually,",
	"The thing is,",
	"Here's the reality:",
	"From my perspective,",
}

var rhetoricalQuestions = []string{
	"Right?",
	"You know?",
	"Get what I mean?",
	"See?",
	"Make sense?",
}

var voiceSentenceSplit = regexp.MustCompile(`[.!?]+`)

// injectPersonalVoice adds qualifiers and rhetorical questions at a density
// scaled by intensity: light places at most one, medium two to three plus a
// question, aggressive touches nearly every sentence.
func injectPersonalVoice(text string, intensity Intensity, rng *rand.Rand) string {
	sentences := splitNonEmpty(text)
	if len(sentences) == 0 {
		return text
	}

	switch intensity {
	case IntensityLight:
		if rng.Float64() > 0.6 && len(sentences) > 3 {
			mid := len(sentences) / 2
			sentences[mid] = pickQualifier(rng) + " " + sentences[mid]
		}
	case IntensityMedium:
		inserts := len(sentences) / 3
		if inserts > 2 {
			inserts = 2
		}
		for i := 0; i < inserts; i++ {
			idx := rng.Intn(len(sentences))
			if rng.Float64() > 0.4 {
				sentences[idx] = pickQualifier(rng) + " " + sentences[idx]
			}
		}
		if len(sentences) > 4 {
			sentences[len(sentences)-2] += " " + rhetoricalQuestions[0]
		}
	case IntensityAggressive:
		for i := range sentences {
			if i == 0 || i == len(sentences)-1 || rng.Float64() <= 0.5 {
				continue
			}
			if rng.Float64() > 0.5 {
				sentences[i] = pickQualifier(rng) + " " + sentences[i]
			} else {
				sentences[i] += " " + rhetoricalQuestions[rng.Intn(len(rhetoricalQuestions))]
			}
		}
	}

	return tidyWhitespace(strings.Join(sentences, ". "))
}

func pickQualifier(rng *rand.Rand) string {
	return personalQualifiers[rng.Intn(len(personalQualifiers))]
}

func splitNonEmpty(text string) []string {
	parts := voiceSentenceSplit.Split(text, -1)
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
