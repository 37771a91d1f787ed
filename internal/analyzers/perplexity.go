package analyzers

import (
	"math"
	"strings"

	"veritext/internal/textutil"
)

const (
	perplexityModelTokens = 500
	perplexitySmoothing   = 0.001
	suspiciousPerplexity  = 40.0
)

type SentencePerplexity struct {
	Sentence   string
	Perplexity float64
	Flagged    bool
}

type PerplexityResult struct {
	OverallPerplexity   float64
	SentenceScores      []SentencePerplexity
	SuspiciousSentences int
	Risk                int
	Patterns            []string
}

// Perplexity measures how predictable the text is against n-gram tables
// built from the text itself. Self-predictable prose (low surprise against
// its own local statistics) correlates with machine-generated uniformity.
func Perplexity(doc textutil.Document) PerplexityResult {
	if len(doc.Sentences) == 0 {
		return PerplexityResult{}
	}

	words := doc.Words
	if len(words) > perplexityModelTokens {
		words = words[:perplexityModelTokens]
	}
	model := buildModel(words)

	var total float64
	suspicious := 0
	scores := make([]SentencePerplexity, 0, len(doc.Sentences))
	for _, s := range doc.Sentences {
		p := sentencePerplexity(textutil.Words(s.Text), model.trigrams)
		flagged := p < suspiciousPerplexity
		if flagged {
			suspicious++
		}
		preview := s.Text
		if len(preview) > 100 {
			preview = preview[:100]
		}
		scores = append(scores, SentencePerplexity{
			Sentence:   preview,
			Perplexity: textutil.Round2(p),
			Flagged:    flagged,
		})
		total += p
	}

	overall := textutil.Round2(total / float64(len(doc.Sentences)))

	var risk int
	switch {
	case overall < 40:
		risk = 90
	case overall < 60:
		risk = 75
	case overall < 100:
		risk = 50
	case overall < 150:
		risk = 30
	default:
		risk = 10
	}

	return PerplexityResult{
		OverallPerplexity:   overall,
		SentenceScores:      scores,
		SuspiciousSentences: suspicious,
		Risk:                clampRisk(risk),
	}
}

// ngramModel holds the frequency tables built from the text itself. Both
// tables are built; the estimate conditions on trigrams, since 4-gram
// contexts are too sparse at 500 tokens.
type ngramModel struct {
	trigrams  map[string]map[string]int
	fourgrams map[string]map[string]int
}

func buildModel(words []string) ngramModel {
	return ngramModel{
		trigrams:  buildNgramModel(words, 3),
		fourgrams: buildNgramModel(words, 4),
	}
}

// buildNgramModel maps each n-gram to the frequency of the word that
// follows it.
func buildNgramModel(words []string, n int) map[string]map[string]int {
	model := map[string]map[string]int{}
	for i := 0; i+n-1 < len(words); i++ {
		key := strings.Join(words[i:i+n], " ")
		next := ""
		if i+n < len(words) {
			next = words[i+n]
		}
		m, ok := model[key]
		if !ok {
			m = map[string]int{}
			model[key] = m
		}
		m[next]++
	}
	return model
}

func sentencePerplexity(words []string, trigrams map[string]map[string]int) float64 {
	// Sentences too short for a trigram get the neutral default.
	if len(words) < 3 {
		return 100
	}
	totalLogProb := 0.0
	count := 0
	for i := 0; i+2 < len(words); i++ {
		key := words[i] + " " + words[i+1] + " " + words[i+2]
		next := ""
		if i+3 < len(words) {
			next = words[i+3]
		}
		followers, ok := trigrams[key]
		if !ok {
			continue
		}
		total := 0
		for _, c := range followers {
			total += c
		}
		prob := 0.01
		if total > 0 {
			prob = float64(followers[next]) / float64(total)
		}
		totalLogProb += math.Log(prob + perplexitySmoothing)
		count++
	}
	if count == 0 {
		return 100
	}
	return math.Exp(-totalLogProb / float64(count))
}
