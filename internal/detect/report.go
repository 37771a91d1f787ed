package detect

import (
	"fmt"

	"veritext/internal/analyzers"
)

type RiskLevel string

const (
	RiskHuman       RiskLevel = "HUMAN"
	RiskLikelyHuman RiskLevel = "LIKELY_HUMAN"
	RiskUncertain   RiskLevel = "UNCERTAIN"
	RiskLikelyAI    RiskLevel = "LIKELY_AI"
	RiskAI          RiskLevel = "AI"
)

// RiskLevelFor is the monotonic mapping from overall score to bucket.
func RiskLevelFor(score int) RiskLevel {
	switch {
	case score <= 25:
		return RiskHuman
	case score <= 45:
		return RiskLikelyHuman
	case score <= 55:
		return RiskUncertain
	case score <= 75:
		return RiskLikelyAI
	default:
		return RiskAI
	}
}

// AnalyzerScores holds every analyzer result in fixed key order. Reports
// must look the same regardless of which goroutine finished first.
type AnalyzerScores struct {
	Perplexity  analyzers.PerplexityResult  `json:"perplexity"`
	Burstiness  analyzers.BurstinessResult  `json:"burstiness"`
	Syntactic   analyzers.SyntacticResult   `json:"syntactic"`
	Coherence   analyzers.CoherenceResult   `json:"coherence"`
	AIPhrases   analyzers.PhrasesResult     `json:"aiPhrases"`
	Structural  analyzers.StructuralResult  `json:"structural"`
	Vocabulary  analyzers.VocabularyResult  `json:"vocabulary"`
	Punctuation analyzers.PunctuationResult `json:"punctuation"`
	Consistency analyzers.ConsistencyResult `json:"consistency"`
	Depth       analyzers.DepthResult       `json:"depth"`
}

// Report is created once per analysis and never mutated afterwards.
type Report struct {
	OverallScore       int            `json:"overall_score"`
	Confidence         int            `json:"confidence"`
	RiskLevel          RiskLevel      `json:"risk_level"`
	Scores             AnalyzerScores `json:"scores"`
	EvidenceHighlights []string       `json:"evidence_highlights"`
	Recommendations    []string       `json:"recommendations"`
	Degraded           []string       `json:"degraded,omitempty"`
}

// The weight vector sums to 1.00.
const (
	weightPerplexity  = 0.15
	weightBurstiness  = 0.15
	weightSyntactic   = 0.10
	weightCoherence   = 0.08
	weightAIPhrases   = 0.12
	weightStructural  = 0.12
	weightVocabulary  = 0.10
	weightPunctuation = 0.05
	weightConsistency = 0.05
	weightDepth       = 0.08
)

func aggregate(scores AnalyzerScores, degraded []string) Report {
	weighted := float64(scores.Perplexity.Risk)*weightPerplexity +
		float64(scores.Burstiness.Risk)*weightBurstiness +
		float64(scores.Syntactic.Risk)*weightSyntactic +
		float64(scores.Coherence.Risk)*weightCoherence +
		float64(scores.AIPhrases.Risk)*weightAIPhrases +
		float64(scores.Structural.Risk)*weightStructural +
		float64(scores.Vocabulary.Risk)*weightVocabulary +
		float64(scores.Punctuation.Risk)*weightPunctuation +
		float64(scores.Consistency.Risk)*weightConsistency +
		float64(scores.Depth.Risk)*weightDepth

	overall := clampScore(int(weighted + 0.5))

	allPatterns := collectPatterns(scores)

	confidence := 50
	switch {
	case len(allPatterns) >= 8:
		confidence = 95
	case len(allPatterns) >= 5:
		confidence = 85
	case len(allPatterns) >= 3:
		confidence = 75
	}

	agreeing := 0
	for _, risk := range []int{scores.Perplexity.Risk, scores.Burstiness.Risk, scores.AIPhrases.Risk, scores.Structural.Risk} {
		if risk > 60 {
			agreeing++
		}
	}
	if agreeing >= 3 {
		confidence += 15
		if confidence > 98 {
			confidence = 98
		}
	}

	highlights := allPatterns
	if len(highlights) > 5 {
		highlights = highlights[:5]
	}

	return Report{
		OverallScore:       overall,
		Confidence:         clampScore(confidence),
		RiskLevel:          RiskLevelFor(overall),
		Scores:             scores,
		EvidenceHighlights: highlights,
		Recommendations:    recommendations(scores),
		Degraded:           degraded,
	}
}

// collectPatterns preserves the fixed analyzer order; perplexity and phrase
// matching report through their own diagnostic fields instead.
func collectPatterns(s AnalyzerScores) []string {
	var out []string
	out = append(out, s.Burstiness.Patterns...)
	out = append(out, s.Syntactic.Patterns...)
	out = append(out, s.Coherence.Patterns...)
	out = append(out, s.Structural.DetectedPatterns...)
	out = append(out, s.Vocabulary.Patterns...)
	out = append(out, s.Punctuation.Patterns...)
	out = append(out, s.Consistency.Patterns...)
	out = append(out, s.Depth.Patterns...)
	return out
}

func recommendations(s AnalyzerScores) []string {
	var out []string
	if s.Perplexity.Risk > 70 {
		out = append(out, "Sentences show unnaturally predictable word patterns")
	}
	if s.Burstiness.Risk > 70 {
		out = append(out, "Text lacks natural variation in sentence structure")
	}
	if s.AIPhrases.Risk > 60 {
		out = append(out, fmt.Sprintf("Found %d common AI phrases", s.AIPhrases.TotalPhraseCount))
	}
	if s.Vocabulary.Risk > 60 {
		out = append(out, "Vocabulary diversity appears artificially high")
	}
	if s.Structural.Risk > 50 {
		out = append(out, "Text follows rigid structural patterns")
	}
	return out
}

func clampScore(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
