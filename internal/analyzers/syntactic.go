package analyzers

import (
	"regexp"
	"strings"

	"veritext/internal/textutil"
)

var (
	subordinateKeyword = regexp.MustCompile(`(?i)\b(because|although|while|since|if|when|unless|as|whereas)\b`)
	parallelismTriple  = regexp.MustCompile(`(?i)(\w+),\s(\w+),\s(?:and|or)\s(\w+)`)
	sentenceTerminal   = regexp.MustCompile(`[.!?]$`)
)

const maxProxyDepth = 5

type SyntacticResult struct {
	AverageTreeDepth      float64
	TreeDepthVariance     float64
	SubordinateClauseRate float64
	ParallelismScore      int
	FragmentRatio         int
	Risk                  int
	Patterns              []string
}

// Syntactic approximates parse-tree depth from nesting punctuation and
// comma density. Real parsing is overkill for a fingerprint; the proxy only
// needs to expose uniformity across sentences.
func Syntactic(doc textutil.Document) SyntacticResult {
	if len(doc.Sentences) == 0 {
		return SyntacticResult{}
	}

	depths := make([]float64, len(doc.Sentences))
	fragments := 0
	for i, s := range doc.Sentences {
		depths[i] = float64(proxyDepth(s.Text))
		if !sentenceTerminal.MatchString(s.Text) || s.WordCount < 3 {
			fragments++
		}
	}
	depthMean, depthSD := textutil.MeanStd(depths)
	depthVariance := textutil.Round2(depthSD * depthSD)

	n := float64(len(doc.Sentences))
	subordinate := len(subordinateKeyword.FindAllString(doc.Text, -1))
	subordinateRate := textutil.Round2(float64(subordinate) / n)
	parallelism := int(float64(len(parallelismTriple.FindAllString(doc.Text, -1))) / n * 10)
	fragmentRatio := int(float64(fragments) / n * 100)

	var patterns []string
	risk := 0

	if parallelism > 5 {
		patterns = append(patterns, "Excessive parallelism (X, Y, and Z structures)")
		risk += 12
	}
	if subordinateRate > 0.5 {
		patterns = append(patterns, "High subordinate clause usage")
		risk += 8
	}
	if depthVariance < 0.3 {
		patterns = append(patterns, "Unnaturally consistent sentence complexity")
		risk += 15
	} else if depthVariance > 1.5 {
		risk -= 5
	}
	if fragmentRatio < 5 {
		patterns = append(patterns, "No sentence fragments (unnatural)")
		risk += 10
	}

	return SyntacticResult{
		AverageTreeDepth:      textutil.Round2(depthMean),
		TreeDepthVariance:     depthVariance,
		SubordinateClauseRate: subordinateRate,
		ParallelismScore:      parallelism,
		FragmentRatio:         fragmentRatio,
		Risk:                  clampRisk(risk),
		Patterns:              patterns,
	}
}

func proxyDepth(sentence string) int {
	depth := 1
	open := 0
	for _, r := range sentence {
		switch r {
		case '(', '[', '{':
			open++
		case ')', ']', '}':
			open--
		}
		if open+1 > depth {
			depth = open + 1
		}
	}
	depth += strings.Count(sentence, ",") / 3
	if depth > maxProxyDepth {
		depth = maxProxyDepth
	}
	return depth
}
