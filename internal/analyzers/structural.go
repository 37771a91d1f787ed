package analyzers

import (
	"math"
	"regexp"
	"strings"

	"veritext/internal/textutil"
)

var (
	topicOpener    = regexp.MustCompile(`^(This|The|A|In|These|Students)`)
	tripleListItem = regexp.MustCompile(`[-*•]\s.+\n[-*•]\s.+\n[-*•]\s.+`)
	headerLine     = regexp.MustCompile(`(?m)^#+\s.+$`)
	headerPrefix   = regexp.MustCompile(`^#+\s`)
	wordSplit      = regexp.MustCompile(`[\s\W]`)
)

type StructuralResult struct {
	DetectedPatterns []string
	Risk             int
	Severity         string
}

// Structural looks for the essay-template shapes generators default to.
func Structural(doc textutil.Document) StructuralResult {
	if len(doc.Sentences) == 0 {
		return StructuralResult{Severity: "low"}
	}

	paragraphs := doc.Paragraphs
	var patterns []string
	risk := 0

	sentenceCounts := make([]int, len(paragraphs))
	for i, p := range paragraphs {
		sentenceCounts[i] = len(textutil.Sentences(p))
	}

	if len(paragraphs) == 5 && allAtLeast(sentenceCounts, 3) {
		patterns = append(patterns, "Classic 5-paragraph essay structure")
		risk += 15
	}

	topicOpeners := 0
	for _, p := range paragraphs {
		ss := textutil.Sentences(p)
		if len(ss) > 0 && topicOpener.MatchString(ss[0].Text) {
			topicOpeners++
		}
	}
	if len(paragraphs) > 0 && float64(topicOpeners) > float64(len(paragraphs))*0.8 {
		patterns = append(patterns, "Every paragraph starts with topic sentence")
		risk += 10
	}

	if len(paragraphs) > 3 && paragraphLengthsUniform(sentenceCounts) {
		patterns = append(patterns, "Suspiciously consistent paragraph lengths")
		risk += 12
	}

	if tripleListItem.MatchString(doc.Text) {
		patterns = append(patterns, "Lists with exactly 3 items (AI triads)")
		risk += 8
	}

	if len(paragraphs) > 3 && noExtremeParagraphs(sentenceCounts) {
		patterns = append(patterns, "No very short or very long paragraphs")
		risk += 8
	}

	headers := headerLine.FindAllString(doc.Text, -1)
	if len(headers) > 2 && headersParallel(headers) {
		patterns = append(patterns, "Perfectly parallel header structure")
		risk += 10
	}

	severity := "low"
	if risk > 40 {
		severity = "high"
	} else if risk > 20 {
		severity = "medium"
	}

	return StructuralResult{
		DetectedPatterns: patterns,
		Risk:             clampRisk(risk),
		Severity:         severity,
	}
}

func allAtLeast(counts []int, min int) bool {
	for _, c := range counts {
		if c < min {
			return false
		}
	}
	return true
}

// paragraphLengthsUniform reports whether every paragraph sits within one
// sentence of the mean length.
func paragraphLengthsUniform(counts []int) bool {
	if len(counts) == 0 {
		return false
	}
	sum := 0
	for _, c := range counts {
		sum += c
	}
	avg := float64(sum) / float64(len(counts))
	for _, c := range counts {
		if math.Abs(float64(c)-avg) > 1 {
			return false
		}
	}
	return true
}

func noExtremeParagraphs(counts []int) bool {
	for _, c := range counts {
		if c < 2 || c > 8 {
			return false
		}
	}
	return true
}

func headersParallel(headers []string) bool {
	first := ""
	for i, h := range headers {
		stripped := headerPrefix.ReplaceAllString(h, "")
		fields := wordSplit.Split(stripped, 2)
		lead := ""
		if len(fields) > 0 {
			lead = strings.ToLower(fields[0])
		}
		if i == 0 {
			first = lead
			continue
		}
		if lead != first {
			return false
		}
	}
	return true
}
