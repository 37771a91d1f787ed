package textutil

import (
	"math"
	"regexp"
	"strings"
)

var (
	wordFinder     = regexp.MustCompile(`[a-z0-9']+`)
	sentenceChunk  = regexp.MustCompile(`[^.!?\n]+[.!?]*`)
	paragraphSplit = regexp.MustCompile(`\n{2,}`)
)

// Sentence is a substring of the original text with byte offsets preserved.
type Sentence struct {
	Text        string
	Start       int
	End         int
	WordCount   int
	CommaCount  int
	ClauseCount int
}

// Document caches the derived views of a text so the analyzers do not
// re-tokenize the same input ten times.
type Document struct {
	Text       string
	Sentences  []Sentence
	Words      []string
	Paragraphs []string
}

func Parse(text string) Document {
	return Document{
		Text:       text,
		Sentences:  Sentences(text),
		Words:      Words(text),
		Paragraphs: Paragraphs(text),
	}
}

// Words returns lower-cased, punctuation-stripped tokens in order.
func Words(text string) []string {
	return wordFinder.FindAllString(strings.ToLower(text), -1)
}

// Sentences splits on terminal punctuation. Abbreviation handling is out of
// scope; empty input yields an empty slice.
func Sentences(text string) []Sentence {
	locs := sentenceChunk.FindAllStringIndex(text, -1)
	out := make([]Sentence, 0, len(locs))
	for _, loc := range locs {
		start, end := loc[0], loc[1]
		raw := text[start:end]
		trimmed := strings.TrimSpace(raw)
		if trimmed == "" {
			continue
		}
		lead := strings.Index(raw, trimmed)
		start += lead
		end = start + len(trimmed)
		words := Words(trimmed)
		commas := strings.Count(trimmed, ",")
		clauses := commas + strings.Count(trimmed, ";") + strings.Count(trimmed, ":") + 1
		out = append(out, Sentence{
			Text:        trimmed,
			Start:       start,
			End:         end,
			WordCount:   len(words),
			CommaCount:  commas,
			ClauseCount: clauses,
		})
	}
	return out
}

// Paragraphs splits on blank lines, dropping empty blocks.
func Paragraphs(text string) []string {
	blocks := paragraphSplit.Split(text, -1)
	out := make([]string, 0, len(blocks))
	for _, b := range blocks {
		if strings.TrimSpace(b) != "" {
			out = append(out, b)
		}
	}
	return out
}

var stopWords = map[string]struct{}{
	"the": {}, "a": {}, "an": {}, "and": {}, "or": {}, "but": {}, "in": {},
	"on": {}, "at": {}, "to": {}, "for": {}, "of": {}, "with": {}, "is": {},
	"are": {}, "be": {},
}

// ContentWordSet returns the sentence's word set with stop words removed.
func ContentWordSet(text string) map[string]struct{} {
	out := map[string]struct{}{}
	for _, w := range Words(text) {
		if _, stop := stopWords[w]; !stop {
			out[w] = struct{}{}
		}
	}
	return out
}

// WordSet keeps every token, stop words included.
func WordSet(text string) map[string]struct{} {
	out := map[string]struct{}{}
	for _, w := range Words(text) {
		out[w] = struct{}{}
	}
	return out
}

func Jaccard(a, b map[string]struct{}) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 0
	}
	inter := 0
	for k := range a {
		if _, ok := b[k]; ok {
			inter++
		}
	}
	union := len(a) + len(b) - inter
	if union <= 0 {
		return 0
	}
	return float64(inter) / float64(union)
}

func MeanStd(values []float64) (mean, sd float64) {
	if len(values) == 0 {
		return 0, 0
	}
	for _, v := range values {
		mean += v
	}
	mean /= float64(len(values))
	if len(values) == 1 {
		return mean, 0
	}
	variance := 0.0
	for _, v := range values {
		d := v - mean
		variance += d * d
	}
	variance /= float64(len(values))
	return mean, math.Sqrt(variance)
}

// Round2 keeps diagnostics readable without dragging full float noise into
// reports.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
