package analyzers

import (
	"regexp"
	"sort"

	"veritext/internal/textutil"
)

// The phrase dictionary is grouped by the habit it evidences. Matching is
// case-insensitive and whole-phrase.
var aiPhraseDictionary = map[string][]string{
	"hedging_phrases": {
		"it's important to note that",
		"it is important to note that",
		"it's worth noting",
		"it is worth noting",
		"it should be noted",
		"one might argue that",
		"some might say that",
		"it could be argued that",
		"it is worth considering",
		"it should be emphasized",
	},
	"transition_overuse": {
		"furthermore,",
		"moreover,",
		"additionally,",
		"in addition to this,",
		"building upon this,",
		"on the other hand,",
		"conversely,",
		"subsequently,",
		"in consequence,",
		"as a result,",
	},
	"metacognitive_phrases": {
		"delve into",
		"dive deep into",
		"explore the intricacies",
		"unpack this concept",
		"shed light on",
		"paint a picture",
		"illuminate",
		"elucidate",
		"expound upon",
		"elaborate on",
	},
	"abstract_overuse": {
		"realm",
		"landscape",
		"tapestry",
		"multifaceted",
		"nuanced",
		"paradigm shift",
		"quintessential",
		"seminal",
		"proverbial",
		"apotheosis",
	},
	"conclusion_markers": {
		"in conclusion,",
		"in summary,",
		"to summarize,",
		"in essence,",
		"ultimately,",
		"in the final analysis,",
		"to conclude,",
		"in closing,",
	},
	"emphasis_patterns": {
		"cannot be overstated",
		"plays a crucial role",
		"of paramount importance",
		"vital to understand",
		"essential to recognize",
		"cannot understate",
		"of utmost importance",
		"extraordinarily significant",
	},
}

var phraseRegexps = compilePhraseDictionary()

func compilePhraseDictionary() map[string][]*regexp.Regexp {
	out := map[string][]*regexp.Regexp{}
	for category, phrases := range aiPhraseDictionary {
		res := make([]*regexp.Regexp, 0, len(phrases))
		for _, p := range phrases {
			res = append(res, phrasePattern(p))
		}
		out[category] = res
	}
	return out
}

// phrasePattern anchors on word boundaries only where the phrase itself
// starts or ends with a word character; a trailing comma carries its own
// boundary.
func phrasePattern(phrase string) *regexp.Regexp {
	expr := regexp.QuoteMeta(phrase)
	if isWordChar(phrase[0]) {
		expr = `\b` + expr
	}
	if isWordChar(phrase[len(phrase)-1]) {
		expr += `\b`
	}
	return regexp.MustCompile(`(?i)` + expr)
}

func isWordChar(b byte) bool {
	return b == '_' || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || (b >= '0' && b <= '9')
}

type PhraseCategory struct {
	Count    int
	Examples []string
}

type PhrasesResult struct {
	TotalPhraseCount int
	ByCategory       map[string]PhraseCategory
	Risk             int
}

// Phrases counts known machine-flavored phrases per category and converts
// the per-sentence density into a stepped risk score.
func Phrases(doc textutil.Document) PhrasesResult {
	if len(doc.Sentences) == 0 {
		return PhrasesResult{ByCategory: map[string]PhraseCategory{}}
	}

	byCategory := map[string]PhraseCategory{}
	total := 0
	categories := make([]string, 0, len(phraseRegexps))
	for c := range phraseRegexps {
		categories = append(categories, c)
	}
	sort.Strings(categories)

	for _, category := range categories {
		cat := PhraseCategory{}
		for _, re := range phraseRegexps[category] {
			matches := re.FindAllString(doc.Text, -1)
			if len(matches) == 0 {
				continue
			}
			cat.Count += len(matches)
			total += len(matches)
			if len(cat.Examples) < 2 {
				cat.Examples = append(cat.Examples, matches[0])
			}
		}
		byCategory[category] = cat
	}

	density := float64(total) / float64(len(doc.Sentences)) * 100

	var risk int
	switch {
	case density > 20:
		risk = 85
	case density > 15:
		risk = 75
	case density > 10:
		risk = 60
	case density > 5:
		risk = 40
	case density > 2:
		risk = 20
	}

	return PhrasesResult{
		TotalPhraseCount: total,
		ByCategory:       byCategory,
		Risk:             clampRisk(risk),
	}
}
