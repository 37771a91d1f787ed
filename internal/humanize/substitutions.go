package humanize

import (
	"regexp"
	"sort"
	"strings"
)

// replacer applies a deterministic phrase map. Rules are compiled in sorted
// key order so identical input always produces identical output.
type replacer struct {
	rules []replaceRule
}

type replaceRule struct {
	re   *regexp.Regexp
	with string
}

func newReplacer(mapping map[string]string) *replacer {
	keys := make([]string, 0, len(mapping))
	for k := range mapping {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	r := &replacer{rules: make([]replaceRule, 0, len(keys))}
	for _, k := range keys {
		expr := regexp.QuoteMeta(k)
		if isWordByte(k[0]) {
			expr = `\b` + expr
		}
		if isWordByte(k[len(k)-1]) {
			expr += `\b`
		}
		r.rules = append(r.rules, replaceRule{
			re:   regexp.MustCompile(`(?i)` + expr),
			with: mapping[k],
		})
	}
	return r
}

func (r *replacer) apply(text string) string {
	for _, rule := range r.rules {
		text = rule.re.ReplaceAllString(text, rule.with)
	}
	return text
}

func isWordByte(b byte) bool {
	return b == '\'' || b == '_' || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || (b >= '0' && b <= '9')
}

// Known machine phrasings and their plainer equivalents. Applied before any
// probabilistic stage so the obvious tells are gone even at light intensity.
var patternRemovals = newReplacer(map[string]string{
	"it's important to note that":  "Importantly, ",
	"it is important to note that": "Importantly, ",
	"it is worth noting that":      "",
	"it's worth noting that":       "",
	"in today's digital age":       "today",
	"in this digital age":          "now",
	"in this day and age":          "these days",
	"in conclusion,":               "So,",
	"to conclude,":                 "ultimately,",
	"in summary,":                  "simply put,",
	"delve into":                   "understand",
	"delves into":                  "explores",
	"moreover,":                    "also,",
	"furthermore,":                 "and",
	"additionally,":                "plus,",
	"in addition to this,":         "also,",
	"the realm of":                 "the world of",
	"the landscape of":             "the field of",
	"a multifaceted issue":         "a complex problem",
	"multifaceted":                 "complex",
	"nuanced approach":             "careful approach",
	"plays a crucial role":         "matters",
	"plays a vital role":           "is important",
	"of paramount importance":      "very important",
	"paramount importance":         "key",
	"cannot be overstated":         "is really important",
	"shed light on":                "show",
	"shed light upon":              "reveal",
	"elucidate":                    "explain",
	"navigate the complexities":    "deal with the complexity",
	"first and foremost":           "first",
	"when all is said and done":    "ultimately",
	"at the end of the day":        "ultimately",
	"one must consider":            "consider",
	"it is crucial to":             "you need to",
})

var formalToCasual = newReplacer(map[string]string{
	"utilize":        "use",
	"utilise":        "use",
	"commence":       "start",
	"endeavor":       "try",
	"peruse":         "read",
	"pursuant":       "following",
	"aforementioned": "mentioned",
	"herein":         "here",
	"therein":        "there",
	"ascertain":      "find out",
	"facilitate":     "help",
	"demonstrate":    "show",
	"illustrate":     "show",
	"expound":        "explain",
	"propound":       "suggest",
	"advocate":       "support",
	"substantial":    "significant",
	"ubiquitous":     "everywhere",
	"ameliorate":     "improve",
	"exacerbate":     "make worse",
	"obfuscate":      "confuse",
	"obfuscation":    "confusion",
	"efficacious":    "effective",
	"dubious":        "doubtful",
	"innocuous":      "harmless",
	"egregious":      "terrible",
	"ephemeral":      "temporary",
	"erratic":        "unpredictable",
	"esoteric":       "specialized",
	"fortuitous":     "lucky",
})

var contractions = newReplacer(map[string]string{
	"is not":     "isn't",
	"can not":    "can't",
	"cannot":     "can't",
	"will not":   "won't",
	"do not":     "don't",
	"does not":   "doesn't",
	"would not":  "wouldn't",
	"should not": "shouldn't",
	"I am":       "I'm",
	"you are":    "you're",
	"we are":     "we're",
	"they are":   "they're",
	"it is":      "it's",
	"let us":     "let's",
})

// naturalizeVocabulary swaps formal words for everyday ones; contraction
// folding only applies to tones where contractions belong.
func naturalizeVocabulary(text string, tone Tone) string {
	out := formalToCasual.apply(text)
	if tone == ToneCasual || tone == ToneProfessional {
		out = contractions.apply(out)
	}
	return out
}

// boosterAlternatives maps the most statistically common words to rarer but
// natural stand-ins; substitution is probabilistic (~40% per occurrence).
var boosterAlternatives = map[string][]string{
	"good":   {"solid", "sound", "compelling", "strong"},
	"bad":    {"problematic", "flawed", "concerning", "troubling"},
	"thing":  {"matter", "element", "aspect", "factor"},
	"very":   {"quite", "remarkably", "exceptionally", "particularly"},
	"really": {"genuinely", "actually", "truly", "certainly"},
	"also":   {"equally", "likewise", "similarly", "as well"},
	"great":  {"significant", "substantial", "considerable", "noteworthy"},
	"big":    {"substantial", "considerable", "major", "significant"},
	"said":   {"noted", "observed", "remarked", "indicated"},
	"showed": {"demonstrated", "indicated", "revealed", "illustrated"},
}

var collapseSpaces = regexp.MustCompile(`[ \t]+`)

func tidyWhitespace(text string) string {
	return strings.TrimSpace(collapseSpaces.ReplaceAllString(text, " "))
}
