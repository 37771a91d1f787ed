package humanize

import (
	"math/rand"
	"regexp"
	"strings"

	"veritext/internal/textutil"
)

var (
	dependentClause = regexp.MustCompile(`(?i)^\s*(although|because|if|when|while|since|though)`)
	plainOpener     = regexp.MustCompile(`^(The|A|An|It|This|That|These|Those)\b`)
)

var openingQualifiers = []string{
	"honestly,", "really,", "truthfully,", "look,", "basically,", "simply put,",
}

// restructureSentences reorders clauses, varies openings, and prefixes
// qualifiers on roughly 40% of eligible sentences. Eligibility requires at
// least five words; short sentences pass through untouched.
func restructureSentences(text string, rng *rand.Rand) string {
	sentences := textutil.Sentences(text)
	if len(sentences) == 0 {
		return text
	}

	out := make([]string, 0, len(sentences))
	for _, s := range sentences {
		if s.WordCount < 5 || rng.Float64() > 0.4 {
			out = append(out, s.Text)
			continue
		}
		out = append(out, restructureOne(s.Text, rng))
	}
	return tidyWhitespace(strings.Join(out, " "))
}

func restructureOne(sentence string, rng *rand.Rand) string {
	result := sentence

	// Swap a trailing dependent clause to the front.
	if strings.Contains(sentence, ",") && rng.Float64() > 0.5 {
		parts := strings.SplitN(sentence, ",", 2)
		if len(parts) == 2 && rng.Float64() > 0.5 && dependentClause.MatchString(parts[1]) {
			result = strings.TrimSpace(parts[1]) + ", " + strings.TrimSpace(parts[0])
		}
	}

	// Vary a stock opener by rotating the subject toward the end.
	if rng.Float64() > 0.6 && plainOpener.MatchString(result) {
		words := strings.Fields(result)
		if len(words) > 4 && rng.Float64() > 0.7 {
			ending := strings.Join(words[2:], " ")
			result = upperFirst(ending) + ", " + words[0] + " " + words[1]
		}
	}

	// Prefix an informal qualifier.
	if rng.Float64() > 0.7 {
		q := openingQualifiers[rng.Intn(len(openingQualifiers))]
		result = q + " " + lowerFirst(result)
	}

	return result
}

func upperFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}
