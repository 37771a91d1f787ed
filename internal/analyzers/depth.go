package analyzers

import (
	"regexp"

	"veritext/internal/textutil"
)

var (
	specificMarkers = regexp.MustCompile(`(?i)\b(specifically|concretely|for example|for instance|such as|including|like)\b`)
	abstractMarkers = regexp.MustCompile(`(?i)\b(generally|typically|usually|often|might|could|may)\b`)
	exampleMarkers  = regexp.MustCompile(`(?i)for example|for instance|such as|like|specifically|case study|instance|example`)
	anecdoteMarkers = regexp.MustCompile(`(?i)\b(i remember|when i|i think|i believe|in my experience|personally|from my|my experience)\b`)
	strongOpinions  = regexp.MustCompile(`(?i)\b(obviously|clearly|undeniably|definitely|certainly|absolutely)\b`)
	hedgingTerms    = regexp.MustCompile(`(?i)\b(seems|appears|might|could|possibly|arguably|perhaps)\b`)
	balanceMarkers  = regexp.MustCompile(`(?i)\b(on the other hand|however|conversely|alternatively|in contrast)\b`)
)

type DepthResult struct {
	SpecificityRatio int
	ExampleCount     int
	OpinionStrength  int
	BalanceScore     int
	Risk             int
	Patterns         []string
}

// Depth measures whether the text commits to anything: concrete detail,
// personal experience, actual opinions. A personal anecdote is the
// strongest human signal this analyzer knows.
func Depth(doc textutil.Document) DepthResult {
	if len(doc.Sentences) == 0 {
		return DepthResult{}
	}

	var patterns []string
	risk := 0

	specific := len(specificMarkers.FindAllString(doc.Text, -1))
	abstract := len(abstractMarkers.FindAllString(doc.Text, -1))
	denom := specific + abstract
	if denom == 0 {
		denom = 1
	}
	specificity := specific * 100 / denom

	examples := len(exampleMarkers.FindAllString(doc.Text, -1))

	if anecdoteMarkers.MatchString(doc.Text) {
		patterns = append(patterns, "Personal anecdotes found")
		risk -= 15
	} else {
		patterns = append(patterns, "No personal anecdotes (AI trait)")
		risk += 10
	}

	strong := len(strongOpinions.FindAllString(doc.Text, -1))
	hedging := len(hedgingTerms.FindAllString(doc.Text, -1))
	opinionDenom := strong + hedging
	if opinionDenom == 0 {
		opinionDenom = 1
	}
	opinionStrength := strong * 100 / opinionDenom
	if opinionStrength < 30 {
		patterns = append(patterns, "Excessive hedging (typical AI behavior)")
		risk += 12
	}

	balance := len(balanceMarkers.FindAllString(doc.Text, -1)) * 100 / len(doc.Sentences)
	if balance > 30 {
		patterns = append(patterns, "Excessive balance (presenting both sides equally)")
		risk += 10
	}

	return DepthResult{
		SpecificityRatio: specificity,
		ExampleCount:     examples,
		OpinionStrength:  opinionStrength,
		BalanceScore:     balance,
		Risk:             clampRisk(risk),
		Patterns:         patterns,
	}
}
