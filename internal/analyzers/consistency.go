package analyzers

import (
	"regexp"

	"veritext/internal/textutil"
)

var (
	pastMarkers    = regexp.MustCompile(`(?i)\b(was|were|had|did|went|said|told)\b`)
	presentMarkers = regexp.MustCompile(`(?i)\b(is|are|have|do|goes|says|tells)\b`)
	futureMarkers  = regexp.MustCompile(`(?i)\b(will|shall|going to)\b`)
	passiveVoice   = regexp.MustCompile(`(?i)\b(was|were|is|are|be|been)\s+\w+ed\b`)
	firstPerson    = regexp.MustCompile(`(?i)\b(i|we|me|us|my|our)\b`)
	secondPerson   = regexp.MustCompile(`(?i)\b(you|your)\b`)
	thirdPerson    = regexp.MustCompile(`(?i)\b(he|she|it|they|his|her|their)\b`)
	anyPronoun     = regexp.MustCompile(`(?i)\b(he|she|it|they|this|that)\b`)
)

type ConsistencyResult struct {
	TenseMaintenance int
	VoiceConsistency int
	PointOfViewCount int
	PronounAmbiguity int
	Risk             int
	Patterns         []string
}

// Consistency checks cross-sentence discipline: humans slip between tenses,
// voices, and viewpoints; generated prose holds them rigid.
func Consistency(doc textutil.Document) ConsistencyResult {
	if len(doc.Sentences) == 0 {
		return ConsistencyResult{}
	}

	var patterns []string
	risk := 0

	past := len(pastMarkers.FindAllString(doc.Text, -1))
	present := len(presentMarkers.FindAllString(doc.Text, -1))
	future := len(futureMarkers.FindAllString(doc.Text, -1))
	totalTense := past + present + future

	tenseMaintenance := 0
	if totalTense > 0 {
		dominant := past
		if present > dominant {
			dominant = present
		}
		if future > dominant {
			dominant = future
		}
		tenseMaintenance = int(float64(dominant) / float64(totalTense) * 100)
		if tenseMaintenance > 95 {
			patterns = append(patterns, "Perfect tense consistency (suspiciously rigid)")
			risk += 10
		}
	}

	passive := len(passiveVoice.FindAllString(doc.Text, -1))
	active := len(doc.Sentences) - passive
	majority := passive
	if active > majority {
		majority = active
	}
	voiceConsistency := int(float64(majority) / float64(len(doc.Sentences)) * 100)
	if voiceConsistency > 90 {
		patterns = append(patterns, "Suspiciously consistent voice")
		risk += 8
	}

	povs := 0
	for _, re := range []*regexp.Regexp{firstPerson, secondPerson, thirdPerson} {
		if re.MatchString(doc.Text) {
			povs++
		}
	}
	if povs == 1 {
		patterns = append(patterns, "Rigid POV consistency")
		risk += 5
	} else if povs > 2 {
		patterns = append(patterns, "Multiple POV shifts")
		risk += 8
	}

	// Pronoun ambiguity as a fixed function of pronoun density; detection
	// output must be reproducible for identical input.
	pronouns := len(anyPronoun.FindAllString(doc.Text, -1))
	ambiguity := pronouns * 100 / (len(doc.Words) + 1)
	if ambiguity > 20 {
		ambiguity = 20
	}

	return ConsistencyResult{
		TenseMaintenance: tenseMaintenance,
		VoiceConsistency: voiceConsistency,
		PointOfViewCount: povs,
		PronounAmbiguity: ambiguity,
		Risk:             clampRisk(risk),
		Patterns:         patterns,
	}
}
