package analyzers

import (
	"strings"
	"testing"

	"veritext/internal/textutil"
)

func TestPhrasesCountsRepeatedMarker(t *testing.T) {
	// 10 marker occurrences across 5 sentences.
	sentence := "It's important to note that results vary, and it's important to note that context matters."
	text := strings.Repeat(sentence+" ", 5)
	doc := textutil.Parse(text)

	got := Phrases(doc)
	if got.TotalPhraseCount != 10 {
		t.Fatalf("expected 10 phrase hits, got %d", got.TotalPhraseCount)
	}
	if got.Risk < 75 {
		t.Fatalf("expected risk >= 75 at this density, got %d", got.Risk)
	}
	cat, ok := got.ByCategory["hedging_phrases"]
	if !ok {
		t.Fatalf("expected hedging_phrases category, got %v", got.ByCategory)
	}
	if cat.Count != 10 {
		t.Fatalf("expected category count 10, got %d", cat.Count)
	}
}

func TestPhrasesCleanTextScoresLow(t *testing.T) {
	doc := textutil.Parse("My dog dug up the garden again. I yelled. He wagged his tail like a hero.")
	got := Phrases(doc)
	if got.TotalPhraseCount != 0 {
		t.Fatalf("expected no phrase hits, got %d", got.TotalPhraseCount)
	}
	if got.Risk != 0 {
		t.Fatalf("expected zero risk, got %d", got.Risk)
	}
}

func TestBurstinessFlagsUniformLengths(t *testing.T) {
	// Six sentences of exactly three words each: CV is zero.
	doc := textutil.Parse("One two three. Four five six. Cats eat fish. Dogs chase cars. Birds like seeds. Kids play games.")

	got := Burstiness(doc)
	if got.CoefficientOfVariation != 0 {
		t.Fatalf("expected CV 0, got %f", got.CoefficientOfVariation)
	}
	if got.Risk < 15 {
		t.Fatalf("expected at least 15 risk from the uniformity pattern, got %d", got.Risk)
	}
	found := false
	for _, p := range got.Patterns {
		if strings.Contains(p, "consistent structure") {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected a consistency pattern, got %v", got.Patterns)
	}
}

func TestBurstinessVariedTextScoresLower(t *testing.T) {
	varied := "No. That was not how it went at all, and everyone in the room knew it before the door even closed. She laughed. Then, after a long pause that felt like a held breath, the meeting simply moved on without her."
	uniform := "One two three. Four five six. Cats eat fish. Dogs chase cars. Birds like seeds. Kids play games."

	v := Burstiness(textutil.Parse(varied))
	u := Burstiness(textutil.Parse(uniform))
	if v.Risk >= u.Risk {
		t.Fatalf("varied text should score below uniform text: %d vs %d", v.Risk, u.Risk)
	}
}

func TestPerplexityRepetitiveTextIsPredictable(t *testing.T) {
	repetitive := strings.Repeat("the cat sat on the mat and the cat sat on the mat. ", 10)
	doc := textutil.Parse(repetitive)

	got := Perplexity(doc)
	if got.OverallPerplexity >= 100 {
		t.Fatalf("repetitive text should be predictable, got perplexity %f", got.OverallPerplexity)
	}
	if got.Risk < 50 {
		t.Fatalf("expected elevated risk for repetitive text, got %d", got.Risk)
	}
}

func TestBuildModelTablesBothOrders(t *testing.T) {
	words := []string{"the", "cat", "sat", "on", "the", "mat"}
	model := buildModel(words)

	if got := model.trigrams["the cat sat"]["on"]; got != 1 {
		t.Fatalf("trigram followers miscounted: got %d", got)
	}
	if got := model.fourgrams["the cat sat on"]["the"]; got != 1 {
		t.Fatalf("fourgram followers miscounted: got %d", got)
	}
	// The final n-gram has no follower; the empty string records that.
	if got := model.fourgrams["sat on the mat"][""]; got != 1 {
		t.Fatalf("trailing fourgram should map to the empty follower, got %d", got)
	}
}

func TestDepthRewardsAnecdotes(t *testing.T) {
	anecdote := textutil.Parse("Last week I tried this myself and it failed twice. In my experience the second attempt always goes better. I remember when the whole batch burned.")
	generic := textutil.Parse("Various aspects of the process can be considered. Numerous factors play a significant role. Several elements contribute to the overall outcome in many ways.")

	a := Depth(anecdote)
	g := Depth(generic)
	if a.Risk >= g.Risk {
		t.Fatalf("anecdotal text should score below generic text: %d vs %d", a.Risk, g.Risk)
	}
}

func TestVocabularyFlagsFormalRegister(t *testing.T) {
	formal := "We shall utilize the aforementioned framework and commence the review herein. One must endeavor to peruse the clauses therein, pursuant to the policy. The committee will utilize the aforementioned criteria."
	got := Vocabulary(textutil.Parse(formal))
	if got.FormalWordCount < 5 {
		t.Fatalf("expected formal word count >= 5, got %d", got.FormalWordCount)
	}
	if got.Risk == 0 {
		t.Fatalf("expected nonzero risk for stiff formal register")
	}
}

// Analyzers must survive degenerate input without panicking and return
// neutral scores.
func TestAnalyzersNeutralOnEmptyDocument(t *testing.T) {
	doc := textutil.Parse("   \n\t  ")

	checks := []struct {
		name string
		risk int
	}{
		{"perplexity", Perplexity(doc).Risk},
		{"burstiness", Burstiness(doc).Risk},
		{"syntactic", Syntactic(doc).Risk},
		{"coherence", Coherence(doc).Risk},
		{"phrases", Phrases(doc).Risk},
		{"structural", Structural(doc).Risk},
		{"vocabulary", Vocabulary(doc).Risk},
		{"punctuation", Punctuation(doc).Risk},
		{"consistency", Consistency(doc).Risk},
		{"depth", Depth(doc).Risk},
	}
	for _, c := range checks {
		if c.risk != 0 {
			t.Fatalf("%s: expected neutral risk on empty input, got %d", c.name, c.risk)
		}
	}
}

func TestCoherenceNeedsTwoSentences(t *testing.T) {
	got := Coherence(textutil.Parse("Just one sentence here."))
	if got.Risk != 0 || got.AverageCoherence != 0 {
		t.Fatalf("single sentence should be neutral, got %+v", got)
	}
}

func TestStructuralFlagsFiveParagraphEssay(t *testing.T) {
	para := "This is a sentence. This is another one. And a third one closes it."
	text := strings.Repeat(para+"\n\n", 5)
	got := Structural(textutil.Parse(text))

	found := false
	for _, p := range got.DetectedPatterns {
		if strings.Contains(p, "5-paragraph") {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected the 5-paragraph pattern, got %v", got.DetectedPatterns)
	}
	if got.Risk < 15 {
		t.Fatalf("expected risk >= 15, got %d", got.Risk)
	}
}
