package humanize

import (
	"strings"
	"testing"
)

func TestBuildPromptIncludesOptionSections(t *testing.T) {
	opts := Options{
		Tone:               ToneAcademic,
		Intensity:          IntensityAggressive,
		PreserveTechnical:  true,
		AddPersonalTouches: true,
	}
	prompt := BuildPrompt("The original text.", opts)

	for _, want := range []string{
		"(academic)",
		"(aggressive)",
		"PRESERVE all technical terms",
		"ADD brief personal touches",
		"The original text.",
	} {
		if !strings.Contains(prompt, want) {
			t.Fatalf("prompt missing %q", want)
		}
	}
}

func TestBuildPromptOmitsUnsetFlags(t *testing.T) {
	prompt := BuildPrompt("Text.", Options{Tone: ToneCasual, Intensity: IntensityLight})
	if strings.Contains(prompt, "PRESERVE all technical terms") {
		t.Fatalf("technical preservation section should be absent")
	}
	if strings.Contains(prompt, "ADD brief personal touches") {
		t.Fatalf("personal touches section should be absent")
	}
}
