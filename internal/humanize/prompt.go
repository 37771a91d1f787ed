package humanize

import (
	"fmt"
	"strings"
)

// BuildPrompt produces the rewrite-service instruction conditioned on tone,
// intensity, and the option flags. The service does the heavy rewriting;
// the pipeline still normalizes its output locally afterwards.
func BuildPrompt(text string, opts Options) string {
	var b strings.Builder

	b.WriteString("Rewrite the following text to sound naturally human-written while maintaining its core message and information.\n\n")
	b.WriteString("CRITICAL REQUIREMENTS:\n")
	b.WriteString("1. Add natural imperfections: contractions, casual transitions, varied punctuation.\n")
	b.WriteString("2. Dramatically vary sentence structure: mix very short sentences (3-5 words) with long, complex ones (25+ words); create uneven paragraph lengths.\n")
	b.WriteString("3. Remove AI-typical phrases: no \"it's important to note that\", \"delve into\", \"furthermore\", \"moreover\", \"realm of\", \"landscape of\", \"tapestry\", \"in today's digital age\".\n")
	b.WriteString("4. Add unexpected elements: surprising word choices, brief examples, rhetorical questions, active voice.\n\n")

	fmt.Fprintf(&b, "5. Tone and Style (%s):\n%s\n\n", opts.Tone, toneInstructions(opts.Tone))
	fmt.Fprintf(&b, "6. Humanization Intensity (%s):\n%s\n\n", opts.Intensity, intensityInstructions(opts.Intensity))

	if opts.PreserveTechnical {
		b.WriteString("7. PRESERVE all technical terms, jargon, and specialized vocabulary exactly as written.\n")
	}
	if opts.AddPersonalTouches {
		b.WriteString("8. ADD brief personal touches like \"I think\", \"in my experience\", or casual observations where natural.\n")
	}

	b.WriteString("\nIMPORTANT:\n")
	b.WriteString("- DO NOT add explanations or meta-commentary\n")
	b.WriteString("- ONLY return the humanized text itself\n")
	b.WriteString("- Maintain all factual information and key points\n\n")
	b.WriteString("Original text to humanize:\n\n")
	b.WriteString(text)

	return b.String()
}

func toneInstructions(tone Tone) string {
	switch tone {
	case ToneCasual:
		return `   - Use conversational language and informal expressions
   - Write as if talking to a friend
   - Use "you" to address the reader directly
   - Keep it relaxed and approachable`
	case ToneProfessional:
		return `   - Maintain professional vocabulary
   - Use clear, direct business language
   - Keep formality balanced (not too stiff)
   - Focus on clarity and precision`
	case ToneAcademic:
		return `   - Use scholarly tone but avoid excessive formality
   - Include analytical language where appropriate
   - Balance formality with readability`
	case ToneCreative:
		return `   - Use vivid, descriptive language
   - Vary rhythm and pacing dramatically
   - Use sensory details and make it engaging`
	default:
		return "   - Use natural, balanced language"
	}
}

func intensityInstructions(intensity Intensity) string {
	switch intensity {
	case IntensityLight:
		return `   - Make minimal changes to structure
   - Focus primarily on removing obvious AI phrases
   - Change 20-30% of the text`
	case IntensityMedium:
		return `   - Moderate restructuring of sentences
   - Add noticeable personality and variation
   - Change 40-60% of the text`
	case IntensityAggressive:
		return `   - Extensively rewrite and restructure
   - Maximum humanization and personality
   - Change 70-90% of the text
   - Prioritize human-like quality over similarity`
	default:
		return "   - Apply moderate humanization"
	}
}
