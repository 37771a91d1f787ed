package humanize

import "fmt"

type Tone string

const (
	ToneCasual       Tone = "casual"
	ToneProfessional Tone = "professional"
	ToneAcademic     Tone = "academic"
	ToneCreative     Tone = "creative"
)

type Intensity string

const (
	IntensityLight      Intensity = "light"
	IntensityMedium     Intensity = "medium"
	IntensityAggressive Intensity = "aggressive"
)

// Options is validated once at the boundary and passed around immutably.
// Escalation returns a new value; the caller's options are never touched.
type Options struct {
	Tone               Tone
	Intensity          Intensity
	PreserveTechnical  bool
	AddPersonalTouches bool
}

func (o Options) Validate() error {
	switch o.Tone {
	case ToneCasual, ToneProfessional, ToneAcademic, ToneCreative:
	default:
		return fmt.Errorf("unknown tone %q", o.Tone)
	}
	switch o.Intensity {
	case IntensityLight, IntensityMedium, IntensityAggressive:
	default:
		return fmt.Errorf("unknown intensity %q", o.Intensity)
	}
	return nil
}

// Escalated steps intensity up one level, capped at aggressive.
func (o Options) Escalated() Options {
	next := o
	switch o.Intensity {
	case IntensityLight:
		next.Intensity = IntensityMedium
	case IntensityMedium:
		next.Intensity = IntensityAggressive
	}
	return next
}
