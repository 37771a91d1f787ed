package humanize

import (
	"context"
	"fmt"
	"log/slog"

	"veritext/internal/detect"
)

// Confidence bands for the refined output.
const (
	ConfidenceUndetectable = "UNDETECTABLE"
	ConfidenceLowRisk      = "LOW_RISK"
	ConfidenceModerateRisk = "MODERATE_RISK"
)

// acceptScore is the detection score below which a pass is accepted.
const acceptScore = 35

// Detector scores a text for machine-generation likelihood.
type Detector interface {
	Analyze(ctx context.Context, text string) detect.Report
}

// Report is the outcome of an iterative humanization run.
type Report struct {
	FinalText      string   `json:"finalText"`
	Iterations     int      `json:"iterations"`
	InitialScore   int      `json:"initialScore"`
	FinalScore     int      `json:"finalScore"`
	ChangesApplied []string `json:"changesApplied"`
	Confidence     string   `json:"confidence"`
	LocalOnly      bool     `json:"localOnly"`
}

// Refiner runs the pipeline repeatedly, escalating intensity between
// passes, until the detector accepts the text or the iteration budget
// is spent.
type Refiner struct {
	pipeline      *Pipeline
	detector      Detector
	log           *slog.Logger
	maxIterations int
}

func NewRefiner(pipeline *Pipeline, detector Detector, log *slog.Logger) *Refiner {
	if log == nil {
		log = slog.Default()
	}
	return &Refiner{pipeline: pipeline, detector: detector, log: log, maxIterations: 3}
}

// Refine humanizes text until the detector accepts it or the budget is
// spent. Each pass feeds the prior candidate back through the pipeline so
// escalated intensities compound; the meaning floor is always checked
// against the original text, and a candidate below it is never adopted.
// A pass whose quick estimate says further refinement will not bite ends
// the loop early with the best candidate so far.
func (r *Refiner) Refine(ctx context.Context, text string, opts Options) (Report, error) {
	if err := opts.Validate(); err != nil {
		return Report{}, err
	}

	initial := r.detector.Analyze(ctx, text)

	rep := Report{
		FinalText:    text,
		InitialScore: initial.OverallScore,
		FinalScore:   initial.OverallScore,
		LocalOnly:    true,
	}
	bestScore := initial.OverallScore

	current := text
	for i := 0; i < r.maxIterations; i++ {
		rep.Iterations = i + 1
		rep.ChangesApplied = append(rep.ChangesApplied,
			fmt.Sprintf("pass %d: %s intensity, %s tone", i+1, opts.Intensity, opts.Tone))

		res, err := r.pipeline.Apply(ctx, current, opts)
		if err != nil {
			return Report{}, fmt.Errorf("pass %d: %w", i+1, err)
		}
		if !res.LocalOnly {
			rep.LocalOnly = false
		}

		v := Validate(text, res.Text)
		scored := r.detector.Analyze(ctx, res.Text)
		r.log.Info("humanization pass",
			"pass", i+1, "intensity", opts.Intensity,
			"score", scored.OverallScore, "quickScore", v.QuickScore)

		if v.MeaningPreserved && scored.OverallScore < bestScore {
			bestScore = scored.OverallScore
			rep.FinalText = res.Text
			rep.FinalScore = scored.OverallScore
		}

		if v.MeaningPreserved && scored.OverallScore < acceptScore {
			rep.FinalText = res.Text
			rep.FinalScore = scored.OverallScore
			break
		}
		if !v.NeedsRefinement {
			// No contraction or register work left for another pass to do.
			break
		}
		if !v.MeaningPreserved {
			r.log.Warn("pass drifted past the meaning floor",
				"pass", i+1, "similarity", v.Similarity)
		}

		current = res.Text
		opts = opts.Escalated()
	}

	rep.Confidence = confidenceFor(rep.FinalScore)
	return rep, nil
}

func confidenceFor(score int) string {
	switch {
	case score < 20:
		return ConfidenceUndetectable
	case score < acceptScore:
		return ConfidenceLowRisk
	default:
		return ConfidenceModerateRisk
	}
}
