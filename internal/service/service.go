// Package service is the boundary layer: input validation, session
// budgets, and history recording around the detection and humanization
// cores.
package service

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"time"

	"veritext/internal/detect"
	"veritext/internal/extract"
	"veritext/internal/history"
	"veritext/internal/humanize"
)

const (
	minTextLen = 50
	maxTextLen = 50000

	// sessionBudget bounds a full iterative humanization run, external
	// rewrite calls included.
	sessionBudget = 120 * time.Second
)

// Service wires the cores together. The history store is optional; a nil
// store disables recording.
type Service struct {
	engine  *detect.Engine
	refiner *humanize.Refiner
	store   *history.Store
	log     *slog.Logger
}

func New(engine *detect.Engine, refiner *humanize.Refiner, store *history.Store, log *slog.Logger) *Service {
	if log == nil {
		log = slog.Default()
	}
	return &Service{engine: engine, refiner: refiner, store: store, log: log}
}

// Analyze validates the text and runs the full detection pass.
func (s *Service) Analyze(ctx context.Context, text string) (detect.Report, error) {
	if err := validateText(text); err != nil {
		return detect.Report{}, err
	}

	start := time.Now()
	report := s.engine.Analyze(ctx, text)
	s.log.Info("analysis complete",
		"score", report.OverallScore,
		"risk", report.RiskLevel,
		"duration", time.Since(start))

	s.record(history.KindDetect, text, float64(report.OverallScore), string(report.RiskLevel), report)
	return report, nil
}

// AnalyzeBatch runs detection over several texts, isolating per-text
// validation failures the same way the engine isolates analysis panics.
func (s *Service) AnalyzeBatch(ctx context.Context, texts []string) []detect.BatchItem {
	items := make([]detect.BatchItem, len(texts))
	valid := make([]string, 0, len(texts))
	validIdx := make([]int, 0, len(texts))
	for i, t := range texts {
		items[i].Index = i
		if err := validateText(t); err != nil {
			items[i].Err = err
			continue
		}
		valid = append(valid, t)
		validIdx = append(validIdx, i)
	}

	for _, item := range s.engine.AnalyzeBatch(ctx, valid) {
		i := validIdx[item.Index]
		items[i].Report = item.Report
		items[i].Err = item.Err
	}
	return items
}

// AnalyzeFile extracts text from a document and analyzes it. Extraction
// confidence is reported but does not alter the analysis.
func (s *Service) AnalyzeFile(ctx context.Context, path string) (*extract.Extraction, detect.Report, error) {
	ext, err := extract.FromFile(path)
	if err != nil {
		return nil, detect.Report{}, wrapError(KindInvalidInput, err, "extract text")
	}
	s.log.Info("extracted document",
		"path", path, "format", ext.Format, "pages", ext.PageCount, "confidence", ext.Confidence)

	report, err := s.Analyze(ctx, ext.Text)
	if err != nil {
		return ext, detect.Report{}, err
	}
	return ext, report, nil
}

// Humanize validates text and options, then runs the iterative refinement
// loop under the session budget.
func (s *Service) Humanize(ctx context.Context, text string, opts humanize.Options) (humanize.Report, error) {
	if err := validateText(text); err != nil {
		return humanize.Report{}, err
	}
	if err := opts.Validate(); err != nil {
		return humanize.Report{}, wrapError(KindInvalidOptions, err, "validate options")
	}

	ctx, cancel := context.WithTimeout(ctx, sessionBudget)
	defer cancel()

	start := time.Now()
	rep, err := s.refiner.Refine(ctx, text, opts)
	if err != nil {
		return humanize.Report{}, wrapError(KindInternal, err, "refine text")
	}
	s.log.Info("humanization complete",
		"iterations", rep.Iterations,
		"initialScore", rep.InitialScore,
		"finalScore", rep.FinalScore,
		"confidence", rep.Confidence,
		"localOnly", rep.LocalOnly,
		"duration", time.Since(start))

	s.record(history.KindHumanize, text, float64(rep.FinalScore), rep.Confidence, rep)
	return rep, nil
}

// History surfaces the optional store to callers. Nil when recording is
// disabled.
func (s *Service) History() *history.Store { return s.store }

// record is best effort; a storage failure never fails the request.
func (s *Service) record(kind, text string, score float64, level string, detail any) {
	if s.store == nil {
		return
	}
	raw, err := json.Marshal(detail)
	if err != nil {
		s.log.Warn("marshal history detail", "err", err)
		raw = nil
	}
	if _, err := s.store.Save(history.Record{
		Kind:      kind,
		Excerpt:   text,
		Score:     score,
		RiskLevel: level,
		Detail:    raw,
	}); err != nil {
		s.log.Warn("save history record", "err", err)
	}
}

func validateText(text string) error {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return newError(KindInvalidInput, "text is empty")
	}
	if len(text) > maxTextLen {
		return newError(KindInvalidInput, "text exceeds %d characters", maxTextLen)
	}
	if len(trimmed) < minTextLen {
		return newError(KindTooShort, "text must be at least %d characters, got %d", minTextLen, len(trimmed))
	}
	return nil
}
