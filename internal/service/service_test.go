package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"math/rand"
	"strings"
	"testing"

	"veritext/internal/detect"
	"veritext/internal/humanize"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	engine := detect.NewEngine(detect.Config{})
	pipeline := humanize.NewPipeline(nil, rand.New(rand.NewSource(1)), discardLogger())
	refiner := humanize.NewRefiner(pipeline, engine, discardLogger())
	return New(engine, refiner, nil, discardLogger())
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func validOptions() humanize.Options {
	return humanize.Options{Tone: humanize.ToneCasual, Intensity: humanize.IntensityLight}
}

func TestAnalyzeLengthBoundary(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	short := strings.Repeat("a", 49)
	if _, err := svc.Analyze(ctx, short); KindOf(err) != KindTooShort {
		t.Fatalf("49 trimmed characters must be rejected as too short, got %v", err)
	}

	exact := strings.Repeat("a", 50)
	if _, err := svc.Analyze(ctx, exact); err != nil {
		t.Fatalf("exactly 50 characters must be accepted, got %v", err)
	}
}

func TestAnalyzeTrimsBeforeLengthCheck(t *testing.T) {
	svc := newTestService(t)
	padded := "   " + strings.Repeat("a", 49) + "   "
	if _, err := svc.Analyze(context.Background(), padded); KindOf(err) != KindTooShort {
		t.Fatalf("padding must not count toward the minimum, got %v", err)
	}
}

func TestAnalyzeRejectsEmptyAndOversized(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	if _, err := svc.Analyze(ctx, "   \n "); KindOf(err) != KindInvalidInput {
		t.Fatalf("whitespace input must be invalid, got %v", err)
	}

	huge := strings.Repeat("word ", 10001) // 50005 bytes
	if _, err := svc.Analyze(ctx, huge); KindOf(err) != KindInvalidInput {
		t.Fatalf("oversized input must be invalid")
	}
}

func TestAnalyzeReturnsReport(t *testing.T) {
	svc := newTestService(t)
	text := "It's important to note that the landscape of testing is multifaceted. Furthermore, the realm of quality plays a crucial role in delivery."
	report, err := svc.Analyze(context.Background(), text)
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	if report.OverallScore <= 0 {
		t.Fatalf("template text should score above zero")
	}
}

func TestHumanizeRejectsInvalidOptions(t *testing.T) {
	svc := newTestService(t)
	text := strings.Repeat("The plan moves forward next week. ", 5)
	_, err := svc.Humanize(context.Background(), text, humanize.Options{Tone: "grumpy", Intensity: humanize.IntensityLight})
	if KindOf(err) != KindInvalidOptions {
		t.Fatalf("expected invalid-options kind, got %v", err)
	}
}

func TestHumanizeAppliesLengthGate(t *testing.T) {
	svc := newTestService(t)
	_, err := svc.Humanize(context.Background(), "too short", validOptions())
	if KindOf(err) != KindTooShort {
		t.Fatalf("expected too-short kind, got %v", err)
	}
}

func TestHumanizeRunsLocally(t *testing.T) {
	svc := newTestService(t)
	text := "It's important to note that the rollout cannot proceed. Furthermore, the realm of infrastructure is multifaceted and plays a crucial role in the broader landscape of delivery."
	rep, err := svc.Humanize(context.Background(), text, validOptions())
	if err != nil {
		t.Fatalf("humanize: %v", err)
	}
	if !rep.LocalOnly {
		t.Fatalf("no rewrite service configured, run must be local-only")
	}
	if rep.Iterations < 1 || rep.Iterations > 3 {
		t.Fatalf("iterations out of budget: %d", rep.Iterations)
	}
	if len(rep.ChangesApplied) != rep.Iterations {
		t.Fatalf("expected one log entry per iteration, got %d for %d iterations",
			len(rep.ChangesApplied), rep.Iterations)
	}
}

func TestAnalyzeBatchIsolatesValidation(t *testing.T) {
	svc := newTestService(t)
	texts := []string{
		strings.Repeat("The quarterly numbers look fine to everyone involved. ", 3),
		"short",
		strings.Repeat("Nothing remarkable happened during the second review. ", 3),
	}
	items := svc.AnalyzeBatch(context.Background(), texts)
	if len(items) != 3 {
		t.Fatalf("expected 3 items, got %d", len(items))
	}
	if items[0].Err != nil || items[2].Err != nil {
		t.Fatalf("valid texts must not fail: %v / %v", items[0].Err, items[2].Err)
	}
	if KindOf(items[1].Err) != KindTooShort {
		t.Fatalf("short text must fail its own item, got %v", items[1].Err)
	}
}

func TestKindOfUnknownError(t *testing.T) {
	if KindOf(errors.New("plain")) != KindInternal {
		t.Fatalf("plain errors default to internal")
	}
}
