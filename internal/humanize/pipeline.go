package humanize

import (
	"context"
	"log/slog"
	"math/rand"
	"regexp"
	"strings"
	"time"

	"veritext/internal/rewrite"
)

// Result carries the transformed text and how it was produced.
type Result struct {
	Text      string
	LocalOnly bool
	Stages    []string
}

// Pipeline applies the humanization stages. When a rewrite client is
// configured the heavy lifting is delegated to it; on any failure the
// pipeline falls back to the local stages without surfacing an error.
type Pipeline struct {
	rewriter rewrite.Client
	rng      *rand.Rand
	log      *slog.Logger
	timeout  time.Duration
}

// NewPipeline builds a pipeline. rewriter may be nil for local-only
// operation. rng may be nil, in which case a time-seeded source is used.
func NewPipeline(rewriter rewrite.Client, rng *rand.Rand, log *slog.Logger) *Pipeline {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if log == nil {
		log = slog.Default()
	}
	return &Pipeline{rewriter: rewriter, rng: rng, log: log, timeout: 30 * time.Second}
}

// Apply runs the pipeline on text with the given options.
func (p *Pipeline) Apply(ctx context.Context, text string, opts Options) (Result, error) {
	if err := opts.Validate(); err != nil {
		return Result{}, err
	}

	if p.rewriter != nil {
		if out, ok := p.external(ctx, text, opts); ok {
			return out, nil
		}
		p.log.Warn("external rewrite unavailable, using local pipeline")
	}
	return p.local(text, opts), nil
}

// local applies every stage in order.
func (p *Pipeline) local(text string, opts Options) Result {
	stages := make([]string, 0, 5)

	out := patternRemovals.apply(text)
	stages = append(stages, "pattern removal")

	out = naturalizeVocabulary(out, opts.Tone)
	stages = append(stages, "vocabulary naturalization")

	out = restructureSentences(out, p.rng)
	stages = append(stages, "sentence restructuring")

	if opts.AddPersonalTouches {
		out = injectPersonalVoice(out, opts.Intensity, p.rng)
		stages = append(stages, "personal voice")
	}

	out = p.boostPerplexity(out)
	stages = append(stages, "perplexity boosting")

	return Result{Text: tidyWhitespace(out), LocalOnly: true, Stages: stages}
}

// external delegates the rewrite to the configured service, bounded by the
// pipeline timeout. A late response after the deadline is discarded. The
// service output still goes through the light local stages so tone and
// voice options hold regardless of what the service returns.
func (p *Pipeline) external(ctx context.Context, text string, opts Options) (Result, bool) {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	type reply struct {
		text string
		err  error
	}
	ch := make(chan reply, 1)
	go func() {
		out, err := p.rewriter.Rewrite(ctx, BuildPrompt(text, opts))
		ch <- reply{text: out, err: err}
	}()

	select {
	case r := <-ch:
		if r.err != nil {
			p.log.Warn("rewrite request failed", "err", r.err)
			return Result{}, false
		}
		out := strings.TrimSpace(r.text)
		if out == "" {
			return Result{}, false
		}
		out = naturalizeVocabulary(out, opts.Tone)
		if opts.AddPersonalTouches {
			out = injectPersonalVoice(out, opts.Intensity, p.rng)
		}
		return Result{
			Text:      tidyWhitespace(out),
			LocalOnly: false,
			Stages:    []string{"external rewrite", "vocabulary naturalization", "personal voice"},
		}, true
	case <-ctx.Done():
		p.log.Warn("rewrite request timed out", "timeout", p.timeout)
		return Result{}, false
	}
}

var boostWord = regexp.MustCompile(`[A-Za-z]+`)

// boostPerplexity swaps common intensifiers for less predictable synonyms,
// each occurrence independently with ~40% probability.
func (p *Pipeline) boostPerplexity(text string) string {
	return boostWord.ReplaceAllStringFunc(text, func(w string) string {
		alts, ok := boosterAlternatives[strings.ToLower(w)]
		if !ok || len(alts) == 0 {
			return w
		}
		if p.rng.Float64() >= 0.4 {
			return w
		}
		repl := alts[p.rng.Intn(len(alts))]
		if isCapitalized(w) {
			repl = strings.ToUpper(repl[:1]) + repl[1:]
		}
		return repl
	})
}

func isCapitalized(w string) bool {
	return w != "" && w[0] >= 'A' && w[0] <= 'Z'
}
