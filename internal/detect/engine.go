package detect

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"sort"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"golang.org/x/sync/errgroup"

	"veritext/internal/analyzers"
	"veritext/internal/textutil"
)

type Config struct {
	CacheSize int
	CacheTTL  time.Duration
}

func DefaultConfig() Config {
	return Config{
		CacheSize: 256,
		CacheTTL:  10 * time.Minute,
	}
}

// Engine runs the analyzer ensemble. It holds no per-request state; the
// only shared structure is the result cache, whose upserts are atomic and
// last-writer-wins (cached values are pure functions of the input).
type Engine struct {
	cache *expirable.LRU[string, Report]
}

func NewEngine(cfg Config) *Engine {
	e := &Engine{}
	if cfg.CacheSize > 0 {
		e.cache = expirable.NewLRU[string, Report](cfg.CacheSize, nil, cfg.CacheTTL)
	}
	return e
}

// Analyze produces a full detection report. The analyzers have no data
// dependency on each other and run in parallel; result ordering in the
// report is fixed by AnalyzerScores, not completion order.
func (e *Engine) Analyze(ctx context.Context, text string) Report {
	key := fingerprint(text)
	if e.cache != nil {
		if cached, ok := e.cache.Get(key); ok {
			return cached
		}
	}

	doc := textutil.Parse(text)

	var scores AnalyzerScores
	degraded := make(chan string, 10)
	g, _ := errgroup.WithContext(ctx)
	g.Go(guarded("perplexity", degraded, func() { scores.Perplexity = analyzers.Perplexity(doc) }))
	g.Go(guarded("burstiness", degraded, func() { scores.Burstiness = analyzers.Burstiness(doc) }))
	g.Go(guarded("syntactic", degraded, func() { scores.Syntactic = analyzers.Syntactic(doc) }))
	g.Go(guarded("coherence", degraded, func() { scores.Coherence = analyzers.Coherence(doc) }))
	g.Go(guarded("aiPhrases", degraded, func() { scores.AIPhrases = analyzers.Phrases(doc) }))
	g.Go(guarded("structural", degraded, func() { scores.Structural = analyzers.Structural(doc) }))
	g.Go(guarded("vocabulary", degraded, func() { scores.Vocabulary = analyzers.Vocabulary(doc) }))
	g.Go(guarded("punctuation", degraded, func() { scores.Punctuation = analyzers.Punctuation(doc) }))
	g.Go(guarded("consistency", degraded, func() { scores.Consistency = analyzers.Consistency(doc) }))
	g.Go(guarded("depth", degraded, func() { scores.Depth = analyzers.Depth(doc) }))
	_ = g.Wait()
	close(degraded)

	var degradedNames []string
	for name := range degraded {
		degradedNames = append(degradedNames, name)
	}
	sort.Strings(degradedNames)

	report := aggregate(scores, degradedNames)
	if e.cache != nil {
		e.cache.Add(key, report)
	}
	return report
}

// guarded converts an analyzer panic into a neutral zero-score result so a
// single pathological input cannot abort the whole report.
func guarded(name string, degraded chan<- string, fn func()) func() error {
	return func() (err error) {
		defer func() {
			if r := recover(); r != nil {
				degraded <- name
			}
		}()
		fn()
		return nil
	}
}

// fingerprint keys the cache on a text-prefix hash plus the full length;
// texts that share a 512-byte prefix but differ in length never collide.
func fingerprint(text string) string {
	prefix := text
	if len(prefix) > 512 {
		prefix = prefix[:512]
	}
	sum := sha1.Sum([]byte(prefix))
	return hex.EncodeToString(sum[:]) + fmt.Sprintf(":%d", len(text))
}
