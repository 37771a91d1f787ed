package detect

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

type BatchItem struct {
	Index  int
	Report Report
	Err    error
}

// AnalyzeBatch scores several texts concurrently. One text's failure is
// isolated into its own item and never aborts the others.
func (e *Engine) AnalyzeBatch(ctx context.Context, texts []string) []BatchItem {
	items := make([]BatchItem, len(texts))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(4)
	for i, text := range texts {
		g.Go(func() error {
			items[i] = analyzeItem(gctx, e, i, text)
			return nil
		})
	}
	_ = g.Wait()
	return items
}

func analyzeItem(ctx context.Context, e *Engine, index int, text string) (item BatchItem) {
	item.Index = index
	defer func() {
		if r := recover(); r != nil {
			item.Err = fmt.Errorf("analyze text %d: %v", index, r)
		}
	}()
	item.Report = e.Analyze(ctx, text)
	return item
}
