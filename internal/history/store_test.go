package history

import (
	"encoding/json"
	"errors"
	"path/filepath"
	"testing"
	"time"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestSaveAssignsIDAndTimestamp(t *testing.T) {
	store := newTestStore(t)
	saved, err := store.Save(Record{
		Kind:      KindDetect,
		Excerpt:   "some analyzed text",
		Score:     62,
		RiskLevel: "LIKELY_AI",
	})
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if saved.ID == "" {
		t.Fatalf("expected an assigned ID")
	}
	if saved.CreatedAt.IsZero() {
		t.Fatalf("expected an assigned timestamp")
	}
}

func TestSaveGetRoundTrip(t *testing.T) {
	store := newTestStore(t)
	detail := json.RawMessage(`{"overall_score":71}`)
	saved, err := store.Save(Record{
		Kind:      KindDetect,
		Excerpt:   "round trip",
		Score:     71,
		RiskLevel: "LIKELY_AI",
		Detail:    detail,
	})
	if err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := store.Get(saved.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Kind != KindDetect || got.Score != 71 || got.RiskLevel != "LIKELY_AI" {
		t.Fatalf("record did not round-trip: %+v", got)
	}
	if string(got.Detail) != string(detail) {
		t.Fatalf("detail did not round-trip: %s", got.Detail)
	}
	if !got.CreatedAt.Equal(saved.CreatedAt) {
		t.Fatalf("timestamp drifted: %v vs %v", got.CreatedAt, saved.CreatedAt)
	}
}

func TestGetMissingRecord(t *testing.T) {
	store := newTestStore(t)
	if _, err := store.Get("no-such-id"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestListNewestFirst(t *testing.T) {
	store := newTestStore(t)
	base := time.Now().UTC()
	for i := 0; i < 3; i++ {
		_, err := store.Save(Record{
			Kind:      KindDetect,
			Excerpt:   "entry",
			CreatedAt: base.Add(time.Duration(i) * time.Second),
		})
		if err != nil {
			t.Fatalf("save %d: %v", i, err)
		}
	}

	records, err := store.List(10)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("expected 3 records, got %d", len(records))
	}
	for i := 1; i < len(records); i++ {
		if records[i].CreatedAt.After(records[i-1].CreatedAt) {
			t.Fatalf("records are not newest-first")
		}
	}
}

func TestDelete(t *testing.T) {
	store := newTestStore(t)
	saved, err := store.Save(Record{Kind: KindHumanize, Excerpt: "to delete"})
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := store.Delete(saved.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := store.Delete(saved.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("second delete should report not found, got %v", err)
	}
}

func TestStats(t *testing.T) {
	store := newTestStore(t)
	for _, rec := range []Record{
		{Kind: KindDetect, Score: 80},
		{Kind: KindDetect, Score: 40},
		{Kind: KindHumanize, Score: 30},
	} {
		if _, err := store.Save(rec); err != nil {
			t.Fatalf("save: %v", err)
		}
	}

	st, err := store.Stats()
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if st.Total != 3 || st.DetectRuns != 2 || st.HumanizeRuns != 1 {
		t.Fatalf("unexpected stats: %+v", st)
	}
	if st.AverageScore != 50 {
		t.Fatalf("expected average 50, got %f", st.AverageScore)
	}
}

func TestPruneOlderThan(t *testing.T) {
	store := newTestStore(t)
	now := time.Now().UTC()
	for _, age := range []time.Duration{-48 * time.Hour, -36 * time.Hour, -time.Hour} {
		if _, err := store.Save(Record{Kind: KindDetect, CreatedAt: now.Add(age)}); err != nil {
			t.Fatalf("save: %v", err)
		}
	}

	n, err := store.PruneOlderThan(now.Add(-24 * time.Hour))
	if err != nil {
		t.Fatalf("prune: %v", err)
	}
	if n != 2 {
		t.Fatalf("expected 2 pruned, got %d", n)
	}

	records, err := store.List(0)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 surviving record, got %d", len(records))
	}
}

func TestExcerptTruncated(t *testing.T) {
	store := newTestStore(t)
	long := make([]byte, 500)
	for i := range long {
		long[i] = 'x'
	}
	saved, err := store.Save(Record{Kind: KindDetect, Excerpt: string(long)})
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if len(saved.Excerpt) != 200 {
		t.Fatalf("expected excerpt capped at 200, got %d", len(saved.Excerpt))
	}
}
