// Package analyzers holds the independent heuristic scorers. Each analyzer
// is a pure function over a parsed document: it returns a risk score in
// [0,100], human-readable pattern strings as evidence, and its own
// diagnostic fields. Pathological input (no sentences) yields the neutral
// zero value instead of an error.
//
// The risk deltas and thresholds are hand-tuned constants carried over
// as-is; treat them as configuration, not derived values.
package analyzers

func clampRisk(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
