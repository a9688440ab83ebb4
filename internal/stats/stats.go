package stats

import (
	"time"
)

// Sum folds extract over items, treating non-finite values as 0.
func Sum[T any](items []T, extract func(T) float64) float64 {
	var total float64
	for _, item := range items {
		v := extract(item)
		if !isFinite(v) {
			continue
		}
		total += v
	}
	return total
}

// Count returns how many items satisfy pred.
func Count[T any](items []T, pred func(T) bool) int {
	n := 0
	for _, item := range items {
		if pred(item) {
			n++
		}
	}
	return n
}

// CountBy groups items by key and returns per-key totals.
// Empty keys are grouped under "" rather than dropped, so callers can
// surface records with a missing status instead of hiding them.
func CountBy[T any](items []T, key func(T) string) map[string]int {
	counts := make(map[string]int)
	for _, item := range items {
		counts[key(item)]++
	}
	return counts
}

// Rate returns part/whole as a percentage. A zero or negative whole
// yields 0 rather than NaN.
func Rate(part, whole int) float64 {
	if whole <= 0 {
		return 0
	}
	return float64(part) / float64(whole) * 100
}

// NewThisMonth counts items whose timestamp falls in the same calendar
// month as ref. Zero timestamps (absent or unparseable created_at) are
// never counted.
func NewThisMonth[T any](items []T, at func(T) time.Time, ref time.Time) int {
	n := 0
	for _, item := range items {
		t := at(item)
		if t.IsZero() {
			continue
		}
		if t.Year() == ref.Year() && t.Month() == ref.Month() {
			n++
		}
	}
	return n
}
