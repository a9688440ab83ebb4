// Package stats derives display statistics from in-memory record sets.
// Every reduction tolerates missing, null, or garbage numeric input by
// counting the offending element as zero instead of poisoning the total.
package stats

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Number is a defensively-read JSON scalar. Backends in the wild send
// monetary fields as numbers, numeric strings, null, or nothing at all;
// Number decodes all of them without error and reads as 0 for anything
// that is not a finite numeric value.
type Number float64

// UnmarshalJSON never fails. Unrecognized or non-finite input becomes 0.
func (n *Number) UnmarshalJSON(data []byte) error {
	*n = 0

	trimmed := strings.TrimSpace(string(data))
	if trimmed == "" || trimmed == "null" {
		return nil
	}

	var f float64
	if err := json.Unmarshal(data, &f); err == nil {
		if isFinite(f) {
			*n = Number(f)
		}
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		if f, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil && isFinite(f) {
			*n = Number(f)
		}
		return nil
	}

	// Objects, arrays, booleans: no numeric reading, stay at 0.
	return nil
}

// MarshalJSON emits the plain numeric value.
func (n Number) MarshalJSON() ([]byte, error) {
	if !isFinite(float64(n)) {
		return []byte("0"), nil
	}
	return json.Marshal(float64(n))
}

// Float returns the value, with 0 substituted for non-finite states.
func (n Number) Float() float64 {
	f := float64(n)
	if !isFinite(f) {
		return 0
	}
	return f
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
