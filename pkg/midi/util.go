package midi

import (
	"math"
	"strconv"
)

// formatFloat renders a float without a forced fixed precision, matching
// how %v would print it but without pulling fmt into every tiny String().
func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// roundFloat rounds half away from zero, matching the spec's "round(...)" notation.
func roundFloat(v float64) float64 {
	return math.Round(v)
}
