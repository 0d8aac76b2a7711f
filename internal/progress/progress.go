// Package progress computes completion percentages over fixed sets of
// milestone flags. Both the boost-client tracker (5 milestones) and the
// onboarding form (5 required + 7 optional fields) use the same calculation.
package progress

import "math"

// Percent returns the completion percentage for the given flags as an
// integer in [0, 100]. Rounding is half away from zero, so 3 of 7 flags
// yields 43, and a fully-set collection always yields exactly 100.
// An empty flag set is defined as 0%.
func Percent(flags []bool) int {
	if len(flags) == 0 {
		return 0
	}

	done := 0

	for _, f := range flags {
		if f {
			done++
		}
	}

	return int(math.Round(100 * float64(done) / float64(len(flags))))
}
