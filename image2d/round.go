package image2d

import "math"

// RoundHalfAwayFromZero rounds x to the nearest integer, breaking exact
// .5 ties away from zero, matching cvRound's historical behavior on the
// platforms this library targets. Every fringe-order rounding in this
// module goes through this helper rather than math.Round directly, so the
// tie-breaking rule stays explicit and consistent at every call site.
func RoundHalfAwayFromZero(x float64) float64 {
	if x >= 0 {
		return math.Floor(x + 0.5)
	}
	return math.Ceil(x - 0.5)
}
