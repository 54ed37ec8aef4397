package numtheory

import (
	"math"
	"strconv"
)

// CriticalLine is the real part shared by every known non-trivial zero.
const CriticalLine = 0.5

// knownZeros are the imaginary parts of the first ten non-trivial zeros.
//
//nolint:gochecknoglobals // Fixed reference data; exposed only through copies.
var knownZeros = [...]float64{
	14.134725142,
	21.022039639,
	25.010857580,
	30.424876126,
	32.935061588,
	37.586178159,
	40.918719012,
	43.327073281,
	48.005150881,
	49.773832478,
}

// ZeroPoint is a point of the complex plane.
type ZeroPoint struct {
	Real      float64 `json:"real"`
	Imaginary float64 `json:"imaginary"`
}

// KnownZeros returns a copy of the hardcoded imaginary parts, lowest first.
func KnownZeros() []float64 {
	out := make([]float64, len(knownZeros))
	copy(out, knownZeros[:])
	return out
}

// CriticalZeros returns the first count zeros as points on the critical line.
// count is clamped to [0, len(KnownZeros())].
func CriticalZeros(count int) []ZeroPoint {
	count = max(0, min(count, len(knownZeros)))
	out := make([]ZeroPoint, 0, count)
	for _, t := range knownZeros[:count] {
		out = append(out, ZeroPoint{Real: CriticalLine, Imaginary: t})
	}
	return out
}

// FormatNumber renders v with the given number of decimals, switching to
// exponent notation above one million and collapsing values within 1e-10 of
// zero to "0".
func FormatNumber(v float64, decimals int) string {
	switch {
	case math.IsNaN(v):
		return "NaN"
	case math.Abs(v) < 1e-10:
		return "0"
	case math.Abs(v) > 1e6:
		return strconv.FormatFloat(v, 'e', decimals, 64)
	default:
		return strconv.FormatFloat(v, 'f', decimals, 64)
	}
}
