package osgrid

import (
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// magnitude returns floor(log10(|v|))+1, the power of ten that normalizes v
// into [0.1, 1). It is read off the decimal representation so that values
// like 1000 or 0.001 are not misjudged by a floating point logarithm.
func magnitude(v decimal.Decimal) int32 {
	return int32(v.NumDigits()) + v.Exponent()
}

func isFinite(d float64) bool {
	return !math.IsNaN(d) && !math.IsInf(d, 0)
}

// SignificantFigures returns the number of significant decimal digits of d,
// taken from the shortest decimal representation that round trips to d.
// Zero has no significant figures.
func SignificantFigures(d float64) int {
	if d == 0 || !isFinite(d) {
		return 0
	}
	v := decimal.NewFromFloat(d).Abs()
	mantissa := v.Shift(-magnitude(v)).String()
	return len(strings.Trim(strings.TrimPrefix(mantissa, "0."), "0"))
}

// SetSignificantFigures rounds d to n significant figures. The normalized
// mantissa is rounded in decimal, ties to even, and rescaled exactly, so
// the result is the float64 nearest to the decimal answer: 2.5 rounds to 2
// and 106885 to 106880 at five figures. Zero, or a request for zero
// figures, yields 0.
func SetSignificantFigures(d float64, n int) float64 {
	if !isFinite(d) {
		return d
	}
	if d == 0 || n <= 0 {
		return 0
	}
	v := decimal.NewFromFloat(d)
	m := magnitude(v)
	f, _ := v.Shift(-m).RoundBank(int32(n)).Shift(m).Float64()
	return f
}

// alignedFigures returns a and b rounded to the smaller of their
// significant figure counts.
func alignedFigures(a, b float64) (float64, float64) {
	n := SignificantFigures(a)
	if nb := SignificantFigures(b); nb < n {
		n = nb
	}
	return SetSignificantFigures(a, n), SetSignificantFigures(b, n)
}

// reducedFigures drops the final significant figure of d.
func reducedFigures(d float64) float64 {
	return SetSignificantFigures(d, SignificantFigures(d)-1)
}

// alignDown rounds d to at most the significant figures carried by src.
// It never adds apparent precision to d.
func alignDown(d, src float64) float64 {
	n := SignificantFigures(d)
	if ns := SignificantFigures(src); ns < n {
		n = ns
	}
	return SetSignificantFigures(d, n)
}
