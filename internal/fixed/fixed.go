// Package fixed implements the Q16.16 signed fixed-point numbers the
// rasterizer computes with. No floating point is used by Mul, Div or
// Reciprocal; FromFloat and Float exist for drivers that convert data at load
// time.
package fixed

import "math"

// Fixed is a signed Q16.16 fixed-point value.
type Fixed int32

const (
	// Shift is the number of fractional bits.
	Shift = 16

	// One is the fixed-point value 1.0.
	One Fixed = 1 << Shift

	// Half is the fixed-point value 0.5.
	Half Fixed = One / 2

	// Max and Min are the saturation bounds of Mul and Div.
	Max Fixed = math.MaxInt32
	Min Fixed = math.MinInt32
)

// ReciprocalNumerator is the constant K that Reciprocal divides.
// Raw 1/x underflows to zero for x > 1 at 16 fractional bits, so Reciprocal
// returns K/x instead and every caller divides its product by K afterwards.
const ReciprocalNumerator Fixed = 256 << Shift

// FromInt converts an integer to fixed point.
func FromInt(i int) Fixed { return Fixed(i << Shift) }

// FromFloat converts a float to fixed point, truncating toward zero.
// It is meant for loading data, not for the rasterizer hot path.
func FromFloat(f float64) Fixed { return saturate(int64(f * float64(One))) }

// Int returns the integer part of f. The fractional bits are shifted away,
// so negative values truncate toward negative infinity.
func (f Fixed) Int() int { return int(f >> Shift) }

// Float returns f as a float64.
func (f Fixed) Float() float64 { return float64(f) / float64(One) }

// Mul returns a*b. The raw product is formed in 64 bits and rescaled by the
// scale factor, rounding to nearest with ties away from zero.
func Mul(a, b Fixed) Fixed {
	p := int64(a) * int64(b)
	return saturate(roundShift(p))
}

// Div returns a/b. The numerator is pre-scaled by the scale factor in 64 bits
// and the quotient rounds to nearest with ties away from zero.
// Div panics when b is zero; callers own that check.
func Div(a, b Fixed) Fixed {
	n := int64(a) << Shift
	d := int64(b)
	// Go division truncates toward zero; pushing the numerator half a divisor
	// away from zero turns that into round-half-away.
	return saturate((n + sign64(n)*(abs64(d)/2)) / d)
}

// Reciprocal returns ReciprocalNumerator/x. The result is biased by K: a
// caller computing a/x writes Div(Mul(a, Reciprocal(x)), ReciprocalNumerator).
//
// For x <= 0 it returns ReciprocalNumerator, i.e. it behaves as if x were 1.
func Reciprocal(x Fixed) Fixed {
	if x <= 0 {
		return ReciprocalNumerator
	}
	return Div(ReciprocalNumerator, x)
}

// Clamp limits f to [lo, hi].
func Clamp(f, lo, hi Fixed) Fixed {
	if f < lo {
		return lo
	}
	if f > hi {
		return hi
	}
	return f
}

func roundShift(p int64) int64 {
	const half = int64(1) << (Shift - 1)
	if p < 0 {
		return -((-p + half) >> Shift)
	}
	return (p + half) >> Shift
}

func saturate(v int64) Fixed {
	if v > math.MaxInt32 {
		return Max
	}
	if v < math.MinInt32 {
		return Min
	}
	return Fixed(v)
}

func abs64(v int64) int64 {
	if v < 0 {
		return -v
	}
	return v
}

func sign64(v int64) int64 {
	if v < 0 {
		return -1
	}
	return 1
}
