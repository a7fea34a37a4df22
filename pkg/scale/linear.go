package scale

import (
	"math"
)

// Linear is a continuous linear map from a domain onto a range.
type Linear struct {
	d0, d1 float64
	r0, r1 float64
}

// NewLinear maps domain [d0, d1] onto range [r0, r1]. A degenerate domain
// maps every value to the middle of the range.
func NewLinear(d0, d1, r0, r1 float64) Linear {
	return Linear{d0: d0, d1: d1, r0: r0, r1: r1}
}

// Domain returns the domain bounds.
func (l Linear) Domain() (float64, float64) { return l.d0, l.d1 }

// Range returns the range bounds.
func (l Linear) Range() (float64, float64) { return l.r0, l.r1 }

// Map converts a domain value to a range value. Values outside the domain
// extrapolate.
func (l Linear) Map(v float64) float64 {
	if l.d1 == l.d0 {
		return (l.r0 + l.r1) / 2
	}
	return l.r0 + (v-l.d0)/(l.d1-l.d0)*(l.r1-l.r0)
}

// Invert converts a range value back to the domain.
func (l Linear) Invert(px float64) float64 {
	if l.r1 == l.r0 {
		return (l.d0 + l.d1) / 2
	}
	return l.d0 + (px-l.r0)/(l.r1-l.r0)*(l.d1-l.d0)
}

// Ticks returns roughly count evenly spaced, human-friendly values inside
// the domain. Steps are 1, 2 or 5 times a power of ten.
func (l Linear) Ticks(count int) []float64 {
	lo, hi := l.d0, l.d1
	if lo > hi {
		lo, hi = hi, lo
	}
	if count <= 0 || lo == hi || math.IsNaN(lo) || math.IsNaN(hi) {
		return nil
	}

	inc := tickIncrement(lo, hi, count)
	if inc == 0 || math.IsInf(inc, 0) || math.IsNaN(inc) {
		return nil
	}

	var ticks []float64
	if inc > 0 {
		i0, i1 := math.Ceil(lo/inc), math.Floor(hi/inc)
		for i := i0; i <= i1; i++ {
			ticks = append(ticks, i*inc)
		}
	} else {
		// Negative increments are inverted steps, which keeps fractional
		// ticks like 0.1 exact.
		inv := -inc
		i0, i1 := math.Ceil(lo*inv), math.Floor(hi*inv)
		for i := i0; i <= i1; i++ {
			ticks = append(ticks, i/inv)
		}
	}
	return ticks
}

// TickStep returns the spacing between the values Ticks(count) would return.
func (l Linear) TickStep(count int) float64 {
	lo, hi := l.d0, l.d1
	if lo > hi {
		lo, hi = hi, lo
	}
	if count <= 0 || lo == hi {
		return 0
	}
	inc := tickIncrement(lo, hi, count)
	if inc < 0 {
		return 1 / -inc
	}
	return inc
}

var (
	e10 = math.Sqrt(50)
	e5  = math.Sqrt(10)
	e2  = math.Sqrt(2)
)

// tickIncrement returns the tick step for [lo, hi]. Steps below one are
// returned as the negated reciprocal.
func tickIncrement(lo, hi float64, count int) float64 {
	step := (hi - lo) / float64(count)
	power := math.Floor(math.Log10(step))
	e := step / math.Pow(10, power)

	factor := 1.0
	switch {
	case e >= e10:
		factor = 10
	case e >= e5:
		factor = 5
	case e >= e2:
		factor = 2
	}

	if power >= 0 {
		return factor * math.Pow(10, power)
	}
	return -math.Pow(10, -power) / factor
}
