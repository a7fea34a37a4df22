package figure

import (
	"github.com/lucasb-eyer/go-colorful"
)

// Ramp endpoints. Early years are dark blue, late years yellow.
const (
	RampStart = "#2A4858"
	RampEnd   = "#F8E800"
)

var rampStart, rampEnd = mustHex(RampStart), mustHex(RampEnd)

func mustHex(s string) colorful.Color {
	c, err := colorful.Hex(s)
	if err != nil {
		panic(err)
	}
	return c
}

// Ramp returns n colours blended in the HCL space from RampStart to RampEnd.
func Ramp(n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = RampColor(i, n)
	}
	return out
}

// RampColor returns the colour of the i-th of n years.
func RampColor(i, n int) string {
	if n <= 1 {
		return rampStart.Hex()
	}
	t := float64(i) / float64(n-1)
	return rampStart.BlendHcl(rampEnd, t).Hex()
}
