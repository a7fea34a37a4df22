package scale

import "github.com/matzehuels/scrollplot/pkg/dataset"

// Headroom is the factor applied to a series maximum so the topmost point and
// the parity line stay clear of the plot edge.
const Headroom = 1.02

// Figure defaults.
const (
	DefaultTicks       = 6
	DefaultTickPadding = 9
)

// Margins is the space between the figure edge and the plotting area.
type Margins struct {
	Top, Right, Bottom, Left float64
}

// DefaultMargins leaves room for the title, tick labels and axis labels.
var DefaultMargins = Margins{Top: 40, Right: 20, Bottom: 50, Left: 60}

// UpperLimit is the shared axis maximum for a series: its largest value on
// either axis times Headroom. An empty or all-zero series yields 1 so the
// scales stay invertible.
func UpperLimit(series dataset.Series) float64 {
	m := series.Max()
	if m <= 0 {
		return 1
	}
	return m * Headroom
}

// Plot holds the scales of one figure.
type Plot struct {
	Width, Height float64 // full figure size
	Margins       Margins
	Upper         float64 // shared domain maximum
	X, Y          Linear
}

// NewPlot builds the scales for series drawn into a width x height figure.
// X and Y share the domain [0, UpperLimit(series)].
func NewPlot(series dataset.Series, width, height float64, m Margins) Plot {
	return NewPlotWithUpper(UpperLimit(series), width, height, m)
}

// NewPlotWithUpper builds scales for an explicit domain maximum.
func NewPlotWithUpper(upper, width, height float64, m Margins) Plot {
	if upper <= 0 {
		upper = 1
	}
	w, h := innerSize(width, height, m)
	return Plot{
		Width:   width,
		Height:  height,
		Margins: m,
		Upper:   upper,
		X:       NewLinear(0, upper, 0, w),
		Y:       NewLinear(0, upper, h, 0),
	}
}

func innerSize(width, height float64, m Margins) (float64, float64) {
	return max(width-m.Left-m.Right, 0), max(height-m.Top-m.Bottom, 0)
}

// InnerWidth is the width of the plotting area.
func (p Plot) InnerWidth() float64 {
	w, _ := innerSize(p.Width, p.Height, p.Margins)
	return w
}

// InnerHeight is the height of the plotting area.
func (p Plot) InnerHeight() float64 {
	_, h := innerSize(p.Width, p.Height, p.Margins)
	return h
}

// Point maps a data point to plotting-area coordinates (origin at the
// top-left of the inner area).
func (p Plot) Point(pt dataset.Point) (float64, float64) {
	return p.X.Map(pt.A), p.Y.Map(pt.B)
}

// XY maps raw values to plotting-area coordinates.
func (p Plot) XY(x, y float64) (float64, float64) {
	return p.X.Map(x), p.Y.Map(y)
}
