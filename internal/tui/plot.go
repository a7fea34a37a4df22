package tui

import (
	"math"
	"strconv"

	"github.com/matzehuels/scrollplot/pkg/figure"
	"github.com/matzehuels/scrollplot/pkg/scale"
)

const (
	colorAxis   = "#888888"
	colorGrid   = "#444444"
	colorParity = "#555555"
	colorText   = "#DDDDDD"
	colorDim    = "#999999"
)

var cellMargins = scale.Margins{Top: 2, Right: 2, Bottom: 3, Left: 8}

// renderPlot draws the frame's scatter into a width x height cell grid.
// Cells are roughly twice as tall as wide, which the y domain absorbs: both
// axes still span [0, upper].
func renderPlot(f *figure.Frame, width, height int) string {
	c := newCanvas(width, height)
	if width < 20 || height < 8 {
		c.text(0, 0, "window too small", colorDim)
		return c.String()
	}
	p := scale.NewPlotWithUpper(f.Plot.Upper, float64(width), float64(height), cellMargins)
	left, top := int(cellMargins.Left), int(cellMargins.Top)
	iw, ih := int(p.InnerWidth()), int(p.InnerHeight())

	at := func(x, y float64) (int, int) {
		px, py := p.XY(x, y)
		return left + int(math.Round(px)), top + int(math.Round(py))
	}

	c.text(max((width-len(f.Title))/2, 0), 0, f.Title, colorText)
	drawAxes(c, p, left, top, iw, ih)
	c.text(left+max((iw-len(f.AxisLabelX))/2, 0), top+ih+2, f.AxisLabelX, colorDim)
	for i, r := range []rune(f.AxisLabelY) {
		c.set(0, top+i, r, colorDim)
	}

	// parity diagonal
	steps := max(iw, ih) * 2
	for i := 0; i <= steps; i++ {
		v := p.Upper * float64(i) / float64(steps)
		x, y := at(v, v)
		if c.blank(x, y) {
			c.set(x, y, '·', colorParity)
		}
	}

	if f.Step().ShowAxesIndicators {
		x, y := at(p.Upper*0.65, p.Upper*0.65)
		c.text(x-len(figure.MoreMenLabel)-1, y-2, "↖ "+figure.MoreMenLabel, colorDim)
		c.text(x+2, y+2, figure.MoreWomenLabel+" ↘", colorDim)
	}

	if f.Line.Visible && f.Line.Progress > 0 {
		drawLine(c, f, at)
	}

	for _, pt := range f.Points {
		if !pt.Visible || pt.Progress <= 0 {
			continue
		}
		src := f.Series[pt.Index]
		x, y := at(src.A, src.B)
		glyph := '●'
		if pt.Progress < 1 {
			glyph = '∙'
		}
		c.setBold(x, y, glyph, f.Colors[pt.Index])
		if pt.LabelVisible {
			c.text(x+2, y, strconv.Itoa(pt.Year), f.Colors[pt.Index])
		}
	}
	return c.String()
}

func drawAxes(c *canvas, p scale.Plot, left, top, iw, ih int) {
	for y := top; y <= top+ih; y++ {
		c.set(left-1, y, '│', colorAxis)
	}
	for x := left; x <= left+iw; x++ {
		c.set(x, top+ih, '─', colorAxis)
	}
	c.set(left-1, top+ih, '└', colorAxis)

	// The first tick label (zero) is left off, as on the SVG figure.
	for i, t := range p.X.Ticks(scale.DefaultTicks) {
		if i == 0 {
			continue
		}
		x := left + int(math.Round(p.X.Map(t)))
		label := figure.FormatTick(t)
		c.set(x, top+ih, '┴', colorAxis)
		c.text(x-len(label)/2, top+ih+1, label, colorAxis)
	}
	for i, t := range p.Y.Ticks(scale.DefaultTicks) {
		if i == 0 {
			continue
		}
		y := top + int(math.Round(p.Y.Map(t)))
		label := figure.FormatTick(t)
		c.set(left-1, y, '┤', colorAxis)
		c.text(left-2-len(label), y, label, colorAxis)
		for x := left; x <= left+iw; x += 2 {
			if c.blank(x, y) {
				c.set(x, y, '┈', colorGrid)
			}
		}
	}
}

// drawLine traces the year-to-year polyline up to the sweep's progress.
func drawLine(c *canvas, f *figure.Frame, at func(x, y float64) (int, int)) {
	n := len(f.Series)
	if n < 2 {
		return
	}
	reach := f.Line.Progress * float64(n-1)
	for i := 0; i < n-1; i++ {
		frac := min(reach-float64(i), 1)
		if frac <= 0 {
			break
		}
		a, b := f.Series[i], f.Series[i+1]
		x0, y0 := at(a.A, a.B)
		x1, y1 := at(a.A+(b.A-a.A)*frac, a.B+(b.B-a.B)*frac)
		steps := max(abs(x1-x0), abs(y1-y0), 1)
		for s := 0; s <= steps; s++ {
			x := x0 + (x1-x0)*s/steps
			y := y0 + (y1-y0)*s/steps
			if c.in(x, y) && (c.blank(x, y) || c.cells[y*c.w+x].color == colorParity) {
				c.set(x, y, '•', colorDim)
			}
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
