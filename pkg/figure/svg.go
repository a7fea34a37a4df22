package figure

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"math"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/matzehuels/scrollplot/pkg/reveal"
	"github.com/matzehuels/scrollplot/pkg/scale"
	"github.com/matzehuels/scrollplot/pkg/story"
)

const defaultFontFamily = "Roboto, Helvetica, Arial, sans-serif"

// Figure text.
const (
	ParityLabel     = "EQUAL NUMBER OF MEN AND WOMEN"
	MoreMenLabel    = "MORE MEN"
	MoreWomenLabel  = "MORE WOMEN"
	EqualShareLabel = "EQUAL SHARE"
)

const (
	axisLabelSpacing = 45.0
	labelDistance    = 16.0
	indicatorAt      = 0.65
)

type SVGOption func(*svgRenderer)

type svgRenderer struct {
	font       string
	background string
	title      bool
}

// WithFontFamily sets the CSS font-family of all text.
func WithFontFamily(family string) SVGOption { return func(r *svgRenderer) { r.font = family } }

// WithBackground fills the figure with color. The default is transparent.
func WithBackground(color string) SVGOption { return func(r *svgRenderer) { r.background = color } }

// WithoutTitle omits the category title.
func WithoutTitle() SVGOption { return func(r *svgRenderer) { r.title = false } }

func newSVGRenderer(opts ...SVGOption) svgRenderer {
	r := svgRenderer{font: defaultFontFamily, title: true}
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

// RenderSVG draws the frame as a standalone SVG document.
func RenderSVG(f *Frame, opts ...SVGOption) []byte {
	r := newSVGRenderer(opts...)
	p := f.Plot

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f" font-family="%s">`+"\n",
		p.Width, p.Height, p.Width, p.Height, escapeXML(r.font))

	renderDefs(&buf, f)
	if r.background != "" {
		fmt.Fprintf(&buf, `  <rect width="100%%" height="100%%" fill="%s"/>`+"\n", escapeXML(r.background))
	}
	if r.title {
		fmt.Fprintf(&buf, `  <text class="title" x="%.2f" y="23" text-anchor="middle" font-size="19" font-weight="500" fill="#111">%s</text>`+"\n",
			p.Margins.Left+p.InnerWidth()/2, escapeXML(f.Title))
	}

	fmt.Fprintf(&buf, `  <g transform="translate(%.1f, %.1f)">`+"\n", p.Margins.Left, p.Margins.Top)
	step := f.Step()
	if step.ShowPercentGraph {
		renderPercentGraph(&buf, f)
	} else {
		renderAxes(&buf, f)
		renderParity(&buf, f)
		if step.ShowAxesIndicators {
			renderIndicators(&buf, f)
		}
		renderLine(&buf, f)
		renderPoints(&buf, f)
		renderLabels(&buf, f)
		renderGuides(&buf, f, step.Guides)
	}
	buf.WriteString("  </g>\n</svg>\n")
	return buf.Bytes()
}

func renderDefs(buf *bytes.Buffer, f *Frame) {
	fmt.Fprintf(buf, `  <defs>
    <marker id="%s" viewBox="0 0 10 10" refX="5" refY="5" markerWidth="6" markerHeight="6" orient="auto-start-reverse">
      <path d="M 0 0 L 10 5 L 0 10 z" fill="#111"/>
    </marker>
  </defs>
`, elementID("arrowhead", f.Category))
}

func renderAxes(buf *bytes.Buffer, f *Frame) {
	p := f.Plot
	w, h := p.InnerWidth(), p.InnerHeight()

	buf.WriteString(`    <g class="axis axis-x" font-size="14" fill="#888" text-anchor="middle">` + "\n")
	for i, t := range p.X.Ticks(scale.DefaultTicks) {
		x := p.X.Map(t)
		fmt.Fprintf(buf, `      <line x1="%.2f" y1="0" x2="%.2f" y2="%.2f" stroke="#ccc" stroke-width="0.6"/>`+"\n", x, x, h)
		if i == 0 {
			continue
		}
		fmt.Fprintf(buf, `      <text x="%.2f" y="%.2f" dy="0.71em">%s</text>`+"\n", x, h+scale.DefaultTickPadding, FormatTick(t))
	}
	buf.WriteString("    </g>\n")

	buf.WriteString(`    <g class="axis axis-y" font-size="14" fill="#888" text-anchor="end">` + "\n")
	for i, t := range p.Y.Ticks(scale.DefaultTicks) {
		y := p.Y.Map(t)
		fmt.Fprintf(buf, `      <line x1="0" y1="%.2f" x2="%.2f" y2="%.2f" stroke="#ccc" stroke-width="0.6"/>`+"\n", y, w, y)
		if i == 0 {
			continue
		}
		fmt.Fprintf(buf, `      <text x="%.2f" y="%.2f" dy="0.32em">%s</text>`+"\n", -float64(scale.DefaultTickPadding), y, FormatTick(t))
	}
	buf.WriteString("    </g>\n")

	fmt.Fprintf(buf, `    <text class="axis-label" transform="translate(%.2f, %.2f)" font-size="16" fill="#999" text-anchor="middle">%s</text>`+"\n",
		w/2, h+axisLabelSpacing, escapeXML(f.AxisLabelX))
	fmt.Fprintf(buf, `    <text class="axis-label" transform="translate(%.2f, %.2f) rotate(-90)" font-size="16" fill="#999" text-anchor="middle">%s</text>`+"\n",
		-axisLabelSpacing, h/2, escapeXML(f.AxisLabelY))
}

func renderParity(buf *bytes.Buffer, f *Frame) {
	p := f.Plot
	id := elementID("parity", f.Category)
	x0, y0 := p.XY(0, 0)
	x1, y1 := p.XY(p.Upper, p.Upper)
	fmt.Fprintf(buf, `    <path id="%s" class="parity" d="M%.2f,%.2f L%.2f,%.2f" fill="none" stroke="#555" stroke-width="1.8" stroke-dasharray="5 4"/>`+"\n",
		id, x0, y0, x1, y1)
	fmt.Fprintf(buf, `    <text class="parity-label" transform="translate(14, 14)" font-size="13.6" fill="#111"><textPath href="#%s" startOffset="50%%" text-anchor="middle">%s</textPath></text>`+"\n",
		id, ParityLabel)
}

// indicator is one of the two arrows pointing away from the parity line.
type indicator struct {
	x1, y1, x2, y2 float64
	lx, ly         float64
	label          string
}

func indicators(p scale.Plot) []indicator {
	h := p.InnerHeight()
	x, y := p.XY(p.Upper*indicatorAt, p.Upper*indicatorAt)
	length := min(32, h/10)

	var out []indicator
	for _, side := range []struct {
		orient float64
		label  string
	}{{-1, MoreMenLabel}, {1, MoreWomenLabel}} {
		pad := 7.0
		if side.orient < 0 {
			pad += 8
		}
		x1 := x + side.orient*h/5
		y1 := y + side.orient*h/5
		out = append(out, indicator{
			x1: x1, y1: y1,
			x2: x1 + side.orient*length, y2: y1 + side.orient*length,
			lx: x1 - side.orient*pad, ly: y1 - side.orient*pad,
			label: side.label,
		})
	}
	return out
}

func renderIndicators(buf *bytes.Buffer, f *Frame) {
	marker := elementID("arrowhead", f.Category)
	buf.WriteString(`    <g class="indicators">` + "\n")
	for _, in := range indicators(f.Plot) {
		fmt.Fprintf(buf, `      <line x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f" stroke="#111" stroke-width="1.8" fill="none" marker-end="url(#%s)"/>`+"\n",
			in.x1, in.y1, in.x2, in.y2, marker)
		fmt.Fprintf(buf, `      <text transform="translate(%.2f, %.2f) rotate(-45)" font-size="15.5" font-weight="700" text-anchor="middle">%s</text>`+"\n",
			in.lx, in.ly, in.label)
	}
	buf.WriteString("    </g>\n")
}

func renderLine(buf *bytes.Buffer, f *Frame) {
	if !f.Line.Visible || len(f.Series) < 2 {
		return
	}
	var d strings.Builder
	for i, pt := range f.Series {
		x, y := f.Plot.Point(pt)
		if i == 0 {
			fmt.Fprintf(&d, "M%.2f,%.2f", x, y)
		} else {
			fmt.Fprintf(&d, " L%.2f,%.2f", x, y)
		}
	}
	l := f.Line.Length
	fmt.Fprintf(buf, `    <path id="%s" class="line" d="%s" fill="none" stroke="#333" stroke-width="1.5" stroke-dasharray="%.2f" stroke-dashoffset="%.2f"/>`+"\n",
		f.Line.ID, d.String(), l, l*(1-f.Line.Progress))
}

func renderPoints(buf *bytes.Buffer, f *Frame) {
	buf.WriteString(`    <g class="points">` + "\n")
	for _, pt := range f.Points {
		if !pt.Visible || pt.Progress <= 0 {
			continue
		}
		x, y := f.Plot.Point(f.Series[pt.Index])
		fmt.Fprintf(buf, `      <circle id="%s" cx="%.2f" cy="%.2f" r="%.2f" fill="%s"><title>%d</title></circle>`+"\n",
			pt.ID, x, y, PointRadius*pt.Progress, f.Colors[pt.Index], pt.Year)
	}
	buf.WriteString("    </g>\n")
}

func renderLabels(buf *bytes.Buffer, f *Frame) {
	for _, pt := range f.Points {
		if !pt.LabelVisible {
			continue
		}
		x, y := f.Plot.Point(f.Series[pt.Index])
		ax, ay := f.Plot.Point(f.Series[avoidIndex(pt.Index, len(f.Series))])
		ox, oy := labelOffset(x, y, ax, ay)
		fmt.Fprintf(buf, `    <text class="point-label" x="%.2f" y="%.2f" dy="0.35em" font-size="16" font-weight="500" text-anchor="middle" fill="#333">%d</text>`+"\n",
			x+ox, y+oy, pt.Year)
	}
}

// avoidIndex is the neighbour a label is pushed away from: the next point,
// or the previous one for the last point.
func avoidIndex(i, n int) int {
	if i >= n-1 {
		return max(i-1, 0)
	}
	return i + 1
}

func labelOffset(x, y, ax, ay float64) (float64, float64) {
	dx, dy := x-ax, y-ay
	d := math.Hypot(dx, dy)
	if d == 0 {
		return 0, -labelDistance
	}
	return dx / d * labelDistance, dy / d * labelDistance
}

func renderGuides(buf *bytes.Buffer, f *Frame, guides []story.Guide) {
	for _, g := range guides {
		if g.Kind != story.GuideNote {
			continue
		}
		i := g.Year - f.StartYear
		if i < 0 || i >= len(f.Points) || !f.Points[i].Visible {
			continue
		}
		x, y := f.Plot.Point(f.Series[i])
		fmt.Fprintf(buf, `    <g class="guide">
      <line x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f" stroke="#999" stroke-width="1"/>
      <text x="%.2f" y="%.2f" font-size="13" fill="#555">%s</text>
    </g>
`, x+PointRadius, y-PointRadius, x+24, y-24, x+28, y-28, escapeXML(g.Label))
	}
}

var tickPrinter = message.NewPrinter(language.English)

// FormatTick prints integers with thousands separators and fractions in
// their shortest form.
func FormatTick(v float64) string {
	if v == math.Trunc(v) && math.Abs(v) < 1e15 {
		return tickPrinter.Sprintf("%d", int64(v))
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// elementID builds a document-unique id from a prefix and a category name.
func elementID(prefix, category string) string {
	return prefix + "-" + strings.TrimPrefix(reveal.LineID(category), "l-")[:8]
}

func escapeXML(s string) string {
	var buf bytes.Buffer
	_ = xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
