package figure

import (
	"bytes"
	"fmt"

	"github.com/matzehuels/scrollplot/pkg/dataset"
	"github.com/matzehuels/scrollplot/pkg/scale"
)

// Share is the fraction of count_a in one year.
type Share struct {
	Year  int     `json:"year"`
	Share float64 `json:"share"`
}

// Shares returns A/(A+B) for every year of series. Years with no counts have
// share 0.
func Shares(series dataset.Series, startYear int) []Share {
	out := make([]Share, len(series))
	for i, p := range series {
		s := Share{Year: startYear + i}
		if total := p.A + p.B; total > 0 {
			s.Share = p.A / total
		}
		out[i] = s
	}
	return out
}

var percentTicks = []float64{0, 0.25, 0.5, 0.75, 1}

// renderPercentGraph replaces the scatter with one bar per year.
func renderPercentGraph(buf *bytes.Buffer, f *Frame) {
	p := f.Plot
	w, h := p.InnerWidth(), p.InnerHeight()
	y := scale.NewLinear(0, 1, h, 0)
	shares := Shares(f.Series, f.StartYear)
	if len(shares) == 0 {
		return
	}
	band := w / float64(len(shares))

	buf.WriteString(`    <g class="axis axis-y" font-size="14" fill="#888" text-anchor="end">` + "\n")
	for _, t := range percentTicks {
		ty := y.Map(t)
		fmt.Fprintf(buf, `      <line x1="0" y1="%.2f" x2="%.2f" y2="%.2f" stroke="#ccc" stroke-width="0.6"/>`+"\n", ty, w, ty)
		fmt.Fprintf(buf, `      <text x="%.2f" y="%.2f" dy="0.32em">%.0f%%</text>`+"\n", -float64(scale.DefaultTickPadding), ty, t*100)
	}
	buf.WriteString("    </g>\n")

	buf.WriteString(`    <g class="bars">` + "\n")
	for i, s := range shares {
		top := y.Map(s.Share)
		fmt.Fprintf(buf, `      <rect x="%.2f" y="%.2f" width="%.2f" height="%.2f" fill="%s"><title>%d: %.1f%%</title></rect>`+"\n",
			float64(i)*band+band*0.1, top, band*0.8, h-top, f.Colors[i], s.Year, s.Share*100)
	}
	buf.WriteString("    </g>\n")

	half := y.Map(0.5)
	fmt.Fprintf(buf, `    <line class="parity" x1="0" y1="%.2f" x2="%.2f" y2="%.2f" stroke="#555" stroke-width="1.8" stroke-dasharray="5 4"/>`+"\n", half, w, half)
	fmt.Fprintf(buf, `    <text x="%.2f" y="%.2f" font-size="13.6" fill="#111" text-anchor="end">%s</text>`+"\n", w, half-6, EqualShareLabel)

	first, last := shares[0], shares[len(shares)-1]
	fmt.Fprintf(buf, `    <text x="%.2f" y="%.2f" dy="0.71em" font-size="14" fill="#888" text-anchor="middle">%d</text>`+"\n",
		band/2, h+scale.DefaultTickPadding, first.Year)
	fmt.Fprintf(buf, `    <text x="%.2f" y="%.2f" dy="0.71em" font-size="14" fill="#888" text-anchor="middle">%d</text>`+"\n",
		w-band/2, h+scale.DefaultTickPadding, last.Year)
	fmt.Fprintf(buf, `    <text class="axis-label" transform="translate(%.2f, %.2f) rotate(-90)" font-size="16" fill="#999" text-anchor="middle">Share of total</text>`+"\n",
		-axisLabelSpacing, h/2)
}
