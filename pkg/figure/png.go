package figure

import (
	"bytes"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/matzehuels/scrollplot/pkg/errors"
	"github.com/matzehuels/scrollplot/pkg/scale"
)

// RenderPNG rasterizes the frame's visible points, series line and parity
// line. Sweeps are drawn settled; decorations other than the parity line are
// SVG only.
func RenderPNG(f *Frame) ([]byte, error) {
	p := f.Plot
	m := p.Margins

	series := []chart.Series{
		chart.ContinuousSeries{
			Name:    ParityLabel,
			XValues: []float64{0, p.Upper},
			YValues: []float64{0, p.Upper},
			Style: chart.Style{
				StrokeWidth:     1.8,
				StrokeColor:     drawing.ColorFromHex("555555"),
				StrokeDashArray: []float64{5, 4},
			},
		},
	}

	if f.Line.Visible && len(f.Series) > 1 {
		xs, ys := make([]float64, len(f.Series)), make([]float64, len(f.Series))
		for i, pt := range f.Series {
			xs[i], ys[i] = pt.A, pt.B
		}
		series = append(series, chart.ContinuousSeries{
			Name:    "line",
			XValues: xs,
			YValues: ys,
			Style: chart.Style{
				StrokeWidth: 1.5,
				StrokeColor: drawing.ColorFromHex("333333"),
			},
		})
	}

	var xs, ys []float64
	var colors []drawing.Color
	for _, i := range f.VisiblePoints() {
		xs = append(xs, f.Series[i].A)
		ys = append(ys, f.Series[i].B)
		colors = append(colors, drawing.ColorFromHex(f.Colors[i]))
	}
	if len(xs) > 0 {
		series = append(series, chart.ContinuousSeries{
			Name:    "points",
			XValues: xs,
			YValues: ys,
			Style: chart.Style{
				StrokeWidth: chart.Disabled,
				DotWidth:    PointRadius,
				DotColorProvider: func(_, _ chart.Range, index int, _, _ float64) drawing.Color {
					return colors[index]
				},
			},
		})
	}

	ch := chart.Chart{
		Title:  f.Title,
		Width:  int(p.Width),
		Height: int(p.Height),
		Background: chart.Style{
			Padding: chart.Box{Top: int(m.Top), Left: int(m.Left), Right: int(m.Right), Bottom: int(m.Bottom)},
		},
		XAxis: chart.XAxis{
			Name:  f.AxisLabelX,
			Range: &chart.ContinuousRange{Min: 0, Max: p.Upper},
			Ticks: chartTicks(p.X),
		},
		YAxis: chart.YAxis{
			Name:  f.AxisLabelY,
			Range: &chart.ContinuousRange{Min: 0, Max: p.Upper},
			Ticks: chartTicks(p.Y),
		},
		Series: series,
	}

	var buf bytes.Buffer
	if err := ch.Render(chart.PNG, &buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "render png")
	}
	return buf.Bytes(), nil
}

func chartTicks(l scale.Linear) []chart.Tick {
	values := l.Ticks(scale.DefaultTicks)
	ticks := make([]chart.Tick, len(values))
	for i, v := range values {
		ticks[i] = chart.Tick{Value: v, Label: FormatTick(v)}
		if i == 0 {
			ticks[i].Label = ""
		}
	}
	return ticks
}
