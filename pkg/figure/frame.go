package figure

import (
	"math"
	"time"

	"github.com/matzehuels/scrollplot/pkg/dataset"
	"github.com/matzehuels/scrollplot/pkg/narrative"
	"github.com/matzehuels/scrollplot/pkg/reveal"
	"github.com/matzehuels/scrollplot/pkg/scale"
	"github.com/matzehuels/scrollplot/pkg/story"
)

// PointRadius is the radius of a fully revealed point.
const PointRadius = 5.0

// LineState is the reveal state of the series line.
type LineState struct {
	ID       string  `json:"id"`
	Visible  bool    `json:"visible"`
	Progress float64 `json:"progress"`
	Length   float64 `json:"length"`
}

// Frame is one renderable figure state.
type Frame struct {
	Category  string
	Title     string
	Subtitle  string
	StartYear int
	View      narrative.View

	Series dataset.Series
	Plot   scale.Plot
	Colors []string
	Points []reveal.PointState
	Line   LineState

	AxisLabelX string
	AxisLabelY string
}

// Compose builds the frame for view v at size x size pixels. When tl is
// mounted on the view's category its sweep progress at now and its measured
// line length are used; otherwise every visible point is drawn settled.
func Compose(s *story.Story, store *dataset.Store, v narrative.View, tl *reveal.Timeline, now time.Time, size float64) (*Frame, error) {
	category := v.Step.Category
	series, err := store.Lookup(category)
	if err != nil {
		return nil, err
	}

	plot := scale.NewPlot(series, size, size, scale.DefaultMargins)
	f := &Frame{
		Category:   category,
		Title:      category,
		Subtitle:   "Women and men " + story.SubtitleFor(category),
		StartYear:  store.StartYear(),
		View:       v,
		Series:     series,
		Plot:       plot,
		Colors:     Ramp(len(series)),
		AxisLabelX: s.AxisLabelX,
		AxisLabelY: s.AxisLabelY,
	}
	if f.AxisLabelX == "" {
		f.AxisLabelX = story.DefaultAxisLabelX
	}
	if f.AxisLabelY == "" {
		f.AxisLabelY = story.DefaultAxisLabelY
	}

	lineID := reveal.LineID(category)
	f.Line = LineState{ID: lineID, Length: polylineLength(plot, series)}

	if tl != nil && tl.Category() == category && tl.Len() == len(series) {
		f.Points = tl.Points(now)
		if line := tl.Line(); line != nil {
			f.Line.Visible = line.Visible()
			f.Line.Progress = tl.Progress(lineID, now)
		}
		if l, ok := tl.Length(lineID); ok {
			f.Line.Length = l
		}
		return f, nil
	}

	f.Points = settledPoints(category, f.StartYear, len(series), v)
	if v.Step.ShowLine {
		f.Line.Visible, f.Line.Progress = true, 1
	}
	return f, nil
}

func settledPoints(category string, start, n int, v narrative.View) []reveal.PointState {
	out := make([]reveal.PointState, n)
	for i := range out {
		st := reveal.Reveal(i, v.MaxYear, v.PreviousMaxYear, start)
		year := start + i
		p := reveal.PointState{
			Index:           i,
			Year:            year,
			ID:              reveal.PathID(category, year),
			Visible:         st.Visible,
			EndpointVisible: st.Visible,
			LabelVisible:    reveal.LabelVisible(st.Visible, v.MarkedYears, year),
			QueuePosition:   st.QueuePosition,
		}
		if st.Visible {
			p.Progress = 1
		}
		out[i] = p
	}
	return out
}

// Year returns the year of the point at index i.
func (f *Frame) Year(i int) int { return f.StartYear + i }

// Step is the effective step configuration of the frame.
func (f *Frame) Step() story.Step { return f.View.Step }

// VisiblePoints returns the indices of the visible points.
func (f *Frame) VisiblePoints() []int {
	var out []int
	for i, p := range f.Points {
		if p.Visible {
			out = append(out, i)
		}
	}
	return out
}

func polylineLength(plot scale.Plot, series dataset.Series) float64 {
	var total float64
	for i := 1; i < len(series); i++ {
		x0, y0 := plot.Point(series[i-1])
		x1, y1 := plot.Point(series[i])
		total += math.Hypot(x1-x0, y1-y0)
	}
	return total
}

// Measure returns the path length measurement for timelines drawn at
// size x size: the series polyline for line ids, the circumference for point
// ids, and 1 for anything unknown.
func Measure(store *dataset.Store, size float64) reveal.MeasureFunc {
	lengths := make(map[string]float64)
	circumference := 2 * math.Pi * PointRadius
	for _, category := range store.Categories() {
		series, err := store.Lookup(category)
		if err != nil {
			continue
		}
		plot := scale.NewPlot(series, size, size, scale.DefaultMargins)
		lengths[reveal.LineID(category)] = polylineLength(plot, series)
		for i := range series {
			lengths[reveal.PathID(category, store.Year(i))] = circumference
		}
	}
	return func(id string) float64 {
		if l, ok := lengths[id]; ok {
			return l
		}
		return 1
	}
}
