package figure

import (
	"encoding/json"
)

type frameJSON struct {
	Category        string      `json:"category"`
	Title           string      `json:"title"`
	Subtitle        string      `json:"subtitle"`
	Step            int         `json:"step"`
	MaxYear         int         `json:"max_year"`
	PreviousMaxYear int         `json:"previous_max_year"`
	MarkedYears     []int       `json:"marked_years"`
	Width           float64     `json:"width"`
	Height          float64     `json:"height"`
	Upper           float64     `json:"upper_limit"`
	Flags           flagsJSON   `json:"flags"`
	Line            LineState   `json:"line"`
	Points          []pointJSON `json:"points"`
	Shares          []Share     `json:"shares,omitempty"`
}

type flagsJSON struct {
	ShowAxesIndicators bool `json:"show_axes_indicators"`
	ShowLine           bool `json:"show_line"`
	ShowPercentGraph   bool `json:"show_percent_graph"`
}

type pointJSON struct {
	Year            int     `json:"year"`
	A               float64 `json:"a"`
	B               float64 `json:"b"`
	X               float64 `json:"x"`
	Y               float64 `json:"y"`
	Color           string  `json:"color"`
	Visible         bool    `json:"visible"`
	EndpointVisible bool    `json:"endpoint_visible"`
	LabelVisible    bool    `json:"label_visible"`
	QueuePosition   int     `json:"queue_position"`
	Progress        float64 `json:"progress"`
	Length          float64 `json:"length,omitempty"`
}

// RenderJSON encodes the frame's view state and reveal records.
func RenderJSON(f *Frame) ([]byte, error) {
	step := f.Step()
	out := frameJSON{
		Category:        f.Category,
		Title:           f.Title,
		Subtitle:        f.Subtitle,
		Step:            f.View.StepIndex,
		MaxYear:         f.View.MaxYear,
		PreviousMaxYear: f.View.PreviousMaxYear,
		MarkedYears:     f.View.MarkedYears.Years(),
		Width:           f.Plot.Width,
		Height:          f.Plot.Height,
		Upper:           f.Plot.Upper,
		Flags: flagsJSON{
			ShowAxesIndicators: step.ShowAxesIndicators,
			ShowLine:           step.ShowLine,
			ShowPercentGraph:   step.ShowPercentGraph,
		},
		Line:   f.Line,
		Points: make([]pointJSON, len(f.Points)),
	}
	for i, p := range f.Points {
		src := f.Series[p.Index]
		x, y := f.Plot.Point(src)
		out.Points[i] = pointJSON{
			Year:            p.Year,
			A:               src.A,
			B:               src.B,
			X:               x,
			Y:               y,
			Color:           f.Colors[p.Index],
			Visible:         p.Visible,
			EndpointVisible: p.EndpointVisible,
			LabelVisible:    p.LabelVisible,
			QueuePosition:   p.QueuePosition,
			Progress:        p.Progress,
			Length:          p.Length,
		}
	}
	if step.ShowPercentGraph {
		out.Shares = Shares(f.Series, f.StartYear)
	}
	return json.MarshalIndent(out, "", "  ")
}
