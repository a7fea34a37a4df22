package figure

import (
	"bytes"
	"encoding/json"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/matzehuels/scrollplot/pkg/dataset"
	"github.com/matzehuels/scrollplot/pkg/errors"
	"github.com/matzehuels/scrollplot/pkg/narrative"
	"github.com/matzehuels/scrollplot/pkg/reveal"
	"github.com/matzehuels/scrollplot/pkg/story"
)

func fixture(t *testing.T) (*story.Story, *dataset.Store) {
	t.Helper()
	store, err := dataset.New(1990, map[string]dataset.Series{
		"Engineering": {{A: 10, B: 5}, {A: 12, B: 6}, {A: 15, B: 20}},
		"Physics":     {{A: 1000, B: 3000}, {A: 1200, B: 2800}, {A: 1500, B: 2500}},
	})
	if err != nil {
		t.Fatalf("dataset.New: %v", err)
	}
	s := &story.Story{
		StartYear:       1990,
		EndYear:         1992,
		DefaultCategory: "Engineering",
		Steps: []story.Step{
			{Text: "a", Category: "Engineering", MaxYear: 1990},
			{Text: "b", Category: "Engineering", MaxYear: 1992, ShowLine: true,
				Guides: []story.Guide{{Kind: story.GuideNote, Label: "Big <jump>", Year: 1992}, {Kind: "sparkle", Year: 1991}}},
			{Text: "c", Category: "Physics", MaxYear: 1992, ShowPercentGraph: true},
		},
	}
	s.SetDefaults()
	return s, store
}

// frameAt replays enters down to step idx (or stays at the sentinel for -1).
func frameAt(t *testing.T, idx int) *Frame {
	t.Helper()
	s, store := fixture(t)
	r := narrative.NewReducer(s)
	for i := 0; i <= idx; i++ {
		r.Apply(narrative.EnterStep(i, narrative.Down))
	}
	f, err := Compose(s, store, r.View(), nil, time.Time{}, 600)
	if err != nil {
		t.Fatalf("Compose: %v", err)
	}
	return f
}

func TestSentinelFrame(t *testing.T) {
	f := frameAt(t, -1)
	if len(f.VisiblePoints()) != 0 {
		t.Errorf("visible = %v, want none", f.VisiblePoints())
	}

	svg := string(RenderSVG(f))
	for _, want := range []string{ParityLabel, MoreMenLabel, MoreWomenLabel, "Number of women", "Number of men", ">Engineering</text>"} {
		if !strings.Contains(svg, want) {
			t.Errorf("SVG missing %q", want)
		}
	}
	if strings.Contains(svg, "<circle") {
		t.Error("sentinel frame should draw no points")
	}
}

func TestIndicatorsOnlyWhenFlagged(t *testing.T) {
	if svg := string(RenderSVG(frameAt(t, 0))); !strings.Contains(svg, MoreMenLabel) {
		t.Error("first step forces axis indicators")
	}
	if svg := string(RenderSVG(frameAt(t, 1))); strings.Contains(svg, MoreMenLabel) {
		t.Error("second step does not show axis indicators")
	}
}

func TestPointsLineAndLabels(t *testing.T) {
	f := frameAt(t, 1)
	svg := string(RenderSVG(f))

	if got := strings.Count(svg, "<circle"); got != 3 {
		t.Errorf("circles = %d, want 3", got)
	}
	if !strings.Contains(svg, `class="line"`) {
		t.Error("line should be drawn")
	}
	// Marked years are 1990 (initial) and 1992.
	if got := strings.Count(svg, `class="point-label"`); got != 2 {
		t.Errorf("labels = %d, want 2", got)
	}
	if !strings.Contains(svg, "Big &lt;jump&gt;") {
		t.Error("note guide should be drawn and escaped")
	}
	if got := strings.Count(svg, `class="guide"`); got != 1 {
		t.Errorf("guides = %d, want 1 (unknown kinds skipped)", got)
	}
}

func TestPercentGraph(t *testing.T) {
	f := frameAt(t, 2)
	svg := string(RenderSVG(f))
	if !strings.Contains(svg, EqualShareLabel) {
		t.Error("percent graph missing reference line")
	}
	if strings.Contains(svg, ParityLabel) || strings.Contains(svg, "<circle") {
		t.Error("percent graph replaces the scatter")
	}
	if got := strings.Count(svg, "<rect x="); got != 3 {
		t.Errorf("bars = %d, want 3", got)
	}
}

func TestShares(t *testing.T) {
	got := Shares(dataset.Series{{A: 1, B: 3}, {}}, 2000)
	if got[0].Year != 2000 || got[0].Share != 0.25 {
		t.Errorf("share[0] = %+v", got[0])
	}
	if got[1].Share != 0 {
		t.Errorf("empty year share = %v, want 0", got[1].Share)
	}
}

func TestRenderIsDeterministic(t *testing.T) {
	a := RenderSVG(frameAt(t, 1))
	b := RenderSVG(frameAt(t, 1))
	if !bytes.Equal(a, b) {
		t.Error("identical frames rendered differently")
	}
}

func TestSVGOptions(t *testing.T) {
	f := frameAt(t, 0)
	svg := string(RenderSVG(f, WithoutTitle(), WithBackground("#fff"), WithFontFamily("Serif")))
	if strings.Contains(svg, `class="title"`) {
		t.Error("title should be omitted")
	}
	if !strings.Contains(svg, `fill="#fff"`) || !strings.Contains(svg, `font-family="Serif"`) {
		t.Error("options not applied")
	}
}

func TestComposeWithTimeline(t *testing.T) {
	s, store := fixture(t)
	r := narrative.NewReducer(s)
	tl := reveal.NewTimeline(store, s, reveal.WithMeasure(Measure(store, 600)))
	t0 := time.Unix(0, 0)

	tl.Apply(r.View(), t0)
	tl.Apply(r.Apply(narrative.EnterStep(0, narrative.Down)), t0)

	f, err := Compose(s, store, r.View(), tl, t0.Add(time.Second), 600)
	if err != nil {
		t.Fatal(err)
	}
	if p := f.Points[0]; !p.Visible || p.Progress != 0.5 || p.LabelVisible {
		t.Errorf("mid-sweep point = %+v", p)
	}
	if !strings.Contains(string(RenderSVG(f)), `r="2.50"`) {
		t.Error("mid-sweep point should be drawn at half radius")
	}
}

func TestComposeUsesMeasuredLineLength(t *testing.T) {
	s, store := fixture(t)
	r := narrative.NewReducer(s)
	lineID := reveal.LineID("Engineering")
	tl := reveal.NewTimeline(store, s, reveal.WithMeasure(func(id string) float64 {
		if id == lineID {
			return 9999
		}
		return 31
	}))
	t0 := time.Unix(0, 0)

	tl.Apply(r.View(), t0)
	tl.Apply(r.Apply(narrative.EnterStep(0, narrative.Down)), t0)
	tl.Apply(r.Apply(narrative.EnterStep(1, narrative.Down)), t0)

	f, err := Compose(s, store, r.View(), tl, t0.Add(time.Second), 600)
	if err != nil {
		t.Fatal(err)
	}
	if f.Line.Length != 9999 {
		t.Errorf("line length = %v, want the measured 9999", f.Line.Length)
	}
	if f.Points[0].Length != 31 {
		t.Errorf("point length = %v, want 31", f.Points[0].Length)
	}
	svg := string(RenderSVG(f))
	if !strings.Contains(svg, `stroke-dasharray="9999.00"`) {
		t.Error("line dash array should use the measured length")
	}

	unmeasured := reveal.NewTimeline(store, s)
	unmeasured.Apply(r.View(), t0)
	f, err = Compose(s, store, r.View(), unmeasured, t0, 600)
	if err != nil {
		t.Fatal(err)
	}
	if f.Line.Length == 9999 || f.Line.Length <= 1 {
		t.Errorf("unmeasured line length = %v, want the polyline length", f.Line.Length)
	}
}

func TestComposeUnknownCategory(t *testing.T) {
	s, store := fixture(t)
	v := narrative.View{Step: story.Step{Category: "Alchemy"}}
	if _, err := Compose(s, store, v, nil, time.Time{}, 600); !errors.Is(err, errors.ErrCodeCategoryNotFound) {
		t.Errorf("err = %v, want CATEGORY_NOT_FOUND", err)
	}
}

func TestMeasure(t *testing.T) {
	_, store := fixture(t)
	m := Measure(store, 600)
	if got := m(reveal.LineID("Engineering")); got <= 0 || got == 1 {
		t.Errorf("line length = %v", got)
	}
	if got := m(reveal.PathID("Physics", 1991)); math.Abs(got-2*math.Pi*PointRadius) > 1e-9 {
		t.Errorf("point length = %v", got)
	}
	if got := m("nope"); got != 1 {
		t.Errorf("unknown length = %v", got)
	}
}

func TestRamp(t *testing.T) {
	r := Ramp(27)
	if len(r) != 27 {
		t.Fatalf("len = %d", len(r))
	}
	if !strings.EqualFold(r[0], RampStart) || !strings.EqualFold(r[26], RampEnd) {
		t.Errorf("ramp = %s .. %s", r[0], r[26])
	}
	if len(Ramp(1)) != 1 || Ramp(0) == nil {
		t.Error("degenerate ramps")
	}
}

func TestIndicatorGeometry(t *testing.T) {
	f := frameAt(t, 0)
	in := indicators(f.Plot)
	if len(in) != 2 {
		t.Fatalf("indicators = %d", len(in))
	}
	men, women := in[0], in[1]
	if men.label != MoreMenLabel || women.label != MoreWomenLabel {
		t.Fatalf("labels = %q, %q", men.label, women.label)
	}
	// More men sits above-left of the parity line, more women below-right.
	if !(men.x2 < men.x1 && men.y2 < men.y1) || !(women.x2 > women.x1 && women.y2 > women.y1) {
		t.Errorf("arrows point the wrong way: %+v %+v", men, women)
	}
	if d := math.Abs(men.x2 - men.x1); d > 32 {
		t.Errorf("arrow length %v exceeds 32", d)
	}
}

func TestLabelOffset(t *testing.T) {
	ox, oy := labelOffset(10, 10, 10, 20)
	if ox != 0 || oy != -labelDistance {
		t.Errorf("offset = (%v,%v), want away from the neighbour below", ox, oy)
	}
	ox, oy = labelOffset(5, 5, 5, 5)
	if ox != 0 || oy != -labelDistance {
		t.Errorf("coincident offset = (%v,%v)", ox, oy)
	}
	if avoidIndex(2, 3) != 1 || avoidIndex(0, 3) != 1 || avoidIndex(0, 1) != 0 {
		t.Error("avoidIndex")
	}
}

func TestFormatTick(t *testing.T) {
	tests := map[float64]string{0: "0", 5: "5", 1000: "1,000", 2500000: "2,500,000", 0.2: "0.2"}
	for v, want := range tests {
		if got := FormatTick(v); got != want {
			t.Errorf("FormatTick(%v) = %q, want %q", v, got, want)
		}
	}
}

func TestParseFormat(t *testing.T) {
	for _, s := range []string{"svg", "PNG", " json "} {
		if _, err := ParseFormat(s); err != nil {
			t.Errorf("ParseFormat(%q): %v", s, err)
		}
	}
	if _, err := ParseFormat("pdf"); !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("ParseFormat(pdf) = %v", err)
	}
	if PNG.ContentType() != "image/png" || SVG.Ext() != ".svg" {
		t.Error("format metadata")
	}
}

func TestRenderJSON(t *testing.T) {
	data, err := Render(frameAt(t, 1), JSON)
	if err != nil {
		t.Fatal(err)
	}
	var got struct {
		Category    string `json:"category"`
		Step        int    `json:"step"`
		MarkedYears []int  `json:"marked_years"`
		Flags       struct {
			ShowLine bool `json:"show_line"`
		} `json:"flags"`
		Points []struct {
			Year    int  `json:"year"`
			Visible bool `json:"visible"`
		} `json:"points"`
	}
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got.Category != "Engineering" || got.Step != 1 || !got.Flags.ShowLine {
		t.Errorf("frame = %+v", got)
	}
	if len(got.Points) != 3 || got.Points[2].Year != 1992 || !got.Points[2].Visible {
		t.Errorf("points = %+v", got.Points)
	}
	if len(got.MarkedYears) != 2 {
		t.Errorf("marked = %v", got.MarkedYears)
	}
}

func TestRenderPNG(t *testing.T) {
	data, err := Render(frameAt(t, 1), PNG)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(data, []byte("\x89PNG")) {
		t.Error("output is not a PNG")
	}
}
