package scroll

import (
	"github.com/matzehuels/scrollplot/pkg/narrative"
)

// Extent is a step's position in content coordinates.
type Extent struct {
	Top    float64
	Height float64
}

// Contains reports whether y lies inside the extent.
func (e Extent) Contains(y float64) bool {
	return y >= e.Top && y < e.Top+e.Height
}

// Stack lays out steps of the given heights top to bottom, starting at lead
// and separated by gap.
func Stack(lead, gap float64, heights ...float64) []Extent {
	out := make([]Extent, len(heights))
	y := lead
	for i, h := range heights {
		out[i] = Extent{Top: y, Height: h}
		y += h + gap
	}
	return out
}

// Tracker maps scroll offsets to step events.
type Tracker struct {
	offset   float64
	steps    []Extent
	viewport float64

	top      float64
	dir      narrative.Direction
	inside   []bool
	scrolled bool
}

// NewTracker creates a tracker with its trigger line at offset (a fraction of
// the viewport height).
func NewTracker(offset float64, viewport float64, steps []Extent) *Tracker {
	return &Tracker{
		offset:   offset,
		viewport: viewport,
		steps:    steps,
		inside:   make([]bool, len(steps)),
	}
}

// TriggerLine is the content coordinate the trigger line crosses at the
// current scroll offset.
func (t *Tracker) TriggerLine() float64 {
	return t.top + t.offset*t.viewport
}

// Top returns the last scroll offset.
func (t *Tracker) Top() float64 { return t.top }

// Direction returns the direction of the last scroll movement.
func (t *Tracker) Direction() narrative.Direction { return t.dir }

// Scroll moves the viewport top to top and returns the resulting events.
func (t *Tracker) Scroll(top float64) []narrative.Event {
	if t.scrolled {
		switch {
		case top > t.top:
			t.dir = narrative.Down
		case top < t.top:
			t.dir = narrative.Up
		}
	}
	t.top = top
	t.scrolled = true
	return t.sample()
}

// Resize changes the viewport height and step layout, and returns the events
// caused by the trigger line moving relative to the steps.
func (t *Tracker) Resize(viewport float64, steps []Extent) []narrative.Event {
	t.viewport = viewport
	if len(steps) != len(t.steps) {
		t.inside = make([]bool, len(steps))
	}
	t.steps = steps
	return t.sample()
}

func (t *Tracker) sample() []narrative.Event {
	line := t.TriggerLine()
	var exits, enters []narrative.Event
	for i, e := range t.steps {
		in := e.Contains(line)
		switch {
		case t.inside[i] && !in:
			exits = append(exits, narrative.ExitStep(i, t.dir))
		case !t.inside[i] && in:
			enters = append(enters, narrative.EnterStep(i, t.dir))
		}
		t.inside[i] = in
	}
	return append(exits, enters...)
}

// Active returns the index of the step containing the trigger line, or
// narrative.None.
func (t *Tracker) Active() int {
	for i, in := range t.inside {
		if in {
			return i
		}
	}
	return narrative.None
}

// OffsetFor returns the scroll offset that puts the trigger line at the top
// of step i.
func (t *Tracker) OffsetFor(i int) float64 {
	if i < 0 || i >= len(t.steps) {
		return 0
	}
	return max(t.steps[i].Top-t.offset*t.viewport, 0)
}
