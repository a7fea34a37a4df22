package reveal

import (
	"slices"
	"time"

	"github.com/matzehuels/scrollplot/pkg/dataset"
	"github.com/matzehuels/scrollplot/pkg/narrative"
	"github.com/matzehuels/scrollplot/pkg/story"
)

// MeasureFunc returns the rendered length of the path with the given id.
type MeasureFunc func(id string) float64

func unitLength(string) float64 { return 1 }

// PointState is what a renderer needs to draw one point.
type PointState struct {
	Index           int
	Year            int
	ID              string
	Visible         bool
	EndpointVisible bool
	LabelVisible    bool
	QueuePosition   int
	Progress        float64 // sweep fraction in [0, 1]
	Length          float64 // measured path length, 0 when unmeasured
}

type scheduled struct {
	sweep Sweep
	start time.Time
	seq   int
}

func (s scheduled) end() time.Time { return s.start.Add(s.sweep.Delay + s.sweep.Duration) }

// Timeline runs the animators of one figure.
type Timeline struct {
	store    *dataset.Store
	timing   Timing
	measure  MeasureFunc
	measured bool

	category string
	points   []*Animator
	line     *Animator
	queue    []int
	marked   narrative.YearSet

	pending map[string]scheduled
	lengths map[string]float64
	seq     int
}

// TimelineOption configures a Timeline.
type TimelineOption func(*Timeline)

// WithMeasure sets the path length measurement. Measured lengths are kept
// per path and reported by Length and PointState.Length. Without it every
// path measures 1 and Length reports nothing.
func WithMeasure(fn MeasureFunc) TimelineOption {
	return func(t *Timeline) {
		if fn != nil {
			t.measure, t.measured = fn, true
		}
	}
}

// WithTiming overrides the story's queue delay and sweep duration.
func WithTiming(tm Timing) TimelineOption {
	return func(t *Timeline) { t.timing = tm }
}

// NewTimeline creates a timeline for the story's figure. No category is
// mounted until the first Apply.
func NewTimeline(store *dataset.Store, s *story.Story, opts ...TimelineOption) *Timeline {
	t := &Timeline{
		store:   store,
		timing:  Timing{QueueDelay: s.QueueDelay, SweepDuration: s.SweepDuration},
		measure: unitLength,
		pending: make(map[string]scheduled),
		lengths: make(map[string]float64),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Category returns the mounted category.
func (t *Timeline) Category() string { return t.category }

// Len is the number of points in the mounted category.
func (t *Timeline) Len() int { return len(t.points) }

// Apply feeds a view to every animator and schedules the sweeps that start.
// Switching category remounts the figure: old sweeps are dropped and points
// already visible in the new category sweep in at once.
func (t *Timeline) Apply(v narrative.View, now time.Time) ([]Sweep, error) {
	if v.Step.Category != t.category || t.points == nil {
		if err := t.mount(v.Step.Category); err != nil {
			return nil, err
		}
	}
	t.marked = v.MarkedYears

	var started []Sweep
	start := t.store.StartYear()
	for i, a := range t.points {
		st := Reveal(i, v.MaxYear, v.PreviousMaxYear, start)
		t.queue[i] = st.QueuePosition
		started = t.update(a, st, now, started)
	}
	started = t.update(t.line, State{Visible: v.Step.ShowLine}, now, started)
	return started, nil
}

func (t *Timeline) update(a *Animator, st State, now time.Time, started []Sweep) []Sweep {
	sw, ok := a.Update(st, t.timing, t.measure(a.ID()))
	if ok {
		if t.measured {
			t.lengths[a.ID()] = sw.Length
		}
		t.seq++
		t.pending[a.ID()] = scheduled{sweep: sw, start: now, seq: t.seq}
		return append(started, sw)
	}
	if !a.Visible() {
		delete(t.pending, a.ID())
	}
	return started
}

func (t *Timeline) mount(category string) error {
	series, err := t.store.Lookup(category)
	if err != nil {
		return err
	}
	start := t.store.StartYear()
	t.category = category
	t.points = make([]*Animator, len(series))
	t.queue = make([]int, len(series))
	for i := range series {
		t.points[i] = NewAnimator(PathID(category, start+i))
	}
	t.line = NewAnimator(LineID(category))
	clear(t.pending)
	clear(t.lengths)
	return nil
}

// Advance completes every pending sweep that has ended by now, in end-time
// order, and returns their path ids.
func (t *Timeline) Advance(now time.Time) []string {
	var due []scheduled
	for _, s := range t.pending {
		if !s.end().After(now) {
			due = append(due, s)
		}
	}
	slices.SortFunc(due, func(a, b scheduled) int {
		if c := a.end().Compare(b.end()); c != 0 {
			return c
		}
		return a.seq - b.seq
	})

	ids := make([]string, 0, len(due))
	for _, s := range due {
		delete(t.pending, s.sweep.ID)
		if a := t.animator(s.sweep.ID); a != nil && a.Complete(s.sweep.Token) {
			ids = append(ids, s.sweep.ID)
		}
	}
	return ids
}

// Settle completes every pending sweep regardless of time.
func (t *Timeline) Settle() []string {
	var latest time.Time
	for _, s := range t.pending {
		if e := s.end(); e.After(latest) {
			latest = e
		}
	}
	return t.Advance(latest)
}

// Length returns the path length measured when the path last started a
// sweep. It reports false without WithMeasure or before the first sweep.
func (t *Timeline) Length(id string) (float64, bool) {
	l, ok := t.lengths[id]
	return l, ok
}

// Pending is the number of sweeps still running.
func (t *Timeline) Pending() int { return len(t.pending) }

// NextDeadline returns the earliest end time of the running sweeps.
func (t *Timeline) NextDeadline() (time.Time, bool) {
	var next time.Time
	found := false
	for _, s := range t.pending {
		if e := s.end(); !found || e.Before(next) {
			next, found = e, true
		}
	}
	return next, found
}

// Progress returns how far the path's sweep has run at now: 0 before it
// starts or when hidden, 1 once complete.
func (t *Timeline) Progress(id string, now time.Time) float64 {
	a := t.animator(id)
	if a == nil || !a.Visible() {
		return 0
	}
	if a.EndpointVisible() {
		return 1
	}
	s, ok := t.pending[id]
	if !ok {
		return 1
	}
	if s.sweep.Duration <= 0 {
		if now.Before(s.start.Add(s.sweep.Delay)) {
			return 0
		}
		return 1
	}
	elapsed := now.Sub(s.start) - s.sweep.Delay
	return min(max(float64(elapsed)/float64(s.sweep.Duration), 0), 1)
}

// Point returns the render state of the point at index i.
func (t *Timeline) Point(i int, now time.Time) PointState {
	a := t.points[i]
	year := t.store.Year(i)
	return PointState{
		Index:           i,
		Year:            year,
		ID:              a.ID(),
		Visible:         a.Visible(),
		EndpointVisible: a.EndpointVisible(),
		LabelVisible:    LabelVisible(a.EndpointVisible(), t.marked, year),
		QueuePosition:   t.queue[i],
		Progress:        t.Progress(a.ID(), now),
		Length:          t.lengths[a.ID()],
	}
}

// Points returns the render state of every point.
func (t *Timeline) Points(now time.Time) []PointState {
	out := make([]PointState, len(t.points))
	for i := range t.points {
		out[i] = t.Point(i, now)
	}
	return out
}

// Line returns the series line's animator, or nil before the first Apply.
func (t *Timeline) Line() *Animator { return t.line }

func (t *Timeline) animator(id string) *Animator {
	if t.line != nil && t.line.ID() == id {
		return t.line
	}
	for _, a := range t.points {
		if a.ID() == id {
			return a
		}
	}
	return nil
}
