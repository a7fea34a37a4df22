package narrative

import (
	"github.com/matzehuels/scrollplot/pkg/story"
)

// None is the active step index before the narrative starts.
const None = -1

// State is the narrative's view state.
type State struct {
	ActiveStep      int     // index of the active step, or None
	CurrentMaxYear  int     // max year of the resolved step
	PreviousMaxYear int     // max year before the last change
	MarkedYears     YearSet // every max year passed through, first-seen order
}

// NewState is the state of a freshly mounted figure: no active step, the
// sentinel's max year, and the start year already marked.
func NewState(startYear int) State {
	return State{
		ActiveStep:      None,
		CurrentMaxYear:  startYear - 1,
		PreviousMaxYear: startYear,
		MarkedYears:     NewYearSet(startYear),
	}
}

// View is everything a renderer needs for one frame.
type View struct {
	StepIndex       int        // resolved step index, None for the sentinel
	Step            story.Step // effective step config
	MaxYear         int
	PreviousMaxYear int
	MarkedYears     YearSet
}

// Reduce applies ev to st. It is a pure function of its arguments.
func Reduce(ev Event, st State, steps []story.Step, sentinel story.Step) State {
	next := st

	switch ev.Kind {
	case Enter:
		next.ActiveStep = max(ev.Index, None)
	case Exit:
		if ev.Index == 0 && ev.Direction == Up {
			next.ActiveStep = None
		}
	}

	_, step := resolveStep(next.ActiveStep, steps, sentinel)
	if step.MaxYear != next.CurrentMaxYear {
		next.MarkedYears = next.MarkedYears.With(step.MaxYear)
		next.PreviousMaxYear = next.CurrentMaxYear
		next.CurrentMaxYear = step.MaxYear
	}
	return next
}

// Resolve maps st onto the view to draw. An active index outside steps falls
// back to the sentinel.
func Resolve(st State, steps []story.Step, sentinel story.Step) View {
	idx, step := resolveStep(st.ActiveStep, steps, sentinel)
	if idx <= 0 {
		step.ShowAxesIndicators = true
	}
	return View{
		StepIndex:       idx,
		Step:            step,
		MaxYear:         st.CurrentMaxYear,
		PreviousMaxYear: st.PreviousMaxYear,
		MarkedYears:     st.MarkedYears,
	}
}

func resolveStep(active int, steps []story.Step, sentinel story.Step) (int, story.Step) {
	if active < 0 || active >= len(steps) {
		return None, sentinel
	}
	return active, steps[active]
}

// Reducer binds a story to a running state. It is not safe for concurrent
// use; drive it from a single event loop.
type Reducer struct {
	steps     []story.Step
	sentinel  story.Step
	startYear int
	state     State
}

// NewReducer creates a reducer in the freshly mounted state.
func NewReducer(s *story.Story) *Reducer {
	return &Reducer{
		steps:     s.Steps,
		sentinel:  s.Sentinel(),
		startYear: s.StartYear,
		state:     NewState(s.StartYear),
	}
}

// Apply reduces ev into the reducer's state and returns the new view.
func (r *Reducer) Apply(ev Event) View {
	r.state = Reduce(ev, r.state, r.steps, r.sentinel)
	return r.View()
}

// State returns the current state.
func (r *Reducer) State() State { return r.state }

// View resolves the current state.
func (r *Reducer) View() View { return Resolve(r.state, r.steps, r.sentinel) }

// Reset returns to the freshly mounted state.
func (r *Reducer) Reset() { r.state = NewState(r.startYear) }
