package reveal

import "time"

// Phase is where an animator's path is in its reveal.
type Phase int

const (
	Hidden Phase = iota
	Sweeping
	Shown
)

func (p Phase) String() string {
	switch p {
	case Sweeping:
		return "sweeping"
	case Shown:
		return "shown"
	default:
		return "hidden"
	}
}

// Timing controls sweep scheduling.
type Timing struct {
	QueueDelay    time.Duration // stagger per queue position
	SweepDuration time.Duration // length of one sweep
}

// Sweep is a started stroke animation. The dash array and offset both start
// at Length and the offset runs to zero over Duration, after Delay.
type Sweep struct {
	ID       string
	Token    uint64
	Delay    time.Duration
	Duration time.Duration
	Length   float64
}

// Animator is the reveal state machine of one path.
type Animator struct {
	id       string
	mounted  bool
	visible  bool
	endpoint bool
	gen      uint64
}

// NewAnimator returns an unmounted animator for path id.
func NewAnimator(id string) *Animator {
	return &Animator{id: id}
}

// ID returns the path id.
func (a *Animator) ID() string { return a.id }

// Visible reports the visibility from the last Update.
func (a *Animator) Visible() bool { return a.visible }

// EndpointVisible reports whether the current sweep has completed.
func (a *Animator) EndpointVisible() bool { return a.endpoint }

// Generation returns the current generation token.
func (a *Animator) Generation() uint64 { return a.gen }

// Phase returns the animator's phase.
func (a *Animator) Phase() Phase {
	switch {
	case !a.visible:
		return Hidden
	case !a.endpoint:
		return Sweeping
	default:
		return Shown
	}
}

// Update applies the current reveal record. It returns the sweep to run when
// the path just became visible. The first call mounts the animator: a path
// that is visible on mount sweeps without delay.
func (a *Animator) Update(st State, tm Timing, length float64) (Sweep, bool) {
	if !a.mounted {
		a.mounted = true
		if !st.Visible {
			return Sweep{}, false
		}
		return a.start(0, tm, length), true
	}

	switch {
	case !a.visible && st.Visible:
		return a.start(time.Duration(st.QueuePosition)*tm.QueueDelay, tm, length), true
	case a.visible && !st.Visible:
		a.visible = false
		a.endpoint = false
		a.gen++
	}
	return Sweep{}, false
}

func (a *Animator) start(delay time.Duration, tm Timing, length float64) Sweep {
	a.visible = true
	a.endpoint = false
	a.gen++
	return Sweep{
		ID:       a.id,
		Token:    a.gen,
		Delay:    delay,
		Duration: tm.SweepDuration,
		Length:   length,
	}
}

// Complete handles the end of the sweep tagged token. It reports whether the
// endpoint became visible; completions from superseded sweeps are ignored.
func (a *Animator) Complete(token uint64) bool {
	if token != a.gen || !a.visible {
		return false
	}
	a.endpoint = true
	return true
}
