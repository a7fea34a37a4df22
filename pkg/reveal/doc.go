// Package reveal animates points into a scrollplot figure.
//
// Each year's point (and the series line) is drawn by a stroke sweep when it
// becomes visible. Points revealed by the same step are staggered: a point's
// [State.QueuePosition] is how many years it sits past the previously shown
// maximum, and its sweep starts QueuePosition * QueueDelay after the step
// change.
//
// # Animators
//
// An [Animator] is the state machine for one path. [Animator.Update] compares
// the previous and current visibility:
//
//   - hidden to visible starts a [Sweep] tagged with a generation token
//   - visible to hidden clears the endpoint at once and bumps the generation
//   - anything else is a no-op
//
// [Animator.Complete] marks the endpoint visible only when its token is the
// current generation, so a sweep that finishes after the point was hidden
// again (or re-shown) has no effect.
//
// # Timelines
//
// A [Timeline] owns the animators of one figure and runs their sweeps
// against caller-supplied times, which keeps it deterministic:
//
//	tl := reveal.NewTimeline(store, s)
//	tl.Apply(view, now)
//	tl.Advance(now.Add(3 * time.Second))
//	p := tl.Point(4)
//
// Timelines are not safe for concurrent use.
package reveal
