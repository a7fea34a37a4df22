// Package narrative turns scroll events into the figure's view state.
//
// The package is a pure reducer. [Reduce] takes an [Event] (a step entered or
// exited, with the scroll direction), the current [State] and the story's
// steps, and returns the next state. [Resolve] maps a state onto the
// [View] a renderer draws: the effective step (or the sentinel step before
// the narrative starts) plus the max-year history.
//
// # Rules
//
//   - Entering step i makes it active.
//   - Exiting step 0 while scrolling up returns to the before-start state (-1).
//   - Any other exit leaves the active step alone.
//   - Before the first step, and on the first step itself, the axis
//     indicators are always shown.
//   - Whenever the resolved max year changes, the old value becomes
//     PreviousMaxYear and the new one is appended to MarkedYears unless it is
//     already there.
//
// Applying the same event twice is a no-op the second time; MarkedYears is
// an immutable [YearSet] so earlier states are never modified.
package narrative
