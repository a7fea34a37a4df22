// Package scroll turns scroll positions into narrative step events.
//
// A [Tracker] knows where each step sits in the scroll container and how tall
// the viewport is. The trigger line runs across the viewport at a fixed
// fraction (the story's trigger offset) from its top. Each call to
// [Tracker.Scroll] reports the steps whose containment of the trigger line
// changed: exits first, then enters. Steps that were jumped over emit
// nothing.
//
// A [Bridge] feeds those events to a [narrative.Reducer] and, optionally, to
// a [Highlighter] that marks the active step's text.
package scroll
