package reveal

import "github.com/matzehuels/scrollplot/pkg/narrative"

// State is the reveal record of one point. It is derived on every render and
// never stored.
type State struct {
	Visible       bool
	QueuePosition int
}

// Reveal computes the record for the point at index i. Points up to
// currentMaxYear are visible; the queue counts years past the previous
// maximum (or the start year, if that is later). A step that moves the
// maximum backwards would give negative positions; those clamp to zero.
func Reveal(i, currentMaxYear, previousMaxYear, startYear int) State {
	year := startYear + i
	return State{
		Visible:       year <= currentMaxYear,
		QueuePosition: max(year-max(previousMaxYear, startYear), 0),
	}
}

// LabelVisible reports whether the year label of a point is drawn: its sweep
// has finished and the reader has stopped on that year.
func LabelVisible(endpointVisible bool, marked narrative.YearSet, year int) bool {
	return endpointVisible && marked.Contains(year)
}
