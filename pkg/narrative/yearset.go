package narrative

import (
	"slices"
	"strconv"
	"strings"
)

// YearSet is an insertion-ordered set of years. The zero value is empty.
// A YearSet is immutable: With returns a new set and never modifies the
// receiver, so states that share a set cannot observe each other's updates.
type YearSet struct {
	years []int
}

// NewYearSet returns a set holding years in first-seen order.
func NewYearSet(years ...int) YearSet {
	var s YearSet
	for _, y := range years {
		s = s.With(y)
	}
	return s
}

// With returns a set that also contains year. When year is already present
// the receiver is returned unchanged.
func (s YearSet) With(year int) YearSet {
	if s.Contains(year) {
		return s
	}
	years := make([]int, len(s.years), len(s.years)+1)
	copy(years, s.years)
	return YearSet{years: append(years, year)}
}

// Contains reports whether year is in the set.
func (s YearSet) Contains(year int) bool {
	return slices.Contains(s.years, year)
}

// Len is the number of years in the set.
func (s YearSet) Len() int { return len(s.years) }

// Years returns a copy of the years in insertion order.
func (s YearSet) Years() []int { return slices.Clone(s.years) }

// Equal reports whether both sets hold the same years in the same order.
func (s YearSet) Equal(o YearSet) bool { return slices.Equal(s.years, o.years) }

func (s YearSet) String() string {
	parts := make([]string, len(s.years))
	for i, y := range s.years {
		parts[i] = strconv.Itoa(y)
	}
	return "[" + strings.Join(parts, " ") + "]"
}
