package dataset

import (
	"encoding/json"
	"fmt"
	"maps"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/matzehuels/scrollplot/pkg/errors"
)

// Point is one year's pair of counts.
type Point struct {
	A float64 // x axis value
	B float64 // y axis value
}

// UnmarshalJSON decodes a point written as a two-element array.
func (p *Point) UnmarshalJSON(data []byte) error {
	var pair []float64
	if err := json.Unmarshal(data, &pair); err != nil {
		return err
	}
	return p.fromPair(pair)
}

// MarshalJSON encodes the point as a two-element array.
func (p Point) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]float64{p.A, p.B})
}

// UnmarshalYAML decodes a point written as a two-element sequence.
func (p *Point) UnmarshalYAML(node *yaml.Node) error {
	var pair []float64
	if err := node.Decode(&pair); err != nil {
		return err
	}
	return p.fromPair(pair)
}

func (p *Point) fromPair(pair []float64) error {
	if len(pair) != 2 {
		return fmt.Errorf("point must have exactly 2 values, got %d", len(pair))
	}
	if pair[0] < 0 || pair[1] < 0 {
		return fmt.Errorf("point values must be non-negative, got [%g, %g]", pair[0], pair[1])
	}
	p.A, p.B = pair[0], pair[1]
	return nil
}

// Series is a category's points in year order.
type Series []Point

// Max returns the largest A or B value in the series, or 0 when empty.
func (s Series) Max() float64 {
	var m float64
	for _, p := range s {
		m = max(m, p.A, p.B)
	}
	return m
}

// Store maps category names to series that share one year span.
type Store struct {
	startYear  int
	length     int
	categories map[string]Series
}

// New builds a store. Every series must be non-empty and have the same
// length; the span is startYear..startYear+len-1.
func New(startYear int, categories map[string]Series) (*Store, error) {
	if len(categories) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidDataset, "dataset has no categories")
	}

	length := -1
	for _, name := range slices.Sorted(maps.Keys(categories)) {
		if err := errors.ValidateCategoryName(name); err != nil {
			return nil, err
		}
		n := len(categories[name])
		if n == 0 {
			return nil, errors.New(errors.ErrCodeInvalidDataset, "category %q has no points", name)
		}
		if length >= 0 && n != length {
			return nil, errors.New(errors.ErrCodeInvalidDataset,
				"category %q has %d points, expected %d (one per year)", name, n, length)
		}
		length = n
	}
	if err := errors.ValidateYearSpan(startYear, startYear+length-1); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidDataset, err, "invalid start year")
	}

	return &Store{
		startYear:  startYear,
		length:     length,
		categories: maps.Clone(categories),
	}, nil
}

// StartYear is the year of each series' first point.
func (s *Store) StartYear() int { return s.startYear }

// EndYear is the year of each series' last point.
func (s *Store) EndYear() int { return s.startYear + s.length - 1 }

// Len is the number of points (years) in every series.
func (s *Store) Len() int { return s.length }

// Year returns the year of the point at index i.
func (s *Store) Year(i int) int { return s.startYear + i }

// Has reports whether the store holds the category.
func (s *Store) Has(name string) bool {
	_, ok := s.categories[name]
	return ok
}

// Lookup returns the series for a category.
func (s *Store) Lookup(name string) (Series, error) {
	series, ok := s.categories[name]
	if !ok {
		return nil, errors.New(errors.ErrCodeCategoryNotFound, "unknown category %q", name)
	}
	return series, nil
}

// Categories returns the category names in sorted order.
func (s *Store) Categories() []string {
	return slices.Sorted(maps.Keys(s.categories))
}

// file is the on-disk shape shared by the JSON and YAML formats.
type file struct {
	StartYear  int               `json:"start_year" yaml:"start_year"`
	Categories map[string]Series `json:"categories" yaml:"categories"`
}

// MarshalJSON encodes the store in its file format.
func (s *Store) MarshalJSON() ([]byte, error) {
	return json.Marshal(file{StartYear: s.startYear, Categories: s.categories})
}
