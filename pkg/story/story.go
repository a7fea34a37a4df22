// Package story defines the narrative that drives a scrollplot figure.
//
// A [Story] is an ordered list of [Step] definitions plus the constants that
// shape the figure: the year span, the category shown before the first step,
// the scroll trigger offset and the reveal animation timings. Stories are
// authored as TOML:
//
//	title = "Women in science"
//	data = "fields.json"
//	start_year = 1990
//	end_year = 2016
//	default_category = "Engineering"
//
//	[[steps]]
//	text = "In **1990** engineering was overwhelmingly male."
//	category = "Engineering"
//	max_year = 1990
//
// Steps are immutable once loaded.
package story

import (
	"strings"
	"time"
)

// Defaults for the optional story constants.
const (
	DefaultTriggerOffset = 0.45
	DefaultQueueDelay    = 150 * time.Millisecond
	DefaultSweepDuration = 2 * time.Second
	DefaultAxisLabelX    = "Number of women"
	DefaultAxisLabelY    = "Number of men"
)

// Guide is a decoration attached to a step. Renderers draw the kinds they
// know and skip the rest.
type Guide struct {
	Kind  string `toml:"kind" json:"kind"`
	Label string `toml:"label" json:"label"`
	Year  int    `toml:"year" json:"year"`
}

// GuideNote is a text callout placed next to the point for Guide.Year.
const GuideNote = "note"

// Step is one scroll-triggered unit of the narrative.
type Step struct {
	Text               string  `toml:"text" json:"text"`
	Note               string  `toml:"note" json:"note,omitempty"`
	Category           string  `toml:"category" json:"category"`
	MaxYear            int     `toml:"max_year" json:"max_year"`
	ShowAxesIndicators bool    `toml:"show_axes_indicators" json:"show_axes_indicators"`
	Guides             []Guide `toml:"guides" json:"guides,omitempty"`
	ShowLine           bool    `toml:"show_line" json:"show_line"`
	ShowPercentGraph   bool    `toml:"show_percent_graph" json:"show_percent_graph"`
}

// Story is a complete narrative.
type Story struct {
	Title           string        `toml:"title" json:"title"`
	Subtitle        string        `toml:"subtitle" json:"subtitle,omitempty"`
	Data            string        `toml:"data" json:"data,omitempty"`
	StartYear       int           `toml:"start_year" json:"start_year"`
	EndYear         int           `toml:"end_year" json:"end_year"`
	DefaultCategory string        `toml:"default_category" json:"default_category"`
	TriggerOffset   float64       `toml:"trigger_offset" json:"trigger_offset"`
	QueueDelay      time.Duration `toml:"queue_delay" json:"queue_delay"`
	SweepDuration   time.Duration `toml:"sweep_duration" json:"sweep_duration"`
	AxisLabelX      string        `toml:"axis_label_x" json:"axis_label_x"`
	AxisLabelY      string        `toml:"axis_label_y" json:"axis_label_y"`
	Steps           []Step        `toml:"steps" json:"steps"`
}

// SetDefaults fills unset optional constants.
func (s *Story) SetDefaults() {
	if s.TriggerOffset == 0 {
		s.TriggerOffset = DefaultTriggerOffset
	}
	if s.QueueDelay == 0 {
		s.QueueDelay = DefaultQueueDelay
	}
	if s.SweepDuration == 0 {
		s.SweepDuration = DefaultSweepDuration
	}
	if s.AxisLabelX == "" {
		s.AxisLabelX = DefaultAxisLabelX
	}
	if s.AxisLabelY == "" {
		s.AxisLabelY = DefaultAxisLabelY
	}
	if s.Subtitle == "" {
		s.Subtitle = "Women and men " + SubtitleFor(s.DefaultCategory)
	}
}

// Sentinel is the step in effect before the reader reaches the first step:
// no points revealed and the default category.
func (s *Story) Sentinel() Step {
	return Step{
		MaxYear:  s.StartYear - 1,
		Category: s.DefaultCategory,
	}
}

// Len is the number of steps.
func (s *Story) Len() int { return len(s.Steps) }

// SubtitleFor phrases a category for a subtitle, e.g. "in engineering".
// The pseudo-categories ALL and TOTALS read as "in all fields" and
// "in science and engineering".
func SubtitleFor(category string) string {
	switch category {
	case "ALL":
		return "in all fields"
	case "TOTALS", "":
		return "in science and engineering"
	default:
		return "in " + strings.ToLower(category)
	}
}
