// Package pipeline turns a story and its dataset into rendered frames.
//
// A frame is the figure as a reader sees it after scrolling onto a step. The
// pipeline replays the narrative from the top (the reader scrolling down
// through every step in order), so each frame carries the history that the
// earlier steps left behind: marked years, the previous high-water mark, and
// which sweeps have already run.
//
// # Usage
//
//	runner := pipeline.NewRunner(c, nil, logger)
//	res, err := runner.RenderFrames(ctx, bundle, pipeline.Options{
//	    Formats: []figure.Format{figure.SVG, figure.PNG},
//	})
//	for _, fr := range res.Frames {
//	    os.WriteFile(fr.Name()+".svg", fr.Artifacts[figure.SVG], 0o644)
//	}
//
// Frames are cached by story, data, step, format, size and sweep time, so
// re-exporting an unchanged story is a sequence of cache reads.
package pipeline

import (
	"fmt"
	"time"

	"github.com/matzehuels/scrollplot/pkg/errors"
	"github.com/matzehuels/scrollplot/pkg/figure"
	"github.com/matzehuels/scrollplot/pkg/narrative"
)

const (
	// DefaultSize is the default frame edge length in pixels. Frames are square.
	DefaultSize = 600.0

	// MinSize is the smallest frame that still leaves a drawable plot area.
	MinSize = 120.0

	// TTLFrame is how long rendered frames stay cached.
	TTLFrame = 7 * 24 * time.Hour

	// TTLStoryboard is how long rendered storyboards stay cached.
	TTLStoryboard = 7 * 24 * time.Hour
)

// SentinelStep is the step number of the frame shown before the first step.
const SentinelStep = narrative.None

// Options configures a pipeline run.
type Options struct {
	// Formats to render. Defaults to SVG only.
	Formats []figure.Format `json:"formats,omitempty"`
	// Size is the frame edge length in pixels.
	Size float64 `json:"size,omitempty"`
	// At is the time since the step was entered. Zero renders every sweep
	// completed.
	At time.Duration `json:"at,omitempty"`
	// Refresh skips cache reads. Results are still written.
	Refresh bool `json:"refresh,omitempty"`
	// Detailed adds flags and text excerpts to storyboard nodes.
	Detailed bool `json:"detailed,omitempty"`
}

// ValidateAndSetDefaults fills defaults and rejects unusable values.
func (o *Options) ValidateAndSetDefaults() error {
	if len(o.Formats) == 0 {
		o.Formats = []figure.Format{figure.SVG}
	}
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if o.Size == 0 {
		o.Size = DefaultSize
	}
	if o.Size < MinSize {
		return errors.New(errors.ErrCodeInvalidInput, "size %.0f is below the minimum of %.0f", o.Size, MinSize)
	}
	if o.At < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "negative sweep time %s", o.At)
	}
	return nil
}

// ValidateFormats reports the first unsupported format.
func ValidateFormats(formats []figure.Format) error {
	for _, f := range formats {
		if _, err := figure.ParseFormat(string(f)); err != nil {
			return err
		}
	}
	return nil
}

// Frame is one rendered step.
type Frame struct {
	// Step is the step index, or SentinelStep for the frame before the first step.
	Step     int
	Category string
	MaxYear  int
	// Artifacts holds the encoded frame per requested format.
	Artifacts map[figure.Format][]byte
	// Hit is true when every format came from the cache.
	Hit bool
}

// Name is a file-name friendly identifier that sorts in scroll order.
func (f Frame) Name() string {
	if f.Step == SentinelStep {
		return "step-start"
	}
	return fmt.Sprintf("step-%02d", f.Step)
}

// Result is the output of RenderFrames.
type Result struct {
	Frames []Frame
	Stats  Stats
}

// Stats counts the work done by a run.
type Stats struct {
	Frames   int
	Rendered int
	Hits     int
	Duration time.Duration
}
