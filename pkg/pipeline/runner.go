package pipeline

import (
	"context"
	"encoding/json"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/scrollplot/pkg/cache"
	"github.com/matzehuels/scrollplot/pkg/errors"
	"github.com/matzehuels/scrollplot/pkg/figure"
	"github.com/matzehuels/scrollplot/pkg/narrative"
	"github.com/matzehuels/scrollplot/pkg/observability"
	"github.com/matzehuels/scrollplot/pkg/reveal"
	"github.com/matzehuels/scrollplot/pkg/story"
	"github.com/matzehuels/scrollplot/pkg/storyboard"
)

// Runner renders frames with caching. It holds no per-run state, so one
// Runner can serve concurrent requests.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// RenderFrames replays the story top to bottom and renders the sentinel frame
// followed by one frame per step.
func (r *Runner) RenderFrames(ctx context.Context, b *story.Bundle, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	start := time.Now()
	hooks := observability.Pipeline()
	hooks.OnFramesStart(ctx, b.Story.Len(), formatNames(opts.Formats))

	res := &Result{}
	err := r.replay(ctx, b, b.Story.Len()-1, opts, func(fr Frame) {
		res.Frames = append(res.Frames, fr)
	})
	res.Stats = tally(res.Frames, time.Since(start))
	hooks.OnFramesComplete(ctx, len(res.Frames), res.Stats.Duration, err)
	if err != nil {
		return nil, err
	}

	r.Logger.Info("rendered frames",
		"frames", res.Stats.Frames,
		"rendered", res.Stats.Rendered,
		"cached", res.Stats.Hits,
		"duration", res.Stats.Duration)
	return res, nil
}

// RenderFrame renders the frame for a single step. Steps before it are
// replayed so the frame shows the same history as in RenderFrames.
func (r *Runner) RenderFrame(ctx context.Context, b *story.Bundle, step int, opts Options) (Frame, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return Frame{}, err
	}
	if step < SentinelStep || step >= b.Story.Len() {
		return Frame{}, errors.New(errors.ErrCodeStepOutOfRange,
			"step %d out of range [%d, %d)", step, SentinelStep, b.Story.Len())
	}

	var out Frame
	err := r.replay(ctx, b, step, opts, func(fr Frame) {
		if fr.Step == step {
			out = fr
		}
	})
	return out, err
}

// Storyboard renders the story's step diagram to SVG.
func (r *Runner) Storyboard(ctx context.Context, s *story.Story, detailed bool) ([]byte, bool, error) {
	storyHash, err := hashJSON(s)
	if err != nil {
		return nil, false, err
	}
	key := r.Keyer.StoryboardKey(storyHash, detailed)
	if data, ok := r.lookup(ctx, key, "storyboard"); ok {
		return data, true, nil
	}

	data, err := storyboard.RenderSVG(ctx, storyboard.ToDOT(s, storyboard.Options{Detailed: detailed}))
	if err != nil {
		return nil, false, err
	}
	r.store(ctx, key, "storyboard", data, TTLStoryboard)
	return data, false, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// replay drives a reducer and timeline from the freshly mounted state down
// to step last, handing each frame to emit. The clock is synthetic: every
// step starts an hour after the previous one, well past any sweep.
func (r *Runner) replay(ctx context.Context, b *story.Bundle, last int, opts Options, emit func(Frame)) error {
	storyHash, err := hashJSON(b.Story)
	if err != nil {
		return err
	}
	dataHash, err := hashJSON(b.Store)
	if err != nil {
		return err
	}

	reducer := narrative.NewReducer(b.Story)
	tl := reveal.NewTimeline(b.Store, b.Story, reveal.WithMeasure(figure.Measure(b.Store, opts.Size)))
	now := time.Unix(0, 0).UTC()

	view := reducer.View()
	for step := SentinelStep; step <= last; step++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		if step != SentinelStep {
			tl.Settle()
			now = now.Add(time.Hour)
			view = reducer.Apply(narrative.EnterStep(step, narrative.Down))
		}
		if _, err := tl.Apply(view, now); err != nil {
			return err
		}

		at := now
		if opts.At > 0 {
			at = now.Add(opts.At)
			tl.Advance(at)
		} else {
			tl.Settle()
		}

		fr, err := r.frame(ctx, b, view, tl, at, step, opts, storyHash, dataHash)
		if err != nil {
			return err
		}
		emit(fr)
	}
	return nil
}

func (r *Runner) frame(ctx context.Context, b *story.Bundle, view narrative.View, tl *reveal.Timeline,
	at time.Time, step int, opts Options, storyHash, dataHash string) (Frame, error) {
	fr := Frame{
		Step:      step,
		Category:  view.Step.Category,
		MaxYear:   view.MaxYear,
		Artifacts: make(map[figure.Format][]byte, len(opts.Formats)),
		Hit:       true,
	}

	var composed *figure.Frame
	for _, format := range opts.Formats {
		key := r.Keyer.FrameKey(cache.FrameKeyOpts{
			StoryHash: storyHash,
			DataHash:  dataHash,
			Step:      step,
			Format:    string(format),
			Size:      opts.Size,
			At:        opts.At.Milliseconds(),
		})
		if !opts.Refresh {
			if data, ok := r.lookup(ctx, key, "frame"); ok {
				fr.Artifacts[format] = data
				continue
			}
		}
		fr.Hit = false

		if composed == nil {
			var err error
			if composed, err = figure.Compose(b.Story, b.Store, view, tl, at, opts.Size); err != nil {
				return Frame{}, err
			}
		}
		renderStart := time.Now()
		data, err := figure.Render(composed, format)
		if err != nil {
			return Frame{}, errors.Wrap(errors.ErrCodeInternal, err, "render step %d as %s", step, format)
		}
		observability.Pipeline().OnFrameRendered(ctx, step, string(format), len(data), time.Since(renderStart))
		r.store(ctx, key, "frame", data, TTLFrame)
		fr.Artifacts[format] = data
	}

	r.Logger.Debug("frame", "step", step, "category", fr.Category, "max_year", fr.MaxYear, "cached", fr.Hit)
	return fr, nil
}

func (r *Runner) lookup(ctx context.Context, key, keyType string) ([]byte, bool) {
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil {
		r.Logger.Warn("cache read failed", "type", keyType, "err", err)
		hit = false
	}
	if hit {
		observability.Cache().OnCacheHit(ctx, keyType)
		return data, true
	}
	observability.Cache().OnCacheMiss(ctx, keyType)
	return nil, false
}

func (r *Runner) store(ctx context.Context, key, keyType string, data []byte, ttl time.Duration) {
	if err := r.Cache.Set(ctx, key, data, ttl); err != nil {
		r.Logger.Warn("cache write failed", "type", keyType, "err", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, keyType, len(data))
}

func hashJSON(v any) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInternal, err, "hash input")
	}
	return cache.Hash(data), nil
}

func formatNames(formats []figure.Format) []string {
	out := make([]string, len(formats))
	for i, f := range formats {
		out[i] = string(f)
	}
	return out
}

func tally(frames []Frame, d time.Duration) Stats {
	st := Stats{Frames: len(frames), Duration: d}
	for _, f := range frames {
		if f.Hit {
			st.Hits++
		} else {
			st.Rendered++
		}
	}
	return st
}
