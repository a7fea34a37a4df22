// Package pkg provides the libraries behind scrollplot, a scroll-driven
// scatterplot for data stories.
//
// # Overview
//
// A story is a list of text steps. Scrolling a step past the trigger line
// changes which category the figure shows and how many years it reveals.
// The figure is a scatterplot of two counts per year (women across, men up)
// that reveals points one at a time, optionally joined by a line or paired
// with a percent graph.
//
// # Architecture
//
// Data flows through the packages like this:
//
//	story.toml + fields.json
//	         ↓
//	    [story] + [dataset] (load and validate)
//	         ↓
//	    [scroll] (step extents, trigger crossings)
//	         ↓
//	    [narrative] (reducer: category, max year, flags)
//	         ↓
//	    [reveal] (per-point sweep timelines)
//	         ↓
//	    [figure] (compose a frame, render SVG/PNG/JSON)
//
// [pipeline] replays a story offline to produce one frame per step, backed
// by [cache]. [server] serves the same frames to a browser, and [storyboard]
// draws the step sequence as a graph.
//
// # Quick Start
//
//	b, err := story.LoadBundle("story.toml", "")
//	if err != nil {
//	    return err
//	}
//	runner := pipeline.NewRunner(nil, nil, nil)
//	res, err := runner.RenderFrames(ctx, b, pipeline.Options{
//	    Formats: []figure.Format{figure.SVG},
//	})
//
// # Errors
//
// Every package reports failures through [errors]. The server maps its codes
// to HTTP statuses.
//
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/scrollplot/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/scrollplot/pkg/cache
// [server]: https://pkg.go.dev/github.com/matzehuels/scrollplot/pkg/server
// [storyboard]: https://pkg.go.dev/github.com/matzehuels/scrollplot/pkg/storyboard
// [errors]: https://pkg.go.dev/github.com/matzehuels/scrollplot/pkg/errors
//
// [story]: https://pkg.go.dev/github.com/matzehuels/scrollplot/pkg/story
// [dataset]: https://pkg.go.dev/github.com/matzehuels/scrollplot/pkg/dataset
// [scroll]: https://pkg.go.dev/github.com/matzehuels/scrollplot/pkg/scroll
// [narrative]: https://pkg.go.dev/github.com/matzehuels/scrollplot/pkg/narrative
// [reveal]: https://pkg.go.dev/github.com/matzehuels/scrollplot/pkg/reveal
// [figure]: https://pkg.go.dev/github.com/matzehuels/scrollplot/pkg/figure
package pkg
