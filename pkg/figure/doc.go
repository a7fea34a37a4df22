// Package figure renders one frame of a scrollplot narrative.
//
// # Frames
//
// A [Frame] is everything needed to draw the figure for a single narrative
// view: the category's series, the shared-domain [scale.Plot], the reveal
// state of every point and of the series line, and the step's decoration
// flags. [Compose] builds a frame from a story, a dataset and a
// [narrative.View], reading sweep progress from a [reveal.Timeline] when one
// is supplied and drawing a settled frame otherwise.
//
// # Output Formats
//
//   - [SVG]: the full figure (title, axes and grid, dashed parity line with
//     its label, axis indicator arrows, series line, ramp-coloured points,
//     year labels, note guides, or the percent graph)
//   - [PNG]: a raster scatter of the visible points and the parity line,
//     drawn with go-chart
//   - [JSON]: the frame's view state and per-point reveal records
//
// Use [Render] to dispatch on a [Format]:
//
//	f, err := figure.Compose(s, store, view, nil, time.Time{}, 600)
//	svg, err := figure.Render(f, figure.SVG)
//
// Rendering is deterministic: identical frames produce identical bytes.
package figure
