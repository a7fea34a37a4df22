// Package scale maps data values onto figure pixels.
//
// # Shared Domain
//
// A scrollplot figure plots count_a on x and count_b on y. Both axes use the
// same domain, [0, U] where U is [UpperLimit] of the category's series, so
// the parity line x == y always renders at 45 degrees whatever the plot's
// aspect ratio:
//
//	p := scale.NewPlot(series, 600, 600, scale.DefaultMargins)
//	px, py := p.Point(series[3])
//
// Y is inverted: larger values sit higher, at smaller pixel offsets.
//
// # Resizing
//
// A [Plot] is immutable. A new figure size means a new Plot; nothing else
// changes the mapping.
package scale
