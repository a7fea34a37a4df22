package figure

import (
	"strings"

	"github.com/matzehuels/scrollplot/pkg/errors"
)

// Format is a frame output format.
type Format string

const (
	SVG  Format = "svg"
	PNG  Format = "png"
	JSON Format = "json"
)

// Formats lists the supported formats.
var Formats = []Format{SVG, PNG, JSON}

// ParseFormat parses a format name, case-insensitively.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	switch f {
	case SVG, PNG, JSON:
		return f, nil
	}
	return "", errors.New(errors.ErrCodeInvalidFormat, "unknown frame format %q (want svg, png or json)", s)
}

// ContentType is the MIME type of the format.
func (f Format) ContentType() string {
	switch f {
	case PNG:
		return "image/png"
	case JSON:
		return "application/json"
	default:
		return "image/svg+xml"
	}
}

// Ext is the file extension, with the dot.
func (f Format) Ext() string { return "." + string(f) }

// Render encodes a frame in the given format.
func Render(fr *Frame, format Format, opts ...SVGOption) ([]byte, error) {
	switch format {
	case SVG:
		return RenderSVG(fr, opts...), nil
	case PNG:
		return RenderPNG(fr)
	case JSON:
		return RenderJSON(fr)
	}
	return nil, errors.New(errors.ErrCodeInvalidFormat, "unknown frame format %q", format)
}
