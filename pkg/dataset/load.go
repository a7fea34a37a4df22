package dataset

import (
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/matzehuels/scrollplot/pkg/errors"
)

// Format names a dataset encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatFromPath picks the format from a file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", errors.New(errors.ErrCodeInvalidFormat, "unsupported dataset extension %q (want .json, .yaml or .yml)", filepath.Ext(path))
	}
}

// Read decodes a store from r. Read does not close r.
func Read(r io.Reader, format Format) (*Store, error) {
	var f file
	switch format {
	case FormatJSON:
		dec := json.NewDecoder(r)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&f); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidDataset, err, "decode json")
		}
	case FormatYAML:
		dec := yaml.NewDecoder(r)
		dec.KnownFields(true)
		if err := dec.Decode(&f); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidDataset, err, "decode yaml")
		}
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unknown dataset format %q", format)
	}
	return New(f.StartYear, f.Categories)
}

// Load reads the dataset file at path, choosing the format by extension.
func Load(path string) (*Store, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "dataset %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidDataset, err, "open %s", path)
	}
	defer f.Close()

	s, err := Read(f, format)
	if err != nil {
		return nil, errors.Wrap(errors.GetCode(err), err, "load %s", path)
	}
	return s, nil
}
