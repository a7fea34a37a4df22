package story

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/scrollplot/pkg/dataset"
	"github.com/matzehuels/scrollplot/pkg/errors"
)

// Read decodes a TOML story from r and applies defaults. Unknown keys are
// rejected so typos in flag names do not silently fall back to false.
func Read(r io.Reader) (*Story, error) {
	var s Story
	md, err := toml.NewDecoder(r).Decode(&s)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidStory, err, "decode toml")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, errors.New(errors.ErrCodeInvalidStory, "unknown keys: %s", strings.Join(keys, ", "))
	}
	s.SetDefaults()
	return &s, nil
}

// Load reads the story file at path.
func Load(path string) (*Story, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "story %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidStory, err, "open %s", path)
	}
	defer f.Close()

	s, err := Read(f)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidStory, err, "load %s", path)
	}
	return s, nil
}

// DataPath resolves the story's data reference relative to the story file.
func (s *Story) DataPath(storyPath string) (string, error) {
	if s.Data == "" {
		return "", errors.New(errors.ErrCodeInvalidStory, "story has no data file")
	}
	if err := errors.ValidateRelativeRef(s.Data); err != nil {
		return "", err
	}
	if filepath.IsAbs(s.Data) {
		return s.Data, nil
	}
	return filepath.Join(filepath.Dir(storyPath), s.Data), nil
}

// Bundle is a validated story together with its dataset.
type Bundle struct {
	Story *Story
	Store *dataset.Store
}

// LoadBundle loads a story, the dataset it references (or dataPath when not
// empty), and validates one against the other.
func LoadBundle(storyPath, dataPath string) (*Bundle, error) {
	s, err := Load(storyPath)
	if err != nil {
		return nil, err
	}
	if dataPath == "" {
		if dataPath, err = s.DataPath(storyPath); err != nil {
			return nil, err
		}
	}
	store, err := dataset.Load(dataPath)
	if err != nil {
		return nil, err
	}
	if err := s.Validate(store); err != nil {
		return nil, err
	}
	return &Bundle{Story: s, Store: store}, nil
}
