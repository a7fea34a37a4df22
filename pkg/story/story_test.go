package story

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/matzehuels/scrollplot/pkg/dataset"
	"github.com/matzehuels/scrollplot/pkg/errors"
)

const sampleStory = `
title = "Women in engineering"
data = "fields.json"
start_year = 1990
end_year = 1992
default_category = "Engineering"
queue_delay = "100ms"

[[steps]]
text = "Engineering starts out male."
category = "Engineering"
max_year = 1990

[[steps]]
text = "Then it shifts."
note = "Counts are degrees awarded."
category = "Engineering"
max_year = 1992
show_line = true

  [[steps.guides]]
  kind = "note"
  label = "big jump"
  year = 1992
`

const sampleData = `{
  "start_year": 1990,
  "categories": {"Engineering": [[10, 5], [12, 6], [15, 20]]}
}`

func mustStore(t *testing.T) *dataset.Store {
	t.Helper()
	s, err := dataset.Read(strings.NewReader(sampleData), dataset.FormatJSON)
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func TestRead(t *testing.T) {
	s, err := Read(strings.NewReader(sampleStory))
	if err != nil {
		t.Fatalf("Read: %v", err)
	}

	if s.Len() != 2 {
		t.Fatalf("Len = %d, want 2", s.Len())
	}
	if s.QueueDelay != 100*time.Millisecond {
		t.Errorf("QueueDelay = %v, want 100ms", s.QueueDelay)
	}
	if s.SweepDuration != DefaultSweepDuration {
		t.Errorf("SweepDuration = %v, want default", s.SweepDuration)
	}
	if s.TriggerOffset != DefaultTriggerOffset {
		t.Errorf("TriggerOffset = %v, want default", s.TriggerOffset)
	}
	if s.Subtitle != "Women and men in engineering" {
		t.Errorf("Subtitle = %q", s.Subtitle)
	}

	second := s.Steps[1]
	if !second.ShowLine || second.ShowAxesIndicators {
		t.Errorf("flags = %+v", second)
	}
	if len(second.Guides) != 1 || second.Guides[0].Year != 1992 {
		t.Errorf("Guides = %+v", second.Guides)
	}
	if err := s.Validate(mustStore(t)); err != nil {
		t.Errorf("Validate: %v", err)
	}
}

func TestReadRejectsUnknownKeys(t *testing.T) {
	src := sampleStory + "\n[[steps]]\ntext = \"x\"\ncategory = \"Engineering\"\nshow_axis_indicators = true\n"
	_, err := Read(strings.NewReader(src))
	if !errors.Is(err, errors.ErrCodeInvalidStory) {
		t.Fatalf("Read error = %v, want INVALID_STORY", err)
	}
	if !strings.Contains(err.Error(), "show_axis_indicators") {
		t.Errorf("error should name the unknown key: %v", err)
	}
}

func TestSentinel(t *testing.T) {
	s, _ := Read(strings.NewReader(sampleStory))
	sent := s.Sentinel()
	if sent.MaxYear != 1989 {
		t.Errorf("sentinel MaxYear = %d, want 1989", sent.MaxYear)
	}
	if sent.Category != "Engineering" {
		t.Errorf("sentinel Category = %q", sent.Category)
	}
	if sent.ShowAxesIndicators || sent.ShowLine || sent.ShowPercentGraph {
		t.Errorf("sentinel flags should be false: %+v", sent)
	}
}

func TestValidateFindsEveryProblem(t *testing.T) {
	s, _ := Read(strings.NewReader(sampleStory))
	s.Steps = append(s.Steps,
		Step{Text: "Physics?", Category: "Physics", MaxYear: 1991},
		Step{Text: "Too late", Category: "Engineering", MaxYear: 2001},
		Step{Text: "Then it shifts.", Category: "Engineering", MaxYear: 1991},
	)

	err := s.Validate(mustStore(t))
	if err == nil {
		t.Fatal("Validate succeeded, want errors")
	}
	msg := err.Error()
	for _, want := range []string{
		`step 2: category "Physics" is not in the dataset`,
		"step 3: max_year 2001 outside 1989..1992",
		"step 4 repeats the text of step 1",
	} {
		if !strings.Contains(msg, want) {
			t.Errorf("missing problem %q in:\n%s", want, msg)
		}
	}
}

func TestValidateSpanMismatch(t *testing.T) {
	s, _ := Read(strings.NewReader(sampleStory))
	s.EndYear = 1995
	s.Steps = s.Steps[:1]
	err := s.Validate(mustStore(t))
	if err == nil || !strings.Contains(err.Error(), "dataset spans 1990..1992") {
		t.Errorf("Validate = %v, want span mismatch", err)
	}
}

func TestValidateMaxYearBounds(t *testing.T) {
	s, _ := Read(strings.NewReader(sampleStory))
	s.Steps = []Step{
		{Text: "before", Category: "Engineering", MaxYear: 1989},
		{Text: "end", Category: "Engineering", MaxYear: 1992},
	}
	if err := s.Validate(mustStore(t)); err != nil {
		t.Errorf("START_YEAR-1 and END_YEAR are both valid max years: %v", err)
	}
}

func TestLoadBundle(t *testing.T) {
	dir := t.TempDir()
	storyPath := filepath.Join(dir, "story.toml")
	if err := os.WriteFile(storyPath, []byte(sampleStory), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "fields.json"), []byte(sampleData), 0o644); err != nil {
		t.Fatal(err)
	}

	b, err := LoadBundle(storyPath, "")
	if err != nil {
		t.Fatalf("LoadBundle: %v", err)
	}
	if b.Store.EndYear() != 1992 || b.Story.Title != "Women in engineering" {
		t.Errorf("unexpected bundle: %+v", b.Story)
	}

	if _, err := LoadBundle(filepath.Join(dir, "nope.toml"), ""); !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("missing story error = %v, want FILE_NOT_FOUND", err)
	}
}

func TestDataPathRejectsEscape(t *testing.T) {
	s := &Story{Data: "../secret.json"}
	if _, err := s.DataPath("/stories/a/story.toml"); !errors.Is(err, errors.ErrCodeInvalidPath) {
		t.Errorf("DataPath error = %v, want INVALID_PATH", err)
	}
}

func TestSubtitleFor(t *testing.T) {
	tests := map[string]string{
		"ALL":         "in all fields",
		"TOTALS":      "in science and engineering",
		"":            "in science and engineering",
		"Engineering": "in engineering",
	}
	for in, want := range tests {
		if got := SubtitleFor(in); got != want {
			t.Errorf("SubtitleFor(%q) = %q, want %q", in, got, want)
		}
	}
}
