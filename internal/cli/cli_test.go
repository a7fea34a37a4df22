package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
)

const testStory = `
title = "Women in engineering"
data = "fields.json"
start_year = 1990
end_year = 1992
default_category = "Engineering"

[[steps]]
text = "Engineering starts out male."
category = "Engineering"
max_year = 1990

[[steps]]
text = "Then it shifts."
category = "Engineering"
max_year = 1992
show_line = true
`

const testData = `{
  "start_year": 1990,
  "categories": {"Engineering": [[10, 5], [12, 6], [15, 20]]}
}`

func writeStory(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "story.toml")
	if err := os.WriteFile(path, []byte(testStory), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "fields.json"), []byte(testData), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func run(t *testing.T, args ...string) error {
	t.Helper()
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	c := New(io.Discard, log.InfoLevel)
	root := c.RootCommand()
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)
	root.SetArgs(append([]string{"--config", emptyConfig(t)}, args...))
	return root.ExecuteContext(context.Background())
}

func TestValidateCommand(t *testing.T) {
	if err := run(t, "validate", writeStory(t)); err != nil {
		t.Fatalf("validate: %v", err)
	}
	if err := run(t, "validate", filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Error("validate of a missing file should fail")
	}
}

func TestRenderCommand(t *testing.T) {
	out := t.TempDir()
	if err := run(t, "render", writeStory(t), "-o", out, "-f", "svg,json", "--no-cache"); err != nil {
		t.Fatalf("render: %v", err)
	}
	for _, name := range []string{"step-start.svg", "step-00.svg", "step-01.svg", "step-01.json"} {
		if _, err := os.Stat(filepath.Join(out, name)); err != nil {
			t.Errorf("missing %s: %v", name, err)
		}
	}
}

func TestRenderCommandBadFormat(t *testing.T) {
	if err := run(t, "render", writeStory(t), "-o", t.TempDir(), "-f", "gif"); err == nil {
		t.Error("expected an error for an unknown format")
	}
}

func TestStoryboardDOT(t *testing.T) {
	if err := run(t, "storyboard", writeStory(t), "--dot"); err != nil {
		t.Fatalf("storyboard --dot: %v", err)
	}
}

func TestCacheCommands(t *testing.T) {
	if err := run(t, "cache", "path"); err != nil {
		t.Errorf("cache path: %v", err)
	}
	if err := run(t, "cache", "clear"); err != nil {
		t.Errorf("cache clear: %v", err)
	}
}
