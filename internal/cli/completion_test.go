package cli

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

func runOutput(t *testing.T, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	root := New(io.Discard, log.InfoLevel).RootCommand()
	root.SetOut(&out)
	root.SetErr(io.Discard)
	root.SetArgs(append([]string{"--config", emptyConfig(t)}, args...))
	if err := root.ExecuteContext(context.Background()); err != nil {
		t.Fatalf("%v: %v", args, err)
	}
	return out.String()
}

func TestCompleteStory(t *testing.T) {
	got, dir := completeStory(nil, nil, "")
	if len(got) != 1 || got[0] != "toml" || dir != cobra.ShellCompDirectiveFilterFileExt {
		t.Errorf("first argument = %v, %v", got, dir)
	}
	if got, dir := completeStory(nil, []string{"story.toml"}, ""); got != nil || dir != cobra.ShellCompDirectiveNoFileComp {
		t.Errorf("second argument = %v, %v", got, dir)
	}
}

func TestStoryCompletionWired(t *testing.T) {
	tests := []struct {
		args []string
		want string
	}{
		{[]string{cobra.ShellCompRequestCmd, "render", ""}, "toml"},
		{[]string{cobra.ShellCompRequestCmd, "serve", ""}, "toml"},
		{[]string{cobra.ShellCompRequestCmd, "render", "story.toml", "--data", ""}, "yaml"},
	}
	for _, tt := range tests {
		out := runOutput(t, tt.args...)
		if !strings.Contains(out, tt.want) {
			t.Errorf("%v: completions %q missing %q", tt.args, out, tt.want)
		}
	}
}

func TestCompletionScript(t *testing.T) {
	for _, shell := range []string{"bash", "zsh", "fish", "powershell"} {
		if out := runOutput(t, "completion", shell); !strings.Contains(out, appName) {
			t.Errorf("%s script does not mention %s", shell, appName)
		}
	}
}
