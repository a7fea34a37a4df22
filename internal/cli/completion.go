package cli

import (
	"github.com/spf13/cobra"
)

// completionCommand prints a shell completion script. Story arguments complete
// to .toml files and --data to dataset files.
func (c *CLI) completionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Print a completion script for your shell. Story arguments complete to .toml
files and --data to .json/.yaml files.

  $ source <(scrollplot completion bash)
  $ scrollplot completion zsh > "${fpath[1]}/_scrollplot"
  $ scrollplot completion fish > ~/.config/fish/completions/scrollplot.fish
  PS> scrollplot completion powershell | Out-String | Invoke-Expression`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletionV2(out, true)
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			case "fish":
				return cmd.Root().GenFishCompletion(out, true)
			default:
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			}
		},
	}
}

// completeStory completes the single story argument to .toml files.
func completeStory(_ *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	return []string{"toml"}, cobra.ShellCompDirectiveFilterFileExt
}

// completeDataset completes --data to the extensions dataset.Load accepts.
func completeDataset(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	return []string{"json", "yaml", "yml"}, cobra.ShellCompDirectiveFilterFileExt
}

// storyArgs wires story and dataset completion into cmd. Commands without a
// --data flag get story completion only.
func storyArgs(cmd *cobra.Command) *cobra.Command {
	cmd.ValidArgsFunction = completeStory
	if cmd.Flags().Lookup("data") != nil {
		_ = cmd.RegisterFlagCompletionFunc("data", completeDataset)
	}
	return cmd
}
