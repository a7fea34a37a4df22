package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/scrollplot/pkg/story"
	"github.com/matzehuels/scrollplot/pkg/storyboard"
)

// storyboardCommand draws the step diagram.
func (c *CLI) storyboardCommand() *cobra.Command {
	var (
		output   string
		detailed bool
		dot      bool
		noCache  bool
	)

	cmd := &cobra.Command{
		Use:   "storyboard <story.toml>",
		Short: "Draw the story's steps as a diagram",
		Long: `Storyboard draws one node per step in scroll order. Dashed edges mark a
change of category; the percent-graph step is filled.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			s, err := story.Load(args[0])
			if err != nil {
				return err
			}

			if dot {
				fmt.Print(storyboard.ToDOT(s, storyboard.Options{Detailed: detailed}))
				return nil
			}

			runner, err := c.newRunner(ctx, noCache)
			if err != nil {
				return err
			}
			defer runner.Close()

			prog := newProgress(c.Logger)
			svg, hit, err := runner.Storyboard(ctx, s, detailed)
			if err != nil {
				return err
			}
			if err := os.WriteFile(output, svg, 0o644); err != nil {
				return err
			}
			prog.done("Drew storyboard")
			printFile(output)
			printCached(hit)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "storyboard.svg", "output file")
	cmd.Flags().BoolVar(&detailed, "detailed", false, "show step flags and text excerpts")
	cmd.Flags().BoolVar(&dot, "dot", false, "print the DOT source instead of rendering")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the cache")
	return cmd
}
