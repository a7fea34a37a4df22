package cli

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/scrollplot/internal/tui"
)

// playCommand runs the story in the terminal.
func (c *CLI) playCommand() *cobra.Command {
	var (
		dataPath string
		style    string
	)

	cmd := &cobra.Command{
		Use:   "play <story.toml>",
		Short: "Play the story in the terminal",
		Long: `Play shows the step text on the left and the figure on the right. Scroll
with the arrow keys, the mouse wheel, or jump between steps with n and p.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			b, err := loadBundle(ctx, args[0], dataPath)
			if err != nil {
				return err
			}
			if style == "" {
				style = c.Config.GlamourStyle
			}

			// The player owns the screen; step events are not logged.
			m := tui.New(b, tui.Options{GlamourStyle: style})
			p := tea.NewProgram(m,
				tea.WithContext(ctx),
				tea.WithAltScreen(),
				tea.WithMouseCellMotion(),
			)
			_, err = p.Run()
			return err
		},
	}

	cmd.Flags().StringVar(&dataPath, "data", "", "dataset file (default: the story's data field)")
	cmd.Flags().StringVar(&style, "style", "", "text style: auto, dark, light, notty (default from config)")
	return cmd
}
