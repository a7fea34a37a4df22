package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// validateCommand checks a story against its dataset.
func (c *CLI) validateCommand() *cobra.Command {
	var dataPath string

	cmd := &cobra.Command{
		Use:   "validate <story.toml>",
		Short: "Check a story and its dataset",
		Long: `Validate loads the story and the dataset it references, and checks
every step: known category, max year inside the dataset, guide years in range.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := loadBundle(cmd.Context(), args[0], dataPath)
			if err != nil {
				return err
			}

			s := b.Story
			printSuccess("%s is valid", args[0])
			printKeyValue("Title", StyleTitle.Render(s.Title))
			printKeyValue("Steps", fmt.Sprint(s.Len()))
			printKeyValue("Years", fmt.Sprintf("%d–%d", b.Store.StartYear(), b.Store.EndYear()))
			printKeyValue("Categories", strings.Join(b.Store.Categories(), ", "))
			printKeyValue("Default", s.DefaultCategory)
			printNewline()
			printNextStep("Play it", appName+" play "+args[0])
			return nil
		},
	}

	cmd.Flags().StringVar(&dataPath, "data", "", "dataset file (default: the story's data field)")
	return cmd
}
