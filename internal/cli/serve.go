package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/scrollplot/pkg/server"
)

// serveCommand starts the browser preview.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		dataPath string
		listen   string
		size     float64
		noCache  bool
	)

	cmd := &cobra.Command{
		Use:   "serve <story.toml>",
		Short: "Preview the story in a browser",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			b, err := loadBundle(ctx, args[0], dataPath)
			if err != nil {
				return err
			}
			runner, err := c.newRunner(ctx, noCache)
			if err != nil {
				return err
			}
			defer runner.Close()

			if listen == "" {
				listen = c.Config.Listen
			}
			if size == 0 {
				size = c.Config.Width
			}
			srv := server.New(b, runner,
				server.WithAddr(listen),
				server.WithSize(size),
				server.WithLogger(c.Logger),
			)
			printInfo("Serving %s on %s", b.Story.Title, StyleLink.Render("http://"+srv.Addr()))
			return srv.Run(ctx)
		},
	}

	cmd.Flags().StringVar(&dataPath, "data", "", "dataset file (default: the story's data field)")
	cmd.Flags().StringVarP(&listen, "listen", "l", "", "listen address (default from config)")
	cmd.Flags().Float64Var(&size, "size", 0, "frame size in pixels (default from config)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the frame cache")
	return cmd
}
