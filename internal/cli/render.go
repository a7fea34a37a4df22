package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/scrollplot/pkg/pipeline"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output  string        // output directory
	data    string        // dataset override
	formats string        // comma-separated: svg, png, json
	size    float64       // frame edge length in pixels
	at      time.Duration // time since the step was entered; 0 = settled
	noCache bool
	refresh bool
}

// renderCommand exports one frame per step.
func (c *CLI) renderCommand() *cobra.Command {
	opts := renderOpts{}

	cmd := &cobra.Command{
		Use:   "render <story.toml>",
		Short: "Export the figure at every step",
		Long: `Render replays the story as a reader scrolling from the top and writes the
figure as it looks on each step, plus the frame shown before the first step.

Files are named step-start, step-00, step-01, ... with one file per format.`,
		Example: `  scrollplot render story.toml -o frames
  scrollplot render story.toml -f svg,png --size 800
  scrollplot render story.toml -f json --at 300ms`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			formats, err := parseFormats(opts.formats)
			if err != nil {
				return err
			}
			size := opts.size
			if size == 0 {
				size = c.Config.Width
			}

			b, err := loadBundle(ctx, args[0], opts.data)
			if err != nil {
				return err
			}
			runner, err := c.newRunner(ctx, opts.noCache)
			if err != nil {
				return err
			}
			defer runner.Close()

			spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Rendering %d steps...", b.Story.Len()+1))
			spinner.Start()
			res, err := runner.RenderFrames(ctx, b, pipeline.Options{
				Formats: formats,
				Size:    size,
				At:      opts.at,
				Refresh: opts.refresh,
			})
			if err != nil {
				spinner.StopWithError("Render failed")
				return err
			}
			spinner.Stop()

			if err := os.MkdirAll(opts.output, 0o755); err != nil {
				return err
			}
			for _, fr := range res.Frames {
				for _, f := range formats {
					path := filepath.Join(opts.output, fr.Name()+f.Ext())
					if err := os.WriteFile(path, fr.Artifacts[f], 0o644); err != nil {
						return fmt.Errorf("write %s: %w", path, err)
					}
					printFile(path)
				}
			}
			printStats(res.Stats)
			return nil
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "frames", "output directory")
	cmd.Flags().StringVar(&opts.data, "data", "", "dataset file (default: the story's data field)")
	cmd.Flags().StringVarP(&opts.formats, "format", "f", "svg", "output formats (svg,png,json)")
	cmd.Flags().Float64Var(&opts.size, "size", 0, "frame size in pixels (default from config)")
	cmd.Flags().DurationVar(&opts.at, "at", 0, "render sweeps this long after entering each step")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the frame cache")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "re-render even when cached")
	return cmd
}
