// Package cli implements the scrollplot command-line interface.
//
// Commands load a story (TOML) and its dataset, validate one against the
// other, and then export frames, play the story in the terminal, serve a
// browser preview, or draw the step diagram.
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Loggers are
// passed through context.Context.
//
// # Configuration
//
// Tool settings come from flags, SCROLLPLOT_* environment variables and
// ~/.config/scrollplot/config.yml, in that order of precedence.
package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/scrollplot/pkg/buildinfo"
	"github.com/matzehuels/scrollplot/pkg/cache"
	"github.com/matzehuels/scrollplot/pkg/figure"
	"github.com/matzehuels/scrollplot/pkg/observability"
	"github.com/matzehuels/scrollplot/pkg/pipeline"
	"github.com/matzehuels/scrollplot/pkg/story"
)

// appName is the application name used for directories and display.
const appName = "scrollplot"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
	Config Config

	configPath string
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level. At debug level the observability
// hooks log as well.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
	if level <= log.DebugLevel {
		observability.NewLogHooks(c.Logger).Register()
	}
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           appName,
		Short:         "Scrollplot turns a data story into a scroll-driven scatterplot",
		Long:          `Scrollplot plays a scrollytelling story: paragraphs of text drive a scatterplot that reveals one year at a time. Export the frames, play the story in the terminal, or preview it in a browser.`,
		Version:       buildinfo.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(c.configPath)
			if err != nil {
				return err
			}
			c.Config = cfg
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default ~/.config/scrollplot/config.yml)")

	root.AddCommand(storyArgs(c.validateCommand()))
	root.AddCommand(storyArgs(c.renderCommand()))
	root.AddCommand(storyArgs(c.playCommand()))
	root.AddCommand(storyArgs(c.serveCommand()))
	root.AddCommand(storyArgs(c.storyboardCommand()))
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// newRunner creates a pipeline runner backed by the configured cache.
func (c *CLI) newRunner(ctx context.Context, noCache bool) (*pipeline.Runner, error) {
	ch, err := c.openCache(ctx, noCache)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(ch, nil, c.Logger), nil
}

func (c *CLI) openCache(ctx context.Context, noCache bool) (cache.Cache, error) {
	cfg := cache.Config{
		Backend:   cache.Backend(c.Config.CacheBackend),
		Dir:       c.Config.CacheDir,
		RedisAddr: c.Config.RedisAddr,
	}
	if noCache {
		cfg.Backend = cache.BackendNone
	}
	if (cfg.Backend == cache.BackendFile || cfg.Backend == "") && cfg.Dir == "" {
		dir, err := cacheDir()
		if err != nil {
			c.Logger.Warn("no cache directory, caching disabled", "err", err)
			return cache.NewNullCache(), nil
		}
		cfg.Dir = dir
	}
	return cache.Open(ctx, cfg)
}

// loadBundle loads and validates a story with its dataset.
func loadBundle(ctx context.Context, storyPath, dataPath string) (*story.Bundle, error) {
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)
	b, err := story.LoadBundle(storyPath, dataPath)
	if err != nil {
		return nil, err
	}
	logger.Debug("loaded story", "path", storyPath, "steps", b.Story.Len(), "categories", len(b.Store.Categories()))
	prog.done("Loaded " + filepath.Base(storyPath))
	return b, nil
}

// cacheDir returns the cache directory using XDG standard (~/.cache/scrollplot/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// parseFormats parses a comma-separated format list.
func parseFormats(s string) ([]figure.Format, error) {
	if s == "" {
		return []figure.Format{figure.SVG}, nil
	}
	var out []figure.Format
	for _, part := range strings.Split(s, ",") {
		f, err := figure.ParseFormat(strings.TrimSpace(part))
		if err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, nil
}
