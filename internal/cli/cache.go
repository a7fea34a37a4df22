package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/scrollplot/pkg/cache"
)

// cacheCommand creates the cache management command.
func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the frame cache",
	}

	cmd.AddCommand(c.cacheClearCommand())
	cmd.AddCommand(c.cachePathCommand())

	return cmd
}

// cacheClearCommand creates the "cache clear" subcommand.
func (c *CLI) cacheClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove all cached frames and storyboards",
		RunE: func(cmd *cobra.Command, args []string) error {
			ch, err := c.openCache(cmd.Context(), false)
			if err != nil {
				return err
			}
			defer ch.Close()

			if err := ch.Clear(cmd.Context()); err != nil {
				return fmt.Errorf("clear cache: %w", err)
			}
			printSuccess("Cleared %s cache", c.backendName())
			if fc, ok := ch.(*cache.FileCache); ok {
				printDetail("Directory: %s", fc.Dir())
			}
			return nil
		},
	}
}

// cachePathCommand creates the "cache path" subcommand.
func (c *CLI) cachePathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the cache location",
		RunE: func(cmd *cobra.Command, args []string) error {
			switch cache.Backend(c.Config.CacheBackend) {
			case cache.BackendRedis:
				fmt.Println("redis://" + c.Config.RedisAddr)
				return nil
			case cache.BackendNone:
				printInfo("Caching is disabled")
				return nil
			}
			dir := c.Config.CacheDir
			if dir == "" {
				var err error
				if dir, err = cacheDir(); err != nil {
					return fmt.Errorf("get cache dir: %w", err)
				}
			}
			fmt.Println(dir)
			return nil
		},
	}
}

func (c *CLI) backendName() string {
	if c.Config.CacheBackend == "" {
		return string(cache.BackendFile)
	}
	return c.Config.CacheBackend
}
