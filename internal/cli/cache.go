package cli

import (
	"fmt"
	"net/url"

	"github.com/spf13/cobra"

	"github.com/matzehuels/hypercuboid/pkg/cache"
)

// cacheCommand creates the cache management command.
func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the solution cache",
	}

	cmd.AddCommand(c.cacheClearCommand())
	cmd.AddCommand(c.cachePathCommand())

	return cmd
}

// cacheClearCommand creates the "cache clear" subcommand. It clears the
// configured backend, which may be shared with a running server.
func (c *CLI) cacheClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove all cached solutions",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cc, err := c.newCache(ctx, false)
			if err != nil {
				return err
			}
			defer cc.Close()

			clearer, ok := cc.(cache.Clearer)
			if !ok {
				printWarning("Cache backend %q cannot be cleared", c.Config.Cache.Backend)
				return nil
			}
			n, err := clearer.Clear(ctx)
			if err != nil {
				return err
			}

			switch {
			case n < 0:
				printSuccess("Cleared cache")
			case n == 0:
				printInfo("Cache is empty")
			default:
				printSuccess("Cleared %d cached entries", n)
			}
			printDetail("Backend: %s", c.cacheLocation())
			return nil
		},
	}
}

// cachePathCommand creates the "cache path" subcommand.
func (c *CLI) cachePathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print where cached solutions are stored",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), c.cacheLocation())
			return nil
		},
	}
}

// cacheLocation describes the configured backend: a directory for the file
// cache, a connection target otherwise.
func (c *CLI) cacheLocation() string {
	cfg := c.Config.Cache
	switch cfg.Backend {
	case backendNone:
		return "none"
	case backendRedis:
		target := cfg.Redis.URL
		if u, err := url.Parse(target); err == nil && target != "" {
			target = u.Redacted()
		}
		if target == "" {
			target = cfg.Redis.Addr
		}
		if target == "" {
			target = "localhost:6379"
		}
		return "redis " + target
	case backendMongo:
		db, coll := cfg.Mongo.Database, cfg.Mongo.Collection
		if db == "" {
			db = appName
		}
		if coll == "" {
			coll = "cache"
		}
		return fmt.Sprintf("mongo %s.%s", db, coll)
	}
	if cfg.Dir != "" {
		return cfg.Dir
	}
	dir, err := cacheDir()
	if err != nil {
		return "unavailable"
	}
	return dir
}
