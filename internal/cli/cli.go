// Package cli implements the hypercuboid command-line interface.
//
// # Commands
//
//   - integrate: integrate a problem file along one axis
//   - split: split intervals and boxes (inspection tools)
//   - convert: convert problem files between JSON and TOML
//   - serve: run the HTTP API
//   - cache: inspect and clear the result cache
//   - completion: generate shell completion scripts
//
// # Configuration
//
// Settings are read from $XDG_CONFIG_HOME/hypercuboid/config.toml, or from
// the file given with --config. Flags override the config file.
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. The logger is
// attached to the command context and reaches the pipeline through it.
package cli

import (
	"context"
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/hypercuboid/pkg/buildinfo"
	"github.com/matzehuels/hypercuboid/pkg/cache"
	"github.com/matzehuels/hypercuboid/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "hypercuboid"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// Config is loaded before any subcommand runs.
	Config     Config
	configPath string
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Config: defaultConfig(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "Hypercuboid integrates piecewise-constant functions over boxes",
		Long: `Hypercuboid integrates a step function defined by weighted axis-aligned boxes
along one axis, returning a partition of the remaining axes into cells with
the exact line integral for each cell.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(c.configPath)
			if err != nil {
				return err
			}
			c.Config = cfg
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			cmd.SetContext(withLogger(ctx, c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default: $XDG_CONFIG_HOME/hypercuboid/config.toml)")

	root.AddCommand(c.integrateCommand())
	root.AddCommand(c.splitCommand())
	root.AddCommand(c.convertCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner backed by the configured cache.
func (c *CLI) newRunner(ctx context.Context, noCache bool) (*pipeline.Runner, error) {
	cc, err := c.newCache(ctx, noCache)
	if err != nil {
		return nil, err
	}
	r := pipeline.NewRunner(cc, c.newKeyer(), loggerFromContext(ctx))
	r.TTL = c.Config.Cache.TTL
	return r, nil
}

// newCache opens the configured cache backend. A file cache that cannot be
// created degrades to no caching, while unreachable remote backends are
// reported as errors.
func (c *CLI) newCache(ctx context.Context, noCache bool) (cache.Cache, error) {
	cfg := c.Config.Cache
	if noCache || cfg.Backend == backendNone {
		return cache.NewNullCache(), nil
	}

	switch cfg.Backend {
	case backendRedis:
		rc, err := cache.NewRedisCache(ctx, cache.RedisConfig{
			URL:       cfg.Redis.URL,
			Addr:      cfg.Redis.Addr,
			Password:  cfg.Redis.Password,
			DB:        cfg.Redis.DB,
			KeyPrefix: cfg.Prefix,
		})
		if err != nil {
			return nil, err
		}
		return rc, nil
	case backendMongo:
		mc, err := cache.NewMongoCache(ctx, cache.MongoConfig{
			URI:        cfg.Mongo.URI,
			Database:   cfg.Mongo.Database,
			Collection: cfg.Mongo.Collection,
		})
		if err != nil {
			return nil, err
		}
		return mc, nil
	}

	dir := cfg.Dir
	if dir == "" {
		d, err := cacheDir()
		if err != nil {
			loggerFromContext(ctx).Warn("no cache directory, caching disabled", "err", err)
			return cache.NewNullCache(), nil
		}
		dir = d
	}
	fc, err := cache.NewFileCache(dir)
	if err != nil {
		loggerFromContext(ctx).Warn("cannot create cache directory, caching disabled", "dir", dir, "err", err)
		return cache.NewNullCache(), nil
	}
	return fc, nil
}

// newKeyer scopes keys by the configured prefix. Redis applies the prefix
// itself, so it gets the plain keyer.
func (c *CLI) newKeyer() cache.Keyer {
	cfg := c.Config.Cache
	if cfg.Prefix == "" || cfg.Backend == backendRedis {
		return cache.NewDefaultKeyer()
	}
	return cache.NewScopedKeyer(nil, cfg.Prefix)
}
