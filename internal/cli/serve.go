package cli

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/matzehuels/hypercuboid/internal/server"
	"github.com/matzehuels/hypercuboid/pkg/observability"
	"github.com/matzehuels/hypercuboid/pkg/pipeline"
)

const shutdownTimeout = 10 * time.Second

// serveCommand creates the serve command, which runs the HTTP API until
// interrupted.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Long: `Run the HTTP API.

Routes: POST /v1/integrate, POST /v1/split/interval, POST /v1/split/box,
GET /healthz and GET /metrics. The server shares the configured cache
backend; use redis or mongo when running several instances.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)

			hooks := observability.NewPrometheusHooks(prometheus.DefaultRegisterer)
			observability.SetSweepHooks(hooks)
			observability.SetCacheHooks(hooks)
			observability.SetHTTPHooks(hooks)
			defer observability.Reset()

			runner, err := c.newRunner(ctx, noCache)
			if err != nil {
				return err
			}
			defer runner.Close()

			cfg := c.Config.Server
			if cmd.Flags().Changed("addr") {
				cfg.Listen = addr
			}
			srv := server.New(runner, logger, server.Config{
				Addr:         cfg.Listen,
				ReadTimeout:  cfg.ReadTimeout,
				WriteTimeout: cfg.WriteTimeout,
				MaxBodyBytes: cfg.MaxBodyBytes,
				Options: pipeline.Options{
					Mode:     c.Config.Sweep.Mode,
					MaxCells: c.Config.Sweep.MaxCells,
				},
			})
			logger.Info("starting server", "addr", cfg.Listen, "cache", c.cacheLocation())
			return srv.ListenAndServe(ctx, shutdownTimeout)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default: from config, :8080)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}
