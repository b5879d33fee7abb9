package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/mhagedorn/scenegraph/internal/server"
)

// serveCommand creates the serve command for running the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		noCache bool
		noStore bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API server",
		Long: `Run the HTTP API server.

The server exposes the pipeline under /api/v1: POST /render and
POST /describe run the pipeline, GET /results lists persisted runs.
Cache, store, and describe backends come from the config file; without
GOOGLE_API_KEY the describe endpoint rejects image input but scene
documents still render.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			if addr == "" {
				addr = cfg.Server.Addr
			}

			runner, err := c.newRunner(ctx, cfg, noCache)
			if err != nil {
				return fmt.Errorf("initialize runner: %w", err)
			}
			defer runner.Close()

			if gem, err := newDescriber(ctx, cfg); err != nil {
				printWarning("Describe disabled: %v", err)
			} else {
				defer gem.Close()
				runner.Describer = gem
			}

			opts := []server.Option{
				server.WithTimeout(time.Duration(cfg.Server.RequestTimeout) * time.Second),
			}
			if !noStore {
				st, err := newStore(ctx, cfg)
				if err != nil {
					return fmt.Errorf("initialize store: %w", err)
				}
				defer st.Close()
				opts = append(opts, server.WithStore(st))
			}

			srv := server.New(runner, c.Logger, opts...)
			printInfo("Listening on %s", addr)
			return srv.Start(ctx, addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, :8080)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&noStore, "no-store", false, "disable result persistence")

	return cmd
}
