// internal/app/serve.go
package app

import (
	"github.com/spf13/cobra"

	"degen/internal/metrics"
	"degen/internal/server"
)

func newServeCmd(e *env) *cobra.Command {
	var (
		addr string
		ef   engineFlags
	)
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the design API over HTTP",
		Long: `Serve the design API over HTTP.

  POST /v1/designs  {"include":["F","L"],"avoid":["W"]}
  POST /v1/expand   {"pattern":"NNK"}
  GET  /v1/table
  GET  /health
  GET  /metrics`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Flags().Changed("addr") {
				e.cfg.Server.Addr = addr
			}
			if err := ef.apply(cmd, e); err != nil {
				return err
			}
			m := metrics.New()
			d, closeFn, err := e.newDesigner(designerDeps{workers: e.cfg.Server.Workers, metrics: m})
			if err != nil {
				return err
			}
			defer closeFn()

			srv := server.New(e.cfg.Server, d, server.Options{Metrics: m, Logger: e.log, TracerProvider: e.tp})
			if err := srv.Run(cmd.Context()); err != nil {
				return ioErr(err)
			}
			e.log.Info("server stopped")
			return nil
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, :8080)")
	ef.register(cmd)
	return cmd
}
