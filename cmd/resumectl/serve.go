package main

import (
	"github.com/spf13/cobra"

	"github.com/Suhaibk137/atsclaude/internal/bootstrap"
	"github.com/Suhaibk137/atsclaude/internal/shared/config"
	"github.com/Suhaibk137/atsclaude/internal/shared/server"
	"github.com/Suhaibk137/atsclaude/internal/shared/telemetry"
)

func serveCmd() *cobra.Command {
	var port string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			if port != "" {
				cfg.Port = port
			}
			app, err := bootstrap.Build(cfg)
			if err != nil {
				return err
			}
			defer app.Close()

			addr := server.Addr(cfg.Port)
			telemetry.Info("api.start", map[string]any{"addr": addr, "env": cfg.Env})
			return app.Router.Run(addr)
		},
	}
	cmd.Flags().StringVarP(&port, "port", "p", "", "listen port (default: $PORT)")
	return cmd
}
