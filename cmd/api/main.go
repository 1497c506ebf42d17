package main

import (
	"os"

	"github.com/Suhaibk137/atsclaude/internal/bootstrap"
	"github.com/Suhaibk137/atsclaude/internal/shared/config"
	"github.com/Suhaibk137/atsclaude/internal/shared/server"
	"github.com/Suhaibk137/atsclaude/internal/shared/telemetry"
)

func main() {
	cfg := config.Load()
	app, err := bootstrap.Build(cfg)
	if err != nil {
		telemetry.Error("api.bootstrap.failed", map[string]any{"error": err.Error()})
		os.Exit(1)
	}
	defer app.Close()

	addr := server.Addr(cfg.Port)
	telemetry.Info("api.start", map[string]any{"addr": addr, "env": cfg.Env})

	if err := app.Router.Run(addr); err != nil {
		telemetry.Error("api.stopped", map[string]any{"error": err.Error()})
		os.Exit(1)
	}
}
