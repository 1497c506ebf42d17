package main

// Apply the conversion ledger migrations:
//   DATABASE_URL=postgres://... go run ./cmd/migrate

import (
	"context"
	"os"

	"github.com/Suhaibk137/atsclaude/internal/shared/config"
	"github.com/Suhaibk137/atsclaude/internal/shared/storage/db"
	"github.com/Suhaibk137/atsclaude/internal/shared/telemetry"
)

func main() {
	cfg := config.Load()

	ledger, err := db.Open(context.Background(), cfg.DatabaseURL, db.OptionsFromEnv(db.DefaultMigrateOptions()))
	if err != nil {
		telemetry.Error("migrate.failed", map[string]any{"error": err.Error()})
		os.Exit(1)
	}
	ledger.Close()
}
