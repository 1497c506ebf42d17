package db

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/pressly/goose/v3"

	"github.com/Suhaibk137/atsclaude/internal/shared/telemetry"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

var gooseSetup sync.Once

// RunMigrations applies the embedded ledger migrations. A nil database is a
// no-op so the in-memory ledger path can share callers.
func RunMigrations(ctx context.Context, database *sql.DB) error {
	if database == nil {
		return nil
	}

	var setupErr error
	gooseSetup.Do(func() {
		goose.SetBaseFS(migrationFiles)
		goose.SetLogger(gooseLogger{})
		setupErr = goose.SetDialect("postgres")
	})
	if setupErr != nil {
		return fmt.Errorf("goose dialect: %w", setupErr)
	}

	if err := goose.UpContext(ctx, database, "migrations"); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}
	if version, err := goose.GetDBVersion(database); err == nil {
		telemetry.Info("db.migrated", map[string]any{"version": version})
	}
	return nil
}

// gooseLogger forwards goose progress lines to telemetry.
type gooseLogger struct{}

func (gooseLogger) Printf(format string, v ...any) {
	telemetry.Info("db.migrate", map[string]any{"detail": strings.TrimSpace(fmt.Sprintf(format, v...))})
}

func (l gooseLogger) Print(v ...any) { l.Printf("%s", fmt.Sprint(v...)) }

func (l gooseLogger) Println(v ...any) { l.Printf("%s", fmt.Sprintln(v...)) }

func (gooseLogger) Fatalf(format string, v ...any) {
	telemetry.Error("db.migrate.fatal", map[string]any{"detail": strings.TrimSpace(fmt.Sprintf(format, v...))})
	os.Exit(1)
}

func (l gooseLogger) Fatal(v ...any) { l.Fatalf("%s", fmt.Sprint(v...)) }
