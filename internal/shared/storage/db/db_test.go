package db

import (
	"bytes"
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/Suhaibk137/atsclaude/internal/shared/telemetry"
)

// withMockDB routes openDB to a sqlmock connection that records pings.
func withMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	mockDB, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	prev := openDB
	openDB = func(name, dsn string) (*sql.DB, error) {
		if name != driverName {
			t.Errorf("unexpected driver %q", name)
		}
		return mockDB, nil
	}
	t.Cleanup(func() { openDB = prev })
	return mockDB, mock
}

func TestOptionsFromEnvAppliesOverrides(t *testing.T) {
	t.Setenv("DB_MAX_OPEN_CONNS", "7")
	t.Setenv("DB_MAX_IDLE_CONNS", "3")
	t.Setenv("DB_CONN_MAX_LIFETIME", "20m")
	t.Setenv("DB_CONN_MAX_IDLE_TIME", "45s")
	t.Setenv("DB_PING_TIMEOUT", "1s")

	got := OptionsFromEnv(DefaultServerOptions())
	want := Options{
		MaxOpenConns:    7,
		MaxIdleConns:    3,
		ConnMaxLifetime: 20 * time.Minute,
		ConnMaxIdleTime: 45 * time.Second,
		PingTimeout:     time.Second,
	}
	if got != want {
		t.Fatalf("OptionsFromEnv = %+v, want %+v", got, want)
	}
}

func TestOptionsFromEnvKeepsDefaultOnInvalidValue(t *testing.T) {
	var buf bytes.Buffer
	telemetry.SetOutput(&buf)
	t.Cleanup(func() { telemetry.SetOutput(os.Stdout) })

	t.Setenv("DB_MAX_OPEN_CONNS", "lots")
	t.Setenv("DB_PING_TIMEOUT", "soon")

	got := OptionsFromEnv(DefaultMigrateOptions())
	if got != DefaultMigrateOptions() {
		t.Fatalf("expected defaults, got %+v", got)
	}
	if strings.Count(buf.String(), "db.env.invalid") != 2 {
		t.Fatalf("expected two warnings, got %s", buf.String())
	}
}

func TestDefaultMigrateOptionsUsesSingleConnection(t *testing.T) {
	opts := DefaultMigrateOptions()
	if opts.MaxOpenConns != 1 || opts.MaxIdleConns != 1 {
		t.Fatalf("unexpected migrate pool %+v", opts)
	}
	if opts.PingTimeout != DefaultServerOptions().PingTimeout {
		t.Fatalf("expected server ping timeout, got %s", opts.PingTimeout)
	}
}

func TestConnectAppliesPoolOptions(t *testing.T) {
	_, mock := withMockDB(t)
	mock.ExpectPing()

	db, err := Connect(context.Background(), "postgres://ledger", Options{MaxOpenConns: 4})
	if err != nil {
		t.Fatalf("Connect: %v", err)
	}
	if got := db.Stats().MaxOpenConnections; got != 4 {
		t.Fatalf("expected MaxOpenConnections=4, got %d", got)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestConnectRejectsEmptyURL(t *testing.T) {
	if _, err := Connect(context.Background(), "  ", DefaultServerOptions()); !errors.Is(err, ErrNoDatabaseURL) {
		t.Fatalf("expected ErrNoDatabaseURL, got %v", err)
	}
}

func TestConnectReportsOpenFailure(t *testing.T) {
	prev := openDB
	openDB = func(name, dsn string) (*sql.DB, error) {
		return nil, driver.ErrBadConn
	}
	t.Cleanup(func() { openDB = prev })

	_, err := Connect(context.Background(), "postgres://ignored", DefaultMigrateOptions())
	if !errors.Is(err, driver.ErrBadConn) || !strings.HasPrefix(err.Error(), "open database:") {
		t.Fatalf("expected wrapped open failure, got %v", err)
	}
}

func TestConnectReportsPingFailure(t *testing.T) {
	_, mock := withMockDB(t)
	mock.ExpectPing().WillReturnError(errors.New("connection refused"))
	mock.ExpectClose()

	_, err := Connect(context.Background(), "postgres://ledger", DefaultServerOptions())
	if err == nil || !strings.Contains(err.Error(), "ping database: connection refused") {
		t.Fatalf("expected ping failure, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestRunMigrationsNilDatabase(t *testing.T) {
	if err := RunMigrations(context.Background(), nil); err != nil {
		t.Fatalf("expected nil database to be a no-op, got %v", err)
	}
}

func TestMigrationsEmbedded(t *testing.T) {
	entries, err := migrationFiles.ReadDir("migrations")
	if err != nil {
		t.Fatalf("read embedded migrations: %v", err)
	}
	if len(entries) == 0 {
		t.Fatalf("expected at least one migration")
	}
	content, err := migrationFiles.ReadFile("migrations/" + entries[0].Name())
	if err != nil {
		t.Fatalf("read migration: %v", err)
	}
	for _, want := range []string{"-- +goose Up", "-- +goose Down", "CREATE TABLE IF NOT EXISTS conversions"} {
		if !strings.Contains(string(content), want) {
			t.Fatalf("expected %q in %s", want, entries[0].Name())
		}
	}
}

func TestGooseLoggerWritesTelemetry(t *testing.T) {
	var buf bytes.Buffer
	telemetry.SetOutput(&buf)
	t.Cleanup(func() { telemetry.SetOutput(os.Stdout) })

	gooseLogger{}.Printf("OK   %s (%s)\n", "00001_create_conversions.sql", "3ms")
	if !strings.Contains(buf.String(), `"detail":"OK   00001_create_conversions.sql (3ms)"`) {
		t.Fatalf("unexpected log output: %s", buf.String())
	}
}
