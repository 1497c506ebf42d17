package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Suhaibk137/atsclaude/internal/conversions"
	"github.com/Suhaibk137/atsclaude/internal/convert"
	"github.com/Suhaibk137/atsclaude/internal/llm"
	"github.com/Suhaibk137/atsclaude/internal/llm/anthropic"
	"github.com/Suhaibk137/atsclaude/internal/llm/gemini"
	"github.com/Suhaibk137/atsclaude/internal/llm/openai"
	"github.com/Suhaibk137/atsclaude/internal/services/health"
	"github.com/Suhaibk137/atsclaude/internal/shared/config"
	"github.com/Suhaibk137/atsclaude/internal/shared/server"
	"github.com/Suhaibk137/atsclaude/internal/shared/storage/db"
	"github.com/Suhaibk137/atsclaude/internal/shared/storage/object"
	localstore "github.com/Suhaibk137/atsclaude/internal/shared/storage/object/local"
	s3store "github.com/Suhaibk137/atsclaude/internal/shared/storage/object/s3"
	"github.com/Suhaibk137/atsclaude/internal/shared/telemetry"
)

// App holds shared dependencies.
type App struct {
	Config         config.Config
	Router         *gin.Engine
	DB             *sql.DB
	Archive        object.Store
	Ledger         conversions.Repo
	Structurer     *llm.Client
	ConvertService *convert.Service
}

// Build prepares dependencies and wires the router.
func Build(cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	ctx := context.Background()

	completer, err := NewCompleter(cfg)
	if err != nil {
		return nil, err
	}

	sqlDB, err := buildDB(ctx, cfg)
	if err != nil {
		return nil, err
	}

	archive, err := buildArchive(ctx, cfg)
	if err != nil {
		return nil, err
	}

	app := &App{
		Config:  cfg,
		DB:      sqlDB,
		Archive: archive,
	}
	if sqlDB != nil {
		app.Ledger = &conversions.PGRepo{DB: sqlDB}
	} else {
		app.Ledger = conversions.NewMemoryRepo(conversions.DefaultMemoryCapacity)
	}

	app.Structurer = llm.NewClient(completer, llm.Options{
		MaxTokens:   cfg.LLMMaxTokens,
		Temperature: cfg.LLMTemperature,
	})
	app.ConvertService = &convert.Service{
		Structurer:     app.Structurer,
		Ledger:         app.Ledger,
		Archive:        archive,
		MaxUploadBytes: cfg.MaxUploadBytes,
	}

	app.Router = server.NewRouter(server.RouterDeps{
		Config:            cfg,
		ConvertHandler:    convert.NewHandler(app.ConvertService),
		ConversionHandler: conversions.NewHandler(app.Ledger),
		Health:            healthService(sqlDB),
	})

	telemetry.Info("bootstrap.ready", map[string]any{
		"env":      cfg.Env,
		"provider": completer.Provider(),
		"model":    completer.Model(),
		"ledger":   ledgerKind(sqlDB),
		"archive":  cfg.ArchiveStore,
	})
	return app, nil
}

// Close releases the database pool, if any.
func (a *App) Close() error {
	if a.DB == nil {
		return nil
	}
	return a.DB.Close()
}

// NewCompleter selects the completion provider named by cfg.LLMProvider.
func NewCompleter(cfg config.Config) (llm.Completer, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.LLMProvider)) {
	case "", anthropic.Name:
		return anthropic.NewClient(anthropic.Config{BaseURL: cfg.LLMBaseURL, Model: cfg.LLMModel, Timeout: cfg.LLMTimeout}), nil
	case openai.Name:
		return openai.NewClient(openai.Config{BaseURL: cfg.LLMBaseURL, Model: cfg.LLMModel, Timeout: cfg.LLMTimeout}), nil
	case gemini.Name:
		return gemini.NewClient(gemini.Config{BaseURL: cfg.LLMBaseURL, Model: cfg.LLMModel, Timeout: cfg.LLMTimeout}), nil
	default:
		return nil, fmt.Errorf("unknown LLM_PROVIDER %q (want anthropic, openai or gemini)", cfg.LLMProvider)
	}
}

func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		return nil, nil
	}

	sqlDB, err := db.Open(ctx, cfg.DatabaseURL, db.OptionsFromEnv(db.DefaultServerOptions()))
	if err != nil {
		if isDevLike(cfg.Env) {
			telemetry.Warn("bootstrap.db.fallback", map[string]any{"error": err.Error()})
			return nil, nil
		}
		return nil, err
	}
	return sqlDB, nil
}

func buildArchive(ctx context.Context, cfg config.Config) (object.Store, error) {
	switch cfg.ArchiveStore {
	case config.ArchiveS3:
		store, err := s3store.New(ctx, cfg.AWSRegion, cfg.S3Bucket, cfg.S3Prefix, cfg.SSEKMSKeyID)
		if err != nil {
			return nil, err
		}
		return store, nil
	case config.ArchiveLocal:
		return localstore.New(cfg.LocalStoreDir), nil
	default:
		return nil, nil
	}
}

// healthService avoids handing the router a typed-nil pinger.
func healthService(sqlDB *sql.DB) *health.Service {
	if sqlDB == nil {
		return health.NewService(nil)
	}
	return health.NewService(sqlDB)
}

func isDevLike(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "local":
		return true
	default:
		return false
	}
}

func ledgerKind(sqlDB *sql.DB) string {
	if sqlDB != nil {
		return "postgres"
	}
	return "memory"
}
