package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/Suhaibk137/atsclaude/internal/shared/telemetry"
)

// DefaultMaxUploadBytes caps resume uploads at 10MB.
const DefaultMaxUploadBytes int64 = 10 << 20

// Archive store kinds.
const (
	ArchiveNone  = "none"
	ArchiveLocal = "local"
	ArchiveS3    = "s3"
)

// Config holds application configuration.
type Config struct {
	Port            string
	Env             string
	CORSAllowOrigin []string

	LLMProvider    string
	LLMModel       string
	LLMBaseURL     string
	LLMMaxTokens   int
	LLMTemperature float32
	LLMTimeout     time.Duration

	MaxUploadBytes int64

	RateLimitRPS   float64
	RateLimitBurst int

	ArchiveStore  string
	LocalStoreDir string
	AWSRegion     string
	S3Bucket      string
	S3Prefix      string
	SSEKMSKeyID   string

	DatabaseURL string
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	// Best-effort load of local env files for dev convenience.
	loadEnvFiles(".env", "cmd/.env")

	return Config{
		Port:            getEnv("PORT", "8080"),
		Env:             normalizeEnv(getEnv("ENV", "dev")),
		CORSAllowOrigin: splitAndTrim(getEnv("CORS_ALLOW_ORIGINS", "*")),

		LLMProvider:    strings.ToLower(strings.TrimSpace(getEnv("LLM_PROVIDER", "anthropic"))),
		LLMModel:       getEnv("LLM_MODEL", ""),
		LLMBaseURL:     getEnv("LLM_BASE_URL", ""),
		LLMMaxTokens:   getEnvAsInt("LLM_MAX_TOKENS", 4000),
		LLMTemperature: getEnvAsFloat32("LLM_TEMPERATURE", 0.1),
		LLMTimeout:     getEnvAsDuration("LLM_TIMEOUT", 0),

		MaxUploadBytes: getEnvAsInt64("MAX_UPLOAD_BYTES", DefaultMaxUploadBytes),

		RateLimitRPS:   getEnvAsFloat64("RATE_LIMIT_RPS", 0),
		RateLimitBurst: getEnvAsInt("RATE_LIMIT_BURST", 0),

		ArchiveStore:  normalizeArchiveStore(getEnv("ARCHIVE_STORE", ArchiveNone)),
		LocalStoreDir: getEnv("LOCAL_STORE_DIR", "./data"),
		AWSRegion:     getEnv("AWS_REGION", ""),
		S3Bucket:      getEnv("S3_BUCKET", ""),
		S3Prefix:      getEnv("S3_PREFIX", ""),
		SSEKMSKeyID:   getEnv("SSE_KMS_KEY_ID", ""),

		DatabaseURL: os.Getenv("DATABASE_URL"),
	}
}

func getEnv(key, def string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return def
}

func getEnvAsInt(key string, def int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return def
	}
	val, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		warnInvalid(key, err)
		return def
	}
	return val
}

func getEnvAsInt64(key string, def int64) int64 {
	raw := os.Getenv(key)
	if raw == "" {
		return def
	}
	val, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		warnInvalid(key, err)
		return def
	}
	return val
}

func getEnvAsFloat64(key string, def float64) float64 {
	raw := os.Getenv(key)
	if raw == "" {
		return def
	}
	val, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		warnInvalid(key, err)
		return def
	}
	return val
}

func getEnvAsFloat32(key string, def float32) float32 {
	return float32(getEnvAsFloat64(key, float64(def)))
}

func getEnvAsDuration(key string, def time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return def
	}
	val, err := time.ParseDuration(strings.TrimSpace(raw))
	if err != nil {
		warnInvalid(key, err)
		return def
	}
	return val
}

func warnInvalid(key string, err error) {
	telemetry.Warn("config.env.invalid", map[string]any{"key": key, "error": err.Error()})
}

func splitAndTrim(raw string) []string {
	parts := strings.Split(raw, ",")
	var out []string
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func normalizeEnv(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "production", "prod":
		return "production"
	case "staging":
		return "staging"
	default:
		return "dev"
	}
}

func normalizeArchiveStore(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case ArchiveS3:
		return ArchiveS3
	case ArchiveLocal:
		return ArchiveLocal
	default:
		return ArchiveNone
	}
}
