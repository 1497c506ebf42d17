package config

import (
	"errors"
	"io/fs"

	"github.com/joho/godotenv"

	"github.com/Suhaibk137/atsclaude/internal/shared/telemetry"
)

// loadEnvFiles loads the given dotenv files if they exist. Variables already
// present in the environment win.
func loadEnvFiles(paths ...string) {
	for _, path := range paths {
		if err := godotenv.Load(path); err != nil {
			if !errors.Is(err, fs.ErrNotExist) {
				telemetry.Warn("config.dotenv.invalid", map[string]any{"path": path, "error": err.Error()})
			}
		}
	}
}
