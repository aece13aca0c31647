package config

import (
	"os"

	"github.com/joho/godotenv"

	"cultivator/internal/storage"
)

// Config is the CLI-level configuration, sourced from the environment with
// an optional .env file.
type Config struct {
	DBPath   string
	Env      string
	LogLevel string
}

// Load reads .env (if present) and resolves the configuration. A missing
// .env file is not an error.
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		DBPath:   os.Getenv("CULT_DB_PATH"),
		Env:      os.Getenv("CULT_ENV"),
		LogLevel: os.Getenv("CULT_LOG_LEVEL"),
	}

	if cfg.DBPath == "" {
		path, err := storage.DefaultDBPath()
		if err != nil {
			return Config{}, err
		}
		cfg.DBPath = path
	}
	return cfg, nil
}
