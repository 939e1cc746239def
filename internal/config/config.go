package config

import (
	"errors"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds the CLI defaults read from the environment.
// Command-line flags override every field.
type Config struct {
	LogLevel           string // GRADEBOOK_LOG_LEVEL: debug, info, warn, error
	LogFormat          string // GRADEBOOK_LOG_FORMAT: console or json
	Workers            int    // GRADEBOOK_WORKERS
	AdvisorPlaceholder string // GRADEBOOK_ADVISOR_PLACEHOLDER
	Strategy           string // GRADEBOOK_STRATEGY: boundary or safe-offset
}

// Load reads an optional .env file from the working directory, then the
// environment. A missing .env file is not an error.
func Load() (*Config, error) {
	return LoadFiles()
}

// LoadFiles is Load with explicit dotenv files. Variables already set in the
// environment win over the files.
func LoadFiles(files ...string) (*Config, error) {
	if err := godotenv.Load(files...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}
	return &Config{
		LogLevel:           getEnvString("GRADEBOOK_LOG_LEVEL", "info"),
		LogFormat:          getEnvString("GRADEBOOK_LOG_FORMAT", "console"),
		Workers:            getEnvInt("GRADEBOOK_WORKERS", 1),
		AdvisorPlaceholder: getEnvString("GRADEBOOK_ADVISOR_PLACEHOLDER", ""),
		Strategy:           getEnvString("GRADEBOOK_STRATEGY", "boundary"),
	}, nil
}

func getEnvString(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return fallback
}
