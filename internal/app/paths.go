package app

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
)

const (
	appDirName      = "happymeal"
	sessionFileName = "session.json"
	cacheFileName   = "cache.db"

	defaultBaseURL = "http://localhost:8080"

	envBaseURL = "HAPPYMEAL_BASE_URL"
)

func DefaultSessionPath() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve user config dir: %w", err)
	}
	return filepath.Join(base, appDirName, sessionFileName), nil
}

func DefaultCachePath() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve user config dir: %w", err)
	}
	return filepath.Join(base, appDirName, cacheFileName), nil
}

func EnsureParentDir(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create app directory: %w", err)
	}
	return nil
}

// BaseURL resolves the server address from the environment, loading a
// .env file from the working directory first when one exists.
func BaseURL() string {
	_ = godotenv.Load()
	if v := strings.TrimSpace(os.Getenv(envBaseURL)); v != "" {
		return strings.TrimRight(v, "/")
	}
	return defaultBaseURL
}
