package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	// Base URL of the carniceria API.
	APIURL string

	// Timeout applied to every API request.
	RequestTimeout time.Duration

	// Directory holding the durable client state (cart, session, local history).
	StateDir string
}

// Load reads configuration from the environment. A .env file in the working
// directory is honored when present; real environment variables win over it.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		APIURL:         getenv("CARNICERIA_API_URL", "http://localhost:5000"),
		RequestTimeout: parseDuration(getenv("CARNICERIA_TIMEOUT", "10s"), 10*time.Second),
		StateDir:       getenv("CARNICERIA_STATE_DIR", defaultStateDir()),
	}
}

func defaultStateDir() string {
	base, err := os.UserConfigDir()
	if err != nil {
		return ".carniceria"
	}
	return filepath.Join(base, "carniceria")
}

func getenv(k, def string) string {
	if v := os.Getenv(k); strings.TrimSpace(v) != "" {
		return v
	}
	return def
}

func parseDuration(v string, def time.Duration) time.Duration {
	d, err := time.ParseDuration(v)
	if err != nil {
		return def
	}
	return d
}
