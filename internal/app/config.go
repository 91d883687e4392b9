package app

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	Env      string
	HTTPAddr string

	// ClientURL is the single allowed CORS origin for the editor frontend.
	ClientURL string

	PistonURL   string
	ExecTimeout time.Duration
}

func LoadConfig() Config {
	cfg := Config{
		Env:       getEnv("APP_ENV", "dev"),
		HTTPAddr:  ":" + getEnv("PORT", "5000"),
		ClientURL: getEnv("CLIENT_URL", "http://localhost:3000"),
		PistonURL: getEnv("PISTON_URL", "https://emkc.org/api/v2/piston/execute"),
	}
	cfg.ExecTimeout = time.Duration(getEnvInt("EXEC_TIMEOUT_SECONDS", 15)) * time.Second
	return cfg
}

// getEnv returns the env var or a default
func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

// getEnvInt parses an int env var with a fallback
func getEnvInt(k string, def int) int {
	if v := os.Getenv(k); v != "" {
		if i, err := strconv.Atoi(v); err == nil && i > 0 {
			return i
		}
	}
	return def
}
