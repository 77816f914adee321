// Package config loads the service's runtime configuration from the
// environment (and an optional .env file), following the env-var-first
// convention used throughout the example pack.
package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds every tunable named in spec.md §6's Configuration table.
type Config struct {
	PrimaryDirectionsBaseURL string
	DemoMode                 bool
	DemoSessionID            string
	SessionStoreURL          string
	APICallTimeout           time.Duration
	SolverTimeout            time.Duration
	FrictionModelPath        string
	LogLevel                 string
	ListenAddr               string
}

// Load reads .env (if present, silently ignored if not — matching the
// teacher's _ = godotenv.Load(".env") convention) and then the process
// environment, applying spec.md's documented defaults for anything unset.
func Load() Config {
	_ = godotenv.Load(".env")

	return Config{
		PrimaryDirectionsBaseURL: getEnv("PRIMARY_DIRECTIONS_BASE_URL", "https://router.project-osrm.org"),
		DemoMode:                 getBoolEnv("DEMO_MODE", true),
		DemoSessionID:            getEnv("DEMO_SESSION_ID", "demo-maya-001"),
		SessionStoreURL:          getEnv("SESSION_STORE_URL", "redis://localhost:6379/0"),
		APICallTimeout:           getSecondsEnv("API_CALL_TIMEOUT_SEC", 2*time.Second),
		SolverTimeout:            getSecondsEnv("SOLVER_TIMEOUT_SEC", 1*time.Second),
		FrictionModelPath:        getEnv("FRICTION_MODEL_PATH", ""),
		LogLevel:                 getEnv("LOG_LEVEL", "info"),
		ListenAddr:               getEnv("LISTEN_ADDR", ":8080"),
	}
}

func getEnv(key, def string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return def
}

func getBoolEnv(key string, def bool) bool {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}

func getSecondsEnv(key string, def time.Duration) time.Duration {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def
	}
	secs, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return time.Duration(secs) * time.Second
}
