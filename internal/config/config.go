package config

import (
	"log"
	"os"
	"strings"
)

// Config centralises all environment and runtime configuration.
type Config struct {
	Logger *log.Logger

	Port    string
	DBPath  string
	BaseURL string

	// Title printed on exports and page headers.
	ScheduleTitle string

	// Optional YAML file applied on first run to replace the built-in
	// slot/theme defaults.
	SeedFile string

	// When EditorPassword is empty the app runs open, like the original
	// single-tenant deployments. Setting it turns on the login gate for
	// every mutating route.
	EditorPassword string
	JWTSecret      string
}

// Load builds the Config struct from the environment.
func Load() *Config {
	logger := log.New(os.Stdout, "", log.LstdFlags)

	cfg := &Config{
		Logger:         logger,
		Port:           getEnvOrDefault("PORT", "8080"),
		DBPath:         getEnvOrDefault("DB_PATH", "./schedule.db"),
		BaseURL:        getEnvOrDefault("BASE_URL", ""),
		ScheduleTitle:  getEnvOrDefault("SCHEDULE_TITLE", "Sam's @ Batai Weekly Staff Schedule"),
		SeedFile:       os.Getenv("SEED_FILE"),
		EditorPassword: os.Getenv("EDITOR_PASSWORD"),
		JWTSecret:      os.Getenv("JWT_SECRET"),
	}

	if cfg.AuthEnabled() && strings.TrimSpace(cfg.JWTSecret) == "" {
		logger.Println("⚠️  EDITOR_PASSWORD is set but JWT_SECRET is empty; sessions will not survive restarts")
	}

	return cfg
}

// AuthEnabled reports whether the editor login gate is active.
func (c *Config) AuthEnabled() bool {
	return strings.TrimSpace(c.EditorPassword) != ""
}

func getEnvOrDefault(key, def string) string {
	val := os.Getenv(key)
	if val == "" {
		return def
	}
	return val
}
