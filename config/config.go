package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	AppPort string

	// Search
	SearchDepth    int
	SearchParallel int

	// Sessions
	MaxTurns       int
	MaxSessions    int
	SessionTimeout time.Duration
	AllowedOrigins []string

	PlayerName string
	BotName    string

	LogLevel string
	LogJSON  bool
}

// Load reads .env (if present) and the process environment.
func Load() *Config {
	_ = godotenv.Load()
	return FromEnv()
}

// FromEnv builds a Config from the environment only, using defaults for
// anything unset or malformed.
func FromEnv() *Config {
	var origins []string
	for _, o := range strings.Split(os.Getenv("ALLOWED_ORIGINS"), ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}

	return &Config{
		AppPort:        stringEnv("APP_PORT", "8080"),
		SearchDepth:    intEnv("SEARCH_DEPTH", 5, 0),
		SearchParallel: intEnv("SEARCH_PARALLEL", 0, 0),
		MaxTurns:       intEnv("MAX_TURNS", 50, 1),
		MaxSessions:    intEnv("MAX_SESSIONS", 1000, 1),
		SessionTimeout: time.Duration(intEnv("SESSION_TIMEOUT_SECONDS", 1800, 1)) * time.Second,
		AllowedOrigins: origins,
		PlayerName:     stringEnv("PLAYER_NAME", "Player"),
		BotName:        stringEnv("BOT_NAME", "Bot"),
		LogLevel:       stringEnv("LOG_LEVEL", "info"),
		LogJSON:        os.Getenv("LOG_JSON") == "true",
	}
}

func stringEnv(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

// intEnv returns def unless the variable parses to a value >= min.
func intEnv(key string, def, min int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= min {
			return n
		}
	}
	return def
}
