package config

import (
	"os"
	"strconv"
	"strings"
)

type Config struct {
	// APP
	AppEnv string
	Port   string

	// Database
	DBHost string
	DBPort string
	DBUser string
	DBPass string
	DBName string

	JWTSecret string

	// Admin login
	AdminUsername string
	AdminPassword string

	// CORS
	AllowedOrigins []string

	// Cost model knobs.
	// Overhead is spread over a standard 160-hour working month;
	// activity presets without a rate fall back to the default.
	StandardMonthlyHours float64
	DefaultPresetRate    float64
}

func Load() (*Config, error) {
	cfg := &Config{
		// App
		AppEnv: getEnv("APP_ENV", "development"),
		Port:   getEnv("PORT", "8002"),

		// DB
		DBHost: getEnv("DB_HOST", "127.0.0.1"),
		DBPort: getEnv("DB_PORT", "5432"),
		DBUser: getEnv("DB_USER", "postgres"),
		DBPass: getEnv("DB_PASS", "postgres"),
		DBName: getEnv("DB_NAME", "agenzia_db"),

		// JWT
		JWTSecret: getEnv("JWT_SECRET", "secret123"),

		// Admin login
		AdminUsername: getEnv("ADMIN_USERNAME", "admin"),
		AdminPassword: getEnv("ADMIN_PASSWORD", "agenzia-2025"),

		AllowedOrigins: getEnvList("ALLOWED_ORIGINS", []string{"*"}),

		// Cost model
		StandardMonthlyHours: getEnvFloat("STANDARD_MONTHLY_HOURS", 160),
		DefaultPresetRate:    getEnvFloat("DEFAULT_PRESET_RATE", 25),
	}

	return cfg, nil
}

// getEnv returns environment variable or default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvFloat returns float from env or default.
func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseFloat(value, 64); err == nil {
			return parsed
		}
	}
	return defaultValue
}

// getEnvList returns a comma separated env var as a slice, or the default.
func getEnvList(key string, defaultValue []string) []string {
	if value := os.Getenv(key); value != "" {
		parts := strings.Split(value, ",")
		out := make([]string, 0, len(parts))
		for _, p := range parts {
			if trimmed := strings.TrimSpace(p); trimmed != "" {
				out = append(out, trimmed)
			}
		}
		if len(out) > 0 {
			return out
		}
	}
	return defaultValue
}
