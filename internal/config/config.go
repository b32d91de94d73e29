package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	DatabaseURL  string
	GeminiAPIKey string
	HTTPPort     string
	JWTSecret    string
	AppEnv       string
	AIModel      string
	CORSOrigins  []string

	// Model parameters passed to the generation call.
	AITemperature float32
	AIMaxTokens   int32
}

func Load() (*Config, error) {
	_ = godotenv.Load() // Load .env file if it exists; production sets env directly

	cfg := &Config{
		DatabaseURL:   getEnv("DATABASE_URL", ""),
		GeminiAPIKey:  getEnv("GEMINI_API_KEY", ""),
		HTTPPort:      getEnv("HTTP_PORT", "8080"),
		JWTSecret:     getEnv("JWT_SECRET", ""),
		AppEnv:        getEnv("APP_ENV", "development"),
		AIModel:       getEnv("AI_MODEL", "gemini-1.5-flash-latest"),
		CORSOrigins:   splitList(getEnv("CORS_ORIGINS", "http://localhost:3000")),
		AITemperature: getEnvAsFloat32("AI_TEMPERATURE", 0.7),
		AIMaxTokens:   int32(getEnvAsInt("AI_MAX_TOKENS", 5000)),
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL environment variable is required")
	}
	if cfg.GeminiAPIKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY environment variable is required")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET environment variable is required")
	}

	return cfg, nil
}

func getEnv(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsFloat32(key string, defaultValue float32) float32 {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseFloat(valueStr, 32); err == nil {
		return float32(value)
	}
	return defaultValue
}

func splitList(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
