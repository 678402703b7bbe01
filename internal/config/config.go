package config

import (
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	// Server
	Port        string
	Environment string

	// Session
	JWTSecret      string
	AppAccessToken string

	// Weatherbit upstream
	WeatherbitAPIKey  string
	WeatherbitBaseURL string
}

// Load reads configuration from the environment. A .env file is applied
// first when present. Missing secrets are not fatal here: the handlers that
// need them respond 500, so the server can still boot and serve /health.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Port:              getEnv("PORT", "8080"),
		Environment:       getEnv("ENVIRONMENT", "development"),
		JWTSecret:         getEnv("JWT_SECRET", ""),
		AppAccessToken:    getEnv("APP_ACCESS_TOKEN", ""),
		WeatherbitAPIKey:  getEnv("WEATHERBIT_API_KEY", ""),
		WeatherbitBaseURL: getEnv("WEATHERBIT_BASE_URL", "https://api.weatherbit.io/v2.0"),
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}
