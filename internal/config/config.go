package config

import (
	"os"

	"github.com/joho/godotenv"
)

// Timezone is fixed per process: every calendar boundary the service
// computes is pinned to this zone, never the host zone.
type Config struct {
	ProjectID         string
	LogLevel          string
	Timezone          string
	Port              string
	WebhookSecretName string
}

func New() *Config {
	// Local development convenience; in Cloud Run the env is already set.
	_ = godotenv.Load()

	return &Config{
		ProjectID:         os.Getenv("PROJECTID"),
		LogLevel:          os.Getenv("LOGLEVEL"),
		Timezone:          getDefault("TIMEZONE", "Europe/Athens"),
		Port:              getDefault("PORT", "8080"),
		WebhookSecretName: os.Getenv("WEBHOOKSECRETNAME"),
	}
}

func getDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
