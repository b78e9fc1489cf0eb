package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config is the environment-driven application configuration. The API
// key, bucket name, and database URL are required; startup fails before
// serving anything when one of them is missing.
type Config struct {
	GeminiAPIKey string `env:"GEMINI_API_KEY,notEmpty"`
	BucketName   string `env:"GCS_BUCKET_NAME,notEmpty"`
	DatabaseURL  string `env:"DATABASE_URL,notEmpty"`

	// Optional per-part overrides for the vector store connection. When
	// DB_HOST is set the DSN is assembled from these instead of
	// DATABASE_URL.
	DBHost     string `env:"DB_HOST"`
	DBPort     int    `env:"DB_PORT" envDefault:"5432"`
	DBName     string `env:"DB_NAME" envDefault:"vectordb"`
	DBUser     string `env:"DB_USER" envDefault:"postgres"`
	DBPassword string `env:"DB_PASSWORD"`

	Port     int    `env:"PORT" envDefault:"8080"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
}

// Load reads the configuration from the environment. A .env file is
// loaded when present; in containerized deployments the variables are
// usually set externally.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}

	return cfg, nil
}

// ConnString returns the effective Postgres DSN.
func (c *Config) ConnString() string {
	if c.DBHost == "" {
		return c.DatabaseURL
	}
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName)
}
