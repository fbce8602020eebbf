package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	Port string `env:"PORT" envDefault:"8080"`

	DBHost     string `env:"DB_HOST" envDefault:"localhost"`
	DBUser     string `env:"DB_USER" envDefault:"postgres"`
	DBPassword string `env:"DB_PASSWORD"`
	DBName     string `env:"DB_NAME" envDefault:"swiftparcel"`
	DBPort     string `env:"DB_PORT" envDefault:"5432"`

	StripeSecretKey string `env:"STRIPE_SECRET_KEY"`
	StripeCurrency  string `env:"STRIPE_CURRENCY" envDefault:"usd"`

	// SiteURL is the public origin checkout redirects back to.
	SiteURL string `env:"SITE_URL" envDefault:"http://localhost:5173"`

	FirebaseServiceAccountPath string `env:"FIREBASE_SERVICE_ACCOUNT_PATH"`

	RedisURL string `env:"REDIS_URL"`

	AWSRegion          string `env:"AWS_REGION"`
	AWSAccessKeyID     string `env:"AWS_ACCESS_KEY_ID"`
	AWSSecretAccessKey string `env:"AWS_SECRET_ACCESS_KEY"`
	AWSS3Bucket        string `env:"AWS_S3_BUCKET"`

	// Local-storage fallback when S3 is not configured
	UploadDir string `env:"UPLOAD_DIR" envDefault:"./uploads"`
	BaseURL   string `env:"BASE_URL" envDefault:"http://localhost:8080"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env config: %w", err)
	}
	return &cfg, nil
}

func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		panic(err)
	}
	return cfg
}

// DSN builds the postgres connection string.
func (c *Config) DSN() string {
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		c.DBHost, c.DBUser, c.DBPassword, c.DBName, c.DBPort,
	)
}
