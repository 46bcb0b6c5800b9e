package config

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Port  string `envconfig:"PORT" default:"8080"`
	Debug bool   `envconfig:"DEBUG" default:"false"`

	DatabaseURL string `envconfig:"DATABASE_URL" required:"true"`

	// ClientURL is where the browser is redirected after login/logout.
	ClientURL string `envconfig:"CLIENT_URL" default:"http://localhost:3000"`
	// ServerURL is the externally visible base URL, used to build the
	// OAuth redirect URL.
	ServerURL string `envconfig:"SERVER_URL" default:"http://localhost:8080"`

	GoogleClientID     string `envconfig:"GOOGLE_CLIENT_ID"`
	GoogleClientSecret string `envconfig:"GOOGLE_CLIENT_SECRET"`

	UnsplashAccessKey string `envconfig:"UNSPLASH_ACCESS_KEY"`

	SessionTTLHours int  `envconfig:"SESSION_TTL_HOURS" default:"24"`
	CookieSecure    bool `envconfig:"COOKIE_SECURE" default:"false"`

	// Optional avatar mirroring to S3-compatible storage.
	S3Endpoint  string `envconfig:"S3_ENDPOINT"`
	S3AccessKey string `envconfig:"S3_ACCESS_KEY_ID"`
	S3SecretKey string `envconfig:"S3_SECRET_ACCESS_KEY"`
	S3Bucket    string `envconfig:"S3_BUCKET" default:"imgsearch-avatars"`
	S3Region    string `envconfig:"S3_REGION" default:"us-east-1"`
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("IMGSEARCH", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	return &cfg, nil
}

func (c *Config) HasGoogle() bool {
	return c.GoogleClientID != "" && c.GoogleClientSecret != ""
}

func (c *Config) HasUnsplash() bool {
	return c.UnsplashAccessKey != ""
}

func (c *Config) HasS3() bool {
	return c.S3Endpoint != "" && c.S3AccessKey != "" && c.S3SecretKey != ""
}
