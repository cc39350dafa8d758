package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// DefaultAPIBaseURL is the public NASA Mars rover photo API
const DefaultAPIBaseURL = "https://api.nasa.gov/mars-photos/api/v1"

// Config holds all configuration for the application
type Config struct {
	APIKey         string        `env:"NASA_API_KEY" envDefault:"DEMO_KEY"`
	APIBaseURL     string        `env:"NASA_API_BASE_URL" envDefault:"https://api.nasa.gov/mars-photos/api/v1"`
	BucketName     string        `env:"BUCKET_NAME"`
	Port           string        `env:"PORT" envDefault:"8080"`
	CacheTTL       time.Duration `env:"CACHE_TTL" envDefault:"10m"`
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT" envDefault:"30s"`
	ViewsDir       string        `env:"VIEWS_DIR" envDefault:"./views"`
}

// ErrBucketNameNotSet is returned when the BUCKET_NAME environment variable is not set
var ErrBucketNameNotSet = errors.New("BUCKET_NAME environment variable not set")

// ErrAPIKeyNotSet is returned when NASA_API_KEY is set to an empty value
var ErrAPIKeyNotSet = errors.New("NASA_API_KEY environment variable is empty")

// Load loads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, ErrAPIKeyNotSet
	}
	cfg.APIBaseURL = strings.TrimRight(cfg.APIBaseURL, "/")

	return cfg, nil
}

// RequireBucket checks that a storage bucket is configured
func (c *Config) RequireBucket() error {
	if c.BucketName == "" {
		return ErrBucketNameNotSet
	}
	return nil
}

// ServerAddress returns the server address with port
func (c *Config) ServerAddress() string {
	return fmt.Sprintf(":%s", c.Port)
}

// PrintServerStartMessage prints a message when the server starts
func (c *Config) PrintServerStartMessage() {
	fmt.Printf("Starting server at port %s\n", c.Port)
	fmt.Printf("Manifests URL: http://localhost:%s/\n", c.Port)
	fmt.Printf("Feed URL: http://localhost:%s/api/manifests\n", c.Port)
}
