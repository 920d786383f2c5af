package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server     ServerConfig
	Classifier ClassifierConfig
	OCR        OCRConfig
	RateLimit  RateLimitConfig
	Extraction ExtractionConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port           string   `mapstructure:"port"`
	Environment    string   `mapstructure:"environment"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
	MaxUploadBytes int64    `mapstructure:"max_upload_bytes"`
}

// ClassifierConfig holds the categorization service endpoint
type ClassifierConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	Path    string        `mapstructure:"path"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// OCRConfig holds tesseract settings
type OCRConfig struct {
	Binary      string        `mapstructure:"binary"`
	Language    string        `mapstructure:"language"`
	PSM         int           `mapstructure:"psm"`
	TessdataDir string        `mapstructure:"tessdata_dir"`
	Timeout     time.Duration `mapstructure:"timeout"`
	MinHeight   int           `mapstructure:"min_height"`
}

// RateLimitConfig holds inbound rate limiting configuration
type RateLimitConfig struct {
	PerIP int `mapstructure:"per_ip"` // requests per minute
	Burst int `mapstructure:"burst"`
}

// ExtractionConfig holds field extractor settings
type ExtractionConfig struct {
	EnableDebugLogging bool `mapstructure:"enable_debug_logging"`
}

// Load loads configuration from .env, environment variables and config files
func Load() (*Config, error) {
	// .env is optional; real environment variables take precedence
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("error reading .env file: %w", err)
	}

	v := viper.New()

	// Set config name and paths
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/billscan/")

	// Environment variable settings
	v.SetEnvPrefix("BILLSCAN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Set default values
	setDefaults(v)

	// Read config file (optional - will use env vars if file doesn't exist)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values.
// Every key needs a default so AutomaticEnv can see it during Unmarshal.
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.allowed_origins", []string{"http://localhost:3000"})
	v.SetDefault("server.max_upload_bytes", 10<<20)

	// Classifier defaults
	v.SetDefault("classifier.base_url", "")
	v.SetDefault("classifier.path", "/categorize")
	v.SetDefault("classifier.timeout", "5s")

	// OCR defaults
	v.SetDefault("ocr.binary", "tesseract")
	v.SetDefault("ocr.language", "eng")
	v.SetDefault("ocr.psm", 6)
	v.SetDefault("ocr.tessdata_dir", "")
	v.SetDefault("ocr.timeout", "30s")
	v.SetDefault("ocr.min_height", 1000)

	// Rate limit defaults
	v.SetDefault("ratelimit.per_ip", 60)
	v.SetDefault("ratelimit.burst", 10)

	// Extraction defaults
	v.SetDefault("extraction.enable_debug_logging", false)
}

// validate validates the configuration
func validate(config *Config) error {
	if config.Classifier.BaseURL == "" {
		return fmt.Errorf("classifier base URL is required (set BILLSCAN_CLASSIFIER_BASE_URL)")
	}

	u, err := url.Parse(config.Classifier.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("classifier base URL must be an absolute http(s) URL, got: %s", config.Classifier.BaseURL)
	}

	if config.Classifier.Timeout <= 0 {
		return fmt.Errorf("classifier timeout must be positive, got: %s", config.Classifier.Timeout)
	}

	if config.OCR.Language == "" {
		return fmt.Errorf("OCR language is required")
	}

	if config.OCR.Timeout <= 0 {
		return fmt.Errorf("OCR timeout must be positive, got: %s", config.OCR.Timeout)
	}

	if config.RateLimit.PerIP <= 0 {
		return fmt.Errorf("per-IP rate limit must be positive, got: %d", config.RateLimit.PerIP)
	}

	if config.Server.MaxUploadBytes <= 0 {
		return fmt.Errorf("max upload size must be positive, got: %d", config.Server.MaxUploadBytes)
	}

	return nil
}
