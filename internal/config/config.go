// Package config provides configuration loading and validation.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Config represents the service configuration. Values can come from a JSON
// file, environment variables, or CLI flags; missing values use defaults.
type Config struct {
	// Credentials
	GeminiAPIKey     string `json:"gemini_api_key,omitempty"`
	TelegramBotToken string `json:"telegram_bot_token,omitempty"`

	// Storage
	DatabaseURL string `json:"database_url,omitempty"` // PostgreSQL connection URL
	MediaRoot   string `json:"media_root,omitempty"`   // Root for uploads and generated documents

	// Server
	ListenAddr string `json:"listen_addr,omitempty"`

	// Validation gate
	MinTextLength int      `json:"min_text_length,omitempty"`
	Keywords      []string `json:"keywords,omitempty"` // resume section keywords

	// Rendering
	SummaryThreshold  int `json:"summary_threshold,omitempty"`
	MaxSummaryBullets int `json:"max_summary_bullets,omitempty"`

	// Limits
	MaxUploadsPerDay int `json:"max_uploads_per_day,omitempty"`

	// Behavior
	Verbose bool `json:"verbose,omitempty"`
}

// Defaults returns the built-in configuration defaults.
func Defaults() Config {
	return Config{
		MediaRoot:        "media",
		ListenAddr:       ":8080",
		MaxUploadsPerDay: 1,
	}
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// FromEnv builds a Config from environment variables. Unset variables
// leave their fields zero so file or default values can fill them.
func FromEnv() (*Config, error) {
	cfg := &Config{
		GeminiAPIKey:     os.Getenv("GEMINI_API_KEY"),
		TelegramBotToken: os.Getenv("TELEGRAM_BOT_TOKEN"),
		DatabaseURL:      os.Getenv("DATABASE_URL"),
		MediaRoot:        os.Getenv("MEDIA_ROOT"),
		ListenAddr:       os.Getenv("LISTEN_ADDR"),
	}

	if v := os.Getenv("MIN_TEXT_LENGTH"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid MIN_TEXT_LENGTH: %v", err)
		}
		cfg.MinTextLength = n
	}
	if v := os.Getenv("RESUME_KEYWORDS"); v != "" {
		for _, kw := range strings.Split(v, ",") {
			if kw = strings.TrimSpace(kw); kw != "" {
				cfg.Keywords = append(cfg.Keywords, kw)
			}
		}
	}
	if v := os.Getenv("MAX_UPLOADS_PER_DAY"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid MAX_UPLOADS_PER_DAY: %v", err)
		}
		cfg.MaxUploadsPerDay = n
	}
	return cfg, nil
}

// Validate checks that the configuration has valid values.
func (c *Config) Validate() error {
	if c.MinTextLength < 0 {
		return fmt.Errorf("config error: 'min_text_length' must be non-negative")
	}
	if c.MaxUploadsPerDay < 0 {
		return fmt.Errorf("config error: 'max_uploads_per_day' must be non-negative")
	}
	if c.SummaryThreshold < 0 {
		return fmt.Errorf("config error: 'summary_threshold' must be non-negative")
	}
	return nil
}

// MergeWithDefaults returns a new Config with zero-valued fields filled
// from defaults.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.GeminiAPIKey == "" {
		result.GeminiAPIKey = defaults.GeminiAPIKey
	}
	if result.TelegramBotToken == "" {
		result.TelegramBotToken = defaults.TelegramBotToken
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}
	if result.MediaRoot == "" {
		result.MediaRoot = defaults.MediaRoot
	}
	if result.ListenAddr == "" {
		result.ListenAddr = defaults.ListenAddr
	}
	if len(result.Keywords) == 0 {
		result.Keywords = defaults.Keywords
	}
	if result.MinTextLength == 0 {
		result.MinTextLength = defaults.MinTextLength
	}
	if result.SummaryThreshold == 0 {
		result.SummaryThreshold = defaults.SummaryThreshold
	}
	if result.MaxSummaryBullets == 0 {
		result.MaxSummaryBullets = defaults.MaxSummaryBullets
	}
	if result.MaxUploadsPerDay == 0 {
		result.MaxUploadsPerDay = defaults.MaxUploadsPerDay
	}
	if defaults.Verbose {
		result.Verbose = true
	}
	return result
}
