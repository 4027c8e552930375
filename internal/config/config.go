// Package config provides configuration management for the review pipeline worker.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Configuration validation errors.
var (
	ErrNoBanks                 = errors.New("at least one bank is required")
	ErrBankMissingID           = errors.New("bank id is required")
	ErrBankMissingAppID        = errors.New("bank app_id is required")
	ErrNoRequiredColumns       = errors.New("validation.required_columns must not be empty")
	ErrInvalidMinLength        = errors.New("processing.min_review_length must be non-negative")
	ErrInvalidMaxLength        = errors.New("processing.max_review_length must be at least 1")
	ErrMinExceedsMaxLength     = errors.New("processing.min_review_length cannot exceed max_review_length")
	ErrInvalidPositiveCutoff   = errors.New("sentiment.positive_threshold must be in [0,1]")
	ErrInvalidNegativeCutoff   = errors.New("sentiment.negative_threshold must be in [0,1]")
	ErrInvalidWorkers          = errors.New("sentiment.workers must be at least 1")
	ErrNoThemes                = errors.New("themes.keywords must define at least one theme")
	ErrThemeWithoutKeywords    = errors.New("theme has no trigger keywords")
	ErrInvalidMaxFeatures      = errors.New("themes.tfidf_max_features must be at least 1")
	ErrInvalidMinGroupSize     = errors.New("themes.min_group_size must be at least 1")
	ErrInvalidTotalMinReviews  = errors.New("requirements.total_min_reviews must be non-negative")
	ErrInvalidMinPerBank       = errors.New("requirements.min_reviews_per_bank must be non-negative")
	ErrInvalidMaxErrorRate     = errors.New("requirements.max_error_rate must be in [0,1]")
	ErrMissingOutputDir        = errors.New("output.dir is required")
	ErrInvalidLogLevel         = errors.New("logging.level must be one of: debug, info, warn, error")
	ErrInvalidRetryMaxAttempts = errors.New("ingest.retry.max_attempts must be at least 1")
	ErrInvalidRetryDelay       = errors.New("ingest.retry.initial_delay_ms must be non-negative")
	ErrInvalidRetryBackoff     = errors.New("ingest.retry.backoff_multiplier must be >= 1.0")
)

// Config represents the complete pipeline configuration.
type Config struct {
	Banks        []BankConfig       `yaml:"banks"`
	Ingest       IngestConfig       `yaml:"ingest"`
	Validation   ValidationConfig   `yaml:"validation"`
	Processing   ProcessingConfig   `yaml:"processing"`
	Sentiment    SentimentConfig    `yaml:"sentiment"`
	Themes       ThemesConfig       `yaml:"themes"`
	Requirements RequirementsConfig `yaml:"requirements"`
	Output       OutputConfig       `yaml:"output"`
	Logging      LoggingConfig      `yaml:"logging"`
}

// BankConfig identifies one bank app whose reviews are analyzed.
type BankConfig struct {
	ID    string `yaml:"id"`
	Name  string `yaml:"name"`
	AppID string `yaml:"app_id"`
}

// IngestConfig controls raw dataset loading.
type IngestConfig struct {
	Source string      `yaml:"source"`
	Retry  RetryPolicy `yaml:"retry"`
}

// RetryPolicy defines retry behavior for remote sources.
type RetryPolicy struct {
	MaxAttempts       int     `yaml:"max_attempts"`
	InitialDelayMs    int     `yaml:"initial_delay_ms"`
	MaxDelayMs        int     `yaml:"max_delay_ms"`
	BackoffMultiplier float64 `yaml:"backoff_multiplier"`
	TimeoutSec        int     `yaml:"timeout_sec"`
}

// ValidationConfig defines the structural schema gate.
type ValidationConfig struct {
	RequiredColumns []string `yaml:"required_columns"`
}

// ProcessingConfig contains cleaning-stage settings.
type ProcessingConfig struct {
	MinReviewLength int   `yaml:"min_review_length"`
	MaxReviewLength int   `yaml:"max_review_length"`
	AllowedRatings  []int `yaml:"allowed_ratings"`
}

// SentimentConfig contains classifier wrapper settings.
type SentimentConfig struct {
	Endpoint          string  `yaml:"endpoint"`
	Model             string  `yaml:"model"`
	PositiveThreshold float64 `yaml:"positive_threshold"`
	NegativeThreshold float64 `yaml:"negative_threshold"`
	Workers           int     `yaml:"workers"`
}

// ThemesConfig contains thematic analysis settings.
type ThemesConfig struct {
	Keywords            map[string][]string `yaml:"keywords"`
	TfidfMaxFeatures    int                 `yaml:"tfidf_max_features"`
	MinKeywordFrequency int                 `yaml:"min_keyword_frequency"`
	MinGroupSize        int                 `yaml:"min_group_size"`
	TopKeywords         int                 `yaml:"top_keywords"`
}

// RequirementsConfig contains dataset quality thresholds.
type RequirementsConfig struct {
	TotalMinReviews   int     `yaml:"total_min_reviews"`
	MinReviewsPerBank int     `yaml:"min_reviews_per_bank"`
	MaxErrorRate      float64 `yaml:"max_error_rate"`
}

// OutputConfig defines artifact destinations.
type OutputConfig struct {
	Dir          string `yaml:"dir"`
	DatabasePath string `yaml:"database_path"`
}

// LoggingConfig defines logging behavior.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// DefaultConfig returns the configuration used when no file is supplied.
// Thresholds and the theme keyword table mirror the analysis defaults.
func DefaultConfig() *Config {
	return &Config{
		Banks: []BankConfig{
			{ID: "CBE", Name: "Commercial Bank of Ethiopia", AppID: "com.combanketh.mobilebanking"},
			{ID: "BOA", Name: "Bank of Abyssinia", AppID: "com.boa.boaMobileBanking"},
			{ID: "DASHEN", Name: "Dashen Bank", AppID: "com.dashen.dashensuperapp"},
		},
		Ingest: IngestConfig{
			Retry: RetryPolicy{
				MaxAttempts:       3,
				InitialDelayMs:    500,
				MaxDelayMs:        30000,
				BackoffMultiplier: 2.0,
				TimeoutSec:        30,
			},
		},
		Validation: ValidationConfig{
			RequiredColumns: []string{"review_text", "rating", "date", "bank", "source"},
		},
		Processing: ProcessingConfig{
			MinReviewLength: 3,
			MaxReviewLength: 1000,
			AllowedRatings:  []int{1, 2, 3, 4, 5},
		},
		Sentiment: SentimentConfig{
			Model:             "distilbert-base-uncased-finetuned-sst-2-english",
			PositiveThreshold: 0.6,
			NegativeThreshold: 0.4,
			Workers:           4,
		},
		Themes: ThemesConfig{
			Keywords: map[string][]string{
				"Account Access Issues":   {"login", "password", "access", "account", "verify", "authentication"},
				"Transaction Performance": {"slow", "transfer", "transaction", "loading", "speed", "wait", "time"},
				"UI/UX Experience":        {"interface", "design", "easy", "navigation", "layout", "user friendly"},
				"Customer Support":        {"support", "help", "service", "response", "contact", "assistance"},
				"App Reliability":         {"crash", "bug", "error", "freeze", "update", "not working"},
				"Security Concerns":       {"security", "safe", "hack", "privacy", "protection"},
				"Feature Requests":        {"feature", "add", "should have", "missing", "want", "need"},
			},
			TfidfMaxFeatures:    100,
			MinKeywordFrequency: 5,
			MinGroupSize:        10,
			TopKeywords:         20,
		},
		Requirements: RequirementsConfig{
			TotalMinReviews:   1200,
			MinReviewsPerBank: 400,
			MaxErrorRate:      0.05,
		},
		Output: OutputConfig{
			Dir: "data/results",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// LoadConfig loads configuration from a YAML file. Fields not present in
// the file keep their defaults; an empty path returns the defaults.
func LoadConfig(filepath string) (*Config, error) {
	cfg := DefaultConfig()

	if filepath == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// SaveConfig saves configuration to a YAML file.
func (c *Config) SaveConfig(filepath string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(filepath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if len(c.Banks) == 0 {
		return ErrNoBanks
	}

	for i, bank := range c.Banks {
		if bank.ID == "" {
			return fmt.Errorf("%w: banks[%d]", ErrBankMissingID, i)
		}

		if bank.AppID == "" {
			return fmt.Errorf("%w: banks[%d]", ErrBankMissingAppID, i)
		}
	}

	if len(c.Validation.RequiredColumns) == 0 {
		return ErrNoRequiredColumns
	}

	// Validate processing bounds
	if c.Processing.MinReviewLength < 0 {
		return ErrInvalidMinLength
	}

	if c.Processing.MaxReviewLength < 1 {
		return ErrInvalidMaxLength
	}

	if c.Processing.MinReviewLength > c.Processing.MaxReviewLength {
		return ErrMinExceedsMaxLength
	}

	// Validate sentiment thresholds
	if c.Sentiment.PositiveThreshold < 0 || c.Sentiment.PositiveThreshold > 1 {
		return ErrInvalidPositiveCutoff
	}

	if c.Sentiment.NegativeThreshold < 0 || c.Sentiment.NegativeThreshold > 1 {
		return ErrInvalidNegativeCutoff
	}

	if c.Sentiment.Workers < 1 {
		return ErrInvalidWorkers
	}

	// Validate theme configuration
	if len(c.Themes.Keywords) == 0 {
		return ErrNoThemes
	}

	for theme, keywords := range c.Themes.Keywords {
		if len(keywords) == 0 {
			return fmt.Errorf("%w: %q", ErrThemeWithoutKeywords, theme)
		}
	}

	if c.Themes.TfidfMaxFeatures < 1 {
		return ErrInvalidMaxFeatures
	}

	if c.Themes.MinGroupSize < 1 {
		return ErrInvalidMinGroupSize
	}

	// Validate requirements
	if c.Requirements.TotalMinReviews < 0 {
		return ErrInvalidTotalMinReviews
	}

	if c.Requirements.MinReviewsPerBank < 0 {
		return ErrInvalidMinPerBank
	}

	if c.Requirements.MaxErrorRate < 0 || c.Requirements.MaxErrorRate > 1 {
		return ErrInvalidMaxErrorRate
	}

	// Validate output config
	if c.Output.Dir == "" {
		return ErrMissingOutputDir
	}

	// Validate retry policy
	if c.Ingest.Retry.MaxAttempts < 1 {
		return ErrInvalidRetryMaxAttempts
	}

	if c.Ingest.Retry.InitialDelayMs < 0 {
		return ErrInvalidRetryDelay
	}

	if c.Ingest.Retry.BackoffMultiplier < 1.0 {
		return ErrInvalidRetryBackoff
	}

	// Validate logging config
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[c.Logging.Level] {
		return ErrInvalidLogLevel
	}

	return nil
}

// BankName returns the display name for a bank id, or the id itself when
// the bank is not in the registry.
func (c *Config) BankName(id string) string {
	for _, bank := range c.Banks {
		if bank.ID == id {
			return bank.Name
		}
	}

	return id
}

// BankIDs returns the ids of all configured banks in declaration order.
func (c *Config) BankIDs() []string {
	ids := make([]string, 0, len(c.Banks))
	for _, bank := range c.Banks {
		ids = append(ids, bank.ID)
	}

	return ids
}

// AllowedRating reports whether r is in the allowed rating set.
func (c *ProcessingConfig) AllowedRating(r int) bool {
	for _, allowed := range c.AllowedRatings {
		if r == allowed {
			return true
		}
	}

	return false
}

// GetRetryDelay calculates exponential backoff delay for attempt number.
func (rp *RetryPolicy) GetRetryDelay(attempt int) time.Duration {
	if attempt <= 1 {
		return 0
	}

	delayMs := float64(rp.InitialDelayMs)
	for i := 1; i < attempt; i++ {
		delayMs *= rp.BackoffMultiplier
	}

	// Cap at max delay
	if rp.MaxDelayMs > 0 && int(delayMs) > rp.MaxDelayMs {
		delayMs = float64(rp.MaxDelayMs)
	}

	return time.Duration(int(delayMs)) * time.Millisecond
}

// GetTimeout returns the timeout duration.
func (rp *RetryPolicy) GetTimeout() time.Duration {
	return time.Duration(rp.TimeoutSec) * time.Second
}

// String returns a string representation of the config.
func (c *Config) String() string {
	return fmt.Sprintf(
		"Config{Banks: %d, Themes: %d, MinPerBank: %d, Output: %s}",
		len(c.Banks),
		len(c.Themes.Keywords),
		c.Requirements.MinReviewsPerBank,
		c.Output.Dir,
	)
}
