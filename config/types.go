package config

import (
	"time"
)

// Config represents the complete configuration structure
type Config struct {
	API     APIConfig     `mapstructure:"api"`
	Trivia  TriviaConfig  `mapstructure:"trivia"`
	Filter  FilterConfig  `mapstructure:"filter"`
	Stats   StatsConfig   `mapstructure:"stats"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// APIConfig holds OpenTDB connection details
type APIConfig struct {
	BaseURL   string        `mapstructure:"base_url"`
	Timeout   time.Duration `mapstructure:"timeout"`
	UserAgent string        `mapstructure:"user_agent"`
	Token     string        `mapstructure:"token"`
}

// TriviaConfig holds the default question query. Category accepts an id or
// a display name.
type TriviaConfig struct {
	Amount     int    `mapstructure:"amount"`
	Category   string `mapstructure:"category"`
	Difficulty string `mapstructure:"difficulty"`
	Type       string `mapstructure:"type"`
}

// FilterConfig maps preset names to filter expressions
type FilterConfig map[string]string

// StatsConfig controls the stats command
type StatsConfig struct {
	Concurrency int `mapstructure:"concurrency"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Color  bool   `mapstructure:"color"`
}
