package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/viper"

	"github.com/s0up4200/otdb/filter"
	"github.com/s0up4200/otdb/opentdb"
)

// Load loads the configuration. An explicit configPath must exist; otherwise
// ./otdb.yaml and ~/.config/otdb/otdb.yaml are tried and defaults are used
// when neither is present. OTDB_ environment variables override the file,
// e.g. OTDB_API_TOKEN or OTDB_TRIVIA_AMOUNT.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetEnvPrefix("OTDB")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("otdb")
		v.SetConfigType("yaml")

		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "otdb"))
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configPath != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// setDefaults sets default configuration values. Every key needs a default
// so that AutomaticEnv can see it during Unmarshal.
func setDefaults(v *viper.Viper) {
	v.SetDefault("api.base_url", opentdb.DefaultBaseURL)
	v.SetDefault("api.timeout", "30s")
	v.SetDefault("api.user_agent", "otdb-go")
	v.SetDefault("api.token", "")

	v.SetDefault("trivia.amount", 10)
	v.SetDefault("trivia.category", "")
	v.SetDefault("trivia.difficulty", "")
	v.SetDefault("trivia.type", "")

	v.SetDefault("stats.concurrency", 4)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("logging.color", true)
}

// validate checks if the configuration is valid
func validate(cfg *Config) error {
	if cfg.API.BaseURL == "" {
		return fmt.Errorf("api.base_url is required")
	}
	if cfg.API.Timeout < 0 {
		return fmt.Errorf("api.timeout must not be negative")
	}

	if cfg.Trivia.Amount < 1 || cfg.Trivia.Amount > opentdb.MaxQuestionCount {
		return fmt.Errorf("trivia.amount must be between 1 and %d, got %d", opentdb.MaxQuestionCount, cfg.Trivia.Amount)
	}
	if _, err := ResolveCategory(cfg.Trivia.Category); err != nil {
		return fmt.Errorf("invalid trivia.category: %w", err)
	}
	if _, err := ResolveDifficulty(cfg.Trivia.Difficulty); err != nil {
		return fmt.Errorf("invalid trivia.difficulty: %w", err)
	}
	if _, err := ResolveKind(cfg.Trivia.Type); err != nil {
		return fmt.Errorf("invalid trivia.type: %w", err)
	}

	if cfg.Stats.Concurrency < 1 {
		return fmt.Errorf("stats.concurrency must be at least 1")
	}

	if err := filter.NewManager().RegisterFilters(cfg.Filter); err != nil {
		return fmt.Errorf("invalid filter preset: %w", err)
	}

	validLevels := map[string]bool{
		"trace": true,
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[cfg.Logging.Level] {
		return fmt.Errorf("invalid logging level: %s", cfg.Logging.Level)
	}

	validFormats := map[string]bool{
		"console": true,
		"json":    true,
	}
	if !validFormats[cfg.Logging.Format] {
		return fmt.Errorf("invalid logging format: %s", cfg.Logging.Format)
	}

	return nil
}

// ResolveCategory accepts "", "any", a numeric id or a display name
func ResolveCategory(s string) (opentdb.Category, error) {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, "any") {
		return opentdb.CategoryAny, nil
	}

	if id, err := strconv.Atoi(s); err == nil {
		return opentdb.CategoryFromID(id)
	}

	c := opentdb.ParseCategory(s)
	if c == opentdb.CategoryAny {
		return c, fmt.Errorf("unknown category %q", s)
	}
	return c, nil
}

// ResolveDifficulty accepts "", "any" or a difficulty name
func ResolveDifficulty(s string) (opentdb.Difficulty, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" || s == "any" {
		return opentdb.DifficultyAny, nil
	}
	return opentdb.ParseDifficulty(s)
}

// ResolveKind accepts "", "any" or a question type
func ResolveKind(s string) (opentdb.Kind, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" || s == "any" {
		return opentdb.KindAny, nil
	}
	return opentdb.ParseKind(s)
}
