package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment variable name.
const EnvPrefix = "QUIZMASTER"

var defaults = map[string]any{
	"quiz.target_streak":       3,
	"quiz.challenge_threshold": 5,
	"quiz.session_key":         "quizState",
	"quiz.bank_path":           "",
	"quiz.bank_url":            "",
	"quiz.bank_timeout":        10 * time.Second,
	"store.path":               "",
	"log.level":                "warn",
	"log.format":               "text",
	"llm.provider":             "anthropic",
	"llm.model":                "",
	"llm.api_key":              "",
	"llm.base_url":             "",
	"llm.timeout":              60 * time.Second,
}

// Load reads configuration from configFile (if non-empty) and the
// environment. Environment variables take precedence over file values,
// e.g. QUIZMASTER_QUIZ_TARGET_STREAK overrides quiz.target_streak.
func Load(configFile string) (*Config, error) {
	v := viper.New()

	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("read config file: %w", err)
			}
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal configuration: %w", err)
	}

	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &cfg, nil
}
