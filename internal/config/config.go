// Package config loads quizmaster settings from an optional config file
// and QUIZMASTER_* environment variables.
package config

import "time"

// Config holds all application configuration.
type Config struct {
	Quiz  QuizConfig  `mapstructure:"quiz" validate:"required"`
	Store StoreConfig `mapstructure:"store"`
	Log   LogConfig   `mapstructure:"log" validate:"required"`
	LLM   LLMConfig   `mapstructure:"llm" validate:"required"`
}

// QuizConfig controls the session engine and where the bank comes from.
type QuizConfig struct {
	TargetStreak       int    `mapstructure:"target_streak" validate:"gte=1"`
	ChallengeThreshold int    `mapstructure:"challenge_threshold" validate:"gte=1"`
	SessionKey         string `mapstructure:"session_key" validate:"required"`
	// BankPath and BankURL are mutually exclusive; with neither set the
	// embedded bank is used.
	BankPath string `mapstructure:"bank_path" validate:"excluded_with=BankURL"`
	BankURL  string `mapstructure:"bank_url" validate:"omitempty,url"`
	// BankTimeout bounds an HTTP bank fetch.
	BankTimeout time.Duration `mapstructure:"bank_timeout" validate:"gt=0"`
}

// StoreConfig locates the SQLite database. An empty path resolves to the
// XDG data directory.
type StoreConfig struct {
	Path string `mapstructure:"path"`
}

// LogConfig sets the log level and output format.
type LogConfig struct {
	Level  string `mapstructure:"level" validate:"required,oneof=debug info warn error"`
	Format string `mapstructure:"format" validate:"required,oneof=text json"`
}

// LLMConfig selects the provider used to author banks.
type LLMConfig struct {
	Provider string        `mapstructure:"provider" validate:"required,oneof=anthropic openai gemini openrouter mock"`
	Model    string        `mapstructure:"model"`
	APIKey   string        `mapstructure:"api_key"`
	BaseURL  string        `mapstructure:"base_url" validate:"omitempty,url"`
	Timeout  time.Duration `mapstructure:"timeout" validate:"gt=0"`
}
