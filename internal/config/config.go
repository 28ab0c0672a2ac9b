// Package config loads tool configuration from an optional config file and
// SPEAKCHECK_* environment variables.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all configuration for the tool.
type Config struct {
	DB      DBConfig      `mapstructure:"db"`
	Deck    DeckConfig    `mapstructure:"deck"`
	Suggest SuggestConfig `mapstructure:"suggest"`
	Log     LogConfig     `mapstructure:"log"`
}

// DBConfig holds local database configuration.
type DBConfig struct {
	Path string `mapstructure:"path"`
}

// DeckConfig holds review-deck limits.
type DeckConfig struct {
	PerLessonLimit int `mapstructure:"per_lesson_limit"`
	MaxDeckSize    int `mapstructure:"max_deck_size"`
}

// SuggestConfig holds candidate-suggestion thresholds.
type SuggestConfig struct {
	PhoneticThreshold float64 `mapstructure:"phonetic_threshold"`
	FuzzyThreshold    float64 `mapstructure:"fuzzy_threshold"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level string `mapstructure:"level"`
}

// Load reads configuration from file and environment variables.
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("speakcheck")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("$HOME/.speakcheck")

	setDefaults(v)

	v.SetEnvPrefix("SPEAKCHECK")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("db.path", "")

	v.SetDefault("deck.per_lesson_limit", 5)
	v.SetDefault("deck.max_deck_size", 800)

	v.SetDefault("suggest.phonetic_threshold", 0.70)
	v.SetDefault("suggest.fuzzy_threshold", 0.85)

	v.SetDefault("log.level", "warn")
}
