// Package config loads the tool's config.ini through viper and
// validates its closed-enum keys by explicit string matching, per the
// source's own preference for that over reflection-based decoding.
package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// Recognized log-level and mode values.
const (
	LevelDebug   = "DEBUG"
	LevelInfo    = "INFO"
	LevelWarning = "WARNING"
	LevelError   = "ERROR"
	LevelNone    = "NONE"
)

var validLevels = map[string]bool{
	LevelDebug: true, LevelInfo: true, LevelWarning: true, LevelError: true, LevelNone: true,
}

// Config holds every recognized config.ini key, already validated.
type Config struct {
	LogLevel               string
	AutoAdjustLevel        bool
	AdjustedLevel          string
	Mode                   int
	BookPath               string
	OutputPath             string
	DebugLogPath           string
	SpecifiedPositionsPath string
}

// defaults mirror the source's hardcoded fallbacks exactly.
func defaults() Config {
	return Config{
		LogLevel:               LevelError,
		AutoAdjustLevel:        false,
		AdjustedLevel:          LevelInfo,
		Mode:                   4,
		BookPath:               "book.dat",
		OutputPath:             "mismatched_positions.txt",
		DebugLogPath:           "debuglog.txt",
		SpecifiedPositionsPath: "specified_positions.txt",
	}
}

// Load reads path (an INI file) and returns a validated Config. Missing
// keys fall back to their defaults; unrecognized keys are ignored.
// Unknown log_level/adjusted_level/mode values are configuration errors.
func Load(path string) (Config, error) {
	cfg := defaults()

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("ini")
	if err := v.ReadInConfig(); err != nil {
		return Config{}, fmt.Errorf("config: reading %s: %w", path, err)
	}
	// viper's INI reader files keys written before any [section] header
	// under a "default" section; read the recognized keys from there.
	if sub := v.Sub("default"); sub != nil {
		v = sub
	}

	if v.IsSet("log_level") {
		cfg.LogLevel = v.GetString("log_level")
	}
	if v.IsSet("auto_adjust_level") {
		cfg.AutoAdjustLevel = v.GetBool("auto_adjust_level")
	}
	if v.IsSet("adjusted_level") {
		cfg.AdjustedLevel = v.GetString("adjusted_level")
	}
	if v.IsSet("mode") {
		cfg.Mode = v.GetInt("mode")
	}
	if v.IsSet("book_path") {
		cfg.BookPath = v.GetString("book_path")
	}
	if v.IsSet("output_path") {
		cfg.OutputPath = v.GetString("output_path")
	}
	if v.IsSet("debug_log_path") {
		cfg.DebugLogPath = v.GetString("debug_log_path")
	}
	if v.IsSet("specified_positions_path") {
		cfg.SpecifiedPositionsPath = v.GetString("specified_positions_path")
	}

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	if !validLevels[c.LogLevel] {
		return fmt.Errorf("config: invalid log_level %q", c.LogLevel)
	}
	if !validLevels[c.AdjustedLevel] {
		return fmt.Errorf("config: invalid adjusted_level %q", c.AdjustedLevel)
	}
	if c.Mode < 1 || c.Mode > 5 {
		return fmt.Errorf("config: invalid mode %d, must be between 1 and 5", c.Mode)
	}
	return nil
}
