// Package config provides TOML configuration loading for the smart
// door controller, the same Default()-then-Decode-then-Validate()
// shape as MiFace's own internal/config.Load.
//
// The configuration file supports the following structure:
//
//	tick_rate_ms = 500
//	minimal_rate_camera_process_ms = 200
//	minimal_duration_will_open_ms = 3000
//	minimal_duration_will_close_ms = 3000
//
//	[[classification_open_list]]
//	label = "dog"
//	min_weight = 0.5
//
//	[[classification_close_list]]
//	label = "cat"
//	min_weight = 0.5
//
// Example usage:
//
//	cfg, err := config.Load("config.toml")
//	if err != nil {
//	    log.Fatal(err)
//	}
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/sua-org/smart-door/internal/coredoor"
)

// File is the on-disk shape decoded by TOML, in plain milliseconds
// and field names rather than the coredoor.Config it is converted
// into, since time.Duration does not round-trip through TOML.
type File struct {
	TickRateMs                 int64 `toml:"tick_rate_ms"`
	MinimalRateCameraProcessMs int64 `toml:"minimal_rate_camera_process_ms"`
	MinimalDurationWillOpenMs  int64 `toml:"minimal_duration_will_open_ms"`
	MinimalDurationWillCloseMs int64 `toml:"minimal_duration_will_close_ms"`

	ClassificationOpenList  []RuleFile `toml:"classification_open_list"`
	ClassificationCloseList []RuleFile `toml:"classification_close_list"`
}

// RuleFile is one [[classification_*_list]] entry.
type RuleFile struct {
	Label     string  `toml:"label"`
	MinWeight float64 `toml:"min_weight"`
}

// Default returns the on-disk defaults, matching
// coredoor.DefaultConfig in milliseconds form.
func Default() *File {
	return &File{
		TickRateMs:                 500,
		MinimalRateCameraProcessMs: 200,
		MinimalDurationWillOpenMs:  3000,
		MinimalDurationWillCloseMs: 3000,
		ClassificationOpenList: []RuleFile{
			{Label: "dog", MinWeight: 0.5},
		},
		ClassificationCloseList: []RuleFile{
			{Label: "cat", MinWeight: 0.5},
		},
	}
}

// Load reads and parses a TOML configuration file, overriding
// Default()'s fields, and converts the result into a coredoor.Config.
// If path is empty or the file does not exist, the default is used
// instead of failing: a pet door should still start with sane
// defaults when nobody supplied a config.toml.
func Load(path string) (coredoor.Config, error) {
	file := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if !os.IsNotExist(err) {
				return coredoor.Config{}, fmt.Errorf("reading config file: %w", err)
			}
		} else if _, err := toml.Decode(string(data), file); err != nil {
			return coredoor.Config{}, fmt.Errorf("parsing config file: %w", err)
		}
	}

	cfg := file.toCoreConfig()
	if err := Validate(cfg); err != nil {
		return coredoor.Config{}, fmt.Errorf("validating config: %w", err)
	}
	return cfg, nil
}

func (f *File) toCoreConfig() coredoor.Config {
	return coredoor.Config{
		TickRate:                 time.Duration(f.TickRateMs) * time.Millisecond,
		MinimalRateCameraProcess: time.Duration(f.MinimalRateCameraProcessMs) * time.Millisecond,
		MinimalDurationWillOpen:  time.Duration(f.MinimalDurationWillOpenMs) * time.Millisecond,
		MinimalDurationWillClose: time.Duration(f.MinimalDurationWillCloseMs) * time.Millisecond,
		ClassificationOpenList:   toRules(f.ClassificationOpenList),
		ClassificationCloseList:  toRules(f.ClassificationCloseList),
	}
}

func toRules(files []RuleFile) []coredoor.ClassificationRule {
	rules := make([]coredoor.ClassificationRule, 0, len(files))
	for _, r := range files {
		rules = append(rules, coredoor.ClassificationRule{Label: r.Label, MinWeight: r.MinWeight})
	}
	return rules
}

// Validate checks the configuration for invalid values.
func Validate(cfg coredoor.Config) error {
	if cfg.TickRate <= 0 {
		return fmt.Errorf("tick_rate_ms must be positive, got %s", cfg.TickRate)
	}
	if cfg.MinimalRateCameraProcess <= 0 {
		return fmt.Errorf("minimal_rate_camera_process_ms must be positive, got %s", cfg.MinimalRateCameraProcess)
	}
	if cfg.MinimalDurationWillOpen <= 0 {
		return fmt.Errorf("minimal_duration_will_open_ms must be positive, got %s", cfg.MinimalDurationWillOpen)
	}
	if cfg.MinimalDurationWillClose <= 0 {
		return fmt.Errorf("minimal_duration_will_close_ms must be positive, got %s", cfg.MinimalDurationWillClose)
	}
	for _, r := range cfg.ClassificationOpenList {
		if r.MinWeight < 0 || r.MinWeight > 1 {
			return fmt.Errorf("classification_open_list: min_weight must be between 0 and 1, got %f", r.MinWeight)
		}
	}
	for _, r := range cfg.ClassificationCloseList {
		if r.MinWeight < 0 || r.MinWeight > 1 {
			return fmt.Errorf("classification_close_list: min_weight must be between 0 and 1, got %f", r.MinWeight)
		}
	}
	return nil
}
