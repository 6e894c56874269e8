// Package config handles dinebal configuration and the dining plan catalog.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
)

// Config holds all dinebal configuration.
type Config struct {
	General    GeneralConfig    `toml:"general"`
	Plan       PlanConfig       `toml:"plan"`
	Appearance AppearanceConfig `toml:"appearance"`
	TUI        TUIConfig        `toml:"tui"`
	Plans      PlanOverrides    `toml:"plans"`
}

// GeneralConfig holds data location and display window preferences.
type GeneralConfig struct {
	DataDir      string `toml:"data_dir,omitempty"`
	LookbackDays int    `toml:"lookback_days"`
	HorizonDays  int    `toml:"horizon_days"`
	// TermStart and TermEnd (YYYY-MM-DD) pin the window to the semester when both are set.
	TermStart string `toml:"term_start,omitempty"`
	TermEnd   string `toml:"term_end,omitempty"`
}

// PlanConfig records the plan the student is enrolled in.
type PlanConfig struct {
	Acronym   string `toml:"acronym,omitempty"`
	Semesters int    `toml:"semesters"`
}

// AppearanceConfig holds theme settings.
type AppearanceConfig struct {
	Theme string `toml:"theme"`
}

// TUIConfig holds dashboard refresh settings.
type TUIConfig struct {
	AutoRefresh        bool `toml:"auto_refresh"`
	RefreshIntervalSec int  `toml:"refresh_interval_sec"`
}

// PlanOverrides allows user-defined plan terms, keyed by acronym.
type PlanOverrides struct {
	Overrides map[string]PlanOverride `toml:"overrides,omitempty"`
}

// PlanOverride replaces individual fields of a catalog plan, or defines a new one.
type PlanOverride struct {
	Name    *string `toml:"name,omitempty"`
	Swipes  *int    `toml:"swipes,omitempty"`
	Dollars *int    `toml:"dollars,omitempty"`
	Cost    *int    `toml:"cost,omitempty"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		General: GeneralConfig{
			LookbackDays: 4,
			HorizonDays:  120,
		},
		Plan: PlanConfig{
			Semesters: 1,
		},
		Appearance: AppearanceConfig{
			Theme: "flexoki-dark",
		},
		TUI: TUIConfig{
			RefreshIntervalSec: 60,
		},
	}
}

// Dir returns the XDG-compliant config directory.
func Dir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "dinebal")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "dinebal")
}

// Path returns the full path to the config file.
func Path() string {
	return filepath.Join(Dir(), "config.toml")
}

// DefaultDataDir returns the XDG data directory that holds imported history.
func DefaultDataDir() string {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, "dinebal")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "share", "dinebal")
}

// DataDir returns the configured data directory, falling back to the XDG default.
func (c Config) DataDir() string {
	if c.General.DataDir != "" {
		return c.General.DataDir
	}
	return DefaultDataDir()
}

// Load reads the config file, returning defaults if it doesn't exist.
func Load() (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(Path())
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// Validate checks values that would otherwise produce an unusable window.
func (c Config) Validate() error {
	if c.General.LookbackDays < 0 {
		return fmt.Errorf("lookback_days must not be negative, got %d", c.General.LookbackDays)
	}
	if c.General.HorizonDays < 0 {
		return fmt.Errorf("horizon_days must not be negative, got %d", c.General.HorizonDays)
	}
	if c.General.LookbackDays+c.General.HorizonDays == 0 {
		return fmt.Errorf("lookback_days and horizon_days cannot both be zero")
	}
	if c.Plan.Semesters != 0 && c.Plan.Semesters != 1 && c.Plan.Semesters != 2 {
		return fmt.Errorf("plan.semesters must be 1 or 2, got %d", c.Plan.Semesters)
	}
	if c.TUI.RefreshIntervalSec < 0 {
		return fmt.Errorf("refresh_interval_sec must not be negative, got %d", c.TUI.RefreshIntervalSec)
	}
	for _, field := range []struct{ name, value string }{
		{"term_start", c.General.TermStart},
		{"term_end", c.General.TermEnd},
	} {
		if field.value == "" {
			continue
		}
		if _, err := time.Parse(dateLayout, field.value); err != nil {
			return fmt.Errorf("%s: %w", field.name, err)
		}
	}
	return nil
}

// Save writes the config to disk.
func Save(cfg Config) error {
	dir := Dir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	f, err := os.OpenFile(Path(), os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("creating config file: %w", err)
	}
	defer f.Close()

	enc := toml.NewEncoder(f)
	return enc.Encode(cfg)
}

// Exists returns true if a config file exists on disk.
func Exists() bool {
	_, err := os.Stat(Path())
	return err == nil
}
