package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.General.HorizonDays != 120 || cfg.General.LookbackDays != 4 {
		t.Fatalf("defaults not applied: %+v", cfg.General)
	}
	if Exists() {
		t.Fatal("Exists() = true before Save")
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg := DefaultConfig()
	cfg.Plan.Acronym = "BEN"
	cfg.Plan.Semesters = 2
	cfg.General.TermStart = "2026-08-26"
	cfg.General.TermEnd = "2026-12-19"
	cfg.Appearance.Theme = "tokyo-night"

	if err := Save(cfg); err != nil {
		t.Fatalf("Save() error: %v", err)
	}
	if !Exists() {
		t.Fatal("Exists() = false after Save")
	}

	got, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if got.Plan != cfg.Plan || got.General != cfg.General || got.Appearance != cfg.Appearance {
		t.Fatalf("Load() = %+v, want %+v", got, cfg)
	}
}

func TestLoad_RejectsInvalid(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)

	path := filepath.Join(dir, "dinebal", "config.toml")
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("[general]\nlookback_days = -3\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(); err == nil {
		t.Fatal("Load() accepted negative lookback_days")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(*Config) {}, false},
		{"zero window", func(c *Config) { c.General.LookbackDays, c.General.HorizonDays = 0, 0 }, true},
		{"three semesters", func(c *Config) { c.Plan.Semesters = 3 }, true},
		{"bad term date", func(c *Config) { c.General.TermStart = "fall" }, true},
		{"term only start", func(c *Config) { c.General.TermStart = "2026-08-26" }, false},
		{"negative refresh", func(c *Config) { c.TUI.RefreshIntervalSec = -1 }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestDataDir(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", "/tmp/xdg-data")
	cfg := DefaultConfig()
	if got := cfg.DataDir(); got != "/tmp/xdg-data/dinebal" {
		t.Fatalf("DataDir() = %q", got)
	}
	cfg.General.DataDir = "/srv/meals"
	if got := cfg.DataDir(); got != "/srv/meals" {
		t.Fatalf("DataDir() = %q, want /srv/meals", got)
	}
}

func TestWindow_Rolling(t *testing.T) {
	now := time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC)
	w := DefaultConfig().Window(now)

	if want := now.AddDate(0, 0, -4); !w.Start.Equal(want) {
		t.Fatalf("Start = %v, want %v", w.Start, want)
	}
	if want := now.AddDate(0, 0, 120); !w.End.Equal(want) {
		t.Fatalf("End = %v, want %v", w.End, want)
	}
}

func TestWindow_Term(t *testing.T) {
	now := time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC)
	cfg := DefaultConfig()
	cfg.General.TermStart = "2026-08-26"
	cfg.General.TermEnd = "2026-12-19"

	w := cfg.Window(now)
	if want := time.Date(2026, 8, 26, 0, 0, 0, 0, time.UTC); !w.Start.Equal(want) {
		t.Fatalf("Start = %v, want %v", w.Start, want)
	}
	if want := time.Date(2026, 12, 20, 0, 0, 0, 0, time.UTC); !w.End.Equal(want) {
		t.Fatalf("End = %v, want %v", w.End, want)
	}
	if !cfg.HasTerm() {
		t.Fatal("HasTerm() = false")
	}
}

func TestWindow_InvertedTermFallsBack(t *testing.T) {
	now := time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC)
	cfg := DefaultConfig()
	cfg.General.TermStart = "2026-12-19"
	cfg.General.TermEnd = "2026-08-26"

	w := cfg.Window(now)
	if !w.Start.Equal(now.AddDate(0, 0, -4)) {
		t.Fatalf("expected rolling window, got %v", w.Start)
	}
	if cfg.HasTerm() {
		t.Fatal("HasTerm() = true for inverted term")
	}
}
