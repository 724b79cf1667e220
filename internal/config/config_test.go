package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ConfigFile)
	content := `bib: library.bib
out: schedule.md
timezone: America/New_York
start: 2025-09-03
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Bib != "library.bib" {
		t.Errorf("Bib = %q, want library.bib", cfg.Bib)
	}
	if cfg.Timezone != "America/New_York" {
		t.Errorf("Timezone = %q, want America/New_York", cfg.Timezone)
	}
	if cfg.Start != "2025-09-03" {
		t.Errorf("Start = %q, want 2025-09-03", cfg.Start)
	}
}

func TestLoad_MissingFileIsEmptyConfig(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yml"))
	if err != nil {
		t.Fatalf("Load() missing file should not error: %v", err)
	}
	if *cfg != (Config{}) {
		t.Errorf("Load() missing file = %+v, want zero config", cfg)
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), ConfigFile)
	if err := os.WriteFile(path, []byte("bib: [unclosed"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("Load() should fail on invalid YAML")
	}
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("SYLLABIB_BIB", "env.bib")
	t.Setenv("SYLLABIB_TZ", "UTC")

	cfg := &Config{Bib: "file.bib", Start: "2025-09-03"}
	cfg.ApplyEnv()

	if cfg.Bib != "env.bib" {
		t.Errorf("Bib = %q, env should override file", cfg.Bib)
	}
	if cfg.Timezone != "UTC" {
		t.Errorf("Timezone = %q, want UTC", cfg.Timezone)
	}
	if cfg.Start != "2025-09-03" {
		t.Errorf("Start = %q, unset env must not clear values", cfg.Start)
	}
}

func TestTimezoneOrDefault(t *testing.T) {
	if got := (&Config{}).TimezoneOrDefault(); got != DefaultTimezone {
		t.Errorf("TimezoneOrDefault() = %q, want %q", got, DefaultTimezone)
	}
	if got := (&Config{Timezone: "UTC"}).TimezoneOrDefault(); got != "UTC" {
		t.Errorf("TimezoneOrDefault() = %q, want UTC", got)
	}
}
