package model

import (
	"path/filepath"
	"testing"
)

func TestLoadConfigMissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	def := DefaultAppConfig()
	if cfg.Display.Theme != ThemeAuto || cfg.Storage.DBPath != def.Storage.DBPath || cfg.Log.MaxSizeMB != 10 {
		t.Errorf("unexpected defaults %+v", cfg)
	}
}

func TestSaveConfigRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := DefaultAppConfig()
	cfg.Storage.DBPath = "/tmp/habits-test.db"
	cfg.Display.Theme = ThemeLight
	cfg.Display.WeekStart = 1
	cfg.Log.Level = "debug"

	if err := SaveConfig(path, cfg); err != nil {
		t.Fatalf("SaveConfig: %v", err)
	}
	got, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if got.Storage.DBPath != cfg.Storage.DBPath || got.Display.Theme != ThemeLight ||
		got.Display.WeekStart != 1 || got.Log.Level != "debug" {
		t.Errorf("round trip mismatch: %+v", got)
	}
}

func TestNormalize(t *testing.T) {
	cfg := DefaultAppConfig()
	cfg.Display.Theme = "neon"
	cfg.Display.WeekStart = 4
	cfg.Log.MaxSizeMB = -1
	cfg.normalize()

	if cfg.Display.Theme != ThemeAuto || cfg.Display.WeekStart != 0 || cfg.Log.MaxSizeMB != 10 {
		t.Errorf("normalize left %+v", cfg)
	}
}
