package config

import (
	"os"
	"path/filepath"
	"testing"
)

// TestDefaultConfig_SessionWindow verifies the hard 20-minute session window
func TestDefaultConfig_SessionWindow(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Session.TTLSeconds != 1200 {
		t.Errorf("TTLSeconds = %d, want 1200", cfg.Session.TTLSeconds)
	}
	if cfg.Session.MaxWarnings != 2 {
		t.Errorf("MaxWarnings = %d, want 2", cfg.Session.MaxWarnings)
	}
	if cfg.Session.WarningMinutes != 5 {
		t.Errorf("WarningMinutes = %d, want 5", cfg.Session.WarningMinutes)
	}
}

// TestDefaultConfig_SweepProbability verifies the per-request sweep coin flip default
func TestDefaultConfig_SweepProbability(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Session.SweepProbability <= 0 || cfg.Session.SweepProbability > 1 {
		t.Errorf("SweepProbability = %f, want (0,1]", cfg.Session.SweepProbability)
	}
}

// TestLoadConfig_MissingFile verifies defaults are returned for a missing path
func TestLoadConfig_MissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.json"))
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Server.Port == 0 {
		t.Error("expected default server port")
	}
}

// TestLoadConfig_FileAndEnv verifies file values load and env wins over file
func TestLoadConfig_FileAndEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	body := `{"session": {"ttl_seconds": 600}, "provider": {"model": "from-file"}}`
	if err := os.WriteFile(path, []byte(body), 0600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	t.Setenv("NETRAGPT_PROVIDER_MODEL", "from-env")

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Session.TTLSeconds != 600 {
		t.Errorf("TTLSeconds = %d, want 600", cfg.Session.TTLSeconds)
	}
	if cfg.Provider.Model != "from-env" {
		t.Errorf("Model = %q, want env override", cfg.Provider.Model)
	}
}

// TestFlexibleStringSlice_MixedTypes verifies allow_from accepts numbers and strings
func TestFlexibleStringSlice_MixedTypes(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	body := `{"channels": {"discord": {"allow_from": ["abc", 12345]}}}`
	if err := os.WriteFile(path, []byte(body), 0600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	got := []string(cfg.Channels.Discord.AllowFrom)
	if len(got) != 2 || got[0] != "abc" || got[1] != "12345" {
		t.Errorf("AllowFrom = %v", got)
	}
}
