package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"cutline/internal/config"
)

func writeConfig(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.toml")
	cfg, resolved, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if exists {
		t.Fatal("expected exists=false for missing file")
	}
	if resolved == "" {
		t.Fatal("expected resolved path")
	}
	if cfg.Preview.FrameRate != 60 {
		t.Fatalf("frame rate = %d, want default 60", cfg.Preview.FrameRate)
	}
	if cfg.Preview.SaveDebounceMillis != 600 {
		t.Fatalf("debounce = %d, want default 600", cfg.Preview.SaveDebounceMillis)
	}
}

func TestLoadOverridesAndNormalizes(t *testing.T) {
	path := writeConfig(t, `
[preview]
frame_rate = 30
default_gap_duration = 0.5

[render]
base_url = "https://render.example.com/"

[logging]
level = "DEBUG"
`)
	cfg, _, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !exists {
		t.Fatal("expected exists=true")
	}
	if cfg.Preview.FrameRate != 30 {
		t.Fatalf("frame rate = %d, want 30", cfg.Preview.FrameRate)
	}
	if cfg.Render.BaseURL != "https://render.example.com" {
		t.Fatalf("base url = %q, want trailing slash trimmed", cfg.Render.BaseURL)
	}
	if cfg.Logging.Level != "debug" {
		t.Fatalf("level = %q, want lowercased", cfg.Logging.Level)
	}
}

func TestLoadRejectsOutOfRangeGapDuration(t *testing.T) {
	path := writeConfig(t, `
[preview]
default_gap_duration = 5.0
`)
	if _, _, _, err := config.Load(path); err == nil {
		t.Fatal("expected validation error for gap duration outside [0.2, 2.0]")
	}
}

func TestLoadRejectsBadLogFormat(t *testing.T) {
	path := writeConfig(t, `
[logging]
format = "xml"
`)
	if _, _, _, err := config.Load(path); err == nil {
		t.Fatal("expected validation error for unsupported log format")
	}
}

func TestRenderAPIKeyEnvFallback(t *testing.T) {
	t.Setenv("CUTLINE_RENDER_API_KEY", "from-env")
	path := writeConfig(t, "")
	cfg, _, _, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Render.APIKey != "from-env" {
		t.Fatalf("api key = %q, want env fallback", cfg.Render.APIKey)
	}
}

func TestSampleConfigParses(t *testing.T) {
	path := writeConfig(t, config.SampleConfig())
	if _, _, _, err := config.Load(path); err != nil {
		t.Fatalf("sample config should load cleanly: %v", err)
	}
}

func TestDerivedPaths(t *testing.T) {
	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.DataDir = filepath.Join(base, "data")
	cfg.Paths.LogDir = filepath.Join(base, "logs")
	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories failed: %v", err)
	}
	if !strings.HasSuffix(cfg.SettingsDBPath(), "settings.db") {
		t.Fatalf("settings db path = %q", cfg.SettingsDBPath())
	}
	if !strings.HasSuffix(cfg.SocketPath(), "cutline.sock") {
		t.Fatalf("socket path = %q", cfg.SocketPath())
	}
	if !strings.HasSuffix(cfg.LockPath(), "cutlined.lock") {
		t.Fatalf("lock path = %q", cfg.LockPath())
	}
}
