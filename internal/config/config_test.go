package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "game.toml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad_OverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
[window]
tps = 30

[session]
stage = "stages/hall.yaml"
move_style = "tank"

[ghost]
max_samples = 512
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Window.TPS != 30 || cfg.Window.Width != 1280 {
		t.Fatalf("unexpected window %+v", cfg.Window)
	}
	if cfg.Session.Stage != "stages/hall.yaml" || cfg.Session.MoveStyle != "tank" {
		t.Fatalf("unexpected session %+v", cfg.Session)
	}
	if cfg.Ghost.MaxSamples != 512 {
		t.Fatalf("unexpected ghost %+v", cfg.Ghost)
	}
	if cfg.Logging.Level != "info" || cfg.Logging.Format != "console" {
		t.Fatalf("logging defaults lost: %+v", cfg.Logging)
	}
}

func TestLoad_MissingExplicitPath(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	if !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("expected not-exist, got %v", err)
	}
}

func TestLoad_MissingDefaultPathUsesDefaults(t *testing.T) {
	t.Chdir(t.TempDir())
	cfg, err := Load(DefaultPath)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Window.TPS != 60 {
		t.Fatalf("expected default tps, got %d", cfg.Window.TPS)
	}
}

func TestLoad_Invalid(t *testing.T) {
	for name, body := range map[string]string{
		"syntax":      "[window\n",
		"tps":         "[window]\ntps = 0\n",
		"samples":     "[ghost]\nmax_samples = -1\n",
		"format":      "[logging]\nformat = \"xml\"\n",
		"window size": "[window]\nwidth = 0\n",
	} {
		if _, err := Load(writeConfig(t, body)); err == nil {
			t.Fatalf("%s: expected an error", name)
		}
	}
}

func TestPath_Env(t *testing.T) {
	t.Setenv(EnvPath, "/tmp/other.toml")
	if Path() != "/tmp/other.toml" {
		t.Fatalf("env override ignored: %s", Path())
	}
	t.Setenv(EnvPath, "")
	if Path() != DefaultPath {
		t.Fatalf("expected default path, got %s", Path())
	}
}

func TestNewLogger_JSONToFile(t *testing.T) {
	out := filepath.Join(t.TempDir(), "game.log")
	log, err := NewLogger(LoggingConfig{Level: "debug", Format: "json", Output: out})
	if err != nil {
		t.Fatalf("NewLogger: %v", err)
	}
	log.Debug("hello")
	_ = log.Sync()
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), `"msg":"hello"`) {
		t.Fatalf("expected a json line, got %q", data)
	}
}
