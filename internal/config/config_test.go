package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"audiorip/internal/config"
)

func TestLoadDefaultConfigExpandsPaths(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)
	t.Setenv("XDG_STATE_HOME", "")
	t.Setenv(config.DeviceEnvVar, "")
	t.Chdir(t.TempDir())

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if resolved != filepath.Join(tempHome, ".config", "audiorip", "config.toml") {
		t.Fatalf("unexpected resolved path %q", resolved)
	}
	if exists {
		t.Fatal("expected config file to be absent in temp HOME")
	}

	if cfg.Device.Path != "/dev/sr0" {
		t.Fatalf("unexpected device path %q", cfg.Device.Path)
	}
	if !cfg.Device.SpinUp || !cfg.Device.SpinDownOnExit {
		t.Fatal("expected spin up/down enabled by default")
	}
	if cfg.Output.Format != "wav" {
		t.Fatalf("unexpected default format %q", cfg.Output.Format)
	}
	if cfg.Output.NameFormat != "track%d" {
		t.Fatalf("unexpected default name format %q", cfg.Output.NameFormat)
	}
	if !cfg.Output.ContinueOnError || cfg.Output.Overwrite {
		t.Fatalf("unexpected output defaults %+v", cfg.Output)
	}
	if cfg.Extraction.ChunkFrames != 75 {
		t.Fatalf("unexpected chunk frames %d", cfg.Extraction.ChunkFrames)
	}
	wantCatalog := filepath.Join(tempHome, ".local", "share", "audiorip", "catalog.db")
	if cfg.Catalog.Path != wantCatalog {
		t.Fatalf("catalog path = %q, want %q", cfg.Catalog.Path, wantCatalog)
	}
	wantState := filepath.Join(tempHome, ".local", "state", "audiorip")
	if cfg.Paths.StateDir != wantState {
		t.Fatalf("state dir = %q, want %q", cfg.Paths.StateDir, wantState)
	}
	if !filepath.IsAbs(cfg.Output.Dir) {
		t.Fatalf("expected absolute output dir, got %q", cfg.Output.Dir)
	}
}

func TestLoadFromFileOverridesDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv(config.DeviceEnvVar, "")
	dir := t.TempDir()
	path := filepath.Join(dir, "audiorip.toml")

	content := `
[device]
path = "/dev/sr1"
spin_up = false

[output]
dir = "~/music"
format = " RAW "
name_format = "%02d-track"
continue_on_error = false

[extraction]
chunk_frames = 25

[logging]
format = "JSON"
level = "Debug"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, resolved, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists || resolved != path {
		t.Fatalf("expected existing config at %q, got %q exists=%v", path, resolved, exists)
	}
	if cfg.Device.Path != "/dev/sr1" || cfg.Device.SpinUp {
		t.Fatalf("unexpected device %+v", cfg.Device)
	}
	if !cfg.Device.SpinDownOnExit {
		t.Fatal("unset keys should keep defaults")
	}
	if cfg.Output.Format != "raw" {
		t.Fatalf("format = %q, want raw", cfg.Output.Format)
	}
	home, _ := os.UserHomeDir()
	if cfg.Output.Dir != filepath.Join(home, "music") {
		t.Fatalf("output dir = %q", cfg.Output.Dir)
	}
	if cfg.TrackFileName(3) != "03-track" {
		t.Fatalf("TrackFileName(3) = %q", cfg.TrackFileName(3))
	}
	if cfg.Output.ContinueOnError {
		t.Fatal("expected continue_on_error false")
	}
	if cfg.Extraction.ChunkFrames != 25 {
		t.Fatalf("chunk frames = %d", cfg.Extraction.ChunkFrames)
	}
	if cfg.Logging.Format != "json" || cfg.Logging.Level != "debug" {
		t.Fatalf("unexpected logging %+v", cfg.Logging)
	}
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[device]\nbogus = 1\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, _, _, err := config.Load(path); err == nil {
		t.Fatal("expected parse error for unknown key")
	}
}

func TestDeviceEnvFallback(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv(config.DeviceEnvVar, "/dev/sr7")

	cfg, _, _, err := config.Load(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Device.Path != "/dev/sr7" {
		t.Fatalf("device = %q, want env override", cfg.Device.Path)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*config.Config)
		want   string
	}{
		{"unknown format", func(c *config.Config) { c.Output.Format = "flac" }, "output.format"},
		{"name without verb", func(c *config.Config) { c.Output.NameFormat = "track" }, "output.name_format"},
		{"name with two verbs", func(c *config.Config) { c.Output.NameFormat = "%d-%d" }, "output.name_format"},
		{"name with string verb", func(c *config.Config) { c.Output.NameFormat = "track%s" }, "output.name_format"},
		{"name with separator", func(c *config.Config) { c.Output.NameFormat = "cd/track%d" }, "path separators"},
		{"negative chunk", func(c *config.Config) { c.Extraction.ChunkFrames = -1 }, "extraction.chunk_frames"},
		{"oversized chunk", func(c *config.Config) { c.Extraction.ChunkFrames = 4501 }, "at most 4500"},
		{"bad level", func(c *config.Config) { c.Logging.Level = "loud" }, "logging.level"},
		{"empty device", func(c *config.Config) { c.Device.Path = "" }, "device.path"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("error %q does not mention %q", err, tt.want)
			}
		})
	}
}

func TestValidateAcceptsMultiSecondChunks(t *testing.T) {
	for _, frames := range []int{1, 75, 200, 4500} {
		cfg := config.Default()
		cfg.Extraction.ChunkFrames = frames
		if err := cfg.Validate(); err != nil {
			t.Fatalf("chunk_frames %d: %v", frames, err)
		}
	}
}

func TestSampleConfigParses(t *testing.T) {
	var cfg config.Config
	if err := toml.Unmarshal([]byte(config.SampleConfig()), &cfg); err != nil {
		t.Fatalf("sample config does not parse: %v", err)
	}
	if cfg.Device.Path != "/dev/sr0" || cfg.Output.Format != "wav" {
		t.Fatalf("unexpected sample values %+v", cfg)
	}
}

func TestCreateSampleWritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	if err := config.CreateSample(path); err != nil {
		t.Fatalf("CreateSample: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read sample: %v", err)
	}
	if string(data) != config.SampleConfig() {
		t.Fatal("written sample differs from embedded sample")
	}
}

func TestEnsureDirectories(t *testing.T) {
	root := t.TempDir()
	cfg := config.Default()
	cfg.Output.Dir = filepath.Join(root, "out")
	cfg.Paths.StateDir = filepath.Join(root, "state")
	cfg.Catalog.Path = filepath.Join(root, "db", "catalog.db")
	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories: %v", err)
	}
	for _, dir := range []string{cfg.Output.Dir, cfg.Paths.StateDir, filepath.Dir(cfg.Catalog.Path)} {
		if info, err := os.Stat(dir); err != nil || !info.IsDir() {
			t.Fatalf("expected directory %s", dir)
		}
	}
}
