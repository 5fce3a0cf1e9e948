package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Device contains optical drive settings.
type Device struct {
	Path               string `toml:"path"`
	SpinUp             bool   `toml:"spin_up"`
	SpinDownOnExit     bool   `toml:"spin_down_on_exit"`
	WaitForMedia       bool   `toml:"wait_for_media"`
	WaitTimeoutSeconds int    `toml:"wait_timeout_seconds"`
}

// Output contains settings for the files a rip produces.
type Output struct {
	Dir             string `toml:"dir"`
	Format          string `toml:"format"`
	NameFormat      string `toml:"name_format"`
	ContinueOnError bool   `toml:"continue_on_error"`
	Overwrite       bool   `toml:"overwrite"`
}

// Extraction contains streaming extractor settings.
type Extraction struct {
	// ChunkFrames is the number of frames requested per read (default 75,
	// one second of audio).
	ChunkFrames int `toml:"chunk_frames"`
}

// Catalog contains configuration for the rip history database.
type Catalog struct {
	Enabled bool   `toml:"enabled"`
	Path    string `toml:"path"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
	// File, when set, receives a copy of every log line.
	File string `toml:"file"`
}

// Paths contains directories used for runtime state.
type Paths struct {
	StateDir string `toml:"state_dir"`
}

// Config encapsulates all configuration values for audiorip.
//
// Configuration sections by subsystem:
//   - Device: drive path, spin-up/down, media wait
//   - Output: destination directory, container format, naming
//   - Extraction: chunk size for the streaming extractor
//   - Catalog: sqlite rip history
//   - Logging: log format, level, optional file
//   - Paths: state directory for lock files
type Config struct {
	Device     Device     `toml:"device"`
	Output     Output     `toml:"output"`
	Extraction Extraction `toml:"extraction"`
	Catalog    Catalog    `toml:"catalog"`
	Logging    Logging    `toml:"logging"`
	Paths      Paths      `toml:"paths"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath(defaultConfigPath)
}

// Load locates, parses, and validates a configuration file. The returned config has all
// path fields expanded and normalized.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := expandPath(defaultConfigPath)
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("audiorip.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// EnsureDirectories creates the output and state directories.
func (c *Config) EnsureDirectories() error {
	for _, dir := range []string{c.Output.Dir, c.Paths.StateDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	if c.Catalog.Enabled {
		if err := os.MkdirAll(filepath.Dir(c.Catalog.Path), 0o755); err != nil {
			return fmt.Errorf("create catalog directory: %w", err)
		}
	}
	return nil
}

// TrackFileName renders the output file name for a 1-based track number,
// without the extension.
func (c *Config) TrackFileName(track int) string {
	return fmt.Sprintf(c.Output.NameFormat, track)
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

func defaultStateDir() string {
	if base, ok := os.LookupEnv("XDG_STATE_HOME"); ok && strings.TrimSpace(base) != "" {
		return filepath.Join(base, "audiorip")
	}
	return defaultStateDirFallback
}

// SampleConfig returns the embedded sample configuration.
func SampleConfig() string {
	return sampleConfig
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
