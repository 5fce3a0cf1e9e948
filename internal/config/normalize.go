package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizeDevice(); err != nil {
		return err
	}
	if err := c.normalizeOutput(); err != nil {
		return err
	}
	if c.Extraction.ChunkFrames == 0 {
		c.Extraction.ChunkFrames = defaultChunkFrames
	}
	if err := c.normalizeCatalog(); err != nil {
		return err
	}
	if err := c.normalizePaths(); err != nil {
		return err
	}
	return c.normalizeLogging()
}

func (c *Config) normalizeDevice() error {
	c.Device.Path = strings.TrimSpace(c.Device.Path)
	if value, ok := os.LookupEnv(DeviceEnvVar); ok && strings.TrimSpace(value) != "" {
		if c.Device.Path == "" || c.Device.Path == defaultDevicePath {
			c.Device.Path = strings.TrimSpace(value)
		}
	}
	if c.Device.Path == "" {
		c.Device.Path = defaultDevicePath
	}
	if c.Device.WaitTimeoutSeconds <= 0 {
		c.Device.WaitTimeoutSeconds = defaultWaitTimeoutSeconds
	}
	return nil
}

func (c *Config) normalizeOutput() error {
	var err error
	if strings.TrimSpace(c.Output.Dir) == "" {
		c.Output.Dir = defaultOutputDir
	}
	if c.Output.Dir, err = expandPath(c.Output.Dir); err != nil {
		return fmt.Errorf("output.dir: %w", err)
	}
	c.Output.Format = strings.ToLower(strings.TrimSpace(c.Output.Format))
	if c.Output.Format == "" {
		c.Output.Format = defaultOutputFormat
	}
	c.Output.NameFormat = strings.TrimSpace(c.Output.NameFormat)
	if c.Output.NameFormat == "" {
		c.Output.NameFormat = defaultNameFormat
	}
	return nil
}

func (c *Config) normalizeCatalog() error {
	var err error
	if strings.TrimSpace(c.Catalog.Path) == "" {
		c.Catalog.Path = defaultCatalogPath
	}
	if c.Catalog.Path, err = expandPath(c.Catalog.Path); err != nil {
		return fmt.Errorf("catalog.path: %w", err)
	}
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.StateDir) == "" {
		c.Paths.StateDir = defaultStateDir()
	}
	if c.Paths.StateDir, err = expandPath(c.Paths.StateDir); err != nil {
		return fmt.Errorf("paths.state_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeLogging() error {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "", "console":
		c.Logging.Format = "console"
	case "json":
	default:
		c.Logging.Format = "console"
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	if strings.TrimSpace(c.Logging.File) != "" {
		var err error
		if c.Logging.File, err = expandPath(c.Logging.File); err != nil {
			return fmt.Errorf("logging.file: %w", err)
		}
	}
	return nil
}
