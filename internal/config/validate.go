package config

import (
	"errors"
	"fmt"
	"strings"

	"audiorip/internal/msf"
)

// maxChunkFrames bounds the read buffer to one minute of audio.
const maxChunkFrames = 60 * msf.FramesPerSecond

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateDevice(); err != nil {
		return err
	}
	if err := c.validateOutput(); err != nil {
		return err
	}
	if err := c.validateExtraction(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateDevice() error {
	if strings.TrimSpace(c.Device.Path) == "" {
		return errors.New("device.path must be set")
	}
	return nil
}

func (c *Config) validateOutput() error {
	switch c.Output.Format {
	case "wav", "wave", "raw", "pcm", "cdda":
	default:
		return fmt.Errorf("output.format: unsupported value %q (want wav or raw)", c.Output.Format)
	}
	if strings.Count(c.Output.NameFormat, "%") != 1 || strings.Contains(fmt.Sprintf(c.Output.NameFormat, 1), "%!") {
		return fmt.Errorf("output.name_format %q must contain exactly one integer verb such as %%d", c.Output.NameFormat)
	}
	if strings.ContainsAny(c.Output.NameFormat, `/\`) {
		return fmt.Errorf("output.name_format %q must not contain path separators", c.Output.NameFormat)
	}
	return nil
}

func (c *Config) validateExtraction() error {
	if c.Extraction.ChunkFrames < 1 {
		return fmt.Errorf("extraction.chunk_frames must be positive, got %d", c.Extraction.ChunkFrames)
	}
	if c.Extraction.ChunkFrames > maxChunkFrames {
		return fmt.Errorf("extraction.chunk_frames must be at most %d, got %d", maxChunkFrames, c.Extraction.ChunkFrames)
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Level {
	case "debug", "info", "warn", "warning", "error":
		return nil
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
}
