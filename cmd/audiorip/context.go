package main

import (
	"log/slog"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"audiorip/internal/config"
	"audiorip/internal/logging"
)

// globalFlags holds the persistent flags shared by every command.
type globalFlags struct {
	config  string
	device  string
	verbose bool
	quiet   bool
}

type commandContext struct {
	flags *globalFlags

	configOnce sync.Once
	config     *config.Config
	configErr  error

	loggerOnce sync.Once
	logger     *slog.Logger
	loggerErr  error
}

func newCommandContext(flags *globalFlags) *commandContext {
	return &commandContext{flags: flags}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		cfg, _, _, err := config.Load(strings.TrimSpace(c.flags.config))
		if err != nil {
			c.configErr = err
			return
		}
		if device := strings.TrimSpace(c.flags.device); device != "" {
			cfg.Device.Path = device
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

// logLevel maps -v/-q onto a level override; empty keeps the configured level.
func (c *commandContext) logLevel() string {
	switch {
	case c.flags.verbose:
		return "debug"
	case c.flags.quiet:
		return "error"
	default:
		return ""
	}
}

func (c *commandContext) ensureLogger() (*slog.Logger, error) {
	c.loggerOnce.Do(func() {
		cfg, err := c.ensureConfig()
		if err != nil {
			c.loggerErr = err
			return
		}
		c.logger, c.loggerErr = logging.NewFromConfig(cfg, c.logLevel())
	})
	return c.logger, c.loggerErr
}

func (c *commandContext) devicePath() string {
	if cfg, err := c.ensureConfig(); err == nil {
		return cfg.Device.Path
	}
	if device := strings.TrimSpace(c.flags.device); device != "" {
		return device
	}
	return config.Default().Device.Path
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}
