package config

const (
	defaultConfigPath         = "~/.config/audiorip/config.toml"
	defaultDevicePath         = "/dev/sr0"
	defaultWaitTimeoutSeconds = 120
	defaultOutputDir          = "."
	defaultOutputFormat       = "wav"
	defaultNameFormat         = "track%d"
	defaultChunkFrames        = 75
	defaultCatalogPath        = "~/.local/share/audiorip/catalog.db"
	defaultStateDirFallback   = "~/.local/state/audiorip"
	defaultLogFormat          = "console"
	defaultLogLevel           = "info"
	// DeviceEnvVar overrides device.path when the config leaves it empty.
	DeviceEnvVar = "AUDIORIP_DEVICE"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Device: Device{
			Path:               defaultDevicePath,
			SpinUp:             true,
			SpinDownOnExit:     true,
			WaitTimeoutSeconds: defaultWaitTimeoutSeconds,
		},
		Output: Output{
			Dir:             defaultOutputDir,
			Format:          defaultOutputFormat,
			NameFormat:      defaultNameFormat,
			ContinueOnError: true,
		},
		Extraction: Extraction{
			ChunkFrames: defaultChunkFrames,
		},
		Catalog: Catalog{
			Enabled: true,
			Path:    defaultCatalogPath,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
		Paths: Paths{
			StateDir: defaultStateDir(),
		},
	}
}
