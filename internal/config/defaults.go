package config

const (
	defaultStateDir           = "~/.local/share/hopper/state"
	defaultLogDir             = "~/.local/share/hopper/logs"
	defaultSecondsPerUnit     = 60.0
	defaultWindowKeep         = 10
	defaultJitterMaxMillis    = 1000
	defaultPollIntervalMillis = 500
	defaultLogFormat          = "console"
	defaultLogLevel           = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			StateDir: defaultStateDir,
			LogDir:   defaultLogDir,
		},
		Worker: Worker{
			SecondsPerUnit:  defaultSecondsPerUnit,
			WindowKeep:      defaultWindowKeep,
			JitterMaxMillis: defaultJitterMaxMillis,
		},
		Watch: Watch{
			PollIntervalMillis: defaultPollIntervalMillis,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
