package log

type Config struct {
	// Level is the minimum enabled logging level: debug, info, warn, error.
	Level string `conf:"level" yaml:"level" json:"level"`

	// Format is the log encoding: json or console.
	Format string `conf:"format" yaml:"format" json:"format"`

	// Output is the log destination: stdout, stderr, or a file path.
	Output string `conf:"output" yaml:"output" json:"output"`

	// MaxSize is the maximum size in megabytes of a log file before rotation.
	// Only effective when Output is a file path.
	MaxSize int `conf:"max_size" yaml:"max_size" json:"max_size"`

	// MaxBackups is the maximum number of rotated log files to retain.
	MaxBackups int `conf:"max_backups" yaml:"max_backups" json:"max_backups"`

	// MaxAge is the maximum number of days to retain rotated log files.
	MaxAge int `conf:"max_age" yaml:"max_age" json:"max_age"`
}

func (c Config) withDefaults() Config {
	if c.Level == "" {
		c.Level = "info"
	}

	if c.Format == "" {
		c.Format = "json"
	}

	if c.Output == "" {
		c.Output = "stderr"
	}

	if c.MaxSize <= 0 {
		c.MaxSize = 100
	}

	if c.MaxBackups <= 0 {
		c.MaxBackups = 5
	}

	return c
}
