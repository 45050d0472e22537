package config

const (
	defaultMaxTotalBytes   = 100 << 20
	defaultMaxEntries      = 10_000
	defaultEnhancedParsing = true
	defaultLogFormat       = "console"
	defaultLogLevel        = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Parser: Parser{
			Strict:          false,
			EnhancedParsing: defaultEnhancedParsing,
			MaxTotalBytes:   defaultMaxTotalBytes,
			MaxEntries:      defaultMaxEntries,
		},
		Logging: Logging{
			Level:  defaultLogLevel,
			Format: defaultLogFormat,
		},
	}
}
