package config

// Default log settings
const (
	DefaultLogFile       = ""
	DefaultLogFormat     = "console"
	DefaultLogLevel      = "info"
	DefaultMaxLogBackups = 3
	DefaultMaxLogSizeMB  = 100
)

// Default diff settings
const (
	DefaultDiffMode            = "simple"
	DefaultDiffFormat          = "auto"
	DefaultMaxInputSizeMB      = 10
	DefaultDelimiter           = "auto"
	DefaultMatchStrategy       = "position"
	DefaultSimilarityThreshold = 0.8
)

// Default resource limiter settings
const (
	DefaultMaxMemoryMB        = 1024
	DefaultSystemMemThreshold = 0.9
	// DefaultMaxLCSCells bounds the m*n dynamic-programming table of the
	// line/char diff independently of the raw input size check.
	DefaultMaxLCSCells = 100_000_000
)
