package config

// DiffConfig defines configuration for the diff engine
type DiffConfig struct {
	Mode           string      `json:"mode,omitempty" yaml:"mode,omitempty" validate:"omitempty,diffmode"`
	Format         string      `json:"format,omitempty" yaml:"format,omitempty" validate:"omitempty,diffformat"`
	MaxInputSizeMB int         `json:"max_input_size_mb,omitempty" yaml:"max_input_size_mb,omitempty" validate:"min=1"`
	Options        DiffOptions `json:"options,omitempty" yaml:"options,omitempty"`
}

// DiffOptions holds per-format comparison options.
// Text options apply to line/char diffing, JSON options to structural JSON
// comparison, and the remaining fields to CSV parsing and row matching.
type DiffOptions struct {
	// Text
	IgnoreCase       bool `json:"ignore_case,omitempty" yaml:"ignore_case,omitempty"`
	IgnoreWhitespace bool `json:"ignore_whitespace,omitempty" yaml:"ignore_whitespace,omitempty"`
	IgnoreBlankLines bool `json:"ignore_blank_lines,omitempty" yaml:"ignore_blank_lines,omitempty"`

	// JSON
	IgnoreKeyOrder   bool `json:"ignore_key_order,omitempty" yaml:"ignore_key_order,omitempty"`
	IgnoreFormatting bool `json:"ignore_formatting,omitempty" yaml:"ignore_formatting,omitempty"`

	// CSV
	Delimiter           string   `json:"delimiter,omitempty" yaml:"delimiter,omitempty"`
	HasHeader           *bool    `json:"has_header,omitempty" yaml:"has_header,omitempty"`
	IgnoreHeader        bool     `json:"ignore_header,omitempty" yaml:"ignore_header,omitempty"`
	KeyColumns          []string `json:"key_columns,omitempty" yaml:"key_columns,omitempty"`
	MatchStrategy       string   `json:"match_strategy,omitempty" yaml:"match_strategy,omitempty" validate:"omitempty,matchstrategy"`
	DetectRenames       bool     `json:"detect_renames,omitempty" yaml:"detect_renames,omitempty"`
	SimilarityThreshold float64  `json:"similarity_threshold,omitempty" yaml:"similarity_threshold,omitempty" validate:"gte=0,lte=1"`
}

// NewDefaultDiffConfig creates default diff configuration
func NewDefaultDiffConfig() DiffConfig {
	return DiffConfig{
		Mode:           DefaultDiffMode,
		Format:         DefaultDiffFormat,
		MaxInputSizeMB: DefaultMaxInputSizeMB,
		Options:        NewDefaultDiffOptions(),
	}
}

// NewDefaultDiffOptions creates default diff options
func NewDefaultDiffOptions() DiffOptions {
	return DiffOptions{
		Delimiter:           DefaultDelimiter,
		MatchStrategy:       DefaultMatchStrategy,
		SimilarityThreshold: DefaultSimilarityThreshold,
	}
}
