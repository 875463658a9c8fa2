package models

// InputFormat classifies the textual format of a diff input.
type InputFormat string

const (
	FormatJSON InputFormat = "json"
	FormatCSV  InputFormat = "csv"
	FormatText InputFormat = "text"
	// FormatAuto requests detection before dispatch.
	FormatAuto InputFormat = "auto"
)

// FormatDetection is the outcome of classifying a raw input.
type FormatDetection struct {
	Format     InputFormat `json:"format"`
	Confidence float64     `json:"confidence"`
	Reason     string      `json:"reason"`
}

// DiffMode selects the comparison depth.
type DiffMode string

const (
	// ModeSimple compares at a coarse granularity (line level, depth-limited JSON).
	ModeSimple DiffMode = "simple"
	// ModeAdvanced compares at full depth (char level, recursive JSON, cell-level CSV).
	ModeAdvanced DiffMode = "advanced"
)

// MatchStrategy selects how CSV rows are paired across the two inputs.
type MatchStrategy string

const (
	MatchByPosition   MatchStrategy = "position"
	MatchByPrimaryKey MatchStrategy = "primary_key"
	MatchByFuzzy      MatchStrategy = "fuzzy"
)
