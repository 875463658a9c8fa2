package differ

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/aleister1102/datadiff/internal/common/errorwrapper"
	"github.com/aleister1102/datadiff/internal/config"
	"github.com/aleister1102/datadiff/internal/csv"
	"github.com/aleister1102/datadiff/internal/detector"
	"github.com/aleister1102/datadiff/internal/jsondiff"
	"github.com/aleister1102/datadiff/internal/limiter"
	"github.com/aleister1102/datadiff/internal/models"
	"github.com/aleister1102/datadiff/internal/textdiff"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// DiffRequest describes one comparison. Zero-value Mode and Format fall back
// to the configured defaults; FormatAuto triggers detection over both inputs.
type DiffRequest struct {
	Left    string
	Right   string
	Mode    models.DiffMode
	Format  models.InputFormat
	Options config.DiffOptions
}

// Result is the outcome of one comparison. The CSV-specific slices are
// populated only when the CSV path ran; Detection is set only when the
// format was auto-detected.
type Result struct {
	models.DiffResult
	Detection     *models.FormatDetection `json:"detection,omitempty"`
	SchemaChanges []models.SchemaChange   `json:"schema_changes,omitempty"`
	CellChanges   []models.CellChange     `json:"cell_changes,omitempty"`
	ParseWarnings []models.ParseError     `json:"parse_warnings,omitempty"`
}

// DataDiffer orchestrates comparisons: it validates inputs, resolves the
// format, and dispatches to the text, JSON, or CSV engine.
type DataDiffer struct {
	config    config.DiffConfig
	validator *InputValidator
	detector  *detector.FormatDetector
	limiter   *limiter.ResourceLimiter
	logger    zerolog.Logger
}

// DataDifferBuilder constructs DataDiffer instances
type DataDifferBuilder struct {
	logger     zerolog.Logger
	diffCfg    config.DiffConfig
	limiterCfg config.ResourceLimiterConfig
}

// NewDataDifferBuilder creates a builder with default configuration
func NewDataDifferBuilder(logger zerolog.Logger) *DataDifferBuilder {
	return &DataDifferBuilder{
		logger:  logger,
		diffCfg: config.NewDefaultDiffConfig(),
	}
}

// WithDiffConfig sets the diff configuration
func (b *DataDifferBuilder) WithDiffConfig(cfg config.DiffConfig) *DataDifferBuilder {
	b.diffCfg = cfg
	return b
}

// WithResourceLimiterConfig sets the resource limiter configuration
func (b *DataDifferBuilder) WithResourceLimiterConfig(cfg config.ResourceLimiterConfig) *DataDifferBuilder {
	b.limiterCfg = cfg
	return b
}

// Build validates the configuration and creates the DataDiffer
func (b *DataDifferBuilder) Build() (*DataDiffer, error) {
	if b.diffCfg.MaxInputSizeMB <= 0 {
		return nil, errorwrapper.NewError("max input size must be positive, got %d", b.diffCfg.MaxInputSizeMB)
	}

	moduleLogger := b.logger.With().Str("component", "DataDiffer").Logger()
	return &DataDiffer{
		config:    b.diffCfg,
		validator: NewInputValidator(b.diffCfg.MaxInputSizeMB),
		detector:  detector.NewFormatDetector(),
		limiter:   limiter.NewResourceLimiter(b.limiterCfg, b.logger),
		logger:    moduleLogger,
	}, nil
}

// Diff runs one comparison end to end
func (dd *DataDiffer) Diff(request DiffRequest) (*Result, error) {
	startTime := time.Now()

	if err := dd.validator.Validate(request); err != nil {
		return nil, err
	}

	mode := request.Mode
	if mode == "" {
		mode = models.DiffMode(dd.config.Mode)
	}
	if mode != models.ModeAdvanced {
		mode = models.ModeSimple
	}

	result := &Result{}
	format := dd.resolveFormat(request, result)
	runID := uuid.New().String()

	dd.logger.Info().
		Str("run_id", runID).
		Str("format", string(format)).
		Str("mode", string(mode)).
		Int("left_bytes", len(request.Left)).
		Int("right_bytes", len(request.Right)).
		Msg("Starting diff")

	var err error
	switch format {
	case models.FormatJSON:
		err = dd.diffJSON(request, mode, result)
	case models.FormatCSV:
		err = dd.diffCSV(request, mode, result)
	default:
		err = dd.diffText(request, mode, result)
	}
	if err != nil {
		return nil, err
	}

	result.RunID = runID
	result.Format = string(format)
	result.ProcessingTimeMs = time.Since(startTime).Milliseconds()

	dd.logger.Info().
		Str("run_id", runID).
		Int("changes", len(result.Changes)).
		Int64("duration_ms", result.ProcessingTimeMs).
		Msg("Diff completed")

	return result, nil
}

// resolveFormat returns the explicit format, or detects one over both inputs
// when the request (or the configured default) asks for auto detection.
func (dd *DataDiffer) resolveFormat(request DiffRequest, result *Result) models.InputFormat {
	format := request.Format
	if format == "" {
		format = models.InputFormat(dd.config.Format)
	}

	switch format {
	case models.FormatJSON, models.FormatCSV, models.FormatText:
		return format
	}

	detection := dd.detector.DetectFormatFromPair(request.Left, request.Right)
	result.Detection = &detection
	dd.logger.Debug().
		Str("format", string(detection.Format)).
		Float64("confidence", detection.Confidence).
		Str("reason", detection.Reason).
		Msg("Auto-detected input format")
	return detection.Format
}

func (dd *DataDiffer) diffJSON(request DiffRequest, mode models.DiffMode, result *Result) error {
	jsonDiffer := jsondiff.NewDiffer(jsondiff.Options{
		Mode:             mode,
		IgnoreKeyOrder:   request.Options.IgnoreKeyOrder,
		IgnoreFormatting: request.Options.IgnoreFormatting,
	}, dd.logger)

	diffResult, err := jsonDiffer.Diff(request.Left, request.Right)
	if err != nil {
		return err
	}
	result.DiffResult = *diffResult
	return nil
}

func (dd *DataDiffer) diffCSV(request DiffRequest, mode models.DiffMode, result *Result) error {
	options := csv.DiffOptions{
		Mode:                mode,
		Delimiter:           request.Options.Delimiter,
		HasHeader:           request.Options.HasHeader,
		IgnoreHeader:        request.Options.IgnoreHeader,
		KeyColumns:          request.Options.KeyColumns,
		MatchStrategy:       models.MatchStrategy(request.Options.MatchStrategy),
		DetectRenames:       request.Options.DetectRenames,
		SimilarityThreshold: request.Options.SimilarityThreshold,
		IgnoreCase:          request.Options.IgnoreCase,
		IgnoreWhitespace:    request.Options.IgnoreWhitespace,
	}
	if options.MatchStrategy == "" {
		options.MatchStrategy = models.MatchByPosition
	}

	csvResult, err := csv.NewDiffer(dd.logger).Diff(request.Left, request.Right, options)
	if err != nil {
		return err
	}
	result.DiffResult = csvResult.DiffResult
	result.SchemaChanges = csvResult.SchemaChanges
	result.CellChanges = csvResult.CellChanges
	result.ParseWarnings = csvResult.ParseWarnings
	return nil
}

// diffText runs line diffing in simple mode and char diffing in advanced
// mode. Both allocate a DP table, so the limiter vets the sequence lengths
// before the computation starts.
func (dd *DataDiffer) diffText(request DiffRequest, mode models.DiffMode, result *Result) error {
	textDiffer := textdiff.NewTextDiffer(textdiff.Options{
		IgnoreCase:       request.Options.IgnoreCase,
		IgnoreWhitespace: request.Options.IgnoreWhitespace,
		IgnoreBlankLines: request.Options.IgnoreBlankLines,
	}, dd.logger)

	if mode == models.ModeAdvanced {
		leftLen := utf8.RuneCountInString(request.Left)
		rightLen := utf8.RuneCountInString(request.Right)
		if err := dd.limiter.CheckAll(leftLen, rightLen); err != nil {
			return errorwrapper.WrapError(err, "char diff rejected by resource limiter")
		}
		result.DiffResult = *textDiffer.DiffChars(request.Left, request.Right)
		return nil
	}

	leftLines := strings.Count(request.Left, "\n") + 1
	rightLines := strings.Count(request.Right, "\n") + 1
	if err := dd.limiter.CheckAll(leftLines, rightLines); err != nil {
		return errorwrapper.WrapError(err, "line diff rejected by resource limiter")
	}
	result.DiffResult = *textDiffer.DiffLines(request.Left, request.Right)
	return nil
}
