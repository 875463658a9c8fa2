package csv

import (
	"strings"

	"github.com/aleister1102/datadiff/internal/models"
	"github.com/rs/zerolog"
)

// parseState tracks the tokenizer position relative to quoting.
type parseState int

const (
	stateStartField parseState = iota
	stateInField
	stateInQuotedField
	stateQuoteInQuotedField
)

const (
	quoteChar        = '"'
	defaultDelimiter = ","
	// AutoDelimiter requests delimiter detection during parsing.
	AutoDelimiter = "auto"
)

// ParseOptions control CSV tokenization and schema building.
type ParseOptions struct {
	// Delimiter is a literal delimiter or AutoDelimiter for detection.
	Delimiter string
	// HasHeader forces the header decision; nil means auto-detect.
	HasHeader *bool
}

// DefaultParseOptions returns parse options with delimiter detection enabled
func DefaultParseOptions() ParseOptions {
	return ParseOptions{Delimiter: AutoDelimiter}
}

// Parser tokenizes CSV text into rows and builds the column schema.
// Malformed quoting is recovered from and reported as warnings rather than
// aborting the parse.
type Parser struct {
	heuristics    *Heuristics
	schemaBuilder *SchemaBuilder
	logger        zerolog.Logger
}

// NewParser creates a new CSV parser
func NewParser(logger zerolog.Logger) *Parser {
	heuristics := NewHeuristics()
	return &Parser{
		heuristics:    heuristics,
		schemaBuilder: NewSchemaBuilder(heuristics),
		logger:        logger.With().Str("component", "CSVParser").Logger(),
	}
}

// Parse tokenizes the input and derives its schema.
func (p *Parser) Parse(input string, options ParseOptions) (*models.ParsedCSV, error) {
	input = strings.TrimPrefix(input, "\ufeff")
	input = normalizeLineEndings(input)

	delimiter := p.resolveDelimiter(input, options.Delimiter)

	rows, parseErrors := p.tokenize(input, delimiter)
	schema := p.schemaBuilder.BuildSchema(rows, options.HasHeader)

	columnCount := 0
	for _, row := range rows {
		if len(row) > columnCount {
			columnCount = len(row)
		}
	}

	return &models.ParsedCSV{
		Rows:   rows,
		Schema: schema,
		Metadata: models.CSVMetadata{
			Delimiter:   delimiter,
			QuoteChar:   string(quoteChar),
			RowCount:    len(rows),
			ColumnCount: columnCount,
			HasHeader:   schema.HasHeader,
			Encoding:    "utf-8",
		},
		Errors: parseErrors,
	}, nil
}

// resolveDelimiter picks the configured delimiter or the best detected one
func (p *Parser) resolveDelimiter(input, configured string) string {
	if configured != "" && configured != AutoDelimiter {
		return configured
	}

	scores := p.heuristics.DetectDelimiter(input)
	if len(scores) == 0 || scores[0].Confidence == 0 {
		return defaultDelimiter
	}

	p.logger.Debug().
		Str("delimiter", scores[0].Delimiter).
		Float64("confidence", scores[0].Confidence).
		Msg("Detected delimiter")
	return scores[0].Delimiter
}

// tokenize runs the quote-aware state machine over the input.
func (p *Parser) tokenize(input, delimiter string) ([][]string, []models.ParseError) {
	delim := []rune(delimiter)[0]

	var rows [][]string
	var parseErrors []models.ParseError
	var field strings.Builder
	var row []string

	state := stateStartField
	line := 1
	column := 0

	endField := func() {
		row = append(row, field.String())
		field.Reset()
		state = stateStartField
	}
	endRow := func() {
		endField()
		// Rows produced by blank lines carry a single empty field; drop them.
		if len(row) != 1 || row[0] != "" {
			rows = append(rows, row)
		}
		row = nil
	}

	for _, r := range input {
		column++

		switch state {
		case stateStartField:
			switch r {
			case quoteChar:
				state = stateInQuotedField
			case delim:
				endField()
			case '\n':
				endRow()
				line++
				column = 0
			default:
				field.WriteRune(r)
				state = stateInField
			}

		case stateInField:
			switch r {
			case delim:
				endField()
			case '\n':
				endRow()
				line++
				column = 0
			default:
				field.WriteRune(r)
			}

		case stateInQuotedField:
			if r == quoteChar {
				state = stateQuoteInQuotedField
			} else {
				field.WriteRune(r)
				if r == '\n' {
					line++
					column = 0
				}
			}

		case stateQuoteInQuotedField:
			switch r {
			case quoteChar:
				// Doubled quote is the escape for a quote inside a quoted field.
				field.WriteRune(quoteChar)
				state = stateInQuotedField
			case delim:
				endField()
			case '\n':
				endRow()
				line++
				column = 0
			default:
				// Content after a closing quote is malformed; keep the
				// character as field content and continue unquoted.
				parseErrors = append(parseErrors, models.ParseError{
					Line:     line,
					Column:   column,
					Message:  "unexpected character after closing quote",
					Severity: models.SeverityWarning,
				})
				field.WriteRune(r)
				state = stateInField
			}
		}
	}

	if state == stateInQuotedField {
		parseErrors = append(parseErrors, models.ParseError{
			Line:     line,
			Column:   column,
			Message:  "unterminated quoted field",
			Severity: models.SeverityWarning,
		})
	}

	// Flush the trailing row when input does not end with a newline.
	if field.Len() > 0 || len(row) > 0 || state == stateInQuotedField || state == stateQuoteInQuotedField {
		endRow()
	}

	return rows, parseErrors
}

// FormatRow is the structural inverse of tokenization: it re-quotes any cell
// containing the delimiter, a quote, or a newline, doubling embedded quotes.
func FormatRow(row []string, delimiter string) string {
	cells := make([]string, len(row))
	for i, cell := range row {
		cells[i] = formatCell(cell, delimiter)
	}
	return strings.Join(cells, delimiter)
}

func formatCell(cell, delimiter string) string {
	needsQuoting := strings.Contains(cell, delimiter) ||
		strings.Contains(cell, string(quoteChar)) ||
		strings.Contains(cell, "\n")
	if !needsQuoting {
		return cell
	}
	return `"` + strings.ReplaceAll(cell, `"`, `""`) + `"`
}

// normalizeLineEndings folds \r\n and bare \r into \n
func normalizeLineEndings(input string) string {
	input = strings.ReplaceAll(input, "\r\n", "\n")
	return strings.ReplaceAll(input, "\r", "\n")
}
