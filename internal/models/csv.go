package models

// ColumnType is the inferred type of a CSV column.
type ColumnType string

const (
	ColumnTypeString  ColumnType = "string"
	ColumnTypeInteger ColumnType = "integer"
	ColumnTypeFloat   ColumnType = "float"
	ColumnTypeBoolean ColumnType = "boolean"
	ColumnTypeDate    ColumnType = "date"
	ColumnTypeNull    ColumnType = "null"
	ColumnTypeMixed   ColumnType = "mixed"
)

// ColumnDefinition describes one column of a parsed CSV.
type ColumnDefinition struct {
	Index   int        `json:"index"`
	Name    string     `json:"name"`
	Type    ColumnType `json:"type"`
	Samples []string   `json:"samples,omitempty"`
}

// CsvSchema describes the column layout of a parsed CSV.
// HeaderRow is the index of the header row, or -1 when no header exists.
type CsvSchema struct {
	Columns   []ColumnDefinition `json:"columns"`
	HasHeader bool               `json:"has_header"`
	HeaderRow int                `json:"header_row"`
}

// ColumnNames returns the ordered column names of the schema.
func (s CsvSchema) ColumnNames() []string {
	names := make([]string, len(s.Columns))
	for i, col := range s.Columns {
		names[i] = col.Name
	}
	return names
}

// ParseErrorSeverity classifies parse anomalies.
type ParseErrorSeverity string

const (
	// SeverityWarning marks recoverable anomalies; parsing continued.
	SeverityWarning ParseErrorSeverity = "warning"
	// SeverityError marks fatal anomalies.
	SeverityError ParseErrorSeverity = "error"
)

// ParseError records a structural anomaly found while tokenizing CSV input.
type ParseError struct {
	Line     int                `json:"line"`
	Column   int                `json:"column"`
	Message  string             `json:"message"`
	Severity ParseErrorSeverity `json:"severity"`
}

// CSVMetadata captures how the input was interpreted during parsing.
type CSVMetadata struct {
	Delimiter   string `json:"delimiter"`
	QuoteChar   string `json:"quote_char"`
	RowCount    int    `json:"row_count"`
	ColumnCount int    `json:"column_count"`
	HasHeader   bool   `json:"has_header"`
	Encoding    string `json:"encoding"`
}

// ParsedCSV is the output of the CSV parser: raw rows plus derived schema.
type ParsedCSV struct {
	Rows     [][]string  `json:"rows"`
	Schema   CsvSchema   `json:"schema"`
	Metadata CSVMetadata `json:"metadata"`
	Errors   []ParseError `json:"errors,omitempty"`
}

// SchemaChangeType identifies a column-level schema difference.
type SchemaChangeType string

const (
	SchemaColumnAdded       SchemaChangeType = "column_added"
	SchemaColumnDeleted     SchemaChangeType = "column_deleted"
	SchemaColumnReordered   SchemaChangeType = "column_reordered"
	SchemaColumnTypeChanged SchemaChangeType = "column_type_changed"
	SchemaColumnRenamed     SchemaChangeType = "column_renamed"
)

// SchemaChange records one difference between two CSV schemas.
// Indices are -1 when a side has no corresponding column.
type SchemaChange struct {
	Type       SchemaChangeType `json:"type"`
	LeftIndex  int              `json:"left_index"`
	RightIndex int              `json:"right_index"`
	ColumnName string           `json:"column_name,omitempty"`
	OldName    string           `json:"old_name,omitempty"`
	NewName    string           `json:"new_name,omitempty"`
	OldType    ColumnType       `json:"old_type,omitempty"`
	NewType    ColumnType       `json:"new_type,omitempty"`
	Confidence float64          `json:"confidence,omitempty"`
}
