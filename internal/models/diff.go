package models

// ChangeType defines the kind of change a DiffChange represents.
type ChangeType string

const (
	// ChangeAdded indicates content present only on the right side.
	ChangeAdded ChangeType = "added"
	// ChangeDeleted indicates content present only on the left side.
	ChangeDeleted ChangeType = "deleted"
	// ChangeModified indicates content present on both sides with differences.
	ChangeModified ChangeType = "modified"
	// ChangeUnchanged indicates content identical on both sides.
	ChangeUnchanged ChangeType = "unchanged"
)

// DiffChange is one unit of comparison result.
// Line numbers are 1-indexed; 0 means the side does not participate.
// Left fields are populated only for deleted/modified/unchanged changes,
// right fields only for added/modified/unchanged.
type DiffChange struct {
	Type            ChangeType `json:"type"`
	LeftLineNumber  int        `json:"left_line_number,omitempty"`
	RightLineNumber int        `json:"right_line_number,omitempty"`
	LeftContent     string     `json:"left_content,omitempty"`
	RightContent    string     `json:"right_content,omitempty"`
}

// DiffStats tallies changes by type.
type DiffStats struct {
	Additions     int `json:"additions"`
	Deletions     int `json:"deletions"`
	Modifications int `json:"modifications"`
	Unchanged     int `json:"unchanged"`
}

// Add increments the counter matching the given change type.
func (ds *DiffStats) Add(ct ChangeType) {
	switch ct {
	case ChangeAdded:
		ds.Additions++
	case ChangeDeleted:
		ds.Deletions++
	case ChangeModified:
		ds.Modifications++
	case ChangeUnchanged:
		ds.Unchanged++
	}
}

// DiffResult holds the ordered changes of one comparison and their tally.
type DiffResult struct {
	Changes []DiffChange `json:"changes"`
	Stats   DiffStats    `json:"stats"`

	// Metadata about the invocation that produced this result.
	RunID            string `json:"run_id,omitempty"`
	Format           string `json:"format,omitempty"`
	ProcessingTimeMs int64  `json:"processing_time_ms,omitempty"`
}

// CellChange records a single differing cell inside a modified row.
type CellChange struct {
	ColumnIndex int    `json:"column_index"`
	ColumnName  string `json:"column_name,omitempty"`
	LeftValue   string `json:"left_value"`
	RightValue  string `json:"right_value"`
}

// RowMatch pairs a left row index with a right row index.
// An index of -1 means the row has no counterpart on that side.
type RowMatch struct {
	Type       ChangeType `json:"type"`
	LeftIndex  int        `json:"left_index"`
	RightIndex int        `json:"right_index"`
	Key        string     `json:"key,omitempty"`
	Similarity float64    `json:"similarity,omitempty"`
}

// CsvDiffResult extends DiffResult with schema-level findings.
type CsvDiffResult struct {
	DiffResult
	SchemaChanges []SchemaChange `json:"schema_changes,omitempty"`
	CellChanges   []CellChange   `json:"cell_changes,omitempty"`
	ParseWarnings []ParseError   `json:"parse_warnings,omitempty"`
}
