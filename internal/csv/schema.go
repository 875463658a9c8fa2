package csv

import (
	"fmt"
	"strings"

	"github.com/aleister1102/datadiff/internal/models"
)

const (
	// displaySampleValues bounds how many samples a ColumnDefinition retains.
	displaySampleValues = 10
	// renameScoreThreshold is the composite score above which a deleted+added
	// column pair is promoted to a rename.
	renameScoreThreshold = 0.7
)

// SchemaBuilder derives and compares CSV schemas.
type SchemaBuilder struct {
	heuristics *Heuristics
}

// NewSchemaBuilder creates a new schema builder
func NewSchemaBuilder(heuristics *Heuristics) *SchemaBuilder {
	return &SchemaBuilder{heuristics: heuristics}
}

// BuildSchema builds a CsvSchema from parsed rows. Ragged rows are tolerated:
// one column definition is produced per index up to the widest row.
func (sb *SchemaBuilder) BuildSchema(rows [][]string, hasHeader *bool) models.CsvSchema {
	if len(rows) == 0 {
		return models.CsvSchema{HeaderRow: -1}
	}

	headerPresent := sb.heuristics.DetectHeader(rows)
	if hasHeader != nil {
		headerPresent = *hasHeader
	}

	headerRow := -1
	dataRows := rows
	var headerValues []string
	if headerPresent {
		headerRow = 0
		headerValues = rows[0]
		dataRows = rows[1:]
	}

	maxWidth := 0
	for _, row := range rows {
		if len(row) > maxWidth {
			maxWidth = len(row)
		}
	}

	columns := make([]models.ColumnDefinition, 0, maxWidth)
	for idx := 0; idx < maxWidth; idx++ {
		samples := collectColumnSamples(dataRows, idx, typeSampleValues)

		display := samples
		if len(display) > displaySampleValues {
			display = display[:displaySampleValues]
		}

		columns = append(columns, models.ColumnDefinition{
			Index:   idx,
			Name:    columnName(headerValues, idx),
			Type:    sb.heuristics.InferColumnType(samples),
			Samples: display,
		})
	}

	return models.CsvSchema{
		Columns:   columns,
		HasHeader: headerPresent,
		HeaderRow: headerRow,
	}
}

// CompareSchemas reports column-level differences between two schemas.
// With detectRenames enabled, matching deleted+added pairs are promoted to a
// single rename when their composite similarity clears the threshold.
func (sb *SchemaBuilder) CompareSchemas(left, right models.CsvSchema, detectRenames bool) []models.SchemaChange {
	var changes []models.SchemaChange

	rightByName := make(map[string]models.ColumnDefinition, len(right.Columns))
	for _, col := range right.Columns {
		rightByName[col.Name] = col
	}
	leftByName := make(map[string]models.ColumnDefinition, len(left.Columns))
	for _, col := range left.Columns {
		leftByName[col.Name] = col
	}

	var deleted []models.ColumnDefinition
	for _, leftCol := range left.Columns {
		rightCol, matched := rightByName[leftCol.Name]
		if !matched {
			deleted = append(deleted, leftCol)
			continue
		}

		if leftCol.Index != rightCol.Index {
			changes = append(changes, models.SchemaChange{
				Type:       models.SchemaColumnReordered,
				LeftIndex:  leftCol.Index,
				RightIndex: rightCol.Index,
				ColumnName: leftCol.Name,
			})
		}
		if leftCol.Type != rightCol.Type {
			changes = append(changes, models.SchemaChange{
				Type:       models.SchemaColumnTypeChanged,
				LeftIndex:  leftCol.Index,
				RightIndex: rightCol.Index,
				ColumnName: leftCol.Name,
				OldType:    leftCol.Type,
				NewType:    rightCol.Type,
			})
		}
	}

	var added []models.ColumnDefinition
	for _, rightCol := range right.Columns {
		if _, matched := leftByName[rightCol.Name]; !matched {
			added = append(added, rightCol)
		}
	}

	if detectRenames {
		var renames []models.SchemaChange
		deleted, added, renames = sb.promoteRenames(deleted, added)
		changes = append(changes, renames...)
	}

	for _, col := range deleted {
		changes = append(changes, models.SchemaChange{
			Type:       models.SchemaColumnDeleted,
			LeftIndex:  col.Index,
			RightIndex: -1,
			ColumnName: col.Name,
			OldType:    col.Type,
		})
	}
	for _, col := range added {
		changes = append(changes, models.SchemaChange{
			Type:       models.SchemaColumnAdded,
			LeftIndex:  -1,
			RightIndex: col.Index,
			ColumnName: col.Name,
			NewType:    col.Type,
		})
	}

	return changes
}

// promoteRenames repeatedly pairs the best-scoring deleted+added columns into
// rename changes until no pair clears the threshold.
func (sb *SchemaBuilder) promoteRenames(deleted, added []models.ColumnDefinition) ([]models.ColumnDefinition, []models.ColumnDefinition, []models.SchemaChange) {
	var renames []models.SchemaChange

	for len(deleted) > 0 && len(added) > 0 {
		bestScore := 0.0
		bestDel, bestAdd := -1, -1

		for di, delCol := range deleted {
			for ai, addCol := range added {
				score := sb.renameScore(delCol, addCol)
				if score > bestScore {
					bestScore = score
					bestDel, bestAdd = di, ai
				}
			}
		}

		if bestScore <= renameScoreThreshold {
			break
		}

		delCol := deleted[bestDel]
		addCol := added[bestAdd]
		renames = append(renames, models.SchemaChange{
			Type:       models.SchemaColumnRenamed,
			LeftIndex:  delCol.Index,
			RightIndex: addCol.Index,
			OldName:    delCol.Name,
			NewName:    addCol.Name,
			OldType:    delCol.Type,
			NewType:    addCol.Type,
			Confidence: bestScore,
		})

		deleted = append(deleted[:bestDel], deleted[bestDel+1:]...)
		added = append(added[:bestAdd], added[bestAdd+1:]...)
	}

	return deleted, added, renames
}

// renameScore blends name similarity (40%), type equality (30%), and sample
// overlap (30%).
func (sb *SchemaBuilder) renameScore(left, right models.ColumnDefinition) float64 {
	nameSimilarity := sb.heuristics.ComputeStringSimilarity(
		strings.ToLower(left.Name), strings.ToLower(right.Name))

	typeMatch := 0.0
	if left.Type == right.Type {
		typeMatch = 1.0
	}

	sampleSimilarity := sb.heuristics.ComputeJaccardSimilarity(left.Samples, right.Samples)

	return nameSimilarity*0.4 + typeMatch*0.3 + sampleSimilarity*0.3
}

// BuildColumnMapping maps left column indices to right column indices.
// With headers on both sides the mapping is by name; otherwise it is
// positional up to the shorter schema, leaving trailing columns of the wider
// side unmapped.
func (sb *SchemaBuilder) BuildColumnMapping(left, right models.CsvSchema) map[int]int {
	mapping := make(map[int]int)

	if left.HasHeader && right.HasHeader {
		rightByName := make(map[string]int, len(right.Columns))
		for _, col := range right.Columns {
			rightByName[col.Name] = col.Index
		}
		for _, col := range left.Columns {
			if rightIdx, ok := rightByName[col.Name]; ok {
				mapping[col.Index] = rightIdx
			}
		}
		return mapping
	}

	count := len(left.Columns)
	if len(right.Columns) < count {
		count = len(right.Columns)
	}
	for idx := 0; idx < count; idx++ {
		mapping[idx] = idx
	}
	return mapping
}

// collectColumnSamples gathers up to limit non-empty values of one column
func collectColumnSamples(rows [][]string, columnIndex, limit int) []string {
	samples := make([]string, 0, limit)
	for _, row := range rows {
		if columnIndex >= len(row) {
			continue
		}
		value := row[columnIndex]
		if strings.TrimSpace(value) == "" {
			continue
		}
		samples = append(samples, value)
		if len(samples) >= limit {
			break
		}
	}
	return samples
}

// columnName resolves the display name of a column
func columnName(headerValues []string, idx int) string {
	if idx < len(headerValues) && strings.TrimSpace(headerValues[idx]) != "" {
		return headerValues[idx]
	}
	return fmt.Sprintf("column_%d", idx+1)
}
