package parser

import (
	"fmt"
	"math"
	"strconv"

	"github.com/ukaji3/sheetchart-go/pkg/sheetchart/models"
	"github.com/xuri/excelize/v2"
)

// emptyHeader names columns whose header cell is blank.
const emptyHeader = "__EMPTY"

// ExtractRows decodes a sheet into header-keyed rows.
//
// The first non-empty row of the data region is the header. Every later row
// with at least one non-empty cell becomes a Row whose keys follow header
// order; empty cells are omitted rather than stored as empty strings.
func ExtractRows(f *excelize.File, sheetName string) ([]models.Row, error) {
	rows, err := f.GetRows(sheetName, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, err
	}

	b := FindDataBounds(rows)
	if b.Empty() {
		return nil, nil
	}

	headers := normalizeHeaders(rowSpan(rows[b.MinRow], b))

	var result []models.Row
	for rowIdx := b.MinRow + 1; rowIdx <= b.MaxRow; rowIdx++ {
		row := rows[rowIdx]
		var r models.Row

		for colIdx := b.MinCol; colIdx <= b.MaxCol && colIdx < len(row); colIdx++ {
			cellValue := row[colIdx]
			if cellValue == "" {
				continue
			}
			r.Set(headers[colIdx-b.MinCol], typedValue(f, sheetName, colIdx, rowIdx, cellValue))
		}

		if r.Len() > 0 {
			result = append(result, r)
		}
	}

	return result, nil
}

// rowSpan returns the cells of row inside b, padding missing trailing cells
// with "".
func rowSpan(row []string, b DataBounds) []string {
	span := make([]string, b.Width())
	for colIdx := b.MinCol; colIdx <= b.MaxCol && colIdx < len(row); colIdx++ {
		span[colIdx-b.MinCol] = row[colIdx]
	}
	return span
}

// normalizeHeaders turns header cells into distinct column names.
// Blank headers become __EMPTY, __EMPTY_1, ...; repeated names get a
// numeric suffix (name, name_1, name_2).
func normalizeHeaders(cells []string) []string {
	used := make(map[string]bool, len(cells))
	counts := make(map[string]int)
	names := make([]string, len(cells))

	for i, cell := range cells {
		base := cell
		if base == "" {
			base = emptyHeader
		}
		name := base
		for used[name] {
			counts[base]++
			name = fmt.Sprintf("%s_%d", base, counts[base])
		}
		used[name] = true
		names[i] = name
	}

	return names
}

// typedValue converts raw cell text into a typed value using the stored cell
// type. Text cells are returned verbatim, boolean cells come back as "1"/"0"
// (or TRUE/FALSE) and numeric or untyped cells are parsed as numbers.
func typedValue(f *excelize.File, sheetName string, colIdx, rowIdx int, s string) interface{} {
	cellName, err := excelize.CoordinatesToCellName(colIdx+1, rowIdx+1)
	if err != nil {
		return parseValue(s)
	}
	ct, err := f.GetCellType(sheetName, cellName)
	if err != nil {
		return parseValue(s)
	}

	switch ct {
	case excelize.CellTypeSharedString, excelize.CellTypeInlineString, excelize.CellTypeFormula:
		return s
	case excelize.CellTypeBool:
		switch s {
		case "1", "TRUE":
			return true
		case "0", "FALSE":
			return false
		}
		return s
	default:
		return parseValue(s)
	}
}

// parseValue attempts to parse a string value as a number.
// Returns int64 for integers, float64 for decimals, or the input string.
func parseValue(s string) interface{} {
	// Try integer first
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i
	}
	// Try float; "NaN" and "Inf" stay text
	if f, err := strconv.ParseFloat(s, 64); err == nil && !math.IsNaN(f) && !math.IsInf(f, 0) {
		return f
	}
	// Return as string
	return s
}
