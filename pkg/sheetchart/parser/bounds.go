package parser

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// DataBounds is the bounding box of non-empty cells, 0-based and inclusive.
// All fields are -1 when the sheet has no data.
type DataBounds struct {
	MinRow int
	MaxRow int
	MinCol int
	MaxCol int
}

// Empty reports whether no non-empty cell was found.
func (b DataBounds) Empty() bool {
	return b.MinRow < 0
}

// Width returns the number of columns spanned.
func (b DataBounds) Width() int {
	if b.Empty() {
		return 0
	}
	return b.MaxCol - b.MinCol + 1
}

// Range returns the bounds in Excel range notation (e.g. "A1:D10").
func (b DataBounds) Range() string {
	if b.Empty() {
		return ""
	}
	startCell, _ := excelize.CoordinatesToCellName(b.MinCol+1, b.MinRow+1)
	endCell, _ := excelize.CoordinatesToCellName(b.MaxCol+1, b.MaxRow+1)
	return fmt.Sprintf("%s:%s", startCell, endCell)
}

// FindDataBounds finds the bounding box of non-empty cells.
func FindDataBounds(rows [][]string) DataBounds {
	b := DataBounds{MinRow: -1, MaxRow: -1, MinCol: -1, MaxCol: -1}

	for rowIdx, row := range rows {
		for colIdx, cell := range row {
			if cell == "" {
				continue
			}
			if b.MinRow < 0 || rowIdx < b.MinRow {
				b.MinRow = rowIdx
			}
			if b.MaxRow < 0 || rowIdx > b.MaxRow {
				b.MaxRow = rowIdx
			}
			if b.MinCol < 0 || colIdx < b.MinCol {
				b.MinCol = colIdx
			}
			if b.MaxCol < 0 || colIdx > b.MaxCol {
				b.MaxCol = colIdx
			}
		}
	}

	return b
}
