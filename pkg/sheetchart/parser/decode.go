// Package parser provides spreadsheet decoding for chart ingestion.
package parser

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/ukaji3/sheetchart-go/pkg/sheetchart/models"
	"github.com/xuri/excelize/v2"
)

// ErrNoSheets indicates the workbook contains no worksheets.
var ErrNoSheets = errors.New("workbook has no sheets")

// ErrSheetNotFound indicates the requested sheet does not exist.
var ErrSheetNotFound = errors.New("sheet not found")

// Options configures decoding behavior.
type Options struct {
	// SheetName selects the sheet to decode. Empty selects the first sheet.
	SheetName string
}

// Decode reads an xlsx workbook from r and returns the rows of one sheet.
func Decode(r io.Reader, opts Options) ([]models.Row, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sheetName, err := resolveSheet(f, opts.SheetName)
	if err != nil {
		return nil, err
	}

	return ExtractRows(f, sheetName)
}

// DecodeFile opens path and decodes it with Decode.
func DecodeFile(path string, opts Options) ([]models.Row, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return Decode(file, opts)
}

// resolveSheet returns the sheet to read, defaulting to the first one in
// workbook order.
func resolveSheet(f *excelize.File, name string) (string, error) {
	sheetList := f.GetSheetList()
	if len(sheetList) == 0 {
		return "", ErrNoSheets
	}
	if name == "" {
		return sheetList[0], nil
	}
	for _, s := range sheetList {
		if s == name {
			return s, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrSheetNotFound, name)
}

// XLSXDecoder decodes xlsx workbooks for a session.
type XLSXDecoder struct {
	Options Options
}

// NewXLSXDecoder creates a decoder reading the given sheet (empty for first).
func NewXLSXDecoder(sheetName string) *XLSXDecoder {
	return &XLSXDecoder{Options: Options{SheetName: sheetName}}
}

// Decode implements the session decoder contract.
func (d *XLSXDecoder) Decode(ctx context.Context, r io.Reader) ([]models.Row, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	rows, err := Decode(r, d.Options)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return rows, nil
}
