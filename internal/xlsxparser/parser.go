// =============================================================================
// HSN/SAC Validator - XLSX Sheet Parser
// =============================================================================
//
// This module reads Excel workbooks into a types.Sheet. It is used for both
// reference tables (HSN and SAC masters) and for input files of codes that
// the 'check' command validates.
//
// SHEET STRUCTURE (Expected Layout):
//
//   | Column A  | Column B                          | ... |
//   |-----------|-----------------------------------|-----|
//   | HSNCode   | Description                       |     |   <- header row
//   | 01        | Live Animals                      |     |
//   | 0101      | Live Horses and Similar Creatures |     |
//
//   Header names may carry stray whitespace; matching is done by the
//   caller on trimmed names. Columns may appear in any order.
//
// CELL VALUES:
//   Cells are read as displayed (excelize formatted values). A code stored
//   as text ("0101") or as a number with a zero-padded format keeps its
//   leading zeros. Values are never converted to numbers.
//
// =============================================================================

package xlsxparser

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/ginjaninja78/hsn-sac-validator/internal/types"
)

// =============================================================================
// PARSER OPTIONS
// =============================================================================

// Options controls which part of the workbook is read.
type Options struct {
	// SheetName is the worksheet to read.
	// Default: "" (the first sheet in the workbook)
	SheetName string

	// HeaderRow is the row containing column headers (0-based).
	// Rows above it are ignored; data starts on the next row.
	// Default: 0 (Row 1)
	HeaderRow int
}

// DefaultOptions returns the default options: first sheet, header on row 1.
func DefaultOptions() Options {
	return Options{}
}

// =============================================================================
// PARSER FUNCTIONS
// =============================================================================

// ReadSheet opens an XLSX file and reads one worksheet.
//
// PARAMETERS:
//   - path: The path to the XLSX file.
//   - opts: Which sheet and header row to use.
//
// RETURNS:
//   - The parsed sheet, with Source set to path.
//   - An error if the workbook cannot be opened or the sheet cannot be read.
func ReadSheet(path string, opts Options) (*types.Sheet, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer file.Close()

	return ReadSheetFrom(file, path, opts)
}

// ReadSheetFrom reads one worksheet from an in-memory workbook, such as an
// uploaded file. source is only used to label the result.
func ReadSheetFrom(r io.Reader, source string, opts Options) (*types.Sheet, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer func() { _ = f.Close() }()

	return readSheet(f, source, opts)
}

// readSheet extracts the header row and data rows from an open workbook.
func readSheet(f *excelize.File, source string, opts Options) (*types.Sheet, error) {
	sheetName := opts.SheetName
	if sheetName == "" {
		sheetName = f.GetSheetName(0)
	}
	if sheetName == "" {
		return nil, fmt.Errorf("workbook has no sheets")
	}
	if idx, _ := f.GetSheetIndex(sheetName); idx < 0 {
		return nil, fmt.Errorf("sheet '%s' not found (available: %s)",
			sheetName, strings.Join(f.GetSheetList(), ", "))
	}

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to read rows from sheet '%s': %w", sheetName, err)
	}

	if opts.HeaderRow < 0 || opts.HeaderRow >= len(rows) {
		return nil, fmt.Errorf("sheet '%s' has no header row %d", sheetName, opts.HeaderRow+1)
	}

	headers := rows[opts.HeaderRow]
	sheet := &types.Sheet{
		Source:  source,
		Headers: headers,
		Rows:    make([][]string, 0, len(rows)-opts.HeaderRow-1),
	}

	for i := opts.HeaderRow + 1; i < len(rows); i++ {
		row := rows[i]

		// Skip empty rows.
		if len(row) == 0 || isRowEmpty(row) {
			continue
		}

		sheet.Rows = append(sheet.Rows, padRow(row, len(headers)))
	}

	return sheet, nil
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// isRowEmpty checks if a row contains only empty cells.
func isRowEmpty(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// padRow extends row with empty cells up to width.
// excelize drops trailing empty cells, so short rows are common.
func padRow(row []string, width int) []string {
	if len(row) >= width {
		return row
	}
	padded := make([]string, width)
	copy(padded, row)
	return padded
}
