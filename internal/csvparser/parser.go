// =============================================================================
// HSN/SAC Validator - CSV Sheet Parser
// =============================================================================
//
// This module reads CSV exports of reference tables (or code lists) into a
// types.Sheet, so CSV and XLSX sources share one loading path.
//
// FEATURES:
//   - Different delimiters (comma, semicolon, pipe, tab)
//   - UTF-8 byte order mark stripped from the first header
//   - Variable field counts per row (short rows are padded)
//   - Lazy quotes for hand-edited files
//
// CELL VALUES:
//   Values are kept exactly as written in the file. A code column such as
//   "0101" stays "0101"; nothing is parsed as a number.
//
// =============================================================================

package csvparser

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/ginjaninja78/hsn-sac-validator/internal/types"
)

// utf8BOM is written by Excel at the start of "CSV UTF-8" exports.
const utf8BOM = "\ufeff"

// =============================================================================
// CSV SETTINGS
// =============================================================================

// Settings contains settings for parsing CSV files.
type Settings struct {
	// Delimiter is the character used to separate fields.
	// Accepted values: "," (comma), ";" or "semicolon", "|" or "pipe",
	// "\t" or "tab", or any other single character.
	// Default: ","
	Delimiter string
}

// DefaultSettings returns comma-separated settings.
func DefaultSettings() Settings {
	return Settings{Delimiter: ","}
}

// =============================================================================
// PARSER FUNCTIONS
// =============================================================================

// ReadSheet reads a CSV file. The first record is the header row.
//
// PARAMETERS:
//   - path: The path to the CSV file.
//   - settings: The CSV parsing settings.
//
// RETURNS:
//   - The parsed sheet, with Source set to path.
//   - An error if the file cannot be read or is not valid CSV.
func ReadSheet(path string, settings Settings) (*types.Sheet, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	return ReadSheetFrom(bufio.NewReader(file), path, settings)
}

// ReadSheetFrom reads CSV data from r. source is only used to label the result.
func ReadSheetFrom(r io.Reader, source string, settings Settings) (*types.Sheet, error) {
	if !ValidDelimiter(settings.Delimiter) {
		return nil, fmt.Errorf("invalid CSV delimiter %q: expected a single character, tab, pipe or semicolon", settings.Delimiter)
	}

	csvReader := csv.NewReader(r)
	configureReader(csvReader, settings)

	allRows, err := csvReader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV: %w", err)
	}

	if len(allRows) == 0 {
		return nil, fmt.Errorf("CSV file is empty")
	}

	headers := allRows[0]
	if len(headers) > 0 {
		headers[0] = strings.TrimPrefix(headers[0], utf8BOM)
	}

	sheet := &types.Sheet{
		Source:  source,
		Headers: headers,
		Rows:    make([][]string, 0, len(allRows)-1),
	}

	for _, row := range allRows[1:] {
		// Skip empty rows.
		if isRowEmpty(row) {
			continue
		}
		sheet.Rows = append(sheet.Rows, padRow(row, len(headers)))
	}

	return sheet, nil
}

// configureReader configures the CSV reader based on the settings.
func configureReader(reader *csv.Reader, settings Settings) {
	reader.Comma = Delimiter(settings.Delimiter)

	// Allow variable number of fields per row.
	reader.FieldsPerRecord = -1

	// Allow lazy quotes (quotes that don't follow strict CSV rules).
	reader.LazyQuotes = true
}

// Delimiter maps a configured delimiter name to the rune used by the reader.
// Names other than the aliases are used as a single character; an empty
// name means comma.
func Delimiter(name string) rune {
	switch name {
	case "\\t", "\t", "tab", "TAB":
		return '\t'
	case "|", "pipe", "PIPE":
		return '|'
	case ";", "semicolon":
		return ';'
	case "":
		return ','
	default:
		r, _ := utf8.DecodeRuneInString(name)
		return r
	}
}

// ValidDelimiter reports whether name is an alias or exactly one character
// that encoding/csv accepts as a separator.
func ValidDelimiter(name string) bool {
	if name == "" {
		return true
	}
	r := Delimiter(name)
	if !isAlias(name) && utf8.RuneCountInString(name) != 1 {
		return false
	}
	return r != utf8.RuneError && r != '"' && r != '\r' && r != '\n' && r != 0
}

func isAlias(name string) bool {
	switch name {
	case "\\t", "tab", "TAB", "pipe", "PIPE", "semicolon":
		return true
	}
	return false
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// isRowEmpty checks if a row contains only empty values.
func isRowEmpty(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// padRow extends row with empty cells up to width.
func padRow(row []string, width int) []string {
	if len(row) >= width {
		return row
	}
	padded := make([]string, width)
	copy(padded, row)
	return padded
}
