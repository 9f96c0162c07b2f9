// =============================================================================
// HSN/SAC Validator - Reference Sources
// =============================================================================
//
// This file reads tabular files (XLSX/XLSM workbooks or CSV exports) and
// turns them into reference tables. The parser is chosen by extension:
//
//   .xlsx, .xlsm -> internal/xlsxparser
//   .csv         -> internal/csvparser
//   anything else -> ErrUnsupportedFormat (legacy .xls included)
//
// The same reader is used for the files given to 'check', so input files
// accept exactly the formats reference files do.
//
// =============================================================================

package reference

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/ginjaninja78/hsn-sac-validator/internal/csvparser"
	"github.com/ginjaninja78/hsn-sac-validator/internal/types"
	"github.com/ginjaninja78/hsn-sac-validator/internal/xlsxparser"
)

// =============================================================================
// SOURCE OPTIONS
// =============================================================================

// SourceOptions controls how tabular files are read.
type SourceOptions struct {
	// SheetName selects the worksheet in XLSX files. Empty means the first sheet.
	SheetName string

	// HeaderRow is the 1-based row holding the headers in XLSX files.
	// 0 and 1 both mean the first row.
	HeaderRow int

	// Delimiter is the CSV field separator. Empty means comma.
	Delimiter string
}

// =============================================================================
// READING
// =============================================================================

// IsTabularFile reports whether path has an extension ReadSheet understands.
func IsTabularFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm", ".csv":
		return true
	default:
		return false
	}
}

// ReadSheet reads a spreadsheet or CSV file, choosing the parser by extension.
func ReadSheet(path string, opts SourceOptions) (*types.Sheet, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		xopts := xlsxparser.DefaultOptions()
		xopts.SheetName = opts.SheetName
		if opts.HeaderRow > 1 {
			xopts.HeaderRow = opts.HeaderRow - 1
		}
		return xlsxparser.ReadSheet(path, xopts)
	case ".csv":
		settings := csvparser.DefaultSettings()
		if opts.Delimiter != "" {
			settings.Delimiter = opts.Delimiter
		}
		return csvparser.ReadSheet(path, settings)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

// LoadFile reads path and builds the codeType table from it.
// Any failure to read the document is reported as a LoadError wrapping
// ErrFileParse; missing columns wrap ErrMissingColumn.
func LoadFile(codeType types.CodeType, path string, opts SourceOptions) (*Table, error) {
	sheet, err := ReadSheet(path, opts)
	if err != nil {
		return nil, parseError(codeType, path, err)
	}
	return FromSheet(codeType, sheet)
}
