// =============================================================================
// HSN/SAC Validator - Reference Load Errors
// =============================================================================
//
// Loading a reference table fails in one of two ways:
//
//   ErrFileParse     - the document could not be read at all (missing file,
//                      corrupt workbook, unsupported extension)
//   ErrMissingColumn - the document was read but lacks a required column
//
// Both are reported as a *LoadError naming the file and the code type, so
// the CLI can print one line per failed table and carry on.
//
// =============================================================================

package reference

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/ginjaninja78/hsn-sac-validator/internal/types"
)

// =============================================================================
// SENTINEL ERRORS
// =============================================================================

var (
	// ErrMissingColumn means a required column is absent from a reference sheet.
	ErrMissingColumn = errors.New("missing expected column")

	// ErrFileParse means a reference document could not be read at all.
	ErrFileParse = errors.New("unreadable reference file")

	// ErrUnsupportedFormat means the file extension is not a known tabular format.
	ErrUnsupportedFormat = errors.New("unsupported file format")
)

// =============================================================================
// LOAD ERROR
// =============================================================================

// LoadError describes why a reference table could not be loaded.
// It is always recovered at the load boundary: the table it concerns keeps
// its previous contents.
type LoadError struct {
	// File is the source the table was being loaded from.
	File string

	// CodeType is the table that failed to load.
	CodeType types.CodeType

	// Columns lists the required columns that were absent, if any.
	Columns []string

	// Err is ErrMissingColumn, or ErrFileParse joined with the cause.
	Err error
}

// Error returns a message suitable for showing to the user.
func (e *LoadError) Error() string {
	name := filepath.Base(e.File)
	if e.File == "" {
		name = "(unnamed)"
	}

	if errors.Is(e.Err, ErrMissingColumn) {
		return fmt.Sprintf("Missing expected columns in %s file %s: %s",
			e.CodeType, name, strings.Join(e.Columns, ", "))
	}
	return fmt.Sprintf("An error occurred while loading %s file %s: %v", e.CodeType, name, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// parseError wraps a reader failure so that errors.Is(err, ErrFileParse) holds.
func parseError(codeType types.CodeType, file string, cause error) *LoadError {
	return &LoadError{
		File:     file,
		CodeType: codeType,
		Err:      fmt.Errorf("%w: %w", ErrFileParse, cause),
	}
}
