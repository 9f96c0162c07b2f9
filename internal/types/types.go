// =============================================================================
// HSN/SAC Validator - Shared Types
// =============================================================================
//
// This package contains shared types used across multiple modules to avoid
// import cycles. Types defined here are used by:
//   - reference   (tables built from sheets)
//   - validation  (results produced per code)
//   - xlsxparser / csvparser (sheets read from files)
//   - report      (results rendered to output)
//
// =============================================================================

package types

import (
	"fmt"
	"strings"
)

// =============================================================================
// CODE TYPES
// =============================================================================

// CodeType selects which classification scheme a code belongs to.
type CodeType string

const (
	// HSN is the Harmonized System Nomenclature, used for goods.
	HSN CodeType = "HSN"

	// SAC is the Services Accounting Code, used for services.
	SAC CodeType = "SAC"
)

// CodeTypes lists every supported code type in display order.
var CodeTypes = []CodeType{HSN, SAC}

// ParseCodeType converts user input ("hsn", " SAC ") into a CodeType.
// Unknown values are rejected.
func ParseCodeType(s string) (CodeType, error) {
	switch CodeType(strings.ToUpper(strings.TrimSpace(s))) {
	case HSN:
		return HSN, nil
	case SAC:
		return SAC, nil
	default:
		return "", fmt.Errorf("unknown code type %q (expected HSN or SAC)", s)
	}
}

// Valid reports whether c is one of the supported code types.
func (c CodeType) Valid() bool {
	return c == HSN || c == SAC
}

// MaxDigits is the longest code allowed for this type.
// Returns 0 for an unknown type, which makes every code fail format checks.
func (c CodeType) MaxDigits() int {
	switch c {
	case HSN:
		return 8
	case SAC:
		return 6
	default:
		return 0
	}
}

// CodeColumn is the header name holding the code in a reference sheet.
func (c CodeType) CodeColumn() string {
	switch c {
	case HSN:
		return "HSNCode"
	case SAC:
		return "SAC_CD"
	default:
		return ""
	}
}

// DescriptionColumn is the header name holding the description in a
// reference sheet.
func (c CodeType) DescriptionColumn() string {
	switch c {
	case HSN:
		return "Description"
	case SAC:
		return "SAC_Description"
	default:
		return ""
	}
}

func (c CodeType) String() string {
	return string(c)
}

// =============================================================================
// TABULAR SOURCE
// =============================================================================

// Sheet is a tabular document read from a spreadsheet or CSV file.
// All cell values are kept as strings exactly as the parser produced them.
type Sheet struct {
	// Source is the file (or upload) name the sheet was read from.
	// It is used in user-facing error messages.
	Source string

	// Headers contains the header row, untrimmed.
	Headers []string

	// Rows contains the data rows. Each row is padded to len(Headers).
	Rows [][]string
}

// ColumnIndex returns the index of the header whose trimmed name equals
// name, or -1 if no header matches. The first matching header wins.
func (s *Sheet) ColumnIndex(name string) int {
	for i, h := range s.Headers {
		if strings.TrimSpace(h) == name {
			return i
		}
	}
	return -1
}

// Column returns every value of the named column in row order.
// Returns nil if the column does not exist.
func (s *Sheet) Column(name string) []string {
	idx := s.ColumnIndex(name)
	if idx < 0 {
		return nil
	}
	values := make([]string, 0, len(s.Rows))
	for _, row := range s.Rows {
		if idx < len(row) {
			values = append(values, row[idx])
		} else {
			values = append(values, "")
		}
	}
	return values
}

// =============================================================================
// VALIDATION RESULT
// =============================================================================

// ValidationResult is the outcome of validating a single code.
type ValidationResult struct {
	// Code is the code as it was supplied by the caller.
	Code string `json:"code" yaml:"code"`

	// FormatValid is true if the code has the right shape for its type.
	FormatValid bool `json:"format_valid" yaml:"format_valid"`

	// Exists is true if the code was found in the reference table.
	// Never true when FormatValid is false.
	Exists bool `json:"exists" yaml:"exists"`

	// Description is the reference description, empty when not found.
	Description string `json:"description" yaml:"description"`
}
