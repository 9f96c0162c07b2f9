// =============================================================================
// HSN/SAC Validator - Reference Tables
// =============================================================================
//
// Package reference holds the HSN and SAC reference tables: ordered
// code/description pairs used for existence checks and description lookups.
//
// Tables are immutable once built. Reloading a code type means building a
// new Table and swapping it in; nothing is merged or edited in place.
//
// TABLE LAYOUT:
//
//   | Code type | Code column | Description column |
//   |-----------|-------------|--------------------|
//   | HSN       | HSNCode     | Description        |
//   | SAC       | SAC_CD      | SAC_Description    |
//
// =============================================================================
package reference

import (
	"errors"
	"fmt"

	"github.com/samber/lo"

	"github.com/ginjaninja78/hsn-sac-validator/internal/types"
)

// =============================================================================
// TABLE TYPES
// =============================================================================

// Entry is one row of a reference table.
type Entry struct {
	Code        string `json:"code" yaml:"code"`
	Description string `json:"description" yaml:"description"`
}

// Table is an ordered list of entries for a single code type.
// Codes need not be unique; lookups return the first match in row order.
type Table struct {
	codeType types.CodeType
	source   string
	entries  []Entry
}

// NewTable builds a table from entries, copying the slice.
func NewTable(codeType types.CodeType, source string, entries []Entry) *Table {
	return &Table{
		codeType: codeType,
		source:   source,
		entries:  append([]Entry(nil), entries...),
	}
}

// =============================================================================
// TABLE CONSTRUCTION
// =============================================================================

// FromSheet builds a table from a tabular source. The sheet must contain
// the code and description columns for codeType (header names are trimmed
// before matching). Codes are stored exactly as the cell strings.
func FromSheet(codeType types.CodeType, sheet *types.Sheet) (*Table, error) {
	if sheet == nil {
		return nil, parseError(codeType, "", errors.New("no sheet given"))
	}
	if !codeType.Valid() {
		return nil, &LoadError{
			File:     sheet.Source,
			CodeType: codeType,
			Err:      fmt.Errorf("unsupported code type %q", codeType),
		}
	}

	codeCol := sheet.ColumnIndex(codeType.CodeColumn())
	descCol := sheet.ColumnIndex(codeType.DescriptionColumn())

	missing := lo.Filter([]string{codeType.CodeColumn(), codeType.DescriptionColumn()},
		func(name string, _ int) bool { return sheet.ColumnIndex(name) < 0 })
	if len(missing) > 0 {
		return nil, &LoadError{
			File:     sheet.Source,
			CodeType: codeType,
			Columns:  missing,
			Err:      ErrMissingColumn,
		}
	}

	entries := make([]Entry, 0, len(sheet.Rows))
	for _, row := range sheet.Rows {
		entries = append(entries, Entry{
			Code:        cell(row, codeCol),
			Description: cell(row, descCol),
		})
	}

	return &Table{codeType: codeType, source: sheet.Source, entries: entries}, nil
}

func cell(row []string, idx int) string {
	if idx < len(row) {
		return row[idx]
	}
	return ""
}

// =============================================================================
// QUERIES
// =============================================================================

// Lookup returns the first entry whose code equals code exactly.
func (t *Table) Lookup(code string) (Entry, bool) {
	if t == nil {
		return Entry{}, false
	}
	return lo.Find(t.entries, func(e Entry) bool { return e.Code == code })
}

// Contains reports whether any entry has exactly this code.
func (t *Table) Contains(code string) bool {
	_, ok := t.Lookup(code)
	return ok
}

// Len is the number of rows, duplicates included.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.entries)
}

// Entries returns a copy of the rows in table order.
func (t *Table) Entries() []Entry {
	if t == nil {
		return nil
	}
	return append([]Entry(nil), t.entries...)
}

// CodeType is the code type this table was built for.
func (t *Table) CodeType() types.CodeType {
	return t.codeType
}

// Source names where the table came from: a file path or SampleSource.
func (t *Table) Source() string {
	return t.source
}
