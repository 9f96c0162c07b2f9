// =============================================================================
// HSN/SAC Validator - Validation Engine
// =============================================================================
//
// This module holds the reference tables and answers validation queries
// against them. For every code it can tell:
//   - whether the code is well formed for its type (format)
//   - whether the code appears in the reference table (existence)
//   - what the reference table says about it (description)
//
// FORMAT RULES:
//   - HSN: 1 to 8 ASCII digits, nothing else
//   - SAC: 1 to 6 ASCII digits, nothing else
//   Surrounding whitespace is trimmed before any check.
//
// LIFECYCLE:
//   1. Constructed empty (no tables, DataLoaded() == false)
//   2. Loaded via LoadSample, LoadFromTable or LoadFile
//   3. Queried any number of times
//   4. Optionally reloaded; a reload replaces one table wholesale
//
// ERROR HANDLING:
//   - Load operations return a *reference.LoadError and leave the affected
//     table as it was
//   - Query operations never fail: missing data or malformed codes simply
//     yield false or an empty description
//
// =============================================================================

package validation

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/samber/lo"
	"go.uber.org/zap"

	"github.com/ginjaninja78/hsn-sac-validator/internal/reference"
	"github.com/ginjaninja78/hsn-sac-validator/internal/types"
)

// =============================================================================
// FORMAT PATTERNS
// =============================================================================

// formatPatterns holds one anchored digit pattern per code type.
var formatPatterns = func() map[types.CodeType]*regexp.Regexp {
	patterns := make(map[types.CodeType]*regexp.Regexp, len(types.CodeTypes))
	for _, ct := range types.CodeTypes {
		patterns[ct] = regexp.MustCompile(fmt.Sprintf(`^[0-9]{1,%d}$`, ct.MaxDigits()))
	}
	return patterns
}()

// =============================================================================
// VALIDATOR
// =============================================================================

// Validator validates HSN and SAC codes against its reference tables.
// It is not safe for concurrent mutation; load before sharing.
type Validator struct {
	tables  map[types.CodeType]*reference.Table
	loaded  bool
	options Options
}

// Options contains options for the validator.
type Options struct {
	// Logger receives load events. Default: a no-op logger.
	Logger *zap.Logger

	// Source controls how reference files are read by LoadFile.
	Source reference.SourceOptions
}

// DefaultOptions returns the default validator options.
func DefaultOptions() Options {
	return Options{
		Logger: zap.NewNop(),
	}
}

// NewValidator creates an empty Validator with default options.
func NewValidator() *Validator {
	return NewValidatorWithOptions(DefaultOptions())
}

// NewValidatorWithOptions creates an empty Validator with custom options.
func NewValidatorWithOptions(options Options) *Validator {
	if options.Logger == nil {
		options.Logger = zap.NewNop()
	}
	return &Validator{
		tables:  make(map[types.CodeType]*reference.Table, len(types.CodeTypes)),
		options: options,
	}
}

// =============================================================================
// LOADING
// =============================================================================

// LoadSample replaces both tables with the built-in sample entries.
func (v *Validator) LoadSample() {
	for _, ct := range types.CodeTypes {
		v.tables[ct] = reference.Sample(ct)
	}
	v.loaded = true
	v.options.Logger.Info("loaded sample reference data")
}

// LoadFromTable replaces the codeType table with the rows of sheet.
//
// PARAMETERS:
//   - codeType: The table to replace.
//   - sheet: A tabular source with the code and description columns for
//     codeType. Header names are trimmed before matching.
//
// RETURNS:
//   - A *reference.LoadError wrapping reference.ErrMissingColumn if a
//     required column is absent. The table is left unchanged.
func (v *Validator) LoadFromTable(codeType types.CodeType, sheet *types.Sheet) error {
	table, err := reference.FromSheet(codeType, sheet)
	if err != nil {
		v.options.Logger.Warn("reference table rejected",
			zap.String("code_type", codeType.String()),
			zap.Error(err))
		return err
	}

	v.setTable(table)
	return nil
}

// LoadFile reads a reference file (.xlsx, .xlsm or .csv) and replaces the
// codeType table with its contents.
//
// RETURNS:
//   - A *reference.LoadError wrapping reference.ErrFileParse if the file
//     cannot be read, or reference.ErrMissingColumn if a column is absent.
//     In both cases the table is left unchanged.
func (v *Validator) LoadFile(codeType types.CodeType, path string) error {
	table, err := reference.LoadFile(codeType, path, v.options.Source)
	if err != nil {
		v.options.Logger.Warn("reference file rejected",
			zap.String("code_type", codeType.String()),
			zap.String("file", path),
			zap.Error(err))
		return err
	}

	v.setTable(table)
	return nil
}

// LoadFiles loads the HSN and SAC reference files. Empty paths are skipped.
// Each table is loaded on its own: a failure in one never prevents or undoes
// the other. All failures are returned joined.
func (v *Validator) LoadFiles(hsnPath, sacPath string) error {
	var errs []error

	if hsnPath != "" {
		if err := v.LoadFile(types.HSN, hsnPath); err != nil {
			errs = append(errs, err)
		}
	}
	if sacPath != "" {
		if err := v.LoadFile(types.SAC, sacPath); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}

func (v *Validator) setTable(table *reference.Table) {
	v.tables[table.CodeType()] = table
	v.loaded = true
	v.options.Logger.Info("loaded reference table",
		zap.String("code_type", table.CodeType().String()),
		zap.String("file", table.Source()),
		zap.Int("rows", table.Len()))
}

// DataLoaded reports whether any table has been loaded successfully.
func (v *Validator) DataLoaded() bool {
	return v.loaded
}

// Table returns the current codeType table, or nil if none is loaded.
func (v *Validator) Table(codeType types.CodeType) *reference.Table {
	return v.tables[codeType]
}

// =============================================================================
// QUERIES
// =============================================================================

// ValidateFormat reports whether code, after trimming, consists only of
// digits and is no longer than the maximum for codeType.
func (v *Validator) ValidateFormat(code string, codeType types.CodeType) bool {
	code = strings.TrimSpace(code)
	if code == "" {
		return false
	}

	pattern, ok := formatPatterns[codeType]
	if !ok {
		return false
	}
	return pattern.MatchString(code)
}

// ValidateExistence reports whether the trimmed code equals the code of
// some row in the codeType table. Returns false if no table is loaded.
func (v *Validator) ValidateExistence(code string, codeType types.CodeType) bool {
	table := v.tables[codeType]
	if table == nil {
		return false
	}
	return table.Contains(strings.TrimSpace(code))
}

// GetDescription returns the description of the first row matching the
// trimmed code, or "" if there is no match or no table.
func (v *Validator) GetDescription(code string, codeType types.CodeType) string {
	table := v.tables[codeType]
	if table == nil {
		return ""
	}

	entry, ok := table.Lookup(strings.TrimSpace(code))
	if !ok {
		return ""
	}
	return entry.Description
}

// =============================================================================
// BATCH VALIDATION
// =============================================================================

// ValidateString validates a comma-delimited list of codes such as
// "01, 0101,,99999999". Pieces are trimmed and empty pieces dropped.
func (v *Validator) ValidateString(input string, codeType types.CodeType) []types.ValidationResult {
	return v.ValidateCodes(SplitCodes(input), codeType)
}

// ValidateCodes validates each code in order and returns one result per
// code, duplicates included.
//
// VALIDATION STEPS (per code):
//  1. Format check.
//  2. Existence check, only if the format is valid. A malformed code is
//     never reported as existing.
//  3. Description lookup, only if the code exists.
func (v *Validator) ValidateCodes(codes []string, codeType types.CodeType) []types.ValidationResult {
	results := make([]types.ValidationResult, 0, len(codes))

	for _, code := range codes {
		formatValid := v.ValidateFormat(code, codeType)

		exists := false
		if formatValid {
			exists = v.ValidateExistence(code, codeType)
		}

		description := ""
		if exists {
			description = v.GetDescription(code, codeType)
		}

		results = append(results, types.ValidationResult{
			Code:        code,
			FormatValid: formatValid,
			Exists:      exists,
			Description: description,
		})
	}

	return results
}

// SplitCodes splits a comma-delimited string into trimmed, non-empty codes.
func SplitCodes(input string) []string {
	return lo.FilterMap(strings.Split(input, ","), func(piece string, _ int) (string, bool) {
		piece = strings.TrimSpace(piece)
		return piece, piece != ""
	})
}
