// =============================================================================
// HSN/SAC Validator - Report Writer
// =============================================================================
//
// This module renders a sequence of validation results for display or for
// saving to disk. Results are always written in the order they were given.
//
// SUPPORTED FORMATS:
//   - table : aligned text with a summary line (terminal output)
//   - json  : array of {code, format_valid, exists, description}
//   - yaml  : the same records as a YAML sequence
//   - csv   : header row plus one line per code
//   - xlsx  : workbook with a results sheet named after the code type and
//             a Summary sheet
//   - xml   : validationReport document with summary counts as attributes
//
// =============================================================================

package report

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/xuri/excelize/v2"
	"gopkg.in/yaml.v3"

	"github.com/ginjaninja78/hsn-sac-validator/internal/types"
	"github.com/ginjaninja78/hsn-sac-validator/internal/xmlwriter"
)

// =============================================================================
// FORMATS
// =============================================================================

// Format selects how results are rendered.
type Format string

const (
	FormatTable Format = "table"
	FormatJSON  Format = "json"
	FormatYAML  Format = "yaml"
	FormatCSV   Format = "csv"
	FormatXLSX  Format = "xlsx"
	FormatXML   Format = "xml"
)

// ParseFormat converts a configured format name into a Format.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatTable, FormatJSON, FormatYAML, FormatCSV, FormatXLSX, FormatXML:
		return f, nil
	default:
		return "", fmt.Errorf("unknown report format %q", s)
	}
}

// Extension is the file extension used when saving this format.
func (f Format) Extension() string {
	if f == FormatTable {
		return ".txt"
	}
	return "." + string(f)
}

// resultHeaders is the column order for tabular formats.
var resultHeaders = []string{"code", "format_valid", "exists", "description"}

// =============================================================================
// SUMMARY
// =============================================================================

// Summary counts the outcomes in a result set.
type Summary struct {
	Total         int `json:"total" yaml:"total"`
	Found         int `json:"found" yaml:"found"`
	NotFound      int `json:"not_found" yaml:"not_found"`
	FormatInvalid int `json:"format_invalid" yaml:"format_invalid"`
}

// Summarize counts found, not-found and malformed codes.
// A well-formed code that is absent from the table counts as NotFound.
func Summarize(results []types.ValidationResult) Summary {
	s := Summary{Total: len(results)}
	for _, r := range results {
		switch {
		case !r.FormatValid:
			s.FormatInvalid++
		case r.Exists:
			s.Found++
		default:
			s.NotFound++
		}
	}
	return s
}

// String renders the summary as a single line.
func (s Summary) String() string {
	return fmt.Sprintf("%d code(s): %d found, %d not found, %d invalid format",
		s.Total, s.Found, s.NotFound, s.FormatInvalid)
}

// =============================================================================
// WRITERS
// =============================================================================

// Write renders results to w in the given format.
//
// PARAMETERS:
//   - w: The destination.
//   - results: The results to render, in display order.
//   - codeType: Used for titles and sheet names.
//   - format: The output format.
func Write(w io.Writer, results []types.ValidationResult, codeType types.CodeType, format Format) error {
	switch format {
	case FormatTable:
		return writeTable(w, results, codeType)
	case FormatJSON:
		return writeJSON(w, results)
	case FormatYAML:
		return writeYAML(w, results)
	case FormatCSV:
		return writeCSV(w, results)
	case FormatXLSX:
		return writeXLSX(w, results, codeType)
	case FormatXML:
		return writeXML(w, results, codeType)
	default:
		return fmt.Errorf("unknown report format %q", format)
	}
}

// WriteFile renders results into a new file at path.
func WriteFile(path string, results []types.ValidationResult, codeType types.CodeType, format Format) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create report: %w", err)
	}

	if err := Write(file, results, codeType, format); err != nil {
		file.Close()
		return fmt.Errorf("failed to write report: %w", err)
	}

	if err := file.Close(); err != nil {
		return fmt.Errorf("failed to close report: %w", err)
	}
	return nil
}

// writeTable renders an aligned text table followed by a summary line.
func writeTable(w io.Writer, results []types.ValidationResult, codeType types.CodeType) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	fmt.Fprintf(tw, "%s CODE\tFORMAT\tEXISTS\tDESCRIPTION\n", codeType)
	for _, r := range results {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n",
			r.Code,
			mark(r.FormatValid, "valid", "invalid"),
			mark(r.Exists, "yes", "no"),
			r.Description)
	}

	if err := tw.Flush(); err != nil {
		return err
	}

	_, err := fmt.Fprintf(w, "\n%s\n", Summarize(results))
	return err
}

func mark(ok bool, yes, no string) string {
	if ok {
		return yes
	}
	return no
}

func writeJSON(w io.Writer, results []types.ValidationResult) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(nonNil(results))
}

func writeYAML(w io.Writer, results []types.ValidationResult) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(nonNil(results)); err != nil {
		return err
	}
	return enc.Close()
}

func writeCSV(w io.Writer, results []types.ValidationResult) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(resultHeaders); err != nil {
		return err
	}
	for _, r := range results {
		if err := cw.Write(record(r)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func record(r types.ValidationResult) []string {
	return []string{
		r.Code,
		strconv.FormatBool(r.FormatValid),
		strconv.FormatBool(r.Exists),
		r.Description,
	}
}

// writeXLSX builds a workbook with a results sheet and a summary sheet.
// Codes are written as text cells so leading zeros survive a round trip.
func writeXLSX(w io.Writer, results []types.ValidationResult, codeType types.CodeType) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	sheet := codeType.String()
	if sheet == "" {
		sheet = "Results"
	}
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}

	if err := setRow(f, sheet, 1, toCells(resultHeaders)); err != nil {
		return err
	}
	for i, r := range results {
		row := []interface{}{r.Code, r.FormatValid, r.Exists, r.Description}
		if err := setRow(f, sheet, i+2, row); err != nil {
			return err
		}
	}

	if _, err := f.NewSheet("Summary"); err != nil {
		return fmt.Errorf("failed to add summary sheet: %w", err)
	}
	s := Summarize(results)
	summaryRows := [][]interface{}{
		{"total", s.Total},
		{"found", s.Found},
		{"not_found", s.NotFound},
		{"format_invalid", s.FormatInvalid},
	}
	for i, row := range summaryRows {
		if err := setRow(f, "Summary", i+1, row); err != nil {
			return err
		}
	}

	return f.Write(w)
}

func setRow(f *excelize.File, sheet string, row int, values []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("failed to write row %d: %w", row, err)
	}
	return nil
}

func toCells(values []string) []interface{} {
	cells := make([]interface{}, len(values))
	for i, v := range values {
		cells[i] = v
	}
	return cells
}

// writeXML renders the results as a validationReport document whose root
// carries the summary counts.
func writeXML(w io.Writer, results []types.ValidationResult, codeType types.CodeType) error {
	s := Summarize(results)
	options := xmlwriter.DefaultGenerateOptions()
	options.RootAttributes = map[string]string{
		"total":         strconv.Itoa(s.Total),
		"found":         strconv.Itoa(s.Found),
		"notFound":      strconv.Itoa(s.NotFound),
		"formatInvalid": strconv.Itoa(s.FormatInvalid),
	}
	return xmlwriter.Write(w, results, codeType, options)
}

// nonNil makes an empty result set encode as [] rather than null.
func nonNil(results []types.ValidationResult) []types.ValidationResult {
	if results == nil {
		return []types.ValidationResult{}
	}
	return results
}
