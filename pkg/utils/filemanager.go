// =============================================================================
// HSN/SAC Validator - File Manager Utility
// =============================================================================
//
// This module provides file management utilities for the 'check' command:
//   - Input discovery (a single file, or every matching file in a directory)
//   - Output directory management
//   - Report file naming (unique within a run)
//   - Summary log generation
//
// =============================================================================

package utils

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

// =============================================================================
// FILE DISCOVERY
// =============================================================================

// DiscoverInputFiles returns the files to process for path.
//
// PARAMETERS:
//   - path: A file, or a directory whose direct children are scanned.
//   - match: Reports whether a file name should be included. Only used
//     for directories; an explicitly named file is always returned.
//
// RETURNS:
//   - The matching file paths, sorted by name.
//   - An error if path does not exist or the directory cannot be read.
func DiscoverInputFiles(path string, match func(name string) bool) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat input: %w", err)
	}

	if !info.IsDir() {
		return []string{path}, nil
	}

	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read input directory: %w", err)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		// Skip Excel lock files such as "~$codes.xlsx".
		if strings.HasPrefix(entry.Name(), "~$") {
			continue
		}
		if match == nil || match(entry.Name()) {
			files = append(files, filepath.Join(path, entry.Name()))
		}
	}

	sort.Strings(files)
	return files, nil
}

// EnsureDirectory creates dir (and parents) if it does not exist.
func EnsureDirectory(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}
	return nil
}

// =============================================================================
// FILE NAMING
// =============================================================================

// GenerateReportFileName generates a report file name from a format string.
//
// PARAMETERS:
//   - format: The file name format with placeholders.
//   - params: Additional placeholder values (e.g. {"type": "HSN"}).
//   - ext: The extension to enforce, including the dot.
//
// RETURNS:
//   - The generated file name.
//
// EXAMPLE:
//   format: "{type}_{input}_{timestamp}"
//   params: {"type": "HSN", "input": "march_invoices"}
//   ext:    ".csv"
//   output: "HSN_march_invoices_20240115_143022.csv"
func GenerateReportFileName(format string, params map[string]string, ext string) string {
	now := time.Now()

	replacements := map[string]string{
		"{uuid}":      uuid.New().String(),
		"{timestamp}": now.Format("20060102_150405"),
		"{date}":      now.Format("20060102"),
		"{time}":      now.Format("150405"),
	}

	for key, value := range params {
		replacements["{"+key+"}"] = value
	}

	result := format
	for placeholder, value := range replacements {
		result = strings.ReplaceAll(result, placeholder, value)
	}

	if ext != "" && !strings.HasSuffix(strings.ToLower(result), strings.ToLower(ext)) {
		result += ext
	}

	return result
}

// UniqueReportPath joins dir and name, adding "_2", "_3", ... before the
// extension while the result was already issued in this run or exists on
// disk. issued is keyed case-insensitively and is updated with the result.
//
// EXAMPLE:
//   codes.csv and codes.xlsx checked in the same second both generate
//   "HSN_codes_20240115_143022.csv"; the second becomes
//   "HSN_codes_20240115_143022_2.csv".
func UniqueReportPath(dir, name string, issued map[string]bool) string {
	ext := filepath.Ext(name)
	stem := strings.TrimSuffix(name, ext)

	candidate := name
	for n := 2; ; n++ {
		path := filepath.Join(dir, candidate)
		if !issued[strings.ToLower(path)] {
			if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
				issued[strings.ToLower(path)] = true
				return path
			}
		}
		candidate = fmt.Sprintf("%s_%d%s", stem, n, ext)
	}
}

// BaseName returns the file name of path without directory or extension.
func BaseName(path string) string {
	name := filepath.Base(path)
	return strings.TrimSuffix(name, filepath.Ext(name))
}

// =============================================================================
// CHECK SUMMARY
// =============================================================================

// CheckSummary describes one run of the 'check' command.
type CheckSummary struct {
	StartTime   time.Time
	EndTime     time.Time
	CodeType    string
	Checked     []CheckedFileInfo
	FailedFiles []FailedFileInfo
}

// CheckedFileInfo describes an input file whose codes were validated.
type CheckedFileInfo struct {
	InputFile     string
	ReportFile    string
	Total         int
	Found         int
	NotFound      int
	FormatInvalid int
}

// FailedFileInfo describes an input file that could not be processed.
type FailedFileInfo struct {
	InputFile    string
	ErrorMessage string
}

// WriteSummaryLog writes a run summary to a timestamped file in outputDir.
//
// RETURNS:
//   - The path to the summary file.
//   - An error if writing fails.
func WriteSummaryLog(summary CheckSummary, outputDir string) (string, error) {
	timestamp := summary.EndTime.Format("20060102_150405")
	summaryPath := filepath.Join(outputDir, fmt.Sprintf("check_summary_%s.txt", timestamp))

	file, err := os.Create(summaryPath)
	if err != nil {
		return "", fmt.Errorf("failed to create summary file: %w", err)
	}
	defer file.Close()

	writer := bufio.NewWriter(file)

	var total, found, notFound, invalid int
	for _, c := range summary.Checked {
		total += c.Total
		found += c.Found
		notFound += c.NotFound
		invalid += c.FormatInvalid
	}

	fmt.Fprintf(writer, "HSN/SAC Validator - Check Summary\n"+
		"================================================================================\n\n"+
		"Run Information:\n"+
		"  Code Type:      %s\n"+
		"  Start Time:     %s\n"+
		"  End Time:       %s\n"+
		"  Duration:       %s\n\n"+
		"Statistics:\n"+
		"  Files Checked:  %d\n"+
		"  Files Failed:   %d\n"+
		"  Codes:          %d\n"+
		"  Found:          %d\n"+
		"  Not Found:      %d\n"+
		"  Invalid Format: %d\n\n",
		summary.CodeType,
		summary.StartTime.Format("2006-01-02 15:04:05"),
		summary.EndTime.Format("2006-01-02 15:04:05"),
		summary.EndTime.Sub(summary.StartTime).String(),
		len(summary.Checked),
		len(summary.FailedFiles),
		total, found, notFound, invalid)

	if len(summary.Checked) > 0 {
		writer.WriteString("Checked Files:\n")
		writer.WriteString("--------------------------------------------------------------------------------\n")
		for _, c := range summary.Checked {
			fmt.Fprintf(writer, "  Input:   %s\n", c.InputFile)
			fmt.Fprintf(writer, "  Report:  %s\n", c.ReportFile)
			fmt.Fprintf(writer, "  Codes:   %d (found %d, not found %d, invalid %d)\n\n",
				c.Total, c.Found, c.NotFound, c.FormatInvalid)
		}
	}

	if len(summary.FailedFiles) > 0 {
		writer.WriteString("Failed Files:\n")
		writer.WriteString("--------------------------------------------------------------------------------\n")
		for _, f := range summary.FailedFiles {
			fmt.Fprintf(writer, "  File:  %s\n", f.InputFile)
			fmt.Fprintf(writer, "  Error: %s\n\n", f.ErrorMessage)
		}
	}

	writer.WriteString("================================================================================\n" +
		"End of Summary\n")

	if err := writer.Flush(); err != nil {
		return "", fmt.Errorf("failed to flush summary file: %w", err)
	}

	return summaryPath, nil
}
