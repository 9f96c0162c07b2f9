// =============================================================================
// HSN/SAC Validator - Check Command
// =============================================================================
//
// This file defines the 'check' command, which validates the code column of
// one or more CSV/XLSX files and writes a report per file.
//
// COMMAND USAGE:
//   hsnval check --input <file|dir> [flags]
//
// FLAGS:
//   --type        : Code type, HSN or SAC (default HSN)
//   --input       : A CSV/XLSX file, or a directory of them
//   --column      : Column holding the codes (default from config: "Code")
//   --format      : Report format (default from config)
//   --input-sheet : Worksheet read from XLSX inputs (default from config:
//                   first sheet). Independent of --sheet, which selects the
//                   reference worksheet.
//
// PROCESSING PIPELINE:
//   1. Load reference tables
//   2. Discover input files
//   3. For each file, in name order:
//      a. Read the sheet and extract the code column
//      b. Validate every non-blank code
//      c. Write the report into the output directory. A report name that
//         was already issued in this run (or exists) gets a "_2", "_3", ...
//         suffix, so inputs sharing a base name never overwrite each other.
//   4. Write the summary log
//
//   A file that cannot be read does not stop the run; it is listed under
//   "Failed Files" in the summary.
//
// =============================================================================

package cmd

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ginjaninja78/hsn-sac-validator/internal/config"
	"github.com/ginjaninja78/hsn-sac-validator/internal/reference"
	"github.com/ginjaninja78/hsn-sac-validator/internal/report"
	"github.com/ginjaninja78/hsn-sac-validator/internal/types"
	"github.com/ginjaninja78/hsn-sac-validator/internal/validation"
	"github.com/ginjaninja78/hsn-sac-validator/pkg/utils"
)

// =============================================================================
// COMMAND FLAGS
// =============================================================================

var (
	checkType   string
	checkInput  string
	checkColumn string
	checkFormat string
	checkSheet  string
)

// =============================================================================
// CHECK COMMAND DEFINITION
// =============================================================================

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate the code column of CSV or XLSX files",
	Long: `The check command reads a code column from each input file, validates
every code against the reference tables and writes one report per file to
the output directory, followed by a summary log.

Blank code cells are skipped. Files that cannot be read are reported and
the remaining files are still processed.`,
	Example: `  hsnval check --hsn-file hsn.xlsx --input invoices.xlsx --column HSN
  hsnval check --sac-file sac.csv --type SAC --input ./batches --format csv`,
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)

	checkCmd.Flags().StringVarP(&checkType, "type", "t", string(types.HSN),
		"Code type: HSN or SAC")
	checkCmd.Flags().StringVarP(&checkInput, "input", "i", "",
		"Input CSV/XLSX file or directory")
	checkCmd.Flags().StringVar(&checkColumn, "column", "",
		"Column holding the codes (default from config)")
	checkCmd.Flags().StringVarP(&checkFormat, "format", "f", "",
		"Report format: table, json, yaml, csv, xlsx, xml (default from config)")
	checkCmd.Flags().StringVar(&checkSheet, "input-sheet", "",
		"Worksheet to read from XLSX input files (default from config: first sheet)")
}

// =============================================================================
// MAIN CHECK FUNCTION
// =============================================================================

func runCheck(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	codeType, err := types.ParseCodeType(checkType)
	if err != nil {
		return err
	}
	if checkInput == "" {
		return errors.New("--input is required")
	}

	cfg := currentConfig()
	if checkColumn != "" {
		cfg.CodeColumn = checkColumn
	}
	if checkSheet != "" {
		cfg.InputSheet = checkSheet
	}
	formatName := cfg.ReportFormat
	if checkFormat != "" {
		formatName = checkFormat
	}
	format, err := report.ParseFormat(formatName)
	if err != nil {
		return err
	}

	files, err := utils.DiscoverInputFiles(checkInput, reference.IsTabularFile)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		fmt.Fprintln(out, "No CSV or XLSX files found.")
		return nil
	}

	if err := utils.EnsureDirectory(cfg.OutputDir); err != nil {
		return err
	}

	v := newValidator(cmd, cfg)

	summary := utils.CheckSummary{
		StartTime: time.Now(),
		CodeType:  codeType.String(),
	}

	fmt.Fprintf(out, "Checking %d file(s) as %s...\n", len(files), codeType)

	issued := make(map[string]bool)
	for _, file := range files {
		checked, err := checkFile(v, file, codeType, format, cfg, issued)
		if err != nil {
			currentLogger().Warn("check failed", zap.String("file", file), zap.Error(err))
			summary.FailedFiles = append(summary.FailedFiles, utils.FailedFileInfo{
				InputFile:    file,
				ErrorMessage: err.Error(),
			})
			fmt.Fprintf(out, "  ✗ %s: %v\n", filepath.Base(file), err)
			continue
		}

		summary.Checked = append(summary.Checked, checked)
		fmt.Fprintf(out, "  ✓ %s -> %s (%d found, %d not found, %d invalid)\n",
			filepath.Base(file), filepath.Base(checked.ReportFile),
			checked.Found, checked.NotFound, checked.FormatInvalid)
	}

	summary.EndTime = time.Now()

	summaryPath, err := utils.WriteSummaryLog(summary, cfg.OutputDir)
	if err != nil {
		return err
	}

	fmt.Fprintln(out, "\n=== Check Complete ===")
	fmt.Fprintf(out, "Files checked:   %d\n", len(summary.Checked))
	fmt.Fprintf(out, "Files failed:    %d\n", len(summary.FailedFiles))
	fmt.Fprintf(out, "Summary log:     %s\n", summaryPath)

	return nil
}

// checkFile validates the code column of one input file and writes its report.
// issued holds the report paths already used in this run.
func checkFile(v *validation.Validator, file string, codeType types.CodeType, format report.Format, cfg config.Config, issued map[string]bool) (utils.CheckedFileInfo, error) {
	sheet, err := reference.ReadSheet(file, reference.SourceOptions{
		SheetName: cfg.InputSheet,
		Delimiter: cfg.CSVDelimiter,
	})
	if err != nil {
		return utils.CheckedFileInfo{}, err
	}

	column := sheet.Column(cfg.CodeColumn)
	if column == nil {
		return utils.CheckedFileInfo{}, fmt.Errorf("column %q not found", cfg.CodeColumn)
	}

	codes := lo.Compact(lo.Map(column, func(c string, _ int) string {
		return strings.TrimSpace(c)
	}))
	results := v.ValidateCodes(codes, codeType)

	name := utils.GenerateReportFileName(cfg.ReportNameFormat, map[string]string{
		"type":  codeType.String(),
		"input": utils.BaseName(file),
	}, format.Extension())
	reportPath := utils.UniqueReportPath(cfg.OutputDir, name, issued)

	if err := report.WriteFile(reportPath, results, codeType, format); err != nil {
		return utils.CheckedFileInfo{}, err
	}

	s := report.Summarize(results)
	return utils.CheckedFileInfo{
		InputFile:     file,
		ReportFile:    reportPath,
		Total:         s.Total,
		Found:         s.Found,
		NotFound:      s.NotFound,
		FormatInvalid: s.FormatInvalid,
	}, nil
}
