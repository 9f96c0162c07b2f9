// =============================================================================
// HSN/SAC Validator - Validate Command
// =============================================================================
//
// This file defines the 'validate' command, which validates codes given on
// the command line and prints one result per code.
//
// COMMAND USAGE:
//   hsnval validate [codes...] [flags]
//
// FLAGS:
//   --type    : Code type, HSN or SAC (default HSN)
//   --codes   : Comma-delimited list of codes ("01, 0101,99")
//   --format  : table, json, yaml, csv, xlsx or xml (default from config)
//   --output  : Write the report to this file instead of stdout
//
// INPUT FORMS:
//   Positional arguments are an explicit list: each argument is one code,
//   passed through unchanged. --codes is a delimited string: it is split on
//   commas, pieces are trimmed and empty pieces dropped. Only one form may
//   be used per invocation.
//
// =============================================================================

package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ginjaninja78/hsn-sac-validator/internal/report"
	"github.com/ginjaninja78/hsn-sac-validator/internal/types"
)

// =============================================================================
// COMMAND FLAGS
// =============================================================================

var (
	validateType   string
	validateCodes  string
	validateFormat string
	validateOutput string
)

// =============================================================================
// VALIDATE COMMAND DEFINITION
// =============================================================================

var validateCmd = &cobra.Command{
	Use:   "validate [codes...]",
	Short: "Validate HSN or SAC codes",
	Long: `Validate one or more codes against the loaded reference tables.

Each code is checked for format first. Only well-formed codes are looked up
in the reference table, so a malformed code is never reported as existing.
Results are printed in input order, duplicates included.`,
	Example: `  hsnval validate --sample --codes "01,0101,99999999"
  hsnval validate --sample --type SAC 9954
  hsnval validate --hsn-file hsn.xlsx --format json 0101 01011010`,
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)

	validateCmd.Flags().StringVarP(&validateType, "type", "t", string(types.HSN),
		"Code type: HSN or SAC")
	validateCmd.Flags().StringVarP(&validateCodes, "codes", "c", "",
		"Comma-delimited list of codes")
	validateCmd.Flags().StringVarP(&validateFormat, "format", "f", "",
		"Output format: table, json, yaml, csv, xlsx, xml (default from config)")
	validateCmd.Flags().StringVarP(&validateOutput, "output", "o", "",
		"Write the report to this file instead of stdout")
}

// =============================================================================
// MAIN VALIDATE FUNCTION
// =============================================================================

func runValidate(cmd *cobra.Command, args []string) error {
	codeType, err := types.ParseCodeType(validateType)
	if err != nil {
		return err
	}

	cfg := currentConfig()

	formatName := cfg.ReportFormat
	if validateFormat != "" {
		formatName = validateFormat
	}
	format, err := report.ParseFormat(formatName)
	if err != nil {
		return err
	}

	switch {
	case validateCodes == "" && len(args) == 0:
		return errors.New("no codes given: pass codes as arguments or with --codes")
	case validateCodes != "" && len(args) > 0:
		return errors.New("pass codes either as arguments or with --codes, not both")
	case format == report.FormatXLSX && validateOutput == "":
		return errors.New("xlsx output needs --output")
	}

	v := newValidator(cmd, cfg)

	var results []types.ValidationResult
	if validateCodes != "" {
		results = v.ValidateString(validateCodes, codeType)
	} else {
		results = v.ValidateCodes(args, codeType)
	}

	if validateOutput != "" {
		if err := report.WriteFile(validateOutput, results, codeType, format); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Report written to %s\n", validateOutput)
		fmt.Fprintln(cmd.OutOrStdout(), report.Summarize(results))
		return nil
	}

	return report.Write(cmd.OutOrStdout(), results, codeType, format)
}
