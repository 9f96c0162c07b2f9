// =============================================================================
// HSN/SAC Validator - Root Command
// =============================================================================
//
// This file defines the root command for the Cobra CLI and the state shared
// by every subcommand: configuration, logger and reference data flags.
//
// COBRA CLI STRUCTURE:
//   rootCmd (hsnval)
//   ├── validateCmd (hsnval validate)
//   ├── checkCmd    (hsnval check)
//   ├── tablesCmd   (hsnval tables)
//   └── versionCmd  (hsnval version)
//
// CONFIGURATION:
//   Before any subcommand runs, the root command:
//   1. Loads the config file (--config) with HSNVAL_* env overrides
//   2. Builds the zap logger (--verbose forces debug level)
//
// =============================================================================

package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ginjaninja78/hsn-sac-validator/internal/config"
	"github.com/ginjaninja78/hsn-sac-validator/internal/logging"
	"github.com/ginjaninja78/hsn-sac-validator/internal/reference"
	"github.com/ginjaninja78/hsn-sac-validator/internal/validation"
)

// =============================================================================
// GLOBAL VARIABLES
// =============================================================================

// cfgFile holds the path to the configuration file.
var cfgFile string

// verbose enables debug logging.
var verbose bool

// Reference data overrides. Non-empty values win over the config file.
var (
	hsnFile   string
	sacFile   string
	useSample bool
	sheetName string
)

// appConfig is loaded in PersistentPreRunE. nil means defaults.
var appConfig *config.Config

// logger is built in PersistentPreRunE. nil means no-op.
var logger *zap.Logger

// =============================================================================
// ROOT COMMAND DEFINITION
// =============================================================================

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "hsnval",
	Short: "HSN/SAC Validator - Check trade classification codes against reference tables",
	Long: `hsnval validates HSN (goods) and SAC (services) codes.

For every code it reports:
  - whether the format is valid (digits only, up to 8 for HSN, 6 for SAC)
  - whether the code exists in the reference table
  - the reference description, when it exists

Reference tables are read from XLSX or CSV files with columns
HSNCode/Description (HSN) and SAC_CD/SAC_Description (SAC), or taken from
the built-in sample with --sample.

Example Usage:
  hsnval validate --sample --type HSN --codes "01,0101,99999999"
  hsnval validate --hsn-file hsn.xlsx 0101 01011010
  hsnval check --sac-file sac.xlsx --type SAC --input ./invoices`,

	SilenceUsage: true,

	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == "version" {
			return nil
		}

		cfg, err := config.Load(cfgFile)
		if err != nil {
			return err
		}
		appConfig = cfg

		logger, err = logging.New(cfg.LogLevel, verbose)
		return err
	},

	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},

	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

// =============================================================================
// EXECUTE FUNCTION
// =============================================================================

// Execute runs the command tree. It is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// =============================================================================
// INITIALIZATION
// =============================================================================

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", config.DefaultConfigFile,
		"Path to the configuration file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"Enable verbose output for debugging")

	rootCmd.PersistentFlags().StringVar(&hsnFile, "hsn-file", "",
		"HSN reference file (.xlsx, .xlsm, .csv) with HSNCode and Description columns")
	rootCmd.PersistentFlags().StringVar(&sacFile, "sac-file", "",
		"SAC reference file (.xlsx, .xlsm, .csv) with SAC_CD and SAC_Description columns")
	rootCmd.PersistentFlags().BoolVar(&useSample, "sample", false,
		"Load the built-in sample reference data")
	rootCmd.PersistentFlags().StringVar(&sheetName, "sheet", "",
		"Worksheet to read from XLSX reference files (default: first sheet)")
}

// =============================================================================
// SHARED HELPERS
// =============================================================================

// currentConfig returns the loaded configuration with flag overrides applied.
func currentConfig() config.Config {
	cfg := config.Default()
	if appConfig != nil {
		cfg = appConfig
	}

	merged := *cfg
	if hsnFile != "" {
		merged.HSNFile = hsnFile
	}
	if sacFile != "" {
		merged.SACFile = sacFile
	}
	if useSample {
		merged.UseSample = true
	}
	if sheetName != "" {
		merged.SheetName = sheetName
	}
	return merged
}

func currentLogger() *zap.Logger {
	if logger == nil {
		return zap.NewNop()
	}
	return logger
}

// newValidator builds a Validator from the configured reference data.
// Load failures are reported on stderr and do not stop the command: the
// tables that did load are used.
func newValidator(cmd *cobra.Command, cfg config.Config) *validation.Validator {
	v := validation.NewValidatorWithOptions(validation.Options{
		Logger: currentLogger(),
		Source: reference.SourceOptions{
			SheetName: cfg.SheetName,
			HeaderRow: cfg.HeaderRow,
			Delimiter: cfg.CSVDelimiter,
		},
	})

	if cfg.UseSample {
		v.LoadSample()
	}

	if err := v.LoadFiles(cfg.HSNFile, cfg.SACFile); err != nil {
		printLoadErrors(cmd.ErrOrStderr(), err)
	}

	if !v.DataLoaded() {
		currentLogger().Warn("no reference data loaded; existence checks will report false",
			zap.String("hint", "use --sample, --hsn-file or --sac-file"))
	}

	return v
}

// printLoadErrors writes one line per failed table.
func printLoadErrors(w io.Writer, err error) {
	var joined interface{ Unwrap() []error }
	if errors.As(err, &joined) {
		for _, e := range joined.Unwrap() {
			fmt.Fprintf(w, "Error: %v\n", e)
		}
		return
	}
	fmt.Fprintf(w, "Error: %v\n", err)
}
