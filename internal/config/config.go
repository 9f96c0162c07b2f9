// =============================================================================
// HSN/SAC Validator - Configuration Module
// =============================================================================
//
// This module loads the application configuration. Values come from, in
// increasing order of precedence:
//   1. Built-in defaults
//   2. The YAML config file (config.yaml unless --config says otherwise)
//   3. Environment variables prefixed with HSNVAL_ (e.g. HSNVAL_HSN_FILE)
//   4. Command-line flags (applied by the cmd package)
//
// EXAMPLE config.yaml:
//
//   hsn_file: ./data/hsn_master.xlsx
//   sac_file: ./data/sac_master.xlsx
//   use_sample: false
//   header_row: 1
//   input_sheet: Invoices
//   output_dir: ./reports
//   report_format: xlsx
//   report_name_format: "{type}_{input}_{timestamp}"
//   log_level: info
//
// =============================================================================

package config

import (
	"errors"
	"fmt"
	"os"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	"github.com/ginjaninja78/hsn-sac-validator/internal/csvparser"
)

// DefaultConfigFile is read when --config is not given. Unlike an explicit
// path, it is allowed to be absent.
const DefaultConfigFile = "config.yaml"

// EnvPrefix prefixes every environment override.
const EnvPrefix = "HSNVAL"

// =============================================================================
// CONFIGURATION STRUCTURE
// =============================================================================

// Config holds the application configuration.
type Config struct {
	// =========================================================================
	// REFERENCE DATA
	// =========================================================================

	// HSNFile is the HSN master file (.xlsx, .xlsm or .csv) with columns
	// HSNCode and Description. Empty means no HSN file is loaded.
	HSNFile string `mapstructure:"hsn_file"`

	// SACFile is the SAC master file with columns SAC_CD and SAC_Description.
	SACFile string `mapstructure:"sac_file"`

	// UseSample loads the built-in demonstration tables before any files.
	// Default: false
	UseSample bool `mapstructure:"use_sample"`

	// SheetName is the worksheet read from XLSX reference files.
	// Default: "" (first sheet)
	SheetName string `mapstructure:"sheet_name"`

	// HeaderRow is the 1-based row holding the column headers in XLSX
	// reference files. Rows above it (titles, notes) are skipped.
	// Default: 1
	HeaderRow int `mapstructure:"header_row" validate:"gte=1"`

	// CSVDelimiter is the field separator for CSV files: a single character
	// or one of "tab", "pipe", "semicolon".
	// Default: ","
	CSVDelimiter string `mapstructure:"csv_delimiter" validate:"delimiter"`

	// =========================================================================
	// CHECK COMMAND
	// =========================================================================

	// CodeColumn is the column holding codes in files given to 'check'.
	// Default: "Code"
	CodeColumn string `mapstructure:"code_column" validate:"notblank"`

	// InputSheet is the worksheet read from XLSX files given to 'check'.
	// It is separate from SheetName so reference and input workbooks can
	// use different layouts.
	// Default: "" (first sheet)
	InputSheet string `mapstructure:"input_sheet"`

	// OutputDir is where 'check' writes reports and the summary log.
	// Default: "./reports"
	OutputDir string `mapstructure:"output_dir"`

	// ReportNameFormat names report files. Placeholders:
	//   {uuid}      - A random UUID
	//   {timestamp} - Current timestamp (YYYYMMDD_HHMMSS)
	//   {type}      - Code type (HSN or SAC)
	//   {input}     - Input file name without extension
	// The extension is added from the report format.
	// Default: "{type}_{input}_{timestamp}"
	ReportNameFormat string `mapstructure:"report_name_format" validate:"required"`

	// =========================================================================
	// OUTPUT SETTINGS
	// =========================================================================

	// ReportFormat is one of: table, json, yaml, csv, xlsx, xml.
	// Default: "table"
	ReportFormat string `mapstructure:"report_format" validate:"oneof=table json yaml csv xlsx xml"`

	// PreviewRows is how many entries 'tables' prints per table.
	// Default: 10
	PreviewRows int `mapstructure:"preview_rows" validate:"gte=0"`

	// LogLevel controls the verbosity of logging.
	// Valid values: "debug", "info", "warn", "error"
	// Default: "warn"
	LogLevel string `mapstructure:"log_level" validate:"oneof=debug info warn error"`
}

// =============================================================================
// CONFIGURATION LOADING
// =============================================================================

// Load reads the configuration file at configPath and applies environment
// overrides.
//
// PARAMETERS:
//   - configPath: The path to the YAML configuration file. If it equals
//     DefaultConfigFile (or is empty) and does not exist, defaults are used.
//
// RETURNS:
//   - The merged, validated configuration.
//   - An error if the file cannot be parsed or a value is invalid.
func Load(configPath string) (*Config, error) {
	v := viper.New()
	applyDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath == "" {
		configPath = DefaultConfigFile
	}

	_, statErr := os.Stat(configPath)
	switch {
	case statErr == nil:
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	case errors.Is(statErr, os.ErrNotExist) && configPath == DefaultConfigFile:
		// Optional default file; run on defaults and env.
	default:
		return nil, fmt.Errorf("failed to read config file: %w", statErr)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// Default returns the configuration used when no file or env is present.
func Default() *Config {
	v := viper.New()
	applyDefaults(v)

	var cfg Config
	_ = v.Unmarshal(&cfg)
	return &cfg
}

// applyDefaults registers every key with its default value. Registering all
// keys also lets AutomaticEnv find overrides for keys absent from the file.
func applyDefaults(v *viper.Viper) {
	v.SetDefault("hsn_file", "")
	v.SetDefault("sac_file", "")
	v.SetDefault("use_sample", false)
	v.SetDefault("sheet_name", "")
	v.SetDefault("header_row", 1)
	v.SetDefault("input_sheet", "")
	v.SetDefault("csv_delimiter", ",")
	v.SetDefault("code_column", "Code")
	v.SetDefault("output_dir", "./reports")
	v.SetDefault("report_name_format", "{type}_{input}_{timestamp}")
	v.SetDefault("report_format", "table")
	v.SetDefault("preview_rows", 10)
	v.SetDefault("log_level", "warn")
}

// =============================================================================
// VALIDATION
// =============================================================================

// structValidator checks the `validate` tags on Config. Field errors are named
// after the mapstructure key so messages match the config file.
var structValidator = func() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		return strings.SplitN(f.Tag.Get("mapstructure"), ",", 2)[0]
	})
	_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	_ = v.RegisterValidation("delimiter", func(fl validator.FieldLevel) bool {
		return csvparser.ValidDelimiter(fl.Field().String())
	})
	return v
}()

// Validate normalises case-insensitive values and checks every field.
func (c *Config) Validate() error {
	c.ReportFormat = strings.ToLower(strings.TrimSpace(c.ReportFormat))
	c.LogLevel = strings.ToLower(strings.TrimSpace(c.LogLevel))

	err := structValidator.Struct(c)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		msgs = append(msgs, describe(fe))
	}
	return errors.New(strings.Join(msgs, "; "))
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "oneof":
		return fmt.Sprintf("%s %q must be one of %s", fe.Field(), fe.Value(),
			strings.ReplaceAll(fe.Param(), " ", ", "))
	case "gte":
		return fmt.Sprintf("%s must be at least %s", fe.Field(), fe.Param())
	case "notblank", "required":
		return fmt.Sprintf("%s must not be empty", fe.Field())
	case "delimiter":
		return fmt.Sprintf("%s %q must be a single character, tab, pipe or semicolon", fe.Field(), fe.Value())
	default:
		return fmt.Sprintf("%s failed %s check", fe.Field(), fe.Tag())
	}
}
