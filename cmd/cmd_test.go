package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/ginjaninja78/hsn-sac-validator/internal/config"
	"github.com/ginjaninja78/hsn-sac-validator/internal/types"
)

// resetGlobals puts every flag variable back to its default and restores
// them again when the test ends.
func resetGlobals(t *testing.T) {
	t.Helper()
	reset := func() {
		hsnFile, sacFile, useSample, sheetName = "", "", false, ""
		validateType, validateCodes, validateFormat, validateOutput = "HSN", "", "", ""
		checkType, checkInput, checkColumn, checkFormat, checkSheet = "HSN", "", "", "", ""
		appConfig = nil
		logger = zap.NewNop()
	}
	reset()
	t.Cleanup(reset)
}

func newTestCommand() (*cobra.Command, *bytes.Buffer, *bytes.Buffer) {
	cmd := &cobra.Command{}
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	return cmd, &stdout, &stderr
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestRunValidate_DelimitedCodes(t *testing.T) {
	resetGlobals(t)
	useSample = true
	validateCodes = "01,0101,99999999"
	validateFormat = "json"
	cmd, stdout, _ := newTestCommand()

	require.NoError(t, runValidate(cmd, nil))

	var results []types.ValidationResult
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &results))
	assert.Equal(t, []types.ValidationResult{
		{Code: "01", FormatValid: true, Exists: true, Description: "Live Animals"},
		{Code: "0101", FormatValid: true, Exists: true, Description: "Live Horses and Similar Creatures"},
		{Code: "99999999", FormatValid: true, Exists: false},
	}, results)
}

func TestRunValidate_PositionalSAC(t *testing.T) {
	resetGlobals(t)
	useSample = true
	validateType = "sac"
	cmd, stdout, _ := newTestCommand()

	require.NoError(t, runValidate(cmd, []string{"9954", "12a"}))

	out := stdout.String()
	assert.Contains(t, out, "SAC CODE")
	assert.Contains(t, out, "Construction Services")
	assert.Contains(t, out, "2 code(s): 1 found, 0 not found, 1 invalid format")
}

func TestRunValidate_Errors(t *testing.T) {
	tests := []struct {
		name  string
		setup func()
		args  []string
	}{
		{"no codes", func() {}, nil},
		{"both inputs", func() { validateCodes = "01" }, []string{"0101"}},
		{"bad type", func() { validateType = "GST" }, []string{"01"}},
		{"bad format", func() { validateFormat = "pdf" }, []string{"01"}},
		{"xlsx to stdout", func() { validateFormat = "xlsx" }, []string{"01"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resetGlobals(t)
			useSample = true
			tt.setup()
			cmd, _, _ := newTestCommand()

			assert.Error(t, runValidate(cmd, tt.args))
		})
	}
}

func TestRunValidate_OutputFile(t *testing.T) {
	resetGlobals(t)
	useSample = true
	validateFormat = "csv"
	validateOutput = filepath.Join(t.TempDir(), "out.csv")
	cmd, stdout, _ := newTestCommand()

	require.NoError(t, runValidate(cmd, []string{"01"}))

	assert.Contains(t, stdout.String(), "Report written to")
	data, err := os.ReadFile(validateOutput)
	require.NoError(t, err)
	assert.Contains(t, string(data), "01,true,true,Live Animals")
}

func TestRunValidate_NoDataStillAnswers(t *testing.T) {
	resetGlobals(t)
	validateFormat = "csv"
	cmd, stdout, _ := newTestCommand()

	require.NoError(t, runValidate(cmd, []string{"01"}))

	assert.Contains(t, stdout.String(), "01,true,false,")
}

func TestRunValidate_LoadErrorNamesFile(t *testing.T) {
	resetGlobals(t)
	dir := t.TempDir()
	hsnFile = writeFile(t, dir, "hsn_master.csv", "HSNCode,Desc\n01,Live Animals\n")
	sacFile = writeFile(t, dir, "sac_master.csv", "SAC_CD,SAC_Description\n9954,Construction\n")
	validateType = "SAC"
	validateFormat = "csv"
	cmd, stdout, stderr := newTestCommand()

	require.NoError(t, runValidate(cmd, []string{"9954"}))

	assert.Equal(t, "Error: Missing expected columns in HSN file hsn_master.csv: Description\n", stderr.String())
	assert.Contains(t, stdout.String(), "9954,true,true,Construction")
}

func TestRunCheck(t *testing.T) {
	resetGlobals(t)
	inDir := t.TempDir()
	outDir := t.TempDir()
	writeFile(t, inDir, "a.csv", "Invoice,Code\n1,01\n2, 0101 \n3,\n4,abc\n")
	writeFile(t, inDir, "b.csv", "Invoice,HSN\n1,01\n")
	writeFile(t, inDir, "readme.txt", "ignored")

	cfg := config.Default()
	cfg.OutputDir = outDir
	cfg.ReportFormat = "csv"
	cfg.UseSample = true
	appConfig = cfg

	checkInput = inDir
	cmd, stdout, _ := newTestCommand()

	require.NoError(t, runCheck(cmd, nil))

	out := stdout.String()
	assert.Contains(t, out, "Checking 2 file(s) as HSN")
	assert.Contains(t, out, "✓ a.csv")
	assert.Contains(t, out, "(2 found, 0 not found, 1 invalid)")
	assert.Contains(t, out, `✗ b.csv: column "Code" not found`)
	assert.Contains(t, out, "Files checked:   1")
	assert.Contains(t, out, "Files failed:    1")

	reports, err := filepath.Glob(filepath.Join(outDir, "HSN_a_*.csv"))
	require.NoError(t, err)
	require.Len(t, reports, 1)
	data, err := os.ReadFile(reports[0])
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	assert.Equal(t, []string{
		"code,format_valid,exists,description",
		"01,true,true,Live Animals",
		"0101,true,true,Live Horses and Similar Creatures",
		"abc,false,false,",
	}, lines)

	summaries, err := filepath.Glob(filepath.Join(outDir, "check_summary_*.txt"))
	require.NoError(t, err)
	assert.Len(t, summaries, 1)
}

func TestRunCheck_ColumnFlag(t *testing.T) {
	resetGlobals(t)
	inDir := t.TempDir()
	outDir := t.TempDir()
	input := writeFile(t, inDir, "services.csv", "SAC\n9954\n")

	cfg := config.Default()
	cfg.OutputDir = outDir
	cfg.UseSample = true
	appConfig = cfg

	checkInput = input
	checkType = "SAC"
	checkColumn = "SAC"
	checkFormat = "json"
	cmd, stdout, _ := newTestCommand()

	require.NoError(t, runCheck(cmd, nil))

	assert.Contains(t, stdout.String(), "(1 found, 0 not found, 0 invalid)")
	reports, err := filepath.Glob(filepath.Join(outDir, "SAC_services_*.json"))
	require.NoError(t, err)
	assert.Len(t, reports, 1)
}

func writeWorkbook(t *testing.T, dir, name, sheet string, rows ...[]interface{}) string {
	t.Helper()
	f := excelize.NewFile()
	if sheet != "Sheet1" {
		require.NoError(t, f.SetSheetName("Sheet1", sheet))
	}
	for i, row := range rows {
		cellRef, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		r := row
		require.NoError(t, f.SetSheetRow(sheet, cellRef, &r))
	}
	path := filepath.Join(dir, name)
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())
	return path
}

func TestRunCheck_SameBaseName(t *testing.T) {
	resetGlobals(t)
	inDir := t.TempDir()
	outDir := t.TempDir()
	writeFile(t, inDir, "codes.csv", "Code\n01\n")
	writeWorkbook(t, inDir, "codes.xlsx", "Sheet1", []interface{}{"Code"}, []interface{}{"99999999"})

	cfg := config.Default()
	cfg.OutputDir = outDir
	cfg.ReportFormat = "csv"
	cfg.ReportNameFormat = "{type}_{input}"
	cfg.UseSample = true
	appConfig = cfg

	checkInput = inDir
	cmd, stdout, _ := newTestCommand()

	require.NoError(t, runCheck(cmd, nil))

	out := stdout.String()
	assert.Contains(t, out, "✓ codes.csv -> HSN_codes.csv")
	assert.Contains(t, out, "✓ codes.xlsx -> HSN_codes_2.csv")

	reports, err := filepath.Glob(filepath.Join(outDir, "HSN_codes*.csv"))
	require.NoError(t, err)
	require.Len(t, reports, 2)

	first, err := os.ReadFile(filepath.Join(outDir, "HSN_codes.csv"))
	require.NoError(t, err)
	assert.Contains(t, string(first), "01,true,true,Live Animals")

	second, err := os.ReadFile(filepath.Join(outDir, "HSN_codes_2.csv"))
	require.NoError(t, err)
	assert.Contains(t, string(second), "99999999,true,false,")

	// A second run leaves the first run's reports alone.
	stdout.Reset()
	require.NoError(t, runCheck(cmd, nil))
	reports, err = filepath.Glob(filepath.Join(outDir, "HSN_codes*.csv"))
	require.NoError(t, err)
	assert.Len(t, reports, 4)
}

func TestRunCheck_InputSheetIsSeparateFromReferenceSheet(t *testing.T) {
	resetGlobals(t)
	refDir := t.TempDir()
	inDir := t.TempDir()
	hsnFile = writeWorkbook(t, refDir, "hsn.xlsx", "HSN Master",
		[]interface{}{"HSNCode", "Description"}, []interface{}{"0101", "Live horses"})
	input := writeWorkbook(t, inDir, "invoices.xlsx", "Invoices",
		[]interface{}{"Code"}, []interface{}{"0101"})

	cfg := config.Default()
	cfg.OutputDir = t.TempDir()
	cfg.ReportFormat = "json"
	appConfig = cfg

	sheetName = "HSN Master"
	checkInput = input
	cmd, stdout, stderr := newTestCommand()

	require.NoError(t, runCheck(cmd, nil))
	assert.Empty(t, stderr.String())
	assert.Contains(t, stdout.String(), "✓ invoices.xlsx")
	assert.Contains(t, stdout.String(), "(1 found, 0 not found, 0 invalid)")

	checkSheet = "Missing"
	stdout.Reset()
	require.NoError(t, runCheck(cmd, nil))
	assert.Contains(t, stdout.String(), "sheet 'Missing' not found (available: Invoices)")
}

func TestRunCheck_Errors(t *testing.T) {
	resetGlobals(t)
	cmd, _, _ := newTestCommand()

	assert.Error(t, runCheck(cmd, nil), "missing --input")

	checkInput = filepath.Join(t.TempDir(), "missing")
	assert.Error(t, runCheck(cmd, nil))
}

func TestRunTables(t *testing.T) {
	resetGlobals(t)
	dir := t.TempDir()
	hsnFile = writeFile(t, dir, "hsn.csv", "HSNCode,Description\n01,A\n02,B\n03,C\n")

	cfg := config.Default()
	cfg.PreviewRows = 2
	appConfig = cfg
	cmd, stdout, _ := newTestCommand()

	require.NoError(t, runTables(cmd, nil))

	out := stdout.String()
	assert.Contains(t, out, "HSN: 3 row(s) from "+hsnFile)
	assert.Contains(t, out, "01  A")
	assert.Contains(t, out, "02  B")
	assert.NotContains(t, out, "03  C")
	assert.Contains(t, out, "... 1 more")
	assert.Contains(t, out, "SAC: not loaded")
}

func TestCurrentConfig_FlagOverrides(t *testing.T) {
	resetGlobals(t)
	cfg := config.Default()
	cfg.HSNFile = "from_config.xlsx"
	cfg.SACFile = "sac_config.xlsx"
	appConfig = cfg

	hsnFile = "from_flag.xlsx"
	sheetName = "Master"

	merged := currentConfig()

	assert.Equal(t, "from_flag.xlsx", merged.HSNFile)
	assert.Equal(t, "sac_config.xlsx", merged.SACFile)
	assert.Equal(t, "Master", merged.SheetName)
	assert.Equal(t, "from_config.xlsx", appConfig.HSNFile, "the loaded config is not modified")
}
