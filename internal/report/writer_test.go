package report

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"gopkg.in/yaml.v3"

	"github.com/ginjaninja78/hsn-sac-validator/internal/types"
)

var sampleResults = []types.ValidationResult{
	{Code: "01", FormatValid: true, Exists: true, Description: "Live Animals"},
	{Code: "99999999", FormatValid: true, Exists: false},
	{Code: "12a", FormatValid: false, Exists: false},
}

func TestParseFormat(t *testing.T) {
	for _, name := range []string{"table", "JSON", " yaml ", "csv", "xlsx", "xml"} {
		_, err := ParseFormat(name)
		assert.NoError(t, err, name)
	}

	_, err := ParseFormat("pdf")
	assert.Error(t, err)

	assert.Equal(t, ".txt", FormatTable.Extension())
	assert.Equal(t, ".xlsx", FormatXLSX.Extension())
}

func TestSummarize(t *testing.T) {
	s := Summarize(sampleResults)

	assert.Equal(t, Summary{Total: 3, Found: 1, NotFound: 1, FormatInvalid: 1}, s)
	assert.Equal(t, "3 code(s): 1 found, 1 not found, 1 invalid format", s.String())
	assert.Equal(t, Summary{}, Summarize(nil))
}

func TestWrite_Table(t *testing.T) {
	var buf bytes.Buffer

	require.NoError(t, Write(&buf, sampleResults, types.HSN, FormatTable))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 6)
	assert.True(t, strings.HasPrefix(lines[0], "HSN CODE"))
	assert.Contains(t, lines[1], "Live Animals")
	assert.Equal(t, []string{"01", "valid", "yes", "Live", "Animals"}, strings.Fields(lines[1]))
	assert.Equal(t, []string{"99999999", "valid", "no"}, strings.Fields(lines[2]))
	assert.Equal(t, []string{"12a", "invalid", "no"}, strings.Fields(lines[3]))
	assert.Empty(t, lines[4])
	assert.Equal(t, "3 code(s): 1 found, 1 not found, 1 invalid format", lines[5])
}

func TestWrite_JSON(t *testing.T) {
	var buf bytes.Buffer

	require.NoError(t, Write(&buf, sampleResults, types.HSN, FormatJSON))

	var decoded []map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	require.Len(t, decoded, 3)
	assert.Equal(t, map[string]interface{}{
		"code":         "01",
		"format_valid": true,
		"exists":       true,
		"description":  "Live Animals",
	}, decoded[0])
}

func TestWrite_JSONEmpty(t *testing.T) {
	var buf bytes.Buffer

	require.NoError(t, Write(&buf, nil, types.SAC, FormatJSON))

	assert.Equal(t, "[]\n", buf.String())
}

func TestWrite_YAML(t *testing.T) {
	var buf bytes.Buffer

	require.NoError(t, Write(&buf, sampleResults, types.HSN, FormatYAML))

	assert.Contains(t, buf.String(), "format_valid: true")

	var decoded []types.ValidationResult
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, sampleResults[0].Code, decoded[0].Code)
	assert.Equal(t, sampleResults[2].FormatValid, decoded[2].FormatValid)
}

func TestWrite_CSV(t *testing.T) {
	var buf bytes.Buffer

	require.NoError(t, Write(&buf, sampleResults, types.HSN, FormatCSV))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	assert.Equal(t, [][]string{
		{"code", "format_valid", "exists", "description"},
		{"01", "true", "true", "Live Animals"},
		{"99999999", "true", "false", ""},
		{"12a", "false", "false", ""},
	}, records)
}

func TestWrite_XLSX(t *testing.T) {
	var buf bytes.Buffer

	require.NoError(t, Write(&buf, sampleResults, types.SAC, FormatXLSX))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"SAC", "Summary"}, f.GetSheetList())

	rows, err := f.GetRows("SAC")
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, []string{"code", "format_valid", "exists", "description"}, rows[0])
	assert.Equal(t, "01", rows[1][0])
	assert.Equal(t, "Live Animals", rows[1][3])

	total, err := f.GetCellValue("Summary", "B1")
	require.NoError(t, err)
	assert.Equal(t, "3", total)
}

func TestWrite_XML(t *testing.T) {
	var buf bytes.Buffer

	require.NoError(t, Write(&buf, sampleResults, types.HSN, FormatXML))

	out := buf.String()
	assert.Contains(t, out,
		`<validationReport codeType="HSN" formatInvalid="1" found="1" notFound="1" total="3">`)
	assert.Contains(t, out, `<result n="3">`)
	assert.Contains(t, out, "<code>12a</code>")
}

func TestWrite_UnknownFormat(t *testing.T) {
	assert.Error(t, Write(&bytes.Buffer{}, sampleResults, types.HSN, Format("pdf")))
}

func TestWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")

	require.NoError(t, WriteFile(path, sampleResults, types.HSN, FormatCSV))

	assert.FileExists(t, path)
	assert.Error(t, WriteFile(filepath.Join(t.TempDir(), "missing", "out.csv"), sampleResults, types.HSN, FormatCSV))
}
