package output

import (
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConsoleLiteFormatter(t *testing.T) {
	out, err := ConsoleFormatter{}.Format(buildTestReport())
	require.NoError(t, err)

	content := string(out)
	assert.True(t, strings.HasPrefix(content, "PORTFOLIO SUMMARY (2025-06)"))
	assert.Contains(t, content, "Studio: Revenue=1150.00 € (actual)")
	assert.Contains(t, content, "Tax (FR): 180.84 €")
	assert.Contains(t, content, "Best: Studio (13020.00 € / year)")
}

func TestConsoleVerboseFormatter(t *testing.T) {
	out, err := ConsoleVerboseFormatter{}.Format(buildTestReport())
	require.NoError(t, err)

	content := string(out)
	assert.Contains(t, content, "RENTAL PORTFOLIO PROFITABILITY FORECAST")
	assert.Contains(t, content, "KEY ASSUMPTIONS:")
	assert.Contains(t, content, "PROPERTY 2: Coloc")
	assert.Contains(t, content, "Occupancy:              75.00%")
	assert.Contains(t, content, "CHARGES (2 months, total 130.00 €, average 65.00 €, last 2025-05 70.00 €)")
	assert.Contains(t, content, "2025-04")
	assert.Contains(t, content, "60.00 €", "a record without stored total shows its category sum")
	assert.Contains(t, content, "FISCAL ESTIMATE (FR):")
	assert.Contains(t, content, "Loss-making:      Coloc")
}

func TestCSVSummarizerDeterministicOrder(t *testing.T) {
	out, err := CSVSummarizer{}.Format(buildTestReport())
	require.NoError(t, err)

	records, err := csv.NewReader(strings.NewReader(string(out))).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3, "header + 2 rows")
	assert.Equal(t, "Coloc", records[1][0], "rows sorted by title")
	assert.Equal(t, "Studio", records[2][0])
	assert.Equal(t, "-50.00", records[1][4])
	assert.Equal(t, "75.00", records[1][10])
	assert.Equal(t, "2", records[2][11])
}

func TestCSVDetailedExporter(t *testing.T) {
	out, err := CSVDetailedExporter{}.Format(buildTestReport())
	require.NoError(t, err)

	records, err := csv.NewReader(strings.NewReader(string(out))).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3, "header + one row per charge month")

	header := records[0]
	assert.Equal(t, "electricity", header[2])
	assert.Equal(t, "IsLastMonth", header[len(header)-1])
	assert.Equal(t, []string{"Studio", "2025-05"}, records[1][:2])
	assert.Equal(t, "70.00", records[1][len(header)-2])
	assert.Equal(t, "true", records[1][len(header)-1])
	assert.Equal(t, "60.00", records[2][len(header)-2])
	assert.Equal(t, "false", records[2][len(header)-1])
}

func TestJSONFormatter(t *testing.T) {
	out, err := JSONFormatter{}.Format(buildTestReport())
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(out, &decoded))
	assert.Equal(t, "2025-06", decoded["month"])
	assert.Len(t, decoded["properties"], 2)
	fiscal := decoded["fiscal"].(map[string]interface{})
	assert.Equal(t, "180.84", fiscal["tax"])
}

func TestHTMLFormatter(t *testing.T) {
	out, err := HTMLFormatter{}.Format(buildTestReport())
	require.NoError(t, err)

	content := string(out)
	assert.True(t, strings.HasPrefix(content, "<!DOCTYPE html>"))
	assert.Contains(t, content, "Property Summary")
	assert.Contains(t, content, "Key Assumptions")
	assert.Contains(t, content, DefaultAssumptions[0])
	assert.Contains(t, content, `class="loss"`)
	assert.Contains(t, content, "12239.16 €")
	assert.Contains(t, content, `id="report-data"`)
}

func TestFormatterAliasResolution(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"console-verbose", "console"},
		{"VERBOSE", "console"},
		{"summary", "console-lite"},
		{"csv-detailed", "detailed-csv"},
		{" json ", "json"},
		{"html", "html"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := GetFormatterByName(tt.name)
			require.NotNil(t, f)
			assert.Equal(t, tt.want, f.Name())
		})
	}
	assert.Nil(t, GetFormatterByName("pdf"))
}

func TestAvailableFormatterNames(t *testing.T) {
	assert.Equal(t, []string{"console", "console-lite", "csv", "detailed-csv", "html", "json"}, AvailableFormatterNames())
	assert.Contains(t, AvailableFormatAliases(), "verbose")
}

func TestExtension(t *testing.T) {
	assert.Equal(t, "txt", Extension(ConsoleVerboseFormatter{}))
	assert.Equal(t, "csv", Extension(CSVDetailedExporter{}))
	assert.Equal(t, "json", Extension(JSONFormatter{}))
	assert.Equal(t, "html", Extension(HTMLFormatter{}))
}
