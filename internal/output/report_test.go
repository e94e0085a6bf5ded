package output

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateReport(t *testing.T) {
	dir := t.TempDir()
	files, err := GenerateReport(buildTestReport(), "json", dir)
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, filepath.Join(dir, "neorent_report_20250615_100000.json"), files[0])

	data, err := os.ReadFile(files[0])
	require.NoError(t, err)
	assert.Contains(t, string(data), `"month": "2025-06"`)
}

func TestGenerateReport_All(t *testing.T) {
	files, err := GenerateReport(buildTestReport(), "all", t.TempDir())
	require.NoError(t, err)
	require.Len(t, files, 3)
	assert.True(t, strings.HasSuffix(files[0], ".txt"))
	assert.True(t, strings.HasSuffix(files[1], ".csv"))
	assert.True(t, strings.HasSuffix(files[2], ".json"))
}

func TestUnknownFormatErrorIncludesSuggestions(t *testing.T) {
	_, err := GenerateReport(buildTestReport(), "definitely-not-a-format", t.TempDir())
	require.ErrorIs(t, err, ErrUnsupportedFormat)
	assert.Contains(t, err.Error(), "Try one of:")
	assert.Contains(t, err.Error(), "console-lite")

	var buf bytes.Buffer
	assert.ErrorIs(t, Render(&buf, buildTestReport(), "pdf"), ErrUnsupportedFormat)
}

func TestRender(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, buildTestReport(), "summary"))
	assert.True(t, strings.HasPrefix(buf.String(), "PORTFOLIO SUMMARY"))
}
