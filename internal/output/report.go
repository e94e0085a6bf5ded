package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/neorent/forecast/internal/domain"
)

// GenerateReport writes the report to a timestamped file in dir using a registered
// formatter. The pseudo-format "all" writes the verbose console text, the detailed
// CSV and the JSON document.
func GenerateReport(report *domain.PortfolioReport, format, dir string) ([]string, error) {
	if f := GetFormatterByName(format); f != nil {
		name, err := WriteFormatted(f, report, dir, Extension(f))
		if err != nil {
			return nil, err
		}
		return []string{name}, nil
	}
	if NormalizeFormatName(format) == "all" {
		var files []string
		for _, f := range []Formatter{ConsoleVerboseFormatter{}, CSVDetailedExporter{}, JSONFormatter{}} {
			name, err := WriteFormatted(f, report, dir, Extension(f))
			if err != nil {
				return files, err
			}
			files = append(files, name)
		}
		return files, nil
	}
	return nil, unsupported(format)
}

// Render writes the report to w in the named format
func Render(w io.Writer, report *domain.PortfolioReport, format string) error {
	f := GetFormatterByName(format)
	if f == nil {
		return unsupported(format)
	}
	data, err := f.Format(report)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

// unsupported enriches the error with available formatters and aliases
func unsupported(format string) error {
	return fmt.Errorf("%w: %q. Try one of: %s (aliases: %s)", ErrUnsupportedFormat, format, strings.Join(AvailableFormatterNames(), ", "), strings.Join(AvailableFormatAliases(), ", "))
}
