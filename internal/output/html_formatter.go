package output

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"html/template"

	"github.com/neorent/forecast/internal/domain"
)

// HTMLFormatter produces a standalone HTML report.
type HTMLFormatter struct{}

func (h HTMLFormatter) Name() string { return "html" }

//go:embed templates/report.html.tmpl
var htmlTemplateSource string

var htmlTemplate = template.Must(template.New("report").Funcs(template.FuncMap{
	"curr": FormatCurrency,
	"pct":  FormatPercentage,
	"json": func(v interface{}) template.JS {
		b, _ := json.Marshal(v)
		return template.JS(b)
	},
}).Parse(htmlTemplateSource))

func (h HTMLFormatter) Format(report *domain.PortfolioReport) ([]byte, error) {
	var buf bytes.Buffer
	data := struct {
		*domain.PortfolioReport
		Recommendation Recommendation
		Assumptions    []string
	}{report, AnalyzePortfolio(report), GenerateAssumptions(report)}
	if err := htmlTemplate.Execute(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
