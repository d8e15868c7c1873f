package output

import (
	"bytes"
	_ "embed"
	"text/template"

	"github.com/rgehrsitz/tedori/internal/domain"
)

// MarkdownFormatter renders the report as a Markdown document.
type MarkdownFormatter struct{}

func (m MarkdownFormatter) Name() string { return "markdown" }

//go:embed templates/report.md.tmpl
var markdownTemplateSource string

var markdownTemplate = template.Must(template.New("report.md").Funcs(template.FuncMap{
	"yen":  FormatCurrency,
	"pct":  FormatPercentage,
	"optn": optionalYen,
}).Parse(markdownTemplateSource))

func (m MarkdownFormatter) Format(report *domain.Report) ([]byte, error) {
	var buf bytes.Buffer
	if err := markdownTemplate.Execute(&buf, newTemplateData(report)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
