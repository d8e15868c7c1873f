package output

import (
	"bytes"
	_ "embed"
	"html/template"

	"github.com/rgehrsitz/tedori/internal/domain"
	"github.com/rgehrsitz/tedori/internal/recommend"
)

// HTMLFormatter produces a standalone HTML page.
type HTMLFormatter struct{}

func (h HTMLFormatter) Name() string { return "html" }

//go:embed templates/report.html.tmpl
var htmlTemplateSource string

var htmlTemplate = template.Must(template.New("report").Funcs(template.FuncMap{
	"yen": FormatCurrency,
	"pct": FormatPercentage,
}).Parse(htmlTemplateSource))

// templateData is what both document templates render.
type templateData struct {
	*domain.Report
	Recommendations []domain.Recommendation
	AssumptionList  []string
}

func newTemplateData(report *domain.Report) templateData {
	return templateData{
		Report:          report,
		Recommendations: recommend.Merge(report.CatalogRecommendations, report.ProfileRecommendations),
		AssumptionList:  assumptionsFor(report),
	}
}

func (h HTMLFormatter) Format(report *domain.Report) ([]byte, error) {
	var buf bytes.Buffer
	if err := htmlTemplate.Execute(&buf, newTemplateData(report)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
