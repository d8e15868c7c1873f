package output

import (
	"bytes"
	"fmt"

	"github.com/rgehrsitz/tedori/internal/domain"
	"github.com/rgehrsitz/tedori/internal/recommend"
)

// ConsoleFormatter prints a short summary: the headline figures and the
// top recommendations.
type ConsoleFormatter struct{}

func (c ConsoleFormatter) Name() string { return "console-lite" }

// summaryLimit caps the recommendations shown in the summary.
const summaryLimit = 3

func (c ConsoleFormatter) Format(report *domain.Report) ([]byte, error) {
	if report == nil || report.Result == nil {
		return nil, fmt.Errorf("report has no result")
	}
	var buf bytes.Buffer
	r := report.Result

	fmt.Fprintln(&buf, titleStyle.Render("TAKE-HOME SUMMARY"))
	fmt.Fprintf(&buf, "Gross Income:      %s\n", FormatCurrency(r.GrossIncome))
	fmt.Fprintf(&buf, "Income Tax:        %s\n", FormatCurrency(r.IncomeTax))
	fmt.Fprintf(&buf, "Resident Tax:      %s\n", FormatCurrency(r.ResidentTax))
	fmt.Fprintf(&buf, "Social Insurance:  %s\n", FormatCurrency(r.SocialInsurance.Total))
	fmt.Fprintf(&buf, "Net Income:        %s (%s a month)\n", FormatCurrency(r.NetIncome), FormatCurrency(r.MonthlyNetIncome))
	fmt.Fprintf(&buf, "Furusato Limit:    %s\n", FormatCurrency(r.FurusatoLimit))

	merged := recommend.Merge(report.CatalogRecommendations, report.ProfileRecommendations)
	if len(merged) > 0 {
		fmt.Fprintln(&buf)
		fmt.Fprintln(&buf, "Top Recommendations:")
		for i, rec := range merged {
			if i == summaryLimit {
				fmt.Fprintf(&buf, "  … %d more\n", len(merged)-summaryLimit)
				break
			}
			fmt.Fprintf(&buf, "  %-36s %12s\n", rec.Title, FormatCurrency(rec.EstimatedAnnualSaving))
		}
	}
	return buf.Bytes(), nil
}
