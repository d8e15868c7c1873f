package output

import "github.com/rgehrsitz/tedori/internal/domain"

// DefaultAssumptions lists key modelling assumptions rendered when a report
// carries none of its own.
var DefaultAssumptions = []string{
	"Tax rules: 2024 levels held constant",
	"Resident tax is assessed on the previous year's income",
	"Hometown donations use the one-stop special exception",
	"Company housing is deducted from take-home after tax",
	"Social insurance uses Kyokai Kenpo prefecture rates",
}

func assumptionsFor(report *domain.Report) []string {
	if len(report.Assumptions) > 0 {
		return report.Assumptions
	}
	return DefaultAssumptions
}
