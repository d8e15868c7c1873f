package output

import (
	"bytes"
	"encoding/csv"

	"github.com/rgehrsitz/tedori/internal/domain"
	"github.com/shopspring/decimal"
)

// CSVSummarizer writes the report as Section,Item,Amount rows so it loads
// straight into a spreadsheet.
type CSVSummarizer struct{}

func (c CSVSummarizer) Name() string { return "csv" }

func (c CSVSummarizer) Format(report *domain.Report) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	if err := w.Write([]string{"Section", "Item", "Amount"}); err != nil {
		return nil, err
	}

	var rows [][]string
	add := func(section, item string, amount decimal.Decimal) {
		rows = append(rows, []string{section, item, amount.StringFixed(0)})
	}

	if r := report.Result; r != nil {
		add("income", "gross_income", r.GrossIncome)
		add("income", "business_or_salary_income", r.BusinessOrSalaryIncome)
		add("income", "side_income_net", r.SideIncomeNet)
		add("deductions", "total", r.TotalDeductions)
		add("deductions", "taxable_income", r.TaxableIncome)
		add("tax", "income_tax", r.IncomeTax)
		add("tax", "resident_tax", r.ResidentTax)
		add("tax", "furusato_credit", r.FurusatoCredit)
		add("social_insurance", "health", r.SocialInsurance.Health)
		add("social_insurance", "care", r.SocialInsurance.Care)
		add("social_insurance", "pension", r.SocialInsurance.Pension)
		add("social_insurance", "employment", r.SocialInsurance.Employment)
		add("social_insurance", "total", r.SocialInsurance.Total)
		add("net", "housing", r.HousingDeduction)
		add("net", "net_income", r.NetIncome)
		add("net", "monthly_net_income", r.MonthlyNetIncome)
		add("furusato", "limit", r.FurusatoLimit)
	}
	for _, s := range report.DeductionStatuses {
		add("usage", string(s.Category), s.Used)
	}
	for _, rec := range report.CatalogRecommendations {
		add("recommendation", rec.ID, rec.EstimatedAnnualSaving)
	}
	for _, rec := range report.ProfileRecommendations {
		add("recommendation", rec.ID, rec.EstimatedAnnualSaving)
	}
	add("savings", "ideco", report.Savings.IDeCo.AnnualSaving)
	add("savings", "nisa", report.Savings.NISA.AnnualSaving)
	add("savings", "life_insurance", report.Savings.LifeInsurance.AnnualSaving)
	add("savings", "furusato", report.Savings.Furusato.AnnualSaving)
	add("savings", "total", report.Savings.Total())

	if err := w.WriteAll(rows); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
