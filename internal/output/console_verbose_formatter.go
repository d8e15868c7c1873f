package output

import (
	"bytes"
	"fmt"

	"github.com/rgehrsitz/tedori/internal/domain"
	"github.com/shopspring/decimal"
)

// ConsoleVerboseFormatter renders the detailed console report.
type ConsoleVerboseFormatter struct{}

func (c ConsoleVerboseFormatter) Name() string { return "console" }

func (c ConsoleVerboseFormatter) Format(report *domain.Report) ([]byte, error) {
	if report == nil || report.Result == nil {
		return nil, fmt.Errorf("report has no result")
	}
	var buf bytes.Buffer
	r := report.Result
	tp := report.Profile.Taxpayer

	fmt.Fprintln(&buf, rule("="))
	fmt.Fprintln(&buf, titleStyle.Render(fmt.Sprintf("TAKE-HOME PAY ANALYSIS (%d)", r.Year)))
	fmt.Fprintln(&buf, rule("="))
	if report.Profile.Name != "" {
		fmt.Fprintf(&buf, "Profile:    %s\n", report.Profile.Name)
	}
	fmt.Fprintf(&buf, "Category:   %s", r.EmploymentCategory)
	if tp.EmploymentCategory.IsBusinessOwner() && tp.FilingType != "" {
		fmt.Fprintf(&buf, " (%s filing)", tp.FilingType)
	}
	fmt.Fprintln(&buf)
	fmt.Fprintf(&buf, "Region:     %s\n", r.Region)
	fmt.Fprintf(&buf, "Age:        %d\n", tp.Age)
	fmt.Fprintln(&buf)

	fmt.Fprintln(&buf, "KEY ASSUMPTIONS:")
	for _, a := range assumptionsFor(report) {
		fmt.Fprintf(&buf, "• %s\n", a)
	}
	fmt.Fprintln(&buf)

	writeIncome(&buf, r)
	writeDeductions(&buf, r)
	writeTaxes(&buf, r)
	writeInsurance(&buf, r.SocialInsurance)
	writeNet(&buf, r)
	writeUsage(&buf, report.DeductionStatuses)
	writeRecommendations(&buf, "CATALOG RECOMMENDATIONS", report.CatalogRecommendations)
	writeRecommendations(&buf, "PROFILE RECOMMENDATIONS", report.ProfileRecommendations)
	writeSavings(&buf, report.Savings)

	return buf.Bytes(), nil
}

func section(buf *bytes.Buffer, title string) {
	fmt.Fprintln(buf, sectionStyle.Render(title))
	fmt.Fprintln(buf, rule("-"))
}

func line(buf *bytes.Buffer, label string, amount decimal.Decimal) {
	fmt.Fprintf(buf, "  %-28s %16s\n", label+":", FormatCurrency(amount))
}

// lineIf skips zero amounts to keep the breakdown short.
func lineIf(buf *bytes.Buffer, label string, amount decimal.Decimal) {
	if !amount.IsZero() {
		line(buf, label, amount)
	}
}

func writeIncome(buf *bytes.Buffer, r *domain.TaxResult) {
	section(buf, "INCOME")
	line(buf, "Gross income", r.GrossIncome)
	if r.EmploymentCategory.IsBusinessOwner() {
		line(buf, "Business income", r.BusinessOrSalaryIncome)
	} else {
		line(buf, "Salary income", r.BusinessOrSalaryIncome)
	}
	lineIf(buf, "Side income (net)", r.SideIncomeNet)
	fmt.Fprintln(buf)
}

func writeDeductions(buf *bytes.Buffer, r *domain.TaxResult) {
	d := r.Deductions
	section(buf, "INCOME DEDUCTIONS")
	lineIf(buf, "Social insurance", d.SocialInsurance)
	lineIf(buf, "Salary", d.Salary)
	line(buf, "Basic", d.Basic)
	lineIf(buf, "Spouse", d.Spouse)
	lineIf(buf, "Dependents", d.Dependents)
	lineIf(buf, "Disabled dependents", d.DisabledDependents)
	lineIf(buf, "Life insurance", d.LifeInsurance)
	lineIf(buf, "Earthquake insurance", d.EarthquakeInsurance)
	lineIf(buf, "Medical expenses", d.Medical)
	lineIf(buf, "Donations", d.Donation)
	lineIf(buf, "Small business mutual aid", d.SmallBusinessAid)
	lineIf(buf, "iDeCo", d.IDeCo)
	line(buf, "TOTAL DEDUCTIONS", r.TotalDeductions)
	line(buf, "Taxable income", r.TaxableIncome)
	fmt.Fprintln(buf)
}

func writeTaxes(buf *bytes.Buffer, r *domain.TaxResult) {
	section(buf, "TAXES")
	line(buf, "Income tax (incl. surtax)", r.IncomeTax)
	fmt.Fprintf(buf, "  %-28s %16s\n", "Marginal rate:", FormatPercentage(r.MarginalRate))
	line(buf, "Resident taxable income", r.ResidentTaxableIncome)
	line(buf, "  Prefecture", r.ResidentTaxPrefecture)
	line(buf, "  City", r.ResidentTaxCity)
	line(buf, "  Flat levy", r.ResidentTaxFlatLevy)
	if r.FurusatoCredit.IsPositive() {
		fmt.Fprintf(buf, "  %-28s %16s\n", "  Furusato credit:", "-"+FormatCurrency(r.FurusatoCredit))
	}
	line(buf, "Resident tax", r.ResidentTax)
	if !r.NextYearResidentTax.Equal(r.ResidentTaxBeforeCredit) {
		line(buf, "Next year's resident tax", r.NextYearResidentTax)
	}
	fmt.Fprintln(buf)
}

func writeInsurance(buf *bytes.Buffer, si domain.SocialInsurance) {
	if si.NationalScheme {
		section(buf, "SOCIAL INSURANCE (national scheme)")
		line(buf, "National health insurance", si.Health)
		line(buf, "National pension", si.Pension)
	} else {
		section(buf, "SOCIAL INSURANCE (employee share)")
		line(buf, "Health insurance", si.Health)
		lineIf(buf, "Long-term care", si.Care)
		line(buf, "Employees' pension", si.Pension)
		line(buf, "Employment insurance", si.Employment)
	}
	line(buf, "TOTAL", si.Total)
	fmt.Fprintln(buf)
}

func writeNet(buf *bytes.Buffer, r *domain.TaxResult) {
	section(buf, "TAKE-HOME")
	lineIf(buf, "Company housing", r.HousingDeduction)
	line(buf, "Net income", r.NetIncome)
	line(buf, "Monthly", r.MonthlyNetIncome)
	fmt.Fprintf(buf, "  %-28s %16s\n", "Effective burden:", FormatPercentage(r.EffectiveRate))
	line(buf, "Furusato donation limit", r.FurusatoLimit)
	fmt.Fprintln(buf)
}

func writeUsage(buf *bytes.Buffer, statuses []domain.DeductionStatus) {
	if len(statuses) == 0 {
		return
	}
	section(buf, "DEDUCTION USAGE")
	fmt.Fprintf(buf, "  %-30s %12s %12s %12s  %s\n", "Deduction", "Used", "Limit", "Remaining", "Status")
	for _, s := range statuses {
		fmt.Fprintf(buf, "  %-30s %12s %12s %12s  %s\n",
			s.Label, FormatCurrency(s.Used), optionalYen(s.Limit), optionalYen(s.Remaining), s.UsageClass)
		if s.Message != "" {
			fmt.Fprintf(buf, "    %s\n", s.Message)
		}
	}
	fmt.Fprintln(buf)
}

func writeRecommendations(buf *bytes.Buffer, title string, recs []domain.Recommendation) {
	if len(recs) == 0 {
		return
	}
	section(buf, title)
	for i, r := range recs {
		fmt.Fprintf(buf, "%d. %s  saves %s a year [%s priority, %s]\n",
			i+1, r.Title, FormatCurrency(r.EstimatedAnnualSaving), r.PriorityLabel(), r.CashflowLabel())
		if r.Description != "" {
			fmt.Fprintf(buf, "   %s\n", r.Description)
		}
		b := r.Breakdown
		if !b.Total().IsZero() {
			fmt.Fprintf(buf, "   income tax %s · resident tax %s · insurance %s\n",
				FormatCurrency(b.IncomeTax), FormatCurrency(b.ResidentTax), FormatCurrency(b.Insurance))
		}
		for _, s := range r.Steps {
			fmt.Fprintf(buf, "   - %s\n", s)
		}
		for _, w := range r.Warnings {
			fmt.Fprintf(buf, "   ⚠ %s\n", w)
		}
	}
	fmt.Fprintln(buf)
}

func writeSavings(buf *bytes.Buffer, s domain.SavingsSummary) {
	section(buf, "HEADLINE SAVINGS")
	fmt.Fprintf(buf, "  %-16s %16s %16s\n", "Action", "Contribution", "Saving/yr")
	rows := []struct {
		name string
		line domain.SavingsLine
	}{
		{"iDeCo", s.IDeCo},
		{"NISA", s.NISA},
		{"Life insurance", s.LifeInsurance},
		{"Furusato", s.Furusato},
	}
	for _, row := range rows {
		fmt.Fprintf(buf, "  %-16s %16s %16s\n", row.name, FormatCurrency(row.line.Contribution), FormatCurrency(row.line.AnnualSaving))
	}
	fmt.Fprintf(buf, "  %-16s %16s %16s\n", "TOTAL", "", FormatCurrency(s.Total()))
	fmt.Fprintln(buf)
}
