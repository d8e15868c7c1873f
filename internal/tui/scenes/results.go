package scenes

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/rgehrsitz/tedori/internal/domain"
	"github.com/rgehrsitz/tedori/internal/tui/components"
	"github.com/rgehrsitz/tedori/internal/tui/tuistyles"
)

// ResultsModel shows the full breakdown and deduction usage
type ResultsModel struct {
	report *domain.Report
	width  int
	height int
}

// NewResultsModel creates a new results scene model
func NewResultsModel() *ResultsModel {
	return &ResultsModel{}
}

// SetReport updates the report shown
func (m *ResultsModel) SetReport(report *domain.Report) {
	m.report = report
}

// SetSize updates the scene dimensions
func (m *ResultsModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Update handles messages for the results scene
func (m *ResultsModel) Update(msg tea.Msg) (*ResultsModel, tea.Cmd) {
	// Read-only
	return m, nil
}

// View renders the breakdown
func (m *ResultsModel) View() string {
	if m.report == nil || m.report.Result == nil {
		return tuistyles.InfoStyle.Render("No results yet.")
	}
	return lipgloss.JoinVertical(
		lipgloss.Left,
		renderBreakdown(m.report.Result),
		"",
		components.UsagePanel("Deduction usage", m.report.DeductionStatuses),
	)
}

func renderBreakdown(r *domain.TaxResult) string {
	var b strings.Builder
	header := tuistyles.TableHeaderStyle
	row := func(label string, v decimal.Decimal) {
		fmt.Fprintf(&b, "  %-26s %14s\n", label, tuistyles.FormatCurrency(v))
	}

	b.WriteString(header.Render("Income"))
	b.WriteString("\n")
	row("Gross", r.GrossIncome)
	row("After salary/expenses", r.BusinessOrSalaryIncome)
	if !r.SideIncomeNet.IsZero() {
		row("Side income", r.SideIncomeNet)
	}
	row("Deductions (income tax)", r.TotalDeductions)
	row("Taxable (income tax)", r.TaxableIncome)
	row("Taxable (resident tax)", r.ResidentTaxableIncome)

	b.WriteString(header.Render("Taxes"))
	b.WriteString("\n")
	row("Income tax", r.IncomeTax)
	row("Resident tax", r.ResidentTax)
	if r.FurusatoCredit.IsPositive() {
		row("  hometown credit", r.FurusatoCredit.Neg())
	}
	if r.HousingDeduction.IsPositive() {
		row("Housing loan credit", r.HousingDeduction.Neg())
	}

	scheme := "Social insurance"
	if r.SocialInsurance.NationalScheme {
		scheme = "National insurance"
	}
	b.WriteString(header.Render(scheme))
	b.WriteString("\n")
	row("Health", r.SocialInsurance.Health)
	if r.SocialInsurance.Care.IsPositive() {
		row("Care", r.SocialInsurance.Care)
	}
	row("Pension", r.SocialInsurance.Pension)
	if r.SocialInsurance.Employment.IsPositive() {
		row("Employment", r.SocialInsurance.Employment)
	}

	b.WriteString(header.Render("Take-home"))
	b.WriteString("\n")
	row("Yearly", r.NetIncome)
	row("Monthly", r.MonthlyNetIncome)
	return strings.TrimRight(b.String(), "\n")
}
