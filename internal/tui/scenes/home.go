package scenes

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rgehrsitz/tedori/internal/domain"
	"github.com/rgehrsitz/tedori/internal/tui/components"
	"github.com/rgehrsitz/tedori/internal/tui/tuistyles"
)

// HomeModel is the take-home dashboard
type HomeModel struct {
	report *domain.Report
	width  int
	height int
}

// NewHomeModel creates a new home scene model
func NewHomeModel() *HomeModel {
	return &HomeModel{}
}

// SetReport updates the report shown
func (m *HomeModel) SetReport(report *domain.Report) {
	m.report = report
}

// SetSize updates the model dimensions
func (m *HomeModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Update handles messages for the home scene
func (m *HomeModel) Update(msg tea.Msg) (*HomeModel, tea.Cmd) {
	// Passive; navigation is handled by the parent
	return m, nil
}

// View renders the dashboard
func (m *HomeModel) View() string {
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(tuistyles.ColorPrimary)
	if m.report == nil || m.report.Result == nil {
		return tuistyles.BorderStyle.Render(titleStyle.Render("Take-home overview") + "\n\n" +
			lipgloss.NewStyle().Foreground(tuistyles.ColorMuted).Render("Loading profile..."))
	}

	r := m.report.Result
	var content strings.Builder
	name := m.report.Profile.Name
	if name == "" {
		name = "Profile"
	}
	content.WriteString(titleStyle.Render(fmt.Sprintf("%s, %d (%s)", name, r.Year, r.Region)))
	content.WriteString("\n\n")

	cards := []*components.MetricCard{
		components.NewMetricCard("Gross income", tuistyles.FormatCurrency(r.GrossIncome)),
		components.NewMetricCard("Take-home", tuistyles.FormatCurrency(r.NetIncome)).
			WithDescription(tuistyles.FormatCurrency(r.MonthlyNetIncome) + " a month"),
		components.NewMetricCard("Burden rate", domain.FormatRate(r.EffectiveRate)).
			WithDescription("marginal " + domain.FormatRate(r.MarginalRate)),
		components.NewMetricCard("Income tax", tuistyles.FormatCurrency(r.IncomeTax)),
		components.NewMetricCard("Resident tax", tuistyles.FormatCurrency(r.ResidentTax)),
		components.NewMetricCard("Social insurance", tuistyles.FormatCurrency(r.SocialInsurance.Total)),
	}
	columns := 3
	if m.width > 0 && m.width < 84 {
		columns = 2
	}
	content.WriteString(components.MetricGrid(cards, columns))
	content.WriteString("\n\n")

	savings := m.report.Savings.Total()
	headline := components.NewMetricCard("Possible yearly saving", tuistyles.FormatCurrency(savings))
	if savings.IsPositive() {
		headline.WithTrend(true, "+"+tuistyles.FormatCurrency(savings))
	}
	content.WriteString(headline.RenderCompact())
	content.WriteString("\n")
	content.WriteString(components.NewMetricCard("Hometown tax limit", tuistyles.FormatCurrency(r.FurusatoLimit)).RenderCompact())
	return content.String()
}
