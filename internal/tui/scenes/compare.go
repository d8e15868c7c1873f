package scenes

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rgehrsitz/tedori/internal/compare"
	"github.com/rgehrsitz/tedori/internal/domain"
	"github.com/rgehrsitz/tedori/internal/tui/components"
	"github.com/rgehrsitz/tedori/internal/tui/tuistyles"
)

// CompareModel shows the evaluated combinations of the last comparison
type CompareModel struct {
	report *compare.ComparisonReport
	err    error
	width  int
	height int
}

// NewCompareModel creates a new compare scene model
func NewCompareModel() *CompareModel {
	return &CompareModel{}
}

// SetSession stores the compared session. A session without an outcome
// clears the view.
func (m *CompareModel) SetSession(session domain.ComparisonSession) {
	m.err = nil
	m.report = nil
	if session.Outcome == nil {
		return
	}
	report, err := compare.NewComparisonReport(session)
	if err != nil {
		m.err = err
		return
	}
	m.report = report
}

// SetError shows why the last comparison could not run
func (m *CompareModel) SetError(err error) {
	m.err = err
	m.report = nil
}

// Report returns the last comparison, nil if none
func (m *CompareModel) Report() *compare.ComparisonReport {
	return m.report
}

// Err returns the last comparison error
func (m *CompareModel) Err() error {
	return m.err
}

// SetSize updates the model dimensions
func (m *CompareModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Update handles messages for the compare scene
func (m *CompareModel) Update(msg tea.Msg) (*CompareModel, tea.Cmd) {
	return m, nil
}

// View renders the comparison
func (m *CompareModel) View() string {
	if m.err != nil {
		return tuistyles.ErrorStyle.Render(m.err.Error()) + "\n\n" +
			tuistyles.SubtitleStyle.Render("Press p to change the selection.")
	}
	if m.report == nil {
		return tuistyles.InfoStyle.Render("Nothing compared yet. Press p to pick recommendations.")
	}

	chart := components.NewBarChart("Yearly saving by combination")
	for i, combo := range m.report.Combinations {
		label := strings.Join(combo.Titles, " + ")
		if combo.FundConflict {
			label += " †"
		}
		chart.AddBar(label, combo.TotalSaving, i == m.report.Recommended)
	}

	var notes strings.Builder
	for _, n := range m.report.Notes {
		fmt.Fprintf(&notes, "• %s\n", n)
	}
	if uplift := m.report.Uplift(); uplift.IsPositive() {
		fmt.Fprintf(&notes, "• Combining adds %s over the best single pick\n", tuistyles.FormatCurrency(uplift))
	}

	legend := lipgloss.NewStyle().Foreground(tuistyles.ColorMuted).
		Render("† shares a savings budget; 10% taken off")
	return lipgloss.JoinVertical(lipgloss.Left,
		chart.Render(),
		legend,
		"",
		strings.TrimRight(notes.String(), "\n"),
	)
}
