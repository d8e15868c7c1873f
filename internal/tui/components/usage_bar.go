package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rgehrsitz/tedori/internal/domain"
	"github.com/rgehrsitz/tedori/internal/tui/tuistyles"
	"github.com/shopspring/decimal"
)

// UsageBar shows how much of a deduction ceiling is in use
type UsageBar struct {
	Status     domain.DeductionStatus
	Width      int
	LabelWidth int
}

// NewUsageBar creates a bar for one tracker status
func NewUsageBar(status domain.DeductionStatus) *UsageBar {
	return &UsageBar{
		Status:     status,
		Width:      24,
		LabelWidth: 22,
	}
}

// WithWidth sets the bar width
func (u *UsageBar) WithWidth(width int) *UsageBar {
	u.Width = width
	return u
}

// Filled returns the number of filled cells, capped at the bar width
func (u *UsageBar) Filled() int {
	ratio := u.Status.UsageRatio
	if ratio.GreaterThan(decimal.NewFromInt(1)) {
		ratio = decimal.NewFromInt(1)
	}
	if ratio.IsNegative() {
		return 0
	}
	return int(ratio.Mul(decimal.NewFromInt(int64(u.Width))).Floor().IntPart())
}

// Render returns the labelled bar. Categories without a fixed ceiling show
// the amount used in place of a bar.
func (u *UsageBar) Render() string {
	label := lipgloss.NewStyle().Width(u.LabelWidth).Render(u.Status.Label)
	if u.Status.Limit == nil {
		return fmt.Sprintf("%s %s used", label, tuistyles.FormatCurrency(u.Status.Used))
	}

	filled := u.Filled()
	bar := usageStyle(u.Status.UsageClass).Render(strings.Repeat("█", filled)) +
		lipgloss.NewStyle().Foreground(tuistyles.ColorBorder).Render(strings.Repeat("░", u.Width-filled))

	pct := u.Status.UsageRatio.Mul(decimal.NewFromInt(100)).Round(0)
	return fmt.Sprintf("%s [%s] %s%% of %s", label, bar, pct, tuistyles.FormatCurrency(*u.Status.Limit))
}

func usageStyle(class domain.UsageClass) lipgloss.Style {
	switch class {
	case domain.UsageExcellent, domain.UsageGood:
		return lipgloss.NewStyle().Foreground(tuistyles.ColorSuccess)
	case domain.UsageWarning:
		return lipgloss.NewStyle().Foreground(tuistyles.ColorAccent)
	default:
		return lipgloss.NewStyle().Foreground(tuistyles.ColorDanger)
	}
}

// UsagePanel renders one bar per status under a title
func UsagePanel(title string, statuses []domain.DeductionStatus) string {
	if len(statuses) == 0 {
		return tuistyles.InfoStyle.Render("No deductions tracked")
	}
	lines := []string{tuistyles.TableHeaderStyle.Render(title)}
	for _, s := range statuses {
		lines = append(lines, NewUsageBar(s).Render())
	}
	return strings.Join(lines, "\n")
}
