package compare

import (
	"fmt"
	"strings"

	"github.com/rgehrsitz/tedori/internal/domain"
	"github.com/shopspring/decimal"
)

// TableFormatter formats a comparison report as a console table
type TableFormatter struct{}

// Format generates a formatted table of the evaluated combinations
func (tf *TableFormatter) Format(report *ComparisonReport) string {
	var sb strings.Builder

	sb.WriteString("PLAN COMBINATION COMPARISON\n")
	sb.WriteString(strings.Repeat("=", 80) + "\n")
	sb.WriteString(fmt.Sprintf("Selected: %d recommendations\n", len(report.Selected)))
	sb.WriteString("\n")

	nameWidth := 44
	numWidth := 11

	sb.WriteString(fmt.Sprintf("%-*s %*s %*s %*s\n",
		nameWidth, "Combination",
		numWidth, "Sum",
		numWidth, "Adjusted",
		numWidth, "Conflict"))
	sb.WriteString(strings.Repeat("-", 80) + "\n")

	for i, combo := range report.Combinations {
		sb.WriteString(tf.formatRow(combo, nameWidth, numWidth, i == report.Recommended))
	}
	sb.WriteString(strings.Repeat("=", 80) + "\n")

	if len(report.Notes) > 0 {
		sb.WriteString("\nNOTES\n")
		sb.WriteString(strings.Repeat("-", 80) + "\n")
		for _, note := range report.Notes {
			sb.WriteString(fmt.Sprintf("• %s\n", note))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

// formatRow formats a single combination row
func (tf *TableFormatter) formatRow(combo domain.Combination, nameWidth, numWidth int, recommended bool) string {
	name := strings.Join(combo.Titles, " + ")
	if recommended {
		name = "* " + name
	}

	conflict := "-"
	if combo.FundConflict {
		conflict = "-10%"
	}

	return fmt.Sprintf("%-*s %*s %*s %*s\n",
		nameWidth, tf.truncate(name, nameWidth),
		numWidth, tf.formatDecimal(combo.RawSaving),
		numWidth, tf.formatDecimal(combo.TotalSaving),
		numWidth, conflict)
}

// formatDecimal shortens large yen amounts for the table
func (tf *TableFormatter) formatDecimal(d decimal.Decimal) string {
	if d.Abs().GreaterThanOrEqual(decimal.NewFromInt(1000000)) {
		return "¥" + d.Div(decimal.NewFromInt(1000000)).StringFixed(2) + "M"
	} else if d.Abs().GreaterThanOrEqual(decimal.NewFromInt(10000)) {
		return "¥" + d.Div(decimal.NewFromInt(1000)).StringFixed(1) + "K"
	}
	return domain.FormatYen(d)
}

func (tf *TableFormatter) truncate(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	return string(runes[:maxLen-3]) + "..."
}

// FormatCompact creates a single-line summary of the recommended combination
func (tf *TableFormatter) FormatCompact(report *ComparisonReport) string {
	best := report.Best()
	if best == nil {
		return "No combinations"
	}
	return fmt.Sprintf("Best of %d: %s = %s",
		len(report.Combinations), strings.Join(best.IDs, "+"), domain.FormatYen(best.TotalSaving))
}
