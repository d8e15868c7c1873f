package breakeven

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rgehrsitz/tedori/internal/domain"
)

// TableFormatter formats solver results as a console table
type TableFormatter struct{}

// Format generates a formatted table for one solve
func (tf *TableFormatter) Format(result *TargetResult) string {
	var sb strings.Builder

	sb.WriteString("TAKE-HOME TARGET\n")
	sb.WriteString(strings.Repeat("=", 60) + "\n")
	sb.WriteString(fmt.Sprintf("Lever:        %s\n", result.Request.Lever))
	sb.WriteString(fmt.Sprintf("Goal:         %s\n", result.Request.Goal))
	sb.WriteString(fmt.Sprintf("Target:       %s\n", domain.FormatYen(result.Target())))
	sb.WriteString(fmt.Sprintf("Status:       %s\n", tf.formatStatus(result.Success)))
	sb.WriteString(fmt.Sprintf("Iterations:   %d\n", result.Iterations))
	if result.ConvergenceInfo != "" {
		sb.WriteString(fmt.Sprintf("Convergence:  %s\n", result.ConvergenceInfo))
	}
	sb.WriteString("\n")

	sb.WriteString("REQUIRED INCOME\n")
	sb.WriteString(strings.Repeat("-", 60) + "\n")
	sb.WriteString(fmt.Sprintf("Current:      %s\n", domain.FormatYen(result.CurrentAmount)))
	sb.WriteString(fmt.Sprintf("Required:     %s\n", domain.FormatYen(result.RequiredAmount)))
	sb.WriteString(fmt.Sprintf("Change:       %s%s\n", tf.deltaSymbol(result), domain.FormatYen(result.Increase.Abs())))
	sb.WriteString("\n")

	if result.Result != nil {
		r := result.Result
		sb.WriteString("AT THE REQUIRED INCOME\n")
		sb.WriteString(strings.Repeat("-", 60) + "\n")
		sb.WriteString(fmt.Sprintf("Income tax:        %s\n", domain.FormatYen(r.IncomeTax)))
		sb.WriteString(fmt.Sprintf("Resident tax:      %s\n", domain.FormatYen(r.ResidentTax)))
		sb.WriteString(fmt.Sprintf("Social insurance:  %s\n", domain.FormatYen(r.SocialInsurance.Total)))
		sb.WriteString(fmt.Sprintf("Net income:        %s (%s a month)\n", domain.FormatYen(r.NetIncome), domain.FormatYen(r.MonthlyNetIncome)))
		sb.WriteString("\n")
	}

	return sb.String()
}

// FormatComparison formats a lever comparison
func (tf *TableFormatter) FormatComparison(comparison *LeverComparison) string {
	var sb strings.Builder

	sb.WriteString("TAKE-HOME TARGET BY LEVER\n")
	sb.WriteString(strings.Repeat("=", 60) + "\n")
	sb.WriteString(fmt.Sprintf("%-16s %14s %14s %12s\n", "Lever", "Required", "Increase", "Net"))
	sb.WriteString(strings.Repeat("-", 60) + "\n")
	for _, r := range comparison.Results {
		name := string(r.Request.Lever)
		if comparison.Cheapest != nil && comparison.Cheapest.Request.Lever == r.Request.Lever {
			name += " *"
		}
		sb.WriteString(fmt.Sprintf("%-16s %14s %14s %12s\n",
			name,
			domain.FormatYen(r.RequiredAmount),
			domain.FormatYen(r.Increase),
			domain.FormatYen(r.Achieved)))
	}
	sb.WriteString("\n")

	if len(comparison.Notes) > 0 {
		sb.WriteString("NOTES\n")
		sb.WriteString(strings.Repeat("-", 60) + "\n")
		for _, note := range comparison.Notes {
			sb.WriteString(fmt.Sprintf("• %s\n", note))
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

// JSONFormatter formats results as JSON
type JSONFormatter struct {
	Pretty bool
}

// Format generates JSON output for a solve or a comparison
func (jf *JSONFormatter) Format(v interface{}) (string, error) {
	var data []byte
	var err error

	if jf.Pretty {
		data, err = json.MarshalIndent(v, "", "  ")
	} else {
		data, err = json.Marshal(v)
	}

	if err != nil {
		return "", err
	}

	return string(data), nil
}

func (tf *TableFormatter) formatStatus(success bool) string {
	if success {
		return "✓ Converged"
	}
	return "⚠ Did not converge"
}

func (tf *TableFormatter) deltaSymbol(result *TargetResult) string {
	switch {
	case result.Increase.IsPositive():
		return "+"
	case result.Increase.IsNegative():
		return "-"
	}
	return ""
}
