package output

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rgehrsitz/tedori/internal/domain"
)

// SensitivityFormatter renders a parameter sweep
type SensitivityFormatter interface {
	FormatSensitivityAnalysis(analysis *domain.SensitivityAnalysis) (string, error)
	Name() string
}

// SensitivityConsoleFormatter formats a sweep as a console table
type SensitivityConsoleFormatter struct{}

func (scf SensitivityConsoleFormatter) Name() string { return "console" }

func (scf SensitivityConsoleFormatter) FormatSensitivityAnalysis(analysis *domain.SensitivityAnalysis) (string, error) {
	if analysis == nil || len(analysis.Points) == 0 {
		return "", fmt.Errorf("no points in analysis")
	}
	var buf bytes.Buffer
	param := analysis.Parameter

	fmt.Fprintf(&buf, "SENSITIVITY ANALYSIS: %s\n", strings.ToUpper(strings.ReplaceAll(param.Name, "_", " ")))
	fmt.Fprintln(&buf, "=================================================================")
	fmt.Fprintf(&buf, "Base Case: %s (take-home %s)\n", FormatCurrency(param.BaseValue), FormatCurrency(analysis.Base.NetIncome))
	fmt.Fprintf(&buf, "Range: %s to %s (%d steps)\n", FormatCurrency(param.MinValue), FormatCurrency(param.MaxValue), param.Steps)
	if param.Description != "" {
		fmt.Fprintf(&buf, "Description: %s\n", param.Description)
	}
	fmt.Fprintln(&buf)

	fmt.Fprintf(&buf, "%-14s %-14s %-12s %-12s %-12s %-8s %-8s\n",
		"Value", "Net Income", "Income Tax", "Resident", "Insurance", "Burden", "Keep")
	fmt.Fprintln(&buf, strings.Repeat("-", 86))
	for _, p := range analysis.Points {
		marker := " "
		if p.Value.Equal(param.BaseValue) {
			marker = "*"
		}
		keep := "-"
		if !p.KeepRate.IsZero() {
			keep = FormatPercentage(p.KeepRate)
		}
		fmt.Fprintf(&buf, "%s%-13s %-14s %-12s %-12s %-12s %-8s %-8s\n",
			marker,
			FormatCurrency(p.Value),
			FormatCurrency(p.NetIncome),
			FormatCurrency(p.IncomeTax),
			FormatCurrency(p.ResidentTax),
			FormatCurrency(p.SocialInsurance),
			FormatPercentage(p.EffectiveRate),
			keep)
	}
	fmt.Fprintln(&buf)

	fmt.Fprintf(&buf, "AVERAGE KEEP RATE: %s\n", FormatPercentage(analysis.Summary.AverageKeepRate))
	if len(analysis.Summary.Notes) > 0 {
		fmt.Fprintln(&buf, "NOTES:")
		for _, note := range analysis.Summary.Notes {
			fmt.Fprintf(&buf, "  • %s\n", note)
		}
	}
	return buf.String(), nil
}

// SensitivityCSVFormatter formats a sweep as CSV
type SensitivityCSVFormatter struct{}

func (scf SensitivityCSVFormatter) Name() string { return "csv" }

func (scf SensitivityCSVFormatter) FormatSensitivityAnalysis(analysis *domain.SensitivityAnalysis) (string, error) {
	if analysis == nil {
		return "", fmt.Errorf("no analysis")
	}
	var buf bytes.Buffer
	fmt.Fprintln(&buf, "parameter_name,parameter_value,net_income,income_tax,resident_tax,social_insurance,effective_rate,keep_rate")
	for _, p := range analysis.Points {
		fmt.Fprintf(&buf, "%s,%s,%s,%s,%s,%s,%s,%s\n",
			analysis.Parameter.Name,
			p.Value.StringFixed(0),
			p.NetIncome.StringFixed(0),
			p.IncomeTax.StringFixed(0),
			p.ResidentTax.StringFixed(0),
			p.SocialInsurance.StringFixed(0),
			p.EffectiveRate.StringFixed(4),
			p.KeepRate.StringFixed(4))
	}
	return buf.String(), nil
}

// SensitivityJSONFormatter formats a sweep as JSON
type SensitivityJSONFormatter struct{}

func (sjf SensitivityJSONFormatter) Name() string { return "json" }

func (sjf SensitivityJSONFormatter) FormatSensitivityAnalysis(analysis *domain.SensitivityAnalysis) (string, error) {
	data, err := json.MarshalIndent(analysis, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// NewSensitivityFormatter returns the sweep formatter for a format name,
// console when the name is unknown.
func NewSensitivityFormatter(format string) SensitivityFormatter {
	switch strings.ToLower(format) {
	case "csv":
		return SensitivityCSVFormatter{}
	case "json":
		return SensitivityJSONFormatter{}
	default:
		return SensitivityConsoleFormatter{}
	}
}
