package output

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rgehrsitz/tedori/internal/domain"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true)
	sectionStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6"))
)

// GenerateReport renders the report with the named formatter and writes it
// to w.
func GenerateReport(w io.Writer, report *domain.Report, format string) error {
	f := GetFormatterByName(format)
	if f == nil {
		return fmt.Errorf("unsupported format: %s (available: %s)", format, strings.Join(AvailableFormatterNames(), ", "))
	}
	data, err := f.Format(report)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

// SaveProfile writes a profile back out as YAML, the format profile files
// are usually kept in.
func SaveProfile(profile *domain.Profile, filename string) error {
	data, err := yaml.Marshal(profile)
	if err != nil {
		return err
	}

	return os.WriteFile(filename, data, 0644)
}

// FormatCurrency formats a decimal as whole yen
func FormatCurrency(amount decimal.Decimal) string {
	return domain.FormatYen(amount)
}

// FormatPercentage formats a fraction as a percentage
func FormatPercentage(rate decimal.Decimal) string {
	return domain.FormatRate(rate)
}

func optionalYen(v *decimal.Decimal) string {
	if v == nil {
		return "-"
	}
	return FormatCurrency(*v)
}

func rule(ch string) string { return strings.Repeat(ch, 72) }
