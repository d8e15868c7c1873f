package compare

import (
	"encoding/csv"
	"strconv"
	"strings"

	"github.com/rgehrsitz/tedori/internal/domain"
)

// CSVFormatter formats a comparison report as CSV
type CSVFormatter struct{}

// Format generates CSV output with one row per combination
func (cf *CSVFormatter) Format(report *ComparisonReport) (string, error) {
	var sb strings.Builder
	writer := csv.NewWriter(&sb)

	header := []string{
		"Combination",
		"Size",
		"IDs",
		"Raw Saving",
		"Total Saving",
		"Fund Conflict",
		"Recommended",
	}
	if err := writer.Write(header); err != nil {
		return "", err
	}

	for i, combo := range report.Combinations {
		if err := writer.Write(cf.formatRow(i, combo, i == report.Recommended)); err != nil {
			return "", err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", err
	}

	return sb.String(), nil
}

func (cf *CSVFormatter) formatRow(index int, combo domain.Combination, recommended bool) []string {
	return []string{
		strconv.Itoa(index + 1),
		strconv.Itoa(len(combo.IDs)),
		strings.Join(combo.IDs, ";"),
		combo.RawSaving.StringFixed(0),
		combo.TotalSaving.StringFixed(0),
		strconv.FormatBool(combo.FundConflict),
		strconv.FormatBool(recommended),
	}
}
