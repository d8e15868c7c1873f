package compare

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/rgehrsitz/tedori/internal/domain"
	"github.com/shopspring/decimal"
)

func decimalOf(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func comparedReport(t *testing.T, selected ...string) *ComparisonReport {
	t.Helper()
	session, err := Compare(domain.ComparisonSession{Available: available(), Selected: selected})
	if err != nil {
		t.Fatalf("Compare failed: %v", err)
	}
	report, err := NewComparisonReport(session)
	if err != nil {
		t.Fatalf("NewComparisonReport failed: %v", err)
	}
	return report
}

func TestNewComparisonReport_RequiresOutcome(t *testing.T) {
	if _, err := NewComparisonReport(domain.ComparisonSession{Available: available()}); err == nil {
		t.Error("Expected an error for a session that was never compared")
	}
}

func TestGenerateNotes(t *testing.T) {
	report := comparedReport(t, "ideco", "nisa", "furusato")

	if len(report.Selected) != 3 {
		t.Fatalf("Expected 3 selected recommendations, got %d", len(report.Selected))
	}
	if len(report.Notes) != 3 {
		t.Fatalf("Expected 3 notes, got %d: %v", len(report.Notes), report.Notes)
	}

	if report.Notes[0] != "Recommended: iDeCo + NISA + Furusato saves ¥79,910 a year" {
		t.Errorf("Unexpected headline note: %s", report.Notes[0])
	}
	if !strings.Contains(report.Notes[1], "iDeCo + NISA") || !strings.Contains(report.Notes[1], "¥6,739") {
		t.Errorf("Expected the pair haircut note, got: %s", report.Notes[1])
	}
	if !strings.Contains(report.Notes[2], "¥8,879") {
		t.Errorf("Expected the triple haircut note, got: %s", report.Notes[2])
	}

	if got := report.Uplift().String(); got != "24710" {
		t.Errorf("Expected uplift 24710 over iDeCo alone, got %s", got)
	}
}

func TestTableFormatter_Format(t *testing.T) {
	formatter := &TableFormatter{}
	report := comparedReport(t, "ideco", "nisa", "furusato")

	result := formatter.Format(report)

	if result == "" {
		t.Fatal("Expected formatted output, got empty string")
	}
	for _, want := range []string{
		"PLAN COMBINATION COMPARISON",
		"Selected: 3 recommendations",
		"* iDeCo + NISA + Furusato",
		"-10%",
		"NOTES",
	} {
		if !strings.Contains(result, want) {
			t.Errorf("Expected %q in output", want)
		}
	}
}

func TestTableFormatter_formatDecimal(t *testing.T) {
	tf := &TableFormatter{}

	tests := []struct {
		value    int64
		expected string
	}{
		{2500000, "¥2.50M"},
		{79910, "¥79.9K"},
		{6739, "¥6,739"},
		{0, "¥0"},
	}
	for _, tt := range tests {
		if got := tf.formatDecimal(decimalOf(tt.value)); got != tt.expected {
			t.Errorf("formatDecimal(%d) = %s, want %s", tt.value, got, tt.expected)
		}
	}
}

func TestTableFormatter_truncate(t *testing.T) {
	tf := &TableFormatter{}

	if got := tf.truncate("short", 10); got != "short" {
		t.Errorf("Expected unchanged string, got %s", got)
	}
	if got := tf.truncate("ふるさと納税 + iDeCo", 8); got != "ふるさと納..." {
		t.Errorf("Expected rune-safe truncation, got %s", got)
	}
}

func TestTableFormatter_FormatCompact(t *testing.T) {
	tf := &TableFormatter{}

	if got := tf.FormatCompact(comparedReport(t, "furusato", "life")); got != "Best of 1: furusato+life = ¥45,652" {
		t.Errorf("Unexpected compact output: %s", got)
	}
	if got := tf.FormatCompact(&ComparisonReport{Recommended: -1}); got != "No combinations" {
		t.Errorf("Unexpected compact output for empty report: %s", got)
	}
}

func TestCSVFormatter_Format(t *testing.T) {
	formatter := &CSVFormatter{}
	report := comparedReport(t, "ideco", "nisa", "furusato")

	result, err := formatter.Format(report)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(result), "\n")
	if len(lines) != 5 {
		t.Fatalf("Expected header and 4 rows, got %d lines", len(lines))
	}
	if !strings.HasPrefix(lines[0], "Combination,Size,IDs") {
		t.Errorf("Unexpected header: %s", lines[0])
	}
	if lines[4] != "4,3,ideco;nisa;furusato,88789,79910,true,true" {
		t.Errorf("Unexpected last row: %s", lines[4])
	}
}

func TestJSONFormatter_Format(t *testing.T) {
	report := comparedReport(t, "furusato", "life")

	for _, pretty := range []bool{false, true} {
		formatter := &JSONFormatter{Pretty: pretty}
		result, err := formatter.Format(report)
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}

		var decoded map[string]interface{}
		if err := json.Unmarshal([]byte(result), &decoded); err != nil {
			t.Fatalf("Output is not valid JSON: %v", err)
		}
		if decoded["recommended"].(float64) != 0 {
			t.Errorf("Expected recommended index 0, got %v", decoded["recommended"])
		}
		if pretty && !strings.Contains(result, "\n  ") {
			t.Error("Expected indented output")
		}
	}
}
