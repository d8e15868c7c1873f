package breakeven

import (
	"context"
	"strings"
	"testing"
)

func TestTableFormatter_Format(t *testing.T) {
	s := newTestSolver()
	result, err := s.Solve(context.Background(), TargetRequest{
		Profile:     salaried(6000000),
		Constraints: Constraints{TargetNet: yenPtr(5000000)},
	})
	if err != nil {
		t.Fatalf("Solve failed: %v", err)
	}

	out := (&TableFormatter{}).Format(result)

	for _, want := range []string{
		"TAKE-HOME TARGET",
		"Lever:        gross_income",
		"Target:       ¥5,000,000",
		"✓ Converged",
		"Current:      ¥6,000,000",
		"Change:       +¥",
		"AT THE REQUIRED INCOME",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestTableFormatter_FormatComparison(t *testing.T) {
	s := newTestSolver()
	comparison, err := s.CompareLevers(context.Background(), salaried(6000000), GoalAnnualNet,
		Constraints{TargetNet: yenPtr(5000000)})
	if err != nil {
		t.Fatalf("CompareLevers failed: %v", err)
	}

	out := (&TableFormatter{}).FormatComparison(comparison)

	if !strings.Contains(out, string(comparison.Cheapest.Request.Lever)+" *") {
		t.Errorf("cheapest lever should be starred:\n%s", out)
	}
	if !strings.Contains(out, "NOTES") || !strings.Contains(out, "• Cheapest route") {
		t.Errorf("notes missing:\n%s", out)
	}
}

func TestJSONFormatter(t *testing.T) {
	result := &TargetResult{
		Request:        TargetRequest{Lever: LeverSideIncome, Goal: GoalAnnualNet},
		Success:        true,
		RequiredAmount: yen(850000),
	}

	compact, err := (&JSONFormatter{}).Format(result)
	if err != nil {
		t.Fatalf("Format failed: %v", err)
	}
	if !strings.Contains(compact, `"required_amount":"850000"`) {
		t.Errorf("unexpected JSON: %s", compact)
	}
	if strings.Contains(compact, "\n") {
		t.Error("compact output should be a single line")
	}

	pretty, err := (&JSONFormatter{Pretty: true}).Format(result)
	if err != nil {
		t.Fatalf("Format failed: %v", err)
	}
	if !strings.Contains(pretty, `  "lever": "side_income"`) {
		t.Errorf("unexpected pretty JSON: %s", pretty)
	}
}
