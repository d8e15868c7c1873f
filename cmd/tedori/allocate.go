package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/rgehrsitz/tedori/internal/allocation"
	"github.com/rgehrsitz/tedori/internal/domain"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

func newAllocateCmd(a *app) *cobra.Command {
	var (
		budget   string
		strategy string
		order    []string
		buffer   string
	)
	cmd := &cobra.Command{
		Use:   "allocate [profile-file]",
		Short: "Spread a yearly savings budget across unused deductions",
		Long: `Split a yearly budget between the deductions that still have room and
recalculate the profile with the result.

Strategies:
  standard       iDeCo, mutual aid, hometown donation, then insurance
  savings_first  the deductions that return the most per yen first
  bracket_fill   bring taxable income down to the lower bracket edge first
  custom         the order given with --order

Examples:
  tedori allocate profile.yaml --budget 300000
  tedori allocate profile.yaml --budget 500000 --strategy bracket_fill --buffer 10000
  tedori allocate profile.yaml --budget 200000 --strategy custom --order life_insurance,ideco`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := optionalYen("budget", budget)
			if err != nil {
				return err
			}
			if amount == nil {
				return fmt.Errorf("--budget is required")
			}
			margin, err := optionalYen("buffer", buffer)
			if err != nil {
				return err
			}
			if margin == nil {
				margin = &decimal.Zero
			}
			if !lo.Contains(allocation.StrategyNames, strategy) {
				return fmt.Errorf("unknown strategy %q (valid: %s)", strategy, strings.Join(allocation.StrategyNames, ", "))
			}
			sequence := lo.Map(order, func(s string, _ int) domain.DeductionCategory {
				return domain.DeductionCategory(strings.TrimSpace(s))
			})

			profile, err := a.loadProfile(args[0])
			if err != nil {
				return err
			}
			adv, err := a.newAdvisor()
			if err != nil {
				return err
			}
			planner := allocation.NewPlanner(adv.Engine, adv.Tracker)
			planner.SetLogger(a.logger)
			plan, err := planner.Plan(profile, allocation.CreateStrategy(strategy, sequence), *amount, *margin)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if a.settings.Format == "json" {
				return writeJSON(w, plan)
			}
			writePlan(w, plan)
			return nil
		},
	}
	cmd.Flags().StringVar(&budget, "budget", "", "Yearly amount to put into deductions")
	cmd.Flags().StringVar(&strategy, "strategy", "standard", "Allocation strategy ("+strings.Join(allocation.StrategyNames, ", ")+")")
	cmd.Flags().StringSliceVar(&order, "order", nil, "Deduction order for the custom strategy (comma-separated)")
	cmd.Flags().StringVar(&buffer, "buffer", "", "Stay this far below the bracket edge (bracket_fill)")
	return cmd
}

func writePlan(w io.Writer, plan *allocation.Plan) {
	fmt.Fprintf(w, "ALLOCATION PLAN (%s)\n", plan.StrategyUsed)
	fmt.Fprintln(w, strings.Repeat("=", 60))
	fmt.Fprintf(w, "%-30s %14s %14s\n", "Deduction", "Amount", "Est. saving")
	fmt.Fprintln(w, strings.Repeat("-", 60))
	for _, a := range plan.Merged() {
		fmt.Fprintf(w, "%-30s %14s %14s\n", a.Category.Label(), domain.FormatYen(a.Amount), domain.FormatYen(a.EstimatedSaving))
	}
	fmt.Fprintln(w, strings.Repeat("-", 60))
	fmt.Fprintf(w, "%-30s %14s %14s\n", "Total", domain.FormatYen(plan.TotalAllocated), domain.FormatYen(plan.EstimatedSaving))
	fmt.Fprintln(w)

	fmt.Fprintf(w, "Budget:          %s\n", domain.FormatYen(plan.Budget))
	if plan.Unallocated.IsPositive() {
		fmt.Fprintf(w, "Unallocated:     %s\n", domain.FormatYen(plan.Unallocated))
	}
	if plan.BracketTarget != nil {
		fmt.Fprintf(w, "Bracket target:  %s\n", domain.FormatYen(*plan.BracketTarget))
	}
	fmt.Fprintf(w, "Actual saving:   %s\n", domain.FormatYen(plan.ActualSaving))
	if plan.Before != nil && plan.After != nil {
		fmt.Fprintf(w, "Take-home:       %s -> %s\n", domain.FormatYen(plan.Before.NetIncome), domain.FormatYen(plan.After.NetIncome))
	}

	if len(plan.Notes) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "NOTES")
		for _, n := range plan.Notes {
			fmt.Fprintf(w, "  • %s\n", n)
		}
	}
}
