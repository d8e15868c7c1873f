package main

import (
	"fmt"
	"io"
	"os/signal"
	"syscall"

	"github.com/rgehrsitz/tedori/internal/breakeven"
	"github.com/rgehrsitz/tedori/internal/domain"
	"github.com/rgehrsitz/tedori/internal/transform"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

func newFurusatoCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "furusato [profile-file]",
		Short: "Show the hometown tax donation limit",
		Long: `Show the largest hometown tax (furusato nozei) donation whose cost beyond the
¥2,000 co-payment comes back as tax credits, and how much of it the profile
already uses.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			profile, err := a.loadProfile(args[0])
			if err != nil {
				return err
			}
			adv, err := a.newAdvisor()
			if err != nil {
				return err
			}
			result, err := adv.Engine.Calculate(profile)
			if err != nil {
				return err
			}

			donated := profile.Deductions.Get(domain.DeductionHometownDonation)
			room := result.FurusatoLimit.Sub(donated)
			w := cmd.OutOrStdout()
			if a.settings.Format == "json" {
				return writeJSON(w, map[string]decimal.Decimal{
					"limit":           result.FurusatoLimit,
					"donated":         donated,
					"remaining":       decimal.Max(room, decimal.Zero),
					"marginal_rate":   result.MarginalRate,
					"resident_credit": result.FurusatoCredit,
				})
			}

			fmt.Fprintf(w, "Donation limit:   %s\n", domain.FormatYen(result.FurusatoLimit))
			fmt.Fprintf(w, "Already donated:  %s\n", domain.FormatYen(donated))
			if room.IsNegative() {
				fmt.Fprintf(w, "Over the limit:   %s (this part is not refunded)\n", domain.FormatYen(room.Neg()))
			} else {
				fmt.Fprintf(w, "Remaining room:   %s\n", domain.FormatYen(room))
			}
			fmt.Fprintf(w, "Marginal rate:    %s\n", domain.FormatRate(result.MarginalRate))
			if result.FurusatoCredit.IsPositive() {
				fmt.Fprintf(w, "Resident credit:  %s\n", domain.FormatYen(result.FurusatoCredit))
			}
			return nil
		},
	}
}

func newTargetCmd(a *app) *cobra.Command {
	var (
		annual, monthly string
		minAmount       string
		maxAmount       string
		lever           string
		compareLevers   bool
	)
	cmd := &cobra.Command{
		Use:   "target [profile-file]",
		Short: "Find the income needed for a take-home target",
		Long: `Find the smallest salary (or side income) whose take-home reaches a target.

Examples:
  tedori target profile.yaml --net 5000000
  tedori target profile.yaml --monthly 400000 --lever side_income
  tedori target profile.yaml --net 5000000 --compare-levers`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			goal, target, err := parseGoal(annual, monthly)
			if err != nil {
				return err
			}
			constraints := breakeven.Constraints{TargetNet: &target}
			if constraints.MinAmount, err = optionalYen("min", minAmount); err != nil {
				return err
			}
			if constraints.MaxAmount, err = optionalYen("max", maxAmount); err != nil {
				return err
			}

			profile, err := a.loadProfile(args[0])
			if err != nil {
				return err
			}
			adv, err := a.newAdvisor()
			if err != nil {
				return err
			}
			solver := breakeven.NewDefaultSolver(adv.Engine)
			solver.SetLogger(a.logger)

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			w := cmd.OutOrStdout()
			if compareLevers {
				comparison, err := solver.CompareLevers(ctx, profile, goal, constraints)
				if err != nil {
					return err
				}
				return writeTarget(w, a.settings.Format, comparison, func(tf *breakeven.TableFormatter) string {
					return tf.FormatComparison(comparison)
				})
			}

			result, err := solver.Solve(ctx, breakeven.TargetRequest{
				Profile:     profile,
				Lever:       breakeven.Lever(lever),
				Goal:        goal,
				Constraints: constraints,
			})
			if err != nil {
				return err
			}
			return writeTarget(w, a.settings.Format, result, func(tf *breakeven.TableFormatter) string {
				return tf.Format(result)
			})
		},
	}
	cmd.Flags().StringVar(&annual, "net", "", "Yearly take-home target in yen")
	cmd.Flags().StringVar(&monthly, "monthly", "", "Monthly take-home target in yen")
	cmd.Flags().StringVar(&lever, "lever", string(breakeven.LeverGrossIncome), "Income to adjust (gross_income, side_income)")
	cmd.Flags().StringVar(&minAmount, "min", "", "Lowest amount to search")
	cmd.Flags().StringVar(&maxAmount, "max", "", "Highest amount to search")
	cmd.Flags().BoolVar(&compareLevers, "compare-levers", false, "Solve with every lever and show the cheapest")
	cmd.MarkFlagsMutuallyExclusive("net", "monthly")
	cmd.MarkFlagsOneRequired("net", "monthly")
	return cmd
}

func parseGoal(annual, monthly string) (breakeven.Goal, decimal.Decimal, error) {
	if monthly != "" {
		v, err := decimal.NewFromString(monthly)
		if err != nil {
			return "", decimal.Zero, fmt.Errorf("invalid --monthly %q: %w", monthly, err)
		}
		return breakeven.GoalMonthlyNet, v, nil
	}
	v, err := decimal.NewFromString(annual)
	if err != nil {
		return "", decimal.Zero, fmt.Errorf("invalid --net %q: %w", annual, err)
	}
	return breakeven.GoalAnnualNet, v, nil
}

func optionalYen(name, value string) (*decimal.Decimal, error) {
	if value == "" {
		return nil, nil
	}
	v, err := decimal.NewFromString(value)
	if err != nil {
		return nil, fmt.Errorf("invalid --%s %q: %w", name, value, err)
	}
	return &v, nil
}

func writeTarget(w io.Writer, format string, v interface{}, table func(*breakeven.TableFormatter) string) error {
	if format == "json" {
		out, err := (&breakeven.JSONFormatter{Pretty: true}).Format(v)
		if err != nil {
			return err
		}
		fmt.Fprintln(w, out)
		return nil
	}
	fmt.Fprint(w, table(&breakeven.TableFormatter{}))
	return nil
}

func newWhatIfCmd(a *app) *cobra.Command {
	var (
		specs         []string
		templateNames []string
		listTemplates bool
	)
	cmd := &cobra.Command{
		Use:   "whatif [profile-file]",
		Short: "Recalculate a profile after applying changes",
		Long: `Apply what-if changes to a profile and compare the result with today's.

Changes are given as name:key=value,... and applied in order:
  increase_deduction:category=ideco,amount=120000
  set_deduction:category=life_insurance,amount=80000
  switch_filing:filing=blue,deduction=650000
  family_salary:annual=1200000
  add_expense:amount=300000
  set_income:gross=7000000
  set_side_income:amount=500000

Templates bundle common changes; --list-templates shows the ones that
apply to the profile.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			profile, err := a.loadProfile(args[0])
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			templates := transform.CreateBuiltInTemplates(profile.Taxpayer.EmploymentCategory)
			if listTemplates {
				for _, name := range templates.List() {
					t, _ := templates.Get(name)
					fmt.Fprintf(w, "%-20s %s\n", name, t.Description)
				}
				return nil
			}

			var changes []transform.ProfileTransform
			for _, name := range templateNames {
				t, ok := templates.Get(name)
				if !ok {
					return fmt.Errorf("unknown template %q (available: %v)", name, templates.List())
				}
				changes = append(changes, t.Transforms...)
			}
			registry := transform.NewTransformRegistry()
			for _, spec := range specs {
				t, err := registry.ParseTransformSpec(spec)
				if err != nil {
					return err
				}
				changes = append(changes, t)
			}
			if len(changes) == 0 {
				return fmt.Errorf("nothing to apply: pass --apply or --template")
			}

			adv, err := a.newAdvisor()
			if err != nil {
				return err
			}
			before, err := adv.Engine.Calculate(profile)
			if err != nil {
				return err
			}
			modified, err := transform.ApplyTransforms(profile, changes)
			if err != nil {
				return err
			}
			after, err := adv.Engine.Calculate(modified)
			if err != nil {
				return err
			}

			descriptions := make([]string, len(changes))
			for i, t := range changes {
				descriptions[i] = t.Description()
			}
			if a.settings.Format == "json" {
				return writeJSON(w, struct {
					Changes []string          `json:"changes"`
					Before  *domain.TaxResult `json:"before"`
					After   *domain.TaxResult `json:"after"`
				}{descriptions, before, after})
			}
			writeWhatIf(w, descriptions, before, after)
			return nil
		},
	}
	cmd.Flags().StringArrayVar(&specs, "apply", nil, "Change to apply (repeatable)")
	cmd.Flags().StringSliceVar(&templateNames, "template", nil, "Built-in template to apply (comma-separated)")
	cmd.Flags().BoolVar(&listTemplates, "list-templates", false, "List the templates for this profile")
	return cmd
}

func writeWhatIf(w io.Writer, changes []string, before, after *domain.TaxResult) {
	fmt.Fprintln(w, "CHANGES")
	for _, c := range changes {
		fmt.Fprintf(w, "  • %s\n", c)
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "%-18s %14s %14s %12s\n", "", "Today", "After", "Change")
	rows := []struct {
		label         string
		before, after decimal.Decimal
	}{
		{"Income tax", before.IncomeTax, after.IncomeTax},
		{"Resident tax", before.ResidentTax, after.ResidentTax},
		{"Social insurance", before.SocialInsurance.Total, after.SocialInsurance.Total},
		{"Take-home", before.NetIncome, after.NetIncome},
		{"Monthly", before.MonthlyNetIncome, after.MonthlyNetIncome},
		{"Hometown limit", before.FurusatoLimit, after.FurusatoLimit},
	}
	for _, r := range rows {
		fmt.Fprintf(w, "%-18s %14s %14s %12s\n", r.label,
			domain.FormatYen(r.before), domain.FormatYen(r.after), signedYen(r.after.Sub(r.before)))
	}
}

func signedYen(d decimal.Decimal) string {
	if d.IsNegative() {
		return "-" + domain.FormatYen(d.Neg())
	}
	return "+" + domain.FormatYen(d)
}
