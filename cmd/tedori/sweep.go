package main

import (
	"fmt"
	"strings"

	"github.com/rgehrsitz/tedori/internal/calculation"
	"github.com/rgehrsitz/tedori/internal/domain"
	"github.com/rgehrsitz/tedori/internal/output"
	"github.com/spf13/cobra"
)

func newSweepCmd(a *app) *cobra.Command {
	var (
		parameter string
		minValue  string
		maxValue  string
		steps     int
	)
	cmd := &cobra.Command{
		Use:   "sweep [profile-file]",
		Short: "Show how take-home responds to one income or deduction input",
		Long: `Recalculate the profile at evenly spaced values of one input and show how
much of each step reaches take-home.

Parameters: ` + strings.Join(sweepParameterNames(), ", ") + `

Examples:
  tedori sweep profile.yaml --parameter gross_income --min 4000000 --max 8000000 --steps 9
  tedori sweep profile.yaml --parameter ideco --max 276000 --format csv`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			param := domain.SensitivityParameter{Name: parameter, Steps: steps}
			low, err := optionalYen("min", minValue)
			if err != nil {
				return err
			}
			if low != nil {
				param.MinValue = *low
			}
			high, err := optionalYen("max", maxValue)
			if err != nil {
				return err
			}
			if high == nil {
				return fmt.Errorf("--max is required")
			}
			param.MaxValue = *high

			profile, err := a.loadProfile(args[0])
			if err != nil {
				return err
			}
			adv, err := a.newAdvisor()
			if err != nil {
				return err
			}
			analysis, err := calculation.NewSensitivityAnalyzer(adv.Engine).AnalyzeSingleParameter(cmd.Context(), profile, param)
			if err != nil {
				return err
			}

			out, err := output.NewSensitivityFormatter(a.settings.Format).FormatSensitivityAnalysis(analysis)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), strings.TrimRight(out, "\n"))
			return nil
		},
	}
	cmd.Flags().StringVar(&parameter, "parameter", "gross_income", "Input to sweep")
	cmd.Flags().StringVar(&minValue, "min", "", "Lowest value (default 0)")
	cmd.Flags().StringVar(&maxValue, "max", "", "Highest value")
	cmd.Flags().IntVar(&steps, "steps", calculation.DefaultSensitivitySteps, "Number of values, ends included")
	return cmd
}

func sweepParameterNames() []string {
	params := domain.SensitivityParameters()
	names := make([]string, len(params))
	for i, p := range params {
		names[i] = p.Name
	}
	return names
}
