package main

import (
	"fmt"
	"strings"

	"github.com/rgehrsitz/tedori/internal/domain"
	"github.com/rgehrsitz/tedori/internal/output"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

func newCalculateCmd(a *app) *cobra.Command {
	var save bool
	cmd := &cobra.Command{
		Use:   "calculate [profile-file]",
		Short: "Calculate take-home pay and recommendations for a profile",
		Long: `Calculate income tax, resident tax, social insurance and take-home pay,
then list deduction usage and recommendations.

Formats: ` + strings.Join(output.AvailableFormatterNames(), ", ") + `
Aliases: ` + strings.Join(output.AvailableFormatAliases(), ", "),
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
			report, err := adv.Advise(profile)
			if err != nil {
				return err
			}

			if !save {
				return output.GenerateReport(cmd.OutOrStdout(), report, a.settings.Format)
			}
			f := output.GetFormatterByName(a.settings.Format)
			if f == nil {
				return fmt.Errorf("unsupported format: %s", a.settings.Format)
			}
			filename, err := output.WriteFormatted(f, report, extensionFor(f.Name()))
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Report written to %s\n", filename)
			return nil
		},
	}
	cmd.Flags().BoolVar(&save, "save", false, "Write the report to a timestamped file instead of stdout")
	return cmd
}

func extensionFor(formatter string) string {
	switch formatter {
	case "json", "csv", "html":
		return formatter
	case "markdown":
		return "md"
	default:
		return "txt"
	}
}

func newValidateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "validate [profile-file]",
		Short: "Validate a profile file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := a.loadProfile(args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Profile %s is valid\n", args[0])
			return nil
		},
	}
}

func newRegionsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "regions",
		Short: "List the known regions and their rates",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()
			regions := a.ref.Regions
			if len(regions) == 0 {
				regions = domain.DefaultRegions()
			}
			fmt.Fprintf(w, "%-12s %-9s %-9s %-8s %-8s %-9s\n", "Region", "Resident", "Health", "Care", "NHI", "Flat levy")
			fmt.Fprintln(w, strings.Repeat("-", 60))
			for _, name := range domain.RegionNames(regions) {
				r := regions[name]
				fmt.Fprintf(w, "%-12s %-9s %-9s %-8s %-8s %-9s\n",
					name,
					ratePct(r.ResidentRate()),
					ratePct(r.HealthInsuranceRate),
					ratePct(r.CareInsuranceRate),
					ratePct(r.NHIRate),
					domain.FormatYen(r.FlatLevy))
			}
			return nil
		},
	}
}

// ratePct shows premium rates to two places; they are quoted that finely.
func ratePct(rate decimal.Decimal) string {
	return rate.Mul(decimal.NewFromInt(100)).StringFixed(2) + "%"
}
