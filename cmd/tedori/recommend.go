package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/rgehrsitz/tedori/internal/compare"
	"github.com/rgehrsitz/tedori/internal/domain"
	"github.com/rgehrsitz/tedori/internal/recommend"
	"github.com/spf13/cobra"
)

func newRecommendCmd(a *app) *cobra.Command {
	var (
		source   string
		simulate bool
	)
	cmd := &cobra.Command{
		Use:   "recommend [profile-file]",
		Short: "List tax-saving recommendations for a profile",
		Long: `List tax-saving recommendations ordered by priority.

--source picks the catalog entries, the profile-driven ones, or both merged
(one entry per deduction). --simulate applies each recommendation that maps
to a profile change and recalculates, showing the actual saving next to the
estimate.`,
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

			var recs []domain.Recommendation
			switch strings.ToLower(source) {
			case "catalog":
				recs = report.CatalogRecommendations
			case "profile":
				recs = report.ProfileRecommendations
			case "all", "":
				recs = recommend.Merge(report.CatalogRecommendations, report.ProfileRecommendations)
			default:
				return fmt.Errorf("unknown source %q (valid: all, catalog, profile)", source)
			}

			w := cmd.OutOrStdout()
			if a.settings.Format == "json" {
				return writeJSON(w, recs)
			}
			if len(recs) == 0 {
				fmt.Fprintln(w, "No recommendations for this profile.")
				return nil
			}
			writeRecommendations(w, recs)
			if !simulate {
				return nil
			}

			fmt.Fprintln(w)
			fmt.Fprintln(w, "SIMULATED")
			fmt.Fprintf(w, "%-28s %14s %14s %12s\n", "Recommendation", "Estimate", "Recalculated", "Difference")
			for _, rec := range recs {
				sim, err := recommend.Simulate(adv.Engine, profile, rec)
				if errors.Is(err, recommend.ErrNotSimulatable) {
					continue
				}
				if err != nil {
					a.logger.Warnf("simulate %s: %v", rec.ID, err)
					continue
				}
				fmt.Fprintf(w, "%-28s %14s %14s %12s\n", truncate(rec.Title, 28),
					domain.FormatYen(rec.EstimatedAnnualSaving),
					domain.FormatYen(sim.ActualSaving),
					domain.FormatYen(sim.Difference()))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&source, "source", "all", "Recommendations to list (all, catalog, profile)")
	cmd.Flags().BoolVar(&simulate, "simulate", false, "Recalculate each recommendation that maps to a profile change")
	return cmd
}

func writeRecommendations(w io.Writer, recs []domain.Recommendation) {
	fmt.Fprintf(w, "%-3s %-24s %-28s %12s %-8s\n", "#", "ID", "Recommendation", "Saving", "Priority")
	fmt.Fprintln(w, strings.Repeat("-", 80))
	for i, rec := range recs {
		fmt.Fprintf(w, "%-3d %-24s %-28s %12s %-8s\n", i+1, truncate(rec.ID, 24), truncate(rec.Title, 28),
			domain.FormatYen(rec.EstimatedAnnualSaving), rec.PriorityLabel())
	}
}

func newCompareCmd(a *app) *cobra.Command {
	var (
		selected []string
		list     bool
	)
	cmd := &cobra.Command{
		Use:   "compare [profile-file]",
		Short: "Compare combinations of recommendations",
		Long: `Evaluate every combination of two to four selected recommendations, up to
five combinations, and name the one that saves the most.

Examples:
  tedori compare profile.yaml --list
  tedori compare profile.yaml --select ideco,life_insurance,nisa
  tedori compare profile.yaml --select ideco,nisa --format csv`,
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

			w := cmd.OutOrStdout()
			session := domain.ComparisonSession{
				Available: recommend.Merge(report.CatalogRecommendations, report.ProfileRecommendations),
			}
			if list {
				writeRecommendations(w, session.Available)
				return nil
			}
			for _, id := range selected {
				session = session.Toggle(strings.TrimSpace(id))
			}

			comparer := compare.NewComparer()
			comparer.SetLogger(a.logger)
			session, err = comparer.Compare(session)
			if err != nil {
				return err
			}
			result, err := compare.NewComparisonReport(session)
			if err != nil {
				return err
			}

			switch a.settings.Format {
			case "csv":
				out, err := (&compare.CSVFormatter{}).Format(result)
				if err != nil {
					return err
				}
				fmt.Fprint(w, out)
			case "json":
				out, err := (&compare.JSONFormatter{Pretty: true}).Format(result)
				if err != nil {
					return err
				}
				fmt.Fprintln(w, out)
			case "table", "console", "":
				fmt.Fprint(w, (&compare.TableFormatter{}).Format(result))
			default:
				return fmt.Errorf("unknown output format: %s (valid: table, csv, json)", a.settings.Format)
			}
			return nil
		},
	}
	cmd.Flags().StringSliceVar(&selected, "select", nil, "Recommendation ids to compare (comma-separated)")
	cmd.Flags().BoolVar(&list, "list", false, "List the recommendation ids that can be selected")
	return cmd
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}
