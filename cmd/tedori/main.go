package main

import (
	"fmt"
	"io"
	"os"
	"runtime/debug"
	"strings"

	"github.com/rgehrsitz/tedori/internal/advisor"
	"github.com/rgehrsitz/tedori/internal/calculation"
	"github.com/rgehrsitz/tedori/internal/config"
	"github.com/rgehrsitz/tedori/internal/domain"
	"github.com/spf13/cobra"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// app is the state every command shares once the root pre-run has loaded
// settings, reference data and the logger.
type app struct {
	configFile string
	debug      bool

	settings *config.Settings
	ref      *domain.ReferenceData
	logger   calculation.Logger
	logOut   io.Writer
}

func newRootCmd() *cobra.Command {
	a := &app{logOut: os.Stderr}

	root := &cobra.Command{
		Use:   "tedori",
		Short: "Japanese take-home pay and tax saving calculator",
		Long: `Calculates income tax, resident tax and social insurance for a taxpayer
profile, tracks how much of each deduction is in use and recommends the
actions that save the most.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init(cmd)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.configFile, "config", "", "Settings file (default: ./tedori.yaml or ~/.config/tedori/tedori.yaml)")
	pf.String("data-dir", "", "Directory with limits.yaml, regions.yaml and catalog.yaml overrides")
	pf.StringP("format", "f", "console", "Output format")
	pf.String("log-level", "warn", "Log level (debug, info, warn, error)")
	pf.String("region", "tokyo", "Region used when a profile does not name one")
	pf.Int("rules-year", 2024, "Tax rules year")
	pf.BoolVar(&a.debug, "debug", false, "Shorthand for --log-level debug")

	root.AddCommand(
		newCalculateCmd(a),
		newValidateCmd(a),
		newRecommendCmd(a),
		newCompareCmd(a),
		newFurusatoCmd(a),
		newTargetCmd(a),
		newAllocateCmd(a),
		newWhatIfCmd(a),
		newSweepCmd(a),
		newRegionsCmd(a),
		versionCmd(),
	)
	return root
}

func (a *app) init(cmd *cobra.Command) error {
	settings, err := config.LoadSettings(a.configFile, cmd.Flags())
	if err != nil {
		return err
	}
	if a.debug {
		settings.LogLevel = "debug"
	}
	a.settings = settings

	logger, err := newLogger(a.logOut, settings.LogLevel)
	if err != nil {
		return err
	}
	a.logger = logger

	ref, err := config.LoadReferenceData(settings.DataDir)
	if err != nil {
		return fmt.Errorf("failed to load reference data: %w", err)
	}
	a.ref = ref
	a.logger.Debugf("settings: data_dir=%q region=%s rules_year=%d", settings.DataDir, settings.Region, settings.RulesYear)
	return nil
}

// loadProfile reads and validates a profile file, filling in the default
// region when the profile leaves it blank.
func (a *app) loadProfile(path string) (*domain.Profile, error) {
	profile, err := config.NewInputParser(a.ref.Regions).LoadFromFile(path)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(profile.Taxpayer.Region) == "" {
		profile.Taxpayer.Region = a.settings.Region
	}
	return profile, nil
}

func (a *app) newAdvisor() (*advisor.Advisor, error) {
	adv, err := advisor.New(a.ref, a.settings.RulesYear)
	if err != nil {
		return nil, err
	}
	adv.SetLogger(a.logger)
	return adv, nil
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		// Skip the settings pre-run.
		PersistentPreRun: func(*cobra.Command, []string) {},
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "tedori %s (commit %s, built %s)\n", version, commit, date)
			if info := buildInfo(); info != "" {
				fmt.Fprintln(cmd.OutOrStdout(), info)
			}
		},
	}
}

func buildInfo() string {
	if bi, ok := debug.ReadBuildInfo(); ok && bi != nil {
		return bi.Main.Path + " " + bi.GoVersion
	}
	return ""
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
