package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/samber/lo"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Settings are the application-level options shared by the commands.
type Settings struct {
	DataDir   string `mapstructure:"data_dir"`
	Format    string `mapstructure:"format"`
	LogLevel  string `mapstructure:"log_level"`
	Region    string `mapstructure:"region"`
	RulesYear int    `mapstructure:"rules_year"`
}

// SupportedRulesYears lists the tax years with built-in tables.
var SupportedRulesYears = []int{2024}

var logLevels = []string{"debug", "info", "warn", "error"}

// LoadSettings reads tedori.yaml from the working directory or
// $HOME/.config/tedori (or the explicit configFile), then TEDORI_* environment
// variables, then any changed flags. Flag names use dashes for the
// underscores in the keys, e.g. --data-dir.
func LoadSettings(configFile string, flags *pflag.FlagSet) (*Settings, error) {
	v := viper.New()
	v.SetDefault("data_dir", "")
	v.SetDefault("format", "console")
	v.SetDefault("log_level", "warn")
	v.SetDefault("region", "tokyo")
	v.SetDefault("rules_year", 2024)

	v.SetEnvPrefix("TEDORI")
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("tedori")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "tedori"))
		}
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	if flags != nil {
		for _, key := range []string{"data_dir", "format", "log_level", "region", "rules_year"} {
			if f := flags.Lookup(strings.ReplaceAll(key, "_", "-")); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("failed to bind flag %s: %w", f.Name, err)
				}
			}
		}
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return nil, fmt.Errorf("failed to parse settings: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Validate checks the values that have a closed set of options.
func (s *Settings) Validate() error {
	var errs []error
	s.LogLevel = strings.ToLower(s.LogLevel)
	if !lo.Contains(logLevels, s.LogLevel) {
		errs = append(errs, fmt.Errorf("log_level %q must be one of %s", s.LogLevel, strings.Join(logLevels, ", ")))
	}
	if !lo.Contains(SupportedRulesYears, s.RulesYear) {
		errs = append(errs, fmt.Errorf("rules_year %d is not supported (have %v)", s.RulesYear, SupportedRulesYears))
	}
	return errors.Join(errs...)
}
