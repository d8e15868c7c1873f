package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rgehrsitz/tedori/internal/domain"
	"gopkg.in/yaml.v3"
)

// InputParser handles parsing of taxpayer profile files
type InputParser struct {
	// Regions are the names a profile may refer to. Nil skips the check.
	Regions map[string]domain.RegionProfile
}

// NewInputParser creates a new input parser that knows the given regions
func NewInputParser(regions map[string]domain.RegionProfile) *InputParser {
	return &InputParser{Regions: regions}
}

// LoadFromFile loads a profile from a YAML or JSON file. The format follows
// the extension; anything other than .json is read as YAML.
func (ip *InputParser) LoadFromFile(filename string) (*domain.Profile, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	format := "yaml"
	if strings.EqualFold(filepath.Ext(filename), ".json") {
		format = "json"
	}
	profile, err := ip.Parse(data, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return profile, nil
}

// Parse decodes and validates a profile from raw bytes
func (ip *InputParser) Parse(data []byte, format string) (*domain.Profile, error) {
	var profile domain.Profile
	switch format {
	case "json":
		if err := json.Unmarshal(data, &profile); err != nil {
			return nil, fmt.Errorf("failed to parse JSON: %w", err)
		}
	case "yaml", "yml":
		if err := yaml.Unmarshal(data, &profile); err != nil {
			return nil, fmt.Errorf("failed to parse YAML: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported profile format %q", format)
	}

	if profile.Deductions == nil {
		profile.Deductions = domain.DeductionInputs{}
	}
	if profile.Taxpayer.EmploymentCategory.IsBusinessOwner() && profile.Taxpayer.FilingType == "" {
		profile.Taxpayer.FilingType = domain.FilingWhite
	}

	if err := ip.ValidateProfile(&profile); err != nil {
		return nil, fmt.Errorf("profile validation failed: %w", err)
	}
	return &profile, nil
}

// ValidateProfile runs the field checks and, when the parser knows its
// regions, rejects a region name that would otherwise fall back silently.
func (ip *InputParser) ValidateProfile(profile *domain.Profile) error {
	var errs []error
	if err := profile.Validate(); err != nil {
		errs = append(errs, err)
	}

	region := strings.TrimSpace(profile.Taxpayer.Region)
	if ip.Regions != nil && region != "" {
		if _, ok := domain.LookupRegion(ip.Regions, region); !ok {
			errs = append(errs, &domain.ValidationError{
				Field:   "region",
				Value:   region,
				Message: "must be one of " + strings.Join(domain.RegionNames(ip.Regions), ", "),
			})
		}
	}

	return errors.Join(errs...)
}
