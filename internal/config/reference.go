package config

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/rgehrsitz/tedori/internal/domain"
	"gopkg.in/yaml.v3"
)

//go:embed data/*.yaml
var embedded embed.FS

// Reference feed file names, looked up as .yaml, .yml or .json.
const (
	LimitsFile  = "limits"
	CatalogFile = "catalog"
	RegionsFile = "regions"
)

// DefaultReferenceData parses the reference data compiled into the binary.
func DefaultReferenceData() (*domain.ReferenceData, error) {
	data := &domain.ReferenceData{}
	if err := decodeEmbedded(LimitsFile, &data.Limits); err != nil {
		return nil, err
	}
	if err := decodeEmbedded(CatalogFile, &data.Catalog); err != nil {
		return nil, err
	}
	if err := decodeEmbedded(RegionsFile, &data.Regions); err != nil {
		return nil, err
	}
	nameRegions(data.Regions)
	return data, nil
}

func decodeEmbedded(name string, out interface{}) error {
	raw, err := embedded.ReadFile("data/" + name + ".yaml")
	if err != nil {
		return fmt.Errorf("embedded %s: %w", name, err)
	}
	if err := yaml.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("embedded %s: %w", name, err)
	}
	return nil
}

// LoadReferenceData overlays the feeds found in dir on the embedded defaults.
// A missing directory or file keeps the defaults; limits and regions are
// merged per key and a non-empty catalog replaces the built-in one. A file
// that exists but cannot be parsed is an error.
func LoadReferenceData(dir string) (*domain.ReferenceData, error) {
	data, err := DefaultReferenceData()
	if err != nil {
		return nil, err
	}
	if dir == "" {
		return data, nil
	}

	var limits map[domain.DeductionCategory]domain.LimitSpec
	if err := readFeed(dir, LimitsFile, &limits); err != nil {
		return nil, err
	}
	for category, spec := range limits {
		if !category.Known() {
			return nil, fmt.Errorf("limits feed: unknown deduction category %q", category)
		}
		data.Limits[category] = spec
	}

	var catalog []domain.CatalogEntry
	if err := readFeed(dir, CatalogFile, &catalog); err != nil {
		return nil, err
	}
	if len(catalog) > 0 {
		if err := validateCatalog(catalog); err != nil {
			return nil, err
		}
		data.Catalog = catalog
	}

	var regions map[string]domain.RegionProfile
	if err := readFeed(dir, RegionsFile, &regions); err != nil {
		return nil, err
	}
	for name, region := range regions {
		key := strings.ToLower(strings.TrimSpace(name))
		data.Regions[key] = fillRegion(key, region, data.Regions)
	}
	nameRegions(data.Regions)

	return data, nil
}

// readFeed decodes the first of name.yaml, name.yml and name.json found in
// dir, leaving out untouched when none exists.
func readFeed(dir, name string, out interface{}) error {
	for _, ext := range []string{".yaml", ".yml", ".json"} {
		path := filepath.Join(dir, name+ext)
		raw, err := os.ReadFile(path)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", path, err)
		}
		if ext == ".json" {
			err = json.Unmarshal(raw, out)
		} else {
			err = yaml.Unmarshal(raw, out)
		}
		if err != nil {
			return fmt.Errorf("failed to parse %s: %w", path, err)
		}
		return nil
	}
	return nil
}

func validateCatalog(catalog []domain.CatalogEntry) error {
	seen := make(map[string]bool, len(catalog))
	var errs []error
	for i, entry := range catalog {
		switch {
		case entry.ID == "":
			errs = append(errs, fmt.Errorf("catalog entry %d: id is required", i))
		case seen[entry.ID]:
			errs = append(errs, fmt.Errorf("catalog entry %d: duplicate id %q", i, entry.ID))
		}
		seen[entry.ID] = true

		switch entry.Formula {
		case "", domain.FormulaExample, domain.FormulaFixedExpense, domain.FormulaSpouseSalary:
		case domain.FormulaDeductionHeadroom, domain.FormulaHometownDonation, domain.FormulaBlueUpgrade:
			if !entry.TargetDeduction.Known() {
				errs = append(errs, fmt.Errorf("catalog entry %q: formula %s needs a known target_deduction", entry.ID, entry.Formula))
			}
		default:
			errs = append(errs, fmt.Errorf("catalog entry %q: unknown formula %q", entry.ID, entry.Formula))
		}
	}
	return errors.Join(errs...)
}

// fillRegion completes a partially specified region from the loaded profile
// of the same name, or from the default region.
func fillRegion(name string, r domain.RegionProfile, known map[string]domain.RegionProfile) domain.RegionProfile {
	base, ok := known[name]
	if !ok {
		base = known[domain.DefaultRegion]
	}
	if r.FlatLevy.IsZero() {
		r.FlatLevy = base.FlatLevy
	}
	if r.PrefectureRate.IsZero() {
		r.PrefectureRate = base.PrefectureRate
	}
	if r.CityRate.IsZero() {
		r.CityRate = base.CityRate
	}
	if r.HealthInsuranceRate.IsZero() {
		r.HealthInsuranceRate = base.HealthInsuranceRate
	}
	if r.CareInsuranceRate.IsZero() {
		r.CareInsuranceRate = base.CareInsuranceRate
	}
	if r.NHIRate.IsZero() {
		r.NHIRate = base.NHIRate
	}
	if r.NHIPerCapita.IsZero() {
		r.NHIPerCapita = base.NHIPerCapita
	}
	return r
}

func nameRegions(regions map[string]domain.RegionProfile) {
	for name, r := range regions {
		if r.Name == "" {
			r.Name = name
			regions[name] = r
		}
	}
}
