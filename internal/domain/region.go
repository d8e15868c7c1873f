package domain

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"
)

// DefaultRegion is used when the input names no region or an unknown one.
const DefaultRegion = "default"

// RegionProfile holds the per-prefecture constants used by the calculators.
// Values are shared between calculations and never modified by them.
type RegionProfile struct {
	Name                string          `yaml:"name" json:"name"`
	FlatLevy            decimal.Decimal `yaml:"flat_levy" json:"flat_levy"`
	PrefectureRate      decimal.Decimal `yaml:"prefecture_rate" json:"prefecture_rate"`
	CityRate            decimal.Decimal `yaml:"city_rate" json:"city_rate"`
	HealthInsuranceRate decimal.Decimal `yaml:"health_insurance_rate" json:"health_insurance_rate"`
	CareInsuranceRate   decimal.Decimal `yaml:"care_insurance_rate" json:"care_insurance_rate"`
	NHIRate             decimal.Decimal `yaml:"nhi_rate" json:"nhi_rate"`
	NHIPerCapita        decimal.Decimal `yaml:"nhi_per_capita" json:"nhi_per_capita"`
}

// ResidentRate is the combined proportional resident-tax rate.
func (r RegionProfile) ResidentRate() decimal.Decimal {
	return r.PrefectureRate.Add(r.CityRate)
}

func region(name string, flatLevy int64, health, care, nhi float64) RegionProfile {
	return RegionProfile{
		Name:                name,
		FlatLevy:            decimal.NewFromInt(flatLevy),
		PrefectureRate:      decimal.NewFromFloat(0.04),
		CityRate:            decimal.NewFromFloat(0.06),
		HealthInsuranceRate: decimal.NewFromFloat(health),
		CareInsuranceRate:   decimal.NewFromFloat(care),
		NHIRate:             decimal.NewFromFloat(nhi),
		NHIPerCapita:        decimal.NewFromInt(45000),
	}
}

// DefaultRegions returns the built-in prefecture table (Kyokai Kenpo 2024 rates).
func DefaultRegions() map[string]RegionProfile {
	return map[string]RegionProfile{
		"tokyo":       region("tokyo", 5000, 0.0998, 0.0182, 0.099),
		"osaka":       region("osaka", 5300, 0.1034, 0.0186, 0.103),
		"aichi":       region("aichi", 5000, 0.1002, 0.0179, 0.0984),
		"fukuoka":     region("fukuoka", 5000, 0.1035, 0.0182, 0.1022),
		"hokkaido":    region("hokkaido", 5000, 0.1021, 0.0195, 0.1065),
		"kanagawa":    region("kanagawa", 5500, 0.1002, 0.0181, 0.0991),
		"saitama":     region("saitama", 5000, 0.0978, 0.0176, 0.0971),
		"chiba":       region("chiba", 5000, 0.0977, 0.0172, 0.0983),
		"hyogo":       region("hyogo", 5300, 0.1018, 0.0183, 0.1015),
		DefaultRegion: region(DefaultRegion, 5000, 0.10, 0.0182, 0.10),
	}
}

// LookupRegion resolves a region name case-insensitively, falling back to the
// default profile. The second result is false when the fallback was used.
func LookupRegion(regions map[string]RegionProfile, name string) (RegionProfile, bool) {
	key := strings.ToLower(strings.TrimSpace(name))
	if r, ok := regions[key]; ok {
		return r, true
	}
	if r, ok := regions[DefaultRegion]; ok {
		return r, false
	}
	return DefaultRegions()[DefaultRegion], false
}

// RegionNames returns the sorted region keys.
func RegionNames(regions map[string]RegionProfile) []string {
	names := make([]string, 0, len(regions))
	for k := range regions {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}
