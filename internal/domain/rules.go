package domain

import (
	"github.com/shopspring/decimal"
)

// BracketTier is one row of a progressive table: for values up to and
// including UpTo the result is Rate*value - Subtraction. A nil UpTo marks
// the open-ended top tier.
type BracketTier struct {
	UpTo        *decimal.Decimal `yaml:"up_to" json:"up_to"`
	Rate        decimal.Decimal  `yaml:"rate" json:"rate"`
	Subtraction decimal.Decimal  `yaml:"subtraction" json:"subtraction"`
}

// Tier builds a bounded tier. Negative subtraction adds a fixed amount.
func Tier(upTo int64, rate float64, subtraction int64) BracketTier {
	bound := decimal.NewFromInt(upTo)
	return BracketTier{UpTo: &bound, Rate: decimal.NewFromFloat(rate), Subtraction: decimal.NewFromInt(subtraction)}
}

// TopTier builds the open-ended last tier.
func TopTier(rate float64, subtraction int64) BracketTier {
	return BracketTier{Rate: decimal.NewFromFloat(rate), Subtraction: decimal.NewFromInt(subtraction)}
}

// TaxRules contains every statutory constant for one tax year. Loaded once and
// shared read-only between calculations.
type TaxRules struct {
	Year            int                  `yaml:"year" json:"year"`
	IncomeTax       IncomeTaxRules       `yaml:"income_tax" json:"income_tax"`
	ResidentTax     ResidentTaxRules     `yaml:"resident_tax" json:"resident_tax"`
	SocialInsurance SocialInsuranceRules `yaml:"social_insurance" json:"social_insurance"`
}

// IncomeTaxRules are the national income tax tables and deduction amounts.
type IncomeTaxRules struct {
	Brackets         []BracketTier   `yaml:"brackets" json:"brackets"`
	SalaryDeduction  []BracketTier   `yaml:"salary_deduction" json:"salary_deduction"`
	LifeInsurance    []BracketTier   `yaml:"life_insurance" json:"life_insurance"`
	SurtaxMultiplier decimal.Decimal `yaml:"surtax_multiplier" json:"surtax_multiplier"`

	BasicDeduction      decimal.Decimal `yaml:"basic_deduction" json:"basic_deduction"`
	SpouseDeduction     decimal.Decimal `yaml:"spouse_deduction" json:"spouse_deduction"`
	SpouseIncomeCeiling decimal.Decimal `yaml:"spouse_income_ceiling" json:"spouse_income_ceiling"`
	DependentDeduction  decimal.Decimal `yaml:"dependent_deduction" json:"dependent_deduction"`
	DisabledDeduction   decimal.Decimal `yaml:"disabled_deduction" json:"disabled_deduction"`
	LifeInsuranceCap    decimal.Decimal `yaml:"life_insurance_cap" json:"life_insurance_cap"`
	EarthquakeCap       decimal.Decimal `yaml:"earthquake_cap" json:"earthquake_cap"`
	MedicalFloor        decimal.Decimal `yaml:"medical_floor" json:"medical_floor"`
	MedicalCap          decimal.Decimal `yaml:"medical_cap" json:"medical_cap"`
	DonationSelfPay     decimal.Decimal `yaml:"donation_self_pay" json:"donation_self_pay"`
	BlueFilingMax       decimal.Decimal `yaml:"blue_filing_max" json:"blue_filing_max"`
}

// ResidentTaxRules are the municipal counterparts. The deduction amounts are
// deliberately lower than the income tax ones.
type ResidentTaxRules struct {
	LifeInsurance        []BracketTier   `yaml:"life_insurance" json:"life_insurance"`
	BasicDeduction       decimal.Decimal `yaml:"basic_deduction" json:"basic_deduction"`
	SpouseDeduction      decimal.Decimal `yaml:"spouse_deduction" json:"spouse_deduction"`
	DependentDeduction   decimal.Decimal `yaml:"dependent_deduction" json:"dependent_deduction"`
	DisabledDeduction    decimal.Decimal `yaml:"disabled_deduction" json:"disabled_deduction"`
	LifeInsuranceCap     decimal.Decimal `yaml:"life_insurance_cap" json:"life_insurance_cap"`
	EarthquakeRatio      decimal.Decimal `yaml:"earthquake_ratio" json:"earthquake_ratio"`
	EarthquakeCap        decimal.Decimal `yaml:"earthquake_cap" json:"earthquake_cap"`
	NonTaxableIncome     decimal.Decimal `yaml:"non_taxable_income" json:"non_taxable_income"`
	FurusatoSelfPay      decimal.Decimal `yaml:"furusato_self_pay" json:"furusato_self_pay"`
	FurusatoCreditRate   decimal.Decimal `yaml:"furusato_credit_rate" json:"furusato_credit_rate"`
	FurusatoBaseRate     decimal.Decimal `yaml:"furusato_base_rate" json:"furusato_base_rate"`
	FurusatoRoundingUnit decimal.Decimal `yaml:"furusato_rounding_unit" json:"furusato_rounding_unit"`
}

// SocialInsuranceRules are the employee-insurance caps and national rates.
type SocialInsuranceRules struct {
	HealthMonthlyCap      decimal.Decimal `yaml:"health_monthly_cap" json:"health_monthly_cap"`
	PensionMonthlyCap     decimal.Decimal `yaml:"pension_monthly_cap" json:"pension_monthly_cap"`
	HealthBonusAnnualCap  decimal.Decimal `yaml:"health_bonus_annual_cap" json:"health_bonus_annual_cap"`
	PensionBonusCap       decimal.Decimal `yaml:"pension_bonus_cap" json:"pension_bonus_cap"`
	BonusRoundingUnit     decimal.Decimal `yaml:"bonus_rounding_unit" json:"bonus_rounding_unit"`
	PensionRate           decimal.Decimal `yaml:"pension_rate" json:"pension_rate"`
	EmploymentRate        decimal.Decimal `yaml:"employment_rate" json:"employment_rate"`
	CareInsuranceAge      int             `yaml:"care_insurance_age" json:"care_insurance_age"`
	NHIDeductionFloor     decimal.Decimal `yaml:"nhi_deduction_floor" json:"nhi_deduction_floor"`
	NationalPensionAnnual decimal.Decimal `yaml:"national_pension_annual" json:"national_pension_annual"`
	PartTimeThreshold     decimal.Decimal `yaml:"part_time_threshold" json:"part_time_threshold"`
}

// DefaultTaxRules2024 returns the rules in force for the 2024 tax year.
func DefaultTaxRules2024() TaxRules {
	return TaxRules{
		Year: 2024,
		IncomeTax: IncomeTaxRules{
			Brackets: []BracketTier{
				Tier(1950000, 0.05, 0),
				Tier(3300000, 0.10, 97500),
				Tier(6950000, 0.20, 427500),
				Tier(9000000, 0.23, 636000),
				Tier(18000000, 0.33, 1536000),
				Tier(40000000, 0.40, 2796000),
				TopTier(0.45, 4796000),
			},
			SalaryDeduction: []BracketTier{
				Tier(1625000, 0, -550000),
				Tier(1800000, 0.4, 100000),
				Tier(3600000, 0.3, -80000),
				Tier(6600000, 0.2, -440000),
				Tier(8500000, 0.1, -1100000),
				TopTier(0, -1950000),
			},
			LifeInsurance: []BracketTier{
				Tier(20000, 1, 0),
				Tier(40000, 0.5, -10000),
				Tier(80000, 0.25, -20000),
				TopTier(0, -40000),
			},
			SurtaxMultiplier:    decimal.NewFromFloat(1.021),
			BasicDeduction:      decimal.NewFromInt(480000),
			SpouseDeduction:     decimal.NewFromInt(380000),
			SpouseIncomeCeiling: decimal.NewFromInt(480000),
			DependentDeduction:  decimal.NewFromInt(380000),
			DisabledDeduction:   decimal.NewFromInt(270000),
			LifeInsuranceCap:    decimal.NewFromInt(120000),
			EarthquakeCap:       decimal.NewFromInt(50000),
			MedicalFloor:        decimal.NewFromInt(100000),
			MedicalCap:          decimal.NewFromInt(2000000),
			DonationSelfPay:     decimal.NewFromInt(2000),
			BlueFilingMax:       decimal.NewFromInt(650000),
		},
		ResidentTax: ResidentTaxRules{
			LifeInsurance: []BracketTier{
				Tier(12000, 1, 0),
				Tier(32000, 0.5, -6000),
				Tier(56000, 0.25, -14000),
				TopTier(0, -28000),
			},
			BasicDeduction:       decimal.NewFromInt(430000),
			SpouseDeduction:      decimal.NewFromInt(330000),
			DependentDeduction:   decimal.NewFromInt(330000),
			DisabledDeduction:    decimal.NewFromInt(270000),
			LifeInsuranceCap:     decimal.NewFromInt(70000),
			EarthquakeRatio:      decimal.NewFromFloat(0.5),
			EarthquakeCap:        decimal.NewFromInt(25000),
			NonTaxableIncome:     decimal.NewFromInt(450000),
			FurusatoSelfPay:      decimal.NewFromInt(2000),
			FurusatoCreditRate:   decimal.NewFromFloat(0.20),
			FurusatoBaseRate:     decimal.NewFromFloat(0.90),
			FurusatoRoundingUnit: decimal.NewFromInt(1000),
		},
		SocialInsurance: SocialInsuranceRules{
			HealthMonthlyCap:      decimal.NewFromInt(1390000),
			PensionMonthlyCap:     decimal.NewFromInt(650000),
			HealthBonusAnnualCap:  decimal.NewFromInt(5730000),
			PensionBonusCap:       decimal.NewFromInt(1500000),
			BonusRoundingUnit:     decimal.NewFromInt(1000),
			PensionRate:           decimal.NewFromFloat(0.183),
			EmploymentRate:        decimal.NewFromFloat(0.006),
			CareInsuranceAge:      40,
			NHIDeductionFloor:     decimal.NewFromInt(430000),
			NationalPensionAnnual: decimal.NewFromInt(203760),
			PartTimeThreshold:     decimal.NewFromInt(1300000),
		},
	}
}
