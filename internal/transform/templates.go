package transform

import (
	"sort"
	"strings"

	"github.com/rgehrsitz/tedori/internal/domain"
	"github.com/shopspring/decimal"
)

// TemplateRegistry manages built-in what-if templates
type TemplateRegistry struct {
	templates map[string]Template
}

// Template represents a named collection of transforms
type Template struct {
	Name        string
	Description string
	Transforms  []ProfileTransform
}

// NewTemplateRegistry creates an empty template registry
func NewTemplateRegistry() *TemplateRegistry {
	return &TemplateRegistry{
		templates: make(map[string]Template),
	}
}

// Register adds a template to the registry
func (tr *TemplateRegistry) Register(t Template) {
	tr.templates[strings.ToLower(t.Name)] = t
}

// Get retrieves a template by name (case-insensitive)
func (tr *TemplateRegistry) Get(name string) (Template, bool) {
	t, ok := tr.templates[strings.ToLower(name)]
	return t, ok
}

// List returns all registered template names, sorted
func (tr *TemplateRegistry) List() []string {
	names := make([]string, 0, len(tr.templates))
	for name := range tr.templates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// CreateBuiltInTemplates creates the templates that make sense for an
// employment category. Business-only plans are left out for employees.
func CreateBuiltInTemplates(category domain.EmploymentCategory) *TemplateRegistry {
	registry := NewTemplateRegistry()

	idecoMax := decimal.NewFromInt(276000)
	if category.IsBusinessOwner() {
		idecoMax = decimal.NewFromInt(816000)
	}
	registry.Register(Template{
		Name:        "max_ideco",
		Description: "Contribute the full yearly iDeCo allowance",
		Transforms: []ProfileTransform{
			&SetDeduction{Category: domain.DeductionIDeCo, Amount: idecoMax},
		},
	})

	registry.Register(Template{
		Name:        "max_life_insurance",
		Description: "Pay enough premiums to reach the life insurance deduction cap",
		Transforms: []ProfileTransform{
			&SetDeduction{Category: domain.DeductionLifeInsurance, Amount: decimal.NewFromInt(80000)},
		},
	})

	if !category.IsBusinessOwner() {
		return registry
	}

	registry.Register(Template{
		Name:        "go_blue",
		Description: "Switch to blue filing and claim the ¥650,000 e-Tax deduction",
		Transforms: []ProfileTransform{
			&SwitchFiling{Filing: domain.FilingBlue, Deduction: decimal.NewFromInt(650000)},
		},
	})

	registry.Register(Template{
		Name:        "max_mutual_aid",
		Description: "Contribute the full yearly small business mutual aid allowance",
		Transforms: []ProfileTransform{
			&SetDeduction{Category: domain.DeductionSmallBusinessMutualAid, Amount: decimal.NewFromInt(840000)},
		},
	})

	registry.Register(Template{
		Name:        "max_safety_net",
		Description: "Pay the full yearly management safety mutual aid premium",
		Transforms: []ProfileTransform{
			&SetDeduction{Category: domain.DeductionManagementSafetyMutualAid, Amount: decimal.NewFromInt(2400000)},
		},
	})

	// Combination templates
	registry.Register(Template{
		Name:        "full_owner_plan",
		Description: "Blue filing + full iDeCo + full small business mutual aid",
		Transforms: []ProfileTransform{
			&SwitchFiling{Filing: domain.FilingBlue, Deduction: decimal.NewFromInt(650000)},
			&SetDeduction{Category: domain.DeductionIDeCo, Amount: idecoMax},
			&SetDeduction{Category: domain.DeductionSmallBusinessMutualAid, Amount: decimal.NewFromInt(840000)},
		},
	})

	return registry
}
