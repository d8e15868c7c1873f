package transform

import (
	"fmt"
	"sort"
	"strings"

	"github.com/rgehrsitz/tedori/internal/domain"
	"github.com/shopspring/decimal"
)

// TransformRegistry provides a central registry for all available transforms.
// It enables creation of transforms from string parameters, useful for CLI commands.
type TransformRegistry struct {
	factories map[string]TransformFactory
}

// TransformFactory is a function that creates a transform from parameters.
type TransformFactory func(params map[string]string) (ProfileTransform, error)

// NewTransformRegistry creates a new registry with all built-in transforms registered.
func NewTransformRegistry() *TransformRegistry {
	registry := &TransformRegistry{
		factories: make(map[string]TransformFactory),
	}

	registry.Register("increase_deduction", createIncreaseDeduction)
	registry.Register("set_deduction", createSetDeduction)
	registry.Register("switch_filing", createSwitchFiling)
	registry.Register("family_salary", createFamilySalary)
	registry.Register("add_expense", createAddExpense)
	registry.Register("set_income", createSetIncome)
	registry.Register("set_side_income", createSetSideIncome)

	return registry
}

// Register adds a transform factory to the registry.
func (r *TransformRegistry) Register(name string, factory TransformFactory) {
	r.factories[name] = factory
}

// Create creates a transform by name with the given parameters.
func (r *TransformRegistry) Create(name string, params map[string]string) (ProfileTransform, error) {
	factory, exists := r.factories[name]
	if !exists {
		return nil, fmt.Errorf("unknown transform: %s", name)
	}

	return factory(params)
}

// List returns the sorted names of all registered transforms.
func (r *TransformRegistry) List() []string {
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ParseTransformSpec parses a transform specification string.
// Format: "transform_name:param1=value1,param2=value2"
// Example: "increase_deduction:category=ideco,amount=120000"
func (r *TransformRegistry) ParseTransformSpec(spec string) (ProfileTransform, error) {
	parts := strings.SplitN(spec, ":", 2)
	if len(parts) != 2 {
		return nil, fmt.Errorf("invalid transform spec format, expected 'name:params', got: %s", spec)
	}

	name := strings.TrimSpace(parts[0])
	paramsStr := strings.TrimSpace(parts[1])

	params := make(map[string]string)
	if paramsStr != "" {
		for _, paramPair := range strings.Split(paramsStr, ",") {
			kv := strings.SplitN(paramPair, "=", 2)
			if len(kv) != 2 {
				return nil, fmt.Errorf("invalid parameter format, expected 'key=value', got: %s", paramPair)
			}
			params[strings.TrimSpace(kv[0])] = strings.TrimSpace(kv[1])
		}
	}

	return r.Create(name, params)
}

// Factory functions for each transform

func requireAmount(transform string, params map[string]string, key string) (decimal.Decimal, error) {
	raw, ok := params[key]
	if !ok {
		return decimal.Zero, fmt.Errorf("%s requires '%s' parameter", transform, key)
	}
	amount, err := decimal.NewFromString(strings.ReplaceAll(raw, "_", ""))
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid %s value: %w", key, err)
	}
	return amount, nil
}

func requireCategory(transform string, params map[string]string) (domain.DeductionCategory, error) {
	raw, ok := params["category"]
	if !ok {
		return "", fmt.Errorf("%s requires 'category' parameter", transform)
	}
	category := domain.DeductionCategory(strings.ReplaceAll(strings.ToLower(raw), "-", "_"))
	if !category.Known() {
		return "", fmt.Errorf("unknown deduction category: %s", raw)
	}
	return category, nil
}

func createIncreaseDeduction(params map[string]string) (ProfileTransform, error) {
	category, err := requireCategory("increase_deduction", params)
	if err != nil {
		return nil, err
	}
	amount, err := requireAmount("increase_deduction", params, "amount")
	if err != nil {
		return nil, err
	}
	return &IncreaseDeduction{Category: category, Amount: amount}, nil
}

func createSetDeduction(params map[string]string) (ProfileTransform, error) {
	category, err := requireCategory("set_deduction", params)
	if err != nil {
		return nil, err
	}
	amount, err := requireAmount("set_deduction", params, "amount")
	if err != nil {
		return nil, err
	}
	return &SetDeduction{Category: category, Amount: amount}, nil
}

func createSwitchFiling(params map[string]string) (ProfileTransform, error) {
	filing, ok := params["filing"]
	if !ok {
		return nil, fmt.Errorf("switch_filing requires 'filing' parameter")
	}

	t := &SwitchFiling{Filing: domain.FilingType(strings.ToLower(filing))}
	if t.Filing == domain.FilingBlue {
		t.Deduction = decimal.NewFromInt(650000)
		if _, ok := params["deduction"]; ok {
			deduction, err := requireAmount("switch_filing", params, "deduction")
			if err != nil {
				return nil, err
			}
			t.Deduction = deduction
		}
	}
	return t, nil
}

func createFamilySalary(params map[string]string) (ProfileTransform, error) {
	annual, err := requireAmount("family_salary", params, "annual")
	if err != nil {
		return nil, err
	}
	return &FamilySalary{Annual: annual}, nil
}

func createAddExpense(params map[string]string) (ProfileTransform, error) {
	amount, err := requireAmount("add_expense", params, "amount")
	if err != nil {
		return nil, err
	}
	return &AddExpense{Amount: amount}, nil
}

func createSetIncome(params map[string]string) (ProfileTransform, error) {
	gross, err := requireAmount("set_income", params, "gross")
	if err != nil {
		return nil, err
	}
	return &SetIncome{Gross: gross}, nil
}

func createSetSideIncome(params map[string]string) (ProfileTransform, error) {
	amount, err := requireAmount("set_side_income", params, "amount")
	if err != nil {
		return nil, err
	}
	return &SetSideIncome{Amount: amount}, nil
}
