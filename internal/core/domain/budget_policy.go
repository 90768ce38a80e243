package domain

import "github.com/shopspring/decimal"

// BudgetPolicy maps each expense category to the fraction of total income it may consume.
// Categories without a positive fraction fall back to Default.
type BudgetPolicy struct {
	Limits            map[Category]decimal.Decimal
	Default           decimal.Decimal
	SavingsTargetRate decimal.Decimal
}

// DefaultBudgetPolicy returns the built-in limits.
func DefaultBudgetPolicy() BudgetPolicy {
	return BudgetPolicy{
		Limits: map[Category]decimal.Decimal{
			CategoryHousing:        decimal.RequireFromString("0.30"),
			CategoryFood:           decimal.RequireFromString("0.15"),
			CategoryTransportation: decimal.RequireFromString("0.10"),
			CategoryEducation:      decimal.RequireFromString("0.15"),
			CategoryEntertainment:  decimal.RequireFromString("0.10"),
			CategoryShopping:       decimal.RequireFromString("0.10"),
			CategoryHealth:         decimal.RequireFromString("0.05"),
			CategoryOther:          decimal.RequireFromString("0.05"),
		},
		Default:           decimal.RequireFromString("0.10"),
		SavingsTargetRate: decimal.RequireFromString("0.20"),
	}
}

// LimitFraction resolves the fraction for c.
func (p BudgetPolicy) LimitFraction(c Category) decimal.Decimal {
	if f, ok := p.Limits[c]; ok && f.IsPositive() {
		return f
	}
	return p.Default
}

// WithLimit returns a copy of p with the fraction for c replaced.
func (p BudgetPolicy) WithLimit(c Category, fraction decimal.Decimal) BudgetPolicy {
	limits := make(map[Category]decimal.Decimal, len(p.Limits)+1)
	for k, v := range p.Limits {
		limits[k] = v
	}
	limits[c] = fraction
	p.Limits = limits
	return p
}
