// Package pricing turns a set of selected modules into a quote breakdown.
package pricing

import (
	"errors"
	"fmt"

	"winhouse-quote/internal/models"
)

var ErrInvalidTiers = errors.New("INVALID_DISCOUNT_TIERS")

// Tier grants Percent off the subtotal once at least MinModules modules are
// selected.
type Tier struct {
	MinModules int `json:"minModules"`
	Percent    int `json:"percent"`
}

// DefaultTiers: no discount below five modules, 5% from five on.
var DefaultTiers = []Tier{
	{MinModules: 0, Percent: 0},
	{MinModules: 5, Percent: 5},
}

// Calculator applies a validated tier table. It is immutable and safe for
// concurrent use.
type Calculator struct {
	tiers []Tier
}

// NewCalculator validates tiers: sorted by strictly increasing MinModules,
// percents within [0,100] and never decreasing. That ordering is what keeps
// the discount monotonic in the module count. An empty table means no
// discounts.
func NewCalculator(tiers []Tier) (*Calculator, error) {
	prev := Tier{MinModules: -1}
	for i, t := range tiers {
		if t.MinModules < 0 {
			return nil, fmt.Errorf("%w: tier %d has negative min modules", ErrInvalidTiers, i)
		}
		if t.Percent < 0 || t.Percent > 100 {
			return nil, fmt.Errorf("%w: tier %d percent %d out of range", ErrInvalidTiers, i, t.Percent)
		}
		if t.MinModules <= prev.MinModules {
			return nil, fmt.Errorf("%w: tiers must be sorted by min modules", ErrInvalidTiers)
		}
		if t.Percent < prev.Percent {
			return nil, fmt.Errorf("%w: tier %d lowers the discount", ErrInvalidTiers, i)
		}
		prev = t
	}
	return &Calculator{tiers: append([]Tier(nil), tiers...)}, nil
}

var defaultCalculator = mustCalculator(DefaultTiers)

func mustCalculator(tiers []Tier) *Calculator {
	c, err := NewCalculator(tiers)
	if err != nil {
		panic(fmt.Sprintf("invalid discount tiers: %v", err))
	}
	return c
}

// Default returns the calculator for DefaultTiers.
func Default() *Calculator {
	return defaultCalculator
}

// Tiers returns a copy of the tier table.
func (c *Calculator) Tiers() []Tier {
	return append([]Tier(nil), c.tiers...)
}

// DiscountPercent returns the percent of the highest tier reached by count.
func (c *Calculator) DiscountPercent(count int) int {
	pct := 0
	for _, t := range c.tiers {
		if count >= t.MinModules {
			pct = t.Percent
		}
	}
	return pct
}

// Calculate derives the breakdown from the selected modules. Amounts are
// whole VND; the discount is rounded half up.
func (c *Calculator) Calculate(selected []models.SelectedModule) models.QuoteCalculation {
	var calc models.QuoteCalculation
	for _, s := range selected {
		calc.Subtotal += s.Module.BasePrice
		calc.MonthlyTotal += s.Module.MonthlyPrice
		calc.EstimatedDays += s.Module.EstimatedDays
	}
	calc.ModuleCount = len(selected)
	calc.DiscountPercent = c.DiscountPercent(calc.ModuleCount)
	calc.Discount = roundPercent(calc.Subtotal, calc.DiscountPercent)
	calc.Total = calc.Subtotal - calc.Discount
	return calc
}

// Hint tells the visitor how far the next discount tier is.
type Hint struct {
	ModulesNeeded int `json:"modulesNeeded"`
	Percent       int `json:"percent"`
}

// NextTier returns the nearest tier with a higher percent than count
// currently earns, or false when count already has the best discount.
func (c *Calculator) NextTier(count int) (Hint, bool) {
	current := c.DiscountPercent(count)
	for _, t := range c.tiers {
		if t.MinModules > count && t.Percent > current {
			return Hint{ModulesNeeded: t.MinModules - count, Percent: t.Percent}, true
		}
	}
	return Hint{}, false
}

// Message renders the hint shown under the module list.
func (h Hint) Message() string {
	return fmt.Sprintf("💡 Thêm %d module nữa để được giảm %d%%!", h.ModulesNeeded, h.Percent)
}

// Calculate uses the default tier table.
func Calculate(selected []models.SelectedModule) models.QuoteCalculation {
	return defaultCalculator.Calculate(selected)
}

func roundPercent(amount int64, pct int) int64 {
	if pct == 0 || amount == 0 {
		return 0
	}
	return (amount*int64(pct) + 50) / 100
}
