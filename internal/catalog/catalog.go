// Package catalog holds the industries, budget tiers, feature modules and
// website styles a visitor picks from. A Catalog is immutable once built and
// safe for concurrent use.
package catalog

import (
	"errors"
	"fmt"
	"strings"

	"winhouse-quote/internal/models"
)

var (
	ErrDuplicateID     = errors.New("DUPLICATE_ID")
	ErrUnknownIndustry = errors.New("UNKNOWN_INDUSTRY")
	ErrUnknownModule   = errors.New("UNKNOWN_MODULE")
	ErrUnknownStyle    = errors.New("UNKNOWN_STYLE")
	ErrInvalidModule   = errors.New("INVALID_MODULE")
)

// fallbackStyles are recommended when an industry has no entry.
var fallbackStyles = []string{"minimalist", "corporate"}

var categoryLabels = map[models.ModuleCategory]string{
	models.CategoryCore:        "Tính năng cốt lõi",
	models.CategoryMarketing:   "Marketing & SEO",
	models.CategoryIntegration: "Tích hợp",
	models.CategoryAdvanced:    "Nâng cao",
	models.CategorySupport:     "Hỗ trợ & Bảo trì",
}

// Data is the serializable form of a catalog.
type Data struct {
	Industries      []models.Industry     `json:"industries"`
	Budgets         []models.BudgetOption `json:"budgets"`
	Modules         []models.Module       `json:"modules"`
	Styles          []models.StyleOption  `json:"styles"`
	Recommendations map[string][]string   `json:"recommendations"`
}

type Catalog struct {
	data       Data
	industries map[string]int
	budgets    map[models.BudgetRange]int
	modules    map[string]int
	styles     map[string]int
}

// ModuleFilter narrows Filter results. Zero fields match everything.
type ModuleFilter struct {
	Industry string
	Category models.ModuleCategory
	Search   string
	PriceMin *int64
	PriceMax *int64
}

// Default returns the built-in catalog.
func Default() *Catalog {
	c, err := New(defaultData())
	if err != nil {
		panic(fmt.Sprintf("built-in catalog is invalid: %v", err))
	}
	return c
}

// DefaultData returns a copy of the built-in catalog data.
func DefaultData() Data {
	return defaultData()
}

// New validates data and indexes it.
func New(data Data) (*Catalog, error) {
	c := &Catalog{
		data:       data,
		industries: make(map[string]int, len(data.Industries)),
		budgets:    make(map[models.BudgetRange]int, len(data.Budgets)),
		modules:    make(map[string]int, len(data.Modules)),
		styles:     make(map[string]int, len(data.Styles)),
	}

	for i, ind := range data.Industries {
		if _, dup := c.industries[ind.Slug]; dup {
			return nil, fmt.Errorf("%w: industry %s", ErrDuplicateID, ind.Slug)
		}
		c.industries[ind.Slug] = i
	}
	for i, b := range data.Budgets {
		if _, dup := c.budgets[b.ID]; dup {
			return nil, fmt.Errorf("%w: budget %s", ErrDuplicateID, b.ID)
		}
		c.budgets[b.ID] = i
	}
	for i, s := range data.Styles {
		if _, dup := c.styles[s.ID]; dup {
			return nil, fmt.Errorf("%w: style %s", ErrDuplicateID, s.ID)
		}
		c.styles[s.ID] = i
	}
	for i, m := range data.Modules {
		if _, dup := c.modules[m.ID]; dup {
			return nil, fmt.Errorf("%w: module %s", ErrDuplicateID, m.ID)
		}
		c.modules[m.ID] = i
	}

	for _, m := range data.Modules {
		if err := c.validateModule(m); err != nil {
			return nil, err
		}
	}

	for industry, styleIDs := range data.Recommendations {
		if _, ok := c.industries[industry]; !ok {
			return nil, fmt.Errorf("%w: recommendations for %s", ErrUnknownIndustry, industry)
		}
		for _, id := range styleIDs {
			if _, ok := c.styles[id]; !ok {
				return nil, fmt.Errorf("%w: %s recommended for %s", ErrUnknownStyle, id, industry)
			}
		}
	}

	return c, nil
}

func (c *Catalog) validateModule(m models.Module) error {
	switch {
	case m.ID == "":
		return fmt.Errorf("%w: empty id", ErrInvalidModule)
	case m.BasePrice < 0 || m.MonthlyPrice < 0 || m.EstimatedDays < 0:
		return fmt.Errorf("%w: %s has a negative price or duration", ErrInvalidModule, m.ID)
	case len(m.IndustryIDs) == 0:
		return fmt.Errorf("%w: %s has no industries", ErrInvalidModule, m.ID)
	case !m.Category.Valid():
		return fmt.Errorf("%w: %s has unknown category %q", ErrInvalidModule, m.ID, m.Category)
	}
	for _, ind := range m.IndustryIDs {
		if _, ok := c.industries[ind]; !ok {
			return fmt.Errorf("%w: %s on module %s", ErrUnknownIndustry, ind, m.ID)
		}
	}
	for _, dep := range m.Dependencies {
		if _, ok := c.modules[dep]; !ok {
			return fmt.Errorf("%w: dependency %s of %s", ErrUnknownModule, dep, m.ID)
		}
	}
	return nil
}

// Data returns the catalog contents for export.
func (c *Catalog) Data() Data {
	return c.data
}

func (c *Catalog) Industries() []models.Industry {
	return append([]models.Industry(nil), c.data.Industries...)
}

func (c *Catalog) Industry(slug string) (models.Industry, bool) {
	i, ok := c.industries[slug]
	if !ok {
		return models.Industry{}, false
	}
	return c.data.Industries[i], true
}

func (c *Catalog) Budgets() []models.BudgetOption {
	return append([]models.BudgetOption(nil), c.data.Budgets...)
}

func (c *Catalog) Budget(id models.BudgetRange) (models.BudgetOption, bool) {
	i, ok := c.budgets[id]
	if !ok {
		return models.BudgetOption{}, false
	}
	return c.data.Budgets[i], true
}

func (c *Catalog) Modules() []models.Module {
	return append([]models.Module(nil), c.data.Modules...)
}

func (c *Catalog) Module(id string) (models.Module, bool) {
	i, ok := c.modules[id]
	if !ok {
		return models.Module{}, false
	}
	return c.data.Modules[i], true
}

// ModulesByIndustry returns the modules offered for an industry, in catalog
// order.
func (c *Catalog) ModulesByIndustry(industry string) []models.Module {
	return c.Filter(ModuleFilter{Industry: industry})
}

// Filter returns modules matching every non-zero field of f. Search matches
// the Vietnamese or English name and description, case-insensitively.
func (c *Catalog) Filter(f ModuleFilter) []models.Module {
	search := strings.ToLower(strings.TrimSpace(f.Search))

	out := []models.Module{}
	for _, m := range c.data.Modules {
		if f.Industry != "" && !m.AppliesTo(f.Industry) {
			continue
		}
		if f.Category != "" && m.Category != f.Category {
			continue
		}
		if f.PriceMin != nil && m.BasePrice < *f.PriceMin {
			continue
		}
		if f.PriceMax != nil && m.BasePrice > *f.PriceMax {
			continue
		}
		if search != "" && !matches(m, search) {
			continue
		}
		out = append(out, m)
	}
	return out
}

func matches(m models.Module, search string) bool {
	for _, field := range []string{m.NameVi, m.DescriptionVi, m.Name, m.Description} {
		if strings.Contains(strings.ToLower(field), search) {
			return true
		}
	}
	return false
}

// Categories returns the categories present among an industry's modules, in
// first-seen order.
func (c *Catalog) Categories(industry string) []models.ModuleCategory {
	seen := map[models.ModuleCategory]bool{}
	out := []models.ModuleCategory{}
	for _, m := range c.ModulesByIndustry(industry) {
		if !seen[m.Category] {
			seen[m.Category] = true
			out = append(out, m.Category)
		}
	}
	return out
}

// CategoryLabel returns the Vietnamese label for a category.
func CategoryLabel(category models.ModuleCategory) string {
	if label, ok := categoryLabels[category]; ok {
		return label
	}
	return string(category)
}

// RequiredModules returns the modules flagged required for an industry.
func (c *Catalog) RequiredModules(industry string) []models.Module {
	out := []models.Module{}
	for _, m := range c.ModulesByIndustry(industry) {
		if m.IsRequired {
			out = append(out, m)
		}
	}
	return out
}

// MissingDependencies maps each selected module id to the dependencies that
// are not selected. Modules with all dependencies present are omitted. The
// report is advisory and never blocks a selection.
func (c *Catalog) MissingDependencies(selected []string) map[string][]string {
	have := make(map[string]bool, len(selected))
	for _, id := range selected {
		have[id] = true
	}

	out := map[string][]string{}
	for _, id := range selected {
		m, ok := c.Module(id)
		if !ok {
			continue
		}
		for _, dep := range m.Dependencies {
			if !have[dep] {
				out[id] = append(out[id], dep)
			}
		}
	}
	return out
}

func (c *Catalog) Styles() []models.StyleOption {
	return append([]models.StyleOption(nil), c.data.Styles...)
}

func (c *Catalog) Style(id string) (models.StyleOption, bool) {
	i, ok := c.styles[id]
	if !ok {
		return models.StyleOption{}, false
	}
	return c.data.Styles[i], true
}

// RecommendedStyles returns the styles suggested for an industry, falling
// back to minimalist and corporate.
func (c *Catalog) RecommendedStyles(industry string) []models.StyleOption {
	ids, ok := c.data.Recommendations[industry]
	if !ok {
		ids = fallbackStyles
	}
	out := []models.StyleOption{}
	for _, id := range ids {
		if s, ok := c.Style(id); ok {
			out = append(out, s)
		}
	}
	return out
}

// OtherStyles returns the styles not recommended for an industry. An
// industry without recommendations gets every style.
func (c *Catalog) OtherStyles(industry string) []models.StyleOption {
	recommended := map[string]bool{}
	for _, id := range c.data.Recommendations[industry] {
		recommended[id] = true
	}
	out := []models.StyleOption{}
	for _, s := range c.data.Styles {
		if !recommended[s.ID] {
			out = append(out, s)
		}
	}
	return out
}
