// internal/models/catalog.go
package models

// Industry is a business vertical that scopes modules and style
// recommendations.
type Industry struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	NameVi      string `json:"nameVi"`
	Slug        string `json:"slug"`
	Icon        string `json:"icon"`
	Description string `json:"description"`
}

type BudgetRange string

const (
	BudgetUnder20 BudgetRange = "under-20"
	Budget20To50  BudgetRange = "20-50"
	BudgetOver50  BudgetRange = "over-50"
)

type BudgetOption struct {
	ID          BudgetRange `json:"id"`
	Label       string      `json:"label"`
	LabelVi     string      `json:"labelVi"`
	MinPrice    int64       `json:"minPrice"`
	MaxPrice    *int64      `json:"maxPrice"` // nil means open-ended
	Description string      `json:"description"`
	Features    []string    `json:"features"`
}

type ModuleCategory string

const (
	CategoryCore        ModuleCategory = "core"
	CategoryMarketing   ModuleCategory = "marketing"
	CategoryIntegration ModuleCategory = "integration"
	CategoryAdvanced    ModuleCategory = "advanced"
	CategorySupport     ModuleCategory = "support"
)

// Valid reports whether c is one of the five known categories.
func (c ModuleCategory) Valid() bool {
	switch c {
	case CategoryCore, CategoryMarketing, CategoryIntegration, CategoryAdvanced, CategorySupport:
		return true
	}
	return false
}

// Module is a priced website feature. Prices are VND.
type Module struct {
	ID            string         `json:"id"`
	Name          string         `json:"name"`
	NameVi        string         `json:"nameVi"`
	Slug          string         `json:"slug"`
	Description   string         `json:"description"`
	DescriptionVi string         `json:"descriptionVi"`
	Category      ModuleCategory `json:"category"`
	IndustryIDs   []string       `json:"industryIds"`
	BasePrice     int64          `json:"basePrice"`
	MonthlyPrice  int64          `json:"monthlyPrice"`
	EstimatedDays int            `json:"estimatedDays"`
	IsPopular     bool           `json:"isPopular"`
	IsRequired    bool           `json:"isRequired"`
	Dependencies  []string       `json:"dependencies,omitempty"`
	Features      []string       `json:"features"`
}

// AppliesTo reports whether the module is offered for industryID.
func (m Module) AppliesTo(industryID string) bool {
	for _, id := range m.IndustryIDs {
		if id == industryID {
			return true
		}
	}
	return false
}

type StyleOption struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	NameVi        string   `json:"nameVi"`
	Description   string   `json:"description"`
	DescriptionVi string   `json:"descriptionVi"`
	Icon          string   `json:"icon"`
	Colors        []string `json:"colors"`
	Gradient      string   `json:"gradient"`
	Tags          []string `json:"tags"`
}
