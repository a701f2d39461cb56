package server

import (
	"net/http"
	"strconv"

	"winhouse-quote/internal/catalog"
	"winhouse-quote/internal/common/errors"
	commonhttp "winhouse-quote/internal/common/http"
	"winhouse-quote/internal/models"
)

type categoryView struct {
	ID    models.ModuleCategory `json:"id"`
	Label string                `json:"label"`
}

func (s *Server) handleIndustries(w http.ResponseWriter, r *http.Request) {
	commonhttp.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"industries": s.catalog.Industries(),
	})
}

func (s *Server) handleBudgets(w http.ResponseWriter, r *http.Request) {
	commonhttp.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"budgets": s.catalog.Budgets(),
	})
}

// handleModules filters by industry, category, search text and base price
// range. An industry also reports its categories and required modules.
func (s *Server) handleModules(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := catalog.ModuleFilter{
		Industry: q.Get("industry"),
		Category: models.ModuleCategory(q.Get("category")),
		Search:   q.Get("search"),
	}

	var err error
	if filter.PriceMin, err = priceParam(q.Get("priceMin")); err != nil {
		s.errors.HandleHTTPError(w, r, errors.NewInvalidPayloadError("priceMin: "+err.Error()))
		return
	}
	if filter.PriceMax, err = priceParam(q.Get("priceMax")); err != nil {
		s.errors.HandleHTTPError(w, r, errors.NewInvalidPayloadError("priceMax: "+err.Error()))
		return
	}

	body := map[string]interface{}{
		"modules": s.catalog.Filter(filter),
	}
	if filter.Industry != "" {
		cats := []categoryView{}
		for _, c := range s.catalog.Categories(filter.Industry) {
			cats = append(cats, categoryView{ID: c, Label: catalog.CategoryLabel(c)})
		}
		required := []string{}
		for _, m := range s.catalog.RequiredModules(filter.Industry) {
			required = append(required, m.ID)
		}
		body["categories"] = cats
		body["requiredModules"] = required
	}
	commonhttp.WriteJSON(w, http.StatusOK, body)
}

func priceParam(v string) (*int64, error) {
	if v == "" {
		return nil, nil
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return nil, err
	}
	return &n, nil
}

func (s *Server) handleStyles(w http.ResponseWriter, r *http.Request) {
	industry := r.URL.Query().Get("industry")
	commonhttp.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"recommended": s.catalog.RecommendedStyles(industry),
		"others":      s.catalog.OtherStyles(industry),
	})
}
