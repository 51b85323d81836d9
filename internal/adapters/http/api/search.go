// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"errors"
	"net/http"

	"github.com/Ayoubslh/Sanned/internal/adapters/directory"
)

// searchResult is the wire shape of one found helper.
type searchResult struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Location string `json:"location"`
	Skills   string `json:"skills"`
	Role     string `json:"role"`
}

// searchResponse wraps helper search results.
type searchResponse struct {
	Count   int            `json:"count"`
	Helpers []searchResult `json:"helpers"`
}

// SearchHandler handles helper search requests.
type SearchHandler struct {
	deps Dependencies
}

// NewSearchHandler creates a new search handler.
func NewSearchHandler(deps Dependencies) *SearchHandler {
	return &SearchHandler{deps: deps}
}

// HandleSearchHelpers handles GET /api/matching/search-helpers?skill=&location=.
func (h *SearchHandler) HandleSearchHelpers(w http.ResponseWriter, r *http.Request) {
	const op = "api.search_helpers"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}

	skill := r.URL.Query().Get("skill")
	location := r.URL.Query().Get("location")

	helpers, err := h.deps.SearchHelpers(r.Context(), skill, location)
	if err != nil {
		if errors.Is(err, directory.ErrEmptySkill) {
			writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", err)
		return
	}
	results := make([]searchResult, 0, len(helpers))
	for _, c := range helpers {
		results = append(results, searchResult{
			ID:       c.ID,
			Name:     c.Name,
			Location: c.Location,
			Skills:   c.Skills,
			Role:     c.Role,
		})
	}
	writeJSON(w, http.StatusOK, searchResponse{Count: len(results), Helpers: results})
}
