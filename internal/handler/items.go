package handler

import (
	"errors"
	"net/http"

	"github.com/osse101/TactasRNG_Go/internal/catalog"
	"github.com/osse101/TactasRNG_Go/internal/domain"
)

// ItemsResponse lists catalog items
type ItemsResponse struct {
	Items []domain.Item `json:"items"`
}

// SearchResponse holds fuzzy name matches, best first
type SearchResponse struct {
	Query   string   `json:"query"`
	Matches []string `json:"matches"`
}

// ItemHandler serves catalog reads
type ItemHandler struct {
	catalog catalog.Service
}

// NewItemHandler creates an ItemHandler
func NewItemHandler(svc catalog.Service) *ItemHandler {
	return &ItemHandler{catalog: svc}
}

// HandleListItems lists the catalog
// @Summary List items
// @Tags items
// @Produce json
// @Success 200 {object} ItemsResponse
// @Router /api/v1/items [get]
func (h *ItemHandler) HandleListItems(w http.ResponseWriter, r *http.Request) {
	items, err := h.catalog.ListItems(r.Context())
	if err != nil {
		respondServiceError(w, r, "List items", err)
		return
	}
	respondJSON(w, http.StatusOK, ItemsResponse{Items: items})
}

// HandleSearchItems returns fuzzy matches for q
// @Summary Search item names
// @Tags items
// @Produce json
// @Param q query string true "Partial name"
// @Param limit query int false "Max matches (default 5, max 25)"
// @Success 200 {object} SearchResponse
// @Router /api/v1/items/search [get]
func (h *ItemHandler) HandleSearchItems(w http.ResponseWriter, r *http.Request) {
	q, ok := GetQueryParam(r, w, ParamQuery)
	if !ok {
		return
	}
	limit, ok := GetOptionalIntParam(r, w, ParamLimit, catalog.DefaultSuggestLimit, ErrMsgInvalidLimit)
	if !ok {
		return
	}
	matches, err := h.catalog.Suggest(r.Context(), q, limit)
	if err != nil {
		respondServiceError(w, r, "Search items", err)
		return
	}
	respondJSON(w, http.StatusOK, SearchResponse{Query: q, Matches: matches})
}

// HandleGetItem returns one item. Unknown names get "did you mean" suggestions.
// @Summary Get item
// @Tags items
// @Produce json
// @Param name path string true "Item name"
// @Success 200 {object} domain.Item
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/items/{name} [get]
func (h *ItemHandler) HandleGetItem(w http.ResponseWriter, r *http.Request) {
	name, ok := getPathParam(r, w, "name")
	if !ok {
		return
	}
	item, err := h.catalog.GetItem(r.Context(), name)
	if err != nil {
		if errors.Is(err, domain.ErrItemNotFound) {
			suggestions, _ := h.catalog.Suggest(r.Context(), name, catalog.DefaultSuggestLimit)
			respondJSON(w, http.StatusNotFound, ErrorResponse{Error: ErrMsgItemNotFoundError, Suggestions: suggestions})
			return
		}
		respondServiceError(w, r, "Get item", err)
		return
	}
	respondJSON(w, http.StatusOK, item)
}
