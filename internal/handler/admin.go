package handler

import (
	"net/http"

	"github.com/osse101/TactasRNG_Go/internal/domain"
	"github.com/osse101/TactasRNG_Go/internal/gacha"
	"github.com/osse101/TactasRNG_Go/internal/logger"
)

// AddItemRequest creates a catalog item
type AddItemRequest struct {
	Name   string `json:"name" validate:"required,notblank,max=100,excludesall=\x00\n\r\t"`
	Rarity string `json:"rarity" validate:"required,notblank,max=32"`
}

// SetRarityRequest changes an item's rarity
type SetRarityRequest struct {
	Rarity string `json:"rarity" validate:"required,notblank,max=32"`
}

// SetDescriptionRequest changes an item's description. Empty clears it.
type SetDescriptionRequest struct {
	Description string `json:"description" validate:"max=1000"`
}

// SetImageRequest changes an item's image reference. Empty clears it.
type SetImageRequest struct {
	Image string `json:"image" validate:"max=500"`
}

// GiveItemRequest grants copies of an item to a user
type GiveItemRequest struct {
	UserID   string `json:"user_id" validate:"required,notblank,max=100"`
	ItemName string `json:"item_name" validate:"required,notblank,max=100"`
	Amount   int64  `json:"amount" validate:"min=1,max=10000"`
}

// SetPullsRequest overwrites a user's pull counter
type SetPullsRequest struct {
	UserID string `json:"user_id" validate:"required,notblank,max=100"`
	Pulls  int64  `json:"pulls" validate:"gte=0"`
}

// ResetRequest must carry confirm: "RESET"
type ResetRequest struct {
	Confirm string `json:"confirm" validate:"required"`
}

// SetPullsResponse lists achievements granted by the new counter
type SetPullsResponse struct {
	UserID          string               `json:"user_id"`
	Pulls           int64                `json:"pulls"`
	NewAchievements []domain.Achievement `json:"new_achievements"`
}

// UsersResponse is one page of users
type UsersResponse struct {
	Users []domain.User `json:"users"`
}

// AdminHandler serves operator routes
type AdminHandler struct {
	svc gacha.Service
}

// NewAdminHandler creates an AdminHandler
func NewAdminHandler(svc gacha.Service) *AdminHandler {
	return &AdminHandler{svc: svc}
}

// HandleAddItem adds an item to the catalog
// @Summary Add catalog item
// @Tags admin
// @Accept json
// @Produce json
// @Param request body AddItemRequest true "Item"
// @Success 201 {object} domain.Item
// @Failure 409 {object} ErrorResponse
// @Router /api/v1/admin/items [post]
func (h *AdminHandler) HandleAddItem(w http.ResponseWriter, r *http.Request) {
	var req AddItemRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Add item"); err != nil {
		return
	}
	item, err := h.svc.AdminAddItem(r.Context(), req.Name, req.Rarity)
	if err != nil {
		respondServiceError(w, r, "Add item", err)
		return
	}
	respondJSON(w, http.StatusCreated, item)
}

// HandleRemoveItem removes an item. Unknown names are not an error.
// @Summary Remove catalog item
// @Tags admin
// @Produce json
// @Param name path string true "Item name"
// @Success 200 {object} SuccessResponse
// @Router /api/v1/admin/items/{name} [delete]
func (h *AdminHandler) HandleRemoveItem(w http.ResponseWriter, r *http.Request) {
	name, ok := getPathParam(r, w, "name")
	if !ok {
		return
	}
	if err := h.svc.AdminRemoveItem(r.Context(), name); err != nil {
		respondServiceError(w, r, "Remove item", err)
		return
	}
	respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgItemRemoved})
}

// HandleSetRarity edits an item's rarity
// @Summary Edit item rarity
// @Tags admin
// @Accept json
// @Produce json
// @Param name path string true "Item name"
// @Param request body SetRarityRequest true "Rarity"
// @Success 200 {object} SuccessResponse
// @Router /api/v1/admin/items/{name}/rarity [put]
func (h *AdminHandler) HandleSetRarity(w http.ResponseWriter, r *http.Request) {
	var req SetRarityRequest
	h.editItem(w, r, "Edit rarity", &req, func(name string) error {
		return h.svc.AdminEditRarity(r.Context(), name, req.Rarity)
	})
}

// HandleSetDescription edits an item's description
// @Summary Edit item description
// @Tags admin
// @Accept json
// @Produce json
// @Param name path string true "Item name"
// @Param request body SetDescriptionRequest true "Description"
// @Success 200 {object} SuccessResponse
// @Router /api/v1/admin/items/{name}/description [put]
func (h *AdminHandler) HandleSetDescription(w http.ResponseWriter, r *http.Request) {
	var req SetDescriptionRequest
	h.editItem(w, r, "Edit description", &req, func(name string) error {
		return h.svc.AdminEditDescription(r.Context(), name, req.Description)
	})
}

// HandleSetImage edits an item's image reference
// @Summary Edit item image
// @Tags admin
// @Accept json
// @Produce json
// @Param name path string true "Item name"
// @Param request body SetImageRequest true "Image"
// @Success 200 {object} SuccessResponse
// @Router /api/v1/admin/items/{name}/image [put]
func (h *AdminHandler) HandleSetImage(w http.ResponseWriter, r *http.Request) {
	var req SetImageRequest
	h.editItem(w, r, "Edit image", &req, func(name string) error {
		return h.svc.AdminEditImage(r.Context(), name, req.Image)
	})
}

func (h *AdminHandler) editItem(w http.ResponseWriter, r *http.Request, opName string, req interface{}, apply func(name string) error) {
	name, ok := getPathParam(r, w, "name")
	if !ok {
		return
	}
	if err := DecodeAndValidateRequest(r, w, req, opName); err != nil {
		return
	}
	if err := apply(name); err != nil {
		respondServiceError(w, r, opName, err)
		return
	}
	respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgItemUpdated})
}

// HandleGiveItem grants items to a user
// @Summary Give item
// @Tags admin
// @Accept json
// @Produce json
// @Param request body GiveItemRequest true "Grant"
// @Success 200 {object} gacha.GiveResult
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/admin/give [post]
func (h *AdminHandler) HandleGiveItem(w http.ResponseWriter, r *http.Request) {
	var req GiveItemRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Give item"); err != nil {
		return
	}
	res, err := h.svc.AdminGiveItem(r.Context(), req.UserID, req.ItemName, req.Amount)
	if err != nil {
		respondServiceError(w, r, "Give item", err)
		return
	}
	respondJSON(w, http.StatusOK, res)
}

// HandleSetPulls overwrites a user's pull counter
// @Summary Set pulls
// @Tags admin
// @Accept json
// @Produce json
// @Param request body SetPullsRequest true "Counter"
// @Success 200 {object} SetPullsResponse
// @Router /api/v1/admin/pulls [post]
func (h *AdminHandler) HandleSetPulls(w http.ResponseWriter, r *http.Request) {
	var req SetPullsRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Set pulls"); err != nil {
		return
	}
	unlocked, err := h.svc.AdminSetPulls(r.Context(), req.UserID, req.Pulls)
	if err != nil {
		respondServiceError(w, r, "Set pulls", err)
		return
	}
	respondJSON(w, http.StatusOK, SetPullsResponse{UserID: req.UserID, Pulls: req.Pulls, NewAchievements: unlocked})
}

// HandleListUsers pages through known users
// @Summary List users
// @Tags admin
// @Produce json
// @Param limit query int false "Page size (default 50, max 500)"
// @Param offset query int false "Offset"
// @Success 200 {object} UsersResponse
// @Router /api/v1/admin/users [get]
func (h *AdminHandler) HandleListUsers(w http.ResponseWriter, r *http.Request) {
	limit, ok := GetOptionalIntParam(r, w, ParamLimit, gacha.DefaultUserPageSize, ErrMsgInvalidLimit)
	if !ok {
		return
	}
	offset, ok := GetOptionalIntParam(r, w, ParamOffset, 0, ErrMsgInvalidOffset)
	if !ok {
		return
	}
	users, err := h.svc.ListUsers(r.Context(), limit, offset)
	if err != nil {
		respondServiceError(w, r, "List users", err)
		return
	}
	respondJSON(w, http.StatusOK, UsersResponse{Users: users})
}

// HandleUserInventory shows a user's inventory, 404 for unknown users
// @Summary User inventory
// @Tags admin
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} InventoryResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/admin/users/{id}/inventory [get]
func (h *AdminHandler) HandleUserInventory(w http.ResponseWriter, r *http.Request) {
	userID, ok := getPathParam(r, w, "id")
	if !ok {
		return
	}
	items, err := h.svc.AdminUserInventory(r.Context(), userID)
	if err != nil {
		respondServiceError(w, r, "User inventory", err)
		return
	}
	respondJSON(w, http.StatusOK, InventoryResponse{UserID: userID, Items: items})
}

// HandleReset wipes all users and inventories
// @Summary Reset user data
// @Description Deletes all users and inventories. Achievement grants are kept.
// @Tags admin
// @Accept json
// @Produce json
// @Param request body ResetRequest true "Confirmation"
// @Success 200 {object} SuccessResponse
// @Failure 400 {object} ErrorResponse
// @Router /api/v1/admin/reset [post]
func (h *AdminHandler) HandleReset(w http.ResponseWriter, r *http.Request) {
	var req ResetRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Reset"); err != nil {
		return
	}
	if req.Confirm != ResetConfirmationKey {
		respondError(w, http.StatusBadRequest, ErrMsgResetNotConfirmed)
		return
	}
	if err := h.svc.ResetAll(r.Context()); err != nil {
		respondServiceError(w, r, "Reset", err)
		return
	}
	logger.FromContext(r.Context()).Warn("Admin reset all user data")
	respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgDataReset})
}
