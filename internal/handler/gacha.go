package handler

import (
	"errors"
	"net/http"

	"github.com/osse101/TactasRNG_Go/internal/domain"
	"github.com/osse101/TactasRNG_Go/internal/gacha"
	"github.com/osse101/TactasRNG_Go/internal/logger"
	"github.com/osse101/TactasRNG_Go/internal/metrics"
)

// Query parameter names
const (
	ParamUserID = "user_id"
	ParamLimit  = "limit"
	ParamOffset = "offset"
	ParamQuery  = "q"
)

// UserRequest identifies the acting user. Username refreshes the cached display name.
type UserRequest struct {
	UserID   string `json:"user_id" validate:"required,notblank,max=100"`
	Username string `json:"username" validate:"max=100,excludesall=\x00\n\r\t"`
}

// InventoryResponse lists a user's owned items
type InventoryResponse struct {
	UserID string                  `json:"user_id"`
	Items  []domain.InventoryEntry `json:"items"`
}

// AchievementsResponse lists a user's granted achievements
type AchievementsResponse struct {
	UserID       string               `json:"user_id"`
	Achievements []domain.Achievement `json:"achievements"`
}

// LeaderboardResponse is the pulls leaderboard
type LeaderboardResponse struct {
	Entries []domain.LeaderboardEntry `json:"entries"`
}

// GachaHandler serves the player-facing routes
type GachaHandler struct {
	svc gacha.Service
}

// NewGachaHandler creates a GachaHandler
func NewGachaHandler(svc gacha.Service) *GachaHandler {
	return &GachaHandler{svc: svc}
}

// HandlePull draws one item for the user
// @Summary Pull an item
// @Description Draws a weighted random item, records it and grants any newly met achievements
// @Tags gacha
// @Accept json
// @Produce json
// @Param request body UserRequest true "Acting user"
// @Success 200 {object} gacha.PullResult
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/v1/pull [post]
func (h *GachaHandler) HandlePull(w http.ResponseWriter, r *http.Request) {
	var req UserRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Pull"); err != nil {
		return
	}

	res, err := h.svc.Pull(r.Context(), req.UserID, req.Username)
	if err != nil {
		respondServiceError(w, r, "Pull", err)
		return
	}
	respondJSON(w, http.StatusOK, res)
}

// HandleInventory lists a user's items
// @Summary Get inventory
// @Tags gacha
// @Produce json
// @Param user_id query string true "User ID"
// @Success 200 {object} InventoryResponse
// @Failure 400 {object} ErrorResponse
// @Router /api/v1/inventory [get]
func (h *GachaHandler) HandleInventory(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetQueryParam(r, w, ParamUserID)
	if !ok {
		return
	}
	items, err := h.svc.Inventory(r.Context(), userID)
	if err != nil {
		respondServiceError(w, r, "Get inventory", err)
		return
	}
	respondJSON(w, http.StatusOK, InventoryResponse{UserID: userID, Items: items})
}

// HandleAchievements lists a user's achievements
// @Summary Get achievements
// @Tags gacha
// @Produce json
// @Param user_id query string true "User ID"
// @Success 200 {object} AchievementsResponse
// @Failure 400 {object} ErrorResponse
// @Router /api/v1/achievements [get]
func (h *GachaHandler) HandleAchievements(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetQueryParam(r, w, ParamUserID)
	if !ok {
		return
	}
	list, err := h.svc.Achievements(r.Context(), userID)
	if err != nil {
		respondServiceError(w, r, "Get achievements", err)
		return
	}
	respondJSON(w, http.StatusOK, AchievementsResponse{UserID: userID, Achievements: list})
}

// HandleClaimDaily pays the daily reward
// @Summary Claim daily reward
// @Tags rewards
// @Accept json
// @Produce json
// @Param request body UserRequest true "Acting user"
// @Success 200 {object} gacha.ClaimResult
// @Failure 409 {object} ErrorResponse
// @Router /api/v1/rewards/daily [post]
func (h *GachaHandler) HandleClaimDaily(w http.ResponseWriter, r *http.Request) {
	h.handleClaim(w, r, domain.ClaimDaily)
}

// HandleClaimWeekly pays the weekly reward
// @Summary Claim weekly reward
// @Tags rewards
// @Accept json
// @Produce json
// @Param request body UserRequest true "Acting user"
// @Success 200 {object} gacha.ClaimResult
// @Failure 409 {object} ErrorResponse
// @Router /api/v1/rewards/weekly [post]
func (h *GachaHandler) HandleClaimWeekly(w http.ResponseWriter, r *http.Request) {
	h.handleClaim(w, r, domain.ClaimWeekly)
}

func (h *GachaHandler) handleClaim(w http.ResponseWriter, r *http.Request, period domain.ClaimPeriod) {
	var req UserRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Claim "+string(period)); err != nil {
		return
	}

	claim := h.svc.ClaimDaily
	if period == domain.ClaimWeekly {
		claim = h.svc.ClaimWeekly
	}
	res, err := claim(r.Context(), req.UserID, req.Username)
	if err != nil {
		if errors.Is(err, domain.ErrAlreadyClaimed) {
			metrics.RecordRejectedClaim(period)
		}
		respondServiceError(w, r, "Claim "+string(period), err)
		return
	}

	logger.FromContext(r.Context()).Debug("Reward claimed", "user_id", req.UserID, "period", period)
	respondJSON(w, http.StatusOK, res)
}

// HandleStreak reports whether the current windows were claimed
// @Summary Reward streak status
// @Tags rewards
// @Produce json
// @Param user_id query string true "User ID"
// @Success 200 {object} domain.StreakStatus
// @Router /api/v1/rewards/streak [get]
func (h *GachaHandler) HandleStreak(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetQueryParam(r, w, ParamUserID)
	if !ok {
		return
	}
	st, err := h.svc.StreakStatus(r.Context(), userID)
	if err != nil {
		respondServiceError(w, r, "Streak status", err)
		return
	}
	respondJSON(w, http.StatusOK, st)
}

// HandleStats summarizes a user
// @Summary User stats
// @Tags gacha
// @Produce json
// @Param user_id query string true "User ID"
// @Success 200 {object} domain.UserStats
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/stats [get]
func (h *GachaHandler) HandleStats(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetQueryParam(r, w, ParamUserID)
	if !ok {
		return
	}
	stats, err := h.svc.UserStats(r.Context(), userID)
	if err != nil {
		respondServiceError(w, r, "User stats", err)
		return
	}
	respondJSON(w, http.StatusOK, stats)
}

// HandleLeaderboard returns the top users by pulls
// @Summary Pulls leaderboard
// @Tags gacha
// @Produce json
// @Param limit query int false "Number of entries (default 10, max 100)"
// @Success 200 {object} LeaderboardResponse
// @Failure 400 {object} ErrorResponse
// @Router /api/v1/leaderboard [get]
func (h *GachaHandler) HandleLeaderboard(w http.ResponseWriter, r *http.Request) {
	limit, ok := GetOptionalIntParam(r, w, ParamLimit, gacha.DefaultLeaderboardSize, ErrMsgInvalidLimit)
	if !ok {
		return
	}
	entries, err := h.svc.Leaderboard(r.Context(), limit)
	if err != nil {
		respondServiceError(w, r, "Leaderboard", err)
		return
	}
	respondJSON(w, http.StatusOK, LeaderboardResponse{Entries: entries})
}
