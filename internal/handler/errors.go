package handler

import (
	"errors"
	"net/http"

	"github.com/osse101/TactasRNG_Go/internal/domain"
	"github.com/osse101/TactasRNG_Go/internal/logger"
)

// Generic HTTP error messages for client responses.
// These messages intentionally do not expose internal error details.
const (
	ErrMsgInvalidRequest        = "Invalid request body"
	ErrMsgInvalidRequestSummary = "Invalid request"
	ErrMsgMissingQueryParam     = "Missing %s query parameter"
	ErrMsgInvalidLimit          = "Invalid limit parameter"
	ErrMsgInvalidOffset         = "Invalid offset parameter"
	ErrMsgInvalidPathParam      = "Invalid path parameter"
	ErrMsgResetNotConfirmed     = "Reset requires confirm: \"RESET\""
)

// User-facing messages for domain errors
const (
	ErrMsgGenericServerError  = "Something went wrong"
	ErrMsgUserNotFoundError   = "User not found"
	ErrMsgItemNotFoundError   = "Item not found"
	ErrMsgDuplicateItemError  = "An item with that name already exists"
	ErrMsgEmptyCatalogError   = "There are no items to pull"
	ErrMsgAlreadyClaimedError = "Reward already claimed for this period"
	ErrMsgInvalidRarityError  = "Invalid rarity"
	ErrMsgInvalidAmountError  = "Amount must be positive"
	ErrMsgInvalidInputError   = "Invalid request. Please check your inputs."
)

// Success messages
const (
	MsgItemAdded         = "Item added"
	MsgItemRemoved       = "Item removed"
	MsgItemUpdated       = "Item updated"
	MsgDataReset         = "All user data reset"
	ResetConfirmationKey = "RESET"
)

// mapServiceError converts a service error to an HTTP status and a safe message
func mapServiceError(err error) (int, string) {
	switch {
	case err == nil:
		return http.StatusInternalServerError, ErrMsgGenericServerError
	case errors.Is(err, domain.ErrUserNotFound):
		return http.StatusNotFound, ErrMsgUserNotFoundError
	case errors.Is(err, domain.ErrItemNotFound):
		return http.StatusNotFound, ErrMsgItemNotFoundError
	case errors.Is(err, domain.ErrDuplicateItem):
		return http.StatusConflict, ErrMsgDuplicateItemError
	case errors.Is(err, domain.ErrAlreadyClaimed):
		return http.StatusConflict, ErrMsgAlreadyClaimedError
	case errors.Is(err, domain.ErrEmptyCatalog):
		return http.StatusBadRequest, ErrMsgEmptyCatalogError
	case errors.Is(err, domain.ErrInvalidRarity):
		return http.StatusBadRequest, ErrMsgInvalidRarityError
	case errors.Is(err, domain.ErrInvalidAmount):
		return http.StatusBadRequest, ErrMsgInvalidAmountError
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest, ErrMsgInvalidInputError
	}
	return http.StatusInternalServerError, ErrMsgGenericServerError
}

// respondServiceError logs err and writes the mapped JSON error response
func respondServiceError(w http.ResponseWriter, r *http.Request, opName string, err error) {
	status, msg := mapServiceError(err)
	log := logger.FromContext(r.Context())
	if status >= http.StatusInternalServerError {
		log.Error(opName+" failed", "error", err)
	} else {
		log.Warn(opName+" rejected", "error", err, "status", status)
	}
	respondError(w, status, msg)
}
