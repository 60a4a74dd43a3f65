package domain

import "errors"

// Error message string constants - single source of truth for error messages
// Use these in assert.Contains() checks when testing error messages
const (
	// User errors
	ErrMsgUserNotFound = "user not found"

	// Item errors
	ErrMsgItemNotFound   = "item not found"
	ErrMsgDuplicateItem  = "item already exists"
	ErrMsgEmptyCatalog   = "item catalog is empty"
	ErrMsgInvalidRarity  = "invalid rarity"
	ErrMsgInvalidItemKey = "item name is required"

	// Reward errors
	ErrMsgAlreadyClaimed = "reward already claimed"

	// Ledger errors
	ErrMsgInsufficientCoins = "insufficient coins"
	ErrMsgInvalidAmount     = "amount must be positive"

	// Database/System errors
	ErrMsgTxClosed = "tx is closed"

	// Input errors
	ErrMsgInvalidInput = "invalid input"
)

// Common domain errors
// These errors should be used consistently across all layers of the application.
// Wrap these errors with fmt.Errorf("%w: %s", domain.ErrXxx, details) for additional context.
var (
	// User errors
	ErrUserNotFound = errors.New(ErrMsgUserNotFound)

	// Item errors
	ErrItemNotFound  = errors.New(ErrMsgItemNotFound)
	ErrDuplicateItem = errors.New(ErrMsgDuplicateItem)
	ErrEmptyCatalog  = errors.New(ErrMsgEmptyCatalog)
	ErrInvalidRarity = errors.New(ErrMsgInvalidRarity)

	// Reward errors
	ErrAlreadyClaimed = errors.New(ErrMsgAlreadyClaimed)

	// Ledger errors
	ErrInsufficientCoins = errors.New(ErrMsgInsufficientCoins)
	ErrInvalidAmount     = errors.New(ErrMsgInvalidAmount)

	// Validation errors
	ErrInvalidInput = errors.New(ErrMsgInvalidInput)
)
