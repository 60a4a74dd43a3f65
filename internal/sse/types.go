package sse

import "github.com/osse101/TactasRNG_Go/internal/domain"

// JackpotPayload is broadcast when someone draws a legendary-or-higher item
type JackpotPayload struct {
	UserID   string        `json:"user_id"`
	Username string        `json:"username"`
	ItemName string        `json:"item_name"`
	Rarity   domain.Rarity `json:"rarity"`
	Image    string        `json:"image,omitempty"`
}

// AchievementPayload is broadcast for every new grant
type AchievementPayload struct {
	UserID        string `json:"user_id"`
	Username      string `json:"username"`
	AchievementID string `json:"achievement_id"`
	Name          string `json:"name"`
	Description   string `json:"description"`
}

// CatalogPayload is broadcast after an admin catalog write
type CatalogPayload struct {
	Action   string `json:"action"`
	ItemName string `json:"item_name"`
}
