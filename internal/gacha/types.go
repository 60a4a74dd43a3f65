package gacha

import "github.com/osse101/TactasRNG_Go/internal/domain"

// PullResult is the outcome of a committed pull
type PullResult struct {
	Item            string               `json:"item"`
	Rarity          domain.Rarity        `json:"rarity"`
	Description     string               `json:"description,omitempty"`
	Image           string               `json:"image,omitempty"`
	Pulls           int64                `json:"pulls"`
	NewAchievements []domain.Achievement `json:"new_achievements"`
}

// ClaimResult is the outcome of a daily or weekly claim
type ClaimResult struct {
	Period domain.ClaimPeriod `json:"period"`
	Key    string             `json:"key"`
	Amount int64              `json:"amount"`
	Coins  int64              `json:"coins"`
}

// GiveResult is the outcome of an admin item grant
type GiveResult struct {
	Item            string               `json:"item"`
	Rarity          domain.Rarity        `json:"rarity"`
	NewAmount       int64                `json:"new_amount"`
	NewAchievements []domain.Achievement `json:"new_achievements"`
}
