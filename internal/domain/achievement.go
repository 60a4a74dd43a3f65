package domain

import "time"

// AchievementID identifies an achievement definition
type AchievementID string

// Achievement is a granted achievement as shown to users
type Achievement struct {
	ID          AchievementID `json:"id"`
	Name        string        `json:"name"`
	Description string        `json:"description"`
	GrantedAt   time.Time     `json:"granted_at,omitempty"`
}

// AchievementGrant is the persisted write-once record
type AchievementGrant struct {
	UserID        string
	AchievementID AchievementID
	GrantedAt     time.Time
}
