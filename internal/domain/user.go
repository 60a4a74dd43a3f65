package domain

import "time"

// User is the per-user ledger record.
// Username is a cached display name, the platform owns identity.
type User struct {
	ID         string    `json:"user_id"`
	Username   string    `json:"username"`
	Pulls      int64     `json:"pulls"`
	Coins      int64     `json:"coins"`
	LastDaily  string    `json:"last_daily,omitempty"`
	LastWeekly string    `json:"last_weekly,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// UserStats summarizes a user for the stats command
type UserStats struct {
	UserID        string `json:"user_id"`
	Username      string `json:"username"`
	Pulls         int64  `json:"pulls"`
	Coins         int64  `json:"coins"`
	DistinctItems int    `json:"distinct_items"`
	TotalItems    int64  `json:"total_items"`
	Achievements  int    `json:"achievements"`
}

// LeaderboardEntry is one row of the pulls leaderboard
type LeaderboardEntry struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	Pulls    int64  `json:"pulls"`
}
