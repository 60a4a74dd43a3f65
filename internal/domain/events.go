package domain

// Event types published on the internal bus and relayed over SSE
const (
	EventPullCompleted       = "gacha.pull_completed"
	EventJackpotPull         = "gacha.jackpot_pull"
	EventAchievementUnlocked = "gacha.achievement_unlocked"
	EventRewardClaimed       = "gacha.reward_claimed"
	EventCatalogChanged      = "gacha.catalog_changed"
)

// PullCompletedPayload is published after a pull commits
type PullCompletedPayload struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	ItemName string `json:"item_name"`
	Rarity   Rarity `json:"rarity"`
	Pulls    int64  `json:"pulls"`
	Image    string `json:"image,omitempty"`
}

// AchievementUnlockedPayload is published once per newly granted achievement
type AchievementUnlockedPayload struct {
	UserID      string        `json:"user_id"`
	Username    string        `json:"username"`
	Achievement AchievementID `json:"achievement"`
	Name        string        `json:"name"`
	Description string        `json:"description"`
}

// RewardClaimedPayload is published after a daily or weekly claim
type RewardClaimedPayload struct {
	UserID string      `json:"user_id"`
	Period ClaimPeriod `json:"period"`
	Key    string      `json:"key"`
	Amount int64       `json:"amount"`
	Coins  int64       `json:"coins"`
}

// CatalogChangedPayload is published after an admin catalog write
type CatalogChangedPayload struct {
	Action   string `json:"action"`
	ItemName string `json:"item_name"`
}
