package gacha

// Leaderboard limits
const (
	DefaultLeaderboardSize = 10
	MaxLeaderboardSize     = 100
)

// User listing limits
const (
	DefaultUserPageSize = 50
	MaxUserPageSize     = 500
)

// Log messages
const (
	LogMsgPullCompleted     = "Pull completed"
	LogMsgAchievementsGiven = "Achievements granted"
	LogMsgRewardClaimed     = "Reward claimed"
	LogMsgRewardRejected    = "Reward already claimed for period"
	LogMsgItemGiven         = "Admin gave item"
	LogMsgPullsSet          = "Admin set pulls"
	LogMsgDataReset         = "All user data reset"
	LogMsgEventsDropped     = "Event queue full, notifications dropped"
)
