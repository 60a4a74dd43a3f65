package discord

import "time"

// Friendly message constants for Discord responses
const (
	MsgItemNotFound    = "❓ **Item Not Found**\nMaybe check the spelling?"
	MsgUserNotFound    = "👤 **User Not Found**\nThey haven't pulled anything yet."
	MsgEmptyCatalog    = "📭 **Nothing To Pull**\nThe item pool is empty. Ask an admin to add items."
	MsgAlreadyClaimed  = "⏳ **Already Claimed**\nCome back in the next period."
	MsgDuplicateItem   = "⚠️ **Item Exists**\nAn item with that name is already in the pool."
	MsgInvalidInput    = "⚠️ **Invalid Input**\nPlease check your inputs."
	MsgNotAdmin        = "🔒 This command is restricted to bot admins."
	MsgServerError     = "Error connecting to game server."
	MsgGenericError    = "❌ Something went wrong."
	MsgDidYouMean      = "Did you mean: %s?"
	MsgNoItems         = "Your inventory is empty. Try `/pull`!"
	MsgNoAchievements  = "No achievements yet. Keep pulling!"
	MsgNoLeaderboard   = "Nobody has pulled yet."
	MsgResetDone       = "All pulls, coins, claims and inventories were reset. Achievements were kept."
	MsgResetNotConfirm = "Type `RESET` in the confirm option to wipe all data."
)

// Embed colors
const (
	ColorPull        = 0x3498db
	ColorJackpot     = 0xf1c40f
	ColorAchievement = 0x9b59b6
	ColorReward      = 0x2ecc71
	ColorInfo        = 0x1abc9c
	ColorAdmin       = 0x95a5a6
)

// Footer constants for standardized embed footers.
const (
	FooterBot      = "TactasRNG"
	FooterBotAdmin = "TactasRNG Admin"
)

// Command names
const (
	CmdPull                = "pull"
	CmdInventory           = "inventory"
	CmdAchievements        = "achievements"
	CmdDaily               = "daily"
	CmdWeekly              = "weekly"
	CmdStats               = "stats"
	CmdLeaderboard         = "leaderboard"
	CmdItemInfo            = "iteminfo"
	CmdHelp                = "help"
	CmdAddItem             = "add_item"
	CmdRemoveItem          = "remove_item"
	CmdEditItemRarity      = "edit_item_rarity"
	CmdEditItemDescription = "edit_item_description"
	CmdEditItemImage       = "edit_item_image"
	CmdAdminGiveItem       = "admin_give_item"
	CmdAdminSetPulls       = "admin_set_pulls"
	CmdAdminResetData      = "admin_reset_data"
)

// Option names
const (
	OptItem        = "item"
	OptName        = "name"
	OptRarity      = "rarity"
	OptDescription = "description"
	OptImage       = "image"
	OptUser        = "user"
	OptAmount      = "amount"
	OptPulls       = "pulls"
	OptLimit       = "limit"
	OptConfirm     = "confirm"
)

// Limits
const (
	// maxAutocompleteChoices is Discord's cap on autocomplete results
	maxAutocompleteChoices = 25

	// maxEmbedLines keeps long inventories within Discord's embed size
	maxEmbedLines = 40

	defaultLeaderboardLimit = 10
)

// API client configuration
const (
	apiRequestTimeout = 10 * time.Second
	apiMaxRetries     = 3
	apiRetryDelay     = 500 * time.Millisecond
	apiErrorBodyLimit = 4096
)

// Bot defaults
const (
	DefaultAPIURL     = "http://localhost:8080"
	DefaultHealthPort = "8082"
)
