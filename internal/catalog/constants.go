package catalog

import "time"

// Cache configuration
const (
	// CacheSize bounds the number of cached entries (one list plus per-item lookups)
	CacheSize = 512

	// CacheTTL caps staleness if another process writes the same database
	CacheTTL = 30 * time.Second

	listKey = "\x00all"
)

// Suggestion limits
const (
	DefaultSuggestLimit = 5
	MaxSuggestLimit     = 25
)

// Catalog change actions carried on catalog-changed events
const (
	ActionAdded              = "added"
	ActionRemoved            = "removed"
	ActionRarityChanged      = "rarity_changed"
	ActionDescriptionChanged = "description_changed"
	ActionImageChanged       = "image_changed"
)

// Log messages
const (
	LogMsgItemAdded      = "Catalog item added"
	LogMsgItemRemoved    = "Catalog item removed"
	LogMsgItemUpdated    = "Catalog item updated"
	LogMsgSeededDefaults = "Seeded default catalog items"
	LogMsgSeedSkipped    = "Catalog not empty, skipping default seed"
	LogMsgPublishFailed  = "Failed to publish catalog event"
)
