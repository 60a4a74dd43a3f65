package domain

import "strings"

// Item is an obtainable catalog entry.
// Name keeps the casing it was added with; lookups compare NameKey.
type Item struct {
	Name        string `json:"name"`
	Rarity      Rarity `json:"rarity"`
	Description string `json:"description,omitempty"`
	Image       string `json:"image,omitempty"`
}

// NameKey returns the case-insensitive lookup key for an item name
func NameKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// DefaultItems is the starter catalog inserted into an empty item pool
var DefaultItems = []Item{
	{Name: "laser pointer", Rarity: RarityCommon},
	{Name: "cappy", Rarity: RarityCommon},
	{Name: "ó", Rarity: RarityUncommon},
	{Name: "gljj", Rarity: RarityUncommon},
	{Name: "cheese cup", Rarity: RarityRare},
	{Name: "hammer", Rarity: RarityRare},
	{Name: "gumball", Rarity: RarityEpic},
	{Name: "confetti cannon", Rarity: RarityEpic},
	{Name: "toothpick", Rarity: RarityLegendary},
	{Name: "glimmer", Rarity: RarityLegendary},
	{Name: "outlet", Rarity: RarityMythic},
	{Name: "button", Rarity: RarityMythic},
	{Name: "floppy disc", Rarity: RarityDivine},
	{Name: "pocket watch", Rarity: RarityDivine},
	{Name: "fork", Rarity: RaritySecret},
	{Name: "aciddrop", Rarity: RaritySecret},
}
