package domain

// InventoryEntry is one owned item slot.
// Rarity is the snapshot taken when the user first acquired the item.
type InventoryEntry struct {
	ItemName string `json:"item_name"`
	Rarity   Rarity `json:"rarity"`
	Amount   int64  `json:"amount"`
}

// StatsSnapshot is the input to achievement predicates.
// Rares and Legendaries count distinct owned items, not copies.
type StatsSnapshot struct {
	Pulls       int64 `json:"pulls"`
	Rares       int   `json:"rares"`
	Legendaries int   `json:"legendaries"`
}

// SnapshotFromInventory derives the achievement stats from a pull count and inventory
func SnapshotFromInventory(pulls int64, entries []InventoryEntry) StatsSnapshot {
	s := StatsSnapshot{Pulls: pulls}
	for _, e := range entries {
		switch {
		case e.Rarity.IsRareTier():
			s.Rares++
		case e.Rarity.IsLegendaryTier():
			s.Legendaries++
		}
	}
	return s
}
