package domain

import "strings"

// Rarity is a tier label controlling draw weight and achievement thresholds.
// The set is open: admins may introduce labels the weight table does not know.
type Rarity string

const (
	RarityCommon    Rarity = "common"
	RarityUncommon  Rarity = "uncommon"
	RarityRare      Rarity = "rare"
	RarityEpic      Rarity = "epic"
	RarityLegendary Rarity = "legendary"
	RarityMythic    Rarity = "mythic"
	RarityDivine    Rarity = "divine"
	RaritySecret    Rarity = "secret"
)

// DefaultRarityWeight is used for rarities missing from the weight table
const DefaultRarityWeight = 1

var rarityWeights = map[Rarity]int{
	RarityCommon:    40,
	RarityUncommon:  25,
	RarityRare:      15,
	RarityEpic:      8,
	RarityLegendary: 5,
	RarityMythic:    3,
	RarityDivine:    2,
	RaritySecret:    1,
}

// KnownRarities lists the weighted rarities from most to least common
var KnownRarities = []Rarity{
	RarityCommon,
	RarityUncommon,
	RarityRare,
	RarityEpic,
	RarityLegendary,
	RarityMythic,
	RarityDivine,
	RaritySecret,
}

// ParseRarity normalizes an admin supplied label.
func ParseRarity(s string) (Rarity, error) {
	r := Rarity(strings.ToLower(strings.TrimSpace(s)))
	if r == "" {
		return "", ErrInvalidRarity
	}
	return r, nil
}

// Weight returns the draw weight, falling back to DefaultRarityWeight.
func (r Rarity) Weight() int {
	if w, ok := rarityWeights[r]; ok {
		return w
	}
	return DefaultRarityWeight
}

// IsKnown reports whether the rarity has an entry in the weight table
func (r Rarity) IsKnown() bool {
	_, ok := rarityWeights[r]
	return ok
}

// IsRareTier reports rare-or-higher rarities below legendary (rare, epic).
func (r Rarity) IsRareTier() bool {
	return r == RarityRare || r == RarityEpic
}

// IsLegendaryTier reports legendary-or-higher rarities.
func (r Rarity) IsLegendaryTier() bool {
	switch r {
	case RarityLegendary, RarityMythic, RarityDivine, RaritySecret:
		return true
	}
	return false
}

func (r Rarity) String() string {
	return string(r)
}
