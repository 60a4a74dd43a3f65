// Package draw selects items by rarity weight.
package draw

import (
	"fmt"
	"math/rand"
	"sort"
	"sync"

	"github.com/osse101/TactasRNG_Go/internal/domain"
)

// Source returns a float in [0, 1)
type Source func() float64

// Drawer picks one item with probability weight(rarity) / sum(weights).
// That matches a uniform pick from a pool where each item appears weight times.
type Drawer struct {
	src Source
}

// New creates a Drawer over the given source. A nil source uses math/rand.
func New(src Source) *Drawer {
	if src == nil {
		src = rand.Float64 //nolint:gosec // Game logic randomness, not security critical
	}
	return &Drawer{src: src}
}

// NewSeeded creates a deterministic Drawer, safe for concurrent use
func NewSeeded(seed int64) *Drawer {
	//nolint:gosec // G404: math/rand is acceptable for game mechanics
	rng := rand.New(rand.NewSource(seed))
	var mu sync.Mutex
	return New(func() float64 {
		mu.Lock()
		defer mu.Unlock()
		return rng.Float64()
	})
}

// Draw returns one item from items, or domain.ErrEmptyCatalog
func (d *Drawer) Draw(items []domain.Item) (domain.Item, error) {
	if len(items) == 0 {
		return domain.Item{}, fmt.Errorf("%w: nothing to draw", domain.ErrEmptyCatalog)
	}

	cumulative := make([]int, len(items))
	total := 0
	for i, item := range items {
		total += item.Rarity.Weight()
		cumulative[i] = total
	}

	// first index whose cumulative weight exceeds the roll
	roll := int(d.src() * float64(total))
	if roll >= total {
		roll = total - 1
	}
	idx := sort.Search(len(cumulative), func(i int) bool { return cumulative[i] > roll })
	return items[idx], nil
}
