// Package achievement holds the static achievement table and grants unlocked entries.
package achievement

import (
	"context"
	"fmt"
	"time"

	"github.com/osse101/TactasRNG_Go/internal/domain"
	"github.com/osse101/TactasRNG_Go/internal/repository"
)

// Stat names the snapshot field a definition thresholds on
type Stat string

const (
	StatPulls       Stat = "pulls"
	StatRares       Stat = "rares"
	StatLegendaries Stat = "legendaries"
)

const (
	FirstPull     domain.AchievementID = "first_pull"
	TenPulls      domain.AchievementID = "ten_pulls"
	HundredPulls  domain.AchievementID = "hundred_pulls"
	RarePull      domain.AchievementID = "rare_pull"
	LegendaryPull domain.AchievementID = "legendary_pull"
)

// Definition is one row of the achievement table
type Definition struct {
	ID          domain.AchievementID
	Name        string
	Description string
	Stat        Stat
	Threshold   int64
}

// Met reports whether the snapshot satisfies the definition
func (d Definition) Met(s domain.StatsSnapshot) bool {
	var v int64
	switch d.Stat {
	case StatPulls:
		v = s.Pulls
	case StatRares:
		v = int64(s.Rares)
	case StatLegendaries:
		v = int64(s.Legendaries)
	default:
		return false
	}
	return v >= d.Threshold
}

// Table is evaluated in order; new grants are reported in this order.
var Table = []Definition{
	{FirstPull, "First Pull!", "Pull any item for the first time.", StatPulls, 1},
	{TenPulls, "Ten Pulls!", "Pull 10 items.", StatPulls, 10},
	{HundredPulls, "Hundred Pulls!", "Pull 100 items.", StatPulls, 100},
	{RarePull, "Rare Find!", "Pull a rare or higher item.", StatRares, 1},
	{LegendaryPull, "Legendary!", "Pull a legendary or higher item.", StatLegendaries, 1},
}

// Lookup finds a definition by id
func Lookup(id domain.AchievementID) (Definition, bool) {
	for _, d := range Table {
		if d.ID == id {
			return d, true
		}
	}
	return Definition{}, false
}

// Engine grants achievements inside a ledger transaction
type Engine struct {
	now func() time.Time
}

// NewEngine creates an Engine. A nil now uses time.Now.
func NewEngine(now func() time.Time) *Engine {
	if now == nil {
		now = time.Now
	}
	return &Engine{now: now}
}

// Evaluate grants every unmet-but-now-satisfied definition and returns the ones this call created.
// A concurrent grant of the same id is not reported twice.
func (e *Engine) Evaluate(ctx context.Context, tx repository.LedgerTx, userID string, snap domain.StatsSnapshot) ([]domain.Achievement, error) {
	granted, err := tx.GetAchievementIDs(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load achievements: %w", err)
	}

	var unlocked []domain.Achievement
	now := e.now().UTC()
	for _, def := range Table {
		if granted[def.ID] || !def.Met(snap) {
			continue
		}
		created, err := tx.InsertAchievement(ctx, userID, def.ID, now)
		if err != nil {
			return nil, fmt.Errorf("failed to grant %s: %w", def.ID, err)
		}
		if created {
			unlocked = append(unlocked, domain.Achievement{
				ID:          def.ID,
				Name:        def.Name,
				Description: def.Description,
				GrantedAt:   now,
			})
		}
	}
	return unlocked, nil
}

// Describe joins stored grants with their definitions, ordered by the table.
// Grants for ids no longer in the table are dropped.
func Describe(grants []domain.AchievementGrant) []domain.Achievement {
	byID := make(map[domain.AchievementID]time.Time, len(grants))
	for _, g := range grants {
		byID[g.AchievementID] = g.GrantedAt
	}
	out := make([]domain.Achievement, 0, len(grants))
	for _, def := range Table {
		at, ok := byID[def.ID]
		if !ok {
			continue
		}
		out = append(out, domain.Achievement{ID: def.ID, Name: def.Name, Description: def.Description, GrantedAt: at})
	}
	return out
}
