// Package gacha is the pull, reward and achievement engine every surface calls into.
package gacha

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/osse101/TactasRNG_Go/internal/achievement"
	"github.com/osse101/TactasRNG_Go/internal/catalog"
	"github.com/osse101/TactasRNG_Go/internal/domain"
	"github.com/osse101/TactasRNG_Go/internal/draw"
	"github.com/osse101/TactasRNG_Go/internal/event"
	"github.com/osse101/TactasRNG_Go/internal/logger"
	"github.com/osse101/TactasRNG_Go/internal/repository"
	"github.com/osse101/TactasRNG_Go/internal/reward"
)

// Service defines the gacha operations
type Service interface {
	Pull(ctx context.Context, userID, displayName string) (*PullResult, error)
	Inventory(ctx context.Context, userID string) ([]domain.InventoryEntry, error)
	Achievements(ctx context.Context, userID string) ([]domain.Achievement, error)
	ClaimDaily(ctx context.Context, userID, displayName string) (*ClaimResult, error)
	ClaimWeekly(ctx context.Context, userID, displayName string) (*ClaimResult, error)
	StreakStatus(ctx context.Context, userID string) (*domain.StreakStatus, error)
	UserStats(ctx context.Context, userID string) (*domain.UserStats, error)
	Leaderboard(ctx context.Context, topN int) ([]domain.LeaderboardEntry, error)

	ListUsers(ctx context.Context, limit, offset int) ([]domain.User, error)
	AdminUserInventory(ctx context.Context, userID string) ([]domain.InventoryEntry, error)
	AdminGiveItem(ctx context.Context, userID, itemName string, amount int64) (*GiveResult, error)
	AdminSetPulls(ctx context.Context, userID string, value int64) ([]domain.Achievement, error)
	AdminAddItem(ctx context.Context, name, rarity string) (*domain.Item, error)
	AdminRemoveItem(ctx context.Context, name string) error
	AdminEditRarity(ctx context.Context, name, rarity string) error
	AdminEditDescription(ctx context.Context, name, description string) error
	AdminEditImage(ctx context.Context, name, image string) error
	ResetAll(ctx context.Context) error
}

type service struct {
	ledger       repository.Ledger
	catalog      catalog.Service
	drawer       *draw.Drawer
	schedule     *reward.Schedule
	achievements *achievement.Engine
	publisher    Publisher
}

// NewService creates the gacha service. A nil publisher drops notifications.
func NewService(ledger repository.Ledger, catalogSvc catalog.Service, drawer *draw.Drawer, schedule *reward.Schedule, publisher Publisher) Service {
	if drawer == nil {
		drawer = draw.New(nil)
	}
	if schedule == nil {
		schedule = reward.NewSchedule(nil, nil)
	}
	if publisher == nil {
		publisher = discardPublisher{}
	}
	return &service{
		ledger:       ledger,
		catalog:      catalogSvc,
		drawer:       drawer,
		schedule:     schedule,
		achievements: achievement.NewEngine(schedule.Now),
		publisher:    publisher,
	}
}

func requireUserID(userID string) error {
	if strings.TrimSpace(userID) == "" {
		return fmt.Errorf("%w: user id is required", domain.ErrInvalidInput)
	}
	return nil
}

// withUserTx runs fn in a transaction holding the user's lock, committing only if fn succeeds
func (s *service) withUserTx(ctx context.Context, userID string, fn func(tx repository.LedgerTx) error) error {
	tx, err := s.ledger.BeginUserTx(ctx, userID)
	if err != nil {
		return err
	}
	defer repository.SafeRollback(ctx, tx)

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// grantAchievements snapshots the user's stats inside tx and grants anything newly met
func (s *service) grantAchievements(ctx context.Context, tx repository.LedgerTx, userID string, pulls int64) ([]domain.Achievement, error) {
	inv, err := tx.GetInventory(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.achievements.Evaluate(ctx, tx, userID, domain.SnapshotFromInventory(pulls, inv))
}

func (s *service) Pull(ctx context.Context, userID, displayName string) (*PullResult, error) {
	if err := requireUserID(userID); err != nil {
		return nil, err
	}

	items, err := s.catalog.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	item, err := s.drawer.Draw(items)
	if err != nil {
		return nil, err
	}

	res := &PullResult{
		Item:        item.Name,
		Rarity:      item.Rarity,
		Description: item.Description,
		Image:       item.Image,
	}
	var username string
	err = s.withUserTx(ctx, userID, func(tx repository.LedgerTx) error {
		u, err := tx.EnsureUser(ctx, userID, displayName)
		if err != nil {
			return err
		}
		username = u.Username
		if res.Pulls, err = tx.IncrementPulls(ctx, userID, 1); err != nil {
			return err
		}
		if _, err := tx.AddInventory(ctx, userID, item.Name, item.Rarity, 1); err != nil {
			return err
		}
		res.NewAchievements, err = s.grantAchievements(ctx, tx, userID, res.Pulls)
		return err
	})
	if err != nil {
		return nil, err
	}

	logger.FromContext(ctx).Info(LogMsgPullCompleted,
		"user_id", userID, "item", item.Name, "rarity", item.Rarity, "pulls", res.Pulls)

	payload := domain.PullCompletedPayload{
		UserID:   userID,
		Username: username,
		ItemName: item.Name,
		Rarity:   item.Rarity,
		Pulls:    res.Pulls,
		Image:    item.Image,
	}
	events := []event.Event{event.NewPullCompletedEvent(payload)}
	if item.Rarity.IsLegendaryTier() {
		events = append(events, event.NewJackpotPullEvent(payload))
	}
	events = append(events, achievementEvents(userID, username, res.NewAchievements)...)
	s.publish(ctx, events)
	return res, nil
}

func achievementEvents(userID, username string, list []domain.Achievement) []event.Event {
	events := make([]event.Event, 0, len(list))
	for _, a := range list {
		events = append(events, event.NewAchievementUnlockedEvent(domain.AchievementUnlockedPayload{
			UserID:      userID,
			Username:    username,
			Achievement: a.ID,
			Name:        a.Name,
			Description: a.Description,
		}))
	}
	return events
}

func (s *service) publish(ctx context.Context, events []event.Event) {
	if len(events) == 0 {
		return
	}
	if !s.publisher.Publish(ctx, events...) {
		logger.FromContext(ctx).Warn(LogMsgEventsDropped, "count", len(events))
	}
}

// Inventory returns an empty list for users who never pulled
func (s *service) Inventory(ctx context.Context, userID string) ([]domain.InventoryEntry, error) {
	if err := requireUserID(userID); err != nil {
		return nil, err
	}
	inv, err := s.ledger.GetInventory(ctx, userID)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		inv = []domain.InventoryEntry{}
	}
	return inv, nil
}

func (s *service) Achievements(ctx context.Context, userID string) ([]domain.Achievement, error) {
	if err := requireUserID(userID); err != nil {
		return nil, err
	}
	grants, err := s.ledger.GetAchievements(ctx, userID)
	if err != nil {
		return nil, err
	}
	return achievement.Describe(grants), nil
}

func (s *service) ClaimDaily(ctx context.Context, userID, displayName string) (*ClaimResult, error) {
	return s.claim(ctx, userID, displayName, domain.ClaimDaily)
}

func (s *service) ClaimWeekly(ctx context.Context, userID, displayName string) (*ClaimResult, error) {
	return s.claim(ctx, userID, displayName, domain.ClaimWeekly)
}

func (s *service) claim(ctx context.Context, userID, displayName string, period domain.ClaimPeriod) (*ClaimResult, error) {
	if err := requireUserID(userID); err != nil {
		return nil, err
	}
	res := &ClaimResult{Period: period, Key: s.schedule.Key(period), Amount: reward.Amount(period)}

	err := s.withUserTx(ctx, userID, func(tx repository.LedgerTx) error {
		u, err := tx.EnsureUser(ctx, userID, displayName)
		if err != nil {
			return err
		}
		res.Coins, err = reward.Claim(ctx, tx, u, period, res.Key)
		return err
	})
	if err != nil {
		if errors.Is(err, domain.ErrAlreadyClaimed) {
			logger.FromContext(ctx).Debug(LogMsgRewardRejected, "user_id", userID, "period", period, "key", res.Key)
		}
		return nil, err
	}

	logger.FromContext(ctx).Info(LogMsgRewardClaimed, "user_id", userID, "period", period, "coins", res.Coins)
	s.publish(ctx, []event.Event{event.NewRewardClaimedEvent(domain.RewardClaimedPayload{
		UserID: userID,
		Period: period,
		Key:    res.Key,
		Amount: res.Amount,
		Coins:  res.Coins,
	})})
	return res, nil
}

// StreakStatus is read-only; unknown users simply have nothing claimed
func (s *service) StreakStatus(ctx context.Context, userID string) (*domain.StreakStatus, error) {
	if err := requireUserID(userID); err != nil {
		return nil, err
	}
	u, err := s.ledger.GetUser(ctx, userID)
	if err != nil && !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}
	st := s.schedule.Status(u)
	return &st, nil
}

func (s *service) UserStats(ctx context.Context, userID string) (*domain.UserStats, error) {
	if err := requireUserID(userID); err != nil {
		return nil, err
	}
	u, err := s.ledger.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	inv, err := s.ledger.GetInventory(ctx, userID)
	if err != nil {
		return nil, err
	}
	achievements, err := s.Achievements(ctx, userID)
	if err != nil {
		return nil, err
	}

	stats := &domain.UserStats{
		UserID:        u.ID,
		Username:      u.Username,
		Pulls:         u.Pulls,
		Coins:         u.Coins,
		DistinctItems: len(inv),
		Achievements:  len(achievements),
	}
	for _, e := range inv {
		stats.TotalItems += e.Amount
	}
	return stats, nil
}

func clamp(v, def, max int) int {
	if v <= 0 {
		return def
	}
	if v > max {
		return max
	}
	return v
}

func (s *service) Leaderboard(ctx context.Context, topN int) ([]domain.LeaderboardEntry, error) {
	return s.ledger.Leaderboard(ctx, clamp(topN, DefaultLeaderboardSize, MaxLeaderboardSize))
}

func (s *service) ListUsers(ctx context.Context, limit, offset int) ([]domain.User, error) {
	if offset < 0 {
		offset = 0
	}
	return s.ledger.ListUsers(ctx, clamp(limit, DefaultUserPageSize, MaxUserPageSize), offset)
}

// AdminUserInventory distinguishes unknown users from empty inventories
func (s *service) AdminUserInventory(ctx context.Context, userID string) ([]domain.InventoryEntry, error) {
	if err := requireUserID(userID); err != nil {
		return nil, err
	}
	if _, err := s.ledger.GetUser(ctx, userID); err != nil {
		return nil, err
	}
	return s.Inventory(ctx, userID)
}

func (s *service) AdminGiveItem(ctx context.Context, userID, itemName string, amount int64) (*GiveResult, error) {
	if err := requireUserID(userID); err != nil {
		return nil, err
	}
	if amount <= 0 {
		return nil, fmt.Errorf("%w: amount must be positive", domain.ErrInvalidAmount)
	}
	item, err := s.catalog.GetItem(ctx, itemName)
	if err != nil {
		return nil, err
	}

	res := &GiveResult{Item: item.Name, Rarity: item.Rarity}
	var username string
	err = s.withUserTx(ctx, userID, func(tx repository.LedgerTx) error {
		u, err := tx.EnsureUser(ctx, userID, "")
		if err != nil {
			return err
		}
		username = u.Username
		if res.NewAmount, err = tx.AddInventory(ctx, userID, item.Name, item.Rarity, amount); err != nil {
			return err
		}
		res.NewAchievements, err = s.grantAchievements(ctx, tx, userID, u.Pulls)
		return err
	})
	if err != nil {
		return nil, err
	}

	logger.FromContext(ctx).Info(LogMsgItemGiven, "user_id", userID, "item", item.Name, "amount", amount)
	s.publish(ctx, achievementEvents(userID, username, res.NewAchievements))
	return res, nil
}

// AdminSetPulls overwrites the counter; lowering it never revokes grants
func (s *service) AdminSetPulls(ctx context.Context, userID string, value int64) ([]domain.Achievement, error) {
	if err := requireUserID(userID); err != nil {
		return nil, err
	}
	if value < 0 {
		return nil, fmt.Errorf("%w: pulls cannot be negative", domain.ErrInvalidAmount)
	}

	var unlocked []domain.Achievement
	var username string
	err := s.withUserTx(ctx, userID, func(tx repository.LedgerTx) error {
		u, err := tx.EnsureUser(ctx, userID, "")
		if err != nil {
			return err
		}
		username = u.Username
		if err := tx.SetPulls(ctx, userID, value); err != nil {
			return err
		}
		unlocked, err = s.grantAchievements(ctx, tx, userID, value)
		return err
	})
	if err != nil {
		return nil, err
	}

	logger.FromContext(ctx).Info(LogMsgPullsSet, "user_id", userID, "pulls", value)
	s.publish(ctx, achievementEvents(userID, username, unlocked))
	if unlocked == nil {
		unlocked = []domain.Achievement{}
	}
	return unlocked, nil
}

func (s *service) AdminAddItem(ctx context.Context, name, rarity string) (*domain.Item, error) {
	return s.catalog.AddItem(ctx, name, rarity)
}

func (s *service) AdminRemoveItem(ctx context.Context, name string) error {
	return s.catalog.RemoveItem(ctx, name)
}

func (s *service) AdminEditRarity(ctx context.Context, name, rarity string) error {
	return s.catalog.SetRarity(ctx, name, rarity)
}

func (s *service) AdminEditDescription(ctx context.Context, name, description string) error {
	return s.catalog.SetDescription(ctx, name, description)
}

func (s *service) AdminEditImage(ctx context.Context, name, image string) error {
	return s.catalog.SetImage(ctx, name, image)
}

func (s *service) ResetAll(ctx context.Context) error {
	if err := s.ledger.ResetAll(ctx); err != nil {
		return err
	}
	logger.FromContext(ctx).Warn(LogMsgDataReset)
	return nil
}
