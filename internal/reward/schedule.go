// Package reward computes daily and weekly claim windows and applies claims to the ledger.
package reward

import (
	"context"
	"fmt"
	"time"

	"github.com/osse101/TactasRNG_Go/internal/domain"
	"github.com/osse101/TactasRNG_Go/internal/repository"
)

// Reward amounts in coins
const (
	DailyAmount  int64 = 100
	WeeklyAmount int64 = 500
)

const dayKeyLayout = "2006-01-02"

// DayKey formats t as YYYY-MM-DD in loc
func DayKey(t time.Time, loc *time.Location) string {
	return t.In(loc).Format(dayKeyLayout)
}

// WeekKey formats t as the ISO week label {ISOYear}-W{week:02} in loc
func WeekKey(t time.Time, loc *time.Location) string {
	year, week := t.In(loc).ISOWeek()
	return fmt.Sprintf("%d-W%02d", year, week)
}

// Schedule resolves claim keys against an injected clock
type Schedule struct {
	clock Clock
	loc   *time.Location
}

// NewSchedule creates a Schedule. A nil clock uses the system time, a nil location UTC.
func NewSchedule(clock Clock, loc *time.Location) *Schedule {
	if clock == nil {
		clock = RealClock{}
	}
	if loc == nil {
		loc = time.UTC
	}
	return &Schedule{clock: clock, loc: loc}
}

func (s *Schedule) Now() time.Time {
	return s.clock.Now()
}

// Key returns the current window key for period
func (s *Schedule) Key(period domain.ClaimPeriod) string {
	now := s.clock.Now()
	if period == domain.ClaimWeekly {
		return WeekKey(now, s.loc)
	}
	return DayKey(now, s.loc)
}

// Amount returns the coin payout for period
func Amount(period domain.ClaimPeriod) int64 {
	if period == domain.ClaimWeekly {
		return WeeklyAmount
	}
	return DailyAmount
}

// Status reports which windows the user has already claimed
func (s *Schedule) Status(user *domain.User) domain.StreakStatus {
	st := domain.StreakStatus{
		DayKey:  s.Key(domain.ClaimDaily),
		WeekKey: s.Key(domain.ClaimWeekly),
	}
	if user != nil {
		st.DailyClaimed = user.LastDaily == st.DayKey
		st.WeeklyClaimed = user.LastWeekly == st.WeekKey
	}
	return st
}

// Claim pays the period's reward inside tx if key differs from the user's last claim.
// The caller must have loaded user within the same transaction.
func Claim(ctx context.Context, tx repository.LedgerTx, user *domain.User, period domain.ClaimPeriod, key string) (int64, error) {
	last := user.LastDaily
	if period == domain.ClaimWeekly {
		last = user.LastWeekly
	}
	if last == key {
		return 0, domain.ClaimError{Period: period, Key: key}
	}

	coins, err := tx.AddCoins(ctx, user.ID, Amount(period))
	if err != nil {
		return 0, err
	}

	if period == domain.ClaimWeekly {
		err = tx.SetLastWeekly(ctx, user.ID, key)
	} else {
		err = tx.SetLastDaily(ctx, user.ID, key)
	}
	if err != nil {
		return 0, err
	}
	return coins, nil
}
