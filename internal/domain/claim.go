package domain

import "fmt"

// ClaimPeriod is the reward period a claim key belongs to
type ClaimPeriod string

const (
	ClaimDaily  ClaimPeriod = "daily"
	ClaimWeekly ClaimPeriod = "weekly"
)

// ClaimError is returned when the reward for a period key was already claimed.
// errors.Is(err, ErrAlreadyClaimed) matches it.
type ClaimError struct {
	Period ClaimPeriod
	Key    string
}

func (e ClaimError) Error() string {
	return fmt.Sprintf("%s: %s reward for %s", ErrMsgAlreadyClaimed, e.Period, e.Key)
}

// Is allows errors.Is() to match ErrAlreadyClaimed
func (e ClaimError) Is(target error) bool {
	if target == ErrAlreadyClaimed {
		return true
	}
	_, ok := target.(ClaimError)
	return ok
}

// StreakStatus reports whether the current period rewards have been claimed
type StreakStatus struct {
	DayKey        string `json:"day_key"`
	WeekKey       string `json:"week_key"`
	DailyClaimed  bool   `json:"daily_claimed"`
	WeeklyClaimed bool   `json:"weekly_claimed"`
}
