package service

import "time"

// XP thresholds are linear: level N starts at (N-1)*1000 XP.
const xpPerLevel = 1000

// LevelForXP maps accumulated XP to a level. Monotonic, never below 1.
func LevelForXP(xp int) int {
	if xp < 0 {
		xp = 0
	}
	return xp/xpPerLevel + 1
}

// XPForLevel returns the XP threshold at which the given level begins.
func XPForLevel(level int) int {
	if level <= 1 {
		return 0
	}
	return (level - 1) * xpPerLevel
}

// UpdateStreak applies the daily-streak policy and returns the new count.
//
//   - no prior login: streak starts at 1
//   - last login yesterday: streak increments
//   - last login older than yesterday: streak resets to 1
//   - last login today (or in the future, clock skew): count unchanged
//
// The caller refreshes the stored last-login instant on every invocation
// regardless of whether the count moved.
func UpdateStreak(current int, lastLogin *time.Time, now time.Time) int {
	if lastLogin == nil {
		return 1
	}

	today := dateOf(now)
	last := dateOf(*lastLogin)

	switch {
	case last.Equal(today.AddDate(0, 0, -1)):
		return current + 1
	case last.Before(today.AddDate(0, 0, -1)):
		return 1
	default:
		// same day or ahead of the clock
		if current < 1 {
			return 1
		}
		return current
	}
}

func dateOf(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
