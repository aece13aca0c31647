package engine

import "time"

// HistoryEntry is one calendar day's completion record for an identity.
// Day uses DayLayout; at most one entry per day is meaningful (last write
// wins when the raw log carries duplicates).
type HistoryEntry struct {
	Day       string
	Completed bool
}

// Projection is the derived identity state recomputed from history.
type Projection struct {
	Tier           Tier
	Level          int
	DaysCompleted  int
	RequiredDays   int
	StreakDays     int
	CompletedToday bool
}

// ProjectHistory replays the full completion history into derived
// tier/level/streak state. Pure reduction: re-running it on the same history
// yields identical output. An empty history projects to D/1 with no streak.
func ProjectHistory(entries []HistoryEntry, today time.Time) Projection {
	// Last write per day wins; tolerates out-of-order and duplicate days.
	completed := make(map[string]bool, len(entries))
	for _, e := range entries {
		completed[e.Day] = e.Completed
	}

	total := 0
	for _, done := range completed {
		if done {
			total++
		}
	}

	streak := 0
	for day := today; completed[day.Format(DayLayout)]; day = day.AddDate(0, 0, -1) {
		streak++
	}

	tier := TierD
	level := 1
	required := RequiredDaysForTier(tier)
	remaining := total
	for remaining >= required {
		remaining -= required
		level++
		if level > MaxLevelPerTier {
			if FinalTier(tier) {
				// Hard progression ceiling.
				level = MaxLevelPerTier
				remaining = 0
				break
			}
			tier = NextTier(tier)
			level = 1
			required = RequiredDaysForTier(tier)
		}
	}

	return Projection{
		Tier:           tier,
		Level:          level,
		DaysCompleted:  remaining,
		RequiredDays:   RequiredDaysForTier(tier),
		StreakDays:     streak,
		CompletedToday: completed[today.Format(DayLayout)],
	}
}
