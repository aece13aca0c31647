package engine

// Daily boundary transition. The engine computes the correct resulting state
// for a claimed "today"; scheduling and midnight detection belong to the
// caller.

// Quest statuses used by the reset migration rules.
const (
	QuestStatusToday     = "today"
	QuestStatusCompleted = "completed"
)

// QuestItem is the scheduling view of a quest-like item.
type QuestItem struct {
	ID          int64
	IsRecurring bool
	Status      string
	Day         string
}

// DayProgress is one identity's completion summary for a single day.
// A nil DayProgress means no record exists for that day.
type DayProgress struct {
	Percentage float64
}

// ResetIdentity is the streak-bearing view of an identity at reset time.
type ResetIdentity struct {
	ID            int64
	CurrentStreak int
}

// StreakEvaluation is the rule-8 outcome for one identity.
type StreakEvaluation struct {
	IdentityID int64
	NewStreak  int
	WasReset   bool
}

// ResetInput is everything the daily transition needs.
type ResetInput struct {
	LastResetDate string
	Today         string
	Identities    []ResetIdentity
	Yesterday     map[int64]*DayProgress
	Quests        []QuestItem
}

// ResetOutcome is the computed transition. The caller persists it; earned
// coin/star/stat balances are never part of the outcome.
type ResetOutcome struct {
	Performed      bool
	LastResetDate  string
	Streaks        []StreakEvaluation
	Quests         []QuestItem
	ClearTransient bool
}

// EvaluateStreak applies rule 8: a missing or sub-100% yesterday resets the
// streak to zero; a fully completed yesterday leaves it unchanged.
func EvaluateStreak(currentStreak int, yesterday *DayProgress) (int, bool) {
	if yesterday == nil || yesterday.Percentage < 100 {
		return 0, true
	}
	return currentStreak, false
}

// RunDailyReset computes the once-per-day transition. Idempotent: when the
// profile is already stamped with today, the outcome is a no-op.
func RunDailyReset(in ResetInput) ResetOutcome {
	if in.LastResetDate == in.Today {
		return ResetOutcome{Performed: false, LastResetDate: in.LastResetDate}
	}

	out := ResetOutcome{
		Performed:      true,
		LastResetDate:  in.Today,
		ClearTransient: true,
	}

	for _, id := range in.Identities {
		newStreak, wasReset := EvaluateStreak(id.CurrentStreak, in.Yesterday[id.ID])
		out.Streaks = append(out.Streaks, StreakEvaluation{
			IdentityID: id.ID,
			NewStreak:  newStreak,
			WasReset:   wasReset,
		})
	}

	for _, q := range in.Quests {
		switch {
		case q.IsRecurring:
			// Recurring quests must be redone every day regardless of
			// prior status.
			q.Status = QuestStatusToday
			q.Day = in.Today
		case q.Status != QuestStatusCompleted:
			// Pending one-offs relocate to today, status untouched.
			q.Day = in.Today
		default:
			// Completed one-offs are frozen in history.
		}
		out.Quests = append(out.Quests, q)
	}

	return out
}
