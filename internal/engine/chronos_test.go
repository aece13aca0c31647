package engine

import "testing"

func TestEvaluateStreak(t *testing.T) {
	if got, reset := EvaluateStreak(7, &DayProgress{Percentage: 100}); got != 7 || reset {
		t.Fatalf("full day: got %d (reset=%v), want 7 kept", got, reset)
	}
	if got, reset := EvaluateStreak(7, &DayProgress{Percentage: 99}); got != 0 || !reset {
		t.Fatalf("99%% day: got %d (reset=%v), want 0 reset", got, reset)
	}
	if got, reset := EvaluateStreak(7, nil); got != 0 || !reset {
		t.Fatalf("missing day: got %d (reset=%v), want 0 reset", got, reset)
	}
	if got, reset := EvaluateStreak(0, nil); got != 0 || !reset {
		t.Fatalf("zero streak missing day: got %d (reset=%v)", got, reset)
	}
}

func TestRunDailyResetIdempotent(t *testing.T) {
	in := ResetInput{
		LastResetDate: "2026-03-10",
		Today:         "2026-03-10",
		Identities:    []ResetIdentity{{ID: 1, CurrentStreak: 4}},
	}
	out := RunDailyReset(in)
	if out.Performed {
		t.Fatalf("same-day reset performed, want no-op")
	}
	if out.LastResetDate != "2026-03-10" {
		t.Fatalf("stamp changed on no-op: %q", out.LastResetDate)
	}
	if len(out.Streaks) != 0 || out.ClearTransient {
		t.Fatalf("no-op produced work: %+v", out)
	}
}

func TestRunDailyResetStreaks(t *testing.T) {
	in := ResetInput{
		LastResetDate: "2026-03-09",
		Today:         "2026-03-10",
		Identities: []ResetIdentity{
			{ID: 1, CurrentStreak: 4},
			{ID: 2, CurrentStreak: 9},
			{ID: 3, CurrentStreak: 2},
		},
		Yesterday: map[int64]*DayProgress{
			1: {Percentage: 100},
			2: {Percentage: 60},
			// 3 has no record at all
		},
	}
	out := RunDailyReset(in)
	if !out.Performed || !out.ClearTransient {
		t.Fatalf("reset not performed: %+v", out)
	}
	if out.LastResetDate != "2026-03-10" {
		t.Fatalf("stamp=%q, want today", out.LastResetDate)
	}

	want := map[int64]StreakEvaluation{
		1: {IdentityID: 1, NewStreak: 4, WasReset: false},
		2: {IdentityID: 2, NewStreak: 0, WasReset: true},
		3: {IdentityID: 3, NewStreak: 0, WasReset: true},
	}
	if len(out.Streaks) != len(want) {
		t.Fatalf("streaks=%d, want %d", len(out.Streaks), len(want))
	}
	for _, ev := range out.Streaks {
		if ev != want[ev.IdentityID] {
			t.Fatalf("identity %d: %+v, want %+v", ev.IdentityID, ev, want[ev.IdentityID])
		}
	}
}

func TestRunDailyResetQuestMigration(t *testing.T) {
	in := ResetInput{
		LastResetDate: "2026-03-09",
		Today:         "2026-03-10",
		Quests: []QuestItem{
			{ID: 1, IsRecurring: true, Status: QuestStatusCompleted, Day: "2026-03-09"},
			{ID: 2, IsRecurring: false, Status: QuestStatusToday, Day: "2026-03-09"},
			{ID: 3, IsRecurring: false, Status: QuestStatusCompleted, Day: "2026-03-09"},
		},
	}
	out := RunDailyReset(in)

	byID := map[int64]QuestItem{}
	for _, q := range out.Quests {
		byID[q.ID] = q
	}

	// Recurring quests reopen for today regardless of prior status.
	if q := byID[1]; q.Status != QuestStatusToday || q.Day != "2026-03-10" {
		t.Fatalf("recurring quest: %+v", q)
	}
	// Pending one-offs relocate, status untouched.
	if q := byID[2]; q.Status != QuestStatusToday || q.Day != "2026-03-10" {
		t.Fatalf("pending one-off: %+v", q)
	}
	// Completed one-offs freeze.
	if q := byID[3]; q.Status != QuestStatusCompleted || q.Day != "2026-03-09" {
		t.Fatalf("completed one-off moved: %+v", q)
	}
}
