package engine

import (
	"math"
	"testing"
)

func TestMilestoneDays(t *testing.T) {
	cases := []struct{ level, want int }{
		{1, 3}, {2, 5}, {4, 9}, {10, 21},
	}
	for _, c := range cases {
		if got := MilestoneDays(c.level); got != c.want {
			t.Fatalf("MilestoneDays(%d)=%d, want %d", c.level, got, c.want)
		}
	}
}

func TestSubMilestoneLockedBelowLevelFour(t *testing.T) {
	for level := 1; level <= 3; level++ {
		for day := 1; day <= MilestoneDays(level); day++ {
			if IsSubMilestoneDay(day, level) {
				t.Fatalf("level %d day %d: sub-milestone awarded, want locked", level, day)
			}
		}
	}

	// Level 4 (milestone at 9): odd days 3..7 qualify, the milestone day
	// itself and even days never do.
	wants := map[int]bool{1: false, 2: false, 3: true, 4: false, 5: true, 6: false, 7: true, 8: false, 9: false}
	for day, want := range wants {
		if got := IsSubMilestoneDay(day, 4); got != want {
			t.Fatalf("IsSubMilestoneDay(%d, 4)=%v, want %v", day, got, want)
		}
	}
}

func TestEnforceWillCap(t *testing.T) {
	cases := []struct {
		current, gain, want float64
	}{
		{10, 3, 3},
		{14, 2, 1},
		{15, 1, 0},
		{16, 1, 0},
	}
	for _, c := range cases {
		if got := EnforceWillCap(c.current, c.gain); got != c.want {
			t.Fatalf("EnforceWillCap(%v, %v)=%v, want %v", c.current, c.gain, got, c.want)
		}
	}
}

func TestIncrementStreakMilestoneAndSubBonus(t *testing.T) {
	s := NewStreakState()

	// Days 1 and 2 at level 1: nothing.
	for day := 1; day <= 2; day++ {
		inc := IncrementStreak(s)
		s = inc.State
		if inc.MilestoneReached || inc.SubMilestone {
			t.Fatalf("day %d: unexpected reward", day)
		}
	}

	// Day 3 completes level 1.
	inc := IncrementStreak(s)
	if !inc.MilestoneReached {
		t.Fatalf("day 3: milestone not reached")
	}
	if inc.Reward == nil || inc.Reward.Coins != 50 {
		t.Fatalf("level 1 reward=%+v, want 50 coins", inc.Reward)
	}
	if inc.WillGain != 1 {
		t.Fatalf("level 1 will gain=%v, want 1", inc.WillGain)
	}

	s = HandlePrestigeReset(inc.State)
	if s.CurrentLevel != 2 || s.CurrentStreak != 0 || s.MaxStreak != 0 {
		t.Fatalf("after prestige: %+v", s)
	}
	if len(s.History) != 1 || s.History[0].Level != 1 || s.History[0].MaxStreak != 3 {
		t.Fatalf("prestige history: %+v", s.History)
	}
}

func TestFullLadderWillBudget(t *testing.T) {
	s := NewStreakState()
	coins := 0
	stars := 0

	for level := 1; level <= 10; level++ {
		for day := 1; day <= MilestoneDays(level); day++ {
			inc := IncrementStreak(s)
			s = inc.State
			if inc.Reward != nil {
				coins += inc.Reward.Coins
				stars += inc.Reward.Stars
			}
			if day == MilestoneDays(level) && !inc.MilestoneReached {
				t.Fatalf("level %d day %d: milestone missed", level, day)
			}
		}
		if level < 10 {
			s = HandlePrestigeReset(s)
		}
	}

	if s.TotalWillEarned < 12 || s.TotalWillEarned > MaxTotalWill {
		t.Fatalf("total will=%v, want within [12, %v]", s.TotalWillEarned, MaxTotalWill)
	}
	if math.Abs(s.TotalWillEarned-13.5) > 1e-9 {
		t.Fatalf("total will=%v, want 13.5", s.TotalWillEarned)
	}
	if stars != 5 {
		t.Fatalf("stars=%d, want 5 (final milestone only)", stars)
	}
	if coins <= 0 {
		t.Fatalf("coins=%d, want > 0", coins)
	}
	if len(s.History) != 9 {
		t.Fatalf("history len=%d, want 9", len(s.History))
	}
}

func TestStreakVisualStages(t *testing.T) {
	cases := []struct {
		day, level int
		want       StreakStage
	}{
		{1, 1, StageEmber},
		{2, 8, StageEmber},
		{3, 1, StageFlame},
		{3, 2, StageFlame},
		// Level < 4 never escalates past flame, even at the milestone.
		{7, 3, StageFlame},
		{5, 4, StageFlame},
		{7, 4, StageSingularity},
		{8, 4, StageSingularity},
		{9, 4, StageExplosion},
		{21, 10, StageExplosion},
	}
	for _, c := range cases {
		got := StreakVisualState(c.day, c.level)
		if got.Stage != c.want {
			t.Fatalf("StreakVisualState(%d, %d)=%s, want %s", c.day, c.level, got.Stage, c.want)
		}
	}

	v := StreakVisualState(50, 1)
	if v.ProgressPercent != 100 {
		t.Fatalf("progress clamped=%v, want 100", v.ProgressPercent)
	}
}
