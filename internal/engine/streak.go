package engine

// MaxTotalWill is the hard ceiling on Will earned across the full 10-level
// milestone ladder.
const MaxTotalWill = 15.0

// SubMilestoneCoins is the flat coin bonus for sub-milestone days.
const SubMilestoneCoins = 25

// StreakState tracks the milestone/prestige ladder. CurrentLevel is the
// 1..10 prestige level, independent of an identity's own tier and level.
type StreakState struct {
	CurrentStreak   int
	MaxStreak       int
	CurrentLevel    int
	TotalWillEarned float64
	History         []StreakRecord
}

// StreakRecord is one prestige cycle's high-water mark, appended on reset.
type StreakRecord struct {
	Level     int
	MaxStreak int
}

// NewStreakState returns a fresh level-1 ladder.
func NewStreakState() StreakState {
	return StreakState{CurrentLevel: 1}
}

// MilestoneDays is the streak length that completes prestige level L.
func MilestoneDays(level int) int {
	return 2*level + 1
}

// IsSubMilestoneDay reports whether the day earns a sub-milestone bonus:
// odd days of at least 3, strictly inside the milestone window. Levels 1-3
// never award sub-milestones; their windows are too short to matter and the
// intense streak states stay locked until level 4.
func IsSubMilestoneDay(day, level int) bool {
	if level < 4 {
		return false
	}
	return day >= 3 && day%2 == 1 && day < MilestoneDays(level)
}

// StreakReward is the fixed milestone reward for a prestige level.
type StreakReward struct {
	Coins    int
	Stars    int
	Ticket   bool
	WillGain float64
}

// rewardForLevel is the fixed milestone reward table. Will gains across the
// full ladder sum to 13.5, inside the [12, MaxTotalWill] contract.
func rewardForLevel(level int) StreakReward {
	switch {
	case level <= 2:
		return StreakReward{Coins: 50, WillGain: 1}
	case level <= 5:
		return StreakReward{Coins: 100, Ticket: true, WillGain: 1}
	case level <= 9:
		w := 1.5
		if level == 9 {
			w = 2
		}
		return StreakReward{Coins: 350, WillGain: w}
	default:
		return StreakReward{Coins: 1000, Stars: 5, Ticket: true, WillGain: 2}
	}
}

// EnforceWillCap clamps a Will gain so the running total never exceeds
// MaxTotalWill and never goes negative. A saturated total yields exactly 0.
func EnforceWillCap(current, gain float64) float64 {
	if current+gain > MaxTotalWill {
		gain = MaxTotalWill - current
	}
	if gain < 0 {
		return 0
	}
	return gain
}

// StreakIncrement is the outcome of advancing the streak by one day.
type StreakIncrement struct {
	State            StreakState
	MilestoneReached bool
	SubMilestone     bool
	Reward           *StreakReward
	WillGain         float64
}

// IncrementStreak advances the streak by one day and evaluates milestone and
// sub-milestone rewards. Pure: operates on a copy and returns the new state.
func IncrementStreak(s StreakState) StreakIncrement {
	if s.CurrentLevel < 1 {
		s.CurrentLevel = 1
	}
	s.CurrentStreak++
	if s.CurrentStreak > s.MaxStreak {
		s.MaxStreak = s.CurrentStreak
	}

	out := StreakIncrement{State: s}

	switch {
	case s.CurrentStreak == MilestoneDays(s.CurrentLevel):
		reward := rewardForLevel(s.CurrentLevel)
		applied := EnforceWillCap(s.TotalWillEarned, reward.WillGain)
		s.TotalWillEarned += applied
		out.State = s
		out.MilestoneReached = true
		out.Reward = &reward
		out.WillGain = applied
	case IsSubMilestoneDay(s.CurrentStreak, s.CurrentLevel):
		out.SubMilestone = true
		out.Reward = &StreakReward{Coins: SubMilestoneCoins}
	}

	return out
}

// HandlePrestigeReset archives the finished cycle and moves the ladder up
// one level. No level cap is enforced here; callers stop past level 10.
func HandlePrestigeReset(s StreakState) StreakState {
	s.History = append(s.History, StreakRecord{Level: s.CurrentLevel, MaxStreak: s.MaxStreak})
	s.CurrentStreak = 0
	s.MaxStreak = 0
	s.CurrentLevel++
	return s
}

// StreakStage classifies the streak flame for display.
type StreakStage string

const (
	StageEmber       StreakStage = "ember"
	StageFlame       StreakStage = "flame"
	StageSingularity StreakStage = "singularity"
	StageExplosion   StreakStage = "explosion"
)

// StreakVisual is the display-facing streak classification.
type StreakVisual struct {
	Stage           StreakStage
	ProgressPercent float64
}

// StreakVisualState derives the display stage for a streak day at a prestige
// level. Levels 1-3 cap at flame: singularity and explosion unlock only once
// the player has proven consistency through level 4.
func StreakVisualState(day, level int) StreakVisual {
	m := MilestoneDays(level)
	percent := float64(day) / float64(m) * 100
	if percent > 100 {
		percent = 100
	}
	if percent < 0 {
		percent = 0
	}

	stage := StageFlame
	switch {
	case day <= 2:
		stage = StageEmber
	case level < 4:
		stage = StageFlame
	case day == m:
		stage = StageExplosion
	case day >= m-2:
		stage = StageSingularity
	}
	return StreakVisual{Stage: stage, ProgressPercent: percent}
}
