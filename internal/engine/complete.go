package engine

import (
	"context"
	"time"

	"cultivator/internal/storage"
)

// GateTaskResult reports a single gate-task completion.
type GateTaskResult struct {
	IdentityID    int64
	Gate          Gate
	PointsAwarded float64
	GateProgress  float64
	TotalProgress float64
	GatesDone     int
	DayCompleted  bool
	Day           *DayResult
}

// DayResult reports a full-day completion.
type DayResult struct {
	IdentityID  int64
	Projection  Projection
	LevelBefore int
	LevelAfter  int
	TierBefore  Tier
	TierAfter   Tier
	LevelUp     bool
	TierUp      bool
	StreakDay   int
	Milestone   *StreakReward
	SubBonus    *StreakReward
	WillGain    float64
	Prestiged   bool
}

// CompleteGateTask records one gate-task completion: accrues capped stat
// points into the identity's current level, feeds the points into the
// profile's stat dimension, and marks the gate done for today. When the last
// gate of the day is marked, the full-day completion path runs; that is the
// only place the streak advances.
func (s *Service) CompleteGateTask(ctx context.Context, identityID int64, gate Gate) (*GateTaskResult, error) {
	if !gate.IsValid() {
		return nil, InvariantViolationError{Reason: "unknown gate: " + string(gate)}
	}

	ident, err := s.getIdentity(ctx, identityID)
	if err != nil {
		return nil, err
	}

	cfg := LevelConfigForTier(Tier(ident.Tier))
	row, err := s.levels.GetOrCreate(ctx, ident.ID, ident.Level)
	if err != nil {
		return nil, err
	}

	lp := levelProgressFromRow(row)
	accrual, err := AccrueGatePoints(lp, gate, cfg)
	if err != nil {
		return nil, err
	}
	levelProgressToRow(lp, row)
	if err := s.levels.Save(ctx, row); err != nil {
		return nil, err
	}

	if accrual.PointsAwarded > 0 {
		p, err := s.profiles.GetOrCreateMain(ctx)
		if err != nil {
			return nil, err
		}
		addDimensionPoints(p, GateDimension(gate), accrual.PointsAwarded)
		if err := s.profiles.Update(ctx, p); err != nil {
			return nil, err
		}
	}

	today := s.todayKey()
	if err := s.progress.MarkGate(ctx, ident.ID, today, string(gate)); err != nil {
		return nil, err
	}
	marks, err := s.progress.ListGateMarks(ctx, ident.ID, today)
	if err != nil {
		return nil, err
	}

	percentage := float64(len(marks)) / float64(len(AllGates)) * 100
	dayDone := len(marks) >= len(AllGates)
	if err := s.progress.UpsertDaily(ctx, storage.DailyProgressRow{
		IdentityID: ident.ID,
		Day:        today,
		Percentage: percentage,
		Completed:  dayDone,
	}); err != nil {
		return nil, err
	}

	res := &GateTaskResult{
		IdentityID:    ident.ID,
		Gate:          gate,
		PointsAwarded: accrual.PointsAwarded,
		GateProgress:  accrual.GateProgress,
		TotalProgress: accrual.TotalProgress,
		GatesDone:     len(marks),
		DayCompleted:  dayDone,
	}

	if dayDone {
		day, err := s.CompleteDay(ctx, ident.ID)
		if err != nil {
			return nil, err
		}
		res.Day = day
	}

	s.log.Debug().
		Int64("identity", ident.ID).
		Str("gate", string(gate)).
		Float64("points", accrual.PointsAwarded).
		Bool("day_completed", dayDone).
		Msg("gate task completed")

	return res, nil
}

// CompleteDay records today as completed in the history log, reprojects the
// identity's derived state from history, and advances the streak milestone
// ladder. The streak advances here and only here, and only once per day:
// re-completing an already-completed day changes nothing.
func (s *Service) CompleteDay(ctx context.Context, identityID int64) (*DayResult, error) {
	ident, err := s.getIdentity(ctx, identityID)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	today := now.Format(DayLayout)

	prev, err := s.history.Get(ctx, ident.ID, today)
	if err != nil {
		return nil, err
	}
	alreadyDone := prev != nil && prev.Completed

	if err := s.history.Upsert(ctx, ident.ID, today, true); err != nil {
		return nil, err
	}

	proj, err := s.reprojectIdentity(ctx, ident, now)
	if err != nil {
		return nil, err
	}

	if err := s.progress.UpsertDaily(ctx, storage.DailyProgressRow{
		IdentityID: ident.ID,
		Day:        today,
		Percentage: 100,
		Completed:  true,
	}); err != nil {
		return nil, err
	}

	res := &DayResult{
		IdentityID:  ident.ID,
		Projection:  proj.Projection,
		LevelBefore: proj.LevelBefore,
		LevelAfter:  proj.Projection.Level,
		TierBefore:  proj.TierBefore,
		TierAfter:   proj.Projection.Tier,
		LevelUp:     proj.LevelUp,
		TierUp:      proj.TierUp,
	}

	if alreadyDone {
		res.StreakDay = proj.Projection.StreakDays
		return res, nil
	}

	inc, prestiged, err := s.advanceStreak(ctx)
	if err != nil {
		return nil, err
	}
	res.StreakDay = inc.State.CurrentStreak
	res.WillGain = inc.WillGain
	res.Prestiged = prestiged
	if inc.MilestoneReached {
		res.Milestone = inc.Reward
	} else if inc.SubMilestone {
		res.SubBonus = inc.Reward
	}

	if res.LevelUp || res.TierUp {
		s.log.Info().
			Int64("identity", ident.ID).
			Str("tier", string(res.TierAfter)).
			Int("level", res.LevelAfter).
			Msg("identity advanced")
	}

	return res, nil
}

// advanceStreak runs the milestone engine once and applies its rewards to
// the profile ledger.
func (s *Service) advanceStreak(ctx context.Context) (StreakIncrement, bool, error) {
	row, err := s.streaks.GetOrCreateMain(ctx)
	if err != nil {
		return StreakIncrement{}, false, err
	}

	state := StreakState{
		CurrentStreak:   row.CurrentStreak,
		MaxStreak:       row.MaxStreak,
		CurrentLevel:    row.CurrentLevel,
		TotalWillEarned: row.TotalWillEarned,
	}
	inc := IncrementStreak(state)
	next := inc.State

	if inc.Reward != nil {
		p, err := s.profiles.GetOrCreateMain(ctx)
		if err != nil {
			return StreakIncrement{}, false, err
		}
		p.Coins += inc.Reward.Coins
		p.Stars += inc.Reward.Stars
		p.Will += inc.WillGain
		if err := s.profiles.Update(ctx, p); err != nil {
			return StreakIncrement{}, false, err
		}
	}

	prestiged := false
	if inc.MilestoneReached {
		s.log.Info().
			Int("level", next.CurrentLevel).
			Int("streak", next.CurrentStreak).
			Float64("will", inc.WillGain).
			Msg("streak milestone reached")

		// The ladder tops out at level 10; the final milestone leaves the
		// state in place as a trophy.
		if next.CurrentLevel < 10 {
			if err := s.streaks.AppendHistory(ctx, next.CurrentLevel, next.MaxStreak); err != nil {
				return StreakIncrement{}, false, err
			}
			next = HandlePrestigeReset(next)
			prestiged = true
		}
	}

	row.CurrentStreak = next.CurrentStreak
	row.MaxStreak = next.MaxStreak
	row.CurrentLevel = next.CurrentLevel
	row.TotalWillEarned = next.TotalWillEarned
	if err := s.streaks.Update(ctx, row); err != nil {
		return StreakIncrement{}, false, err
	}

	return inc, prestiged, nil
}

// EditCalendar overwrites a single day's completion entry and reprojects the
// identity's derived state from the amended history.
func (s *Service) EditCalendar(ctx context.Context, identityID int64, day string, completed bool) (*Projection, error) {
	if _, err := time.Parse(DayLayout, day); err != nil {
		return nil, InvariantViolationError{Reason: "invalid day (want YYYY-MM-DD): " + day}
	}

	ident, err := s.getIdentity(ctx, identityID)
	if err != nil {
		return nil, err
	}

	if err := s.history.Upsert(ctx, ident.ID, day, completed); err != nil {
		return nil, err
	}

	proj, err := s.reprojectIdentity(ctx, ident, s.clock.Now())
	if err != nil {
		return nil, err
	}
	return &proj.Projection, nil
}

type reprojection struct {
	Projection  Projection
	LevelBefore int
	TierBefore  Tier
	LevelUp     bool
	TierUp      bool
}

// reprojectIdentity recomputes the identity's cached progression fields from
// the history log and persists them.
func (s *Service) reprojectIdentity(ctx context.Context, ident *storage.Identity, today time.Time) (*reprojection, error) {
	rows, err := s.history.ListByIdentity(ctx, ident.ID)
	if err != nil {
		return nil, err
	}

	entries := make([]HistoryEntry, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, HistoryEntry{Day: row.Day, Completed: row.Completed})
	}
	proj := ProjectHistory(entries, today)

	out := &reprojection{
		Projection:  proj,
		LevelBefore: ident.Level,
		TierBefore:  Tier(ident.Tier),
	}
	out.TierUp = TierIndex(proj.Tier) > TierIndex(Tier(ident.Tier))
	out.LevelUp = out.TierUp || (proj.Tier == Tier(ident.Tier) && proj.Level > ident.Level)

	ident.Tier = string(proj.Tier)
	ident.Level = proj.Level
	ident.DaysCompleted = proj.DaysCompleted
	ident.RequiredDays = proj.RequiredDays
	ident.CurrentStreak = proj.StreakDays
	if err := s.identities.Update(ctx, ident); err != nil {
		return nil, err
	}
	return out, nil
}

// RollbackTier is an explicit debug operation and the only way a tier can
// decrease. It rewinds the identity one tier and zeroes level progress.
func (s *Service) RollbackTier(ctx context.Context, identityID int64) error {
	ident, err := s.getIdentity(ctx, identityID)
	if err != nil {
		return err
	}

	idx := TierIndex(Tier(ident.Tier))
	if idx > 0 {
		ident.Tier = string(tierOrder[idx-1])
	}
	ident.Level = 1
	ident.DaysCompleted = 0
	ident.RequiredDays = RequiredDaysForTier(Tier(ident.Tier))
	return s.identities.Update(ctx, ident)
}

func levelProgressFromRow(row *storage.LevelProgressRow) *LevelProgress {
	lp := NewLevelProgress()
	lp.TotalPointsEarned = row.TotalPoints
	for gate, points := range row.Gates {
		lp.Gates[Gate(gate)] = points
	}
	return lp
}

func levelProgressToRow(lp *LevelProgress, row *storage.LevelProgressRow) {
	row.TotalPoints = lp.TotalPointsEarned
	if row.Gates == nil {
		row.Gates = map[string]float64{}
	}
	for gate, points := range lp.Gates {
		row.Gates[string(gate)] = points
	}
}

func addDimensionPoints(p *storage.Profile, d Dimension, points float64) {
	switch d {
	case DimensionBody:
		p.StatBody += points
	case DimensionMind:
		p.StatMind += points
	case DimensionSoul:
		p.StatSoul += points
	case DimensionWill:
		p.StatWill += points
	}
}
