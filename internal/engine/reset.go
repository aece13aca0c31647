package engine

import "context"

// ResetReport summarizes one daily reset run.
type ResetReport struct {
	Performed    bool
	Today        string
	StreakResets int
	QuestsMoved  int
}

// RunDailyResetNow gathers the reset inputs from storage, runs the pure
// daily transition for the injected clock's today, and persists the
// outcome. Safe to call repeatedly: the second call on the same day is a
// no-op, detected via the profile's last_reset_date stamp. Coin, star and
// stat balances are never touched here.
func (s *Service) RunDailyResetNow(ctx context.Context) (*ResetReport, error) {
	p, err := s.profiles.GetOrCreateMain(ctx)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	today := now.Format(DayLayout)
	yesterday := now.AddDate(0, 0, -1).Format(DayLayout)

	idents, err := s.identities.ListActive(ctx)
	if err != nil {
		return nil, err
	}

	in := ResetInput{
		LastResetDate: p.LastResetDate,
		Today:         today,
		Yesterday:     make(map[int64]*DayProgress, len(idents)),
	}
	for _, ident := range idents {
		in.Identities = append(in.Identities, ResetIdentity{
			ID:            ident.ID,
			CurrentStreak: ident.CurrentStreak,
		})
		row, err := s.progress.GetDaily(ctx, ident.ID, yesterday)
		if err != nil {
			return nil, err
		}
		if row != nil {
			in.Yesterday[ident.ID] = &DayProgress{Percentage: row.Percentage}
		}
	}

	quests, err := s.quests.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	for _, q := range quests {
		in.Quests = append(in.Quests, QuestItem{
			ID:          q.ID,
			IsRecurring: q.IsRecurring,
			Status:      q.Status,
			Day:         q.Day,
		})
	}

	out := RunDailyReset(in)
	if !out.Performed {
		return &ResetReport{Performed: false, Today: today}, nil
	}

	report := &ResetReport{Performed: true, Today: today}

	for _, ev := range out.Streaks {
		ident, err := s.identities.Get(ctx, ev.IdentityID)
		if err != nil {
			return nil, err
		}
		if ident == nil {
			continue
		}
		if ident.CurrentStreak != ev.NewStreak {
			ident.CurrentStreak = ev.NewStreak
			if err := s.identities.Update(ctx, ident); err != nil {
				return nil, err
			}
		}
		if ev.WasReset {
			report.StreakResets++
		}
	}

	if out.ClearTransient {
		if err := s.progress.ClearMarksBefore(ctx, today); err != nil {
			return nil, err
		}
	}

	for i, q := range out.Quests {
		orig := quests[i]
		if q.Status != orig.Status || q.Day != orig.Day {
			if err := s.quests.UpdateSchedule(ctx, q.ID, q.Status, q.Day); err != nil {
				return nil, err
			}
			report.QuestsMoved++
		}
	}

	p.LastResetDate = out.LastResetDate
	if err := s.profiles.Update(ctx, p); err != nil {
		return nil, err
	}

	s.log.Info().
		Str("day", today).
		Int("streak_resets", report.StreakResets).
		Int("quests_moved", report.QuestsMoved).
		Msg("daily reset complete")

	return report, nil
}
