package storage

import (
	"context"
	"database/sql"
	"fmt"
)

const MainStreakKey = "main_user"

type StreakRepo struct {
	db *sql.DB
}

func NewStreakRepo(db *sql.DB) *StreakRepo {
	return &StreakRepo{db: db}
}

func (r *StreakRepo) GetOrCreateMain(ctx context.Context) (*StreakStateRow, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT key, current_streak, max_streak, current_level, total_will
		FROM streak_state WHERE key = ?
	`, MainStreakKey)

	var s StreakStateRow
	err := row.Scan(&s.Key, &s.CurrentStreak, &s.MaxStreak, &s.CurrentLevel, &s.TotalWillEarned)
	if err == sql.ErrNoRows {
		if _, err := r.db.ExecContext(ctx, `
			INSERT INTO streak_state (key, current_level) VALUES (?, 1)
		`, MainStreakKey); err != nil {
			return nil, fmt.Errorf("streak insert: %w", err)
		}
		return &StreakStateRow{Key: MainStreakKey, CurrentLevel: 1}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("streak get: %w", err)
	}
	return &s, nil
}

func (r *StreakRepo) Update(ctx context.Context, s *StreakStateRow) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE streak_state
		SET current_streak = ?, max_streak = ?, current_level = ?, total_will = ?
		WHERE key = ?
	`, s.CurrentStreak, s.MaxStreak, s.CurrentLevel, s.TotalWillEarned, s.Key)
	if err != nil {
		return fmt.Errorf("streak update: %w", err)
	}
	return nil
}

// AppendHistory archives a finished prestige cycle. The log is append-only.
func (r *StreakRepo) AppendHistory(ctx context.Context, level int, maxStreak int) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO streak_history (level, max_streak) VALUES (?, ?)
	`, level, maxStreak)
	if err != nil {
		return fmt.Errorf("streak history append: %w", err)
	}
	return nil
}

func (r *StreakRepo) ListHistory(ctx context.Context) ([]StreakHistoryRow, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, level, max_streak, recorded_at
		FROM streak_history
		ORDER BY id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("streak history list: %w", err)
	}
	defer rows.Close()

	var out []StreakHistoryRow
	for rows.Next() {
		var h StreakHistoryRow
		if err := rows.Scan(&h.ID, &h.Level, &h.MaxStreak, &h.RecordedAt); err != nil {
			return nil, fmt.Errorf("streak history scan: %w", err)
		}
		out = append(out, h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("streak history rows: %w", err)
	}
	return out, nil
}
