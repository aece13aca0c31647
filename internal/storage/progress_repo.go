package storage

import (
	"context"
	"database/sql"
	"fmt"
)

// ProgressRepo covers per-day completion summaries and the transient
// per-day gate marks cleared by the daily reset.
type ProgressRepo struct {
	db *sql.DB
}

func NewProgressRepo(db *sql.DB) *ProgressRepo {
	return &ProgressRepo{db: db}
}

func (r *ProgressRepo) UpsertDaily(ctx context.Context, p DailyProgressRow) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO daily_progress (identity_id, day, percentage, completed)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(identity_id, day) DO UPDATE SET
			percentage = excluded.percentage,
			completed = excluded.completed
	`, p.IdentityID, p.Day, p.Percentage, boolToInt(p.Completed))
	if err != nil {
		return fmt.Errorf("daily progress upsert: %w", err)
	}
	return nil
}

func (r *ProgressRepo) GetDaily(ctx context.Context, identityID int64, day string) (*DailyProgressRow, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT identity_id, day, percentage, completed
		FROM daily_progress
		WHERE identity_id = ? AND day = ?
	`, identityID, day)

	var p DailyProgressRow
	var completed int
	if err := row.Scan(&p.IdentityID, &p.Day, &p.Percentage, &completed); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("daily progress get: %w", err)
	}
	p.Completed = completed != 0
	return &p, nil
}

func (r *ProgressRepo) MarkGate(ctx context.Context, identityID int64, day string, gate string) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO gate_marks (identity_id, day, gate)
		VALUES (?, ?, ?)
		ON CONFLICT(identity_id, day, gate) DO NOTHING
	`, identityID, day, gate)
	if err != nil {
		return fmt.Errorf("gate mark: %w", err)
	}
	return nil
}

func (r *ProgressRepo) ListGateMarks(ctx context.Context, identityID int64, day string) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT gate FROM gate_marks
		WHERE identity_id = ? AND day = ?
		ORDER BY gate ASC
	`, identityID, day)
	if err != nil {
		return nil, fmt.Errorf("gate marks list: %w", err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var g string
		if err := rows.Scan(&g); err != nil {
			return nil, fmt.Errorf("gate mark scan: %w", err)
		}
		out = append(out, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("gate marks rows: %w", err)
	}
	return out, nil
}

// ClearMarksBefore drops transient gate marks from past days. Earned
// rewards are ledger entries elsewhere and are not touched.
func (r *ProgressRepo) ClearMarksBefore(ctx context.Context, day string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM gate_marks WHERE day < ?`, day)
	if err != nil {
		return fmt.Errorf("gate marks clear: %w", err)
	}
	return nil
}
