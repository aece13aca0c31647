package storage

import (
	"context"
	"database/sql"
	"fmt"
)

type HistoryRepo struct {
	db *sql.DB
}

func NewHistoryRepo(db *sql.DB) *HistoryRepo {
	return &HistoryRepo{db: db}
}

// Upsert records a day's completion, overwriting any prior entry for the
// same (identity, day). This is the appendOrUpdate contract: at most one
// row per day survives.
func (r *HistoryRepo) Upsert(ctx context.Context, identityID int64, day string, completed bool) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO history (identity_id, day, completed)
		VALUES (?, ?, ?)
		ON CONFLICT(identity_id, day) DO UPDATE SET completed = excluded.completed
	`, identityID, day, boolToInt(completed))
	if err != nil {
		return fmt.Errorf("history upsert: %w", err)
	}
	return nil
}

func (r *HistoryRepo) Get(ctx context.Context, identityID int64, day string) (*HistoryRow, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT identity_id, day, completed
		FROM history
		WHERE identity_id = ? AND day = ?
	`, identityID, day)

	var h HistoryRow
	var completed int
	if err := row.Scan(&h.IdentityID, &h.Day, &completed); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("history get: %w", err)
	}
	h.Completed = completed != 0
	return &h, nil
}

func (r *HistoryRepo) ListByIdentity(ctx context.Context, identityID int64) ([]HistoryRow, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT identity_id, day, completed
		FROM history
		WHERE identity_id = ?
		ORDER BY day ASC
	`, identityID)
	if err != nil {
		return nil, fmt.Errorf("history list: %w", err)
	}
	defer rows.Close()

	var out []HistoryRow
	for rows.Next() {
		var h HistoryRow
		var completed int
		if err := rows.Scan(&h.IdentityID, &h.Day, &completed); err != nil {
			return nil, fmt.Errorf("history scan: %w", err)
		}
		h.Completed = completed != 0
		out = append(out, h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("history list rows: %w", err)
	}
	return out, nil
}
