package storage

import (
	"context"
	"database/sql"
	"fmt"
)

type LevelRepo struct {
	db *sql.DB
}

func NewLevelRepo(db *sql.DB) *LevelRepo {
	return &LevelRepo{db: db}
}

// GetOrCreate loads the accrual state for (identity, level), creating a
// zeroed record lazily on first use at that level.
func (r *LevelRepo) GetOrCreate(ctx context.Context, identityID int64, level int) (*LevelProgressRow, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT total_points FROM level_progress
		WHERE identity_id = ? AND level = ?
	`, identityID, level)

	lp := LevelProgressRow{IdentityID: identityID, Level: level, Gates: map[string]float64{}}
	err := row.Scan(&lp.TotalPoints)
	if err == sql.ErrNoRows {
		if _, err := r.db.ExecContext(ctx, `
			INSERT INTO level_progress (identity_id, level, total_points) VALUES (?, ?, 0)
		`, identityID, level); err != nil {
			return nil, fmt.Errorf("level progress insert: %w", err)
		}
		return &lp, nil
	}
	if err != nil {
		return nil, fmt.Errorf("level progress get: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT gate, points FROM level_gate_progress
		WHERE identity_id = ? AND level = ?
	`, identityID, level)
	if err != nil {
		return nil, fmt.Errorf("level gate progress list: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var gate string
		var points float64
		if err := rows.Scan(&gate, &points); err != nil {
			return nil, fmt.Errorf("level gate progress scan: %w", err)
		}
		lp.Gates[gate] = points
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("level gate progress rows: %w", err)
	}
	return &lp, nil
}

func (r *LevelRepo) Save(ctx context.Context, lp *LevelProgressRow) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO level_progress (identity_id, level, total_points)
		VALUES (?, ?, ?)
		ON CONFLICT(identity_id, level) DO UPDATE SET total_points = excluded.total_points
	`, lp.IdentityID, lp.Level, lp.TotalPoints)
	if err != nil {
		return fmt.Errorf("level progress save: %w", err)
	}

	for gate, points := range lp.Gates {
		_, err := r.db.ExecContext(ctx, `
			INSERT INTO level_gate_progress (identity_id, level, gate, points)
			VALUES (?, ?, ?, ?)
			ON CONFLICT(identity_id, level, gate) DO UPDATE SET points = excluded.points
		`, lp.IdentityID, lp.Level, gate, points)
		if err != nil {
			return fmt.Errorf("level gate progress save: %w", err)
		}
	}
	return nil
}
