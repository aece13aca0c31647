package storage

import (
	"context"
	"database/sql"
	"fmt"
)

type IdentityRepo struct {
	db *sql.DB
}

func NewIdentityRepo(db *sql.DB) *IdentityRepo {
	return &IdentityRepo{db: db}
}

type IdentityInsert struct {
	Name         string
	Tier         string
	RequiredDays int
}

func (r *IdentityRepo) Insert(ctx context.Context, in IdentityInsert) (int64, error) {
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO identities (name, tier, required_days)
		VALUES (?, ?, ?)
	`, in.Name, in.Tier, in.RequiredDays)
	if err != nil {
		return 0, fmt.Errorf("identity insert: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("identity last insert id: %w", err)
	}
	return id, nil
}

func (r *IdentityRepo) Get(ctx context.Context, id int64) (*Identity, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, name, tier, level, days_completed, required_days, current_streak, is_active, created_at
		FROM identities
		WHERE id = ?
	`, id)
	return scanIdentityRow(row)
}

func (r *IdentityRepo) ListActive(ctx context.Context) ([]Identity, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, tier, level, days_completed, required_days, current_streak, is_active, created_at
		FROM identities
		WHERE is_active = 1
		ORDER BY id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("identity list: %w", err)
	}
	defer rows.Close()

	var out []Identity
	for rows.Next() {
		var ident Identity
		var active int
		if err := rows.Scan(&ident.ID, &ident.Name, &ident.Tier, &ident.Level, &ident.DaysCompleted, &ident.RequiredDays, &ident.CurrentStreak, &active, &ident.CreatedAt); err != nil {
			return nil, fmt.Errorf("identity scan: %w", err)
		}
		ident.IsActive = active != 0
		out = append(out, ident)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("identity list rows: %w", err)
	}
	return out, nil
}

func (r *IdentityRepo) Update(ctx context.Context, ident *Identity) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE identities
		SET name = ?, tier = ?, level = ?, days_completed = ?, required_days = ?, current_streak = ?, is_active = ?
		WHERE id = ?
	`, ident.Name, ident.Tier, ident.Level, ident.DaysCompleted, ident.RequiredDays, ident.CurrentStreak, boolToInt(ident.IsActive), ident.ID)
	if err != nil {
		return fmt.Errorf("identity update: %w", err)
	}
	return nil
}

// Deactivate soft-deletes an identity; history rows are never removed.
func (r *IdentityRepo) Deactivate(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, `UPDATE identities SET is_active = 0 WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("identity deactivate: %w", err)
	}
	return nil
}

func scanIdentityRow(row *sql.Row) (*Identity, error) {
	var ident Identity
	var active int
	if err := row.Scan(&ident.ID, &ident.Name, &ident.Tier, &ident.Level, &ident.DaysCompleted, &ident.RequiredDays, &ident.CurrentStreak, &active, &ident.CreatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("identity get: %w", err)
	}
	ident.IsActive = active != 0
	return &ident, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
