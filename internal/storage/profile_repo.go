package storage

import (
	"context"
	"database/sql"
	"fmt"
)

const MainProfileKey = "main_user"

type ProfileRepo struct {
	db *sql.DB
}

func NewProfileRepo(db *sql.DB) *ProfileRepo {
	return &ProfileRepo{db: db}
}

func (r *ProfileRepo) Get(ctx context.Context, key string) (*Profile, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT key, coins, stars, will, stat_body, stat_mind, stat_soul, stat_will, last_reset_date
		FROM profile WHERE key = ?
	`, key)

	var p Profile
	if err := row.Scan(&p.Key, &p.Coins, &p.Stars, &p.Will, &p.StatBody, &p.StatMind, &p.StatSoul, &p.StatWill, &p.LastResetDate); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("profile get: %w", err)
	}
	return &p, nil
}

func (r *ProfileRepo) GetOrCreateMain(ctx context.Context) (*Profile, error) {
	p, err := r.Get(ctx, MainProfileKey)
	if err != nil {
		return nil, err
	}
	if p != nil {
		return p, nil
	}

	if _, err := r.db.ExecContext(ctx, `INSERT INTO profile (key) VALUES (?)`, MainProfileKey); err != nil {
		return nil, fmt.Errorf("profile insert: %w", err)
	}
	return r.Get(ctx, MainProfileKey)
}

func (r *ProfileRepo) Update(ctx context.Context, p *Profile) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE profile
		SET coins = ?, stars = ?, will = ?, stat_body = ?, stat_mind = ?, stat_soul = ?, stat_will = ?, last_reset_date = ?
		WHERE key = ?
	`, p.Coins, p.Stars, p.Will, p.StatBody, p.StatMind, p.StatSoul, p.StatWill, p.LastResetDate, p.Key)
	if err != nil {
		return fmt.Errorf("profile update: %w", err)
	}
	return nil
}
