package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

type MarketRepo struct {
	db *sql.DB
}

func NewMarketRepo(db *sql.DB) *MarketRepo {
	return &MarketRepo{db: db}
}

func (r *MarketRepo) Get(ctx context.Context, itemID string) (*MarketStateRow, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT item_id, ticket_id, last_purchased_at, cooldown_hours, base_inflation
		FROM market_state WHERE item_id = ?
	`, itemID)

	var m MarketStateRow
	if err := row.Scan(&m.ItemID, &m.TicketID, &m.LastPurchasedAt, &m.CooldownHours, &m.BaseInflation); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("market state get: %w", err)
	}
	return &m, nil
}

// Upsert overwrites the per-item purchase record; every purchase supersedes
// the previous one.
func (r *MarketRepo) Upsert(ctx context.Context, m MarketStateRow) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO market_state (item_id, ticket_id, last_purchased_at, cooldown_hours, base_inflation)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(item_id) DO UPDATE SET
			ticket_id = excluded.ticket_id,
			last_purchased_at = excluded.last_purchased_at,
			cooldown_hours = excluded.cooldown_hours,
			base_inflation = excluded.base_inflation
	`, m.ItemID, m.TicketID, m.LastPurchasedAt, m.CooldownHours, m.BaseInflation)
	if err != nil {
		return fmt.Errorf("market state upsert: %w", err)
	}
	return nil
}

// PruneExpired opportunistically removes records whose cooldown has fully
// elapsed. Expired records are harmless if left behind; this just keeps the
// table small.
func (r *MarketRepo) PruneExpired(ctx context.Context, now time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx, `
		DELETE FROM market_state
		WHERE datetime(last_purchased_at, '+' || cooldown_hours || ' hours') <= datetime(?)
	`, now.UTC().Format("2006-01-02 15:04:05"))
	if err != nil {
		return 0, fmt.Errorf("market state prune: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("market state prune rows: %w", err)
	}
	return n, nil
}
