package storage

import (
	"context"
	"database/sql"
	"fmt"
)

type ShopRepo struct {
	db *sql.DB
}

func NewShopRepo(db *sql.DB) *ShopRepo {
	return &ShopRepo{db: db}
}

func (r *ShopRepo) Upsert(ctx context.Context, item ShopItem) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO shop_items (id, title, category, cost_coins, base_inflation, cooldown_hours)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			title = excluded.title,
			category = excluded.category,
			cost_coins = excluded.cost_coins,
			base_inflation = excluded.base_inflation,
			cooldown_hours = excluded.cooldown_hours
	`, item.ID, item.Title, item.Category, item.CostCoins, item.BaseInflation, item.CooldownHours)
	if err != nil {
		return fmt.Errorf("shop item upsert: %w", err)
	}
	return nil
}

func (r *ShopRepo) Get(ctx context.Context, id string) (*ShopItem, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, title, category, cost_coins, base_inflation, cooldown_hours
		FROM shop_items WHERE id = ?
	`, id)

	var item ShopItem
	if err := row.Scan(&item.ID, &item.Title, &item.Category, &item.CostCoins, &item.BaseInflation, &item.CooldownHours); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("shop item get: %w", err)
	}
	return &item, nil
}

func (r *ShopRepo) ListAll(ctx context.Context) ([]ShopItem, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, title, category, cost_coins, base_inflation, cooldown_hours
		FROM shop_items
		ORDER BY category ASC, id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("shop list: %w", err)
	}
	defer rows.Close()

	var out []ShopItem
	for rows.Next() {
		var item ShopItem
		if err := rows.Scan(&item.ID, &item.Title, &item.Category, &item.CostCoins, &item.BaseInflation, &item.CooldownHours); err != nil {
			return nil, fmt.Errorf("shop scan: %w", err)
		}
		out = append(out, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("shop rows: %w", err)
	}
	return out, nil
}

// InventoryCount returns how many un-consumed units of an item the user
// holds. Missing rows count as zero.
func (r *ShopRepo) InventoryCount(ctx context.Context, itemID string) (int, error) {
	row := r.db.QueryRowContext(ctx, `SELECT count FROM inventory WHERE item_id = ?`, itemID)
	var n int
	if err := row.Scan(&n); err != nil {
		if err == sql.ErrNoRows {
			return 0, nil
		}
		return 0, fmt.Errorf("inventory count: %w", err)
	}
	return n, nil
}

func (r *ShopRepo) IncrementInventory(ctx context.Context, itemID string) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO inventory (item_id, count) VALUES (?, 1)
		ON CONFLICT(item_id) DO UPDATE SET count = count + 1
	`, itemID)
	if err != nil {
		return fmt.Errorf("inventory increment: %w", err)
	}
	return nil
}

// ConsumeInventory decrements an item's count, flooring at zero.
func (r *ShopRepo) ConsumeInventory(ctx context.Context, itemID string) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE inventory SET count = count - 1 WHERE item_id = ? AND count > 0
	`, itemID)
	if err != nil {
		return fmt.Errorf("inventory consume: %w", err)
	}
	return nil
}
