package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
)

func Migrate(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS profile (
			key TEXT PRIMARY KEY,
			coins INTEGER DEFAULT 0,
			stars INTEGER DEFAULT 0,
			will REAL DEFAULT 0,
			stat_body REAL DEFAULT 0,
			stat_mind REAL DEFAULT 0,
			stat_soul REAL DEFAULT 0,
			stat_will REAL DEFAULT 0,
			last_reset_date TEXT DEFAULT ''
		);`,
		`CREATE TABLE IF NOT EXISTS identities (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL,
			tier TEXT DEFAULT 'D',
			level INTEGER DEFAULT 1,
			days_completed INTEGER DEFAULT 0,
			required_days INTEGER DEFAULT 5,
			current_streak INTEGER DEFAULT 0,
			is_active INTEGER DEFAULT 1,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);`,
		// Source of truth for derived progression state; one row per day.
		`CREATE TABLE IF NOT EXISTS history (
			identity_id INTEGER NOT NULL,
			day TEXT NOT NULL,
			completed INTEGER NOT NULL,
			PRIMARY KEY (identity_id, day),
			FOREIGN KEY(identity_id) REFERENCES identities(id)
		);`,
		`CREATE TABLE IF NOT EXISTS daily_progress (
			identity_id INTEGER NOT NULL,
			day TEXT NOT NULL,
			percentage REAL DEFAULT 0,
			completed INTEGER DEFAULT 0,
			PRIMARY KEY (identity_id, day),
			FOREIGN KEY(identity_id) REFERENCES identities(id)
		);`,
		`CREATE TABLE IF NOT EXISTS gate_marks (
			identity_id INTEGER NOT NULL,
			day TEXT NOT NULL,
			gate TEXT NOT NULL,
			PRIMARY KEY (identity_id, day, gate),
			FOREIGN KEY(identity_id) REFERENCES identities(id)
		);`,
		`CREATE TABLE IF NOT EXISTS level_progress (
			identity_id INTEGER NOT NULL,
			level INTEGER NOT NULL,
			total_points REAL DEFAULT 0,
			PRIMARY KEY (identity_id, level),
			FOREIGN KEY(identity_id) REFERENCES identities(id)
		);`,
		`CREATE TABLE IF NOT EXISTS level_gate_progress (
			identity_id INTEGER NOT NULL,
			level INTEGER NOT NULL,
			gate TEXT NOT NULL,
			points REAL DEFAULT 0,
			PRIMARY KEY (identity_id, level, gate),
			FOREIGN KEY(identity_id) REFERENCES identities(id)
		);`,
		`CREATE TABLE IF NOT EXISTS streak_state (
			key TEXT PRIMARY KEY,
			current_streak INTEGER DEFAULT 0,
			max_streak INTEGER DEFAULT 0,
			current_level INTEGER DEFAULT 1,
			total_will REAL DEFAULT 0
		);`,
		`CREATE TABLE IF NOT EXISTS streak_history (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			level INTEGER NOT NULL,
			max_streak INTEGER NOT NULL,
			recorded_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);`,
		`CREATE TABLE IF NOT EXISTS shop_items (
			id TEXT PRIMARY KEY,
			title TEXT NOT NULL,
			category TEXT NOT NULL,
			cost_coins INTEGER NOT NULL,
			base_inflation REAL DEFAULT 0,
			cooldown_hours INTEGER DEFAULT 0
		);`,
		`CREATE TABLE IF NOT EXISTS inventory (
			item_id TEXT PRIMARY KEY,
			count INTEGER DEFAULT 0,
			FOREIGN KEY(item_id) REFERENCES shop_items(id)
		);`,
		`CREATE TABLE IF NOT EXISTS market_state (
			item_id TEXT PRIMARY KEY,
			ticket_id TEXT NOT NULL,
			last_purchased_at DATETIME NOT NULL,
			cooldown_hours INTEGER NOT NULL,
			base_inflation REAL NOT NULL,
			FOREIGN KEY(item_id) REFERENCES shop_items(id)
		);`,
		`CREATE TABLE IF NOT EXISTS quests (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			title TEXT NOT NULL,
			is_recurring INTEGER DEFAULT 0,
			status TEXT DEFAULT 'today',
			day TEXT NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_history_identity ON history(identity_id);`,
		`CREATE INDEX IF NOT EXISTS idx_gate_marks_day ON gate_marks(day);`,
		`CREATE INDEX IF NOT EXISTS idx_quests_status ON quests(status);`,
	}

	if err := WithTx(ctx, db, func(tx *sql.Tx) error {
		for _, stmt := range stmts {
			if _, err := tx.ExecContext(ctx, stmt); err != nil {
				return fmt.Errorf("migrate: %w", err)
			}
		}
		return nil
	}); err != nil {
		return err
	}

	// Columns added after the first release; ignore if already present.
	alterStmts := []string{
		`ALTER TABLE identities ADD COLUMN required_days INTEGER DEFAULT 5;`,
		`ALTER TABLE profile ADD COLUMN last_reset_date TEXT DEFAULT '';`,
	}
	for _, stmt := range alterStmts {
		_, err := db.ExecContext(ctx, stmt)
		if err != nil && !strings.Contains(err.Error(), "duplicate column") {
			return fmt.Errorf("migrate alter: %w", err)
		}
	}

	return nil
}
