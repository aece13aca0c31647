package storage

import (
	"context"
	"database/sql"
	"fmt"
)

type QuestRepo struct {
	db *sql.DB
}

func NewQuestRepo(db *sql.DB) *QuestRepo {
	return &QuestRepo{db: db}
}

type QuestInsert struct {
	Title       string
	IsRecurring bool
	Status      string
	Day         string
}

func (r *QuestRepo) Insert(ctx context.Context, in QuestInsert) (int64, error) {
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO quests (title, is_recurring, status, day)
		VALUES (?, ?, ?, ?)
	`, in.Title, boolToInt(in.IsRecurring), in.Status, in.Day)
	if err != nil {
		return 0, fmt.Errorf("quest insert: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("quest last insert id: %w", err)
	}
	return id, nil
}

func (r *QuestRepo) Get(ctx context.Context, id int64) (*Quest, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, title, is_recurring, status, day FROM quests WHERE id = ?
	`, id)

	var q Quest
	var recurring int
	if err := row.Scan(&q.ID, &q.Title, &recurring, &q.Status, &q.Day); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("quest get: %w", err)
	}
	q.IsRecurring = recurring != 0
	return &q, nil
}

func (r *QuestRepo) ListAll(ctx context.Context) ([]Quest, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, title, is_recurring, status, day FROM quests ORDER BY id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("quest list: %w", err)
	}
	defer rows.Close()

	var out []Quest
	for rows.Next() {
		var q Quest
		var recurring int
		if err := rows.Scan(&q.ID, &q.Title, &recurring, &q.Status, &q.Day); err != nil {
			return nil, fmt.Errorf("quest scan: %w", err)
		}
		q.IsRecurring = recurring != 0
		out = append(out, q)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("quest rows: %w", err)
	}
	return out, nil
}

func (r *QuestRepo) UpdateSchedule(ctx context.Context, id int64, status string, day string) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE quests SET status = ?, day = ? WHERE id = ?
	`, status, day, id)
	if err != nil {
		return fmt.Errorf("quest update: %w", err)
	}
	return nil
}

func (r *QuestRepo) MarkCompleted(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE quests SET status = 'completed' WHERE id = ?
	`, id)
	if err != nil {
		return fmt.Errorf("quest complete: %w", err)
	}
	return nil
}
