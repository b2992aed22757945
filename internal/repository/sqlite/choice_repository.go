package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"ethics-game/internal/domain"
	"ethics-game/internal/repository"
)

const createChoicesTable = `
CREATE TABLE IF NOT EXISTS choices (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	user_id INTEGER NOT NULL REFERENCES users(id),
	period TEXT NOT NULL,
	question TEXT NOT NULL,
	selected_answer TEXT NOT NULL,
	score REAL NOT NULL DEFAULT 0,
	created_at DATETIME NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_choices_user_id ON choices(user_id);
`

type ChoiceRepository struct {
	db *sql.DB
}

func NewChoiceRepository(db *sql.DB) repository.ChoiceRepository {
	return &ChoiceRepository{db: db}
}

func (r *ChoiceRepository) Init(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createChoicesTable); err != nil {
		return fmt.Errorf("create choices table: %w", err)
	}
	return nil
}

func (r *ChoiceRepository) Create(ctx context.Context, choice *domain.Choice) (int64, error) {
	choice.CreatedAt = time.Now().UTC()

	res, err := r.db.ExecContext(ctx, `
INSERT INTO choices (user_id, period, question, selected_answer, score, created_at)
VALUES (?, ?, ?, ?, ?, ?)`,
		choice.UserID,
		choice.Period,
		choice.Question,
		choice.SelectedAnswer,
		choice.Score,
		choice.CreatedAt,
	)
	if err != nil {
		return 0, fmt.Errorf("insert choice: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("choice last insert id: %w", err)
	}
	choice.ID = id
	return id, nil
}

func (r *ChoiceRepository) ListByUser(ctx context.Context, userID int64) ([]domain.Choice, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT id, user_id, period, question, selected_answer, score, created_at
FROM choices
WHERE user_id = ?
ORDER BY created_at, id`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("list choices: %w", err)
	}
	defer rows.Close()

	var choices []domain.Choice
	for rows.Next() {
		var c domain.Choice
		if err := rows.Scan(
			&c.ID,
			&c.UserID,
			&c.Period,
			&c.Question,
			&c.SelectedAnswer,
			&c.Score,
			&c.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan choice: %w", err)
		}
		choices = append(choices, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate choices: %w", err)
	}
	return choices, nil
}
