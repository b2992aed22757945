package repository

import (
	"context"

	"ethics-game/internal/domain"
)

// ChoiceRepository exposes persistence operations for submitted choices.
type ChoiceRepository interface {
	Init(ctx context.Context) error
	Create(ctx context.Context, choice *domain.Choice) (int64, error)
	ListByUser(ctx context.Context, userID int64) ([]domain.Choice, error)
}
