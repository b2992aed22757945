package service

import (
	"context"
	"fmt"

	"ethics-game/internal/domain"
	"ethics-game/internal/repository"
)

// ChoiceService coordinates submission and retrieval of dilemma choices.
type ChoiceService interface {
	Submit(ctx context.Context, choice *domain.Choice) (*domain.Choice, error)
	ListByUser(ctx context.Context, userID int64) ([]domain.Choice, error)
}

type choiceService struct {
	choices repository.ChoiceRepository
}

func NewChoiceService(choices repository.ChoiceRepository) ChoiceService {
	return &choiceService{choices: choices}
}

func (s *choiceService) Submit(ctx context.Context, choice *domain.Choice) (*domain.Choice, error) {
	if choice == nil {
		return nil, fmt.Errorf("%w: choice is required", ErrValidation)
	}
	if choice.UserID <= 0 {
		return nil, fmt.Errorf("%w: user id is required", ErrValidation)
	}
	if choice.Period == "" {
		return nil, fmt.Errorf("%w: period is required", ErrValidation)
	}
	if choice.Question == "" {
		return nil, fmt.Errorf("%w: question is required", ErrValidation)
	}
	if choice.SelectedAnswer == "" {
		return nil, fmt.Errorf("%w: selected answer is required", ErrValidation)
	}

	if _, err := s.choices.Create(ctx, choice); err != nil {
		return nil, err
	}
	return choice, nil
}

func (s *choiceService) ListByUser(ctx context.Context, userID int64) ([]domain.Choice, error) {
	return s.choices.ListByUser(ctx, userID)
}
