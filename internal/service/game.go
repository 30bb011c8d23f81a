package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rocketscienceinc/rps-backend/internal/apperror"
	"github.com/rocketscienceinc/rps-backend/internal/entity"
)

type GameService interface {
	GetOrCreateGame(ctx context.Context, id string) (*entity.Game, error)
	UpdateGame(ctx context.Context, game *entity.Game) error
	DeleteGame(ctx context.Context, id string) error
}

type gameRepo interface {
	CreateOrUpdate(ctx context.Context, game *entity.Game) error
	GetByID(ctx context.Context, id string) (*entity.Game, error)
	DeleteByID(ctx context.Context, id string) error
}

type gameService struct {
	gameRepo gameRepo
}

func NewGameService(gameRepo gameRepo) GameService {
	return &gameService{
		gameRepo: gameRepo,
	}
}

// GetOrCreateGame - loads the session game, a missing one starts empty and is not stored until updated.
func (that *gameService) GetOrCreateGame(ctx context.Context, id string) (*entity.Game, error) {
	if id == "" {
		return nil, apperror.ErrEmptySession
	}

	game, err := that.gameRepo.GetByID(ctx, id)
	if errors.Is(err, apperror.ErrGameNotFound) {
		return entity.NewGame(id), nil
	}

	if err != nil {
		return nil, fmt.Errorf("failed to retrieve game from storage: %w", err)
	}

	return game, nil
}

func (that *gameService) UpdateGame(ctx context.Context, game *entity.Game) error {
	if err := that.gameRepo.CreateOrUpdate(ctx, game); err != nil {
		return fmt.Errorf("failed to update game: %w", err)
	}
	return nil
}

func (that *gameService) DeleteGame(ctx context.Context, id string) error {
	err := that.gameRepo.DeleteByID(ctx, id)
	if err != nil && !errors.Is(err, apperror.ErrGameNotFound) {
		return fmt.Errorf("failed to delete game: %w", err)
	}
	return nil
}
