package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/rocketscienceinc/rps-backend/internal/apperror"
	"github.com/rocketscienceinc/rps-backend/internal/entity"
)

type gameService interface {
	GetOrCreateGame(ctx context.Context, id string) (*entity.Game, error)
	UpdateGame(ctx context.Context, game *entity.Game) error
	DeleteGame(ctx context.Context, id string) error
}

type botService interface {
	ChooseMove(game *entity.Game) entity.Move
}

type GameManager struct {
	logger *slog.Logger

	gameService gameService
	botService  botService

	// serializes read-modify-write of stored games
	mu sync.Mutex
}

func NewGameManager(logger *slog.Logger, gameService gameService, botService botService) *GameManager {
	return &GameManager{
		logger: logger.With("component", "game_manager"),

		gameService: gameService,
		botService:  botService,
	}
}

// Play - plays one round: the bot answers from the history before this choice is recorded.
func (that *GameManager) Play(ctx context.Context, sessionID, choice string) (*entity.Round, error) {
	log := that.logger.With("method", "Play", "session", sessionID)

	playerMove, err := entity.ParseMove(choice)
	if err != nil {
		return nil, err
	}

	that.mu.Lock()
	defer that.mu.Unlock()

	game, err := that.gameService.GetOrCreateGame(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed get game: %w", err)
	}

	if game.IsPaused {
		return nil, apperror.ErrGamePaused
	}

	botMove := that.botService.ChooseMove(game)
	round := game.PlayRound(playerMove, botMove)

	if err = that.gameService.UpdateGame(ctx, game); err != nil {
		return nil, fmt.Errorf("failed update game: %w", err)
	}

	log.Debug("round played",
		"player_move", playerMove.Code(),
		"bot_move", botMove.Code(),
		"result", round.Result,
		"history_len", len(game.History),
	)

	return round, nil
}

func (that *GameManager) Pause(ctx context.Context, sessionID string) (*entity.Game, error) {
	return that.update(ctx, sessionID, (*entity.Game).Pause)
}

func (that *GameManager) Resume(ctx context.Context, sessionID string) (*entity.Game, error) {
	return that.update(ctx, sessionID, (*entity.Game).Resume)
}

// Reset - forgets the session history and score.
func (that *GameManager) Reset(ctx context.Context, sessionID string) (*entity.Game, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	if sessionID == "" {
		return nil, apperror.ErrEmptySession
	}

	if err := that.gameService.DeleteGame(ctx, sessionID); err != nil {
		return nil, fmt.Errorf("failed reset game: %w", err)
	}

	that.logger.Info("game reset", "session", sessionID)

	return entity.NewGame(sessionID), nil
}

func (that *GameManager) Status(ctx context.Context, sessionID string) (*entity.Game, error) {
	game, err := that.gameService.GetOrCreateGame(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed get game: %w", err)
	}

	return game, nil
}

func (that *GameManager) update(ctx context.Context, sessionID string, apply func(*entity.Game)) (*entity.Game, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	game, err := that.gameService.GetOrCreateGame(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed get game: %w", err)
	}

	apply(game)

	if err = that.gameService.UpdateGame(ctx, game); err != nil {
		return nil, fmt.Errorf("failed update game: %w", err)
	}

	return game, nil
}
