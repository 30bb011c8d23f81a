package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"
	"time"

	"github.com/rocketscienceinc/rps-backend/internal/config"
	"github.com/rocketscienceinc/rps-backend/internal/predictor"
	"github.com/rocketscienceinc/rps-backend/internal/repository"
	"github.com/rocketscienceinc/rps-backend/internal/repository/storage"
	"github.com/rocketscienceinc/rps-backend/internal/service"
	"github.com/rocketscienceinc/rps-backend/internal/usecase"
	"github.com/rocketscienceinc/rps-backend/transport/rest"
)

var ErrAddrNotFound = errors.New("redis address string is empty")

// RunApp - runs the application.
func RunApp(logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	redisAddrString := conf.Redis.GetRedisAddr()
	if redisAddrString == "" {
		return ErrAddrNotFound
	}

	redisStorage, err := storage.NewRedisStorage(ctx, redisAddrString, conf.Redis.Password, conf.Redis.DB)
	if err != nil {
		return fmt.Errorf("could not connect to redis storage: %w", err)
	}

	defer func() {
		if err = redisStorage.Close(); err != nil {
			log.Error("could not close redis storage", "error", err)
		}
	}()

	gameRepo := repository.NewGameRepository(redisStorage.Connection, conf.Redis.GameTTL)
	gameService := service.NewGameService(gameRepo)
	botService := service.NewBotService(newPredictor(conf.Predictor))
	gameManager := usecase.NewGameManager(logger, gameService, botService)

	log.Info("Starting HTTP server", "port", conf.HTTPPort, "window", conf.Predictor.Window)

	if err = rest.New(logger, gameManager).Start(ctx, conf.HTTPPort); err != nil {
		return fmt.Errorf("HTTP server error: %w", err)
	}

	log.Info("Application context canceled, shutting down")

	return nil
}

func newPredictor(conf config.Predictor) *predictor.Predictor {
	seed := conf.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	return predictor.New(
		predictor.WithWindow(conf.Window),
		predictor.WithSource(predictor.NewLockedSource(seed)),
	)
}
