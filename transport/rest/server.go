package rest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/rocketscienceinc/rps-backend/internal/entity"
)

const shutdownTimeout = 5 * time.Second

type uGame interface {
	Play(ctx context.Context, sessionID, choice string) (*entity.Round, error)
	Pause(ctx context.Context, sessionID string) (*entity.Game, error)
	Resume(ctx context.Context, sessionID string) (*entity.Game, error)
	Reset(ctx context.Context, sessionID string) (*entity.Game, error)
	Status(ctx context.Context, sessionID string) (*entity.Game, error)
}

type Server struct {
	logger *slog.Logger
	uGame  uGame
}

func New(logger *slog.Logger, uGame uGame) *Server {
	return &Server{
		logger: logger.With("component", "rest"),
		uGame:  uGame,
	}
}

// Handler - routes of the game API.
func (that *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /ping", that.handlePing)
	mux.HandleFunc("POST /play", that.handlePlay)
	mux.HandleFunc("POST /pause", that.handlePause)
	mux.HandleFunc("POST /resume", that.handleResume)
	mux.HandleFunc("POST /reset", that.handleReset)
	mux.HandleFunc("GET /status", that.handleStatus)

	return mux
}

// Start - serves until ctx is canceled, then shuts down gracefully.
func (that *Server) Start(ctx context.Context, port string) error {
	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      that.Handler(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  30 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("failed to start server: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shutdown server: %w", err)
	}

	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server stopped with error: %w", err)
	}

	return nil
}
