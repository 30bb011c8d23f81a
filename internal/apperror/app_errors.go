package apperror

import "errors"

var (
	ErrInvalidMove  = errors.New("invalid move")
	ErrGamePaused   = errors.New("game is paused")
	ErrGameNotFound = errors.New("game not found")
	ErrEmptySession = errors.New("session id is empty")
)
