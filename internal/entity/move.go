package entity

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rocketscienceinc/rps-backend/internal/apperror"
)

type Move uint8

const (
	Rock Move = iota
	Paper
	Scissors
)

// MovesCount - number of moves in the enumeration.
const MovesCount = 3

const (
	ResultWin  = "win"
	ResultLose = "lose"
	ResultTie  = "tie"
)

// Moves - every move in tie-break priority order.
var Moves = [MovesCount]Move{Rock, Paper, Scissors}

var (
	moveCodes = [MovesCount]string{"R", "P", "S"}
	moveNames = [MovesCount]string{"Rock", "Paper", "Scissors"}

	// counterMoves[m] beats m.
	counterMoves = [MovesCount]Move{
		Rock:     Paper,
		Paper:    Scissors,
		Scissors: Rock,
	}
)

// InvalidMoveError - returned when a symbol is not one of R, P, S.
type InvalidMoveError struct {
	Symbol string
}

func (that *InvalidMoveError) Error() string {
	return fmt.Sprintf("%s: %q", apperror.ErrInvalidMove, that.Symbol)
}

func (that *InvalidMoveError) Unwrap() error {
	return apperror.ErrInvalidMove
}

// ParseMove - accepts a short code or a full name, case-insensitive.
func ParseMove(symbol string) (Move, error) {
	trimmed := strings.TrimSpace(symbol)
	for _, move := range Moves {
		if strings.EqualFold(trimmed, moveCodes[move]) || strings.EqualFold(trimmed, moveNames[move]) {
			return move, nil
		}
	}

	return Rock, &InvalidMoveError{Symbol: symbol}
}

func (that Move) IsValid() bool {
	return that < MovesCount
}

// Code - short code of the move, "R", "P" or "S".
func (that Move) Code() string {
	if !that.IsValid() {
		return "?"
	}
	return moveCodes[that]
}

func (that Move) String() string {
	if !that.IsValid() {
		return fmt.Sprintf("Move(%d)", uint8(that))
	}
	return moveNames[that]
}

// Counter - the move that defeats this one.
func (that Move) Counter() Move {
	return counterMoves[that]
}

func (that Move) Beats(other Move) bool {
	return counterMoves[other] == that
}

// Outcome - result of a round from the point of view of the player making this move.
func (that Move) Outcome(opponent Move) string {
	switch {
	case that == opponent:
		return ResultTie
	case that.Beats(opponent):
		return ResultWin
	default:
		return ResultLose
	}
}

func (that Move) MarshalJSON() ([]byte, error) {
	if !that.IsValid() {
		return nil, &InvalidMoveError{Symbol: that.String()}
	}
	return json.Marshal(that.Code())
}

func (that *Move) UnmarshalJSON(data []byte) error {
	var symbol string
	if err := json.Unmarshal(data, &symbol); err != nil {
		return fmt.Errorf("move must be a string: %w", err)
	}

	move, err := ParseMove(symbol)
	if err != nil {
		return err
	}

	*that = move
	return nil
}
