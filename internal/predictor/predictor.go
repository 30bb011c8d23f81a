// Package predictor guesses the next move of a player from their move history
// and answers with the move that beats it.
package predictor

import (
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/rocketscienceinc/rps-backend/internal/entity"
)

const (
	// DefaultWindow - pattern length used when none is configured.
	DefaultWindow = 5

	// BootstrapMove - assumed next move when there is no history at all.
	BootstrapMove = entity.Rock
)

// Source - random number source, *rand.Rand satisfies it.
type Source interface {
	Intn(n int) int
}

// PatternTable - pattern key to count of each observed next move, indexed by entity.Move.
type PatternTable map[string][entity.MovesCount]int

type Predictor struct {
	window int
	source Source
}

type Option func(*Predictor)

// WithWindow - sets pattern length, values below 1 keep the default.
func WithWindow(window int) Option {
	return func(that *Predictor) {
		if window >= 1 {
			that.window = window
		}
	}
}

func WithSource(source Source) Option {
	return func(that *Predictor) {
		if source != nil {
			that.source = source
		}
	}
}

func New(opts ...Option) *Predictor {
	predictor := &Predictor{
		window: DefaultWindow,
		source: NewLockedSource(time.Now().UnixNano()),
	}

	for _, opt := range opts {
		opt(predictor)
	}

	return predictor
}

func (that *Predictor) Window() int {
	return that.window
}

// PredictCounter - returns the move that beats the predicted next move of history.
func (that *Predictor) PredictCounter(history []entity.Move) entity.Move {
	if len(history) == 0 {
		return BootstrapMove.Counter()
	}

	return that.PredictNext(history).Counter()
}

// PredictNext - predicts the move that follows history.
func (that *Predictor) PredictNext(history []entity.Move) entity.Move {
	if len(history) < that.window {
		return that.randomMove()
	}

	table := BuildTable(history, that.window)

	counts, ok := table[PatternKey(history[len(history)-that.window:])]
	if !ok {
		return that.randomMove()
	}

	return mostFrequent(counts)
}

func (that *Predictor) randomMove() entity.Move {
	return entity.Moves[that.source.Intn(entity.MovesCount)]
}

// BuildTable - counts what followed every window of length n, the last window has no successor and is skipped.
func BuildTable(history []entity.Move, n int) PatternTable {
	table := make(PatternTable)

	for i := 0; i+n < len(history); i++ {
		key := PatternKey(history[i : i+n])
		counts := table[key]
		counts[history[i+n]]++
		table[key] = counts
	}

	return table
}

// PatternKey - concatenated short codes, e.g. "RPRPR".
func PatternKey(pattern []entity.Move) string {
	var builder strings.Builder
	builder.Grow(len(pattern))

	for _, move := range pattern {
		builder.WriteString(move.Code())
	}

	return builder.String()
}

// mostFrequent - ties resolve in entity.Moves order: Rock, then Paper, then Scissors.
func mostFrequent(counts [entity.MovesCount]int) entity.Move {
	best := entity.Moves[0]
	for _, move := range entity.Moves[1:] {
		if counts[move] > counts[best] {
			best = move
		}
	}

	return best
}

// ParseHistory - strict conversion of raw symbols, fails on the first unknown one.
func ParseHistory(symbols []string) ([]entity.Move, error) {
	history := make([]entity.Move, 0, len(symbols))

	for i, symbol := range symbols {
		move, err := entity.ParseMove(symbol)
		if err != nil {
			return nil, fmt.Errorf("history position %d: %w", i, err)
		}
		history = append(history, move)
	}

	return history, nil
}

// LockedSource - *rand.Rand guarded by a mutex so one predictor can serve many sessions.
type LockedSource struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

func NewLockedSource(seed int64) *LockedSource {
	return &LockedSource{
		rnd: rand.New(rand.NewSource(seed)), //nolint: gosec // game randomness
	}
}

func (that *LockedSource) Intn(n int) int {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.rnd.Intn(n)
}
