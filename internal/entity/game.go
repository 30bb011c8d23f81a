package entity

// Game - state of one session: the human player's move history and the running score.
type Game struct {
	ID          string `json:"id"`
	History     []Move `json:"opponent_history"`
	PlayerScore int    `json:"player_score"`
	BotScore    int    `json:"opponent_score"`
	TieScore    int    `json:"tie_score"`
	IsPaused    bool   `json:"is_paused"`

	LastResult     string `json:"last_result"`
	LastPlayerMove *Move  `json:"last_player_move,omitempty"`
	LastBotMove    *Move  `json:"last_opponent_move,omitempty"`
}

// Round - outcome of a single play.
type Round struct {
	Result     string `json:"result"`
	PlayerMove Move   `json:"player_move"`
	BotMove    Move   `json:"opponent_move"`
	Game       *Game  `json:"game_state"`
}

func NewGame(id string) *Game {
	return &Game{
		ID:      id,
		History: []Move{},
	}
}

// HistoryView - copy of the history, safe to hand to the predictor.
func (that *Game) HistoryView() []Move {
	view := make([]Move, len(that.History))
	copy(view, that.History)
	return view
}

// PlayRound - records the player's move, scores it against the bot's move and returns the round.
func (that *Game) PlayRound(playerMove, botMove Move) *Round {
	that.History = append(that.History, playerMove)

	result := playerMove.Outcome(botMove)
	switch result {
	case ResultWin:
		that.PlayerScore++
	case ResultLose:
		that.BotScore++
	default:
		that.TieScore++
	}

	that.LastResult = result
	that.LastPlayerMove = &playerMove
	that.LastBotMove = &botMove

	return &Round{
		Result:     result,
		PlayerMove: playerMove,
		BotMove:    botMove,
		Game:       that,
	}
}

func (that *Game) Pause() {
	that.IsPaused = true
}

func (that *Game) Resume() {
	that.IsPaused = false
}
