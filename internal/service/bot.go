package service

import (
	"github.com/rocketscienceinc/rps-backend/internal/entity"
)

type predictor interface {
	PredictCounter(history []entity.Move) entity.Move
}

type BotService interface {
	ChooseMove(game *entity.Game) entity.Move
}

type botService struct {
	predictor predictor
}

func NewBotService(predictor predictor) BotService {
	return &botService{
		predictor: predictor,
	}
}

// ChooseMove - counters the predicted next move of the human player.
func (that *botService) ChooseMove(game *entity.Game) entity.Move {
	return that.predictor.PredictCounter(game.HistoryView())
}
