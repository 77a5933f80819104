package tictactoe

import (
	"fmt"
	"log/slog"

	"github.com/rocketscienceinc/tictactoe/internal/entity"
)

type botService interface {
	NextMove(board entity.Board, players entity.Players) (entity.Cell, bool)
}

// Reduce applies intent to a copy of game and returns the new state along with
// whether the intent was accepted. A rejected intent returns an unchanged copy.
func Reduce(game *entity.Game, intent Intent, bot botService) (*entity.Game, bool) {
	next := game.Clone()

	switch in := intent.(type) {
	case SelectSide:
		return next, next.SelectSide(in.Symbol)
	case SetMode:
		return next, next.SetMode(in.Computer)
	case Play:
		return next, next.ApplyMove(in.Row, in.Col)
	case RequestOpponentMove:
		return next, playOpponent(next, bot)
	case Reset:
		next.Reset()
		return next, true
	default:
		// Intent is sealed, so only a new intent type missing here can get this far.
		panic(fmt.Sprintf("tictactoe: unhandled intent %T", intent))
	}
}

func playOpponent(game *entity.Game, bot botService) bool {
	if bot == nil || !game.OpponentToMove() {
		return false
	}

	cell, ok := bot.NextMove(game.Board, game.Players)
	if !ok {
		return false
	}

	return game.ApplyMove(cell.Row, cell.Col)
}

// GameController holds a single game and feeds intents through Reduce.
// It does no locking; callers serialise Dispatch.
type GameController struct {
	logger *slog.Logger
	bot    botService

	game *entity.Game
}

func NewGameController(logger *slog.Logger, bot botService, game *entity.Game) *GameController {
	if game == nil {
		game = entity.NewGame()
	}

	return &GameController{
		logger: logger.With("component", "game_controller"),
		bot:    bot,
		game:   game,
	}
}

// Dispatch applies intent and returns a snapshot of the resulting state.
func (that *GameController) Dispatch(intent Intent) (*entity.Game, bool) {
	next, accepted := Reduce(that.game, intent, that.bot)
	if !accepted {
		that.logger.Debug("intent rejected", "intent", intent.String())
		return that.game.Clone(), false
	}

	that.game = next
	that.logger.Debug("intent accepted",
		"intent", intent.String(),
		"status", next.Result.Status,
		"turn", next.Turn,
	)

	return that.game.Clone(), true
}

// State returns a snapshot of the current game.
func (that *GameController) State() *entity.Game {
	return that.game.Clone()
}
