package tictactoe

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe/internal/entity"
	"github.com/rocketscienceinc/tictactoe/internal/service"
)

// fixedBot always answers with the same cell.
type fixedBot struct {
	cell  entity.Cell
	calls int
}

func (that *fixedBot) NextMove(_ entity.Board, _ entity.Players) (entity.Cell, bool) {
	that.calls++
	return that.cell, true
}

func newTestController(bot botService) *GameController {
	return NewGameController(slog.New(slog.NewTextHandler(io.Discard, nil)), bot, nil)
}

func dispatchAll(t *testing.T, controller *GameController, intents ...Intent) *entity.Game {
	t.Helper()

	var game *entity.Game
	for _, intent := range intents {
		var accepted bool
		game, accepted = controller.Dispatch(intent)
		require.Truef(t, accepted, "intent %s rejected", intent)
	}

	return game
}

func TestReduce(t *testing.T) {
	t.Run("Does not modify the input state", func(t *testing.T) {
		// Given: a game with x chosen
		game := entity.NewGame()
		require.True(t, game.SelectSide(entity.X))
		before := game.Clone()

		// When: a move is reduced
		next, accepted := Reduce(game, Play{Row: 1, Col: 1}, nil)

		// Then: only the returned state holds the move
		require.True(t, accepted)
		assert.Equal(t, entity.X, next.Board[1][1])
		assert.Equal(t, before, game)
	})

	t.Run("Rejected intent returns an equal state", func(t *testing.T) {
		// Given: a new game without sides
		game := entity.NewGame()

		// When: a move is reduced
		next, accepted := Reduce(game, Play{Row: 0, Col: 0}, nil)

		// Then: it is rejected and nothing changed
		assert.False(t, accepted)
		assert.Equal(t, game, next)
	})

	t.Run("Reset always succeeds", func(t *testing.T) {
		// Given: a fresh game
		game := entity.NewGame()

		// When: reset is reduced
		next, accepted := Reduce(game, Reset{}, nil)

		// Then: it is accepted and still fresh
		assert.True(t, accepted)
		assert.Equal(t, entity.NewGame(), next)
	})
}

func TestGameController_Dispatch(t *testing.T) {
	t.Run("Fresh game first move", func(t *testing.T) {
		// Given: a controller
		controller := newTestController(nil)

		// When: x is chosen and plays (0,0)
		game := dispatchAll(t, controller, SelectSide{Symbol: entity.X}, Play{Row: 0, Col: 0})

		// Then: o is next
		assert.Equal(t, entity.X, game.Board[0][0])
		assert.Equal(t, entity.O, game.Turn)
		assert.Equal(t, entity.StatusInProgress, game.Result.Status)
	})

	t.Run("Win via diagonal", func(t *testing.T) {
		// Given: a two-player controller
		controller := newTestController(nil)

		// When: x takes the main diagonal
		game := dispatchAll(t, controller,
			SetMode{Computer: false},
			SelectSide{Symbol: entity.X},
			Play{Row: 0, Col: 0}, Play{Row: 0, Col: 1},
			Play{Row: 1, Col: 1}, Play{Row: 0, Col: 2},
			Play{Row: 2, Col: 2},
		)

		// Then: x won on the diagonal
		assert.Equal(t, entity.StatusWon, game.Result.Status)
		assert.Equal(t, entity.X, game.Result.Winner)
		assert.Equal(t, []entity.Cell{{0, 0}, {1, 1}, {2, 2}}, game.Result.Line)

		// Then: further moves are ignored
		after, accepted := controller.Dispatch(Play{Row: 2, Col: 0})
		assert.False(t, accepted)
		assert.Equal(t, game, after)
	})

	t.Run("Opponent move uses the bot on its turn", func(t *testing.T) {
		// Given: a computer game where x has played the centre
		bot := &fixedBot{cell: entity.Cell{Row: 0, Col: 0}}
		controller := newTestController(bot)
		dispatchAll(t, controller, SetMode{Computer: true}, SelectSide{Symbol: entity.X}, Play{Row: 1, Col: 1})

		// When: the opponent move is requested
		game, accepted := controller.Dispatch(RequestOpponentMove{})

		// Then: the bot's cell holds o and x is next
		require.True(t, accepted)
		assert.Equal(t, 1, bot.calls)
		assert.Equal(t, entity.O, game.Board[0][0])
		assert.Equal(t, entity.X, game.Turn)
	})

	t.Run("Opponent move rejected when it is not the computer's turn", func(t *testing.T) {
		// Given: a computer game where x is to move
		bot := &fixedBot{cell: entity.Cell{Row: 0, Col: 0}}
		controller := newTestController(bot)
		before := dispatchAll(t, controller, SetMode{Computer: true}, SelectSide{Symbol: entity.X})

		// When: the opponent move is requested
		game, accepted := controller.Dispatch(RequestOpponentMove{})

		// Then: nothing happens and the bot is not asked
		assert.False(t, accepted)
		assert.Zero(t, bot.calls)
		assert.Equal(t, before, game)
	})

	t.Run("Opponent move rejected in a two-player game", func(t *testing.T) {
		// Given: a two-player game where o is to move
		bot := &fixedBot{cell: entity.Cell{Row: 0, Col: 0}}
		controller := newTestController(bot)
		before := dispatchAll(t, controller, SetMode{Computer: false}, SelectSide{Symbol: entity.X}, Play{Row: 1, Col: 1})

		// When: the opponent move is requested
		game, accepted := controller.Dispatch(RequestOpponentMove{})

		// Then: nothing happens
		assert.False(t, accepted)
		assert.Zero(t, bot.calls)
		assert.Equal(t, before, game)
	})

	t.Run("Opponent move rejected when the bot picks an occupied cell", func(t *testing.T) {
		// Given: a bot that wants the centre, which x already holds
		bot := &fixedBot{cell: entity.Cell{Row: 1, Col: 1}}
		controller := newTestController(bot)
		before := dispatchAll(t, controller, SetMode{Computer: true}, SelectSide{Symbol: entity.O}, Play{Row: 1, Col: 1})

		// When: the opponent move is requested
		game, accepted := controller.Dispatch(RequestOpponentMove{})

		// Then: the move is ignored
		assert.False(t, accepted)
		assert.Equal(t, before, game)
	})

	t.Run("Minimax blocks the open row", func(t *testing.T) {
		// Given: a computer game where x threatens the top row
		controller := newTestController(service.NewBotService())
		dispatchAll(t, controller,
			SetMode{Computer: true}, SelectSide{Symbol: entity.X},
			Play{Row: 0, Col: 0}, RequestOpponentMove{},
		)
		require.Equal(t, entity.O, controller.State().Board[1][1])

		dispatchAll(t, controller, Play{Row: 0, Col: 1})

		// When: the computer moves
		game := dispatchAll(t, controller, RequestOpponentMove{})

		// Then: it blocks at (0,2)
		assert.Equal(t, entity.O, game.Board[0][2])
	})

	t.Run("Reset clears the session", func(t *testing.T) {
		// Given: a computer game in progress
		controller := newTestController(service.NewBotService())
		dispatchAll(t, controller, SetMode{Computer: true}, SelectSide{Symbol: entity.O}, Play{Row: 2, Col: 2})

		// When: the game is reset
		game := dispatchAll(t, controller, Reset{})

		// Then: board, turn, sides and mode are cleared
		assert.Equal(t, entity.NewGame(), game)

		// Then: a new session can be set up
		dispatchAll(t, controller, SetMode{Computer: false}, SelectSide{Symbol: entity.X})
	})

	t.Run("Snapshots are independent of the controller", func(t *testing.T) {
		// Given: a controller with a move played
		controller := newTestController(nil)
		game := dispatchAll(t, controller, SelectSide{Symbol: entity.X}, Play{Row: 0, Col: 0})

		// When: the snapshot is changed
		game.Board[2][2] = entity.O

		// Then: the controller state is untouched
		assert.Equal(t, entity.Empty, controller.State().Board[2][2])
	})
}

func TestIntent_String(t *testing.T) {
	assert.Equal(t, "select_side(x)", SelectSide{Symbol: entity.X}.String())
	assert.Equal(t, "set_mode(computer=true)", SetMode{Computer: true}.String())
	assert.Equal(t, "play(1,2)", Play{Row: 1, Col: 2}.String())
	assert.Equal(t, "request_opponent_move", RequestOpponentMove{}.String())
	assert.Equal(t, "reset", Reset{}.String())
}
