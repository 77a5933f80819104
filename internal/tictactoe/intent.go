package tictactoe

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe/internal/entity"
)

// Intent is one of the closed set of requests a caller can send to a game.
type Intent interface {
	fmt.Stringer

	isIntent()
}

type SelectSide struct {
	Symbol entity.Symbol
}

type SetMode struct {
	Computer bool
}

type Play struct {
	Row int
	Col int
}

type RequestOpponentMove struct{}

type Reset struct{}

func (SelectSide) isIntent()          {}
func (SetMode) isIntent()             {}
func (Play) isIntent()                {}
func (RequestOpponentMove) isIntent() {}
func (Reset) isIntent()               {}

func (that SelectSide) String() string { return fmt.Sprintf("select_side(%s)", that.Symbol) }
func (that SetMode) String() string    { return fmt.Sprintf("set_mode(computer=%t)", that.Computer) }
func (that Play) String() string       { return fmt.Sprintf("play(%d,%d)", that.Row, that.Col) }

func (RequestOpponentMove) String() string { return "request_opponent_move" }
func (Reset) String() string               { return "reset" }
