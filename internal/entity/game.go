package entity

// Mode records who controls Player2.
type Mode string

const (
	ModeUnset    Mode = ""
	ModeHuman    Mode = "human"
	ModeComputer Mode = "computer"
)

// Players maps the two roles to complementary symbols. The zero value means no side was chosen yet.
type Players struct {
	Player1 Symbol `json:"player1"`
	Player2 Symbol `json:"player2"`
}

func (that Players) Chosen() bool {
	return that.Player1.IsMark() && that.Player2 == that.Player1.Opponent()
}

// Game is the whole state of one session. Every transition returns false and
// leaves the game untouched when its preconditions do not hold.
type Game struct {
	Board   Board   `json:"board"`
	Players Players `json:"players"`
	Mode    Mode    `json:"mode"`
	Turn    Symbol  `json:"turn"`
	Result  Result  `json:"result"`
}

func NewGame() *Game {
	return &Game{
		Board:  Board{},
		Mode:   ModeUnset,
		Turn:   Empty,
		Result: InProgress(),
	}
}

// Clone returns a deep copy of the game.
func (that *Game) Clone() *Game {
	clone := *that
	clone.Result.Line = append([]Cell{}, that.Result.Line...)

	return &clone
}

// Started reports whether any move has been made.
func (that *Game) Started() bool {
	return !that.Board.IsEmpty()
}

func (that *Game) IsOver() bool {
	return that.Result.IsTerminal()
}

func (that *Game) IsAgainstComputer() bool {
	return that.Mode == ModeComputer
}

// ComputerSymbol returns the symbol the computer plays, or Empty if no computer takes part.
func (that *Game) ComputerSymbol() Symbol {
	if !that.IsAgainstComputer() || !that.Players.Chosen() {
		return Empty
	}

	return that.Players.Player2
}

// OpponentToMove reports whether the computer is due to play next.
func (that *Game) OpponentToMove() bool {
	computer := that.ComputerSymbol()

	return computer != Empty && !that.IsOver() && that.Turn == computer
}

// SelectSide assigns symbol to Player1 and its opponent to Player2. Player1 moves first.
func (that *Game) SelectSide(symbol Symbol) bool {
	if !symbol.IsMark() || that.Players.Chosen() || that.Started() {
		return false
	}

	that.Players = Players{Player1: symbol, Player2: symbol.Opponent()}
	that.Turn = symbol

	return true
}

// SetMode records whether Player2 is computer controlled. It may run before or after SelectSide.
func (that *Game) SetMode(computer bool) bool {
	if that.Mode != ModeUnset || that.Started() {
		return false
	}

	that.Mode = ModeHuman
	if computer {
		that.Mode = ModeComputer
	}

	return true
}

// ApplyMove places the current turn's symbol at (row, col).
func (that *Game) ApplyMove(row, col int) bool {
	if !that.Players.Chosen() || that.IsOver() {
		return false
	}

	if !that.Board.Place(Cell{Row: row, Col: col}, that.Turn) {
		return false
	}

	that.Result = Evaluate(that.Board)
	if !that.IsOver() {
		that.Turn = that.Turn.Opponent()
	}

	return true
}

// Reset starts a fresh session. Sides and mode must be chosen again.
func (that *Game) Reset() {
	*that = *NewGame()
}
