package entity

// Status is the lifecycle state of a game. Won and Draw are terminal.
type Status string

const (
	StatusInProgress Status = "in_progress"
	StatusWon        Status = "won"
	StatusDraw       Status = "draw"
)

// Result is the outcome of evaluating a board. Winner and Line are set only when Status is StatusWon.
type Result struct {
	Status Status `json:"status"`
	Winner Symbol `json:"winner,omitempty"`
	Line   []Cell `json:"winning_cells"`
}

func (that Result) IsTerminal() bool {
	return that.Status == StatusWon || that.Status == StatusDraw
}

func InProgress() Result {
	return Result{Status: StatusInProgress, Line: []Cell{}}
}

// Evaluate checks the board for a completed line, then for a draw.
func Evaluate(board Board) Result {
	for _, line := range WinLines {
		a, b, c := board.At(line[0]), board.At(line[1]), board.At(line[2])
		if a != Empty && a == b && b == c {
			return Result{
				Status: StatusWon,
				Winner: a,
				Line:   []Cell{line[0], line[1], line[2]},
			}
		}
	}

	// the game continues while any cell is free
	if !board.IsFull() {
		return InProgress()
	}

	return Result{Status: StatusDraw, Line: []Cell{}}
}
