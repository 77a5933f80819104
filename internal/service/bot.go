package service

import (
	"github.com/rocketscienceinc/tictactoe/internal/entity"
)

const (
	scoreWin  = 10
	scoreLoss = -10
	scoreDraw = 0
)

type BotService interface {
	// NextMove returns the cell the computer plays, or false when the board has no free cell.
	NextMove(board entity.Board, players entity.Players) (entity.Cell, bool)
}

type botService struct{}

func NewBotService() BotService {
	return &botService{}
}

func (that *botService) NextMove(board entity.Board, players entity.Players) (entity.Cell, bool) {
	return ComputeOpponentMove(board, players)
}

// ComputeOpponentMove runs a full minimax search for Player2 (the computer) against Player1.
// Scores are not depth adjusted; among equal candidates the first in row-major order wins.
func ComputeOpponentMove(board entity.Board, players entity.Players) (entity.Cell, bool) {
	computer, human := players.Player2, players.Player1

	var (
		best      entity.Cell
		bestScore int
		found     bool
	)

	// board is a copy, so the search below never touches the caller's grid
	for _, cell := range board.EmptyCells() {
		board[cell.Row][cell.Col] = computer
		score := minimax(&board, computer, human, false)
		board[cell.Row][cell.Col] = entity.Empty

		if !found || score > bestScore {
			best, bestScore, found = cell, score, true
		}
	}

	return best, found
}

func minimax(board *entity.Board, computer, human entity.Symbol, maximizing bool) int {
	switch result := entity.Evaluate(*board); result.Status {
	case entity.StatusWon:
		if result.Winner == computer {
			return scoreWin
		}
		return scoreLoss
	case entity.StatusDraw:
		return scoreDraw
	case entity.StatusInProgress:
	}

	mover := human
	best := scoreWin + 1
	if maximizing {
		mover = computer
		best = scoreLoss - 1
	}

	for _, cell := range board.EmptyCells() {
		board[cell.Row][cell.Col] = mover
		score := minimax(board, computer, human, !maximizing)
		board[cell.Row][cell.Col] = entity.Empty

		if maximizing && score > best || !maximizing && score < best {
			best = score
		}
	}

	return best
}
