package tictactoe

import "github.com/rocketscienceinc/tictactoe-history/internal/entity"

// WinCombos lists every winning line: rows, then columns, then diagonals.
// Evaluate relies on this order.
var WinCombos = [][3]int{
	{0, 1, 2},
	{3, 4, 5},
	{6, 7, 8},
	{0, 3, 6},
	{1, 4, 7},
	{2, 5, 8},
	{0, 4, 8},
	{2, 4, 6},
}

// Evaluate reports the outcome of a board. The first complete line in WinCombos order wins,
// and a win is reported before a draw even when the board is full.
func Evaluate(board entity.Board) entity.Outcome {
	for _, combo := range WinCombos {
		a, b, c := board[combo[0]], board[combo[1]], board[combo[2]]
		if a != entity.EmptyCell && a == b && b == c {
			return entity.Outcome{
				Kind:   entity.OutcomeWin,
				Player: a,
				Line:   []int{combo[0], combo[1], combo[2]},
			}
		}
	}

	if board.IsFull() {
		return entity.Outcome{Kind: entity.OutcomeDraw}
	}

	return entity.Outcome{Kind: entity.OutcomeInProgress}
}
