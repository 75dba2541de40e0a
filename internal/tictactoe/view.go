package tictactoe

import (
	"fmt"
	"slices"

	"github.com/rocketscienceinc/tictactoe-history/internal/entity"
)

const (
	labelGameStart = "Go to game start"
	labelMove      = "Go to move #%d"

	statusWinner = "Winner: %s"
	statusDraw   = "Draw: no one wins"
	statusNext   = "Next player: %s"
)

// MoveItem is one entry of the move list as a view presents it.
type MoveItem struct {
	Ordinal  int    `json:"ordinal"`
	Label    string `json:"label"`
	Location string `json:"location"`
	Current  bool   `json:"current"`
}

// BoardAt returns the board recorded at step, or an empty board for an unknown step.
func BoardAt(state entity.GameState, step int) entity.Board {
	if ValidateJump(state, step) != nil {
		return entity.Board{}
	}

	return state.History[step].Board
}

func CurrentBoard(state entity.GameState) entity.Board {
	return BoardAt(state, state.Cursor)
}

// WinningLine returns the cells of the completed line at the cursor, empty when nobody has won.
func WinningLine(state entity.GameState) []int {
	outcome := Evaluate(CurrentBoard(state))
	if !outcome.IsWin() {
		return []int{}
	}

	return outcome.Line
}

func StatusText(state entity.GameState) string {
	outcome := Evaluate(CurrentBoard(state))

	switch outcome.Kind {
	case entity.OutcomeWin:
		return fmt.Sprintf(statusWinner, outcome.Player)
	case entity.OutcomeDraw:
		return statusDraw
	default:
		return fmt.Sprintf(statusNext, state.NextPlayer())
	}
}

// MoveList describes every history entry. Descending order reverses the list here,
// the history itself is never reordered.
func MoveList(state entity.GameState) []MoveItem {
	moves := make([]MoveItem, 0, len(state.History))

	for ordinal, entry := range state.History {
		label := labelGameStart
		if ordinal > 0 {
			label = fmt.Sprintf(labelMove, ordinal)
		}

		moves = append(moves, MoveItem{
			Ordinal:  ordinal,
			Label:    label,
			Location: entry.Location.String(),
			Current:  ordinal == state.Cursor,
		})
	}

	if state.Order == entity.OrderDescending {
		slices.Reverse(moves)
	}

	return moves
}
