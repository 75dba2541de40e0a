package tictactoe

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-history/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-history/internal/entity"
)

// NewGame returns the state of a fresh game: a single empty entry with X to move.
func NewGame(order entity.Order) entity.GameState {
	return entity.NewGameState(order)
}

// ApplyMove plays the current mover's mark on cell and returns the new state.
// An illegal move returns the state unchanged, see ValidateMove for the reasons.
func ApplyMove(state entity.GameState, cell int) entity.GameState {
	if err := ValidateMove(state, cell); err != nil {
		return state
	}

	entry := entity.HistoryEntry{
		Board:    state.CurrentBoard().With(cell, state.NextPlayer()),
		Location: entity.LocationOf(cell),
	}

	state.History = truncateAndAppend(state.History, state.Cursor, entry)
	state.Cursor = len(state.History) - 1

	return state
}

// JumpTo moves the cursor to a recorded step. History is left as is,
// so jumping forward again is possible until the next move is committed.
func JumpTo(state entity.GameState, step int) entity.GameState {
	if err := ValidateJump(state, step); err != nil {
		return state
	}

	state.Cursor = step

	return state
}

func ToggleDisplayOrder(state entity.GameState) entity.GameState {
	state.Order = state.Order.Toggle()

	return state
}

// ValidateMove - checks if the move is legal at the current cursor.
func ValidateMove(state entity.GameState, cell int) error {
	if err := validateCursor(state); err != nil {
		return err
	}

	if !entity.IsValidCell(cell) {
		return fmt.Errorf("%w: cell %d", apperror.ErrInvalidCell, cell)
	}

	board := state.CurrentBoard()

	if Evaluate(board).IsFinished() {
		return apperror.ErrGameFinished
	}

	if board[cell] != entity.EmptyCell {
		return fmt.Errorf("%w: cell %d", apperror.ErrCellOccupied, cell)
	}

	return nil
}

// ValidateJump - checks if step is a recorded history index.
func ValidateJump(state entity.GameState, step int) error {
	if step < 0 || step >= len(state.History) {
		return fmt.Errorf("%w: step %d of %d", apperror.ErrInvalidStep, step, len(state.History))
	}

	return nil
}

func validateCursor(state entity.GameState) error {
	if state.Cursor < 0 || state.Cursor >= len(state.History) {
		return fmt.Errorf("%w: cursor %d of %d", apperror.ErrInvalidStep, state.Cursor, len(state.History))
	}

	return nil
}

// truncateAndAppend keeps history[0..cursor], drops the abandoned branch and appends entry.
// It always allocates: the slice of the previous state is never written.
func truncateAndAppend(history []entity.HistoryEntry, cursor int, entry entity.HistoryEntry) []entity.HistoryEntry {
	next := make([]entity.HistoryEntry, cursor+1, cursor+2)
	copy(next, history[:cursor+1])

	return append(next, entry)
}
