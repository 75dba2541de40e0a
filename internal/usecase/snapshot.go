package usecase

import (
	"time"

	"github.com/rocketscienceinc/tictactoe-history/internal/entity"
	"github.com/rocketscienceinc/tictactoe-history/internal/tictactoe"
)

// Snapshot is everything a view needs to render one session at its cursor.
type Snapshot struct {
	SessionID   string               `json:"session_id"`
	Board       entity.Board         `json:"board"`
	WinningLine []int                `json:"winning_line"`
	Status      string               `json:"status"`
	Finished    bool                 `json:"finished"`
	NextPlayer  entity.Cell          `json:"next_player"`
	Moves       []tictactoe.MoveItem `json:"moves"`
	Cursor      int                  `json:"cursor"`
	HistoryLen  int                  `json:"history_len"`
	Order       entity.Order         `json:"order"`
	UpdatedAt   time.Time            `json:"updated_at"`
}

func newSnapshot(session *entity.Session) Snapshot {
	state := session.State
	board := tictactoe.CurrentBoard(state)

	return Snapshot{
		SessionID:   session.ID,
		Board:       board,
		WinningLine: tictactoe.WinningLine(state),
		Status:      tictactoe.StatusText(state),
		Finished:    tictactoe.Evaluate(board).IsFinished(),
		NextPlayer:  state.NextPlayer(),
		Moves:       tictactoe.MoveList(state),
		Cursor:      state.Cursor,
		HistoryLen:  len(state.History),
		Order:       state.Order,
		UpdatedAt:   session.UpdatedAt,
	}
}

func (that Snapshot) IsWinningCell(cell int) bool {
	for _, index := range that.WinningLine {
		if index == cell {
			return true
		}
	}

	return false
}
