package entity

import (
	"errors"
	"fmt"
	"strings"
)

// Order is how the move list is presented. It never changes game semantics.
type Order uint8

const (
	OrderAscending Order = iota
	OrderDescending
)

var ErrUnknownOrder = errors.New("unknown move order")

func (that Order) String() string {
	if that == OrderDescending {
		return "Descending"
	}

	return "Ascending"
}

func (that Order) Toggle() Order {
	if that == OrderDescending {
		return OrderAscending
	}

	return OrderDescending
}

func ParseOrder(value string) (Order, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "asc", "ascending":
		return OrderAscending, nil
	case "desc", "descending":
		return OrderDescending, nil
	default:
		return OrderAscending, fmt.Errorf("%w: %q", ErrUnknownOrder, value)
	}
}

// HistoryEntry is one recorded board snapshot. The first entry of every game has a zero Location.
type HistoryEntry struct {
	Board    Board    `json:"board"`
	Location Location `json:"location"`
}

// GameState is the whole state of one game session.
//
// The player to move is not stored: it is derived from Cursor parity, X always opens.
// History entries past Cursor only survive until the next committed move truncates them.
type GameState struct {
	History []HistoryEntry `json:"history"`
	Cursor  int            `json:"cursor"`
	Order   Order          `json:"order"`
}

func NewGameState(order Order) GameState {
	return GameState{
		History: []HistoryEntry{{}},
		Cursor:  0,
		Order:   order,
	}
}

func (that GameState) CurrentBoard() Board {
	return that.History[that.Cursor].Board
}

func (that GameState) XIsNext() bool {
	return that.Cursor%2 == 0
}

func (that GameState) NextPlayer() Cell {
	if that.XIsNext() {
		return PlayerX
	}

	return PlayerO
}

// Clone returns a copy that shares no memory with the receiver.
func (that GameState) Clone() GameState {
	history := make([]HistoryEntry, len(that.History))
	copy(history, that.History)
	that.History = history

	return that
}
