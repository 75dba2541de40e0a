package tui

import (
	"fmt"
	"strings"

	"github.com/rocketscienceinc/tictactoe-history/internal/entity"
	"github.com/rocketscienceinc/tictactoe-history/internal/tictactoe"
	"github.com/rocketscienceinc/tictactoe-history/internal/usecase"
)

const (
	rowSeparator  = "---+---+---"
	currentMarker = "*"
	orderLabel    = "Order: %s"
)

// RenderText draws a snapshot without any styling: status line, board, order and move list.
// Cells of the winning line are bracketed.
func RenderText(snapshot usecase.Snapshot) string {
	var out strings.Builder

	out.WriteString(snapshot.Status)
	out.WriteString("\n\n")

	for row := 0; row < entity.BoardRows; row++ {
		if row > 0 {
			out.WriteString(rowSeparator)
			out.WriteString("\n")
		}

		cells := make([]string, 0, entity.BoardCols)
		for col := 0; col < entity.BoardCols; col++ {
			index := row*entity.BoardCols + col
			cells = append(cells, cellText(snapshot.Board[index], snapshot.IsWinningCell(index)))
		}

		out.WriteString(strings.Join(cells, "|"))
		out.WriteString("\n")
	}

	out.WriteString("\n")
	out.WriteString(fmt.Sprintf(orderLabel, snapshot.Order))
	out.WriteString("\n\n")

	for _, move := range snapshot.Moves {
		marker := " "
		if move.Current {
			marker = currentMarker
		}

		out.WriteString(fmt.Sprintf("%s %s\n", marker, moveText(move)))
	}

	return out.String()
}

func cellText(cell entity.Cell, winning bool) string {
	mark := cell.String()
	if mark == "" {
		mark = " "
	}

	if winning {
		return "[" + mark + "]"
	}

	return " " + mark + " "
}

func moveText(move tictactoe.MoveItem) string {
	text := fmt.Sprintf("%d. %s", move.Ordinal, move.Label)
	if move.Location != "" {
		text += " " + move.Location
	}

	return text
}
