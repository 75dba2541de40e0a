package tui

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rocketscienceinc/tictactoe-history/internal/entity"
	"github.com/rocketscienceinc/tictactoe-history/internal/usecase"
)

const title = "Tic-Tac-Toe"

type sessions interface {
	CellClicked(ctx context.Context, id string, cell int) (usecase.Snapshot, error)
	MoveSelected(ctx context.Context, id string, step int) (usecase.Snapshot, error)
	ToggleOrder(ctx context.Context, id string) (usecase.Snapshot, error)
}

type focus uint8

const (
	focusBoard focus = iota
	focusMoves
)

type snapshotMsg struct {
	snapshot usecase.Snapshot
}

type sessionClosedMsg struct{}

type errMsg struct {
	err error
}

// Model is the terminal view of one session.
//
// It never changes the game itself: key presses are sent to the session manager and the
// screen is redrawn from the snapshots that arrive on the subscription.
type Model struct {
	ctx    context.Context
	logger *slog.Logger

	sessions  sessions
	sessionID string
	updates   <-chan usecase.Snapshot

	keys keyMap
	help help.Model

	snapshot      usecase.Snapshot
	focus         focus
	boardCursor   int
	moveSelection int // ordinal of the highlighted move list entry
	err           error
	quitting      bool
}

func New(
	ctx context.Context,
	logger *slog.Logger,
	sessions sessions,
	sessionID string,
	updates <-chan usecase.Snapshot,
) *Model {
	return &Model{
		ctx:    ctx,
		logger: logger.With("component", "tui"),

		sessions:  sessions,
		sessionID: sessionID,
		updates:   updates,

		keys:        newKeyMap(),
		help:        help.New(),
		boardCursor: entity.BoardSize / 2,
	}
}

func (m *Model) Init() tea.Cmd {
	return m.waitForSnapshot()
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case snapshotMsg:
		m.snapshot = msg.snapshot
		m.err = nil

		if m.focus == focusBoard || m.moveSelection >= m.snapshot.HistoryLen {
			m.moveSelection = m.snapshot.Cursor
		}

		return m, m.waitForSnapshot()

	case sessionClosedMsg:
		m.logger.Info("session closed, leaving")
		m.quitting = true
		return m, tea.Quit

	case errMsg:
		m.logger.Error("session operation failed", "error", msg.err)
		m.err = msg.err

	case tea.WindowSizeMsg:
		m.help.Width = msg.Width

	case tea.KeyMsg:
		return m, m.handleKey(msg)
	}

	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll

	case key.Matches(msg, m.keys.Focus):
		if m.focus == focusBoard {
			m.focus = focusMoves
			m.moveSelection = m.snapshot.Cursor
		} else {
			m.focus = focusBoard
		}

	case key.Matches(msg, m.keys.Order):
		return m.dispatch(func(ctx context.Context, id string) (usecase.Snapshot, error) {
			return m.sessions.ToggleOrder(ctx, id)
		})

	case key.Matches(msg, m.keys.Cell):
		cell := int(msg.String()[0] - '1')
		m.boardCursor = cell
		return m.playCell(cell)

	case key.Matches(msg, m.keys.Select):
		if m.focus == focusMoves {
			step := m.moveSelection
			return m.dispatch(func(ctx context.Context, id string) (usecase.Snapshot, error) {
				return m.sessions.MoveSelected(ctx, id, step)
			})
		}
		return m.playCell(m.boardCursor)

	case key.Matches(msg, m.keys.Up):
		m.navigate(-1, 0)
	case key.Matches(msg, m.keys.Down):
		m.navigate(1, 0)
	case key.Matches(msg, m.keys.Left):
		m.navigate(0, -1)
	case key.Matches(msg, m.keys.Right):
		m.navigate(0, 1)
	}

	return nil
}

func (m *Model) playCell(cell int) tea.Cmd {
	return m.dispatch(func(ctx context.Context, id string) (usecase.Snapshot, error) {
		return m.sessions.CellClicked(ctx, id, cell)
	})
}

// dispatch runs a session operation off the update loop. The result is not used here,
// the new state comes back through the subscription.
func (m *Model) dispatch(operation func(ctx context.Context, id string) (usecase.Snapshot, error)) tea.Cmd {
	ctx, id := m.ctx, m.sessionID

	return func() tea.Msg {
		if _, err := operation(ctx, id); err != nil {
			return errMsg{err: err}
		}

		return nil
	}
}

func (m *Model) waitForSnapshot() tea.Cmd {
	updates := m.updates

	return func() tea.Msg {
		snapshot, ok := <-updates
		if !ok {
			return sessionClosedMsg{}
		}

		return snapshotMsg{snapshot: snapshot}
	}
}

func (m *Model) navigate(rows, cols int) {
	if m.focus == focusMoves {
		m.moveSelectionBy(rows)
		return
	}

	row := m.boardCursor/entity.BoardCols + rows
	col := m.boardCursor%entity.BoardCols + cols
	if row < 0 || row >= entity.BoardRows || col < 0 || col >= entity.BoardCols {
		return
	}

	m.boardCursor = row*entity.BoardCols + col
}

// moveSelectionBy steps through the move list as displayed, so up always goes up the screen.
func (m *Model) moveSelectionBy(delta int) {
	moves := m.snapshot.Moves
	if len(moves) == 0 {
		return
	}

	position := 0
	for i, move := range moves {
		if move.Ordinal == m.moveSelection {
			position = i
			break
		}
	}

	position = max(0, min(len(moves)-1, position+delta))
	m.moveSelection = moves[position].Ordinal
}

func (m *Model) View() string {
	if m.quitting {
		return ""
	}

	if m.snapshot.SessionID == "" {
		return "Loading..."
	}

	boardPane, movesPane := PaneStyle, PaneStyle
	if m.focus == focusBoard {
		boardPane = FocusedPaneStyle
	} else {
		movesPane = FocusedPaneStyle
	}

	body := lipgloss.JoinHorizontal(lipgloss.Top,
		boardPane.Render(m.renderBoard()),
		" ",
		movesPane.Render(m.renderMoves()),
	)

	parts := []string{
		TitleStyle.Render(title),
		StatusStyle.Render(m.snapshot.Status),
		body,
	}

	if m.err != nil {
		parts = append(parts, ErrorStyle.Render("Error: "+m.err.Error()))
	}

	parts = append(parts, m.help.View(m.keys))

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m *Model) renderBoard() string {
	rows := make([]string, 0, entity.BoardRows*2-1)
	separator := GridStyle.Render("|")

	for row := 0; row < entity.BoardRows; row++ {
		if row > 0 {
			rows = append(rows, GridStyle.Render(rowSeparator))
		}

		cells := make([]string, 0, entity.BoardCols)
		for col := 0; col < entity.BoardCols; col++ {
			cells = append(cells, m.renderCell(row*entity.BoardCols+col))
		}

		rows = append(rows, strings.Join(cells, separator))
	}

	return strings.Join(rows, "\n")
}

// renderCell brackets winning cells and, while the board has focus, parenthesises the cursor.
func (m *Model) renderCell(index int) string {
	cell := m.snapshot.Board[index]
	winning := m.snapshot.IsWinningCell(index)
	text := cellText(cell, winning)

	style := MoveStyle
	switch cell {
	case entity.PlayerX:
		style = PlayerXStyle
	case entity.PlayerO:
		style = PlayerOStyle
	}

	if winning {
		style = WinningCellStyle
	}

	if m.focus == focusBoard && index == m.boardCursor {
		if !winning {
			text = "(" + text[1:len(text)-1] + ")"
		}
		style = style.Inherit(CursorCellStyle)
	}

	return style.Render(text)
}

func (m *Model) renderMoves() string {
	lines := []string{
		InfoStyle.Render(fmt.Sprintf(orderLabel, m.snapshot.Order)),
		"",
	}

	for _, move := range m.snapshot.Moves {
		pointer := " "
		if m.focus == focusMoves && move.Ordinal == m.moveSelection {
			pointer = ">"
		}

		marker := " "
		style := MoveStyle
		if move.Current {
			marker = currentMarker
			style = CurrentMoveStyle
		}

		lines = append(lines, pointer+marker+" "+style.Render(moveText(move)))
	}

	return strings.Join(lines, "\n")
}
