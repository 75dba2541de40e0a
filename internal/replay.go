package application

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/coder/quartz"

	"github.com/rocketscienceinc/tictactoe-history/internal/entity"
	"github.com/rocketscienceinc/tictactoe-history/internal/repository"
	"github.com/rocketscienceinc/tictactoe-history/internal/tui"
	"github.com/rocketscienceinc/tictactoe-history/internal/usecase"
)

// NoJump leaves the cursor on the last applied move.
const NoJump = -1

type ReplayOptions struct {
	Order entity.Order
	Moves []int
	Jump  int
}

// Replay plays moves through a fresh session without a terminal UI and writes the final
// rendering to out. Illegal moves are skipped the same way a click on them would be.
func Replay(ctx context.Context, logger *slog.Logger, clock quartz.Clock, out io.Writer, opts ReplayOptions) error {
	log := logger.With("component", "replay")

	sessionManager := usecase.NewSessionManager(logger, clock, repository.NewSessionRepository())

	snapshot, err := sessionManager.Create(ctx, opts.Order)
	if err != nil {
		return fmt.Errorf("could not start game: %w", err)
	}

	defer func() {
		if closeErr := sessionManager.Close(context.WithoutCancel(ctx), snapshot.SessionID); closeErr != nil {
			log.Error("could not close session", "error", closeErr)
		}
	}()

	for _, cell := range opts.Moves {
		before := snapshot.HistoryLen

		if snapshot, err = sessionManager.CellClicked(ctx, snapshot.SessionID, cell); err != nil {
			return fmt.Errorf("could not play cell %d: %w", cell, err)
		}

		if snapshot.HistoryLen == before {
			log.Warn("move skipped", "cell", cell, "status", snapshot.Status)
		}
	}

	if opts.Jump != NoJump {
		if snapshot, err = sessionManager.MoveSelected(ctx, snapshot.SessionID, opts.Jump); err != nil {
			return fmt.Errorf("could not jump to step %d: %w", opts.Jump, err)
		}
	}

	if _, err = io.WriteString(out, tui.RenderText(snapshot)); err != nil {
		return fmt.Errorf("could not write game: %w", err)
	}

	return nil
}
