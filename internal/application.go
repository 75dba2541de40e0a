package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/coder/quartz"
	"golang.org/x/sync/errgroup"

	"github.com/rocketscienceinc/tictactoe-history/internal/config"
	"github.com/rocketscienceinc/tictactoe-history/internal/repository"
	"github.com/rocketscienceinc/tictactoe-history/internal/tui"
	"github.com/rocketscienceinc/tictactoe-history/internal/usecase"
)

// RunApp - runs an interactive game in the terminal until the player quits or a signal arrives.
func RunApp(ctx context.Context, logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	order, err := conf.UI.InitialOrder()
	if err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sessionRepo := repository.NewSessionRepository()
	sessionManager := usecase.NewSessionManager(logger, quartz.NewReal(), sessionRepo)

	defer func() {
		if closeErr := sessionManager.CloseAll(context.WithoutCancel(ctx)); closeErr != nil {
			log.Error("could not close sessions", "error", closeErr)
		}
	}()

	session, err := sessionManager.Create(ctx, order)
	if err != nil {
		return fmt.Errorf("could not start game: %w", err)
	}

	updates, unsubscribe, err := sessionManager.Subscribe(ctx, session.SessionID)
	if err != nil {
		return fmt.Errorf("could not subscribe to game: %w", err)
	}
	defer unsubscribe()

	options := []tea.ProgramOption{tea.WithContext(ctx)}
	if !conf.UI.Inline {
		options = append(options, tea.WithAltScreen())
	}

	program := tea.NewProgram(tui.New(ctx, logger, sessionManager, session.SessionID, updates), options...)

	group, groupCtx := errgroup.WithContext(ctx)

	group.Go(func() error {
		sigs := make(chan os.Signal, 1)
		signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
		defer signal.Stop(sigs)

		select {
		case sig := <-sigs:
			log.Info("Received signal, shutting down", "signal", sig)
			program.Quit()
		case <-groupCtx.Done():
		}

		return nil
	})

	group.Go(func() error {
		defer cancel()

		log.Info("Starting game", "sessionID", session.SessionID, "order", order.String())

		if _, runErr := program.Run(); runErr != nil {
			if errors.Is(runErr, tea.ErrProgramKilled) && ctx.Err() != nil {
				return nil
			}

			return fmt.Errorf("terminal UI error: %w", runErr)
		}

		return nil
	})

	if err = group.Wait(); err != nil {
		return err
	}

	log.Info("Game finished, shutting down")

	return nil
}
