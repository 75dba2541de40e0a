package suite

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
)

const maxWaitDuration = 10 * time.Second

type Suite struct {
	*testing.T
	Logger *slog.Logger

	Clock *quartz.Mock
}

func New(t *testing.T) (context.Context, *Suite) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), maxWaitDuration)
	t.Cleanup(func() {
		cancel()
	})

	// quiet handler: tests assert on state, not on log lines
	handler := log.NewWithOptions(io.Discard, log.Options{Level: log.ErrorLevel})

	return ctx, &Suite{
		T:      t,
		Logger: slog.New(handler),
		Clock:  quartz.NewMock(t),
	}
}
