package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/coder/quartz"
	"github.com/google/uuid"

	"github.com/rocketscienceinc/tictactoe-history/internal/entity"
	"github.com/rocketscienceinc/tictactoe-history/internal/tictactoe"
)

type sessionRepo interface {
	CreateOrUpdate(ctx context.Context, session *entity.Session) error
	GetByID(ctx context.Context, id string) (*entity.Session, error)
	DeleteByID(ctx context.Context, id string) error
	List(ctx context.Context) ([]*entity.Session, error)
}

type subscriber struct {
	ch        chan Snapshot
	done      chan struct{}
	closeOnce sync.Once
}

func (that *subscriber) close() {
	that.closeOnce.Do(func() {
		close(that.ch)
		close(that.done)
	})
}

// SessionManager hosts game sessions for any number of views.
//
// Writes are serialised by mu, so each mutation is fully stored and broadcast before the next
// one starts. Reads go straight to the repository, which only ever hands out whole copies.
type SessionManager struct {
	logger *slog.Logger
	clock  quartz.Clock

	sessionRepo sessionRepo

	mu   sync.Mutex
	subs map[string]map[*subscriber]struct{}
}

func NewSessionManager(logger *slog.Logger, clock quartz.Clock, sessionRepo sessionRepo) *SessionManager {
	return &SessionManager{
		logger: logger.With("component", "sessions"),
		clock:  clock,

		sessionRepo: sessionRepo,
		subs:        make(map[string]map[*subscriber]struct{}),
	}
}

func (that *SessionManager) Create(ctx context.Context, order entity.Order) (Snapshot, error) {
	now := that.clock.Now()

	session := &entity.Session{
		ID:        uuid.NewString(),
		State:     tictactoe.NewGame(order),
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := that.sessionRepo.CreateOrUpdate(ctx, session); err != nil {
		return Snapshot{}, fmt.Errorf("failed to create session: %w", err)
	}

	that.logger.Info("session created", "sessionID", session.ID, "order", order.String())

	return newSnapshot(session), nil
}

func (that *SessionManager) Snapshot(ctx context.Context, id string) (Snapshot, error) {
	session, err := that.sessionRepo.GetByID(ctx, id)
	if err != nil {
		return Snapshot{}, fmt.Errorf("failed to get session: %w", err)
	}

	return newSnapshot(session), nil
}

// CellClicked plays the next mark on cell. An illegal move leaves the session unchanged
// and returns its current snapshot without an error.
func (that *SessionManager) CellClicked(ctx context.Context, id string, cell int) (Snapshot, error) {
	return that.mutate(ctx, id, "CellClicked",
		func(state entity.GameState) error { return tictactoe.ValidateMove(state, cell) },
		func(state entity.GameState) entity.GameState { return tictactoe.ApplyMove(state, cell) },
	)
}

// MoveSelected moves the session cursor to a recorded step.
func (that *SessionManager) MoveSelected(ctx context.Context, id string, step int) (Snapshot, error) {
	return that.mutate(ctx, id, "MoveSelected",
		func(state entity.GameState) error { return tictactoe.ValidateJump(state, step) },
		func(state entity.GameState) entity.GameState { return tictactoe.JumpTo(state, step) },
	)
}

func (that *SessionManager) ToggleOrder(ctx context.Context, id string) (Snapshot, error) {
	return that.mutate(ctx, id, "ToggleOrder", nil, tictactoe.ToggleDisplayOrder)
}

// Subscribe streams snapshots of a session, starting with the current one.
// A subscriber that falls behind only receives the latest snapshot.
// The channel is closed by unsubscribe, by ctx ending, or by closing the session.
func (that *SessionManager) Subscribe(ctx context.Context, id string) (<-chan Snapshot, func(), error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	session, err := that.sessionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to subscribe: %w", err)
	}

	sub := &subscriber{
		ch:   make(chan Snapshot, 1),
		done: make(chan struct{}),
	}
	sub.ch <- newSnapshot(session)

	set := that.subs[id]
	if set == nil {
		set = make(map[*subscriber]struct{})
		that.subs[id] = set
	}
	set[sub] = struct{}{}

	unsubscribe := func() {
		that.mu.Lock()
		that.removeSubscriberLocked(id, sub)
		that.mu.Unlock()

		sub.close()
	}

	go func() {
		select {
		case <-ctx.Done():
			unsubscribe()
		case <-sub.done:
		}
	}()

	return sub.ch, unsubscribe, nil
}

// Close ends a session: it is removed and every subscriber channel is closed.
func (that *SessionManager) Close(ctx context.Context, id string) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	if err := that.sessionRepo.DeleteByID(ctx, id); err != nil {
		return fmt.Errorf("failed to close session: %w", err)
	}

	for sub := range that.subs[id] {
		sub.close()
	}
	delete(that.subs, id)

	that.logger.Info("session closed", "sessionID", id)

	return nil
}

// CloseAll ends every open session. Failures are logged and do not stop the rest.
func (that *SessionManager) CloseAll(ctx context.Context) error {
	log := that.logger.With("method", "CloseAll")

	sessions, err := that.sessionRepo.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to list sessions: %w", err)
	}

	for _, session := range sessions {
		if err = that.Close(ctx, session.ID); err != nil {
			log.Error("failed to close session", "sessionID", session.ID, "error", err)
		}
	}

	return nil
}

func (that *SessionManager) mutate(
	ctx context.Context,
	id, method string,
	validate func(entity.GameState) error,
	transition func(entity.GameState) entity.GameState,
) (Snapshot, error) {
	log := that.logger.With("method", method, "sessionID", id)

	that.mu.Lock()
	defer that.mu.Unlock()

	session, err := that.sessionRepo.GetByID(ctx, id)
	if err != nil {
		return Snapshot{}, fmt.Errorf("failed to get session: %w", err)
	}

	if validate != nil {
		if err = validate(session.State); err != nil {
			log.Debug("operation rejected", "error", err)
			return newSnapshot(session), nil
		}
	}

	session.State = transition(session.State)
	session.UpdatedAt = that.clock.Now()

	if err = that.sessionRepo.CreateOrUpdate(ctx, session); err != nil {
		return Snapshot{}, fmt.Errorf("failed to update session: %w", err)
	}

	snapshot := newSnapshot(session)
	that.broadcastLocked(id, snapshot)

	log.Debug("session updated", "cursor", snapshot.Cursor, "status", snapshot.Status)

	return snapshot, nil
}

// broadcastLocked never blocks: a full buffer has its stale snapshot replaced.
// Only the writer holding mu sends, so the second send always finds room.
func (that *SessionManager) broadcastLocked(id string, snapshot Snapshot) {
	for sub := range that.subs[id] {
		select {
		case sub.ch <- snapshot:
			continue
		default:
		}

		select {
		case <-sub.ch:
		default:
		}

		select {
		case sub.ch <- snapshot:
		default:
		}
	}
}

func (that *SessionManager) removeSubscriberLocked(id string, sub *subscriber) {
	set, ok := that.subs[id]
	if !ok {
		return
	}

	delete(set, sub)
	if len(set) == 0 {
		delete(that.subs, id)
	}
}
