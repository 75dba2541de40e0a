package repository

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/rocketscienceinc/tictactoe-history/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-history/internal/entity"
)

type SessionRepository interface {
	CreateOrUpdate(ctx context.Context, session *entity.Session) error
	GetByID(ctx context.Context, id string) (*entity.Session, error)
	DeleteByID(ctx context.Context, id string) error
	List(ctx context.Context) ([]*entity.Session, error)
}

// memSession keeps sessions for the lifetime of the process.
// Sessions are cloned on the way in and out, so a caller never shares history with the store.
type memSession struct {
	mu       sync.RWMutex
	sessions map[string]*entity.Session
}

func NewSessionRepository() SessionRepository {
	return &memSession{
		sessions: make(map[string]*entity.Session),
	}
}

func (that *memSession) CreateOrUpdate(ctx context.Context, session *entity.Session) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}

	that.mu.Lock()
	defer that.mu.Unlock()

	that.sessions[session.ID] = session.Clone()

	return nil
}

func (that *memSession) GetByID(ctx context.Context, id string) (*entity.Session, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	that.mu.RLock()
	defer that.mu.RUnlock()

	session, ok := that.sessions[id]
	if !ok {
		return nil, fmt.Errorf("%w: id %s", apperror.ErrSessionNotFound, id)
	}

	return session.Clone(), nil
}

func (that *memSession) DeleteByID(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}

	that.mu.Lock()
	defer that.mu.Unlock()

	if _, ok := that.sessions[id]; !ok {
		return fmt.Errorf("%w: id %s", apperror.ErrSessionNotFound, id)
	}

	delete(that.sessions, id)

	return nil
}

// List returns every session, oldest first.
func (that *memSession) List(ctx context.Context) ([]*entity.Session, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}

	that.mu.RLock()
	defer that.mu.RUnlock()

	sessions := make([]*entity.Session, 0, len(that.sessions))
	for _, session := range that.sessions {
		sessions = append(sessions, session.Clone())
	}

	sort.Slice(sessions, func(i, j int) bool {
		if sessions[i].CreatedAt.Equal(sessions[j].CreatedAt) {
			return sessions[i].ID < sessions[j].ID
		}
		return sessions[i].CreatedAt.Before(sessions[j].CreatedAt)
	})

	return sessions, nil
}
