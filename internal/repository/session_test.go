package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-history/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-history/internal/entity"
	"github.com/rocketscienceinc/tictactoe-history/testing/suite"
)

func newSession(id string, createdAt time.Time) *entity.Session {
	return &entity.Session{
		ID:        id,
		State:     entity.NewGameState(entity.OrderAscending),
		CreatedAt: createdAt,
		UpdatedAt: createdAt,
	}
}

func TestSessionRepository_CreateOrUpdate(t *testing.T) {
	ctx, st := suite.New(t)

	sessionRepo := NewSessionRepository()

	// Given: a new session
	session := newSession("123", st.Clock.Now())

	// When: CreateOrUpdate is called
	err := sessionRepo.CreateOrUpdate(ctx, session)

	// Then: no error should be returned, and session is stored
	require.NoError(t, err)

	stored, err := sessionRepo.GetByID(ctx, "123")
	require.NoError(t, err)
	assert.Equal(t, session, stored)
}

func TestSessionRepository_GetByID(t *testing.T) {
	t.Run("GetByID_Success", func(t *testing.T) {
		ctx, st := suite.New(t)

		sessionRepo := NewSessionRepository()

		// Given: a stored session with one move
		session := newSession("123", st.Clock.Now())
		session.State.History = append(session.State.History, entity.HistoryEntry{
			Board:    entity.Board{}.With(4, entity.PlayerX),
			Location: entity.LocationOf(4),
		})
		session.State.Cursor = 1

		err := sessionRepo.CreateOrUpdate(ctx, session)
		require.NoError(t, err)

		// When: GetByID is called with existing ID
		retrieved, err := sessionRepo.GetByID(ctx, session.ID)

		// Then: the retrieved session should match the saved session
		require.NoError(t, err)
		require.Equal(t, session.ID, retrieved.ID)
		require.Equal(t, session.State, retrieved.State)
	})

	t.Run("GetByID_NotFound", func(t *testing.T) {
		ctx, _ := suite.New(t)

		sessionRepo := NewSessionRepository()

		// When: GetByID is called with non-existent ID
		retrieved, err := sessionRepo.GetByID(ctx, "9999999")

		// Then: an ErrSessionNotFound error should be returned
		require.ErrorIs(t, err, apperror.ErrSessionNotFound)
		assert.Nil(t, retrieved)
	})

	t.Run("GetByID_IsolatedFromCaller", func(t *testing.T) {
		ctx, st := suite.New(t)

		sessionRepo := NewSessionRepository()

		// Given: a stored session
		session := newSession("123", st.Clock.Now())
		require.NoError(t, sessionRepo.CreateOrUpdate(ctx, session))

		// When: both the saved value and a retrieved copy are modified
		session.State.History[0].Board[0] = entity.PlayerX
		retrieved, err := sessionRepo.GetByID(ctx, "123")
		require.NoError(t, err)
		retrieved.State.History[0].Board[1] = entity.PlayerO

		// Then: the stored session is unchanged
		again, err := sessionRepo.GetByID(ctx, "123")
		require.NoError(t, err)
		assert.Equal(t, entity.Board{}, again.State.History[0].Board)
	})

	t.Run("GetByID_CanceledContext", func(t *testing.T) {
		_, st := suite.New(t)

		sessionRepo := NewSessionRepository()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		// When: the context is already canceled
		_, err := sessionRepo.GetByID(ctx, st.Name())

		// Then: the context error is returned
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestSessionRepository_DeleteByID(t *testing.T) {
	t.Run("DeleteByID_Success", func(t *testing.T) {
		ctx, st := suite.New(t)

		sessionRepo := NewSessionRepository()

		// Given: a stored session
		session := newSession("123", st.Clock.Now())
		require.NoError(t, sessionRepo.CreateOrUpdate(ctx, session))

		// When: DeleteByID is called with existing ID
		err := sessionRepo.DeleteByID(ctx, session.ID)

		// Then: no error should be returned and the session is gone
		require.NoError(t, err)

		_, err = sessionRepo.GetByID(ctx, session.ID)
		assert.ErrorIs(t, err, apperror.ErrSessionNotFound)
	})

	t.Run("DeleteByID_NotFound", func(t *testing.T) {
		ctx, _ := suite.New(t)

		sessionRepo := NewSessionRepository()

		// When: DeleteByID is called with non-existent ID
		err := sessionRepo.DeleteByID(ctx, "9999999")

		// Then: an ErrSessionNotFound error should be returned
		require.ErrorIs(t, err, apperror.ErrSessionNotFound)
	})
}

func TestSessionRepository_List(t *testing.T) {
	ctx, st := suite.New(t)

	sessionRepo := NewSessionRepository()

	// Given: sessions created at different times
	first := newSession("b", st.Clock.Now())
	second := newSession("a", st.Clock.Now().Add(time.Minute))
	require.NoError(t, sessionRepo.CreateOrUpdate(ctx, second))
	require.NoError(t, sessionRepo.CreateOrUpdate(ctx, first))

	// When: the sessions are listed
	sessions, err := sessionRepo.List(ctx)

	// Then: they come oldest first
	require.NoError(t, err)
	require.Len(t, sessions, 2)
	assert.Equal(t, "b", sessions[0].ID)
	assert.Equal(t, "a", sessions[1].ID)
}
