package tests

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/IvanChernomyrdin/go-yandex-notekeeper/internal/agent/app"
	"github.com/IvanChernomyrdin/go-yandex-notekeeper/internal/agent/kv"
	"github.com/IvanChernomyrdin/go-yandex-notekeeper/internal/agent/kv/mocks"
	"github.com/IvanChernomyrdin/go-yandex-notekeeper/internal/agent/notes"
	"github.com/IvanChernomyrdin/go-yandex-notekeeper/internal/agent/theme"
	serr "github.com/IvanChernomyrdin/go-yandex-notekeeper/internal/shared/errors"
	"github.com/IvanChernomyrdin/go-yandex-notekeeper/internal/shared/logger"
	"github.com/IvanChernomyrdin/go-yandex-notekeeper/internal/shared/models"
)

func TestStart_NoSession(t *testing.T) {
	a := app.New(kv.NewMemory(), logger.Nop(), false)

	require.NoError(t, a.Start(context.Background()))
	require.False(t, a.Session.IsAuthenticated())
	require.Equal(t, notes.StateUninitialized, a.Notes.State())
	require.Equal(t, theme.Light, a.Theme.Mode())

	_, err := a.CurrentUser()
	require.ErrorIs(t, err, serr.ErrUnauthorized)
}

func TestLoginCreateRestart_RestoresEverything(t *testing.T) {
	ctx := context.Background()
	store := kv.NewMemory()

	first := app.New(store, logger.Nop(), false)
	require.NoError(t, first.Start(ctx))

	u, err := first.Login(ctx, "a@b.com", "p")
	require.NoError(t, err)
	require.Equal(t, "a", u.Name)
	require.Equal(t, notes.StateReady, first.Notes.State())

	_, err = first.Notes.Create(ctx, models.NoteInput{Title: "A", Content: "x", Category: "work"})
	require.NoError(t, err)
	_, err = first.Theme.Toggle(ctx)
	require.NoError(t, err)

	second := app.New(store, logger.Nop(), false)
	require.NoError(t, second.Start(ctx))

	cur, err := second.CurrentUser()
	require.NoError(t, err)
	require.Equal(t, u, cur)
	require.Equal(t, notes.StateReady, second.Notes.State())
	require.Len(t, second.Notes.Notes(), 1)
	require.Equal(t, theme.Dark, second.Theme.Mode())
}

func TestLogin_InvalidCredentials_LeavesNotesUninitialized(t *testing.T) {
	a := app.New(kv.NewMemory(), logger.Nop(), false)

	_, err := a.Login(context.Background(), "", "p")
	require.ErrorIs(t, err, serr.ErrInvalidCredentials)
	require.Equal(t, notes.StateUninitialized, a.Notes.State())
}

func TestLogout_ResetsNotesKeepsData(t *testing.T) {
	ctx := context.Background()
	store := kv.NewMemory()
	a := app.New(store, logger.Nop(), false)

	_, err := a.Login(ctx, "a@b.com", "p")
	require.NoError(t, err)
	_, err = a.Notes.Create(ctx, models.NoteInput{Title: "keep me"})
	require.NoError(t, err)

	require.NoError(t, a.Logout(ctx))
	require.False(t, a.Session.IsAuthenticated())
	require.Equal(t, notes.StateUninitialized, a.Notes.State())

	_, err = a.Login(ctx, "a@b.com", "other")
	require.NoError(t, err)
	require.Len(t, a.Notes.Notes(), 1)
}

func TestLogin_SessionPersistFailure_StillOpensNotes(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := mocks.NewMockStore(ctrl)
	ctx := context.Background()

	store.EXPECT().Set(gomock.Any(), kv.SessionKey, gomock.Any()).Return(serr.ErrQuotaExceeded)
	store.EXPECT().Get(gomock.Any(), kv.NotesKey("a@b.com")).Return(nil, serr.ErrSlotNotFound)

	a := app.New(store, logger.Nop(), false)
	u, err := a.Login(ctx, "a@b.com", "p")

	require.ErrorIs(t, err, serr.ErrPersistence)
	require.Equal(t, "a@b.com", u.Email)
	require.True(t, a.Session.IsAuthenticated())
	require.Equal(t, notes.StateReady, a.Notes.State())
}

func TestClose_ClosesStore(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := mocks.NewMockStore(ctrl)
	store.EXPECT().Close().Return(nil)

	require.NoError(t, app.New(store, nil, false).Close())
}
