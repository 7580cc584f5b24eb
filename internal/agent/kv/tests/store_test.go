package tests

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/IvanChernomyrdin/go-yandex-notekeeper/internal/agent/config"
	"github.com/IvanChernomyrdin/go-yandex-notekeeper/internal/agent/kv"
	"github.com/IvanChernomyrdin/go-yandex-notekeeper/internal/agent/kv/mocks"
	serr "github.com/IvanChernomyrdin/go-yandex-notekeeper/internal/shared/errors"
	"github.com/IvanChernomyrdin/go-yandex-notekeeper/internal/shared/models"
)

func TestNotesKey(t *testing.T) {
	require.Equal(t, "notes-a@b.com", kv.NotesKey("a@b.com"))
}

func TestMemoryStore_GetMissing_ReturnsSlotNotFound(t *testing.T) {
	s := kv.NewMemory()

	_, err := s.Get(context.Background(), "missing")
	require.ErrorIs(t, err, serr.ErrSlotNotFound)
}

func TestMemoryStore_ValuesAreCopied(t *testing.T) {
	s := kv.NewMemory()
	ctx := context.Background()

	in := []byte("abc")
	require.NoError(t, s.Set(ctx, "k", in))
	in[0] = 'X'

	out, err := s.Get(ctx, "k")
	require.NoError(t, err)
	require.Equal(t, "abc", string(out))

	out[0] = 'Y'
	again, err := s.Get(ctx, "k")
	require.NoError(t, err)
	require.Equal(t, "abc", string(again))
	require.Equal(t, []string{"k"}, s.Keys())
}

func TestMemoryStore_CanceledContext(t *testing.T) {
	s := kv.NewMemory()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	require.ErrorIs(t, s.Set(ctx, "k", []byte("v")), context.Canceled)
}

func TestFileStore_RoundTripAndDelete(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "data")
	s, err := kv.NewFile(dir)
	require.NoError(t, err)
	ctx := context.Background()

	_, err = s.Get(ctx, "notes-a@b.com")
	require.ErrorIs(t, err, serr.ErrSlotNotFound)

	require.NoError(t, s.Set(ctx, "notes-a@b.com", []byte(`[]`)))
	got, err := s.Get(ctx, "notes-a@b.com")
	require.NoError(t, err)
	require.Equal(t, `[]`, string(got))

	require.NoError(t, s.Delete(ctx, "notes-a@b.com"))
	require.NoError(t, s.Delete(ctx, "notes-a@b.com"))

	_, err = s.Get(ctx, "notes-a@b.com")
	require.ErrorIs(t, err, serr.ErrSlotNotFound)
}

func TestFileStore_Permissions_NoTempLeftovers(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "data")
	s, err := kv.NewFile(dir)
	require.NoError(t, err)

	require.NoError(t, s.Set(context.Background(), "user", []byte(`{"email":"a@b.com","name":"a"}`)))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1, "temp files must be renamed or removed")
	require.Equal(t, "user.json", entries[0].Name())

	// проверим права файла только на linux, на винде он гарантирует эти права.
	if runtime.GOOS != "windows" {
		st, err := os.Stat(filepath.Join(dir, "user.json"))
		require.NoError(t, err)
		require.Zero(t, st.Mode().Perm()&0o077, "expected no group/other permissions, got %o", st.Mode().Perm())
	}
}

func TestFileStore_KeyIsEscaped(t *testing.T) {
	dir := t.TempDir()
	s, err := kv.NewFile(dir)
	require.NoError(t, err)

	require.NoError(t, s.Set(context.Background(), "notes-../../etc/passwd", []byte(`[]`)))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.NotContains(t, entries[0].Name(), "/")
}

func TestNewFile_EmptyDir(t *testing.T) {
	_, err := kv.NewFile("")
	require.ErrorIs(t, err, serr.ErrInvalidInput)
}

func TestLoadJSON_MissingSlot_NotFoundNoError(t *testing.T) {
	var notes []models.Note
	found, err := kv.LoadJSON(context.Background(), kv.NewMemory(), "notes-a@b.com", &notes)

	require.NoError(t, err)
	require.False(t, found)
	require.Empty(t, notes)
}

func TestLoadJSON_BadJSON_ReturnsPersistenceError(t *testing.T) {
	s := kv.NewMemory()
	ctx := context.Background()
	require.NoError(t, s.Set(ctx, "user", []byte("{bad-json")))

	var u models.User
	found, err := kv.LoadJSON(ctx, s, "user", &u)

	require.False(t, found)
	require.ErrorIs(t, err, serr.ErrPersistence)
}

func TestSaveJSON_LoadJSON_RoundTrip(t *testing.T) {
	s := kv.NewMemory()
	ctx := context.Background()

	want := models.User{Email: "a@b.com", Name: "a"}
	require.NoError(t, kv.SaveJSON(ctx, s, kv.SessionKey, want))

	var got models.User
	found, err := kv.LoadJSON(ctx, s, kv.SessionKey, &got)
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, want, got)
}

func TestSaveJSON_WriteFailure_WrapsPersistenceAndCause(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := mocks.NewMockStore(ctrl)

	cause := errors.New("disk unplugged")
	store.EXPECT().
		Set(gomock.Any(), kv.ThemeKey, []byte(`"dark"`)).
		Return(cause)

	err := kv.SaveJSON(context.Background(), store, kv.ThemeKey, "dark")
	require.ErrorIs(t, err, serr.ErrPersistence)
	require.ErrorIs(t, err, cause)
}

func TestLoadJSON_ReadFailure_WrapsPersistence(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := mocks.NewMockStore(ctrl)

	store.EXPECT().
		Get(gomock.Any(), kv.SessionKey).
		Return(nil, serr.ErrQuotaExceeded)

	var u models.User
	_, err := kv.LoadJSON(context.Background(), store, kv.SessionKey, &u)
	require.ErrorIs(t, err, serr.ErrPersistence)
	require.ErrorIs(t, err, serr.ErrQuotaExceeded)
}

func TestRemove_Failure_WrapsPersistence(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := mocks.NewMockStore(ctrl)

	store.EXPECT().
		Delete(gomock.Any(), kv.SessionKey).
		Return(errors.New("read-only file system"))

	require.ErrorIs(t, kv.Remove(context.Background(), store, kv.SessionKey), serr.ErrPersistence)
}

func TestOpen_SelectsDriver(t *testing.T) {
	ctx := context.Background()

	mem, err := kv.Open(ctx, config.StorageConfig{Driver: config.DriverMemory})
	require.NoError(t, err)
	require.IsType(t, &kv.MemoryStore{}, mem)

	file, err := kv.Open(ctx, config.StorageConfig{Driver: config.DriverFile, Dir: t.TempDir()})
	require.NoError(t, err)
	require.IsType(t, &kv.FileStore{}, file)

	sq, err := kv.Open(ctx, config.StorageConfig{Driver: config.DriverSQLite, SQLitePath: filepath.Join(t.TempDir(), "n.db")})
	require.NoError(t, err)
	require.NoError(t, sq.Close())

	_, err = kv.Open(ctx, config.StorageConfig{Driver: "etcd"})
	require.Error(t, err)
}
