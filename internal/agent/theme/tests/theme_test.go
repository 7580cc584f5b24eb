package tests

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/IvanChernomyrdin/go-yandex-notekeeper/internal/agent/kv"
	"github.com/IvanChernomyrdin/go-yandex-notekeeper/internal/agent/kv/mocks"
	"github.com/IvanChernomyrdin/go-yandex-notekeeper/internal/agent/theme"
	serr "github.com/IvanChernomyrdin/go-yandex-notekeeper/internal/shared/errors"
)

func TestLoad_Fallbacks(t *testing.T) {
	ctx := context.Background()

	light := theme.New(kv.NewMemory(), false)
	require.NoError(t, light.Load(ctx))
	require.Equal(t, theme.Light, light.Mode())

	dark := theme.New(kv.NewMemory(), true)
	require.NoError(t, dark.Load(ctx))
	require.Equal(t, theme.Dark, dark.Mode())
}

func TestLoad_StoredModeWins(t *testing.T) {
	ctx := context.Background()
	store := kv.NewMemory()
	require.NoError(t, store.Set(ctx, kv.ThemeKey, []byte(`"light"`)))

	s := theme.New(store, true)
	require.NoError(t, s.Load(ctx))
	require.Equal(t, theme.Light, s.Mode())
}

func TestLoad_GarbageValue_UsesPreference(t *testing.T) {
	ctx := context.Background()
	store := kv.NewMemory()
	require.NoError(t, store.Set(ctx, kv.ThemeKey, []byte(`"purple"`)))

	s := theme.New(store, true)
	require.NoError(t, s.Load(ctx))
	require.Equal(t, theme.Dark, s.Mode())
}

func TestToggle_PersistsAndSurvivesReload(t *testing.T) {
	ctx := context.Background()
	store := kv.NewMemory()

	s := theme.New(store, false)
	require.NoError(t, s.Load(ctx))

	m, err := s.Toggle(ctx)
	require.NoError(t, err)
	require.Equal(t, theme.Dark, m)

	raw, err := store.Get(ctx, kv.ThemeKey)
	require.NoError(t, err)
	require.Equal(t, `"dark"`, string(raw))

	reloaded := theme.New(store, false)
	require.NoError(t, reloaded.Load(ctx))
	require.Equal(t, theme.Dark, reloaded.Mode())

	m, err = reloaded.Toggle(ctx)
	require.NoError(t, err)
	require.Equal(t, theme.Light, m)
}

func TestSet_InvalidMode(t *testing.T) {
	s := theme.New(kv.NewMemory(), false)
	require.ErrorIs(t, s.Set(context.Background(), theme.Mode("sepia")), serr.ErrInvalidInput)
	require.Equal(t, theme.Light, s.Mode())
}

func TestToggle_PersistFailure_KeepsNewMode(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := mocks.NewMockStore(ctrl)
	store.EXPECT().Set(gomock.Any(), kv.ThemeKey, []byte(`"dark"`)).Return(serr.ErrQuotaExceeded)

	s := theme.New(store, false)
	m, err := s.Toggle(context.Background())

	require.ErrorIs(t, err, serr.ErrPersistence)
	require.Equal(t, theme.Dark, m)
	require.Equal(t, theme.Dark, s.Mode())
}

func TestParseMode(t *testing.T) {
	m, err := theme.ParseMode(" Dark ")
	require.NoError(t, err)
	require.Equal(t, theme.Dark, m)

	_, err = theme.ParseMode("blue")
	require.ErrorIs(t, err, serr.ErrInvalidInput)
}

func TestPaletteFor_Tokens(t *testing.T) {
	dark := theme.PaletteFor(theme.Dark).Tokens()
	require.Equal(t, "#1976d2", dark["--primary"])
	require.Equal(t, "#ff4081", dark["--accent"])
	require.Equal(t, "#181a1b", dark["--bg-primary"])
	require.Equal(t, "#22254b", dark["--input-bg"])
	require.Len(t, dark, 9)

	light := theme.PaletteFor(theme.Light).Tokens()
	require.Equal(t, "#fff", light["--bg-primary"])
	require.Equal(t, "#191b22", light["--text-primary"])
	require.Equal(t, "#424242", light["--secondary"])

	require.Equal(t, theme.Light, theme.PaletteFor("unknown").Mode)
}

func TestDetectPreferDark(t *testing.T) {
	tests := []struct {
		name     string
		colorfg  string
		override string
		want     bool
	}{
		{name: "nothing set", want: false},
		{name: "dark background", colorfg: "15;0", want: true},
		{name: "grey background", colorfg: "15;8", want: true},
		{name: "light background", colorfg: "0;15", want: false},
		{name: "three part value", colorfg: "15;default;0", want: true},
		{name: "explicit override", override: "1", want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("COLORFGBG", tt.colorfg)
			t.Setenv("NOTEKEEPER_DARK_MODE", tt.override)
			require.Equal(t, tt.want, theme.DetectPreferDark())
		})
	}
}
