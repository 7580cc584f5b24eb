// Package theme хранит выбранную тему оформления (light/dark) в слоте "theme"
// и отдаёт палитру для CLI (lipgloss) и HTTP API (CSS custom properties).
package theme

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/IvanChernomyrdin/go-yandex-notekeeper/internal/agent/kv"
	serr "github.com/IvanChernomyrdin/go-yandex-notekeeper/internal/shared/errors"
)

// Mode — режим темы.
type Mode string

const (
	Light Mode = "light"
	Dark  Mode = "dark"
)

// ParseMode разбирает "light"/"dark" без учёта регистра.
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case Light:
		return Light, nil
	case Dark:
		return Dark, nil
	default:
		return "", fmt.Errorf("theme %q: %w", s, serr.ErrInvalidInput)
	}
}

// Store — хранилище темы.
type Store struct {
	kv         kv.Store
	preferDark bool

	mu   sync.RWMutex
	mode Mode
}

// New создаёт Store. preferDark — системное предпочтение,
// используется, если в слоте ничего нет.
func New(store kv.Store, preferDark bool) *Store {
	s := &Store{kv: store, preferDark: preferDark}
	s.mode = s.fallback()
	return s
}

// Load читает сохранённую тему. Нет слота или в нём мусор —
// системное предпочтение, иначе light.
func (s *Store) Load(ctx context.Context) error {
	var raw string
	found, err := kv.LoadJSON(ctx, s.kv, kv.ThemeKey, &raw)

	s.mu.Lock()
	defer s.mu.Unlock()

	if err != nil {
		s.mode = s.fallback()
		return err
	}
	if !found {
		s.mode = s.fallback()
		return nil
	}
	m, perr := ParseMode(raw)
	if perr != nil {
		s.mode = s.fallback()
		return nil
	}
	s.mode = m
	return nil
}

// Mode возвращает текущий режим.
func (s *Store) Mode() Mode {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.mode
}

// Toggle переключает light <-> dark и сохраняет результат.
// При сбое записи новый режим остаётся активным.
func (s *Store) Toggle(ctx context.Context) (Mode, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.mode == Dark {
		s.mode = Light
	} else {
		s.mode = Dark
	}
	return s.mode, kv.SaveJSON(ctx, s.kv, kv.ThemeKey, string(s.mode))
}

// Set устанавливает режим явно.
func (s *Store) Set(ctx context.Context, m Mode) error {
	if m != Light && m != Dark {
		return fmt.Errorf("theme %q: %w", m, serr.ErrInvalidInput)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.mode = m
	return kv.SaveJSON(ctx, s.kv, kv.ThemeKey, string(m))
}

func (s *Store) fallback() Mode {
	if s.preferDark {
		return Dark
	}
	return Light
}

// DetectPreferDark угадывает тёмный фон терминала.
//
// COLORFGBG в формате "fg;bg": фон 0-6 или 8 считается тёмным.
// NOTEKEEPER_DARK_MODE=1 включает тёмную тему явно.
func DetectPreferDark() bool {
	if v := os.Getenv("COLORFGBG"); v != "" {
		parts := strings.Split(v, ";")
		if bg, err := strconv.Atoi(parts[len(parts)-1]); err == nil {
			if (bg >= 0 && bg <= 6) || bg == 8 {
				return true
			}
		}
	}
	return os.Getenv("NOTEKEEPER_DARK_MODE") == "1"
}
