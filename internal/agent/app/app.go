// Package app собирает хранилища сессии, заметок и темы над одним kv.Store.
//
// App — единственный владелец состояния; CLI и HTTP API работают только через него.
package app

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/IvanChernomyrdin/go-yandex-notekeeper/internal/agent/kv"
	"github.com/IvanChernomyrdin/go-yandex-notekeeper/internal/agent/notes"
	"github.com/IvanChernomyrdin/go-yandex-notekeeper/internal/agent/session"
	"github.com/IvanChernomyrdin/go-yandex-notekeeper/internal/agent/theme"
	serr "github.com/IvanChernomyrdin/go-yandex-notekeeper/internal/shared/errors"
	"github.com/IvanChernomyrdin/go-yandex-notekeeper/internal/shared/logger"
	"github.com/IvanChernomyrdin/go-yandex-notekeeper/internal/shared/models"
)

// App — корень композиции.
type App struct {
	Session *session.Store
	Notes   *notes.Store
	Theme   *theme.Store

	kv  kv.Store
	log *logger.Logger
}

// New создаёт App над store.
func New(store kv.Store, log *logger.Logger, preferDark bool, opts ...notes.Option) *App {
	if log == nil {
		log = logger.Nop()
	}
	return &App{
		Session: session.New(store, log),
		Notes:   notes.New(store, log, opts...),
		Theme:   theme.New(store, preferDark),
		kv:      store,
		log:     log,
	}
}

// Start восстанавливает сессию, тему и, если пользователь был
// залогинен, загружает его заметки.
//
// Сбой чтения темы не фатален: тема откатывается к предпочтению по умолчанию.
func (a *App) Start(ctx context.Context) error {
	if err := a.Theme.Load(ctx); err != nil {
		a.log.Warn("theme load failed, using default", zap.Error(err))
	}

	if err := a.Session.Restore(ctx); err != nil {
		return err
	}

	u, ok := a.Session.CurrentUser()
	if !ok {
		return nil
	}
	return a.Notes.Open(ctx, u)
}

// Login входит пользователем и загружает его заметки.
//
// Ошибка записи слота сессии не мешает загрузке заметок:
// сессия в памяти уже активна, ошибка возвращается вызывающему.
func (a *App) Login(ctx context.Context, email, password string) (models.User, error) {
	u, err := a.Session.Login(ctx, email, password)
	if err != nil && !errors.Is(err, serr.ErrPersistence) {
		return models.User{}, err
	}

	if openErr := a.Notes.Open(ctx, u); openErr != nil {
		return u, errors.Join(err, openErr)
	}
	return u, err
}

// Logout сбрасывает заметки и сессию.
func (a *App) Logout(ctx context.Context) error {
	a.Notes.Reset()
	return a.Session.Logout(ctx)
}

// CurrentUser возвращает активного пользователя или serr.ErrUnauthorized.
func (a *App) CurrentUser() (models.User, error) {
	u, ok := a.Session.CurrentUser()
	if !ok {
		return models.User{}, serr.ErrUnauthorized
	}
	return u, nil
}

// Close закрывает хранилище слотов.
func (a *App) Close() error {
	return a.kv.Close()
}
