// Package session хранит текущего пользователя и его persisted-слот "user".
//
// Реальной проверки учётных данных нет: любой непустой email и пароль
// принимаются. Пароль нигде не сохраняется.
package session

import (
	"context"
	"strings"
	"sync"

	"github.com/IvanChernomyrdin/go-yandex-notekeeper/internal/agent/kv"
	serr "github.com/IvanChernomyrdin/go-yandex-notekeeper/internal/shared/errors"
	"github.com/IvanChernomyrdin/go-yandex-notekeeper/internal/shared/logger"
	"github.com/IvanChernomyrdin/go-yandex-notekeeper/internal/shared/models"
)

// Store — хранилище сессии.
//
// In-memory состояние — источник истины: при сбое записи слота
// переход (login/logout) всё равно применяется, а ошибка возвращается вызывающему.
type Store struct {
	kv  kv.Store
	log *logger.Logger

	mu   sync.RWMutex
	user *models.User
}

// New создаёт Store. Пока не вызван Restore или Login, пользователь не аутентифицирован.
func New(store kv.Store, log *logger.Logger) *Store {
	if log == nil {
		log = logger.Nop()
	}
	return &Store{kv: store, log: log}
}

// Restore читает слот "user" при старте.
//
// Нет слота — сессии нет. Битый слот — ошибка с serr.ErrPersistence,
// пользователь остаётся неаутентифицированным.
func (s *Store) Restore(ctx context.Context) error {
	var u models.User
	found, err := kv.LoadJSON(ctx, s.kv, kv.SessionKey, &u)
	s.log.LogOperation("restore", kv.SessionKey, err)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if !found || strings.TrimSpace(u.Email) == "" {
		s.user = nil
		return nil
	}
	if u.Name == "" {
		u.Name = DisplayName(u.Email)
	}
	s.user = &u
	return nil
}

// Login делает пользователя активным и сохраняет его в слот "user".
//
// Пустой (после trim) email или пустой пароль — serr.ErrInvalidCredentials,
// состояние не меняется.
func (s *Store) Login(ctx context.Context, email, password string) (models.User, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return models.User{}, serr.ErrInvalidCredentials
	}

	u := models.User{Email: email, Name: DisplayName(email)}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.user = &u
	err := kv.SaveJSON(ctx, s.kv, kv.SessionKey, u)
	s.log.LogOperation("login", kv.SessionKey, err)
	return u, err
}

// Logout сбрасывает пользователя и удаляет слот. Повторный вызов безопасен.
func (s *Store) Logout(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.user = nil
	err := kv.Remove(ctx, s.kv, kv.SessionKey)
	s.log.LogOperation("logout", kv.SessionKey, err)
	return err
}

// CurrentUser возвращает активного пользователя.
func (s *Store) CurrentUser() (models.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.user == nil {
		return models.User{}, false
	}
	return *s.user, true
}

// IsAuthenticated сообщает, есть ли активный пользователь.
func (s *Store) IsAuthenticated() bool {
	_, ok := s.CurrentUser()
	return ok
}

// DisplayName возвращает local part email: текст до первого "@",
// либо всю строку, если "@" нет.
func DisplayName(email string) string {
	name, _, _ := strings.Cut(email, "@")
	return name
}
