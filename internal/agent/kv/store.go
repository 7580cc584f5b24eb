// Package kv содержит хранилище persisted slots — именованных записей
// в долговременном key-value хранилище, каждая из которых хранит одно
// JSON-сериализованное значение.
//
// Раскладка слотов:
//
//	"user"          -> {email, name} (слот сессии)
//	"notes-"+email  -> [Note, ...] в порядке вставки (слот заметок)
//	"theme"         -> "light" | "dark" (слот темы)
//
// Пакет предоставляет интерфейс Store, реализации MemoryStore и FileStore,
// фабрику Open (включая sqlite и postgres) и JSON-хелперы LoadJSON/SaveJSON/Remove,
// которые приводят любые сбои хранилища к serr.ErrPersistence.
package kv

//go:generate mockgen -destination=mocks/mock_store.go -package=mocks . Store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	serr "github.com/IvanChernomyrdin/go-yandex-notekeeper/internal/shared/errors"
)

const (
	// SessionKey — слот текущего пользователя.
	SessionKey = "user"
	// ThemeKey — слот выбранной темы.
	ThemeKey = "theme"
	// notesPrefix — префикс слота заметок пользователя.
	notesPrefix = "notes-"
)

// Store — долговременное key-value хранилище слотов.
//
// Get возвращает serr.ErrSlotNotFound, если слота нет.
// Delete идемпотентен: удаление отсутствующего слота — не ошибка.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// NotesKey возвращает ключ слота заметок пользователя.
func NotesKey(email string) string {
	return notesPrefix + email
}

// LoadJSON читает слот key и декодирует его в v.
//
// Возвращает:
//   - (false, nil), если слота нет — вызывающий трактует это как пустое значение;
//   - (true, nil) при успешном чтении;
//   - ошибку, обёрнутую в serr.ErrPersistence, при сбое чтения или битом JSON.
func LoadJSON(ctx context.Context, s Store, key string, v any) (bool, error) {
	b, err := s.Get(ctx, key)
	if err != nil {
		if errors.Is(err, serr.ErrSlotNotFound) {
			return false, nil
		}
		return false, wrap("read", key, err)
	}
	if err := json.Unmarshal(b, v); err != nil {
		return false, wrap("decode", key, err)
	}
	return true, nil
}

// SaveJSON сериализует v и целиком перезаписывает слот key.
func SaveJSON(ctx context.Context, s Store, key string, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return wrap("encode", key, err)
	}
	if err := s.Set(ctx, key, b); err != nil {
		return wrap("write", key, err)
	}
	return nil
}

// Remove удаляет слот key.
func Remove(ctx context.Context, s Store, key string) error {
	if err := s.Delete(ctx, key); err != nil {
		return wrap("delete", key, err)
	}
	return nil
}

// wrap приводит ошибку к виду "<op> slot <key>: persistence error: <cause>",
// сохраняя и ErrPersistence, и исходную причину для errors.Is.
func wrap(op, key string, err error) error {
	if errors.Is(err, serr.ErrPersistence) {
		return fmt.Errorf("%s slot %q: %w", op, key, err)
	}
	return fmt.Errorf("%s slot %q: %w: %w", op, key, serr.ErrPersistence, err)
}
