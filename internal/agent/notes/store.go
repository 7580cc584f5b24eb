// Package notes содержит хранилище заметок активного пользователя.
//
// Коллекция живёт в памяти в порядке вставки (новые заметки — в начале)
// и целиком перезаписывается в слот "notes-"+email после каждой мутации.
// In-memory коллекция — источник истины для текущей сессии: сбой записи
// не откатывает изменение, а возвращается вызывающему как serr.ErrPersistence.
package notes

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/IvanChernomyrdin/go-yandex-notekeeper/internal/agent/kv"
	serr "github.com/IvanChernomyrdin/go-yandex-notekeeper/internal/shared/errors"
	"github.com/IvanChernomyrdin/go-yandex-notekeeper/internal/shared/logger"
	"github.com/IvanChernomyrdin/go-yandex-notekeeper/internal/shared/models"
)

// State — состояние хранилища для текущей сессии.
type State int

const (
	StateUninitialized State = iota
	StateLoading
	StateReady
)

func (st State) String() string {
	switch st {
	case StateUninitialized:
		return "uninitialized"
	case StateLoading:
		return "loading"
	case StateReady:
		return "ready"
	default:
		return fmt.Sprintf("state(%d)", int(st))
	}
}

// idPrefix — префикс идентификатора заметки.
const idPrefix = "note-"

// Option настраивает Store.
type Option func(*Store)

// WithClock подменяет источник текущего времени.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

// WithIDGenerator подменяет генератор идентификаторов заметок.
func WithIDGenerator(gen func() string) Option {
	return func(s *Store) {
		if gen != nil {
			s.newID = gen
		}
	}
}

// Store — хранилище заметок.
type Store struct {
	kv    kv.Store
	log   *logger.Logger
	now   func() time.Time
	newID func() string

	mu    sync.RWMutex
	state State
	epoch uint64
	user  models.User
	notes []models.Note
}

// New создаёт Store в состоянии StateUninitialized.
func New(store kv.Store, log *logger.Logger, opts ...Option) *Store {
	if log == nil {
		log = logger.Nop()
	}
	s := &Store{
		kv:    store,
		log:   log,
		now:   time.Now,
		newID: NewID,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NewID возвращает идентификатор вида "note-<uuid v7>":
// упорядоченный по времени префикс плюс случайная часть.
func NewID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return idPrefix + uuid.NewString()
	}
	return idPrefix + id.String()
}

// Open делает user активным и загружает его коллекцию.
//
// Переводит хранилище в StateLoading, читает слот без блокировки и
// устанавливает результат, только если за время чтения не было
// другого Open или Reset. Иначе результат отбрасывается и возвращается
// serr.ErrStaleLoad, состояние нового пользователя не трогается.
// Отсутствующий слот — пустая коллекция. Сбой чтения возвращает
// хранилище в StateUninitialized.
func (s *Store) Open(ctx context.Context, user models.User) error {
	s.mu.Lock()
	s.epoch++
	epoch := s.epoch
	s.state = StateLoading
	s.user = user
	s.notes = nil
	s.mu.Unlock()

	key := kv.NotesKey(user.Email)
	var loaded []models.Note
	_, err := kv.LoadJSON(ctx, s.kv, key, &loaded)
	s.log.LogOperation("load", key, err)

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.epoch != epoch {
		return fmt.Errorf("load %q: %w", key, serr.ErrStaleLoad)
	}
	if err != nil {
		s.state = StateUninitialized
		s.user = models.User{}
		return err
	}
	if loaded == nil {
		loaded = []models.Note{}
	}
	s.notes = loaded
	s.state = StateReady
	return nil
}

// Reset возвращает хранилище в StateUninitialized и отбрасывает незавершённую загрузку.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.epoch++
	s.state = StateUninitialized
	s.user = models.User{}
	s.notes = nil
}

// State возвращает текущее состояние.
func (s *Store) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Loading сообщает, идёт ли загрузка коллекции.
func (s *Store) Loading() bool {
	return s.State() == StateLoading
}

// Owner возвращает пользователя, чья коллекция загружена или загружается.
func (s *Store) Owner() (models.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user, s.state != StateUninitialized
}

// Notes возвращает копию коллекции в порядке вставки.
func (s *Store) Notes() []models.Note {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return clone(s.notes)
}

// Get возвращает заметку по id.
func (s *Store) Get(id string) (models.Note, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if i := s.indexOf(id); i >= 0 {
		return s.notes[i], true
	}
	return models.Note{}, false
}

// Create добавляет заметку в начало коллекции и сохраняет коллекцию.
//
// Пустой title заменяется на models.DefaultTitle.
// При сбое записи заметка остаётся в памяти и возвращается вместе с ошибкой.
func (s *Store) Create(ctx context.Context, in models.NoteInput) (models.Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateReady {
		return models.Note{}, serr.ErrNotReady
	}

	title := in.Title
	if title == "" {
		title = models.DefaultTitle
	}
	now := s.now()
	note := models.Note{
		ID:        s.newID(),
		Title:     title,
		Content:   in.Content,
		Category:  in.Category,
		CreatedAt: now,
		UpdatedAt: now,
	}

	notes := make([]models.Note, 0, len(s.notes)+1)
	notes = append(notes, note)
	s.notes = append(notes, s.notes...)

	return note, s.persistLocked(ctx, "create")
}

// Update заменяет title, content и category заметки id.
//
// Неизвестный id — no-op без ошибки и без записи.
// UpdatedAt = max(now, CreatedAt), позиция в коллекции не меняется.
func (s *Store) Update(ctx context.Context, id string, in models.NoteInput) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateReady {
		return serr.ErrNotReady
	}

	i := s.indexOf(id)
	if i < 0 {
		return nil
	}

	n := &s.notes[i]
	n.Title = in.Title
	n.Content = in.Content
	n.Category = in.Category
	n.UpdatedAt = s.now()
	if n.UpdatedAt.Before(n.CreatedAt) {
		n.UpdatedAt = n.CreatedAt
	}

	return s.persistLocked(ctx, "update")
}

// Delete удаляет заметку id. Неизвестный id — no-op без ошибки и без записи.
func (s *Store) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateReady {
		return serr.ErrNotReady
	}

	i := s.indexOf(id)
	if i < 0 {
		return nil
	}

	notes := make([]models.Note, 0, len(s.notes)-1)
	notes = append(notes, s.notes[:i]...)
	s.notes = append(notes, s.notes[i+1:]...)

	return s.persistLocked(ctx, "delete")
}

// Flush повторно записывает текущую коллекцию (например, после ошибки записи).
func (s *Store) Flush(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateReady {
		return serr.ErrNotReady
	}
	return s.persistLocked(ctx, "flush")
}

// persistLocked пишет коллекцию под write-lock, поэтому снимки
// попадают в хранилище в порядке мутаций.
func (s *Store) persistLocked(ctx context.Context, op string) error {
	key := kv.NotesKey(s.user.Email)
	err := kv.SaveJSON(ctx, s.kv, key, s.notes)
	s.log.LogOperation(op, key, err)
	return err
}

func (s *Store) indexOf(id string) int {
	for i := range s.notes {
		if s.notes[i].ID == id {
			return i
		}
	}
	return -1
}

func clone(notes []models.Note) []models.Note {
	out := make([]models.Note, len(notes))
	copy(out, notes)
	return out
}
