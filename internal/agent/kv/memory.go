package kv

import (
	"context"
	"sync"

	serr "github.com/IvanChernomyrdin/go-yandex-notekeeper/internal/shared/errors"
)

// MemoryStore — потокобезопасное in-memory хранилище слотов.
//
// Используется тестами и режимом --ephemeral: данные живут, пока жив процесс.
// Значения копируются на входе и выходе, чтобы вызывающий не мог
// изменить содержимое стора через общий слайс.
type MemoryStore struct {
	mu    sync.RWMutex
	slots map[string][]byte
}

// NewMemory создаёт пустое хранилище слотов.
func NewMemory() *MemoryStore {
	return &MemoryStore{
		slots: make(map[string][]byte),
	}
}

// Get возвращает значение слота.
//
// Если слот отсутствует — возвращает serr.ErrSlotNotFound.
func (s *MemoryStore) Get(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.slots[key]
	if !ok {
		return nil, serr.ErrSlotNotFound
	}
	return append([]byte(nil), v...), nil
}

// Set полностью перезаписывает слот.
func (s *MemoryStore) Set(ctx context.Context, key string, value []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	s.slots[key] = append([]byte(nil), value...)
	return nil
}

// Delete удаляет слот. Отсутствие слота ошибкой не считается.
func (s *MemoryStore) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.slots, key)
	return nil
}

// Keys возвращает список ключей (порядок не гарантируется).
func (s *MemoryStore) Keys() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]string, 0, len(s.slots))
	for k := range s.slots {
		result = append(result, k)
	}
	return result
}

// Close ничего не делает: ресурсов нет.
func (s *MemoryStore) Close() error {
	return nil
}
