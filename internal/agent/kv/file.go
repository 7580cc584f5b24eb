package kv

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"syscall"

	serr "github.com/IvanChernomyrdin/go-yandex-notekeeper/internal/shared/errors"
)

const (
	// slotExt — расширение файла слота.
	slotExt = ".json"
	// tmpPrefix — префикс временных файлов атомарной записи.
	tmpPrefix = ".slot-tmp-"
)

// FileStore хранит каждый слот в отдельном JSON-файле в директории dir.
//
// Имя файла — url.PathEscape(key) + ".json", так что ключи вида
// "notes-ivan@example.com" безопасно ложатся в файловую систему.
//
// Поведение:
//   - директория создаётся с правами 0700, файлы пишутся с правами 0600;
//   - запись атомарная: временный файл + fsync + rename;
//   - нехватка места (ENOSPC/EDQUOT) возвращается как serr.ErrQuotaExceeded.
type FileStore struct {
	dir string
}

// NewFile создаёт FileStore в директории dir (создаёт её при необходимости).
func NewFile(dir string) (*FileStore, error) {
	if dir == "" {
		return nil, fmt.Errorf("%w: empty data dir", serr.ErrInvalidInput)
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, classify(err)
	}
	return &FileStore{dir: dir}, nil
}

// Dir возвращает директорию хранилища.
func (s *FileStore) Dir() string {
	return s.dir
}

// Get читает файл слота.
//
// Если файл не существует — возвращает serr.ErrSlotNotFound
// (это нормальная ситуация при первом запуске).
func (s *FileStore) Get(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	b, err := os.ReadFile(s.path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, serr.ErrSlotNotFound
		}
		return nil, classify(err)
	}
	return b, nil
}

// Set атомарно перезаписывает файл слота.
func (s *FileStore) Set(ctx context.Context, key string, value []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := writeFileAtomic(s.path(key), value, 0o600); err != nil {
		return classify(err)
	}
	return nil
}

// Delete удаляет файл слота. Отсутствие файла ошибкой не считается.
func (s *FileStore) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := os.Remove(s.path(key)); err != nil && !os.IsNotExist(err) {
		return classify(err)
	}
	return nil
}

// Close ничего не делает: файлы не держатся открытыми.
func (s *FileStore) Close() error {
	return nil
}

func (s *FileStore) path(key string) string {
	return filepath.Join(s.dir, url.PathEscape(key)+slotExt)
}

// writeFileAtomic пишет data во временный файл рядом с целевым
// и переименовывает его поверх filename.
func writeFileAtomic(filename string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(filename)

	tmpFile, err := os.CreateTemp(dir, tmpPrefix+"*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	// если упадём до rename — подчистим
	defer os.Remove(tmpFile.Name())

	if _, err := tmpFile.Write(data); err != nil {
		tmpFile.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmpFile.Sync(); err != nil {
		tmpFile.Close()
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Chmod(tmpFile.Name(), perm); err != nil {
		return fmt.Errorf("chmod temp file: %w", err)
	}
	if err := os.Rename(tmpFile.Name(), filename); err != nil {
		return fmt.Errorf("rename temp file to %s: %w", filename, err)
	}
	return nil
}

// classify помечает ошибки нехватки места как serr.ErrQuotaExceeded.
func classify(err error) error {
	if errors.Is(err, syscall.ENOSPC) || isQuotaErr(err) {
		return fmt.Errorf("%w: %w", serr.ErrQuotaExceeded, err)
	}
	return err
}

func isQuotaErr(err error) bool {
	// EDQUOT есть не на всех платформах, поэтому сравниваем по тексту
	return strings.Contains(strings.ToLower(err.Error()), "quota exceeded")
}
