// Package postgres реализует хранилище слотов поверх PostgreSQL.
//
// Пакет выполняет:
//   - открытие соединения с PostgreSQL (через драйвер pgx);
//   - проверку доступности базы (Ping);
//   - запуск миграций (golang-migrate) при открытии;
//   - чтение/запись/удаление слотов в таблице kv_slots.
//
// Все слоты хранятся как BYTEA (JSON-значение целиком), запись — upsert по ключу.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-migrate/migrate/v4"
	migratepg "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/jackc/pgconn"

	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/jackc/pgx/v4/stdlib"

	serr "github.com/IvanChernomyrdin/go-yandex-notekeeper/internal/shared/errors"
)

// insufficientResourcesClass — класс SQLSTATE 53 (disk_full, out_of_memory, too_many_connections).
const insufficientResourcesClass = "53"

// Store — хранилище слотов в PostgreSQL.
// Отвечает исключительно за сохранение и извлечение данных без бизнес-логики.
type Store struct {
	db      *sql.DB
	timeout time.Duration
}

// New создаёт Store поверх уже открытого *sql.DB.
//
// timeout — таймаут на каждый запрос (0 — без таймаута).
func New(db *sql.DB, timeout time.Duration) *Store {
	return &Store{db: db, timeout: timeout}
}

// Open открывает подключение к базе данных по DSN, проверяет его доступность
// и применяет миграции из migrationsURL (например, file://migrations/postgres).
// Если миграции уже применены, migrate.ErrNoChange ошибкой не считается.
func Open(ctx context.Context, dsn, migrationsURL string, timeout time.Duration) (*Store, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	if err := Migrate(db, migrationsURL); err != nil {
		db.Close()
		return nil, err
	}

	return New(db, timeout), nil
}

// Migrate применяет миграции схемы kv_slots.
func Migrate(db *sql.DB, migrationsURL string) error {
	driver, err := migratepg.WithInstance(db, &migratepg.Config{})
	if err != nil {
		return fmt.Errorf("create migration driver: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance(migrationsURL, "postgres", driver)
	if err != nil {
		return fmt.Errorf("create migrations: %w", err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("apply migrations: %w", err)
	}
	return nil
}

// Get возвращает значение слота или serr.ErrSlotNotFound.
func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	var value []byte
	err := s.db.QueryRowContext(ctx,
		`SELECT value FROM kv_slots WHERE key = $1`,
		key,
	).Scan(&value)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, serr.ErrSlotNotFound
		}
		return nil, classify(err)
	}
	return value, nil
}

// Set вставляет или перезаписывает слот.
func (s *Store) Set(ctx context.Context, key string, value []byte) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO kv_slots (key, value, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (key) DO UPDATE
		SET value = EXCLUDED.value, updated_at = now()
	`,
		key,
		value,
	)
	if err != nil {
		return classify(err)
	}
	return nil
}

// Delete удаляет слот. Отсутствие строки ошибкой не считается.
func (s *Store) Delete(ctx context.Context, key string) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	if _, err := s.db.ExecContext(ctx, `DELETE FROM kv_slots WHERE key = $1`, key); err != nil {
		return classify(err)
	}
	return nil
}

// Close закрывает пул соединений.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, s.timeout)
}

// classify помечает ошибки класса 53 как serr.ErrQuotaExceeded.
func classify(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && strings.HasPrefix(pgErr.Code, insufficientResourcesClass) {
		return fmt.Errorf("%w: %w", serr.ErrQuotaExceeded, err)
	}
	return err
}
