// Package config отвечает за:
// - чтение config.yaml (по умолчанию ~/.notekeeper/config.yaml, файла может не быть);
// - подстановку переменных окружения вида ${NOTEKEEPER_SIGNING_KEY};
// - проставление дефолтов;
// - валидацию (чтобы CLI и сервер не стартовали с дырявыми настройками).
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Поддерживаемые драйверы хранилища слотов.
const (
	DriverMemory   = "memory"
	DriverFile     = "file"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Config — корневая структура конфига приложения.
type Config struct {
	Env     string        `yaml:"env"` // dev|prod
	Storage StorageConfig `yaml:"storage"`
	Theme   ThemeConfig   `yaml:"theme"`
	Log     LogConfig     `yaml:"log"`
	Server  ServerConfig  `yaml:"server"`
	Auth    AuthConfig    `yaml:"auth"`
}

// StorageConfig — где живут persisted slots.
type StorageConfig struct {
	Driver     string         `yaml:"driver"`      // memory|file|sqlite|postgres
	Dir        string         `yaml:"dir"`         // для file
	SQLitePath string         `yaml:"sqlite_path"` // для sqlite
	Postgres   PostgresConfig `yaml:"postgres"`
}

// PostgresConfig — настройки подключения к PostgreSQL.
type PostgresConfig struct {
	DSN          string        `yaml:"dsn"`
	Migrations   string        `yaml:"migrations"`    // file://migrations/postgres
	QueryTimeout time.Duration `yaml:"query_timeout"` // таймаут на запросы к БД
}

// ThemeConfig — настройки темы.
type ThemeConfig struct {
	// PreferDark — системное предпочтение тёмной темы, если тема ещё не сохранена.
	// Если не задано, определяется по окружению терминала.
	PreferDark *bool `yaml:"prefer_dark"`
}

// LogConfig — настройки логирования (zap).
type LogConfig struct {
	File  string `yaml:"file"`
	Level string `yaml:"level"` // debug|info|warn|error
}

// ServerConfig — настройки локального HTTP API.
type ServerConfig struct {
	Host            string        `yaml:"host"`
	Port            int           `yaml:"port"`
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"` // время на graceful shutdown
}

// AuthConfig — как подписываем токены HTTP-сессии.
type AuthConfig struct {
	Issuer     string        `yaml:"issuer"`
	SigningKey string        `yaml:"signing_key"` // может содержать ${NOTEKEEPER_SIGNING_KEY}
	AccessTTL  time.Duration `yaml:"access_ttl"`
}

// DefaultDir возвращает домашнюю директорию приложения:
//
//	<home>/.notekeeper
func DefaultDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".notekeeper"), nil
}

// DefaultPath возвращает путь к конфигу по умолчанию:
//
//	<home>/.notekeeper/config.yaml
func DefaultPath() (string, error) {
	dir, err := DefaultDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// Load читает YAML, подставляет переменные окружения вида ${VAR},
// затем парсит в структуру, проставляет дефолты и валидирует.
//
// Если файла нет — используется пустой конфиг с дефолтами.
func Load(path string) (*Config, error) {
	var cfg Config

	raw, err := os.ReadFile(path)
	switch {
	case err == nil:
		expanded := ExpandEnvStrict(string(raw))
		if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
			return nil, fmt.Errorf("не удалось распарсить yaml: %w", err)
		}
	case os.IsNotExist(err):
		// дефолтный конфиг, если файла нет
	default:
		return nil, fmt.Errorf("не удалось прочитать конфиг: %w", err)
	}

	cfg.ApplyEnvOverrides()
	if err := ApplyDefaults(&cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// ExpandEnvStrict заменяет ${VAR} на значение из окружения.
// Если переменная не задана — оставляем ${VAR} как есть,
// а потом Validate() упадёт с понятной ошибкой.
func ExpandEnvStrict(s string) string {
	re := regexp.MustCompile(`\$\{([A-Z0-9_]+)\}`)
	return re.ReplaceAllStringFunc(s, func(m string) string {
		sub := re.FindStringSubmatch(m)
		if len(sub) != 2 {
			return m
		}
		if val, ok := os.LookupEnv(sub[1]); ok {
			return val
		}
		return m
	})
}

// ApplyDefaults — дефолтные значения, если в yaml поле не задано.
// Ошибку возвращает только если не удалось определить домашнюю директорию.
func ApplyDefaults(cfg *Config) error {
	if cfg.Env == "" {
		cfg.Env = "dev"
	}
	if cfg.Storage.Driver == "" {
		cfg.Storage.Driver = DriverFile
	}
	if cfg.Storage.Dir == "" || cfg.Storage.SQLitePath == "" || cfg.Log.File == "" {
		home, err := DefaultDir()
		if err != nil {
			return fmt.Errorf("не удалось определить домашнюю директорию: %w", err)
		}
		if cfg.Storage.Dir == "" {
			cfg.Storage.Dir = filepath.Join(home, "data")
		}
		if cfg.Storage.SQLitePath == "" {
			cfg.Storage.SQLitePath = filepath.Join(home, "notekeeper.db")
		}
		if cfg.Log.File == "" {
			cfg.Log.File = filepath.Join(home, "logs", "notekeeper.log")
		}
	}
	if cfg.Storage.Postgres.Migrations == "" {
		cfg.Storage.Postgres.Migrations = "file://migrations/postgres"
	}
	if cfg.Storage.Postgres.QueryTimeout == 0 {
		cfg.Storage.Postgres.QueryTimeout = 5 * time.Second
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Server.Host == "" {
		cfg.Server.Host = "127.0.0.1"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Server.ReadTimeout == 0 {
		cfg.Server.ReadTimeout = 10 * time.Second
	}
	if cfg.Server.WriteTimeout == 0 {
		cfg.Server.WriteTimeout = 10 * time.Second
	}
	if cfg.Server.IdleTimeout == 0 {
		cfg.Server.IdleTimeout = 60 * time.Second
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = 5 * time.Second
	}
	if cfg.Auth.Issuer == "" {
		cfg.Auth.Issuer = "notekeeper"
	}
	if cfg.Auth.AccessTTL == 0 {
		cfg.Auth.AccessTTL = 24 * time.Hour
	}
	return nil
}

// Validate проверяет, что конфиг заполнен корректно.
// Подпись токенов проверяется отдельно (ValidateServer), т.к. CLI она не нужна.
func (c *Config) Validate() error {
	switch c.Storage.Driver {
	case DriverMemory:
	case DriverFile:
		if c.Storage.Dir == "" {
			return errors.New("storage.dir обязателен для driver=file")
		}
	case DriverSQLite:
		if c.Storage.SQLitePath == "" {
			return errors.New("storage.sqlite_path обязателен для driver=sqlite")
		}
	case DriverPostgres:
		dsn := strings.TrimSpace(c.Storage.Postgres.DSN)
		if dsn == "" {
			return errors.New("storage.postgres.dsn обязателен для driver=postgres")
		}
		if strings.Contains(dsn, "${") {
			return fmt.Errorf("storage.postgres.dsn содержит неподставленную переменную: %q", dsn)
		}
	default:
		return fmt.Errorf("storage.driver должен быть memory|file|sqlite|postgres (сейчас %q)", c.Storage.Driver)
	}

	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level должен быть debug|info|warn|error (сейчас %q)", c.Log.Level)
	}
	return nil
}

// ValidateServer — дополнительные проверки для HTTP API.
func (c *Config) ValidateServer() error {
	if c.Server.Host == "" {
		return errors.New("server.host обязателен")
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port некорректен: %d", c.Server.Port)
	}

	key := strings.TrimSpace(c.Auth.SigningKey)
	if key == "" {
		return errors.New("auth.signing_key обязателен (через ${NOTEKEEPER_SIGNING_KEY} или прямо строкой)")
	}
	// Если ${NOTEKEEPER_SIGNING_KEY} не подставился — значит переменная окружения не задана
	if strings.Contains(key, "${") && strings.Contains(key, "}") {
		return fmt.Errorf("auth.signing_key содержит неподставленную переменную: %q (нужно задать NOTEKEEPER_SIGNING_KEY)", key)
	}
	// Для HS256 ключ должен быть длинным и случайным
	if len(key) < 32 {
		return fmt.Errorf("auth.signing_key слишком короткий (%d символов); нужно >= 32", len(key))
	}
	return nil
}

// ApplyEnvOverrides даёт возможность переопределять
// некоторые настройки через переменные окружения без ${...} в yaml.
//   - NOTEKEEPER_STORAGE_DRIVER переопределит storage.driver;
//   - SERVER_PORT=9090 переопределит server.port.
func (c *Config) ApplyEnvOverrides() {
	if v := os.Getenv("NOTEKEEPER_STORAGE_DRIVER"); v != "" {
		c.Storage.Driver = strings.ToLower(strings.TrimSpace(v))
	}
	if v := os.Getenv("SERVER_PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil && p > 0 {
			c.Server.Port = p
		}
	}
}
