// Package cli реализует командный интерфейс (CLI) NoteKeeper.
//
// Пакет отвечает за:
//   - определение root-команды и набора подкоманд;
//   - загрузку конфигурации и открытие хранилища слотов;
//   - восстановление сессии, темы и заметок перед выполнением команды;
//   - вывод результата в цветах активной темы.
//
// Точка входа пакета — функция Execute.
package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	coreapp "github.com/IvanChernomyrdin/go-yandex-notekeeper/internal/agent/app"
	"github.com/IvanChernomyrdin/go-yandex-notekeeper/internal/agent/config"
	"github.com/IvanChernomyrdin/go-yandex-notekeeper/internal/agent/notes"
	"github.com/IvanChernomyrdin/go-yandex-notekeeper/internal/agent/theme"
	"github.com/IvanChernomyrdin/go-yandex-notekeeper/internal/shared/logger"
	"github.com/IvanChernomyrdin/go-yandex-notekeeper/internal/shared/models"
)

// errNotLoggedIn возвращают команды заметок без активной сессии.
var errNotLoggedIn = errors.New("not logged in, run: notekeeper login")

// App содержит состояние CLI-приложения, разделяемое между командами.
//
// Экземпляр создаётся при построении root-команды, заполняется
// в PersistentPreRunE и закрывается после RunE подкоманды, в том числе при ошибке.
type App struct {
	// ConfigPath — путь к YAML-конфигу (по умолчанию ~/.notekeeper/config.yaml).
	ConfigPath string
	// Ephemeral — хранить всё в памяти процесса, ничего не писать на диск.
	Ephemeral bool

	Cfg    *config.Config
	Log    *logger.Logger
	Core   *coreapp.App
	Styles theme.Styles

	// startErr — ошибка восстановления заметок при старте; команды заметок её вернут.
	startErr error
}

// NewRootCmd создаёт root-команду CLI и регистрирует подкоманды.
//
// buildVersion и buildDate используются командой version.
func NewRootCmd(buildVersion, buildDate string) *cobra.Command {
	app := &App{}

	cmd := &cobra.Command{
		Use:   "notekeeper",
		Short: "NoteKeeper CLI — личные заметки с категориями и поиском",
		Long: `NoteKeeper CLI.

Команды:
  login       Войти (любой непустой email и пароль)
  logout      Выйти
  whoami      Текущий пользователь
  create      Создать заметку
  edit        Изменить заметку
  delete      Удалить заметку
  list        Список заметок (фильтр по категории и поиск)
  show        Показать заметку
  categories  Список категорий
  theme       Показать или переключить тему
  version     Версия и дата сборки

Примеры:
  notekeeper login --email a@b.com
  notekeeper create --title "Shopping" --content "milk" --category home
  notekeeper list --category home --search milk
`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Name() == "version" {
				return nil
			}
			return app.open(cmd)
		},
	}

	cmd.SetOut(os.Stdout)
	cmd.SetErr(os.Stderr)

	cmd.PersistentFlags().StringVar(&app.ConfigPath, "config", "", "path to config.yaml (default ~/.notekeeper/config.yaml)")
	cmd.PersistentFlags().BoolVar(&app.Ephemeral, "ephemeral", false, "keep everything in memory, write nothing to disk")

	cmd.AddCommand(NewLoginCmd(app))
	cmd.AddCommand(NewLogoutCmd(app))
	cmd.AddCommand(NewWhoamiCmd(app))
	cmd.AddCommand(NoteCreate(app))
	cmd.AddCommand(NoteEdit(app))
	cmd.AddCommand(NoteDelete(app))
	cmd.AddCommand(NoteList(app))
	cmd.AddCommand(NoteShow(app))
	cmd.AddCommand(NoteCategories(app))
	cmd.AddCommand(NewThemeCmd(app))
	cmd.AddCommand(NewVersionCmd(buildVersion, buildDate))

	// cobra не вызывает PersistentPostRunE, если RunE вернул ошибку,
	// поэтому хранилище закрывается обёрткой над каждой подкомандой
	for _, sub := range cmd.Commands() {
		if sub.RunE != nil {
			sub.RunE = app.closing(sub.RunE)
		}
	}

	return cmd
}

// closing оборачивает RunE: после выполнения команды хранилище и лог закрываются всегда.
func (a *App) closing(run func(*cobra.Command, []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) (err error) {
		defer func() {
			err = errors.Join(err, a.close())
		}()
		return run(cmd, args)
	}
}

// open загружает конфиг, открывает хранилище и восстанавливает состояние.
func (a *App) open(cmd *cobra.Command) error {
	path := a.ConfigPath
	if path == "" {
		p, err := config.DefaultPath()
		if err != nil {
			return err
		}
		path = p
	}

	cfg, err := config.Load(path)
	if err != nil {
		return err
	}
	if a.Ephemeral {
		cfg.Storage.Driver = config.DriverMemory
	}
	a.Cfg = cfg

	if a.Ephemeral {
		a.Log = logger.Nop()
	} else {
		a.Log = logger.New(cfg.Log.File, cfg.Log.Level)
	}

	store, err := OpenStore(cmd.Context(), cfg.Storage)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}

	preferDark := theme.DetectPreferDark()
	if cfg.Theme.PreferDark != nil {
		preferDark = *cfg.Theme.PreferDark
	}

	a.Core = coreapp.New(store, a.Log, preferDark)
	if err := a.Core.Start(cmd.Context()); err != nil {
		a.Log.Warn("restore failed", zap.Error(err))
		a.startErr = err
	}
	a.restyle()
	return nil
}

// close закрывает хранилище и сбрасывает буфер лога. Повторный вызов безопасен.
func (a *App) close() error {
	if a.Core == nil {
		return nil
	}
	err := a.Core.Close()
	_ = a.Log.Sync()
	a.Core = nil
	return err
}

// restyle пересобирает стили вывода под текущую тему.
func (a *App) restyle() {
	a.Styles = theme.NewStyles(theme.PaletteFor(a.Core.Theme.Mode()))
}

// requireUser возвращает активного пользователя, если его заметки загружены.
func (a *App) requireUser() (models.User, error) {
	u, ok := a.Core.Session.CurrentUser()
	if !ok {
		return models.User{}, errNotLoggedIn
	}
	if a.Core.Notes.State() != notes.StateReady {
		if a.startErr != nil {
			return models.User{}, fmt.Errorf("notes are not loaded: %w", a.startErr)
		}
		return models.User{}, fmt.Errorf("notes are not loaded for %s", u.Email)
	}
	return u, nil
}

// Execute запускает обработку CLI-команд.
//
// При ошибке выполнения команды сообщение выводится в stderr, после чего процесс
// завершается с кодом 1 (os.Exit(1)).
func Execute(buildVersion, buildDate string) {
	if err := NewRootCmd(buildVersion, buildDate).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
