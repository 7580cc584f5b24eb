package cli

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// NewLoginCmd создаёт CLI-команду входа.
//
// Проверки учётных данных нет: любой непустой email и пароль принимаются,
// пароль нигде не сохраняется. После входа загружаются заметки пользователя.
//
// Пароль берётся из --password, из STDIN (--password-stdin)
// либо запрашивается интерактивно со скрытым вводом.
//
// Пример использования:
//
//	notekeeper login --email a@b.com
//	echo "p" | notekeeper login --email a@b.com --password-stdin
func NewLoginCmd(app *App) *cobra.Command {
	var (
		email, password   string
		passwordFromStdin bool
	)

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Войти (любой непустой email и пароль)",
		Long: `Логин пользователя.

Пример:
  notekeeper login --email test@example.com --password p
  echo "p" | notekeeper login --email test@example.com --password-stdin
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("password") {
				pw, err := ReadPassword(cmd, passwordFromStdin)
				if err != nil {
					return err
				}
				password = pw
			}

			u, err := app.Core.Login(cmd.Context(), email, password)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s %s <%s>\n",
				app.Styles.Success.Render("logged in as"),
				app.Styles.Title.Render(u.Name),
				u.Email,
			)
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "email for login")
	cmd.Flags().StringVar(&password, "password", "", "password for login")
	cmd.Flags().BoolVar(&passwordFromStdin, "password-stdin", false, "read password from STDIN (for scripts)")
	cmd.MarkFlagRequired("email")
	cmd.MarkFlagsMutuallyExclusive("password", "password-stdin")

	return cmd
}

// NewLogoutCmd создаёт CLI-команду выхода. Повторный вызов безопасен.
func NewLogoutCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Выйти",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Core.Logout(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "logged out")
			return nil
		},
	}
}

// NewWhoamiCmd создаёт CLI-команду, печатающую текущего пользователя.
func NewWhoamiCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Текущий пользователь",
		RunE: func(cmd *cobra.Command, args []string) error {
			u, ok := app.Core.Session.CurrentUser()
			if !ok {
				fmt.Fprintln(cmd.OutOrStdout(), "not logged in")
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s <%s>\n", app.Styles.Title.Render(u.Name), u.Email)
			return nil
		},
	}
}

// readPassword читает пароль для входа.
//
// Режимы:
//   - fromStdin=true: читает пароль из STDIN полностью (удобно для скриптов/CI);
//   - fromStdin=false: читает пароль интерактивно из терминала со скрытым вводом.
//
// Если fromStdin=false, но stdin не является терминалом, функция вернёт ошибку
// "stdin is not a terminal; use --password-stdin".
// Пустой пароль здесь не проверяется: это делает хранилище сессии.
func readPassword(cmd *cobra.Command, fromStdin bool) (string, error) {
	if fromStdin {
		b, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", fmt.Errorf("read password from stdin: %w", err)
		}
		return string(bytes.TrimRight(b, "\r\n")), nil
	}

	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return "", errors.New("stdin is not a terminal; use --password-stdin")
	}

	fmt.Fprint(cmd.ErrOrStderr(), "Password: ")
	pwBytes, err := term.ReadPassword(fd)
	fmt.Fprintln(cmd.ErrOrStderr())
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}
	return strings.TrimSpace(string(pwBytes)), nil
}
