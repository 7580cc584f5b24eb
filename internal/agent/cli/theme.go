package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/IvanChernomyrdin/go-yandex-notekeeper/internal/agent/theme"
)

// NewThemeCmd создаёт CLI-команду темы оформления.
//
// Без аргумента печатает текущую тему, "toggle" переключает,
// "light"/"dark" устанавливают явно. Выбор сохраняется между запусками.
//
// Примеры:
//
//	notekeeper theme
//	notekeeper theme toggle
//	notekeeper theme dark
func NewThemeCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:       "theme [toggle|light|dark]",
		Short:     "Показать или переключить тему",
		Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{"toggle", string(theme.Light), string(theme.Dark)},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			if len(args) == 1 {
				var err error
				if args[0] == "toggle" {
					_, err = app.Core.Theme.Toggle(ctx)
				} else {
					err = app.Core.Theme.Set(ctx, theme.Mode(args[0]))
				}
				app.restyle()
				if err != nil {
					return err
				}
			}

			m := app.Core.Theme.Mode()
			fmt.Fprintf(cmd.OutOrStdout(), "theme: %s\n", app.Styles.Title.Render(string(m)))
			return nil
		},
	}
}
