package cli

import (
	"fmt"
	"unicode/utf8"

	"github.com/spf13/cobra"

	serr "github.com/IvanChernomyrdin/go-yandex-notekeeper/internal/shared/errors"
	"github.com/IvanChernomyrdin/go-yandex-notekeeper/internal/shared/models"
)

// NoteCreate создаёт CLI-команду для новой заметки.
//
// Пустой заголовок превращается в "Untitled", заголовок длиннее 64 символов отклоняется.
// Новая заметка встаёт в начало коллекции и сразу сохраняется.
//
// Пример:
//
//	notekeeper create --title "Shopping" --content "milk, eggs" --category home
func NoteCreate(app *App) *cobra.Command {
	var in models.NoteInput

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Создать заметку",
		Long: `Создаёт заметку.

Пример:
  notekeeper create --title "Shopping" --content "milk, eggs" --category home
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := app.requireUser(); err != nil {
				return err
			}
			if err := validateTitle(in.Title); err != nil {
				return err
			}

			n, err := app.Core.Notes.Create(cmd.Context(), in)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", app.Styles.Success.Render("created note"), n.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&in.Title, "title", "", "note title (max 64 characters)")
	cmd.Flags().StringVar(&in.Content, "content", "", "note content")
	cmd.Flags().StringVar(&in.Category, "category", "", "note category")

	return cmd
}

func validateTitle(title string) error {
	if n := utf8.RuneCountInString(title); n > models.MaxTitleLen {
		return fmt.Errorf("title is %d characters, max %d: %w", n, models.MaxTitleLen, serr.ErrInvalidInput)
	}
	return nil
}
