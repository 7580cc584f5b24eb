package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	serr "github.com/IvanChernomyrdin/go-yandex-notekeeper/internal/shared/errors"
	"github.com/IvanChernomyrdin/go-yandex-notekeeper/internal/shared/models"
	"github.com/IvanChernomyrdin/go-yandex-notekeeper/internal/shared/utils"
)

// NoteEdit создаёт CLI-команду для изменения заметки.
//
// Меняются только переданные флаги, остальные поля переносятся из текущей заметки.
// Пустой заголовок при редактировании отклоняется.
//
// Примеры:
//
//	notekeeper edit <id> --title "new title"
//	notekeeper edit <id> --category "" --content "moved out of category"
func NoteEdit(app *App) *cobra.Command {
	var (
		title, content, category     string
		setTitle, setContent, setCat bool
	)

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Изменить заметку",
		Long: `Изменяет заметку по ID. Поля без флага не меняются.

Примеры:
  notekeeper edit <id> --title "new title"
  notekeeper edit <id> --content "new text" --category work
`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := app.requireUser(); err != nil {
				return err
			}
			id := args[0]

			if !setTitle && !setContent && !setCat {
				return fmt.Errorf("nothing to update: set at least one flag")
			}

			current, ok := app.Core.Notes.Get(id)
			if !ok {
				return fmt.Errorf("note %s: %w", id, serr.ErrNotFound)
			}

			var titlePtr, contentPtr, categoryPtr *string
			if setTitle {
				if strings.TrimSpace(title) == "" {
					return fmt.Errorf("title must not be empty: %w", serr.ErrInvalidInput)
				}
				if err := validateTitle(title); err != nil {
					return err
				}
				titlePtr = utils.Ptr(title)
			}
			if setContent {
				contentPtr = utils.Ptr(content)
			}
			if setCat {
				categoryPtr = utils.Ptr(category)
			}

			in := models.NoteInput{
				Title:    utils.Deref(titlePtr, current.Title),
				Content:  utils.Deref(contentPtr, current.Content),
				Category: utils.Deref(categoryPtr, current.Category),
			}
			if err := app.Core.Notes.Update(cmd.Context(), id, in); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", app.Styles.Success.Render("updated note"), id)
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "new title (max 64 characters)")
	cmd.Flags().StringVar(&content, "content", "", "new content")
	cmd.Flags().StringVar(&category, "category", "", "new category (empty removes it)")

	cmd.PreRun = func(cmd *cobra.Command, args []string) {
		setTitle = cmd.Flags().Changed("title")
		setContent = cmd.Flags().Changed("content")
		setCat = cmd.Flags().Changed("category")
	}

	return cmd
}

// NoteDelete создаёт CLI-команду удаления заметки.
//
// Пример:
//
//	notekeeper delete <id>
func NoteDelete(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Удалить заметку",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := app.requireUser(); err != nil {
				return err
			}
			id := args[0]

			if _, ok := app.Core.Notes.Get(id); !ok {
				return fmt.Errorf("note %s: %w", id, serr.ErrNotFound)
			}
			if err := app.Core.Notes.Delete(cmd.Context(), id); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", app.Styles.Success.Render("deleted note"), id)
			return nil
		},
	}
}
