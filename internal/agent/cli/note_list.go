package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	serr "github.com/IvanChernomyrdin/go-yandex-notekeeper/internal/shared/errors"
	"github.com/IvanChernomyrdin/go-yandex-notekeeper/internal/shared/models"
)

const timeLayout = "2006-01-02 15:04:05"

// NoteList создаёт CLI-команду списка заметок.
//
// Без флагов печатает все заметки, последние изменённые сверху.
// --category оставляет одну категорию ("All" — без фильтра),
// --search ищет подстроку без учёта регистра в заголовке, тексте и категории.
//
// Примеры:
//
//	notekeeper list
//	notekeeper list --category work --search report
func NoteList(app *App) *cobra.Command {
	var category, query string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Список заметок",
		Long: `Печатает заметки: ID, заголовок, категория, время изменения.

Примеры:
  notekeeper list
  notekeeper list --category work
  notekeeper list --search milk
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := app.requireUser(); err != nil {
				return err
			}

			items := app.Core.Notes.View(category, query)
			if len(items) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), app.Styles.Muted.Render("no notes"))
				return nil
			}

			for _, n := range items {
				app.printRow(cmd.OutOrStdout(), n)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&category, "category", "", `category filter ("All" or empty shows every note)`)
	cmd.Flags().StringVar(&query, "search", "", "case-insensitive search in title, content and category")

	return cmd
}

// NoteShow создаёт CLI-команду показа одной заметки.
func NoteShow(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Показать заметку",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := app.requireUser(); err != nil {
				return err
			}

			n, ok := app.Core.Notes.Get(args[0])
			if !ok {
				return fmt.Errorf("note %s: %w", args[0], serr.ErrNotFound)
			}

			w := cmd.OutOrStdout()
			fmt.Fprintln(w, app.Styles.Title.Render(n.Title))
			if n.Category != "" {
				fmt.Fprintln(w, app.Styles.Badge.Render(n.Category))
			}
			fmt.Fprintf(w, "ID: %s\nCreatedAt: %s\n", n.ID, n.CreatedAt.Local().Format(timeLayout))
			if n.Edited() {
				fmt.Fprintf(w, "UpdatedAt: %s\n", n.UpdatedAt.Local().Format(timeLayout))
			}
			fmt.Fprintln(w)
			fmt.Fprintln(w, app.Styles.Body.Render(n.Content))
			return nil
		},
	}
}

// NoteCategories создаёт CLI-команду списка категорий ("All" всегда первая).
func NoteCategories(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "Список категорий",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := app.requireUser(); err != nil {
				return err
			}
			for _, c := range app.Core.Notes.Categories() {
				fmt.Fprintln(cmd.OutOrStdout(), app.Styles.Category.Render(c))
			}
			return nil
		},
	}
}

func (a *App) printRow(w io.Writer, n models.Note) {
	stamp := "created " + n.CreatedAt.Local().Format(timeLayout)
	if n.Edited() {
		stamp = "edited " + n.UpdatedAt.Local().Format(timeLayout)
	}

	category := ""
	if n.Category != "" {
		category = a.Styles.Category.Render("[" + n.Category + "]")
	}

	fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
		n.ID,
		a.Styles.Title.Render(n.Title),
		category,
		a.Styles.Muted.Render(stamp),
	)
}
