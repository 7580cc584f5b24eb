package api

import (
	"context"
	"errors"
	"net/http"
	"net/url"

	"github.com/IvanChernomyrdin/go-yandex-notekeeper/internal/shared/models"
)

// ListNotes возвращает заметки в порядке отображения.
//
//	GET /notes?category=...&q=...
//
// Пустые category и query не передаются.
func (c *Client) ListNotes(ctx context.Context, category, query string) ([]models.Note, error) {
	q := url.Values{}
	if category != "" {
		q.Set("category", category)
	}
	if query != "" {
		q.Set("q", query)
	}

	path := "/notes"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	var resp models.NotesResponse
	err := c.do(ctx, http.MethodGet, path, nil, &resp)
	return resp.Notes, err
}

// CreateNote создаёт заметку.
//
//	POST /notes
//
// Если сервер создал заметку, но не сохранил её, возвращается
// и заметка, и ошибка.
func (c *Client) CreateNote(ctx context.Context, in models.NoteInput) (models.Note, error) {
	var n models.Note
	err := c.do(ctx, http.MethodPost, "/notes", in, &n)

	var apiErr *Error
	if errors.As(err, &apiErr) && apiErr.Note != nil {
		n = *apiErr.Note
	}
	return n, err
}

// GetNote возвращает заметку по ID.
//
//	GET /notes/{id}
func (c *Client) GetNote(ctx context.Context, id string) (models.Note, error) {
	var n models.Note
	err := c.do(ctx, http.MethodGet, "/notes/"+url.PathEscape(id), nil, &n)
	return n, err
}

// UpdateNote меняет переданные поля заметки. Сервер отвечает 204.
//
//	PUT /notes/{id}
func (c *Client) UpdateNote(ctx context.Context, id string, req models.UpdateNoteRequest) error {
	return c.do(ctx, http.MethodPut, "/notes/"+url.PathEscape(id), req, nil)
}

// DeleteNote удаляет заметку. Неизвестный ID — не ошибка.
//
//	DELETE /notes/{id}
func (c *Client) DeleteNote(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/notes/"+url.PathEscape(id), nil, nil)
}

// Categories возвращает "All" и категории заметок.
//
//	GET /categories
func (c *Client) Categories(ctx context.Context) ([]string, error) {
	var resp models.CategoriesResponse
	err := c.do(ctx, http.MethodGet, "/categories", nil, &resp)
	return resp.Categories, err
}
