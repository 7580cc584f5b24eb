// HTTP-хендлеры заметок и категорий
package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"unicode/utf8"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	serr "github.com/IvanChernomyrdin/go-yandex-notekeeper/internal/shared/errors"
	"github.com/IvanChernomyrdin/go-yandex-notekeeper/internal/shared/models"
	"github.com/IvanChernomyrdin/go-yandex-notekeeper/internal/shared/utils"
)

// ListNotes возвращает заметки в порядке отображения (последние изменённые сверху).
//
// Query-параметры:
//   - category: фильтр по категории ("" или "All" — без фильтра);
//   - q: поиск подстроки без учёта регистра в title, content и category.
//
// @Summary      List notes
// @Tags         notes
// @Produce      json
// @Security     BearerAuth
// @Param        category query string false "Category filter (All = no filter)"
// @Param        q        query string false "Search query"
// @Success      200 {object} models.NotesResponse
// @Failure      401 {object} models.ErrorResponse "Unauthorized"
// @Failure      409 {object} models.ErrorResponse "Notes are not loaded"
// @Router       /notes [get]
func (h *Handler) ListNotes(w http.ResponseWriter, r *http.Request) {
	if err := h.requireReady(); err != nil {
		h.fail(w, "list notes", err)
		return
	}

	q := r.URL.Query()
	writeJSON(w, http.StatusOK, models.NotesResponse{
		Notes: h.App.Notes.View(q.Get("category"), q.Get("q")),
	})
}

// CreateNote создаёт заметку. Пустой title превращается в "Untitled".
//
// Ответы:
//   - 201 Created: заметка создана и сохранена;
//   - 400 Bad Request: неверный JSON или title длиннее 64 символов;
//   - 500/507: заметка создана в памяти, но не сохранена; она приходит в поле note.
//
// @Summary      Create note
// @Tags         notes
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body models.NoteInput true "Note"
// @Success      201 {object} models.Note
// @Failure      400 {object} models.ErrorResponse "Invalid input or bad JSON"
// @Failure      401 {object} models.ErrorResponse "Unauthorized"
// @Failure      500 {object} models.ErrorResponse "Created in memory but not persisted, note included"
// @Failure      507 {object} models.ErrorResponse "Storage quota exceeded, note included"
// @Router       /notes [post]
func (h *Handler) CreateNote(w http.ResponseWriter, r *http.Request) {
	var in models.NoteInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		WriteError(w, http.StatusBadRequest, serr.ErrBadJSON)
		return
	}
	if err := validateTitle(in.Title); err != nil {
		h.fail(w, "create note", err)
		return
	}

	n, err := h.App.Notes.Create(r.Context(), in)
	if err != nil {
		if n.ID == "" {
			h.fail(w, "create note", err)
			return
		}
		// заметка уже в коллекции, отдаём её вместе с ошибкой записи
		status, public := StatusFor(err)
		h.Log.Error("create note failed", zap.Error(err))
		writeJSON(w, status, ErrorResponse{Error: public.Error(), Note: &n})
		return
	}
	writeJSON(w, http.StatusCreated, n)
}

// GetNote возвращает заметку по ID.
//
// @Summary      Get note
// @Tags         notes
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Note ID"
// @Success      200 {object} models.Note
// @Failure      401 {object} models.ErrorResponse "Unauthorized"
// @Failure      404 {object} models.ErrorResponse "Not found"
// @Router       /notes/{id} [get]
func (h *Handler) GetNote(w http.ResponseWriter, r *http.Request) {
	if err := h.requireReady(); err != nil {
		h.fail(w, "get note", err)
		return
	}

	n, ok := h.App.Notes.Get(chi.URLParam(r, "id"))
	if !ok {
		WriteError(w, http.StatusNotFound, serr.ErrNotFound)
		return
	}
	writeJSON(w, http.StatusOK, n)
}

// UpdateNote изменяет title, content и category заметки.
//
// Не переданные поля остаются прежними. Неизвестный ID — no-op, тоже 204.
//
// @Summary      Update note
// @Description  Replaces title/content/category. Omitted fields keep their values. Unknown id is a no-op.
// @Tags         notes
// @Accept       json
// @Security     BearerAuth
// @Param        id   path string                   true "Note ID"
// @Param        body body models.UpdateNoteRequest true "Fields to change"
// @Success      204
// @Failure      400 {object} models.ErrorResponse "Invalid input or bad JSON"
// @Failure      401 {object} models.ErrorResponse "Unauthorized"
// @Failure      500 {object} models.ErrorResponse "Internal server error"
// @Failure      507 {object} models.ErrorResponse "Storage quota exceeded"
// @Router       /notes/{id} [put]
func (h *Handler) UpdateNote(w http.ResponseWriter, r *http.Request) {
	var req models.UpdateNoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, serr.ErrBadJSON)
		return
	}
	if req.Title != nil {
		if err := validateTitle(*req.Title); err != nil {
			h.fail(w, "update note", err)
			return
		}
	}

	id := chi.URLParam(r, "id")
	current, _ := h.App.Notes.Get(id)
	in := models.NoteInput{
		Title:    utils.Deref(req.Title, current.Title),
		Content:  utils.Deref(req.Content, current.Content),
		Category: utils.Deref(req.Category, current.Category),
	}

	if err := h.App.Notes.Update(r.Context(), id, in); err != nil {
		h.fail(w, "update note", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// DeleteNote удаляет заметку. Неизвестный ID — no-op, тоже 204.
//
// @Summary      Delete note
// @Tags         notes
// @Security     BearerAuth
// @Param        id path string true "Note ID"
// @Success      204
// @Failure      401 {object} models.ErrorResponse "Unauthorized"
// @Failure      500 {object} models.ErrorResponse "Internal server error"
// @Router       /notes/{id} [delete]
func (h *Handler) DeleteNote(w http.ResponseWriter, r *http.Request) {
	if err := h.App.Notes.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.fail(w, "delete note", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Categories возвращает "All" и категории заметок в порядке первого появления.
//
// @Summary      List categories
// @Tags         notes
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} models.CategoriesResponse
// @Failure      401 {object} models.ErrorResponse "Unauthorized"
// @Router       /categories [get]
func (h *Handler) Categories(w http.ResponseWriter, r *http.Request) {
	if err := h.requireReady(); err != nil {
		h.fail(w, "categories", err)
		return
	}
	writeJSON(w, http.StatusOK, models.CategoriesResponse{Categories: h.App.Notes.Categories()})
}

func (h *Handler) requireReady() error {
	if h.App.Notes.Loading() {
		return fmt.Errorf("notes are loading: %w", serr.ErrNotReady)
	}
	if _, ok := h.App.Notes.Owner(); !ok {
		return serr.ErrNotReady
	}
	return nil
}

func validateTitle(title string) error {
	if n := utf8.RuneCountInString(title); n > models.MaxTitleLen {
		return fmt.Errorf("title is %d characters, max %d: %w", n, models.MaxTitleLen, serr.ErrInvalidInput)
	}
	return nil
}
