// HTTP-хендлеры темы оформления
package api

import (
	"encoding/json"
	"net/http"

	"github.com/IvanChernomyrdin/go-yandex-notekeeper/internal/agent/theme"
	serr "github.com/IvanChernomyrdin/go-yandex-notekeeper/internal/shared/errors"
	"github.com/IvanChernomyrdin/go-yandex-notekeeper/internal/shared/models"
)

// GetTheme возвращает текущую тему и CSS custom properties палитры.
//
// @Summary      Get theme
// @Tags         theme
// @Produce      json
// @Success      200 {object} models.ThemeResponse
// @Router       /theme [get]
func (h *Handler) GetTheme(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, themeResponse(h.App.Theme.Mode()))
}

// ToggleTheme переключает light <-> dark.
//
// @Summary      Toggle theme
// @Tags         theme
// @Produce      json
// @Success      200 {object} models.ThemeResponse
// @Failure      500 {object} models.ErrorResponse "Theme switched but not persisted"
// @Router       /theme/toggle [post]
func (h *Handler) ToggleTheme(w http.ResponseWriter, r *http.Request) {
	m, err := h.App.Theme.Toggle(r.Context())
	if err != nil {
		h.fail(w, "toggle theme", err)
		return
	}
	writeJSON(w, http.StatusOK, themeResponse(m))
}

// SetTheme устанавливает тему явно.
//
// @Summary      Set theme
// @Tags         theme
// @Accept       json
// @Produce      json
// @Param        request body models.ThemeRequest true "light or dark"
// @Success      200 {object} models.ThemeResponse
// @Failure      400 {object} models.ErrorResponse "Unknown theme or bad JSON"
// @Router       /theme [put]
func (h *Handler) SetTheme(w http.ResponseWriter, r *http.Request) {
	var req models.ThemeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, serr.ErrBadJSON)
		return
	}

	m, err := theme.ParseMode(req.Theme)
	if err != nil {
		h.fail(w, "set theme", err)
		return
	}
	if err := h.App.Theme.Set(r.Context(), m); err != nil {
		h.fail(w, "set theme", err)
		return
	}
	writeJSON(w, http.StatusOK, themeResponse(m))
}

func themeResponse(m theme.Mode) models.ThemeResponse {
	return models.ThemeResponse{
		Theme:  string(m),
		Tokens: theme.PaletteFor(m).Tokens(),
	}
}
