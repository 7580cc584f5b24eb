// HTTP-хендлеры сессии: вход, текущий пользователь, выход
package api

import (
	"encoding/json"
	"net/http"

	"github.com/IvanChernomyrdin/go-yandex-notekeeper/internal/server/crypto"
	"github.com/IvanChernomyrdin/go-yandex-notekeeper/internal/server/middleware"
	serr "github.com/IvanChernomyrdin/go-yandex-notekeeper/internal/shared/errors"
	"github.com/IvanChernomyrdin/go-yandex-notekeeper/internal/shared/models"
)

// Login обрабатывает вход пользователя и выдачу access-токена.
//
// Любой непустой email и пароль принимаются; после входа загружаются заметки пользователя.
//
// Ответы:
//   - 200 OK: успешный вход;
//   - 400 Bad Request: неверный JSON, пустой email или пароль;
//   - 500/507: сессия активна в памяти, но не сохранена.
//
// @Summary      Login
// @Description  Accepts any non-empty email/password pair, activates the session and loads the user's notes.
// @Tags         session
// @Accept       json
// @Produce      json
// @Param        request body models.LoginRequest true "Login request"
// @Success      200 {object} models.LoginResponse
// @Failure      400 {object} models.ErrorResponse "Bad JSON or email/password required"
// @Failure      500 {object} models.ErrorResponse "Internal server error"
// @Failure      507 {object} models.ErrorResponse "Storage quota exceeded"
// @Router       /session/login [post]
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, serr.ErrBadJSON)
		return
	}

	u, err := h.App.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		h.fail(w, "login", err)
		return
	}

	token, err := crypto.NewAccessToken(u.Email, h.JWT)
	if err != nil {
		h.fail(w, "issue token", err)
		return
	}

	writeJSON(w, http.StatusOK, models.LoginResponse{User: u, AccessToken: token})
}

// CurrentSession возвращает пользователя активной сессии.
//
// @Summary      Current session
// @Tags         session
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} models.User
// @Failure      401 {object} models.ErrorResponse "Unauthorized"
// @Router       /session [get]
func (h *Handler) CurrentSession(w http.ResponseWriter, r *http.Request) {
	u, ok := middleware.UserFromContext(r.Context())
	if !ok {
		WriteError(w, http.StatusUnauthorized, serr.ErrUnauthorized)
		return
	}
	writeJSON(w, http.StatusOK, u)
}

// Logout завершает сессию; после него выданный токен больше не принимается.
//
// @Summary      Logout
// @Tags         session
// @Security     BearerAuth
// @Success      204
// @Failure      401 {object} models.ErrorResponse "Unauthorized"
// @Failure      500 {object} models.ErrorResponse "Session cleared in memory but not persisted"
// @Router       /session/logout [post]
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.App.Logout(r.Context()); err != nil {
		h.fail(w, "logout", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
