// Package api реализует HTTP-слой NoteKeeper.
//
// Пакет отвечает за:
//   - обработку входящих запросов и формирование ответов (JSON, статусы);
//   - маппинг доменных ошибок (session/notes/theme/kv) в HTTP-коды и сообщения;
//   - выпуск access-токена при входе.
//
// Маршруты регистрируются в пакете internal/server/net/http.
package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/IvanChernomyrdin/go-yandex-notekeeper/internal/agent/app"
	"github.com/IvanChernomyrdin/go-yandex-notekeeper/internal/server/crypto"
	"github.com/IvanChernomyrdin/go-yandex-notekeeper/internal/server/middleware"
	serr "github.com/IvanChernomyrdin/go-yandex-notekeeper/internal/shared/errors"
	"github.com/IvanChernomyrdin/go-yandex-notekeeper/internal/shared/logger"
	"github.com/IvanChernomyrdin/go-yandex-notekeeper/internal/shared/models"
)

// Каждый метод если будет возвращать ответ то будет это делать в JSON
// Вынес Content-Type и JSON для удобства
const (
	JsonContentType string = "application/json"
	ContentType     string = "Content-Type"
)

// ErrorResponse — тело ответа с ошибкой.
type ErrorResponse = models.ErrorResponse

// Handler агрегирует зависимости HTTP-слоя и предоставляет методы-хендлеры.
//
// Handler содержит:
//   - App: хранилища сессии, заметок и темы;
//   - Log: логгер для записи событий и ошибок;
//   - Verifier: компонент проверки JWT и middleware авторизации;
//   - JWT: параметры выпуска access-токенов.
type Handler struct {
	App      *app.App
	Log      *logger.Logger
	Verifier *middleware.JWTVerifier
	JWT      crypto.JWTConfig
}

// NewHandler создаёт экземпляр Handler с переданными зависимостями.
func NewHandler(a *app.App, log *logger.Logger, verifier *middleware.JWTVerifier, jwtCfg crypto.JWTConfig) *Handler {
	if log == nil {
		log = logger.Nop()
	}
	return &Handler{
		App:      a,
		Log:      log,
		Verifier: verifier,
		JWT:      jwtCfg,
	}
}

// Вспомогательная функция вывода ошибки
func WriteError(w http.ResponseWriter, status int, err error) {
	w.Header().Set(ContentType, JsonContentType)
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(ErrorResponse{
		Error: err.Error(),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set(ContentType, JsonContentType)
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// StatusFor сопоставляет доменную ошибку HTTP-статусу и публичному сообщению.
//
// Сбой записи не откатывает изменения в памяти, поэтому 500/507 означают
// "изменение применено, но не сохранено".
func StatusFor(err error) (int, error) {
	switch {
	case errors.Is(err, serr.ErrInvalidCredentials):
		return http.StatusBadRequest, serr.ErrInvalidCredentials
	case errors.Is(err, serr.ErrInvalidInput):
		return http.StatusBadRequest, serr.ErrInvalidInput
	case errors.Is(err, serr.ErrBadJSON):
		return http.StatusBadRequest, serr.ErrBadJSON
	case errors.Is(err, serr.ErrUnauthorized):
		return http.StatusUnauthorized, serr.ErrUnauthorized
	case errors.Is(err, serr.ErrNotFound):
		return http.StatusNotFound, serr.ErrNotFound
	case errors.Is(err, serr.ErrNotReady):
		return http.StatusConflict, serr.ErrNotReady
	case errors.Is(err, serr.ErrStaleLoad):
		return http.StatusConflict, serr.ErrStaleLoad
	case errors.Is(err, serr.ErrQuotaExceeded):
		return http.StatusInsufficientStorage, serr.ErrQuotaExceeded
	case errors.Is(err, serr.ErrPersistence):
		return http.StatusInternalServerError, serr.ErrPersistence
	default:
		return http.StatusInternalServerError, serr.ErrInternal
	}
}

// fail пишет ответ об ошибке; серверные ошибки логируются целиком.
func (h *Handler) fail(w http.ResponseWriter, op string, err error) {
	status, public := StatusFor(err)
	if status >= http.StatusInternalServerError {
		h.Log.Error(op+" failed", zap.Error(err))
	}
	WriteError(w, status, public)
}
