// Package http реализует маршрутизацию HTTP-слоя NoteKeeper.
//
// Пакет отвечает за:
//   - регистрацию HTTP-маршрутов и настройку роутера (chi);
//   - логирование выполнения HTTP-запросов;
//   - проверку JWT access-токенов на защищённых маршрутах.
package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/IvanChernomyrdin/go-yandex-notekeeper/internal/server/api"
	"github.com/IvanChernomyrdin/go-yandex-notekeeper/internal/server/middleware"
)

// NewRouter создаёт и настраивает HTTP-роутер сервера.
//
// Роутер использует chi.Router и регистрирует:
//   - middleware логирования для всех запросов;
//   - публичные эндпоинты входа и темы;
//   - группу защищённых JWT эндпоинтов сессии, заметок и категорий.
func NewRouter(h *api.Handler) http.Handler {
	r := chi.NewRouter()
	// логирование всех запросов
	r.Use(middleware.LoggerMiddleware(h.Log))

	// добавляем swagger
	r.Get("/swagger/*", httpSwagger.WrapHandler)
	// Публичные пути
	r.Post("/session/login", h.Login)
	r.Route("/theme", func(r chi.Router) {
		r.Get("/", h.GetTheme)
		r.Put("/", h.SetTheme)
		r.Post("/toggle", h.ToggleTheme)
	})
	// защищены пути
	r.Group(func(r chi.Router) {
		// проверка access токена и активной сессии
		r.Use(h.Verifier.AuthMiddleware())

		r.Get("/session", h.CurrentSession)
		r.Post("/session/logout", h.Logout)

		r.Route("/notes", func(r chi.Router) {
			r.Get("/", h.ListNotes)
			r.Post("/", h.CreateNote)
			r.Get("/{id}", h.GetNote)
			r.Put("/{id}", h.UpdateNote)    // неизвестный id — no-op
			r.Delete("/{id}", h.DeleteNote) // неизвестный id — no-op
		})
		r.Get("/categories", h.Categories)
	})

	return r
}
