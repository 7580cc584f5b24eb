// Методы клиента для эндпоинтов сессии: вход, текущий пользователь, выход.
package api

import (
	"context"
	"net/http"

	"github.com/IvanChernomyrdin/go-yandex-notekeeper/internal/shared/models"
)

// Login входит пользователем и запоминает access-токен для следующих запросов.
//
//	POST /session/login
func (c *Client) Login(ctx context.Context, email, password string) (models.User, error) {
	var resp models.LoginResponse
	err := c.do(ctx, http.MethodPost, "/session/login", models.LoginRequest{Email: email, Password: password}, &resp)
	if err != nil {
		return models.User{}, err
	}
	c.SetToken(resp.AccessToken)
	return resp.User, nil
}

// CurrentUser возвращает пользователя активной сессии.
//
//	GET /session
func (c *Client) CurrentUser(ctx context.Context) (models.User, error) {
	var u models.User
	err := c.do(ctx, http.MethodGet, "/session", nil, &u)
	return u, err
}

// Logout завершает сессию на сервере и забывает токен.
//
//	POST /session/logout
func (c *Client) Logout(ctx context.Context) error {
	if err := c.do(ctx, http.MethodPost, "/session/logout", nil, nil); err != nil {
		return err
	}
	c.SetToken("")
	return nil
}
