package api

import (
	"context"
	"net/http"

	"github.com/IvanChernomyrdin/go-yandex-notekeeper/internal/shared/models"
)

// Theme возвращает текущую тему и её CSS-токены.
func (c *Client) Theme(ctx context.Context) (models.ThemeResponse, error) {
	var resp models.ThemeResponse
	err := c.do(ctx, http.MethodGet, "/theme", nil, &resp)
	return resp, err
}

// ToggleTheme переключает light <-> dark.
func (c *Client) ToggleTheme(ctx context.Context) (models.ThemeResponse, error) {
	var resp models.ThemeResponse
	err := c.do(ctx, http.MethodPost, "/theme/toggle", nil, &resp)
	return resp, err
}

// SetTheme устанавливает тему явно ("light" или "dark").
func (c *Client) SetTheme(ctx context.Context, mode string) (models.ThemeResponse, error) {
	var resp models.ThemeResponse
	err := c.do(ctx, http.MethodPut, "/theme", models.ThemeRequest{Theme: mode}, &resp)
	return resp, err
}
