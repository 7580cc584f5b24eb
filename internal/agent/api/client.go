// Package api содержит HTTP-клиент для локального API NoteKeeper.
//
// Клиент инкапсулирует базовый URL сервера, настроенный http.Client
// и access-токен, полученный при входе.
//
// Особенности:
//   - baseURL нормализуется (обрезаются завершающие "/").
//   - По умолчанию добавляется заголовок Accept: application/json.
//   - Заголовок Content-Type: application/json добавляется только при наличии тела запроса.
//   - При ответах 204 No Content тело не читается и это считается успехом.
//   - Пустое тело ответа (EOF при декодировании) не считается ошибкой.
//   - При ошибочных ответах (не 2xx) возвращается *Error, который разворачивается
//     в доменную ошибку из internal/shared/errors по HTTP-статусу.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	serr "github.com/IvanChernomyrdin/go-yandex-notekeeper/internal/shared/errors"
	"github.com/IvanChernomyrdin/go-yandex-notekeeper/internal/shared/models"
)

// Client реализует HTTP-клиент для общения с сервером NoteKeeper.
//
// Поля:
//   - baseURL: базовый адрес сервера без завершающего слэша.
//   - http: настроенный http.Client.
//   - token: access-токен, выставляется методом Login и сбрасывается Logout.
type Client struct {
	baseURL string
	http    *http.Client

	mu    sync.RWMutex
	token string
}

// NewClient создаёт новый HTTP-клиент.
//
// Параметры:
//   - baseURL: базовый адрес сервера (например: "http://127.0.0.1:8080").
//   - hc: http.Client; если nil, создаётся клиент с таймаутом 10 секунд.
func NewClient(baseURL string, hc *http.Client) *Client {
	if hc == nil {
		hc = &http.Client{Timeout: 10 * time.Second}
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    hc,
	}
}

// Error — ответ сервера со статусом не 2xx.
//
// Note заполнен, если сервер создал заметку в памяти, но не смог её сохранить.
type Error struct {
	Status  int
	Message string
	Note    *models.Note
}

func (e *Error) Error() string {
	return fmt.Sprintf("%d: %s", e.Status, e.Message)
}

// Unwrap сопоставляет статус доменной ошибке, чтобы работал errors.Is.
func (e *Error) Unwrap() error {
	switch e.Status {
	case http.StatusBadRequest:
		if e.Message == serr.ErrInvalidCredentials.Error() {
			return serr.ErrInvalidCredentials
		}
		return serr.ErrInvalidInput
	case http.StatusUnauthorized:
		return serr.ErrUnauthorized
	case http.StatusNotFound:
		return serr.ErrNotFound
	case http.StatusConflict:
		return serr.ErrNotReady
	case http.StatusInsufficientStorage:
		return serr.ErrQuotaExceeded
	case http.StatusInternalServerError:
		if e.Message == serr.ErrPersistence.Error() {
			return serr.ErrPersistence
		}
		return serr.ErrInternal
	}
	return nil
}

// SetToken выставляет access-токен вручную (например, сохранённый ранее).
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

// Token возвращает текущий access-токен.
func (c *Client) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// readAPIError читает тело ответа сервера и возвращает *Error.
//
// Тело вида {"error": "..."} разбирается, иначе берётся текст как есть;
// если тело пустое — используется res.Status.
func readAPIError(res *http.Response) error {
	raw, _ := io.ReadAll(res.Body)

	var body models.ErrorResponse
	msg := strings.TrimSpace(string(raw))
	if err := json.Unmarshal(raw, &body); err == nil && body.Error != "" {
		msg = body.Error
	}
	if msg == "" {
		msg = res.Status
	}
	return &Error{Status: res.StatusCode, Message: msg, Note: body.Note}
}

// decodeJSONOrOK декодирует JSON из r в resp.
//
// Если resp == nil — ничего не делает. Пустое тело (io.EOF) не ошибка.
func decodeJSONOrOK(r io.Reader, resp any) error {
	if resp == nil {
		return nil
	}
	err := json.NewDecoder(r).Decode(resp)
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}

// do выполняет запрос к серверу.
//
// Параметры:
//   - path: путь относительно baseURL (например: "/notes/{id}").
//   - req: объект для сериализации в JSON; nil — без тела и без Content-Type.
//   - resp: указатель для декодирования JSON-ответа; nil — тело не декодируется.
//
// Если токен выставлен, добавляется заголовок Authorization: Bearer <token>.
func (c *Client) do(ctx context.Context, method, path string, req, resp any) error {
	var body io.Reader
	if req != nil {
		var buf bytes.Buffer
		if err := json.NewEncoder(&buf).Encode(req); err != nil {
			return err
		}
		body = &buf
	}

	r, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	r.Header.Set("Accept", "application/json")
	if req != nil {
		r.Header.Set("Content-Type", "application/json")
	}
	if token := c.Token(); token != "" {
		r.Header.Set("Authorization", "Bearer "+token)
	}

	res, err := c.http.Do(r)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return readAPIError(res)
	}

	// 204/пустое тело — ок
	if res.StatusCode == http.StatusNoContent {
		return nil
	}

	return decodeJSONOrOK(res.Body, resp)
}
