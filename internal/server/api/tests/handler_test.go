package tests

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/IvanChernomyrdin/go-yandex-notekeeper/internal/agent/app"
	"github.com/IvanChernomyrdin/go-yandex-notekeeper/internal/agent/kv"
	"github.com/IvanChernomyrdin/go-yandex-notekeeper/internal/server/api"
	"github.com/IvanChernomyrdin/go-yandex-notekeeper/internal/server/crypto"
	"github.com/IvanChernomyrdin/go-yandex-notekeeper/internal/server/middleware"
	serr "github.com/IvanChernomyrdin/go-yandex-notekeeper/internal/shared/errors"
	"github.com/IvanChernomyrdin/go-yandex-notekeeper/internal/shared/logger"
	"github.com/IvanChernomyrdin/go-yandex-notekeeper/internal/shared/models"
)

const signingKey = "supersecretkeysupersecretkey123456"

// NewTestHandler создаёт Handler над приложением в памяти
func NewTestHandler(t *testing.T, log *logger.Logger) (*api.Handler, *app.App) {
	t.Helper()

	a := app.New(kv.NewMemory(), log, false)
	require.NoError(t, a.Start(context.Background()))

	jwtCfg := crypto.JWTConfig{Issuer: "notekeeper", SigningKey: signingKey, AccessTTL: time.Minute}
	verifier := middleware.NewJWTVerifier(signingKey, jwtCfg.Issuer, "", a.Session)
	return api.NewHandler(a, log, verifier, jwtCfg), a
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		public error
	}{
		{"credentials", fmt.Errorf("login: %w", serr.ErrInvalidCredentials), http.StatusBadRequest, serr.ErrInvalidCredentials},
		{"invalid input", serr.ErrInvalidInput, http.StatusBadRequest, serr.ErrInvalidInput},
		{"bad json", serr.ErrBadJSON, http.StatusBadRequest, serr.ErrBadJSON},
		{"unauthorized", serr.ErrUnauthorized, http.StatusUnauthorized, serr.ErrUnauthorized},
		{"not found", serr.ErrNotFound, http.StatusNotFound, serr.ErrNotFound},
		{"not ready", serr.ErrNotReady, http.StatusConflict, serr.ErrNotReady},
		{"stale load", serr.ErrStaleLoad, http.StatusConflict, serr.ErrStaleLoad},
		{
			"quota wins over persistence",
			fmt.Errorf("write slot notes: %w: %w", serr.ErrPersistence, serr.ErrQuotaExceeded),
			http.StatusInsufficientStorage, serr.ErrQuotaExceeded,
		},
		{"persistence", fmt.Errorf("write slot user: %w: disk", serr.ErrPersistence), http.StatusInternalServerError, serr.ErrPersistence},
		{"unknown", errors.New("boom"), http.StatusInternalServerError, serr.ErrInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, public := api.StatusFor(tt.err)
			require.Equal(t, tt.status, status)
			require.Equal(t, tt.public, public)
		})
	}
}

func TestWriteError(t *testing.T) {
	rec := httptest.NewRecorder()
	api.WriteError(rec, http.StatusConflict, serr.ErrNotReady)

	require.Equal(t, http.StatusConflict, rec.Code)
	require.Equal(t, api.JsonContentType, rec.Header().Get(api.ContentType))
	require.JSONEq(t, `{"error":"note store is not ready"}`, rec.Body.String())
}

func TestLogin_IssuesTokenForUser(t *testing.T) {
	h, a := NewTestHandler(t, logger.Nop())

	body, _ := json.Marshal(models.LoginRequest{Email: "  a@b.com ", Password: "p"})
	rec := httptest.NewRecorder()
	h.Login(rec, httptest.NewRequest(http.MethodPost, "/session/login", bytes.NewReader(body)))

	require.Equal(t, http.StatusOK, rec.Code)
	var resp models.LoginResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.Equal(t, "a@b.com", resp.User.Email)

	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(resp.AccessToken, claims, func(*jwt.Token) (any, error) {
		return []byte(signingKey), nil
	})
	require.NoError(t, err)
	require.Equal(t, "a@b.com", claims.Subject)
	require.Equal(t, "notekeeper", claims.Issuer)

	owner, ok := a.Notes.Owner()
	require.True(t, ok)
	require.Equal(t, "a@b.com", owner.Email)
}

func TestLogin_BadJSON(t *testing.T) {
	h, _ := NewTestHandler(t, logger.Nop())

	rec := httptest.NewRecorder()
	h.Login(rec, httptest.NewRequest(http.MethodPost, "/session/login", bytes.NewReader([]byte("{"))))

	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.JSONEq(t, `{"error":"bad json"}`, rec.Body.String())
}

func TestListNotes_NotReadyWithoutSession(t *testing.T) {
	h, _ := NewTestHandler(t, logger.Nop())

	rec := httptest.NewRecorder()
	h.ListNotes(rec, httptest.NewRequest(http.MethodGet, "/notes", nil))

	require.Equal(t, http.StatusConflict, rec.Code)
	require.JSONEq(t, `{"error":"note store is not ready"}`, rec.Body.String())
}

func TestCurrentSession_WithoutUserInContext(t *testing.T) {
	h, _ := NewTestHandler(t, logger.Nop())

	rec := httptest.NewRecorder()
	h.CurrentSession(rec, httptest.NewRequest(http.MethodGet, "/session", nil))

	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestSetTheme_UnknownMode(t *testing.T) {
	h, a := NewTestHandler(t, logger.Nop())

	body, _ := json.Marshal(models.ThemeRequest{Theme: "sepia"})
	rec := httptest.NewRecorder()
	h.SetTheme(rec, httptest.NewRequest(http.MethodPut, "/theme", bytes.NewReader(body)))

	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.JSONEq(t, `{"error":"invalid input"}`, rec.Body.String())
	require.Equal(t, "light", string(a.Theme.Mode()))
}

func TestLogin_ClientErrorIsNotLogged(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	log := &logger.Logger{Logger: zap.New(core)}
	h, _ := NewTestHandler(t, log)

	rec := httptest.NewRecorder()
	h.Login(rec, httptest.NewRequest(http.MethodPost, "/session/login", bytes.NewReader([]byte(`{"email":""}`))))
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Zero(t, logs.FilterMessage("login failed").Len())
}
