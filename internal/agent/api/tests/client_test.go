package tests

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/IvanChernomyrdin/go-yandex-notekeeper/internal/agent/api"
	serr "github.com/IvanChernomyrdin/go-yandex-notekeeper/internal/shared/errors"
	"github.com/IvanChernomyrdin/go-yandex-notekeeper/internal/shared/models"
)

func TestClient_Login_SetsHeadersAndRemembersToken(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/session/login", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Fatalf("expected method POST, got %s", r.Method)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Fatalf("expected Content-Type application/json, got %q", ct)
		}
		if auth := r.Header.Get("Authorization"); auth != "" {
			t.Fatalf("expected empty Authorization, got %q", auth)
		}

		var req models.LoginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		require.Equal(t, models.LoginRequest{Email: "a@b.com", Password: "p"}, req)

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(models.LoginResponse{
			User:        models.User{Email: "a@b.com", Name: "a"},
			AccessToken: "token-1",
		})
	})
	mux.HandleFunc("/session", func(w http.ResponseWriter, r *http.Request) {
		if auth := r.Header.Get("Authorization"); auth != "Bearer token-1" {
			t.Fatalf("expected Authorization Bearer token-1, got %q", auth)
		}
		if ct := r.Header.Get("Content-Type"); ct != "" {
			t.Fatalf("expected no Content-Type without body, got %q", ct)
		}
		json.NewEncoder(w).Encode(models.User{Email: "a@b.com", Name: "a"})
	})

	srv := httptest.NewServer(mux)
	defer srv.Close()

	c := api.NewClient(srv.URL+"/", nil)

	u, err := c.Login(context.Background(), "a@b.com", "p")
	require.NoError(t, err)
	require.Equal(t, "a", u.Name)
	require.Equal(t, "token-1", c.Token())

	u, err = c.CurrentUser(context.Background())
	require.NoError(t, err)
	require.Equal(t, "a@b.com", u.Email)
}

func TestClient_Non2xx_ReturnsAPIError(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		msg    string
		is     error
	}{
		{"json error body", http.StatusInsufficientStorage, `{"error":"storage quota exceeded"}`, "storage quota exceeded", serr.ErrQuotaExceeded},
		{"credentials", http.StatusBadRequest, `{"error":"email/password required"}`, "email/password required", serr.ErrInvalidCredentials},
		{"plain text body", http.StatusBadRequest, "bad title\n", "bad title", serr.ErrInvalidInput},
		{"empty body", http.StatusUnauthorized, "", "401 Unauthorized", serr.ErrUnauthorized},
		{"not found", http.StatusNotFound, `{"error":"not found"}`, "not found", serr.ErrNotFound},
		{"not ready", http.StatusConflict, `{"error":"note store is not ready"}`, "note store is not ready", serr.ErrNotReady},
		{"persistence", http.StatusInternalServerError, `{"error":"persistence error"}`, "persistence error", serr.ErrPersistence},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			_, err := api.NewClient(srv.URL, nil).ListNotes(context.Background(), "", "")
			require.Error(t, err)

			var apiErr *api.Error
			require.True(t, errors.As(err, &apiErr))
			require.Equal(t, tt.status, apiErr.Status)
			require.Equal(t, tt.msg, apiErr.Message)
			require.ErrorIs(t, err, tt.is)
		})
	}
}

func TestClient_ListNotes_QueryParams(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		json.NewEncoder(w).Encode(models.NotesResponse{Notes: []models.Note{{ID: "note-1"}}})
	}))
	defer srv.Close()

	c := api.NewClient(srv.URL, nil)

	notes, err := c.ListNotes(context.Background(), "", "")
	require.NoError(t, err)
	require.Len(t, notes, 1)
	require.Empty(t, gotQuery)

	_, err = c.ListNotes(context.Background(), "work & home", "milk")
	require.NoError(t, err)
	require.Equal(t, "category=work+%26+home&q=milk", gotQuery)
}

func TestClient_NoContent_IsSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	c := api.NewClient(srv.URL, nil)
	require.NoError(t, c.UpdateNote(context.Background(), "note-1", models.UpdateNoteRequest{}))
	require.NoError(t, c.DeleteNote(context.Background(), "note-1"))
}

func TestClient_EmptyBody_IsNotAnError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	resp, err := api.NewClient(srv.URL, nil).Theme(context.Background())
	require.NoError(t, err)
	require.Empty(t, resp.Theme)
}

func TestClient_CanceledContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("request must not reach the server")
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := api.NewClient(srv.URL, nil).Categories(ctx)
	require.ErrorIs(t, err, context.Canceled)
}

func TestClient_CreateNote_WriteFailureStillReturnsNote(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInsufficientStorage)
		json.NewEncoder(w).Encode(models.ErrorResponse{
			Error: "storage quota exceeded",
			Note:  &models.Note{ID: "note-1", Title: "big"},
		})
	}))
	defer srv.Close()

	n, err := api.NewClient(srv.URL, nil).CreateNote(context.Background(), models.NoteInput{Title: "big"})
	require.ErrorIs(t, err, serr.ErrQuotaExceeded)
	require.Equal(t, "note-1", n.ID)
}
