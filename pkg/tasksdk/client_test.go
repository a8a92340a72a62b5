package tasksdk

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/aussiebroadwan/tasks/pkg/httpx"
	"github.com/stretchr/testify/require"
)

func TestLogin(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	mux.HandleFunc("POST /auth/login", func(w http.ResponseWriter, r *http.Request) {
		var req LoginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			ErrInvalidRequest.WriteError(w)
			return
		}
		if req.Username != "alice" || req.Password != "right" {
			ErrInvalidCredentials.WriteError(w)
			return
		}
		httpx.WriteData(w, http.StatusOK, TokenResponse{AccessToken: "tok"}, "")
	})
	mux.HandleFunc("GET /tasks", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer tok" {
			ErrUnauthorized.WriteError(w)
			return
		}
		if r.URL.Query().Get("status") != "pending" {
			ErrInvalidRequest.WriteError(w)
			return
		}
		httpx.WriteData(w, http.StatusOK, []TaskResponse{{ID: 1, Title: "one", Status: "pending"}}, "")
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	c := NewClient(srv.URL + "/")
	ctx := context.Background()

	t.Run("wrong password", func(t *testing.T) {
		_, err := c.Login(ctx, "alice", "wrong")
		var apiErr *APIError
		require.True(t, errors.As(err, &apiErr))
		require.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
		require.Equal(t, ErrorCodeInvalidCredentials, apiErr.Code)
	})

	t.Run("success", func(t *testing.T) {
		tok, err := c.LoginToken(ctx, "alice", "right")
		require.NoError(t, err)
		require.Equal(t, "tok", tok.AccessToken)
		require.Nil(t, tok.RefreshToken)

		s := c.NewSession(tok.AccessToken)
		tasks, err := s.ListTasks(ctx, "pending")
		require.NoError(t, err)
		require.Len(t, tasks, 1)
	})

	t.Run("bad token", func(t *testing.T) {
		_, err := c.NewSession("nope").ListTasks(ctx, "pending")
		var apiErr *APIError
		require.ErrorAs(t, err, &apiErr)
		require.Equal(t, ErrorCodeUnauthorized, apiErr.Code)
	})
}

func TestGrantRolesKeepsMessage(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/users/7/roles" {
			ErrUserNotFound.WriteError(w)
			return
		}
		httpx.WriteData(w, http.StatusOK, RoleGrantResponse{
			Granted:     []RoleResponse{},
			AlreadyHeld: []string{"editor"},
		}, "All requested roles are already assigned")
	}))
	defer srv.Close()

	out, err := NewClient(srv.URL).NewSession("tok").GrantRoles(context.Background(), 7, "editor")
	require.NoError(t, err)
	require.Empty(t, out.Data.Granted)
	require.Equal(t, []string{"editor"}, out.Data.AlreadyHeld)
	require.Equal(t, "All requested roles are already assigned", out.Message)
}

func TestParseErrorResponseFallback(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("<html>bad gateway</html>"))
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).GetLiveness(context.Background())
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusBadGateway, apiErr.StatusCode)
	require.Equal(t, ErrorCodeServerError, apiErr.Code)
}

func TestAPIErrorWithDetails(t *testing.T) {
	t.Parallel()

	details := map[string]string{"name": "required"}
	e := ErrValidation.WithDetails(details)
	details["name"] = "changed"

	require.Equal(t, "required", e.Details["name"])
	require.Nil(t, ErrValidation.Details)

	rec := httptest.NewRecorder()
	e.WriteError(rec)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var body ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, ErrorCodeValidation, body.Error)
	require.Equal(t, "required", body.Details["name"])
}
