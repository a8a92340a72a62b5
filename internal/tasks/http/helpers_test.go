package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/aussiebroadwan/tasks/internal/tasks/domain"
	"github.com/aussiebroadwan/tasks/internal/tasks/service"
	"github.com/aussiebroadwan/tasks/internal/tasks/store/drivers/sqlite"
	"github.com/aussiebroadwan/tasks/pkg/cryptox"
	"github.com/aussiebroadwan/tasks/pkg/httpx"
	"github.com/aussiebroadwan/tasks/pkg/jwtx"
	"github.com/aussiebroadwan/tasks/pkg/tasksdk"
	"github.com/stretchr/testify/require"
)

const testBootstrapToken = "test-bootstrap-token"

type testEnv struct {
	router *Router
	store  *sqlite.Store
	issuer *jwtx.HS256
	users  *service.UserService
	roles  *service.RolesService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	st, err := sqlite.NewStore(sqlite.DSN(filepath.Join(t.TempDir(), "tasks.db")))
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	require.NoError(t, st.ApplyMigrations())

	issuer, err := jwtx.NewHS256([]byte("http-test-secret"))
	require.NoError(t, err)

	hasher := cryptox.NewPasswordHasher("http-test-pepper")
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	wide := httpx.RateLimitConfig{RequestsPerWindow: 10000, Window: time.Minute, Burst: 10000}
	limits := httpx.RateLimits{Strict: wide, Moderate: wide, Lenient: wide, Public: wide}

	r := NewRouter(issuer, "test", st, limits, logger)
	r.AuthService = &service.AuthService{Store: st, Hasher: hasher, Tokens: issuer}
	r.UserService = &service.UserService{Store: st, Hasher: hasher}
	r.RolesService = &service.RolesService{Store: st}
	r.TaskService = &service.TaskService{Store: st}
	r.BootstrapService = &service.BootstrapService{Store: st, Hasher: hasher, Token: testBootstrapToken}
	r.ApplyRoutes()

	return &testEnv{router: r, store: st, issuer: issuer, users: r.UserService, roles: r.RolesService}
}

func (e *testEnv) createUser(t *testing.T, username, password string) domain.User {
	t.Helper()
	d, err := e.users.CreateUser(context.Background(), domain.NewUser{
		Name:     "User " + username,
		Username: username,
		Email:    username + "@example.com",
		Password: password,
	})
	require.NoError(t, err)
	return d.User
}

func (e *testEnv) createRoles(t *testing.T, names ...string) {
	t.Helper()
	for _, n := range names {
		_, err := e.roles.CreateRole(context.Background(), n)
		require.NoError(t, err)
	}
}

func (e *testEnv) grant(t *testing.T, userID int64, names ...string) {
	t.Helper()
	_, err := e.roles.GrantRoles(context.Background(), userID, names)
	require.NoError(t, err)
}

// adminToken creates an admin user and returns a bearer token for it.
func (e *testEnv) adminToken(t *testing.T) string {
	t.Helper()
	e.createRoles(t, domain.RoleAdmin)
	admin := e.createUser(t, "root", "root-password")
	e.grant(t, admin.ID, domain.RoleAdmin)
	return e.token(t, admin)
}

func (e *testEnv) token(t *testing.T, u domain.User) string {
	t.Helper()
	tok, err := e.issuer.Issue(u.Email, time.Now(), jwtx.AccessTokenTTL)
	require.NoError(t, err)
	return tok
}

func (e *testEnv) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var rdr io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		require.NoError(t, err)
		rdr = bytes.NewReader(buf)
	}

	req := httptest.NewRequest(method, path, rdr)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func decodeData[T any](t *testing.T, rec *httptest.ResponseRecorder) tasksdk.DataResponse[T] {
	t.Helper()
	var out tasksdk.DataResponse[T]
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) tasksdk.ErrorResponse {
	t.Helper()
	var out tasksdk.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

func requireStatus(t *testing.T, rec *httptest.ResponseRecorder, code int) {
	t.Helper()
	require.Equal(t, code, rec.Code, rec.Body.String())
}

var _ http.Handler = (*Router)(nil)
