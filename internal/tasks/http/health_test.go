package http

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/aussiebroadwan/tasks/pkg/tasksdk"
	"github.com/stretchr/testify/require"
)

func TestHealthEndpoints(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/livez", "", nil)
	requireStatus(t, rec, http.StatusOK)

	rec = env.do(t, http.MethodGet, "/readyz", "", nil)
	requireStatus(t, rec, http.StatusOK)
	var health tasksdk.HealthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &health))
	require.Equal(t, "ok", health.Status)
	require.Equal(t, "test", health.Version)
	require.Equal(t, "ok", health.Checks.Database)

	require.NoError(t, env.store.Close())
	rec = env.do(t, http.MethodGet, "/readyz", "", nil)
	requireStatus(t, rec, http.StatusServiceUnavailable)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &health))
	require.Equal(t, "degraded", health.Status)
	require.Equal(t, "error", health.Checks.Database)
}

func TestRequestIDIsEchoed(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/livez", "", nil)
	require.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}
