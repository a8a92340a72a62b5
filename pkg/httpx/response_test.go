package httpx_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/aussiebroadwan/tasks/pkg/httpx"
	"github.com/stretchr/testify/require"
)

func TestWriteData(t *testing.T) {
	rec := httptest.NewRecorder()
	httpx.WriteData(rec, http.StatusCreated, map[string]int{"id": 7}, "")

	require.Equal(t, http.StatusCreated, rec.Code)
	require.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	require.Equal(t, "no-store", rec.Header().Get("Cache-Control"))
	require.JSONEq(t, `{"data":{"id":7},"message":"Data retrieved successfully"}`, rec.Body.String())
}

func TestWriteError(t *testing.T) {
	rec := httptest.NewRecorder()
	httpx.WriteError(rec, http.StatusBadRequest, "validation_error", "", map[string]string{"roles": "required"})

	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.JSONEq(t,
		`{"error":"validation_error","message":"An error occurred.","details":{"roles":"required"}}`,
		rec.Body.String())
}

func TestDecodeJSON(t *testing.T) {
	type body struct {
		Username string `json:"username"`
	}

	tests := []struct {
		name        string
		contentType string
		payload     string
		wantErr     bool
	}{
		{"valid", "application/json", `{"username":"alice"}`, false},
		{"charset suffix", "application/json; charset=utf-8", `{"username":"alice"}`, false},
		{"no content type", "", `{"username":"alice"}`, false},
		{"wrong content type", "text/plain", `{"username":"alice"}`, true},
		{"syntax error", "application/json", `{"username":`, true},
		{"empty body", "application/json", ``, true},
		{"trailing data", "application/json", `{"username":"a"}{"username":"b"}`, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.payload))
			if tt.contentType != "" {
				req.Header.Set("Content-Type", tt.contentType)
			}

			var got body
			err := httpx.DecodeJSON(httptest.NewRecorder(), req, &got)
			if tt.wantErr {
				require.ErrorIs(t, err, httpx.ErrBadBody)
				return
			}
			require.NoError(t, err)
			require.Equal(t, "alice", got.Username)
		})
	}
}

func TestPathID(t *testing.T) {
	mux := http.NewServeMux()
	var got int64
	var gotErr error
	mux.HandleFunc("GET /users/{id}", func(w http.ResponseWriter, r *http.Request) {
		got, gotErr = httpx.PathID(r, "id")
	})

	for path, want := range map[string]int64{"/users/7": 7, "/users/0": 0, "/users/-1": 0, "/users/abc": 0} {
		got, gotErr = 0, nil
		mux.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
		require.Equal(t, want, got, path)
		if want == 0 {
			require.Error(t, gotErr, path)
		}
	}
}
