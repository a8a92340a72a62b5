package httpx

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
)

const (
	DefaultDataMessage  = "Data retrieved successfully"
	DefaultErrorMessage = "An error occurred."

	maxBodyBytes = 1 << 20
)

// DataEnvelope wraps every successful response body.
type DataEnvelope struct {
	Data    any    `json:"data"`
	Message string `json:"message"`
}

// ErrorEnvelope wraps every error response body.
type ErrorEnvelope struct {
	Error   string            `json:"error"`
	Message string            `json:"message"`
	Details map[string]string `json:"details,omitempty"`
}

// WriteJSON writes a JSON response with the given status code.
// It automatically sets the Content-Type header and Cache-Control headers.
func WriteJSON(w http.ResponseWriter, code int, v any) {
	NoCache(w)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteData writes data inside the standard envelope. An empty message
// falls back to DefaultDataMessage.
func WriteData(w http.ResponseWriter, code int, data any, message string) {
	if message == "" {
		message = DefaultDataMessage
	}
	WriteJSON(w, code, DataEnvelope{Data: data, Message: message})
}

// WriteError writes the standard error envelope.
func WriteError(w http.ResponseWriter, code int, errCode, message string, details map[string]string) {
	if message == "" {
		message = DefaultErrorMessage
	}
	WriteJSON(w, code, ErrorEnvelope{Error: errCode, Message: message, Details: details})
}

// NoCache sets the Cache-Control and Pragma headers to prevent caching.
// This is commonly required for sensitive responses like tokens.
func NoCache(w http.ResponseWriter) {
	w.Header().Set("Cache-Control", "no-store")
	w.Header().Set("Pragma", "no-cache")
}

// ErrBadBody is returned by DecodeJSON for unreadable request bodies.
var ErrBadBody = errors.New("httpx: invalid request body")

// DecodeJSON reads a single JSON object from the request body into v.
func DecodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	ct := r.Header.Get("Content-Type")
	if ct != "" && !strings.HasPrefix(strings.ToLower(ct), "application/json") {
		return fmt.Errorf("%w: content-type must be application/json", ErrBadBody)
	}

	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("%w: %v", ErrBadBody, err)
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return fmt.Errorf("%w: trailing data", ErrBadBody)
	}
	return nil
}

// PathID parses a positive numeric path value such as {id}.
func PathID(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(r.PathValue(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("httpx: invalid %s %q", name, r.PathValue(name))
	}
	return id, nil
}
