package handlers

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithRequestLogging_GeneratesID(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	var seen *slog.Logger
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = RequestLogger(r, nil)
		w.WriteHeader(http.StatusTeapot)
	})

	req := httptest.NewRequest(http.MethodGet, "/activities", nil)
	w := httptest.NewRecorder()
	WithRequestLogging(logger, next).ServeHTTP(w, req)

	id := w.Header().Get(RequestIDHeader)
	_, err := uuid.Parse(id)
	require.NoError(t, err)
	require.NotNil(t, seen)
	assert.Contains(t, buf.String(), "request_id="+id)
	assert.Contains(t, buf.String(), "status=418")
}

func TestWithRequestLogging_KeepsClientID(t *testing.T) {
	id := uuid.NewString()
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, id)
	w := httptest.NewRecorder()
	WithRequestLogging(slog.Default(), next).ServeHTTP(w, req)

	assert.Equal(t, id, w.Header().Get(RequestIDHeader))
}

func TestWithRequestLogging_ReplacesMalformedID(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "not-a-uuid\nlevel=ERROR")
	w := httptest.NewRecorder()
	WithRequestLogging(slog.Default(), next).ServeHTTP(w, req)

	got := w.Header().Get(RequestIDHeader)
	assert.NotContains(t, got, "not-a-uuid")
	_, err := uuid.Parse(got)
	assert.NoError(t, err)
}

func TestRequestLogger_Fallback(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.Same(t, slog.Default(), RequestLogger(req, slog.Default()))
}
