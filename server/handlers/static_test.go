package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
)

func TestFileHandler(t *testing.T) {
	fsys := fstest.MapFS{
		"index.html": {Data: []byte("<h1>Activities</h1>")},
	}

	req := httptest.NewRequest(http.MethodGet, "/static/index.html", nil)
	w := httptest.NewRecorder()
	NewFileHandler(fsys, "index.html").ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/html; charset=utf-8", w.Header().Get("Content-Type"))
	assert.Equal(t, "<h1>Activities</h1>", w.Body.String())
}

func TestFileHandler_Missing(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/static/index.html", nil)
	w := httptest.NewRecorder()
	NewFileHandler(fstest.MapFS{}, "index.html").ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
