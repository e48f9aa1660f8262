package handlers

import (
	"bytes"
	"io/fs"
	"net/http"
	"time"
)

// FileHandler serves a single file from fsys. Unlike http.FileServer it
// serves index.html at its own path instead of redirecting to the directory.
type FileHandler struct {
	fsys fs.FS
	name string
}

// NewFileHandler creates a FileHandler for name within fsys.
func NewFileHandler(fsys fs.FS, name string) *FileHandler {
	return &FileHandler{fsys: fsys, name: name}
}

// ServeHTTP implements http.Handler.
func (h *FileHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	data, err := fs.ReadFile(h.fsys, h.name)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	http.ServeContent(w, r, h.name, time.Time{}, bytes.NewReader(data))
}
