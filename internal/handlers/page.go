package handlers

import (
	"io/fs"
	"net/http"
)

type PageHandler struct {
	index  []byte
	assets http.Handler
}

// NewPageHandler serves index.html from site and everything under its
// static/ directory.
func NewPageHandler(site fs.FS) (*PageHandler, error) {
	index, err := fs.ReadFile(site, "index.html")
	if err != nil {
		return nil, err
	}
	static, err := fs.Sub(site, "static")
	if err != nil {
		return nil, err
	}
	return &PageHandler{
		index:  index,
		assets: http.StripPrefix("/static/", http.FileServer(http.FS(static))),
	}, nil
}

func (h *PageHandler) Index(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write(h.index)
}

func (h *PageHandler) Static(w http.ResponseWriter, r *http.Request) {
	h.assets.ServeHTTP(w, r)
}

func Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
