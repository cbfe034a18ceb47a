package appserver

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"
)

func newWebUIHandler(cfg WebUIConfig) http.Handler {
	dist := strings.TrimSpace(cfg.DistDir)
	if dist == "" {
		return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			writeJSON(w, http.StatusNotFound, map[string]any{"message": "route not found", "code": "NOT_FOUND"})
		})
	}
	return &staticHandler{dist: filepath.Clean(dist)}
}

// staticHandler serves files from dist and falls back to index.html for
// unknown paths so client-side links keep working.
type staticHandler struct {
	dist string
}

func (h *staticHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]any{"message": "method not allowed", "code": "METHOD_NOT_ALLOWED"})
		return
	}
	clean := filepath.Clean("/" + r.URL.Path)
	indexPath := filepath.Join(h.dist, "index.html")
	if clean == "/" {
		http.ServeFile(w, r, indexPath)
		return
	}
	candidate := filepath.Join(h.dist, strings.TrimPrefix(clean, "/"))
	if st, err := os.Stat(candidate); err == nil && !st.IsDir() {
		http.ServeFile(w, r, candidate)
		return
	}
	http.ServeFile(w, r, indexPath)
}
