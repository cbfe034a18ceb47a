package appserver

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"taskmind/internal/logging"
)

type WebUIConfig struct {
	// DistDir holds the browser client (index.html and its assets). Empty
	// disables static serving.
	DistDir string
}

type Deps struct {
	API    http.Handler
	WebUI  WebUIConfig
	Logger *slog.Logger
}

type Server struct {
	api    http.Handler
	webui  http.Handler
	logger *slog.Logger
}

func NewServer(deps Deps) *Server {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	api := deps.API
	if api == nil {
		api = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			writeJSON(w, http.StatusServiceUnavailable, map[string]any{"message": "api is not configured", "code": "API_UNAVAILABLE"})
		})
	}
	return &Server{
		api:    api,
		webui:  newWebUIHandler(deps.WebUI),
		logger: logger,
	}
}

func (s *Server) Handler() http.Handler {
	return logging.HTTPMiddleware(s.logger, http.HandlerFunc(s.serveHTTP))
}

func (s *Server) serveHTTP(w http.ResponseWriter, r *http.Request) {
	p := r.URL.Path
	switch {
	case p == "/healthz" || p == "/api" || strings.HasPrefix(p, "/api/"):
		s.api.ServeHTTP(w, r)
	default:
		s.webui.ServeHTTP(w, r)
	}
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
