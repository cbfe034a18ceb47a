package localapi

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"taskmind/internal/task"
)

const maxBodyBytes = 1 << 20

type TaskRepository interface {
	List(ctx context.Context, filter string) []task.Task
	Create(ctx context.Context, in task.CreateInput) (task.Task, error)
	UpdateStatus(ctx context.Context, id, status string) (task.Task, error)
	Delete(ctx context.Context, id string) error
}

type TaskAssistant interface {
	SummarizePending(ctx context.Context) (string, error)
	SuggestPriority(ctx context.Context, description string) (task.Priority, error)
	AutocompleteDescription(ctx context.Context, title string) (string, error)
}

type Deps struct {
	Tasks     TaskRepository
	Assistant TaskAssistant
	Logger    *slog.Logger
}

type Server struct {
	deps   Deps
	mux    *http.ServeMux
	logger *slog.Logger
}

func NewServer(deps Deps) *Server {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{deps: deps, mux: http.NewServeMux(), logger: logger}
	s.registerTaskRoutes()
	s.mux.HandleFunc("/healthz", s.handleHealth)
	return s
}

func (s *Server) Handler() http.Handler {
	return s.mux
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"status": "ok"})
}

func respondError(w http.ResponseWriter, code int, errCode string, msg string) {
	writeJSON(w, code, map[string]any{"message": msg, "code": errCode})
}

func writeJSON(w http.ResponseWriter, code int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(payload)
}

// decodeBody reads a JSON object into dst. An empty body leaves dst untouched
// so that missing fields are reported by validation instead.
func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	if r.Body == nil {
		return true
	}
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(dst); err != nil && !errors.Is(err, io.EOF) {
		respondError(w, http.StatusBadRequest, "INVALID_JSON", err.Error())
		return false
	}
	return true
}
