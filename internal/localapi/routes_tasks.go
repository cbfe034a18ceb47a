package localapi

import (
	"errors"
	"net/http"
	"strings"

	"taskmind/internal/assist"
	"taskmind/internal/task"
)

const tasksPath = "/api/tasks"

func (s *Server) registerTaskRoutes() {
	s.mux.HandleFunc(tasksPath, s.handleTasks)
	s.mux.HandleFunc(tasksPath+"/", s.handleTaskActions)
}

func (s *Server) handleTasks(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.handleListTasks(w, r)
	case http.MethodPost:
		s.handleCreateTask(w, r)
	default:
		respondError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "method not allowed")
	}
}

func (s *Server) handleTaskActions(w http.ResponseWriter, r *http.Request) {
	path := strings.Trim(strings.TrimPrefix(r.URL.Path, tasksPath+"/"), "/")
	parts := strings.Split(path, "/")
	if len(parts) != 1 || parts[0] == "" {
		respondError(w, http.StatusNotFound, "NOT_FOUND", "route not found")
		return
	}
	segment := parts[0]
	switch {
	case r.Method == http.MethodPost && segment == "summarize":
		s.handleSummarize(w, r)
	case r.Method == http.MethodPost && segment == "suggest-priority":
		s.handleSuggestPriority(w, r)
	case r.Method == http.MethodPost && segment == "autocomplete-description":
		s.handleAutocompleteDescription(w, r)
	case r.Method == http.MethodPatch:
		s.handleUpdateTaskStatus(w, r, segment)
	case r.Method == http.MethodDelete:
		s.handleDeleteTask(w, r, segment)
	default:
		respondError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "method not allowed")
	}
}

func (s *Server) handleListTasks(w http.ResponseWriter, r *http.Request) {
	filter := r.URL.Query().Get("status")
	writeJSON(w, http.StatusOK, s.deps.Tasks.List(r.Context(), filter))
}

func (s *Server) handleCreateTask(w http.ResponseWriter, r *http.Request) {
	var req task.CreateInput
	if !decodeBody(w, r, &req) {
		return
	}
	created, err := s.deps.Tasks.Create(r.Context(), req)
	if err != nil {
		s.respondTaskError(w, err)
		return
	}
	s.logger.Info("task created", "task_id", created.ID, "status", string(created.Status), "priority", string(created.Priority))
	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) handleUpdateTaskStatus(w http.ResponseWriter, r *http.Request, taskID string) {
	var req struct {
		Status string `json:"status"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	updated, err := s.deps.Tasks.UpdateStatus(r.Context(), taskID, req.Status)
	if err != nil {
		s.respondTaskError(w, err)
		return
	}
	s.logger.Info("task status updated", "task_id", updated.ID, "status", string(updated.Status))
	writeJSON(w, http.StatusOK, updated)
}

func (s *Server) handleDeleteTask(w http.ResponseWriter, r *http.Request, taskID string) {
	if err := s.deps.Tasks.Delete(r.Context(), taskID); err != nil {
		s.respondTaskError(w, err)
		return
	}
	s.logger.Info("task deleted", "task_id", taskID)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) respondTaskError(w http.ResponseWriter, err error) {
	var validationErr *task.ValidationError
	var notFoundErr *task.NotFoundError
	switch {
	case errors.As(err, &validationErr):
		respondError(w, http.StatusBadRequest, "INVALID_"+strings.ToUpper(validationErr.Field), validationErr.Error())
	case errors.As(err, &notFoundErr):
		respondError(w, http.StatusNotFound, "TASK_NOT_FOUND", "Task not found.")
	default:
		s.logger.Error("task storage failed", "err", err)
		respondError(w, http.StatusInternalServerError, "STORAGE_WRITE_FAILED", "Failed to save tasks.")
	}
}

func (s *Server) respondAssistError(w http.ResponseWriter, err error, genericMsg string) {
	var validationErr *task.ValidationError
	if errors.As(err, &validationErr) {
		respondError(w, http.StatusBadRequest, "INVALID_"+strings.ToUpper(validationErr.Field), validationErr.Error())
		return
	}
	var aiErr *assist.AIServiceError
	if !errors.As(err, &aiErr) {
		s.logger.Error("ai request failed", "err", err)
	}
	respondError(w, http.StatusInternalServerError, "AI_SERVICE_FAILED", genericMsg)
}
