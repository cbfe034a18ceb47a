package localapi

import "net/http"

func (s *Server) handleSummarize(w http.ResponseWriter, r *http.Request) {
	summary, err := s.deps.Assistant.SummarizePending(r.Context())
	if err != nil {
		s.respondAssistError(w, err, "Failed to generate summary.")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"summary": summary})
}

func (s *Server) handleSuggestPriority(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Description string `json:"description"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	priority, err := s.deps.Assistant.SuggestPriority(r.Context(), req.Description)
	if err != nil {
		s.respondAssistError(w, err, "Failed to suggest priority.")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"priority": priority})
}

func (s *Server) handleAutocompleteDescription(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Title string `json:"title"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	description, err := s.deps.Assistant.AutocompleteDescription(r.Context(), req.Title)
	if err != nil {
		s.respondAssistError(w, err, "Failed to autocomplete description.")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"description": description})
}
