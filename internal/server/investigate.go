package server

import (
	"encoding/json"
	stderrors "errors"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/searchlens/searchlens/internal/core/registry"
	apperrors "github.com/searchlens/searchlens/internal/errors"
	"github.com/searchlens/searchlens/internal/metrics"
	"github.com/searchlens/searchlens/internal/wiki"
)

// createInvestigationRequest is the POST body for /api/v1/investigations.
// Omitting categories selects every category in registry order.
type createInvestigationRequest struct {
	Subject    string   `json:"subject"`
	Categories []string `json:"categories,omitempty"`
	Save       bool     `json:"save,omitempty"`
}

type categoriesResponse struct {
	Categories []categoryInfo `json:"categories"`
}

type categoryInfo struct {
	Name      string   `json:"name"`
	Platforms []string `json:"platforms"`
}

func (s *Server) registry() *registry.Registry {
	if s.deps.Registry != nil {
		return s.deps.Registry
	}
	return registry.Default()
}

func (s *Server) handleListCategories(w http.ResponseWriter, r *http.Request) {
	reg := s.registry()

	response := categoriesResponse{Categories: make([]categoryInfo, 0)}
	for _, name := range reg.Categories() {
		templates, err := reg.TemplatesFor(name)
		if err != nil {
			HandleError(w, r, err)
			return
		}
		info := categoryInfo{Name: name, Platforms: make([]string, 0, len(templates))}
		for _, tmpl := range templates {
			info.Platforms = append(info.Platforms, tmpl.Platform)
		}
		response.Categories = append(response.Categories, info)
	}

	writeJSON(w, http.StatusOK, response)
}

func (s *Server) handleCreateInvestigation(w http.ResponseWriter, r *http.Request) {
	if s.deps.Dispatcher == nil {
		HandleError(w, r, apperrors.NewInternalError("dispatcher is not configured"))
		return
	}

	var req createInvestigationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		HandleError(w, r, apperrors.NewInvalidInputError("request body must be valid JSON"))
		return
	}

	categories := req.Categories
	if len(categories) == 0 {
		categories = s.registry().Categories()
	}

	inv, err := s.deps.Dispatcher.Generate(req.Subject, categories)
	if err != nil {
		HandleError(w, r, err)
		return
	}

	metrics.RecordInvestigation(len(inv.Records), inv.Errors)

	if req.Save && s.deps.History != nil {
		if err := s.deps.History.SaveInvestigation(r.Context(), inv); err != nil {
			HandleError(w, r, apperrors.WrapDatabaseError(r.Context(), err, "failed to save investigation"))
			return
		}
	}

	writeJSON(w, http.StatusCreated, inv)
}

func (s *Server) handleListInvestigations(w http.ResponseWriter, r *http.Request) {
	if s.deps.History == nil {
		HandleError(w, r, historyUnavailable())
		return
	}

	limit := 20
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			HandleError(w, r, apperrors.NewInvalidInputError("limit must be a positive integer"))
			return
		}
		limit = parsed
	}

	entries, err := s.deps.History.ListRecent(r.Context(), limit)
	if err != nil {
		HandleError(w, r, apperrors.WrapDatabaseError(r.Context(), err, "failed to list investigations"))
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"investigations": entries})
}

func (s *Server) handleGetInvestigation(w http.ResponseWriter, r *http.Request) {
	if s.deps.History == nil {
		HandleError(w, r, historyUnavailable())
		return
	}

	id := chi.URLParam(r, "id")
	inv, err := s.deps.History.GetInvestigation(r.Context(), id)
	if err != nil {
		HandleError(w, r, apperrors.WrapDatabaseError(r.Context(), err, "failed to load investigation"))
		return
	}
	if inv == nil {
		HandleError(w, r, apperrors.NewNotFoundError("no investigation with that id"))
		return
	}

	writeJSON(w, http.StatusOK, inv)
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	if s.deps.Wiki == nil {
		HandleError(w, r, apperrors.NewServiceUnavailableError("wiki client is not configured"))
		return
	}

	topic := chi.URLParam(r, "topic")
	if decoded, err := url.PathUnescape(topic); err == nil {
		topic = decoded
	}

	sentences := 0
	if raw := r.URL.Query().Get("sentences"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			HandleError(w, r, apperrors.NewInvalidInputError("sentences must be a positive integer"))
			return
		}
		sentences = parsed
	}

	summary, err := s.deps.Wiki.Summarize(r.Context(), topic, sentences)
	switch {
	case stderrors.Is(err, wiki.ErrNotFound):
		HandleError(w, r, apperrors.NewNotFoundError("no article found for topic"))
		return
	case stderrors.Is(err, wiki.ErrDisambiguation):
		HandleError(w, r, apperrors.NewInvalidInputError("topic is ambiguous, be more specific"))
		return
	case err != nil:
		HandleError(w, r, apperrors.NewExternalServiceError("wiki lookup failed"))
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"topic":   topic,
		"summary": summary,
	})
}

func historyUnavailable() error {
	return apperrors.NewServiceUnavailableError("history store is not configured")
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
