// Package api provides the HTTP/JSON handlers for the Light Feedback API.
// Thin orchestration layer: validate input against the fixed enumerations,
// delegate to the store, shape the response contract.
package api

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/nfrf/lightfeedback/internal/feedback"
)

// Service holds handler dependencies.
type Service struct {
	store  *feedback.Store
	logger *slog.Logger
}

// NewService creates a service instance with dependencies.
func NewService(store *feedback.Store, logger *slog.Logger) (*Service, error) {
	if store == nil {
		return nil, fmt.Errorf("store cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{store: store, logger: logger}, nil
}

// RegisterRoutes sets up all API routes under the /api prefix.
func (s *Service) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/health", s.handleHealth)
	mux.HandleFunc("GET /api/projects", s.handleListProjects)

	mux.HandleFunc("POST /api/feedback", s.handleCreateFeedback)
	mux.HandleFunc("GET /api/feedback", s.handleListFeedback)
	mux.HandleFunc("GET /api/feedback/{id}", s.handleGetFeedback)
	mux.HandleFunc("PATCH /api/feedback/{id}", s.handleUpdateFeedback)

	mux.HandleFunc("POST /api/feedback/{id}/comments", s.handleAddComment)
	mux.HandleFunc("GET /api/feedback/{id}/comments", s.handleListComments)
}

// handleHealth reports liveness.
func (s *Service) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]bool{"ok": true})
}

// jsonResponse writes data as a JSON response.
func (s *Service) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// jsonError writes a JSON error response.
func (s *Service) jsonError(w http.ResponseWriter, message string, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
