package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/nfrf/lightfeedback/internal/types"
)

// createCommentRequest is the add-comment payload.
type createCommentRequest struct {
	Body      string `json:"body"`
	CreatedBy string `json:"created_by"`
}

// handleAddComment appends a comment to an existing feedback item.
// A missing parent id is a not-found error and no comment row is created.
func (s *Service) handleAddComment(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathID(w, r)
	if !ok {
		return
	}

	var req createCommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.jsonError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if req.Body == "" {
		s.jsonError(w, "body is required", http.StatusBadRequest)
		return
	}
	if req.CreatedBy == "" {
		s.jsonError(w, "created_by is required", http.StatusBadRequest)
		return
	}

	c, err := s.store.AddComment(r.Context(), id, req.Body, req.CreatedBy)
	if errors.Is(err, types.ErrNotFound) {
		s.jsonError(w, "Feedback not found", http.StatusNotFound)
		return
	}
	if err != nil {
		s.storeError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusCreated, c)
}

// handleListComments returns a feedback item's comments in creation order.
func (s *Service) handleListComments(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathID(w, r)
	if !ok {
		return
	}

	comments, err := s.store.ListComments(r.Context(), id)
	if err != nil {
		s.storeError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, comments)
}
