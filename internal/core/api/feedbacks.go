package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/nfrf/lightfeedback/internal/core/config"
	"github.com/nfrf/lightfeedback/internal/feedback"
	"github.com/nfrf/lightfeedback/internal/types"
)

// createFeedbackRequest is the submission payload. created_by is a
// caller-supplied username; the system trusts it (no authentication).
type createFeedbackRequest struct {
	ProjectKey  string             `json:"project_key"`
	Type        types.FeedbackType `json:"type"`
	Title       string             `json:"title"`
	Description string             `json:"description"`
	Severity    *types.Severity    `json:"severity"`
	CreatedBy   string             `json:"created_by"`
	Assignee    *string            `json:"assignee"`
}

// feedbackListResponse is the paginated listing contract.
type feedbackListResponse struct {
	Items    []types.Feedback `json:"items"`
	Total    int64            `json:"total"`
	Page     int              `json:"page"`
	PageSize int              `json:"page_size"`
}

// validate enforces the allow-list and the fixed enumerations before the
// submission reaches storage. The allow-list check is against configuration,
// not a live join, so historical feedback against removed projects stays
// readable while new submissions are rejected.
func (req *createFeedbackRequest) validate() error {
	if !config.ProjectAllowed(req.ProjectKey) {
		return fmt.Errorf("%w: project '%s'", types.ErrProjectNotAllowed, req.ProjectKey)
	}
	if !req.Type.Valid() {
		return types.ErrInvalidType
	}
	if req.Severity != nil && !req.Severity.Valid() {
		return types.ErrInvalidSeverity
	}
	if req.Title == "" {
		return fmt.Errorf("title is required")
	}
	if req.Description == "" {
		return fmt.Errorf("description is required")
	}
	if req.CreatedBy == "" {
		return fmt.Errorf("created_by is required")
	}
	return nil
}

// handleCreateFeedback validates a submission, then inserts it with the
// default status and both timestamps stamped identically.
func (s *Service) handleCreateFeedback(w http.ResponseWriter, r *http.Request) {
	var req createFeedbackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.jsonError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if err := req.validate(); err != nil {
		s.jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}

	fb, err := s.store.CreateFeedback(r.Context(), feedback.CreateInput{
		ProjectKey:  req.ProjectKey,
		Type:        req.Type,
		Title:       req.Title,
		Description: req.Description,
		Severity:    req.Severity,
		CreatedBy:   req.CreatedBy,
		Assignee:    req.Assignee,
	})
	if err != nil {
		s.storeError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusCreated, fb)
}

// handleListFeedback accepts optional equality filters, a substring search
// over title OR description, pagination, and a created_at sort direction
// (descending default, "sort=created_at" for ascending).
func (s *Service) handleListFeedback(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	page := 1
	if v := q.Get("page"); v != "" {
		if p, err := strconv.Atoi(v); err == nil && p > 0 {
			page = p
		}
	}

	// page_size above the maximum is transparently clamped; the clamped value
	// is what the response reports.
	pageSize := config.PageSizeDefault
	if v := q.Get("page_size"); v != "" {
		if ps, err := strconv.Atoi(v); err == nil && ps > 0 {
			pageSize = ps
		}
	}
	if pageSize > config.PageSizeMax {
		pageSize = config.PageSizeMax
	}

	sort := q.Get("sort")
	if sort == "" {
		sort = "-created_at"
	}

	items, total, err := s.store.ListFeedback(r.Context(), feedback.Filter{
		ProjectKey: q.Get("project_key"),
		Status:     q.Get("status"),
		Type:       q.Get("type"),
		Search:     q.Get("search"),
		Page:       page,
		PageSize:   pageSize,
		Ascending:  !strings.HasPrefix(sort, "-"),
	})
	if err != nil {
		s.storeError(w, r, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, feedbackListResponse{
		Items:    items,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	})
}

// handleGetFeedback fetches one feedback item by id.
func (s *Service) handleGetFeedback(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathID(w, r)
	if !ok {
		return
	}

	fb, err := s.store.GetFeedback(r.Context(), id)
	if err != nil {
		s.storeError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, fb)
}

// updateFeedbackRequest is the partial-update payload; absent fields are
// untouched. An updated_by field sent by older clients is accepted and
// ignored.
type updateFeedbackRequest struct {
	Status      *types.Status   `json:"status"`
	Assignee    *string         `json:"assignee"`
	Resolution  *string         `json:"resolution"`
	Title       *string         `json:"title"`
	Description *string         `json:"description"`
	Severity    *types.Severity `json:"severity"`
}

// handleUpdateFeedback applies a partial update. Supplied enum fields are
// validated first; an empty field set and a missing id are distinct errors.
func (s *Service) handleUpdateFeedback(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathID(w, r)
	if !ok {
		return
	}

	var req updateFeedbackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.jsonError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if req.Status != nil && !req.Status.Valid() {
		s.jsonError(w, types.ErrInvalidStatus.Error(), http.StatusBadRequest)
		return
	}
	if req.Severity != nil && !req.Severity.Valid() {
		s.jsonError(w, types.ErrInvalidSeverity.Error(), http.StatusBadRequest)
		return
	}

	fb, err := s.store.UpdateFeedback(r.Context(), id, feedback.UpdateInput{
		Status:      req.Status,
		Assignee:    req.Assignee,
		Resolution:  req.Resolution,
		Title:       req.Title,
		Description: req.Description,
		Severity:    req.Severity,
	})
	if err != nil {
		s.storeError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, fb)
}

// pathID parses the {id} path segment, writing a not-found response for
// non-numeric ids so /api/feedback/abc behaves like a missing resource.
func (s *Service) pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		s.jsonError(w, "Not found", http.StatusNotFound)
		return 0, false
	}
	return id, true
}
