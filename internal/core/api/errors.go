package api

import (
	"errors"
	"net/http"

	"github.com/nfrf/lightfeedback/internal/types"
)

// storeError maps store errors to the response taxonomy: not-found and
// validation sentinels surface with explanatory messages, everything else is
// an opaque server error. Backend details are logged, never returned.
func (s *Service) storeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, types.ErrNotFound):
		s.jsonError(w, "Not found", http.StatusNotFound)
	case errors.Is(err, types.ErrEmptyUpdate):
		s.jsonError(w, "Nothing to update", http.StatusBadRequest)
	case errors.Is(err, types.ErrInvalidStatus):
		s.jsonError(w, "Invalid status", http.StatusBadRequest)
	case errors.Is(err, types.ErrInvalidSeverity):
		s.jsonError(w, "Invalid severity", http.StatusBadRequest)
	default:
		s.logger.Error("request failed", "method", r.Method, "path", r.URL.Path, "error", err)
		s.jsonError(w, "internal server error", http.StatusInternalServerError)
	}
}
