package api

import "net/http"

// handleListProjects returns active projects only, name-ordered.
func (s *Service) handleListProjects(w http.ResponseWriter, r *http.Request) {
	projects, err := s.store.ListProjects(r.Context())
	if err != nil {
		s.storeError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, projects)
}
