package http

import (
	"net/http"
	"strconv"
)

const defaultPageSize = 20

// ListUsers devolve a lista completa, ou uma página quando page ou size
// estão presentes na query.
func (s *Server) ListUsers(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	if !query.Has("page") && !query.Has("size") {
		users := s.userService.GetAllUsers(r.Context())
		s.writeJSON(w, http.StatusOK, MapUsersToResponse(users))
		return
	}

	page, err := queryInt(query.Get("page"), 0)
	if err != nil {
		http.Error(w, "Invalid page format", http.StatusBadRequest)
		return
	}
	size, err := queryInt(query.Get("size"), defaultPageSize)
	if err != nil {
		http.Error(w, "Invalid size format", http.StatusBadRequest)
		return
	}

	result, err := s.userService.GetUsersPage(r.Context(), page, size)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, MapPageToResponse(result))
}

func (s *Server) CountUsers(w http.ResponseWriter, r *http.Request) {
	count, err := s.userService.CountUsers(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, CountDTO{Count: count})
}

func (s *Server) GetUserByID(w http.ResponseWriter, r *http.Request) {
	id, err := parseUserID(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	user, err := s.userService.GetUserByID(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, MapUserToResponse(user))
}

func (s *Server) GetUserByUsername(w http.ResponseWriter, r *http.Request) {
	username := r.PathValue("username")
	if username == "" {
		http.Error(w, "username is required", http.StatusBadRequest)
		return
	}

	user, err := s.userService.GetUserByUsername(r.Context(), username)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, MapUserToResponse(user))
}

func queryInt(raw string, defaultValue int) (int, error) {
	if raw == "" {
		return defaultValue, nil
	}
	return strconv.Atoi(raw)
}
