package http

import (
	"encoding/json"
	"net/http"

	"activitytracker/src/services/users"
)

func (s *Server) CreateUser(w http.ResponseWriter, r *http.Request) {
	var request CreateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, "Invalid JSON body", http.StatusBadRequest)
		return
	}

	user, err := s.userService.CreateUser(r.Context(), users.CreateUserInput{
		FirstName:   request.FirstName,
		LastName:    request.LastName,
		Username:    request.Username,
		Password:    request.Password,
		Authorities: toAuthorities(request.Authorities),
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusCreated, MapUserToResponse(user))
}

func (s *Server) UpdateUser(w http.ResponseWriter, r *http.Request) {
	id, err := parseUserID(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var request UpdateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, "Invalid JSON body", http.StatusBadRequest)
		return
	}

	user, err := s.userService.UpdateUser(r.Context(), id, users.UpdateUserInput{
		FirstName:   request.FirstName,
		LastName:    request.LastName,
		Username:    request.Username,
		Password:    request.Password,
		Authorities: toAuthorities(request.Authorities),
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, MapUserToResponse(user))
}

func (s *Server) DeleteUser(w http.ResponseWriter, r *http.Request) {
	id, err := parseUserID(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := s.userService.DeleteUser(r.Context(), id); err != nil {
		s.writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
