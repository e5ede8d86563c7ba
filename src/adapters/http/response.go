package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"activitytracker/src/domain"
	"activitytracker/src/domain/entities"
)

func (s *Server) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.logger.Error("Failed to write JSON response", "error", err)
	}
}

// writeError traduz os sentinelas de domínio em status HTTP. Qualquer outro
// erro vira 500 sem expor detalhes.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrEntityNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, domain.ErrInvalidInput), errors.Is(err, domain.ErrPageOutOfRange):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, domain.ErrUsernameTaken):
		http.Error(w, domain.ErrUsernameTaken.Error(), http.StatusConflict)
	case errors.Is(err, domain.ErrInvalidCredentials):
		http.Error(w, domain.ErrInvalidCredentials.Error(), http.StatusUnauthorized)
	default:
		s.logger.Error("Request failed", "method", r.Method, "path", r.URL.Path, "error", err)
		http.Error(w, domain.ErrUnavailableServer.Error(), http.StatusInternalServerError)
	}
}

func parseUserID(r *http.Request) (entities.ID, error) {
	return parsePathID(r, "user")
}

func parseActivityID(r *http.Request) (entities.ID, error) {
	return parsePathID(r, "activity")
}

func parsePathID(r *http.Request, kind string) (entities.ID, error) {
	raw := r.PathValue("id")
	if raw == "" {
		return entities.Unassigned, fmt.Errorf("%s id is required", kind)
	}

	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return entities.Unassigned, fmt.Errorf("invalid %s id format", kind)
	}
	return entities.ID(id), nil
}
