package http

import (
	"encoding/json"
	"net/http"
	"time"

	"activitytracker/src/domain/entities"
	"activitytracker/src/services/activities"
)

func (s *Server) ListActivities(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, MapActivitiesToResponse(s.activityService.GetAllActivities(r.Context())))
}

func (s *Server) CreateActivity(w http.ResponseWriter, r *http.Request) {
	var request CreateActivityRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, "Invalid JSON body", http.StatusBadRequest)
		return
	}

	activity, err := s.activityService.CreateActivity(r.Context(), activities.CreateActivityInput{
		Name:        request.Name,
		Description: request.Description,
		StartTime:   request.StartTime,
		EndTime:     request.EndTime,
		Duration:    time.Duration(request.DurationSeconds) * time.Second,
		Importance:  entities.ActivityImportance(request.Importance),
		Status:      entities.ActivityStatus(request.Status),
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusCreated, mapActivity(activity))
}

func (s *Server) DeleteActivity(w http.ResponseWriter, r *http.Request) {
	id, err := parseActivityID(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := s.activityService.DeleteActivity(r.Context(), id); err != nil {
		s.writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
