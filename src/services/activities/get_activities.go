package activities

import (
	"context"

	"activitytracker/src/domain/entities"
)

// GetAllActivities loga a falha e devolve lista vazia.
func (s *ActivityService) GetAllActivities(ctx context.Context) []*entities.Activity {
	activities, err := s.store.FindAll(ctx)
	if err != nil {
		s.logger.Warn("Can not get all activities", "error", err)
		return []*entities.Activity{}
	}
	return activities
}
