package activities

import (
	"context"
	"fmt"

	"activitytracker/src/domain/entities"
)

func (s *ActivityService) CreateActivity(ctx context.Context, input CreateActivityInput) (*entities.Activity, error) {
	if err := input.Validate(); err != nil {
		return nil, fmt.Errorf("ActivityService.CreateActivity - %w", err)
	}

	activity := input.toActivity()
	if err := s.store.Create(ctx, activity); err != nil {
		return nil, fmt.Errorf("ActivityService.CreateActivity - failed to create activity: %w", err)
	}

	s.logger.Info("Activity created", "activity_id", activity.ID, "name", activity.Name)
	return activity, nil
}
