package activities

import (
	"context"
	"fmt"

	"activitytracker/src/domain"
	"activitytracker/src/domain/entities"
)

// DeleteActivity publica user.updated para cada usuário cujo grafo perdeu a
// atividade, para que as outras réplicas descartem o cache desses usuários.
func (s *ActivityService) DeleteActivity(ctx context.Context, id entities.ID) error {
	if !id.IsAssigned() {
		return fmt.Errorf("ActivityService.DeleteActivity - %w: activity id is required", domain.ErrInvalidInput)
	}

	affected, err := s.store.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("ActivityService.DeleteActivity - failed to delete activity %d: %w", id, err)
	}

	s.logger.Info("Activity deleted", "activity_id", id, "affected_users", len(affected))
	s.publishUsersChanged(ctx, id, affected)

	return nil
}

// publishUsersChanged não falha a operação: a escrita já foi feita.
func (s *ActivityService) publishUsersChanged(ctx context.Context, activityID entities.ID, userIDs []entities.ID) {
	if s.publisher == nil || len(userIDs) == 0 {
		return
	}

	events := make([]domain.UserEvent, 0, len(userIDs))
	for _, userID := range userIDs {
		events = append(events, s.publisher.NewUserEvent(domain.UserUpdated, &entities.User{ID: userID}))
	}

	if err := s.publisher.Publish(ctx, events...); err != nil {
		s.logger.Warn("Failed to publish user events",
			"activity_id", activityID,
			"user_ids", userIDs,
			"error", err)
	}
}
