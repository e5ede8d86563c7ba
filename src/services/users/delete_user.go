package users

import (
	"context"
	"fmt"

	"activitytracker/src/domain"
	"activitytracker/src/domain/entities"
)

func (s *UserService) DeleteUser(ctx context.Context, id entities.ID) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return fmt.Errorf("UserService.DeleteUser - failed to delete user %d: %w", id, err)
	}

	s.logger.Info("User deleted", "user_id", id)
	s.publish(ctx, domain.UserDeleted, &entities.User{ID: id})

	return nil
}
