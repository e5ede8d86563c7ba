package users

import (
	"context"
	"fmt"

	"activitytracker/src/domain"
	"activitytracker/src/domain/entities"
)

func (s *UserService) GetUserByID(ctx context.Context, id entities.ID) (*entities.User, error) {
	user, ok, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("UserService.GetUserByID - failed to find user %d: %w", id, err)
	}
	if !ok {
		return nil, fmt.Errorf("UserService.GetUserByID - user %d: %w", id, domain.ErrEntityNotFound)
	}
	return user, nil
}

func (s *UserService) GetUserByUsername(ctx context.Context, username string) (*entities.User, error) {
	user, ok, err := s.store.FindByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("UserService.GetUserByUsername - failed to find user %q: %w", username, err)
	}
	if !ok {
		return nil, fmt.Errorf("UserService.GetUserByUsername - user %q: %w", username, domain.ErrEntityNotFound)
	}
	return user, nil
}
