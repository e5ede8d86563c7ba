package users

import (
	"context"
	"fmt"

	"activitytracker/src/domain"
	"activitytracker/src/domain/entities"
	"activitytracker/src/infra/postgres"
)

func (s *UserService) UpdateUser(ctx context.Context, id entities.ID, input UpdateUserInput) (*entities.User, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	user, err := s.GetUserByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("UserService.UpdateUser - %w", err)
	}

	if input.FirstName != "" {
		user.FirstName = input.FirstName
	}
	if input.LastName != "" {
		user.LastName = input.LastName
	}
	if input.Username != "" {
		user.Username = input.Username
	}
	if input.Password != "" {
		if user.Password, err = s.hashPassword(input.Password); err != nil {
			return nil, err
		}
	}
	if input.Authorities != nil {
		user.Authorities = nil
		for _, authority := range input.Authorities {
			user.AddAuthority(authority)
		}
	}

	if err := s.store.Update(ctx, user); err != nil {
		if postgres.IsUniqueViolation(err) {
			return nil, fmt.Errorf("UserService.UpdateUser - %q: %w", user.Username, domain.ErrUsernameTaken)
		}
		return nil, fmt.Errorf("UserService.UpdateUser - failed to update user %d: %w", id, err)
	}

	s.logger.Info("User updated", "user_id", user.ID)
	s.publish(ctx, domain.UserUpdated, user)

	return user, nil
}
