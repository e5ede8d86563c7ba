package users

import (
	"context"
	"errors"
	"fmt"

	"activitytracker/src/domain"
	"activitytracker/src/domain/entities"
	"activitytracker/src/infra/postgres"

	"golang.org/x/crypto/bcrypt"
)

// CreateUser guarda o hash bcrypt da senha. Sem authorities informadas o
// usuário recebe USER.
func (s *UserService) CreateUser(ctx context.Context, input CreateUserInput) (*entities.User, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	hash, err := s.hashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	user := &entities.User{
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Username:  input.Username,
		Password:  hash,
	}
	for _, authority := range input.Authorities {
		user.AddAuthority(authority)
	}
	if len(user.Authorities) == 0 {
		user.AddAuthority(entities.AuthorityUser)
	}

	if err := s.store.Create(ctx, user); err != nil {
		if postgres.IsUniqueViolation(err) {
			return nil, fmt.Errorf("UserService.CreateUser - %q: %w", input.Username, domain.ErrUsernameTaken)
		}
		return nil, fmt.Errorf("UserService.CreateUser - failed to create user: %w", err)
	}

	s.logger.Info("User created", "user_id", user.ID, "username", user.Username)
	s.publish(ctx, domain.UserCreated, user)

	return user, nil
}

func (s *UserService) hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return "", fmt.Errorf("%w: %w", domain.ErrInvalidInput, err)
		}
		return "", fmt.Errorf("UserService.hashPassword - %w", err)
	}
	return string(hash), nil
}
