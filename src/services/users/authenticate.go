package users

import (
	"context"
	"fmt"

	"activitytracker/src/domain"
	"activitytracker/src/domain/entities"

	"golang.org/x/crypto/bcrypt"
)

// Authenticate não distingue usuário inexistente de senha errada.
func (s *UserService) Authenticate(ctx context.Context, username string, password string) (*entities.User, error) {
	user, ok, err := s.store.FindByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("UserService.Authenticate - %w", err)
	}
	if !ok {
		return nil, domain.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, domain.ErrInvalidCredentials
	}

	return user, nil
}
