package users

import (
	"fmt"
	"strings"

	"activitytracker/src/domain"
	"activitytracker/src/domain/entities"
)

type CreateUserInput struct {
	FirstName   string
	LastName    string
	Username    string
	Password    string
	Authorities []entities.Authority
}

func (in CreateUserInput) Validate() error {
	switch {
	case strings.TrimSpace(in.Username) == "":
		return fmt.Errorf("%w: username is required", domain.ErrInvalidInput)
	case strings.TrimSpace(in.FirstName) == "":
		return fmt.Errorf("%w: first name is required", domain.ErrInvalidInput)
	case strings.TrimSpace(in.LastName) == "":
		return fmt.Errorf("%w: last name is required", domain.ErrInvalidInput)
	case in.Password == "":
		return fmt.Errorf("%w: password is required", domain.ErrInvalidInput)
	}
	return validateAuthorities(in.Authorities)
}

// UpdateUserInput: campos vazios mantêm o valor atual. Authorities nil mantém
// o conjunto atual; qualquer slice não-nil substitui o conjunto inteiro.
type UpdateUserInput struct {
	FirstName   string
	LastName    string
	Username    string
	Password    string
	Authorities []entities.Authority
}

func (in UpdateUserInput) Validate() error {
	return validateAuthorities(in.Authorities)
}

func validateAuthorities(authorities []entities.Authority) error {
	for _, authority := range authorities {
		if _, err := entities.ParseAuthority(string(authority)); err != nil {
			return fmt.Errorf("%w: %w", domain.ErrInvalidInput, err)
		}
	}
	return nil
}
