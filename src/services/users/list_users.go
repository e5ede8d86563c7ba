package users

import (
	"context"
	"fmt"

	"activitytracker/src/domain"
	"activitytracker/src/domain/entities"
)

// GetAllUsers loga a falha e devolve lista vazia.
func (s *UserService) GetAllUsers(ctx context.Context) []*entities.User {
	users, err := s.store.FindAll(ctx)
	if err != nil {
		s.logger.Warn("Can not get all users", "error", err)
		return []*entities.User{}
	}
	return users
}

// GetUsersPage valida a página contra o total de registros antes de consultar.
// Uma base vazia aceita apenas a página 0.
func (s *UserService) GetUsersPage(ctx context.Context, page int, size int) (domain.Page, error) {
	if page < 0 || size <= 0 {
		return domain.Page{}, fmt.Errorf("%w: page must be >= 0 and size > 0 (page=%d, size=%d)", domain.ErrInvalidInput, page, size)
	}

	total, err := s.store.GetNumberOfRecords(ctx)
	if err != nil {
		return domain.Page{}, fmt.Errorf("UserService.GetUsersPage - failed to count users: %w", err)
	}

	totalPages := int((total + int64(size) - 1) / int64(size))
	if page >= totalPages && page != 0 {
		return domain.Page{}, fmt.Errorf("UserService.GetUsersPage - page %d of %d: %w", page, totalPages, domain.ErrPageOutOfRange)
	}

	users, err := s.store.FindAllPageable(ctx, page, size)
	if err != nil {
		return domain.Page{}, fmt.Errorf("UserService.GetUsersPage - failed to find page %d: %w", page, err)
	}

	return domain.Page{
		Items:        users,
		Page:         page,
		Size:         size,
		TotalRecords: total,
		TotalPages:   totalPages,
	}, nil
}

func (s *UserService) CountUsers(ctx context.Context) (int64, error) {
	total, err := s.store.GetNumberOfRecords(ctx)
	if err != nil {
		return 0, fmt.Errorf("UserService.CountUsers - %w", err)
	}
	return total, nil
}
