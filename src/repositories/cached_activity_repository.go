package repositories

import (
	"context"
	"log/slog"

	"activitytracker/src/domain/entities"
)

// CachedActivityRepository não guarda atividades no cache; só derruba os
// grafos de usuário que mudam quando uma atividade é removida.
type CachedActivityRepository struct {
	logger     *slog.Logger
	repository *ActivityRepository
	userCache  *UserCache
}

func NewCachedActivityRepository(logger *slog.Logger, repository *ActivityRepository, userCache *UserCache) *CachedActivityRepository {
	return &CachedActivityRepository{
		logger:     logger,
		repository: repository,
		userCache:  userCache,
	}
}

func (r *CachedActivityRepository) FindAll(ctx context.Context) ([]*entities.Activity, error) {
	return r.repository.FindAll(ctx)
}

func (r *CachedActivityRepository) Create(ctx context.Context, activity *entities.Activity) error {
	return r.repository.Create(ctx, activity)
}

func (r *CachedActivityRepository) Delete(ctx context.Context, id entities.ID) ([]entities.ID, error) {
	affected, err := r.repository.Delete(ctx, id)
	if err != nil || len(affected) == 0 {
		return affected, err
	}

	if err := r.userCache.Invalidate(ctx, affected...); err != nil {
		r.logger.Error("Failed to invalidate cache", "activity_id", id, "user_ids", affected, "error", err)
	}
	return affected, nil
}
