package repositories

import (
	"context"
	"log/slog"

	"activitytracker/src/domain/entities"
)

// CachedUserRepository faz read-through em FindByID e GetNumberOfRecords.
// As demais leituras vão direto ao banco. Escritas delegam ao repositório de
// escrita e invalidam as chaves afetadas antes de retornar.
type CachedUserRepository struct {
	logger          *slog.Logger
	queryRepository *UserRepository
	writeRepository *UserRepository
	cache           *UserCache
}

func NewCachedUserRepository(
	logger *slog.Logger,
	queryRepository *UserRepository,
	writeRepository *UserRepository,
	cache *UserCache,
) *CachedUserRepository {
	return &CachedUserRepository{
		logger:          logger,
		queryRepository: queryRepository,
		writeRepository: writeRepository,
		cache:           cache,
	}
}

func (r *CachedUserRepository) FindByID(ctx context.Context, id entities.ID) (*entities.User, bool, error) {
	if user, ok := r.cache.getUser(ctx, id); ok {
		return user, true, nil
	}

	version, cacheable := r.cache.version(ctx, userGraphEntry(id))

	user, ok, err := r.queryRepository.FindByID(ctx, id)
	if err != nil || !ok {
		return user, ok, err
	}

	if cacheable {
		r.logger.Debug("Cache MISS", "user_id", id)
		r.cache.storeUser(id, version, user)
	}

	return user, true, nil
}

func (r *CachedUserRepository) FindByUsername(ctx context.Context, username string) (*entities.User, bool, error) {
	return r.queryRepository.FindByUsername(ctx, username)
}

func (r *CachedUserRepository) FindAll(ctx context.Context) ([]*entities.User, error) {
	return r.queryRepository.FindAll(ctx)
}

func (r *CachedUserRepository) FindAllPageable(ctx context.Context, page int, size int) ([]*entities.User, error) {
	return r.queryRepository.FindAllPageable(ctx, page, size)
}

func (r *CachedUserRepository) GetNumberOfRecords(ctx context.Context) (int64, error) {
	if count, ok := r.cache.getCount(ctx); ok {
		return count, nil
	}

	version, cacheable := r.cache.version(ctx, userCountEntry)

	count, err := r.queryRepository.GetNumberOfRecords(ctx)
	if err != nil {
		return 0, err
	}

	if cacheable {
		r.cache.storeCount(version, count)
	}

	return count, nil
}

func (r *CachedUserRepository) Create(ctx context.Context, user *entities.User) error {
	if err := r.writeRepository.Create(ctx, user); err != nil {
		return err
	}
	r.invalidate(ctx, user.ID)
	return nil
}

func (r *CachedUserRepository) Update(ctx context.Context, user *entities.User) error {
	if err := r.writeRepository.Update(ctx, user); err != nil {
		return err
	}
	r.invalidate(ctx, user.ID)
	return nil
}

func (r *CachedUserRepository) Delete(ctx context.Context, id entities.ID) error {
	if err := r.writeRepository.Delete(ctx, id); err != nil {
		return err
	}
	r.invalidate(ctx, id)
	return nil
}

// invalidate roda no contexto da escrita, depois do commit. Falha só é logada.
func (r *CachedUserRepository) invalidate(ctx context.Context, id entities.ID) {
	if err := r.cache.Invalidate(ctx, id); err != nil {
		r.logger.Error("Failed to invalidate cache", "user_id", id, "error", err)
	}
}
