package users

import (
	"context"
	"log/slog"

	"activitytracker/src/domain"
	"activitytracker/src/domain/entities"

	"golang.org/x/crypto/bcrypt"
)

// UserStore é a interface de dados consumida pelo serviço; implementada por
// repositories.UserRepository e repositories.CachedUserRepository.
type UserStore interface {
	Create(ctx context.Context, user *entities.User) error
	FindByUsername(ctx context.Context, username string) (*entities.User, bool, error)
	FindByID(ctx context.Context, id entities.ID) (*entities.User, bool, error)
	FindAll(ctx context.Context) ([]*entities.User, error)
	FindAllPageable(ctx context.Context, page int, size int) ([]*entities.User, error)
	Update(ctx context.Context, user *entities.User) error
	Delete(ctx context.Context, id entities.ID) error
	GetNumberOfRecords(ctx context.Context) (int64, error)
}

type EventPublisher interface {
	NewUserEvent(eventType domain.UserEventType, user *entities.User) domain.UserEvent
	Publish(ctx context.Context, events ...domain.UserEvent) error
}

type UserService struct {
	logger     *slog.Logger
	store      UserStore
	publisher  EventPublisher
	bcryptCost int
}

// NewUserService aceita publisher nil; nesse caso nenhum evento é emitido.
func NewUserService(logger *slog.Logger, store UserStore, publisher EventPublisher, bcryptCost int) *UserService {
	if bcryptCost == 0 {
		bcryptCost = bcrypt.DefaultCost
	}

	return &UserService{
		logger:     logger,
		store:      store,
		publisher:  publisher,
		bcryptCost: bcryptCost,
	}
}

// publish não falha a operação: a escrita já foi feita.
func (s *UserService) publish(ctx context.Context, eventType domain.UserEventType, user *entities.User) {
	if s.publisher == nil {
		return
	}

	event := s.publisher.NewUserEvent(eventType, user)
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Warn("Failed to publish user event",
			"event_type", eventType,
			"user_id", user.ID,
			"error", err)
	}
}
