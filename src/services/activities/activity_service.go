package activities

import (
	"context"
	"log/slog"

	"activitytracker/src/domain"
	"activitytracker/src/domain/entities"
)

// ActivityStore é implementado por repositories.ActivityRepository e
// repositories.CachedActivityRepository. Delete devolve os usuários cujo grafo
// referenciava a atividade.
type ActivityStore interface {
	FindAll(ctx context.Context) ([]*entities.Activity, error)
	Create(ctx context.Context, activity *entities.Activity) error
	Delete(ctx context.Context, id entities.ID) ([]entities.ID, error)
}

type EventPublisher interface {
	NewUserEvent(eventType domain.UserEventType, user *entities.User) domain.UserEvent
	Publish(ctx context.Context, events ...domain.UserEvent) error
}

type ActivityService struct {
	logger    *slog.Logger
	store     ActivityStore
	publisher EventPublisher
}

// NewActivityService aceita publisher nil; nesse caso nenhum evento é emitido.
func NewActivityService(logger *slog.Logger, store ActivityStore, publisher EventPublisher) *ActivityService {
	return &ActivityService{
		logger:    logger,
		store:     store,
		publisher: publisher,
	}
}
