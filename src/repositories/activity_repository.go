package repositories

import (
	"context"
	"fmt"
	"time"

	"activitytracker/src/domain"
	"activitytracker/src/domain/entities"
	"activitytracker/src/infra/postgres"
	"activitytracker/src/repositories/assembler"
	"activitytracker/src/repositories/mapper"
)

// ActivityRepository mantém o catálogo de atividades. Segue as mesmas regras
// do UserRepository: sem retry, sem log, falhas como *domain.StorageError.
type ActivityRepository struct {
	session postgres.Session
}

func NewActivityRepository(session postgres.Session) *ActivityRepository {
	return &ActivityRepository{session: session}
}

func (r *ActivityRepository) FindAll(ctx context.Context) ([]*entities.Activity, error) {
	const op = "cannot get all activities"

	rows, err := r.session.Query(ctx, allActivitiesQuery)
	if err != nil {
		return nil, domain.NewStorageError(op, fmt.Errorf("ActivityRepository.FindAll - query failed: %w", err))
	}

	collected, err := mapper.CollectRows(rows)
	if err != nil {
		return nil, domain.NewStorageError(op, err)
	}

	graph := assembler.New()
	if err := graph.AddCatalogRows(collected); err != nil {
		return nil, domain.NewStorageError(op, err)
	}

	return graph.Activities(), nil
}

// Create insere a atividade e atribui o ID gerado. Campos vazios viram NULL.
func (r *ActivityRepository) Create(ctx context.Context, activity *entities.Activity) error {
	importance := activity.Importance.String()
	status := activity.Status.String()

	var id int64
	err := r.session.QueryRow(ctx, insertActivityQuery,
		activity.Name,
		postgres.NewNullString(&activity.Description),
		postgres.NewNullTime(&activity.StartTime),
		postgres.NewNullTime(&activity.EndTime),
		int64(activity.Duration/time.Second),
		postgres.NewNullString(&importance),
		postgres.NewNullString(&status),
	).Scan(&id)
	if err != nil {
		return domain.NewStorageError("cannot create activity", fmt.Errorf("ActivityRepository.Create - insert failed: %w", err))
	}

	activity.ID = entities.ID(id)
	return nil
}

// Delete remove a atividade e devolve os usuários cujo grafo mudou. As
// ligações seguem o ON DELETE do schema.
func (r *ActivityRepository) Delete(ctx context.Context, id entities.ID) ([]entities.ID, error) {
	const op = "cannot delete activity"

	rows, err := r.session.Query(ctx, activityUsersQuery, id.Int64())
	if err != nil {
		return nil, domain.NewStorageError(op, fmt.Errorf("ActivityRepository.Delete - affected users query failed: %w", err))
	}

	collected, err := mapper.CollectRows(rows)
	if err != nil {
		return nil, domain.NewStorageError(op, err)
	}

	affected := make([]entities.ID, 0, len(collected))
	for _, row := range collected {
		userID, err := row.ID("user_id")
		if err != nil {
			return nil, domain.NewStorageError(op, err)
		}
		affected = append(affected, userID)
	}

	if _, err := r.session.Exec(ctx, deleteActivityQuery, id.Int64()); err != nil {
		return nil, domain.NewStorageError(op, fmt.Errorf("ActivityRepository.Delete - delete failed: %w", err))
	}

	return affected, nil
}
