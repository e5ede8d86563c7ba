package test_seeder

import (
	"context"
	"fmt"
	"time"

	"activitytracker/src/domain/entities"
	"activitytracker/src/infra/postgres"
)

// InsertActivity grava a atividade e atribui o ID gerado.
func (ts TestSeeder) InsertActivity(ctx context.Context, activity *entities.Activity) {
	query := `
		INSERT INTO activities (name, description, start_time, end_time, duration, importance, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`

	importance := string(activity.Importance)
	status := string(activity.Status)

	var id int64
	err := ts.pool.QueryRow(ctx, query,
		activity.Name,
		postgres.NewNullString(&activity.Description),
		postgres.NewNullTime(&activity.StartTime),
		postgres.NewNullTime(&activity.EndTime),
		int64(activity.Duration/time.Second),
		postgres.NewNullString(&importance),
		postgres.NewNullString(&status),
	).Scan(&id)
	if err != nil {
		panic(fmt.Sprintf("Seeder.InsertActivity failed: %v", err))
	}
	activity.ID = entities.ID(id)
}

func (ts TestSeeder) LinkUserActivity(ctx context.Context, userID entities.ID, activityID entities.ID) {
	query := `INSERT INTO users_activities (user_id, activity_id) VALUES ($1, $2)`

	if _, err := ts.pool.Exec(ctx, query, userID.Int64(), activityID.Int64()); err != nil {
		panic(fmt.Sprintf("Seeder.LinkUserActivity failed: %v", err))
	}
}

// InsertActivityRequest usa request.User como dono; Activity nil grava NULL.
func (ts TestSeeder) InsertActivityRequest(ctx context.Context, request *entities.ActivityRequest) {
	query := `
		INSERT INTO activity_requests (activity_id, user_id, request_date, action, status)
		VALUES ($1, $2, $3, $4, $5) RETURNING id`

	var activityID *int64
	if request.Activity != nil {
		id := request.Activity.ID.Int64()
		activityID = &id
	}
	action := string(request.Action)
	status := string(request.Status)

	var id int64
	err := ts.pool.QueryRow(ctx, query,
		postgres.NewNullInt(activityID),
		request.User.ID.Int64(),
		request.RequestDate,
		postgres.NewNullString(&action),
		postgres.NewNullString(&status),
	).Scan(&id)
	if err != nil {
		panic(fmt.Sprintf("Seeder.InsertActivityRequest failed: %v", err))
	}
	request.ID = entities.ID(id)
}
