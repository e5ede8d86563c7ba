package stubs

import (
	"time"

	"activitytracker/src/domain/entities"

	"github.com/brianvoe/gofakeit/v6"
)

type ActivityStub struct {
	activity *entities.Activity
}

func NewActivityStub() ActivityStub {
	start := gofakeit.DateRange(time.Now().AddDate(0, -1, 0), time.Now()).UTC().Truncate(time.Second)
	duration := time.Duration(gofakeit.Number(15, 180)) * time.Minute

	activity := &entities.Activity{
		ID:          entities.ID(gofakeit.Number(1, 1_000_000)),
		Name:        gofakeit.HipsterWord(),
		Description: gofakeit.Sentence(6),
		StartTime:   start,
		EndTime:     start.Add(duration),
		Duration:    duration,
		Importance:  entities.ActivityImportanceMedium,
		Status:      entities.ActivityStatusPending,
	}

	return ActivityStub{activity: activity}
}

func (as ActivityStub) WithID(id entities.ID) ActivityStub {
	as.activity.ID = id
	return as
}

func (as ActivityStub) WithName(name string) ActivityStub {
	as.activity.Name = name
	return as
}

func (as ActivityStub) WithStatus(status entities.ActivityStatus) ActivityStub {
	as.activity.Status = status
	return as
}

func (as ActivityStub) Get() *entities.Activity {
	return as.activity
}
