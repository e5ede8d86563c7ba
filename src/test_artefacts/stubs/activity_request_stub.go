package stubs

import (
	"time"

	"activitytracker/src/domain/entities"

	"github.com/brianvoe/gofakeit/v6"
)

type ActivityRequestStub struct {
	request *entities.ActivityRequest
}

func NewActivityRequestStub() ActivityRequestStub {
	request := &entities.ActivityRequest{
		ID:          entities.ID(gofakeit.Number(1, 1_000_000)),
		RequestDate: gofakeit.DateRange(time.Now().AddDate(0, -1, 0), time.Now()).UTC().Truncate(time.Second),
		Action:      entities.ActivityRequestActionAdd,
		Status:      entities.ActivityRequestStatusPending,
	}

	return ActivityRequestStub{request: request}
}

func (rs ActivityRequestStub) WithID(id entities.ID) ActivityRequestStub {
	rs.request.ID = id
	return rs
}

func (rs ActivityRequestStub) WithActivity(activity *entities.Activity) ActivityRequestStub {
	rs.request.Activity = activity
	return rs
}

func (rs ActivityRequestStub) WithAction(action entities.ActivityRequestAction) ActivityRequestStub {
	rs.request.Action = action
	return rs
}

func (rs ActivityRequestStub) Get() *entities.ActivityRequest {
	return rs.request
}
