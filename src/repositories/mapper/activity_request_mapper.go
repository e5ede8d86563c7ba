package mapper

import (
	"fmt"

	"activitytracker/src/domain/entities"
)

const (
	ActivityRequestID         = "activity_requests.id"
	ActivityRequestDate       = "activity_requests.request_date"
	ActivityRequestAction     = "activity_requests.action"
	ActivityRequestStatus     = "activity_requests.status"
	ActivityRequestActivityID = "activity_requests.activity_id"
	ActivityRequestUserID     = "activity_requests.user_id"
)

// DecodeActivityRequest não preenche User nem Activity: essas referências
// são ligadas pelo assembler às instâncias canônicas.
func DecodeActivityRequest(row Row) (*entities.ActivityRequest, error) {
	request := &entities.ActivityRequest{}
	var err error

	if request.ID, err = row.ID(ActivityRequestID); err != nil {
		return nil, fmt.Errorf("mapper.DecodeActivityRequest - %w", err)
	}
	if request.RequestDate, err = row.Time(ActivityRequestDate); err != nil {
		return nil, fmt.Errorf("mapper.DecodeActivityRequest - %w", err)
	}
	if request.Action, err = decodeEnum(row, ActivityRequestAction, entities.ParseActivityRequestAction); err != nil {
		return nil, fmt.Errorf("mapper.DecodeActivityRequest - %w", err)
	}
	if request.Status, err = decodeEnum(row, ActivityRequestStatus, entities.ParseActivityRequestStatus); err != nil {
		return nil, fmt.Errorf("mapper.DecodeActivityRequest - %w", err)
	}

	return request, nil
}
