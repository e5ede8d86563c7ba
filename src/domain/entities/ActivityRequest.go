package entities

import (
	"fmt"
	"time"
)

type ActivityRequestAction string

const (
	ActivityRequestActionAdd      ActivityRequestAction = "ADD"
	ActivityRequestActionComplete ActivityRequestAction = "COMPLETE"
	ActivityRequestActionRemove   ActivityRequestAction = "REMOVE"
)

var activityRequestActionByName = map[string]ActivityRequestAction{
	"ADD":      ActivityRequestActionAdd,
	"COMPLETE": ActivityRequestActionComplete,
	"REMOVE":   ActivityRequestActionRemove,
}

func (a ActivityRequestAction) String() string { return string(a) }

func ParseActivityRequestAction(value string) (ActivityRequestAction, error) {
	action, ok := activityRequestActionByName[value]
	if !ok {
		return "", fmt.Errorf("unknown activity request action %q", value)
	}
	return action, nil
}

type ActivityRequestStatus string

const (
	ActivityRequestStatusPending  ActivityRequestStatus = "PENDING"
	ActivityRequestStatusApproved ActivityRequestStatus = "APPROVED"
	ActivityRequestStatusRejected ActivityRequestStatus = "REJECTED"
)

var activityRequestStatusByName = map[string]ActivityRequestStatus{
	"PENDING":  ActivityRequestStatusPending,
	"APPROVED": ActivityRequestStatusApproved,
	"REJECTED": ActivityRequestStatusRejected,
}

func (s ActivityRequestStatus) String() string { return string(s) }

func ParseActivityRequestStatus(value string) (ActivityRequestStatus, error) {
	status, ok := activityRequestStatusByName[value]
	if !ok {
		return "", fmt.Errorf("unknown activity request status %q", value)
	}
	return status, nil
}

// ActivityRequest liga um usuário a uma atividade. As referências User e
// Activity só são preenchidas durante a montagem do grafo.
type ActivityRequest struct {
	ID          ID                    `json:"id"`
	User        *User                 `json:"-"`
	Activity    *Activity             `json:"activity,omitempty"`
	RequestDate time.Time             `json:"request_date"`
	Action      ActivityRequestAction `json:"action"`
	Status      ActivityRequestStatus `json:"status"`
}

func (r *ActivityRequest) Identity() ID {
	return r.ID
}
