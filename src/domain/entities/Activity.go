package entities

import (
	"fmt"
	"time"
)

type ActivityImportance string

const (
	ActivityImportanceLow    ActivityImportance = "LOW"
	ActivityImportanceMedium ActivityImportance = "MEDIUM"
	ActivityImportanceHigh   ActivityImportance = "HIGH"
)

var activityImportanceByName = map[string]ActivityImportance{
	"LOW":    ActivityImportanceLow,
	"MEDIUM": ActivityImportanceMedium,
	"HIGH":   ActivityImportanceHigh,
}

func (i ActivityImportance) String() string { return string(i) }

func ParseActivityImportance(value string) (ActivityImportance, error) {
	importance, ok := activityImportanceByName[value]
	if !ok {
		return "", fmt.Errorf("unknown activity importance %q", value)
	}
	return importance, nil
}

type ActivityStatus string

const (
	ActivityStatusPending   ActivityStatus = "PENDING"
	ActivityStatusActive    ActivityStatus = "ACTIVE"
	ActivityStatusCompleted ActivityStatus = "COMPLETED"
)

var activityStatusByName = map[string]ActivityStatus{
	"PENDING":   ActivityStatusPending,
	"ACTIVE":    ActivityStatusActive,
	"COMPLETED": ActivityStatusCompleted,
}

func (s ActivityStatus) String() string { return string(s) }

func ParseActivityStatus(value string) (ActivityStatus, error) {
	status, ok := activityStatusByName[value]
	if !ok {
		return "", fmt.Errorf("unknown activity status %q", value)
	}
	return status, nil
}

// Activity é compartilhada entre usuários; depois da deduplicação a mesma
// instância aparece em todas as associações que apontam para o mesmo ID.
type Activity struct {
	ID          ID                 `json:"id"`
	Name        string             `json:"name"`
	Description string             `json:"description"`
	StartTime   time.Time          `json:"start_time"`
	EndTime     time.Time          `json:"end_time"`
	Duration    time.Duration      `json:"duration"`
	Importance  ActivityImportance `json:"importance"`
	Status      ActivityStatus     `json:"status"`
}

func (a *Activity) Identity() ID {
	return a.ID
}
