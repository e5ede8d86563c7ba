package activities

import (
	"fmt"
	"strings"
	"time"

	"activitytracker/src/domain"
	"activitytracker/src/domain/entities"
)

// CreateActivityInput: importance vazia vira LOW e status vazio vira PENDING.
// Duration zero com início e fim preenchidos é calculada a partir deles.
type CreateActivityInput struct {
	Name        string
	Description string
	StartTime   time.Time
	EndTime     time.Time
	Duration    time.Duration
	Importance  entities.ActivityImportance
	Status      entities.ActivityStatus
}

func (in CreateActivityInput) Validate() error {
	switch {
	case strings.TrimSpace(in.Name) == "":
		return fmt.Errorf("%w: name is required", domain.ErrInvalidInput)
	case in.Duration < 0:
		return fmt.Errorf("%w: duration must not be negative", domain.ErrInvalidInput)
	case !in.StartTime.IsZero() && !in.EndTime.IsZero() && in.EndTime.Before(in.StartTime):
		return fmt.Errorf("%w: end time is before start time", domain.ErrInvalidInput)
	}

	if in.Importance != "" {
		if _, err := entities.ParseActivityImportance(string(in.Importance)); err != nil {
			return fmt.Errorf("%w: %w", domain.ErrInvalidInput, err)
		}
	}
	if in.Status != "" {
		if _, err := entities.ParseActivityStatus(string(in.Status)); err != nil {
			return fmt.Errorf("%w: %w", domain.ErrInvalidInput, err)
		}
	}
	return nil
}

func (in CreateActivityInput) toActivity() *entities.Activity {
	activity := &entities.Activity{
		Name:        strings.TrimSpace(in.Name),
		Description: in.Description,
		StartTime:   in.StartTime,
		EndTime:     in.EndTime,
		Duration:    in.Duration,
		Importance:  in.Importance,
		Status:      in.Status,
	}

	if activity.Importance == "" {
		activity.Importance = entities.ActivityImportanceLow
	}
	if activity.Status == "" {
		activity.Status = entities.ActivityStatusPending
	}
	if activity.Duration == 0 && !in.StartTime.IsZero() && !in.EndTime.IsZero() {
		activity.Duration = in.EndTime.Sub(in.StartTime).Truncate(time.Second)
	}
	return activity
}
