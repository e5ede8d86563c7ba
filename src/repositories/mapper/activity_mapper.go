package mapper

import (
	"fmt"

	"activitytracker/src/domain"
	"activitytracker/src/domain/entities"
)

const (
	ActivityID          = "activities.id"
	ActivityName        = "activities.name"
	ActivityDescription = "activities.description"
	ActivityStartTime   = "activities.start_time"
	ActivityEndTime     = "activities.end_time"
	ActivityDuration    = "activities.duration"
	ActivityImportance  = "activities.importance"
	ActivityStatus      = "activities.status"
)

func DecodeActivity(row Row) (*entities.Activity, error) {
	activity := &entities.Activity{}
	var err error

	if activity.ID, err = row.ID(ActivityID); err != nil {
		return nil, fmt.Errorf("mapper.DecodeActivity - %w", err)
	}
	if activity.Name, err = row.String(ActivityName); err != nil {
		return nil, fmt.Errorf("mapper.DecodeActivity - %w", err)
	}
	if activity.Description, err = row.String(ActivityDescription); err != nil {
		return nil, fmt.Errorf("mapper.DecodeActivity - %w", err)
	}
	if activity.StartTime, err = row.Time(ActivityStartTime); err != nil {
		return nil, fmt.Errorf("mapper.DecodeActivity - %w", err)
	}
	if activity.EndTime, err = row.Time(ActivityEndTime); err != nil {
		return nil, fmt.Errorf("mapper.DecodeActivity - %w", err)
	}
	if activity.Duration, err = row.Duration(ActivityDuration); err != nil {
		return nil, fmt.Errorf("mapper.DecodeActivity - %w", err)
	}
	if activity.Importance, err = decodeEnum(row, ActivityImportance, entities.ParseActivityImportance); err != nil {
		return nil, fmt.Errorf("mapper.DecodeActivity - %w", err)
	}
	if activity.Status, err = decodeEnum(row, ActivityStatus, entities.ParseActivityStatus); err != nil {
		return nil, fmt.Errorf("mapper.DecodeActivity - %w", err)
	}

	return activity, nil
}

// decodeEnum devolve o valor zero para NULL e erro de decodificação para
// textos desconhecidos.
func decodeEnum[E ~string](row Row, column string, parse func(string) (E, error)) (E, error) {
	var zero E

	raw, err := row.NullableString(column)
	if err != nil || raw == nil {
		return zero, err
	}

	value, err := parse(*raw)
	if err != nil {
		return zero, fmt.Errorf("column %q: %w", column, decodingErr(err))
	}
	return value, nil
}

func decodingErr(err error) error {
	return fmt.Errorf("%w: %w", domain.ErrDecoding, err)
}
