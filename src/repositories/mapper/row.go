package mapper

import (
	"fmt"
	"time"

	"activitytracker/src/domain"
	"activitytracker/src/domain/entities"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

// Row é uma linha achatada do result set: nome da coluna (com o alias da
// tabela, ex: "activities.id") para o valor escalar devolvido pelo driver.
// NULL chega como nil.
type Row map[string]any

// CollectRows lê todas as linhas e fecha o result set.
func CollectRows(rows pgx.Rows) ([]Row, error) {
	defer rows.Close()

	var collected []Row
	for rows.Next() {
		values, err := rows.Values()
		if err != nil {
			return nil, fmt.Errorf("mapper.CollectRows - failed to read row values: %w", err)
		}

		fields := rows.FieldDescriptions()
		if len(fields) != len(values) {
			return nil, fmt.Errorf("mapper.CollectRows - %d columns but %d values: %w", len(fields), len(values), domain.ErrDecoding)
		}

		row := make(Row, len(values))
		for i, field := range fields {
			row[field.Name] = values[i]
		}
		collected = append(collected, row)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("mapper.CollectRows - error iterating rows: %w", err)
	}

	return collected, nil
}

func (r Row) value(column string) (any, error) {
	v, ok := r[column]
	if !ok {
		return nil, fmt.Errorf("column %q is missing: %w", column, domain.ErrDecoding)
	}
	return v, nil
}

// ID devolve entities.Unassigned quando a coluna é NULL (left join sem match).
func (r Row) ID(column string) (entities.ID, error) {
	n, err := r.Int64(column)
	if err != nil {
		return entities.Unassigned, err
	}
	return entities.ID(n), nil
}

func (r Row) Int64(column string) (int64, error) {
	v, err := r.value(column)
	if err != nil {
		return 0, err
	}

	switch n := v.(type) {
	case nil:
		return 0, nil
	case int64:
		return n, nil
	case int32:
		return int64(n), nil
	case int16:
		return int64(n), nil
	case int:
		return int64(n), nil
	case pgtype.Int8:
		if !n.Valid {
			return 0, nil
		}
		return n.Int64, nil
	default:
		return 0, fmt.Errorf("column %q: cannot convert %T to int64: %w", column, v, domain.ErrDecoding)
	}
}

func (r Row) String(column string) (string, error) {
	v, err := r.value(column)
	if err != nil {
		return "", err
	}

	switch s := v.(type) {
	case nil:
		return "", nil
	case string:
		return s, nil
	case []byte:
		return string(s), nil
	case pgtype.Text:
		return s.String, nil
	default:
		return "", fmt.Errorf("column %q: cannot convert %T to string: %w", column, v, domain.ErrDecoding)
	}
}

// NullableString diferencia NULL de texto vazio; usado para tags de enum.
func (r Row) NullableString(column string) (*string, error) {
	v, err := r.value(column)
	if err != nil {
		return nil, err
	}
	if v == nil {
		return nil, nil
	}

	s, err := r.String(column)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r Row) Time(column string) (time.Time, error) {
	v, err := r.value(column)
	if err != nil {
		return time.Time{}, err
	}

	switch t := v.(type) {
	case nil:
		return time.Time{}, nil
	case time.Time:
		return t, nil
	case pgtype.Timestamptz:
		return t.Time, nil
	case pgtype.Timestamp:
		return t.Time, nil
	case pgtype.Date:
		return t.Time, nil
	default:
		return time.Time{}, fmt.Errorf("column %q: cannot convert %T to time: %w", column, v, domain.ErrDecoding)
	}
}

// Duration aceita BIGINT em segundos ou INTERVAL.
func (r Row) Duration(column string) (time.Duration, error) {
	v, err := r.value(column)
	if err != nil {
		return 0, err
	}

	switch d := v.(type) {
	case nil:
		return 0, nil
	case pgtype.Interval:
		if !d.Valid {
			return 0, nil
		}
		if d.Months != 0 {
			return 0, fmt.Errorf("column %q: month intervals are not supported: %w", column, domain.ErrDecoding)
		}
		return time.Duration(d.Days)*24*time.Hour + time.Duration(d.Microseconds)*time.Microsecond, nil
	default:
		seconds, err := r.Int64(column)
		if err != nil {
			return 0, err
		}
		return time.Duration(seconds) * time.Second, nil
	}
}
