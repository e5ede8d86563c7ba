package test_seeder

import (
	"context"

	"activitytracker/src/domain/entities"
)

func (ts TestSeeder) SelectAuthorities(ctx context.Context, userID entities.ID) ([]string, error) {
	query := `SELECT authorities FROM user_authorities WHERE user_id = $1 ORDER BY authorities`

	rows, err := ts.pool.Query(ctx, query, userID.Int64())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var authorities []string
	for rows.Next() {
		var authority string
		if err := rows.Scan(&authority); err != nil {
			return nil, err
		}
		authorities = append(authorities, authority)
	}

	return authorities, rows.Err()
}

func (ts TestSeeder) CountRows(ctx context.Context, table string) (int64, error) {
	var count int64
	err := ts.pool.QueryRow(ctx, "SELECT count(*) FROM "+table).Scan(&count)
	return count, err
}
