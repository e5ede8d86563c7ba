package test_seeder

import (
	"context"
	"fmt"

	"activitytracker/src/infra/postgres"

	"github.com/jackc/pgx/v5/pgxpool"
)

type TestSeeder struct {
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) TestSeeder {
	return TestSeeder{pool: pool}
}

func (ts TestSeeder) CreateSchema(ctx context.Context) {
	if err := postgres.ApplySchema(ctx, ts.pool); err != nil {
		panic(fmt.Sprintf("Failed to create schema: %v", err))
	}
}

func (ts TestSeeder) TruncateTables(ctx context.Context) {
	tables := []string{
		"activity_requests",
		"users_activities",
		"user_authorities",
		"activities",
		"users",
	}

	for _, table := range tables {
		_, err := ts.pool.Exec(ctx, fmt.Sprintf("TRUNCATE TABLE %s RESTART IDENTITY CASCADE", table))
		if err != nil {
			panic(fmt.Sprintf("Failed to truncate %s: %v", table, err))
		}
	}
}
