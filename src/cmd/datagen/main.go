package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"activitytracker/src/domain/entities"
	"activitytracker/src/helper/env"
	"activitytracker/src/infra/postgres"
	"activitytracker/src/repositories"

	"github.com/go-faker/faker/v4"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/crypto/bcrypt"
)

var (
	importances = []entities.ActivityImportance{entities.ActivityImportanceLow, entities.ActivityImportanceMedium, entities.ActivityImportanceHigh}
	statuses    = []entities.ActivityStatus{entities.ActivityStatusPending, entities.ActivityStatusActive, entities.ActivityStatusCompleted}
	actions     = []entities.ActivityRequestAction{entities.ActivityRequestActionAdd, entities.ActivityRequestActionComplete, entities.ActivityRequestActionRemove}
	reqStatuses = []entities.ActivityRequestStatus{entities.ActivityRequestStatusPending, entities.ActivityRequestStatusApproved, entities.ActivityRequestStatusRejected}
)

func newSQLClient() (*pgxpool.Pool, error) {
	dbHost := env.MustGetString("DB_WRITE_HOST")
	dbPort := env.GetString("DB_WRITE_PORT", "5432")
	dbname := env.MustGetString("DB_NAME")
	dbUser := env.MustGetString("DB_USER")
	dbPassword := env.MustGetString("DB_PASSWORD")
	return postgres.NewPostgresClient(dbHost, dbPort, dbname, dbUser, dbPassword, 4)
}

func main() {
	numUsers := flag.Int("users", 100, "Número de usuários a serem criados")
	activitiesPerUser := flag.Int("activities", 3, "Máximo de atividades por usuário")
	requestsPerUser := flag.Int("requests", 2, "Máximo de activity requests por usuário")
	password := flag.String("password", "changeme", "Senha de todos os usuários gerados")
	flag.Parse()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		log.Println("Shutdown signal received, stopping...")
		cancel()
	}()

	db, err := newSQLClient()
	if err != nil {
		log.Fatalf("Failed to connect: %v", err)
	}
	defer db.Close()

	if err := postgres.ApplySchema(ctx, db); err != nil {
		log.Fatalf("Failed to apply schema: %v", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(*password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("Failed to hash password: %v", err)
	}

	startTime := time.Now()
	created := 0
	for i := 0; i < *numUsers; i++ {
		if ctx.Err() != nil {
			break
		}

		if err := insertUserGraph(ctx, db, string(hash), rand.Intn(*activitiesPerUser+1), rand.Intn(*requestsPerUser+1)); err != nil {
			log.Printf("Failed to insert user %d: %v", i, err)
			continue
		}

		created++
		if created%100 == 0 {
			log.Printf("Generated %d users", created)
		}
	}

	fmt.Printf("Seeding finished: %d users in %v\n", created, time.Since(startTime).Round(time.Millisecond))
}

// insertUserGraph grava um usuário com authorities, atividades e requests
// numa única transação.
func insertUserGraph(ctx context.Context, db *pgxpool.Pool, passwordHash string, numActivities, numRequests int) error {
	tx, err := db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	userRepository := repositories.NewUserRepository(tx)
	activityRepository := repositories.NewActivityRepository(tx)

	user := &entities.User{
		FirstName: faker.FirstName(),
		LastName:  faker.LastName(),
		Password:  passwordHash,
		Username:  faker.Username() + "_" + faker.UUIDDigit()[:8],
	}
	user.AddAuthority(entities.AuthorityUser)
	if rand.Intn(10) == 0 {
		user.AddAuthority(entities.AuthorityAdmin)
	}
	if err := userRepository.Create(ctx, user); err != nil {
		return err
	}
	userID := user.ID.Int64()

	activityIDs := make([]int64, 0, numActivities)
	for i := 0; i < numActivities; i++ {
		activity := fakeActivity()
		if err := activityRepository.Create(ctx, activity); err != nil {
			return err
		}
		if _, err := tx.Exec(ctx, `INSERT INTO users_activities (user_id, activity_id) VALUES ($1, $2)`, userID, activity.ID.Int64()); err != nil {
			return fmt.Errorf("link activity: %w", err)
		}
		activityIDs = append(activityIDs, activity.ID.Int64())
	}

	for i := 0; i < numRequests; i++ {
		var activityID *int64
		if len(activityIDs) > 0 && rand.Intn(4) != 0 {
			activityID = &activityIDs[rand.Intn(len(activityIDs))]
		}
		requestDate := time.Now().Add(-time.Duration(rand.Intn(720)) * time.Hour)

		_, err := tx.Exec(ctx,
			`INSERT INTO activity_requests (activity_id, user_id, request_date, action, status) VALUES ($1, $2, $3, $4, $5)`,
			postgres.NewNullInt(activityID), userID, postgres.NewNullTime(&requestDate),
			string(actions[rand.Intn(len(actions))]), string(reqStatuses[rand.Intn(len(reqStatuses))]),
		)
		if err != nil {
			return fmt.Errorf("insert activity request: %w", err)
		}
	}

	return tx.Commit(ctx)
}

func fakeActivity() *entities.Activity {
	start := time.Now().Add(time.Duration(rand.Intn(240)-120) * time.Hour).Truncate(time.Minute)
	duration := time.Duration(15+rand.Intn(180)) * time.Minute

	return &entities.Activity{
		Name:        faker.Word(),
		Description: faker.Sentence(),
		StartTime:   start,
		EndTime:     start.Add(duration),
		Duration:    duration,
		Importance:  importances[rand.Intn(len(importances))],
		Status:      statuses[rand.Intn(len(statuses))],
	}
}
