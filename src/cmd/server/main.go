package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"time"

	httpadapter "activitytracker/src/adapters/http"
	"activitytracker/src/helper/env"
	"activitytracker/src/infra/kafka"
	"activitytracker/src/infra/postgres"
	"activitytracker/src/infra/redis"
	"activitytracker/src/repositories"
	"activitytracker/src/services/activities"
	"activitytracker/src/services/events"
	"activitytracker/src/services/users"

	"go.uber.org/fx"
)

func main() {
	log.SetOutput(os.Stdout)
	log.Println("Starting API server with Uber Fx...")

	app := fx.New(
		// Providers
		fx.Provide(
			newLogger,
			newReadWriteClient,
			newRedisClient,
			newKafkaProducer,
			newUserCache,
			newUserRepositories,
			newActivityRepository,
			newUserEventPublisher,
			newUserService,
			newActivityService,
			newServer,
		),

		// Invocations
		fx.Invoke(registerServerHooks),
	)

	if err := app.Start(context.Background()); err != nil {
		log.Fatalf("Failed to start application: %v", err)
	}

	<-app.Done()

	stopCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.Stop(stopCtx); err != nil {
		log.Printf("Failed to stop application gracefully: %v", err)
	}
}

func newLogger() *slog.Logger {
	var level slog.Level
	switch env.GetString("LOG_LEVEL", "info") {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	h := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	logger := slog.New(h)
	slog.SetDefault(logger)
	return logger
}

func newReadWriteClient(lc fx.Lifecycle) (*postgres.ReadWriteClient, error) {
	client, err := postgres.NewReadWriteClient(postgres.ReadWriteConfig{
		ReadHost:       env.MustGetString("DB_READ_HOST"),
		WriteHost:      env.MustGetString("DB_WRITE_HOST"),
		ReadPort:       env.GetString("DB_READ_PORT", "5432"),
		WritePort:      env.GetString("DB_WRITE_PORT", "5432"),
		DBName:         env.MustGetString("DB_NAME"),
		Username:       env.MustGetString("DB_USER"),
		Password:       env.MustGetString("DB_PASSWORD"),
		MaxConnections: env.GetInt("DB_MAX_POOL_CONNECTIONS", 25),
	})
	if err != nil {
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			client.Close()
			return nil
		},
	})
	return client, nil
}

func newRedisClient(lc fx.Lifecycle, logger *slog.Logger) *redis.RedisClient {
	client := redis.NewRedisClient(
		env.MustGetString("REDIS_HOSTS"),
		env.GetInt("REDIS_POOL_SIZE", 50),
		env.GetDuration("REDIS_DEFAULT_TTL_SECONDS", 120*time.Second),
	)

	lc.Append(fx.Hook{
		// sem Redis a API segue servindo direto do banco
		OnStart: func(ctx context.Context) error {
			if err := client.HealthCheck(ctx); err != nil {
				logger.Warn("Redis unavailable at startup", "error", err)
			}
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return client.Close()
		},
	})
	return client
}

func newKafkaProducer(lc fx.Lifecycle, logger *slog.Logger) (*kafka.KafkaClient, error) {
	client, err := kafka.NewKafkaProducer(logger, env.MustGetString("KAFKA_BROKERS"))
	if err != nil {
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return client.Close()
		},
	})
	return client, nil
}

func newUserCache(logger *slog.Logger, redisClient *redis.RedisClient) *repositories.UserCache {
	return repositories.NewUserCache(logger, redisClient)
}

func newUserRepositories(
	logger *slog.Logger,
	readWriteClient *postgres.ReadWriteClient,
	userCache *repositories.UserCache,
) *repositories.CachedUserRepository {
	queryRepository := repositories.NewUserRepository(readWriteClient.GetReadPool())
	writeRepository := repositories.NewUserRepository(readWriteClient.GetWritePool())

	return repositories.NewCachedUserRepository(logger, queryRepository, writeRepository, userCache)
}

// newActivityRepository usa apenas o pool de escrita.
func newActivityRepository(
	logger *slog.Logger,
	readWriteClient *postgres.ReadWriteClient,
	userCache *repositories.UserCache,
) *repositories.CachedActivityRepository {
	repository := repositories.NewActivityRepository(readWriteClient.GetWritePool())

	return repositories.NewCachedActivityRepository(logger, repository, userCache)
}

func newUserEventPublisher(logger *slog.Logger, producer *kafka.KafkaClient) *events.UserEventPublisher {
	return events.NewUserEventPublisher(logger, producer, env.MustGetString("KAFKA_USER_EVENTS_TOPIC"))
}

func newUserService(
	logger *slog.Logger,
	store *repositories.CachedUserRepository,
	publisher *events.UserEventPublisher,
) *users.UserService {
	return users.NewUserService(logger, store, publisher, env.GetInt("BCRYPT_COST", 10))
}

func newActivityService(
	logger *slog.Logger,
	store *repositories.CachedActivityRepository,
	publisher *events.UserEventPublisher,
) *activities.ActivityService {
	return activities.NewActivityService(logger, store, publisher)
}

func newServer(
	logger *slog.Logger,
	userService *users.UserService,
	activityService *activities.ActivityService,
) *httpadapter.Server {
	port := env.GetInt("SERVER_ADDR", 8888)

	return httpadapter.NewServer(logger, port, userService, activityService)
}

// registerServerHooks registers lifecycle hooks for the HTTP server
func registerServerHooks(lc fx.Lifecycle, logger *slog.Logger, srv *httpadapter.Server) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				if err := srv.Start(); err != nil && err != http.ErrServerClosed {
					log.Fatalf("Server failed: %v", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
			defer cancel()

			if err := srv.Shutdown(shutdownCtx); err != nil {
				logger.Error("Server forced to shutdown", "error", err)
				return err
			}
			logger.Info("Server exited gracefully")
			return nil
		},
	})
}
