package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"activitytracker/src/adapters/kafka/consumers"
	"activitytracker/src/helper/env"
	"activitytracker/src/infra/kafka"
	"activitytracker/src/infra/redis"
	"activitytracker/src/repositories"

	"go.uber.org/fx"
)

func main() {
	log.SetOutput(os.Stdout)
	log.Println("Starting User Events Consumer with Uber Fx...")

	app := fx.New(
		// Providers
		fx.Provide(
			newLogger,
			newRedisClient,
			newKafkaClient,
			newCacheInvalidator,
			newUserEventsConsumer,
		),

		// Invocations
		fx.Invoke(startConsumer),
	)

	if err := app.Start(context.Background()); err != nil {
		log.Fatalf("Failed to start consumer application: %v", err)
	}

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	<-c

	log.Println("Shutting down user events consumer...")

	stopCtx, stopCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer stopCancel()

	if err := app.Stop(stopCtx); err != nil {
		log.Printf("Failed to stop application gracefully: %v", err)
	}

	log.Println("User events consumer shutdown complete")
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

func newRedisClient() *redis.RedisClient {
	return redis.NewRedisClient(
		env.MustGetString("REDIS_HOSTS"),
		env.GetInt("REDIS_POOL_SIZE", 50),
		env.GetDuration("REDIS_DEFAULT_TTL_SECONDS", 120*time.Second),
	)
}

func newKafkaClient(logger *slog.Logger) (*kafka.KafkaClient, error) {
	brokers := env.MustGetString("KAFKA_BROKERS")
	groupID := env.MustGetString("KAFKA_USER_EVENTS_CONSUMER_GROUP_ID")
	batchSize := env.GetInt("KAFKA_BATCH_SIZE", 100)

	return kafka.NewKafkaClient(logger, brokers, groupID, batchSize)
}

// newCacheInvalidator só precisa do lado de cache: as leituras ficam com a API.
func newCacheInvalidator(logger *slog.Logger, redisClient *redis.RedisClient) *repositories.UserCache {
	return repositories.NewUserCache(logger, redisClient)
}

func newUserEventsConsumer(
	logger *slog.Logger,
	invalidator *repositories.UserCache,
) *consumers.UserEventsConsumer {
	return consumers.NewUserEventsConsumer(logger, invalidator)
}

func startConsumer(
	lc fx.Lifecycle,
	logger *slog.Logger,
	kafkaClient *kafka.KafkaClient,
	redisClient *redis.RedisClient,
	userEventsConsumer *consumers.UserEventsConsumer,
) {
	consumeCtx, cancel := context.WithCancel(context.Background())

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			topic := env.MustGetString("KAFKA_USER_EVENTS_TOPIC")

			go func() {
				if err := userEventsConsumer.Start(consumeCtx, kafkaClient, topic); err != nil {
					logger.Error("Consumer failed", "error", err)
				}
			}()

			return nil
		},
		OnStop: func(ctx context.Context) error {
			cancel()

			logger.Info("Shutting down Kafka client...")
			if err := kafkaClient.Close(); err != nil {
				logger.Error("Failed to close Kafka client", "error", err)
				return err
			}
			if err := redisClient.Close(); err != nil {
				logger.Error("Failed to close Redis client", "error", err)
			}
			logger.Info("Kafka client shut down gracefully")
			return nil
		},
	})
}
