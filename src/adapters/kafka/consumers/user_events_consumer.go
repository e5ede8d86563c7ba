package consumers

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"activitytracker/src/domain"
	"activitytracker/src/domain/entities"
	"activitytracker/src/infra/kafka"
)

type CacheInvalidator interface {
	Invalidate(ctx context.Context, ids ...entities.ID) error
}

// UserEventsConsumer remove do cache o grafo dos usuários alterados por
// qualquer instância da API.
type UserEventsConsumer struct {
	logger      *slog.Logger
	invalidator CacheInvalidator
}

func NewUserEventsConsumer(logger *slog.Logger, invalidator CacheInvalidator) *UserEventsConsumer {
	return &UserEventsConsumer{
		logger:      logger,
		invalidator: invalidator,
	}
}

func (c *UserEventsConsumer) Start(ctx context.Context, kafkaClient *kafka.KafkaClient, topic string) error {
	c.logger.Info("Starting user events consumer", "topic", topic)

	handler := func(messages []kafka.Message) error {
		return c.HandleMessages(ctx, messages)
	}

	return kafkaClient.Consumer(ctx, handler, topic)
}

// HandleMessages descarta mensagens ilegíveis; só a falha de invalidação faz
// o lote ser reprocessado.
func (c *UserEventsConsumer) HandleMessages(ctx context.Context, messages []kafka.Message) error {
	if len(messages) == 0 {
		return nil
	}

	seen := make(map[entities.ID]struct{}, len(messages))
	ids := make([]entities.ID, 0, len(messages))

	for _, msg := range messages {
		var event domain.UserEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			c.logger.Warn("Skipping unreadable user event",
				"key", msg.Key,
				"event_id", msg.Headers["event_id"],
				"error", err)
			continue
		}

		if !event.UserID.IsAssigned() {
			c.logger.Warn("Skipping user event without user id", "event_id", event.EventID)
			continue
		}

		if _, dup := seen[event.UserID]; dup {
			continue
		}
		seen[event.UserID] = struct{}{}
		ids = append(ids, event.UserID)
	}

	if len(ids) == 0 {
		return nil
	}

	if err := c.invalidator.Invalidate(ctx, ids...); err != nil {
		c.logger.Error("Failed to invalidate users", "count", len(ids), "error", err)
		return fmt.Errorf("UserEventsConsumer.HandleMessages - %w", err)
	}

	c.logger.Info("Successfully processed user events batch",
		"count", len(messages),
		"invalidated", len(ids))

	return nil
}
