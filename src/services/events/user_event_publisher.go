package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"activitytracker/src/domain"
	"activitytracker/src/domain/entities"
	"activitytracker/src/infra/kafka"

	"github.com/google/uuid"
)

const (
	sourceService = "activity-tracker-api"
	schemaVersion = "v1"
)

// MessageProducer é implementado por *kafka.KafkaClient.
type MessageProducer interface {
	Producer(messages []kafka.Message, topic string) error
}

type UserEventPublisher struct {
	logger   *slog.Logger
	producer MessageProducer
	topic    string
	now      func() time.Time
}

func NewUserEventPublisher(logger *slog.Logger, producer MessageProducer, topic string) *UserEventPublisher {
	return &UserEventPublisher{
		logger:   logger,
		producer: producer,
		topic:    topic,
		now:      time.Now,
	}
}

// NewUserEvent preenche ID e horário do evento.
func (p *UserEventPublisher) NewUserEvent(eventType domain.UserEventType, user *entities.User) domain.UserEvent {
	return domain.UserEvent{
		EventID:    uuid.NewString(),
		EventType:  eventType,
		UserID:     user.ID,
		Username:   user.Username,
		OccurredAt: p.now().UTC(),
	}
}

// Publish publica eventos particionados pelo ID do usuário, preservando a ordem
// por usuário.
func (p *UserEventPublisher) Publish(ctx context.Context, events ...domain.UserEvent) error {
	if len(events) == 0 {
		return nil
	}

	messages := make([]kafka.Message, 0, len(events))
	for _, event := range events {
		payload, err := json.Marshal(event)
		if err != nil {
			return fmt.Errorf("UserEventPublisher.Publish - failed to marshal event %s: %w", event.EventID, err)
		}

		messages = append(messages, kafka.Message{
			Key:     strconv.FormatInt(event.UserID.Int64(), 10),
			Value:   payload,
			Headers: eventHeaders(event),
		})
	}

	if err := p.producer.Producer(messages, p.topic); err != nil {
		return fmt.Errorf("UserEventPublisher.Publish - failed to publish to topic %s: %w", p.topic, err)
	}

	p.logger.Debug("Published user events", "topic", p.topic, "count", len(messages))
	return nil
}

func eventHeaders(event domain.UserEvent) map[string]string {
	return map[string]string{
		"event_type":     string(event.EventType),
		"event_id":       event.EventID,
		"source_service": sourceService,
		"schema_version": schemaVersion,
	}
}
