package events_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"activitytracker/src/domain"
	"activitytracker/src/infra/kafka"
	"activitytracker/src/services/events"
	"activitytracker/src/test_artefacts/comparer"
	"activitytracker/src/test_artefacts/stubs"

	"github.com/google/uuid"
)

type capturingProducer struct {
	topic    string
	messages []kafka.Message
	err      error
}

func (p *capturingProducer) Producer(messages []kafka.Message, topic string) error {
	if p.err != nil {
		return p.err
	}
	p.topic = topic
	p.messages = append(p.messages, messages...)
	return nil
}

var _ = Describe("UserEventPublisher", func() {
	var (
		producer  *capturingProducer
		publisher *events.UserEventPublisher
	)

	BeforeEach(func() {
		producer = &capturingProducer{}
		publisher = events.NewUserEventPublisher(slog.New(slog.NewTextHandler(io.Discard, nil)), producer, "user-events")
	})

	It("should build events with a fresh uuid", func() {
		user := stubs.NewUserStub().WithID(42).Get()

		event := publisher.NewUserEvent(domain.UserCreated, user)

		Expect(uuid.Validate(event.EventID)).To(Succeed())
		Expect(event.UserID).To(BeEquivalentTo(42))
		Expect(event.Username).To(Equal(user.Username))
		Expect(event.OccurredAt).NotTo(BeZero())
	})

	It("should key messages by user id and carry the headers", func() {
		// ARRANGE
		user := stubs.NewUserStub().WithID(42).WithUsername("ana").Get()
		event := publisher.NewUserEvent(domain.UserUpdated, user)

		// ACT
		err := publisher.Publish(context.Background(), event)

		// ASSERT
		Expect(err).NotTo(HaveOccurred())
		Expect(producer.topic).To(Equal("user-events"))
		Expect(producer.messages).To(HaveLen(1))

		message := producer.messages[0]
		Expect(message.Key).To(Equal("42"))
		Expect(message.Headers).To(HaveKeyWithValue("event_type", "user.updated"))
		Expect(message.Headers).To(HaveKeyWithValue("event_id", event.EventID))
		Expect(message.Headers).To(HaveKey("source_service"))
		Expect(message.Headers).To(HaveKeyWithValue("schema_version", "v1"))

		expected, err := json.Marshal(event)
		Expect(err).NotTo(HaveOccurred())
		Expect(json.RawMessage(message.Value)).To(BeComparableTo(json.RawMessage(expected), comparer.JSONRawMessage()))
	})

	It("should not call the producer without events", func() {
		producer.err = errors.New("should not be called")

		Expect(publisher.Publish(context.Background())).To(Succeed())
	})

	It("should wrap producer failures", func() {
		producer.err = errors.New("broker down")
		event := publisher.NewUserEvent(domain.UserDeleted, stubs.NewUserStub().Get())

		err := publisher.Publish(context.Background(), event)

		Expect(err).To(MatchError(ContainSubstring("broker down")))
	})
})
