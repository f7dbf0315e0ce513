// Package publisher forwards dismissal events to Kafka.
package publisher

import (
	"context"
	"encoding/json"
	"fmt"

	"bkap/internal/notice/models"
	"bkap/internal/platform/kafka/producer"
)

// EventType is set in the event_type header of every published record.
const EventType = "notice.dismissed"

// Producer sends one message synchronously.
type Producer interface {
	Produce(ctx context.Context, msg *producer.Message) error
}

// Kafka publishes DismissedEvent records keyed by actor.
type Kafka struct {
	producer Producer
	topic    string
}

// NewKafka creates a publisher writing to topic.
func NewKafka(p Producer, topic string) *Kafka {
	return &Kafka{producer: p, topic: topic}
}

// Publish encodes ev as JSON and produces it.
func (k *Kafka) Publish(ctx context.Context, ev *models.DismissedEvent) error {
	payload, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("encode dismissal event: %w", err)
	}
	return k.producer.Produce(ctx, &producer.Message{
		Topic: k.topic,
		Key:   []byte(ev.ActorID),
		Value: payload,
		Headers: map[string]string{
			"event_type": EventType,
			"event_id":   ev.ID,
		},
	})
}
