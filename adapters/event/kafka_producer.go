package event

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"

	"github.com/nghiatran/devconnect/internal/config"
)

const (
	TopicPostEvents = "post.events"
	TopicUserEvents = "user.events"
)

type PostEventType string

const (
	PostEventTypeCreated   PostEventType = "post.created"
	PostEventTypeDeleted   PostEventType = "post.deleted"
	PostEventTypeLiked     PostEventType = "post.liked"
	PostEventTypeUnliked   PostEventType = "post.unliked"
	PostEventTypeCommented PostEventType = "post.commented"
)

type PostEventPayload struct {
	EventType PostEventType `json:"event_type"`
	PostID    uuid.UUID     `json:"post_id"`
	ActorID   uuid.UUID     `json:"actor_id"`
}

type UserEventType string

const (
	UserEventTypeRegistered     UserEventType = "user.registered"
	UserEventTypeAccountDeleted UserEventType = "user.account_deleted"
)

type UserEventPayload struct {
	EventType UserEventType `json:"event_type"`
	UserID    uuid.UUID     `json:"user_id"`
}

type KafkaProducerClient struct {
	PostEventsWriter *kafka.Writer
	UserEventsWriter *kafka.Writer
}

func NewKafkaProducerClient(cfg config.Config) (*KafkaProducerClient, error) {
	brokers := cfg.Kafka.Brokers
	if len(brokers) == 0 {
		return nil, fmt.Errorf("config Kafka brokers not found")
	}

	postWriter := &kafka.Writer{
		Addr:     kafka.TCP(brokers...),
		Topic:    TopicPostEvents,
		Balancer: &kafka.LeastBytes{},
	}

	userWriter := &kafka.Writer{
		Addr:     kafka.TCP(brokers...),
		Topic:    TopicUserEvents,
		Balancer: &kafka.LeastBytes{},
	}

	return &KafkaProducerClient{
		PostEventsWriter: postWriter,
		UserEventsWriter: userWriter,
	}, nil
}

func (c *KafkaProducerClient) PublishPostEvent(ctx context.Context, payload PostEventPayload) error {
	value, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal post event: %w", err)
	}
	return c.PostEventsWriter.WriteMessages(ctx, kafka.Message{
		Key:   []byte(payload.PostID.String()),
		Value: value,
	})
}

func (c *KafkaProducerClient) PublishUserEvent(ctx context.Context, payload UserEventPayload) error {
	value, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal user event: %w", err)
	}
	return c.UserEventsWriter.WriteMessages(ctx, kafka.Message{
		Key:   []byte(payload.UserID.String()),
		Value: value,
	})
}

func (c *KafkaProducerClient) Close() {
	if c.PostEventsWriter != nil {
		c.PostEventsWriter.Close()
	}
	if c.UserEventsWriter != nil {
		c.UserEventsWriter.Close()
	}
}
