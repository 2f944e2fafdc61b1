// File: internal/events/kafka/producer.go
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Shopify/sarama"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/lafoken/withfy-backend-open/internal/domain/models"
)

// Event types carried in the envelope.
const (
	EventTypeUserRegistered = "identity.user.registered.v1"
	EventTypeUserBanned     = "identity.user.banned.v1"
)

// envelope is the wire format of every event on the user-events topic.
type envelope struct {
	ID   string      `json:"id"`
	Type string      `json:"type"`
	Time time.Time   `json:"time"`
	Data interface{} `json:"data"`
}

// Producer представляет собой продюсер Kafka для событий identity-сервиса.
type Producer struct {
	producer sarama.SyncProducer
	topic    string
	logger   *zap.Logger
}

// NewProducer создает новый экземпляр продюсера Kafka.
func NewProducer(brokers []string, topic string, logger *zap.Logger) (*Producer, error) {
	config := sarama.NewConfig()
	config.Producer.RequiredAcks = sarama.WaitForAll
	config.Producer.Retry.Max = 5
	config.Producer.Return.Successes = true
	config.Producer.Compression = sarama.CompressionSnappy
	config.Producer.Idempotent = true
	config.Net.MaxOpenRequests = 1 // required for the idempotent producer

	producer, err := sarama.NewSyncProducer(brokers, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create kafka producer: %w", err)
	}

	return &Producer{producer: producer, topic: topic, logger: logger}, nil
}

// PublishUserRegistered publishes a user-registered event keyed by user id.
func (p *Producer) PublishUserRegistered(ctx context.Context, event models.UserRegisteredEvent) error {
	return p.publish(ctx, EventTypeUserRegistered, event.UserID, event)
}

// PublishUserBanned publishes a user-banned event keyed by user id.
func (p *Producer) PublishUserBanned(ctx context.Context, event models.UserBannedEvent) error {
	return p.publish(ctx, EventTypeUserBanned, event.UserID, event)
}

func (p *Producer) publish(ctx context.Context, eventType, key string, data interface{}) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	payload, err := json.Marshal(envelope{
		ID:   uuid.New().String(),
		Type: eventType,
		Time: time.Now().UTC(),
		Data: data,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal event %s: %w", eventType, err)
	}

	msg := &sarama.ProducerMessage{
		Topic: p.topic,
		Key:   sarama.StringEncoder(key),
		Value: sarama.ByteEncoder(payload),
	}

	partition, offset, err := p.producer.SendMessage(msg)
	if err != nil {
		p.logger.Error("Failed to publish event",
			zap.String("type", eventType),
			zap.Error(err),
		)
		return fmt.Errorf("failed to publish event %s: %w", eventType, err)
	}

	p.logger.Info("Event published",
		zap.String("type", eventType),
		zap.Int32("partition", partition),
		zap.Int64("offset", offset),
	)
	return nil
}

// Close shuts down the underlying producer.
func (p *Producer) Close() error {
	return p.producer.Close()
}
