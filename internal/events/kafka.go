package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"bookstore-be/internal/logger"

	kafkaGo "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// batchTimeout bounds how long a synchronous write waits for its batch to
// fill. kafka-go defaults to one second.
const batchTimeout = 10 * time.Millisecond

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafkaGo.Message) error
	Close() error
}

type kafkaPublisher struct {
	writer messageWriter
}

// NewKafkaPublisher writes events to the given brokers. The topic is set per
// message so one writer serves every topic.
func NewKafkaPublisher(brokers []string) Publisher {
	w := &kafkaGo.Writer{
		Addr:                   kafkaGo.TCP(brokers...),
		Balancer:               &kafkaGo.LeastBytes{},
		AllowAutoTopicCreation: true,
		BatchTimeout:           batchTimeout,
		WriteTimeout:           5 * time.Second,
	}
	return &kafkaPublisher{writer: w}
}

// New picks Kafka when brokers are configured and a no-op publisher otherwise.
func New(brokers []string) Publisher {
	if len(brokers) == 0 {
		logger.L().Info("kafka brokers not configured, events disabled")
		return NewNopPublisher()
	}
	logger.L().Info("kafka publisher enabled", zap.Strings("brokers", brokers))
	return NewKafkaPublisher(brokers)
}

func (k *kafkaPublisher) Publish(ctx context.Context, topic string, key string, event any) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	if err := k.writer.WriteMessages(ctx, kafkaGo.Message{
		Topic: topic,
		Key:   []byte(key),
		Value: payload,
	}); err != nil {
		return fmt.Errorf("failed to publish to %s: %w", topic, err)
	}
	return nil
}

func (k *kafkaPublisher) Close() error {
	return k.writer.Close()
}
