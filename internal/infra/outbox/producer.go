package outbox

import (
	"context"
	"time"

	"ticketbooth/internal/pkg/config"

	"github.com/segmentio/kafka-go"
)

// Publisher is what the relay needs from a broker client.
type Publisher interface {
	Publish(ctx context.Context, topic, key string, payload []byte) error
}

type Producer struct {
	writer *kafka.Writer
}

// NewProducer builds a kafka writer without a fixed topic; outbox rows carry
// their own.
func NewProducer(cfg config.KafkaConfig) *Producer {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Balancer:     &kafka.LeastBytes{},
		BatchTimeout: 10 * time.Millisecond,
		WriteTimeout: cfg.WriteTimeout,
	}
	return &Producer{writer: writer}
}

func (p *Producer) Publish(ctx context.Context, topic, key string, payload []byte) error {
	return p.writer.WriteMessages(ctx, kafka.Message{
		Topic: topic,
		Key:   []byte(key),
		Value: payload,
		Time:  time.Now(),
	})
}

func (p *Producer) Close() error {
	return p.writer.Close()
}
