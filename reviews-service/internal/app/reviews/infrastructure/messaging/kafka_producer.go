package messaging

import (
	"context"
	"fmt"
	"time"

	"vibegadget/pkg/metrics"

	"github.com/segmentio/kafka-go"
)

type KafkaProducer struct {
	writer *kafka.Writer
	topic  string
}

func NewKafkaProducer(brokers []string, topic string) *KafkaProducer {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.LeastBytes{},
		BatchSize:    100,
		BatchTimeout: 10 * time.Second,
	}

	return &KafkaProducer{writer: writer, topic: topic}
}

func (p *KafkaProducer) PublishMessage(ctx context.Context, key string, value []byte) error {
	start := time.Now()

	message := kafka.Message{
		Key:   []byte(key),
		Value: value,
		Time:  time.Now(),
	}

	if err := p.writer.WriteMessages(ctx, message); err != nil {
		metrics.RecordKafkaError("reviews-service", p.topic, "produce")
		return fmt.Errorf("failed to write message to kafka: %w", err)
	}

	metrics.RecordKafkaMessageProduced("reviews-service", p.topic, time.Since(start))

	return nil
}

func (p *KafkaProducer) Close() error {
	return p.writer.Close()
}
