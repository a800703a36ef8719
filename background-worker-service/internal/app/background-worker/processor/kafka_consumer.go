package processor

import (
	"context"
	"time"

	"vibegadget/pkg/logger"
	"vibegadget/pkg/metrics"

	"github.com/segmentio/kafka-go"
)

// MessageHandler обрабатывает одно сообщение из Kafka.
// Ошибка означает "не коммитить offset": сообщение будет вычитано снова.
type MessageHandler func(ctx context.Context, message []byte) error

// KafkaConsumer читает один топик и передает сообщения в handler.
// Worker держит по consumer-у на топик (order_events, review_events).
type KafkaConsumer struct {
	reader   *kafka.Reader
	topic    string
	groupID  string
	handler  MessageHandler
	stopChan chan struct{}
	doneChan chan struct{}
}

// NewKafkaConsumer создает новый Kafka consumer
func NewKafkaConsumer(
	brokers []string,
	topic string,
	groupID string,
	minBytes int,
	maxBytes int,
	handler MessageHandler,
) *KafkaConsumer {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:        brokers,
		Topic:          topic,
		GroupID:        groupID,
		MinBytes:       minBytes,
		MaxBytes:       maxBytes,
		StartOffset:    kafka.LastOffset,
		CommitInterval: time.Second,
		ReadBackoffMin: 100 * time.Millisecond,
		ReadBackoffMax: 1 * time.Second,
	})

	return &KafkaConsumer{
		reader:   reader,
		topic:    topic,
		groupID:  groupID,
		handler:  handler,
		stopChan: make(chan struct{}),
		doneChan: make(chan struct{}),
	}
}

// Start запускает consumer в отдельной горутине
func (c *KafkaConsumer) Start(ctx context.Context) {
	logger.Info().
		Str("topic", c.topic).
		Str("group_id", c.groupID).
		Msg("Starting Kafka consumer")

	go c.consume(ctx)
}

// Stop останавливает consumer и дожидается завершения цикла чтения
func (c *KafkaConsumer) Stop() {
	logger.Info().Str("topic", c.topic).Msg("Stopping Kafka consumer")
	close(c.stopChan)
	<-c.doneChan
	c.reader.Close()
	logger.Info().Str("topic", c.topic).Msg("Kafka consumer stopped")
}

// consume читает и обрабатывает сообщения из Kafka
func (c *KafkaConsumer) consume(ctx context.Context) {
	defer close(c.doneChan)

	for {
		select {
		case <-c.stopChan:
			return
		default:
			readCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			message, err := c.reader.FetchMessage(readCtx)
			cancel()

			if err != nil {
				if ctx.Err() != nil {
					return
				}

				logger.Debug().
					Err(err).
					Str("topic", c.topic).
					Msg("Error fetching message")
				time.Sleep(time.Second)
				continue
			}

			start := time.Now()
			if err := c.handler(ctx, message.Value); err != nil {
				// Не коммитим offset при ошибке: сообщение будет
				// обработано повторно
				metrics.RecordKafkaError("background-worker-service", c.topic, "consume")
				logger.Error().
					Err(err).
					Str("topic", c.topic).
					Int64("offset", message.Offset).
					Int("partition", message.Partition).
					Msg("Error processing message")
				continue
			}

			metrics.RecordKafkaMessageConsumed("background-worker-service", c.topic, c.groupID, time.Since(start))

			if err := c.reader.CommitMessages(ctx, message); err != nil {
				logger.Error().
					Err(err).
					Str("topic", c.topic).
					Msg("Error committing message")
			}
		}
	}
}

// GetStats возвращает статистику consumer-а
func (c *KafkaConsumer) GetStats() kafka.ReaderStats {
	return c.reader.Stats()
}
