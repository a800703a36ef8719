package infrastructure

import "context"

// MessagePublisher - интерфейс для публикации событий в Kafka
type MessagePublisher interface {
	PublishMessage(ctx context.Context, key string, value []byte) error
	Close() error
}
