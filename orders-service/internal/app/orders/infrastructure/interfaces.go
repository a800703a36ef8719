package infrastructure

import (
	"context"

	"vibegadget/orders-service/internal/app/orders/entity"

	"github.com/google/uuid"
)

type MessagePublisher interface {
	PublishMessage(ctx context.Context, key string, value []byte) error
	Close() error
}

type CatalogServiceClient interface {
	GetProduct(ctx context.Context, productID uuid.UUID) (*entity.Product, error)
}
