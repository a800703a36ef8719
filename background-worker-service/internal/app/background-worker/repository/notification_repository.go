package repository

import (
	"context"
	"fmt"
	"time"

	"vibegadget/background-worker-service/internal/app/background-worker/entity"

	"go.mongodb.org/mongo-driver/mongo"
)

type notificationRepository struct {
	collection *mongo.Collection
}

// NewNotificationRepository пишет уведомления в коллекцию Accounts Service
func NewNotificationRepository(db *mongo.Database) NotificationRepository {
	return &notificationRepository{
		collection: db.Collection("notifications"),
	}
}

func (r *notificationRepository) Create(ctx context.Context, notification *entity.Notification) error {
	notification.CreatedAt = time.Now()

	if _, err := r.collection.InsertOne(ctx, notification); err != nil {
		return fmt.Errorf("failed to insert notification: %w", err)
	}

	return nil
}
