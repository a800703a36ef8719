package repository

import (
	"context"
	"fmt"
	"time"

	"vibegadget/accounts-service/internal/app/accounts/entity"
	"vibegadget/pkg/logger"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type notificationRepository struct {
	collection *mongo.Collection
}

// NewNotificationRepository создает новый репозиторий уведомлений
// Автоматически создает индекс по target для быстрой выборки ленты
func NewNotificationRepository(db *mongo.Database) NotificationRepository {
	collection := db.Collection("notifications")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModel := mongo.IndexModel{
		Keys:    bson.D{{Key: "target", Value: 1}, {Key: "created_at", Value: -1}},
		Options: options.Index().SetName("target_created_at_idx"),
	}

	if _, err := collection.Indexes().CreateOne(ctx, indexModel); err != nil {
		// Индекс может уже существовать, работу не прерываем
		logger.Warn().Err(err).Msg("Failed to create notification index")
	}

	return &notificationRepository{
		collection: collection,
	}
}

// Create создает новое уведомление
func (r *notificationRepository) Create(ctx context.Context, notification *entity.Notification) error {
	notification.CreatedAt = time.Now()

	result, err := r.collection.InsertOne(ctx, notification)
	if err != nil {
		return fmt.Errorf("failed to create notification: %w", err)
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		notification.ID = oid
	}

	return nil
}

// GetByTargets получает уведомления для перечисленных адресатов, новые первыми
func (r *notificationRepository) GetByTargets(ctx context.Context, targets []string) ([]entity.Notification, error) {
	filter := bson.M{"target": bson.M{"$in": targets}}
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find notifications: %w", err)
	}
	defer cursor.Close(ctx)

	var notifications []entity.Notification
	if err := cursor.All(ctx, &notifications); err != nil {
		return nil, fmt.Errorf("failed to decode notifications: %w", err)
	}

	return notifications, nil
}
