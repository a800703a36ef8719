package repository

import (
	"context"
	"errors"
	"fmt"

	"vibegadget/background-worker-service/internal/app/background-worker/entity"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type settingsRepository struct {
	collection *mongo.Collection
}

// NewSettingsRepository читает singleton документ настроек платформы
func NewSettingsRepository(db *mongo.Database) SettingsRepository {
	return &settingsRepository{
		collection: db.Collection("settings"),
	}
}

// Get возвращает настройки платформы. Если админ их не сохранял,
// возвращаются нулевые значения: интеграции выключены.
func (r *settingsRepository) Get(ctx context.Context) (*entity.PlatformSettings, error) {
	var settings entity.PlatformSettings

	err := r.collection.FindOne(ctx, bson.M{"_id": "platform"}).Decode(&settings)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return &entity.PlatformSettings{}, nil
		}
		return nil, fmt.Errorf("failed to get platform settings: %w", err)
	}

	return &settings, nil
}
