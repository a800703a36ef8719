package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"vibegadget/accounts-service/internal/app/accounts/entity"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type settingsRepository struct {
	collection *mongo.Collection
}

// NewSettingsRepository создает новый репозиторий настроек платформы.
// Настройки хранятся единственным документом с _id = "platform".
func NewSettingsRepository(db *mongo.Database) SettingsRepository {
	return &settingsRepository{
		collection: db.Collection("settings"),
	}
}

// Get получает singleton-документ настроек
func (r *settingsRepository) Get(ctx context.Context) (*entity.PlatformSettings, error) {
	filter := bson.M{"_id": entity.PlatformSettingsID}

	var settings entity.PlatformSettings
	err := r.collection.FindOne(ctx, filter).Decode(&settings)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrSettingsNotFound
		}
		return nil, fmt.Errorf("failed to get platform settings: %w", err)
	}

	return &settings, nil
}

// Upsert создает или полностью заменяет singleton-документ настроек
func (r *settingsRepository) Upsert(ctx context.Context, settings *entity.PlatformSettings) error {
	settings.ID = entity.PlatformSettingsID
	settings.UpdatedAt = time.Now()

	filter := bson.M{"_id": entity.PlatformSettingsID}
	opts := options.Replace().SetUpsert(true)

	if _, err := r.collection.ReplaceOne(ctx, filter, settings, opts); err != nil {
		return fmt.Errorf("failed to upsert platform settings: %w", err)
	}

	return nil
}
