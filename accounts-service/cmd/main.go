package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"vibegadget/accounts-service/internal/app/accounts/config"
	"vibegadget/accounts-service/internal/app/accounts/entity"
	"vibegadget/accounts-service/internal/app/accounts/handler"
	infrahttp "vibegadget/accounts-service/internal/app/accounts/infrastructure/http"
	"vibegadget/accounts-service/internal/app/accounts/repository"
	"vibegadget/accounts-service/internal/app/accounts/service"
	"vibegadget/pkg/logger"

	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func main() {
	// Загружаем .env файл если он существует
	if err := godotenv.Load(); err != nil {
		fmt.Println("No .env file found, using environment variables")
	}

	logLevel := os.Getenv("LOG_LEVEL")
	if logLevel == "" {
		logLevel = "info"
	}

	logstashAddr := os.Getenv("LOGSTASH_ADDR")
	if logstashAddr != "" {
		logger.InitLogstash(logstashAddr, "accounts-service", logLevel)
	} else {
		logger.Init("accounts-service", logLevel)
	}

	logger.Info().Msg("Starting accounts service...")

	cfg := config.Load()

	db, err := connectDB(cfg.DatabaseURL)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to connect to database")
	}

	if err := db.AutoMigrate(&entity.UserProfile{}); err != nil {
		logger.Fatal().Err(err).Msg("Failed to run migrations")
	}
	logger.Info().Msg("Database migrations completed")

	mongoClient, err := connectMongoDB(cfg.MongoDBURI)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to connect to MongoDB")
	}
	defer func() {
		if err := mongoClient.Disconnect(context.Background()); err != nil {
			logger.Error().Err(err).Msg("Failed to disconnect from MongoDB")
		}
	}()

	mongoDB := mongoClient.Database(cfg.MongoDBDatabase)

	profileRepo := repository.NewProfileRepository(db)
	notificationRepo := repository.NewNotificationRepository(mongoDB)
	settingsRepo := repository.NewSettingsRepository(mongoDB)

	geocodingClient := infrahttp.NewGeocodingClient(cfg.GeocodingBaseURL, cfg.GeocodingTimeout)

	profileService := service.NewProfileService(profileRepo)
	notificationService := service.NewNotificationService(notificationRepo, profileRepo)
	settingsService := service.NewSettingsService(settingsRepo)

	authMiddleware := handler.NewAuthMiddleware(cfg.JWTSecret)
	profileHandler := handler.NewProfileHandler(profileService)
	notificationHandler := handler.NewNotificationHandler(notificationService)
	settingsHandler := handler.NewSettingsHandler(settingsService)
	geoHandler := handler.NewGeoHandler(geocodingClient)

	router := handler.SetupRoutes(profileHandler, notificationHandler, settingsHandler, geoHandler, authMiddleware)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info().Str("port", cfg.Port).Msg("Accounts service starting")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("Shutting down accounts service...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	logger.Info().Msg("Accounts service stopped")
}

func connectDB(databaseURL string) (*gorm.DB, error) {
	var db *gorm.DB
	var err error

	maxRetries := 10
	for i := 0; i < maxRetries; i++ {
		db, err = gorm.Open(postgres.Open(databaseURL), &gorm.Config{
			Logger: gormlogger.Default.LogMode(gormlogger.Silent),
		})
		if err == nil {
			break
		}

		logger.Warn().
			Err(err).
			Int("attempt", i+1).
			Int("max_retries", maxRetries).
			Msg("Failed to connect to database, retrying...")
		time.Sleep(3 * time.Second)
	}

	if err != nil {
		return nil, fmt.Errorf("failed to connect after %d attempts: %w", maxRetries, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}

	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(5 * time.Minute)
	sqlDB.SetConnMaxIdleTime(1 * time.Minute)

	logger.Info().Msg("Connected to PostgreSQL")
	return db, nil
}

func connectMongoDB(uri string) (*mongo.Client, error) {
	var client *mongo.Client
	var err error

	maxRetries := 10
	for i := 0; i < maxRetries; i++ {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		client, err = mongo.Connect(ctx, options.Client().ApplyURI(uri))
		if err == nil {
			err = client.Ping(ctx, readpref.Primary())
		}
		cancel()

		if err == nil {
			logger.Info().Msg("Connected to MongoDB")
			return client, nil
		}

		logger.Warn().
			Err(err).
			Int("attempt", i+1).
			Int("max_retries", maxRetries).
			Msg("Failed to connect to MongoDB, retrying...")
		time.Sleep(3 * time.Second)
	}

	return nil, fmt.Errorf("failed to connect to MongoDB after %d attempts: %w", maxRetries, err)
}
