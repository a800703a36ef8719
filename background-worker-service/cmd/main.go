package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"vibegadget/background-worker-service/internal/app/background-worker/config"
	"vibegadget/background-worker-service/internal/app/background-worker/entity"
	"vibegadget/background-worker-service/internal/app/background-worker/handler"
	"vibegadget/background-worker-service/internal/app/background-worker/processor"
	"vibegadget/background-worker-service/internal/app/background-worker/repository"
	"vibegadget/background-worker-service/internal/app/background-worker/service"
	"vibegadget/pkg/logger"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
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
		logger.InitLogstash(logstashAddr, "background-worker-service", logLevel)
	} else {
		logger.Init("background-worker-service", logLevel)
	}

	logger.Info().Msg("Starting background worker service...")

	cfg := config.Load()

	ctx := context.Background()

	ordersDB, err := connectDB(cfg.OrdersDatabaseURL)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to connect to orders database")
	}
	logger.Info().Msg("Connected to PostgreSQL (orders_service)")

	catalogDB, err := connectDB(cfg.CatalogDatabaseURL)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to connect to catalog database")
	}
	logger.Info().Msg("Connected to PostgreSQL (catalog_service)")

	redisClient, err := connectRedis(ctx, cfg.Redis)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer redisClient.Close()
	logger.Info().Msg("Connected to Redis")

	mongoClient, err := connectMongoDB(ctx, cfg.MongoDBURI)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to connect to MongoDB")
	}
	defer func() {
		if err := mongoClient.Disconnect(context.Background()); err != nil {
			logger.Error().Err(err).Msg("Failed to disconnect from MongoDB")
		}
	}()
	mongoDB := mongoClient.Database(cfg.MongoDBDatabase)
	logger.Info().Msg("Connected to MongoDB")

	orderRepo := repository.NewOrderRepository(ordersDB)
	productRepo := repository.NewProductRepository(catalogDB)
	deadLetterRepo := repository.NewDeadLetterRepository(redisClient)
	notificationRepo := repository.NewNotificationRepository(mongoDB)
	settingsRepo := repository.NewSettingsRepository(mongoDB)

	courierClient := service.NewCourierClient(cfg.Courier.BaseURL, cfg.Courier.APIKey, cfg.Courier.Timeout)
	chatBotClient := service.NewChatBotClient(cfg.ChatBot.BaseURL, cfg.ChatBot.Token, cfg.ChatBot.Timeout)

	dispatchSvc := service.NewDispatchService(
		courierClient,
		chatBotClient,
		orderRepo,
		deadLetterRepo,
		cfg.Dispatch.MaxAttempts,
		cfg.Dispatch.BaseBackoff,
		cfg.Redrive.BatchSize,
		cfg.Redrive.MaxRedrives,
	)
	orderEventSvc := service.NewOrderEventService(productRepo, notificationRepo, settingsRepo, dispatchSvc)
	ratingSvc := service.NewRatingService(productRepo)

	orderConsumer := processor.NewKafkaConsumer(
		cfg.Kafka.Brokers,
		cfg.Kafka.OrderTopic,
		cfg.Kafka.GroupID,
		cfg.Kafka.MinBytes,
		cfg.Kafka.MaxBytes,
		func(ctx context.Context, message []byte) error {
			var event entity.OrderEvent
			if err := json.Unmarshal(message, &event); err != nil {
				return fmt.Errorf("failed to unmarshal order event: %w", err)
			}
			return orderEventSvc.ProcessOrderEvent(ctx, &event)
		},
	)
	orderConsumer.Start(ctx)
	defer orderConsumer.Stop()

	reviewConsumer := processor.NewKafkaConsumer(
		cfg.Kafka.Brokers,
		cfg.Kafka.ReviewTopic,
		cfg.Kafka.GroupID,
		cfg.Kafka.MinBytes,
		cfg.Kafka.MaxBytes,
		func(ctx context.Context, message []byte) error {
			var event entity.ReviewEvent
			if err := json.Unmarshal(message, &event); err != nil {
				return fmt.Errorf("failed to unmarshal review event: %w", err)
			}
			return ratingSvc.ProcessReviewEvent(ctx, &event)
		},
	)
	reviewConsumer.Start(ctx)
	defer reviewConsumer.Stop()

	cronScheduler := processor.NewCronScheduler(dispatchSvc)
	if err := cronScheduler.Start(ctx, cfg.Redrive.Schedule); err != nil {
		logger.Fatal().Err(err).Msg("Failed to start cron scheduler")
	}
	defer cronScheduler.Stop()

	healthHandler := handler.NewHealthCheckHandler(ordersDB, catalogDB, redisClient, mongoClient)

	mux := http.NewServeMux()
	healthHandler.RegisterRoutes(mux)
	mux.Handle("/metrics", promhttp.Handler())

	httpServer := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: mux,
	}

	go func() {
		logger.Info().Str("port", cfg.Port).Msg("Starting healthcheck HTTP server")
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error().Err(err).Msg("HTTP server error")
		}
	}()
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		httpServer.Shutdown(shutdownCtx)
	}()

	logger.Info().
		Str("order_topic", cfg.Kafka.OrderTopic).
		Str("review_topic", cfg.Kafka.ReviewTopic).
		Str("redrive_schedule", cfg.Redrive.Schedule).
		Msg("Background worker service is running")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("Shutting down background worker service...")
}

// connectDB устанавливает соединение с PostgreSQL используя GORM
func connectDB(databaseURL string) (*gorm.DB, error) {
	var db *gorm.DB
	var err error

	for i := 0; i < 10; i++ {
		db, err = gorm.Open(postgres.Open(databaseURL), &gorm.Config{
			Logger: gormlogger.Default.LogMode(gormlogger.Silent),
		})
		if err == nil {
			sqlDB, sqlErr := db.DB()
			if sqlErr != nil {
				err = sqlErr
			} else if pingErr := sqlDB.Ping(); pingErr != nil {
				err = pingErr
			} else {
				sqlDB.SetMaxOpenConns(10)
				sqlDB.SetMaxIdleConns(5)
				sqlDB.SetConnMaxLifetime(5 * time.Minute)
				sqlDB.SetConnMaxIdleTime(1 * time.Minute)
				return db, nil
			}
		}

		logger.Warn().
			Err(err).
			Int("attempt", i+1).
			Msg("Failed to connect to database, retrying...")
		time.Sleep(3 * time.Second)
	}

	return nil, fmt.Errorf("failed to connect after 10 attempts: %w", err)
}

// connectRedis устанавливает соединение с Redis
func connectRedis(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
		MinIdleConns: 5,
	})

	for i := 0; i < 10; i++ {
		if err := client.Ping(ctx).Err(); err == nil {
			return client, nil
		}
		logger.Warn().Int("attempt", i+1).Msg("Failed to connect to Redis, retrying...")
		time.Sleep(3 * time.Second)
	}

	return nil, fmt.Errorf("failed to connect to Redis after 10 attempts")
}

// connectMongoDB устанавливает соединение с MongoDB
func connectMongoDB(ctx context.Context, uri string) (*mongo.Client, error) {
	var client *mongo.Client
	var err error

	for i := 0; i < 10; i++ {
		connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		client, err = mongo.Connect(connectCtx, options.Client().ApplyURI(uri))
		if err == nil {
			err = client.Ping(connectCtx, readpref.Primary())
		}
		cancel()

		if err == nil {
			return client, nil
		}

		logger.Warn().
			Err(err).
			Int("attempt", i+1).
			Msg("Failed to connect to MongoDB, retrying...")
		time.Sleep(3 * time.Second)
	}

	return nil, fmt.Errorf("failed to connect to MongoDB after 10 attempts: %w", err)
}
