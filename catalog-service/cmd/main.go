package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"

	"vibegadget/catalog-service/internal/app/catalog/config"
	"vibegadget/catalog-service/internal/app/catalog/handler"
	"vibegadget/catalog-service/internal/app/catalog/repository"
	"vibegadget/catalog-service/internal/app/catalog/service"
	"vibegadget/catalog-service/internal/app/catalog/util"
	"vibegadget/pkg/logger"
)

func main() {
	// .env удобен для локальной разработки, в проде переменные приходят из окружения
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	logLevel := os.Getenv("LOG_LEVEL")
	if logLevel == "" {
		logLevel = "info"
	}
	logger.Init("catalog-service", logLevel)

	logstashAddr := os.Getenv("LOGSTASH_ADDR")
	if logstashAddr != "" {
		if err := logger.InitLogstash(logstashAddr, "catalog-service", logLevel); err != nil {
			logger.Warn().Err(err).Msg("Failed to connect to Logstash, using stdout only")
		}
	}

	db, err := connectDB(context.Background(), cfg.Database)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer db.Close()
	logger.Info().
		Str("host", cfg.Database.Host).
		Str("database", cfg.Database.DBName).
		Msg("Connected to PostgreSQL")

	redisClient, err := util.NewRedisClient(cfg.Redis.Address(), cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer redisClient.Close()
	logger.Info().Str("addr", cfg.Redis.Address()).Msg("Connected to Redis")

	imageStore, err := util.NewS3ImageStore(
		cfg.S3.Region,
		cfg.S3.AccessKeyID,
		cfg.S3.SecretAccessKey,
		cfg.S3.Bucket,
		cfg.S3.PublicBaseURL,
	)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to initialize image store")
	}
	logger.Info().Str("bucket", cfg.S3.Bucket).Msg("Initialized S3 image store")

	productRepo := repository.NewProductRepository(db)
	bannerRepo := repository.NewBannerRepository(db)

	catalogService := service.NewCatalogService(productRepo, bannerRepo, redisClient, imageStore)

	authMiddleware := handler.NewAuthMiddleware(cfg.JWT.Secret)
	catalogHandler := handler.NewCatalogHandler(catalogService)
	bannerHandler := handler.NewBannerHandler(catalogService)
	uploadHandler := handler.NewUploadHandler(catalogService)
	router := handler.SetupRoutes(catalogHandler, bannerHandler, uploadHandler, authMiddleware)

	server := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info().Str("address", cfg.Server.Address()).Msg("Starting Catalog Service")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("Shutting down Catalog Service...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	logger.Info().Msg("Catalog Service stopped gracefully")
}

func connectDB(ctx context.Context, cfg config.DatabaseConfig) (*pgxpool.Pool, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to parse database config: %w", err)
	}

	poolCfg.MaxConns = 25
	poolCfg.MinConns = 5
	poolCfg.MaxConnLifetime = 5 * time.Minute

	var pool *pgxpool.Pool

	for i := 0; i < 10; i++ {
		pool, err = pgxpool.NewWithConfig(ctx, poolCfg)
		if err == nil {
			if pingErr := pool.Ping(ctx); pingErr == nil {
				return pool, nil
			} else {
				err = pingErr
				pool.Close()
			}
		}
		logger.Warn().
			Int("attempt", i+1).
			Err(err).
			Msg("Failed to connect to database, retrying...")
		time.Sleep(3 * time.Second)
	}

	return nil, fmt.Errorf("failed to connect after 10 attempts: %w", err)
}
