package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"gorm.io/gorm"
)

// HealthCheckHandler отдает состояние всех зависимостей worker-а
type HealthCheckHandler struct {
	ordersDB    *gorm.DB
	catalogDB   *gorm.DB
	redisClient *redis.Client
	mongoClient *mongo.Client
}

func NewHealthCheckHandler(
	ordersDB *gorm.DB,
	catalogDB *gorm.DB,
	redisClient *redis.Client,
	mongoClient *mongo.Client,
) *HealthCheckHandler {
	return &HealthCheckHandler{
		ordersDB:    ordersDB,
		catalogDB:   catalogDB,
		redisClient: redisClient,
		mongoClient: mongoClient,
	}
}

type HealthResponse struct {
	Status    string            `json:"status"`
	Checks    map[string]string `json:"checks"`
	Timestamp time.Time         `json:"timestamp"`
}

func (h *HealthCheckHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	checks := make(map[string]string)
	overallStatus := "healthy"

	if err := h.checkGorm(ctx, h.ordersDB); err != nil {
		checks["orders_database"] = "unhealthy: " + err.Error()
		overallStatus = "unhealthy"
	} else {
		checks["orders_database"] = "healthy"
	}

	if err := h.checkGorm(ctx, h.catalogDB); err != nil {
		checks["catalog_database"] = "unhealthy: " + err.Error()
		overallStatus = "unhealthy"
	} else {
		checks["catalog_database"] = "healthy"
	}

	if err := h.redisClient.Ping(ctx).Err(); err != nil {
		checks["redis"] = "unhealthy: " + err.Error()
		overallStatus = "unhealthy"
	} else {
		checks["redis"] = "healthy"
	}

	if err := h.mongoClient.Ping(ctx, readpref.Primary()); err != nil {
		checks["mongodb"] = "unhealthy: " + err.Error()
		overallStatus = "unhealthy"
	} else {
		checks["mongodb"] = "healthy"
	}

	response := HealthResponse{
		Status:    overallStatus,
		Checks:    checks,
		Timestamp: time.Now(),
	}

	w.Header().Set("Content-Type", "application/json")

	if overallStatus != "healthy" {
		w.WriteHeader(http.StatusServiceUnavailable)
	} else {
		w.WriteHeader(http.StatusOK)
	}

	json.NewEncoder(w).Encode(response)
}

func (h *HealthCheckHandler) Readiness(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if err := h.checkGorm(ctx, h.ordersDB); err != nil {
		http.Error(w, "orders database not ready", http.StatusServiceUnavailable)
		return
	}

	if err := h.checkGorm(ctx, h.catalogDB); err != nil {
		http.Error(w, "catalog database not ready", http.StatusServiceUnavailable)
		return
	}

	if err := h.redisClient.Ping(ctx).Err(); err != nil {
		http.Error(w, "redis not ready", http.StatusServiceUnavailable)
		return
	}

	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ready"))
}

func (h *HealthCheckHandler) Liveness(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("alive"))
}

func (h *HealthCheckHandler) checkGorm(ctx context.Context, db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (h *HealthCheckHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/health", h.HealthCheck)
	mux.HandleFunc("/health/readiness", h.Readiness)
	mux.HandleFunc("/health/liveness", h.Liveness)
}
