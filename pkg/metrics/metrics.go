package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// =============================================================================
// HTTP метрики (общие для всех сервисов)
// =============================================================================

// HttpRequestsTotal - счётчик всех HTTP запросов
// Labels: service, method, path, status
var HttpRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	},
	[]string{"service", "method", "path", "status"},
)

// HttpRequestDuration - гистограмма времени ответа
// Пример: histogram_quantile(0.95, rate(http_request_duration_seconds_bucket[5m]))
var HttpRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Duration of HTTP requests in seconds",
		Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
	},
	[]string{"service", "method", "path"},
)

// HttpRequestsInFlight - текущее количество обрабатываемых запросов
var HttpRequestsInFlight = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Name: "http_requests_in_flight",
		Help: "Current number of HTTP requests being processed",
	},
	[]string{"service"},
)

// =============================================================================
// Database метрики
// =============================================================================

var DbQueryDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    "db_query_duration_seconds",
		Help:    "Duration of database queries in seconds",
		Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
	},
	[]string{"service", "operation", "table"},
)

var DbErrors = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "db_errors_total",
		Help: "Total number of database errors",
	},
	[]string{"service", "operation"},
)

// =============================================================================
// Redis метрики
// =============================================================================

var RedisCacheHits = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "redis_cache_hits_total",
		Help: "Total number of Redis cache hits",
	},
	[]string{"service", "key_prefix"},
)

var RedisCacheMisses = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "redis_cache_misses_total",
		Help: "Total number of Redis cache misses",
	},
	[]string{"service", "key_prefix"},
)

var RedisOperationDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    "redis_operation_duration_seconds",
		Help:    "Duration of Redis operations in seconds",
		Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1},
	},
	[]string{"service", "operation"},
)

var RedisErrors = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "redis_errors_total",
		Help: "Total number of Redis errors",
	},
	[]string{"service", "operation"},
)

// =============================================================================
// Kafka метрики
// =============================================================================

var KafkaMessagesProduced = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "kafka_messages_produced_total",
		Help: "Total number of Kafka messages produced",
	},
	[]string{"service", "topic"},
)

var KafkaMessagesConsumed = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "kafka_messages_consumed_total",
		Help: "Total number of Kafka messages consumed",
	},
	[]string{"service", "topic", "group"},
)

var KafkaProduceDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    "kafka_produce_duration_seconds",
		Help:    "Duration of Kafka produce operations",
		Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
	},
	[]string{"service", "topic"},
)

var KafkaConsumeDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    "kafka_consume_duration_seconds",
		Help:    "Duration of Kafka message processing",
		Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 5, 10},
	},
	[]string{"service", "topic"},
)

var KafkaErrors = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "kafka_errors_total",
		Help: "Total number of Kafka errors",
	},
	[]string{"service", "topic", "operation"},
)

// =============================================================================
// Бизнес-метрики Vibe Gadget
// =============================================================================

// --- Orders Service ---

// OrdersCreated - созданные заказы (включая гостевые)
var OrdersCreated = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "orders_created_total",
		Help: "Total number of orders created",
	},
	[]string{"payment_method"},
)

// OrdersTotalAmount - общая сумма заказов в единицах валюты
var OrdersTotalAmount = promauto.NewCounter(
	prometheus.CounterOpts{
		Name: "orders_total_amount",
		Help: "Total amount of all orders in currency units",
	},
)

// OrderStatusChanges - смены статусов заказов администратором
var OrderStatusChanges = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "order_status_changes_total",
		Help: "Total number of order status transitions",
	},
	[]string{"to_status"},
)

// CartOperations - операции с корзиной
var CartOperations = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "cart_operations_total",
		Help: "Total number of cart operations",
	},
	[]string{"operation"}, // add, update, remove, clear
)

// --- Reviews Service ---

var ReviewsCreated = promauto.NewCounter(
	prometheus.CounterOpts{
		Name: "reviews_created_total",
		Help: "Total number of reviews created",
	},
)

var ReviewsRating = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Name:    "reviews_rating",
		Help:    "Distribution of review ratings",
		Buckets: []float64{1, 2, 3, 4, 5},
	},
)

// --- Accounts Service ---

var NotificationsCreated = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "notifications_created_total",
		Help: "Total number of notifications created",
	},
	[]string{"target"}, // user, broadcast
)

// --- Background Worker ---

// WorkerEventsProcessed - обработанные события из Kafka
var WorkerEventsProcessed = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "worker_events_processed_total",
		Help: "Total number of events processed by worker",
	},
	[]string{"event_type", "status"}, // status: success, failed
)

// DispatchAttempts - попытки отправки во внешние API (курьер, чат-бот)
var DispatchAttempts = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "dispatch_attempts_total",
		Help: "Total number of outbound dispatch attempts",
	},
	[]string{"destination", "status"}, // destination: courier, chatbot
)

// DispatchDeadLetters - задачи, ушедшие в dead-letter после исчерпания ретраев
var DispatchDeadLetters = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "dispatch_dead_letters_total",
		Help: "Total number of dispatch tasks sent to the dead-letter queue",
	},
	[]string{"destination"},
)

// RatingUpdates - атомарные обновления рейтинга товаров
var RatingUpdates = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "product_rating_updates_total",
		Help: "Total number of product rating aggregate updates",
	},
	[]string{"status"},
)
