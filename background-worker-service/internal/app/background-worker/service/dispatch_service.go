package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"vibegadget/background-worker-service/internal/app/background-worker/entity"
	"vibegadget/background-worker-service/internal/app/background-worker/repository"
	"vibegadget/pkg/logger"
	"vibegadget/pkg/metrics"

	"github.com/google/uuid"
)

// DispatchService выполняет исходящие HTTP вызовы с ограниченными
// ретраями и экспоненциальным backoff. Задачи, не ушедшие после всех
// попыток, складываются в dead-letter очередь и передобрабатываются
// по cron расписанию.
type DispatchService struct {
	courierClient  CourierClientInterface
	chatBotClient  ChatBotClientInterface
	orderRepo      repository.OrderRepository
	deadLetterRepo repository.DeadLetterRepository
	maxAttempts    int
	baseBackoff    time.Duration
	batchSize      int
	maxRedrives    int
}

// NewDispatchService создает новый сервис исходящих отправок
func NewDispatchService(
	courierClient CourierClientInterface,
	chatBotClient ChatBotClientInterface,
	orderRepo repository.OrderRepository,
	deadLetterRepo repository.DeadLetterRepository,
	maxAttempts int,
	baseBackoff time.Duration,
	batchSize int,
	maxRedrives int,
) *DispatchService {
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	return &DispatchService{
		courierClient:  courierClient,
		chatBotClient:  chatBotClient,
		orderRepo:      orderRepo,
		deadLetterRepo: deadLetterRepo,
		maxAttempts:    maxAttempts,
		baseBackoff:    baseBackoff,
		batchSize:      batchSize,
		maxRedrives:    maxRedrives,
	}
}

// DispatchConsignment создает накладную в курьерской службе и записывает
// трек-номер в заказ. После исчерпания ретраев задача уходит в dead-letter.
func (s *DispatchService) DispatchConsignment(ctx context.Context, orderID uuid.UUID, consignment *entity.ConsignmentRequest) error {
	err := s.withRetry(ctx, entity.DispatchCourier, func() error {
		trackingID, err := s.courierClient.CreateConsignment(ctx, consignment)
		if err != nil {
			return err
		}
		return s.orderRepo.SetTrackingID(ctx, orderID, trackingID)
	})

	if err != nil {
		s.toDeadLetter(ctx, &entity.DispatchTask{
			TaskType:    entity.DispatchCourier,
			OrderID:     orderID,
			Consignment: consignment,
			Reason:      err.Error(),
			CreatedAt:   time.Now(),
		})
		return fmt.Errorf("courier dispatch failed for order %s: %w", orderID, err)
	}

	return nil
}

// DispatchChatMessage отправляет сообщение в чат-бот магазина
func (s *DispatchService) DispatchChatMessage(ctx context.Context, orderID uuid.UUID, chatID, text string) error {
	err := s.withRetry(ctx, entity.DispatchChatBot, func() error {
		return s.chatBotClient.SendMessage(ctx, chatID, text)
	})

	if err != nil {
		s.toDeadLetter(ctx, &entity.DispatchTask{
			TaskType:  entity.DispatchChatBot,
			OrderID:   orderID,
			ChatID:    chatID,
			Text:      text,
			Reason:    err.Error(),
			CreatedAt: time.Now(),
		})
		return fmt.Errorf("chat bot dispatch failed for order %s: %w", orderID, err)
	}

	return nil
}

// RedriveDeadLetters забирает из dead-letter очереди до batchSize задач
// и пробует каждую один раз. Неудачные возвращаются в хвост очереди,
// исчерпавшие maxRedrives логируются и отбрасываются.
func (s *DispatchService) RedriveDeadLetters(ctx context.Context) error {
	for i := 0; i < s.batchSize; i++ {
		task, err := s.deadLetterRepo.Pop(ctx)
		if err != nil {
			if errors.Is(err, repository.ErrQueueEmpty) {
				return nil
			}
			return fmt.Errorf("failed to pop dead letter task: %w", err)
		}

		if task.Redrives >= s.maxRedrives {
			logger.Error().
				Str("task_type", task.TaskType).
				Str("order_id", task.OrderID.String()).
				Int("redrives", task.Redrives).
				Str("reason", task.Reason).
				Msg("Dropping dispatch task: max redrives exceeded")
			continue
		}

		if err := s.executeTask(ctx, task); err != nil {
			metrics.RecordDispatchAttempt(task.TaskType, "failed")
			task.Redrives++
			task.Reason = err.Error()
			if pushErr := s.deadLetterRepo.Push(ctx, task); pushErr != nil {
				logger.Error().
					Err(pushErr).
					Str("task_type", task.TaskType).
					Str("order_id", task.OrderID.String()).
					Msg("Failed to return task to dead letter queue")
			}
			continue
		}

		metrics.RecordDispatchAttempt(task.TaskType, "success")
		logger.Info().
			Str("task_type", task.TaskType).
			Str("order_id", task.OrderID.String()).
			Int("redrives", task.Redrives).
			Msg("Dead letter task redriven successfully")
	}

	return nil
}

// executeTask выполняет одну dead-letter задачу без ретраев
func (s *DispatchService) executeTask(ctx context.Context, task *entity.DispatchTask) error {
	switch task.TaskType {
	case entity.DispatchCourier:
		trackingID, err := s.courierClient.CreateConsignment(ctx, task.Consignment)
		if err != nil {
			return err
		}
		return s.orderRepo.SetTrackingID(ctx, task.OrderID, trackingID)
	case entity.DispatchChatBot:
		return s.chatBotClient.SendMessage(ctx, task.ChatID, task.Text)
	default:
		logger.Warn().
			Str("task_type", task.TaskType).
			Msg("Unknown dispatch task type, dropping")
		return nil
	}
}

// withRetry выполняет операцию с ограниченным числом попыток и
// экспоненциальным backoff между ними
func (s *DispatchService) withRetry(ctx context.Context, destination string, op func() error) error {
	var err error

	for attempt := 0; attempt < s.maxAttempts; attempt++ {
		if attempt > 0 {
			backoff := s.baseBackoff * time.Duration(1<<(attempt-1))
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(backoff):
			}
		}

		if err = op(); err == nil {
			metrics.RecordDispatchAttempt(destination, "success")
			return nil
		}

		metrics.RecordDispatchAttempt(destination, "failed")
		logger.Warn().
			Err(err).
			Str("destination", destination).
			Int("attempt", attempt+1).
			Int("max_attempts", s.maxAttempts).
			Msg("Dispatch attempt failed")
	}

	return err
}

// toDeadLetter кладет неотправленную задачу в очередь
func (s *DispatchService) toDeadLetter(ctx context.Context, task *entity.DispatchTask) {
	metrics.RecordDeadLetter(task.TaskType)

	if err := s.deadLetterRepo.Push(ctx, task); err != nil {
		logger.Error().
			Err(err).
			Str("task_type", task.TaskType).
			Str("order_id", task.OrderID.String()).
			Msg("Failed to push task to dead letter queue")
		return
	}

	logger.Warn().
		Str("task_type", task.TaskType).
		Str("order_id", task.OrderID.String()).
		Str("reason", task.Reason).
		Msg("Dispatch task sent to dead letter queue")
}
