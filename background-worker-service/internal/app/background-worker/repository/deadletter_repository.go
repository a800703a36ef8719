package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"vibegadget/background-worker-service/internal/app/background-worker/entity"

	"github.com/redis/go-redis/v9"
)

// Ключ dead-letter списка в Redis
const deadLetterKey = "dispatch:dead_letter"

type deadLetterRepository struct {
	client *redis.Client
}

// NewDeadLetterRepository создает dead-letter очередь поверх Redis списка
func NewDeadLetterRepository(client *redis.Client) DeadLetterRepository {
	return &deadLetterRepository{client: client}
}

// Push кладет задачу в хвост очереди
func (r *deadLetterRepository) Push(ctx context.Context, task *entity.DispatchTask) error {
	data, err := json.Marshal(task)
	if err != nil {
		return fmt.Errorf("failed to marshal dispatch task: %w", err)
	}

	if err := r.client.RPush(ctx, deadLetterKey, data).Err(); err != nil {
		return fmt.Errorf("failed to push dispatch task: %w", err)
	}

	return nil
}

// Pop забирает задачу из головы очереди (FIFO)
func (r *deadLetterRepository) Pop(ctx context.Context) (*entity.DispatchTask, error) {
	data, err := r.client.LPop(ctx, deadLetterKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrQueueEmpty
		}
		return nil, fmt.Errorf("failed to pop dispatch task: %w", err)
	}

	var task entity.DispatchTask
	if err := json.Unmarshal(data, &task); err != nil {
		return nil, fmt.Errorf("failed to unmarshal dispatch task: %w", err)
	}

	return &task, nil
}

// Size возвращает текущую длину очереди
func (r *deadLetterRepository) Size(ctx context.Context) (int64, error) {
	size, err := r.client.LLen(ctx, deadLetterKey).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to get dead letter queue size: %w", err)
	}
	return size, nil
}
