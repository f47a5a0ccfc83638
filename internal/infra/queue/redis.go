package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Ma3uR/easy-prompt/internal/domain"
)

// RedisPromptQueue реализует очередь задач генерации промптов на базе Redis lists.
type RedisPromptQueue struct {
	client *redis.Client
	key    string
}

// NewRedisPromptQueue создаёт очередь по указанному ключу.
func NewRedisPromptQueue(client *redis.Client, key string) *RedisPromptQueue {
	return &RedisPromptQueue{client: client, key: key}
}

// Enqueue публикует задачу в очередь.
func (q *RedisPromptQueue) Enqueue(ctx context.Context, job domain.PromptJob) error {
	payload, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("marshal job: %w", err)
	}
	if err := q.client.LPush(ctx, q.key, payload).Err(); err != nil {
		return fmt.Errorf("push job: %w", err)
	}
	return nil
}

// Pop блокирующе читает задачу из очереди.
func (q *RedisPromptQueue) Pop(ctx context.Context) (domain.PromptJob, error) {
	for {
		if err := ctx.Err(); err != nil {
			return domain.PromptJob{}, err
		}

		res, err := q.client.BRPop(ctx, time.Second, q.key).Result()
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				if ctx.Err() != nil {
					return domain.PromptJob{}, ctx.Err()
				}
				continue
			}
			if errors.Is(err, redis.Nil) {
				continue
			}
			return domain.PromptJob{}, err
		}
		if len(res) != 2 {
			return domain.PromptJob{}, errors.New("redis queue: unexpected response")
		}
		var job domain.PromptJob
		if err := json.Unmarshal([]byte(res[1]), &job); err != nil {
			return domain.PromptJob{}, fmt.Errorf("decode job: %w", err)
		}
		return job, nil
	}
}
