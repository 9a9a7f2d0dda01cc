package tasks

import (
	"context"
	"errors"
	"time"

	"github.com/go-redis/redis/v8"
)

// Enqueuer pushes a task onto a named queue.
type Enqueuer interface {
	Enqueue(ctx context.Context, queueName string, payload interface{}) error
}

// Queue is a Redis list based task queue: LPUSH to add, BRPOP to take.
type Queue struct {
	RDB *redis.Client
}

func NewQueue(rdb *redis.Client) *Queue {
	return &Queue{RDB: rdb}
}

func (q *Queue) Enqueue(ctx context.Context, queueName string, payload interface{}) error {
	payloadStr, err := Marshal(payload)
	if err != nil {
		return err
	}
	return q.RDB.LPush(ctx, queueName, payloadStr).Err()
}

// Pop blocks up to timeout for a task on any of the queues.
// It returns ok=false when the timeout passes without a task.
func (q *Queue) Pop(ctx context.Context, timeout time.Duration, queueNames ...string) (queueName, payload string, ok bool, err error) {
	result, err := q.RDB.BRPop(ctx, timeout, queueNames...).Result()
	if errors.Is(err, redis.Nil) {
		return "", "", false, nil
	}
	if err != nil {
		return "", "", false, err
	}
	// result[0] is the queue name, result[1] is the payload
	return result[0], result[1], true, nil
}
