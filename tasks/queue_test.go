package tasks

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
)

func TestQueueEnqueueAndPop(t *testing.T) {
	mr := miniredis.RunT(t)
	q := NewQueue(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	ctx := context.Background()

	for _, id := range []string{"v-1", "v-2"} {
		if err := q.Enqueue(ctx, QueueVideoGeneration, VideoTaskPayload{VideoID: id}); err != nil {
			t.Fatal("Enqueue:", err)
		}
	}

	// LPUSH + BRPOP is first in, first out.
	for _, want := range []string{"v-1", "v-2"} {
		name, payload, ok, err := q.Pop(ctx, time.Second, QueueVideoGeneration)
		if err != nil || !ok {
			t.Fatalf("Pop: ok=%v err=%v", ok, err)
		}
		if name != QueueVideoGeneration {
			t.Errorf("queue name = %q", name)
		}
		var task VideoTaskPayload
		if err := json.Unmarshal([]byte(payload), &task); err != nil {
			t.Fatal(err)
		}
		if task.VideoID != want {
			t.Errorf("VideoID = %q, want %q", task.VideoID, want)
		}
	}
}
