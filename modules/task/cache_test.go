package task

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	domain "github.com/mtfsantos/task-manager/domain/task"
)

const testRedisAddr = "localhost:6379"

// setupTestCache creates a cache backed by a local Redis, skipping the test
// when no server is reachable.
func setupTestCache(t *testing.T) *Cache {
	t.Helper()

	client := redis.NewClient(&redis.Options{Addr: testRedisAddr})

	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		t.Skipf("Redis not available at %s: %v", testRedisAddr, err)
	}

	t.Cleanup(func() {
		client.Close()
	})

	return NewCache(client, "tasks-test:", time.Minute)
}

func TestCache_SetGetDelete(t *testing.T) {
	cache := setupTestCache(t)
	ctx := context.Background()

	task := &domain.Task{
		ID:        uuid.New().String(),
		Title:     "Cached Task",
		Status:    domain.StatusPending,
		CreatedAt: time.Now().UTC().Truncate(time.Second),
	}

	var miss domain.Task
	found, err := cache.Get(ctx, task.ID, &miss)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if found {
		t.Error("Get() = hit, want miss before Set")
	}

	if err := cache.Set(ctx, task); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	var hit domain.Task
	found, err = cache.Get(ctx, task.ID, &hit)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if !found {
		t.Fatal("Get() = miss, want hit after Set")
	}
	if hit.Title != task.Title {
		t.Errorf("Title = %q, want %q", hit.Title, task.Title)
	}
	if hit.Status != task.Status {
		t.Errorf("Status = %q, want %q", hit.Status, task.Status)
	}

	if err := cache.Delete(ctx, task.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}

	var gone domain.Task
	found, err = cache.Get(ctx, task.ID, &gone)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if found {
		t.Error("Get() = hit, want miss after Delete")
	}
}
