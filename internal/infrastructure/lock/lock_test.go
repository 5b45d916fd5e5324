package lock

import (
	"context"
	"errors"
	"os"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"

	"fate-inyeon/internal/config"
)

func TestLocal_SerializesSameKey(t *testing.T) {
	l := NewLocal()
	var inside, maxInside atomic.Int32

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			release, err := l.Acquire(context.Background(), "k")
			if err != nil {
				t.Errorf("unexpected err: %v", err)
				return
			}
			n := inside.Add(1)
			for {
				m := maxInside.Load()
				if n <= m || maxInside.CompareAndSwap(m, n) {
					break
				}
			}
			time.Sleep(time.Millisecond)
			inside.Add(-1)
			release()
		}()
	}
	wg.Wait()

	if maxInside.Load() != 1 {
		t.Fatalf("expected one holder at a time, saw %d", maxInside.Load())
	}
	if len(l.slots) != 0 {
		t.Fatalf("slots must be cleaned up, got %d", len(l.slots))
	}
}

func TestLocal_DifferentKeysDoNotBlock(t *testing.T) {
	l := NewLocal()
	r1, err := l.Acquire(context.Background(), "a")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	defer r1()

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	r2, err := l.Acquire(ctx, "b")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	r2()
}

func TestLocal_ContextCancel(t *testing.T) {
	l := NewLocal()
	release, _ := l.Acquire(context.Background(), "k")
	defer release()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	r, err := l.Acquire(ctx, "k")
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline exceeded, got %v", err)
	}
	r()
	release()
	release()
}

func TestPairLocker_FallsBackWithoutRedis(t *testing.T) {
	r := NewRedis(config.RedisConfig{}, nil)
	if r.Available() {
		t.Fatalf("redis without host must be unavailable")
	}
	p := NewPairLocker(r, time.Second, nil)

	release, err := p.Acquire(context.Background(), "pairlock:a:b")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	if _, err := p.Acquire(ctx, "pairlock:a:b"); err == nil {
		t.Fatalf("second acquire must wait for the first")
	}
	release()
}

// Runs against a real server when REDIS_TEST_ADDR is set.
func TestPairLocker_Redis(t *testing.T) {
	addr := os.Getenv("REDIS_TEST_ADDR")
	if addr == "" {
		t.Skip("REDIS_TEST_ADDR not set")
	}
	client := redis.NewClient(&redis.Options{Addr: addr})
	defer client.Close()

	r := NewRedisFromClient(client, nil)
	p := NewPairLocker(r, 2*time.Second, nil)
	key := "pairlock:test:" + time.Now().Format(time.RFC3339Nano)

	release, err := p.Acquire(context.Background(), key)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	if _, err := p.Acquire(ctx, key); err == nil {
		t.Fatalf("second acquire must time out while held")
	}

	if ok, _ := r.DeleteIfValue(context.Background(), key, "someone-else"); ok {
		t.Fatalf("release with a foreign token must not delete")
	}
	release()

	release2, err := p.Acquire(context.Background(), key)
	if err != nil {
		t.Fatalf("lock must be free after release: %v", err)
	}
	release2()
}
