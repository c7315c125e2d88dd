package cache

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/ghuser/retailseed/pkg/config"
)

func newTestConfig(url string) *config.Config {
	return &config.Config{RedisURL: url}
}

func sampleSummary() *RunSummary {
	start := time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC)
	return &RunSummary{
		ID:               uuid.New(),
		Seed:             18446744073709551615,
		TransactionCount: 100000,
		LineItemCount:    1099421,
		GrossTotal:       "60214937.84",
		WindowStart:      start.AddDate(-1, 0, 0),
		WindowEnd:        start,
		StartedAt:        start.Add(time.Minute),
		FinishedAt:       start.Add(2*time.Minute + 123*time.Millisecond),
	}
}

func TestNewRedisClient_InvalidURL(t *testing.T) {
	if _, err := NewRedisClient(context.Background(), newTestConfig("not-a-valid-url")); err == nil {
		t.Fatal("expected error for invalid URL, got nil")
	}
}

func TestNewRedisClient_UnreachableHost(t *testing.T) {
	if _, err := NewRedisClient(context.Background(), newTestConfig("redis://localhost:19999")); err == nil {
		t.Fatal("expected error when Redis is unreachable, got nil")
	}
}

func TestRunKey(t *testing.T) {
	id := uuid.MustParse("5c3f2a8e-7d7e-4b8a-9a61-0d5a51f1c0de")
	if got, want := runKey(id), "seed_run:5c3f2a8e-7d7e-4b8a-9a61-0d5a51f1c0de"; got != want {
		t.Fatalf("runKey = %q, want %q", got, want)
	}
}

func TestRunSummaryEncoding(t *testing.T) {
	want := sampleSummary()

	enc := encodeRunSummary(want)
	vals := make(map[string]string, len(enc))
	for k, v := range enc {
		vals[k] = v.(string)
	}

	got, err := decodeRunSummary(vals)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.ID != want.ID || got.Seed != want.Seed || got.TransactionCount != want.TransactionCount ||
		got.LineItemCount != want.LineItemCount || got.GrossTotal != want.GrossTotal {
		t.Fatalf("scalar mismatch: got %+v, want %+v", got, want)
	}
	if !got.FinishedAt.Equal(want.FinishedAt) || !got.WindowStart.Equal(want.WindowStart) {
		t.Fatalf("time mismatch: got %+v, want %+v", got, want)
	}
}

func TestDecodeRunSummary_Corrupt(t *testing.T) {
	_, err := decodeRunSummary(map[string]string{"id": "nope", "seed": "-1"})
	if err == nil {
		t.Fatal("expected error for corrupt hash")
	}
}

// Integration tests run only when REDIS_URL is set.
func TestRedisIntegration(t *testing.T) {
	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		t.Skip("REDIS_URL not set; skipping integration tests")
	}
	ctx := context.Background()

	rc, err := NewRedisClient(ctx, newTestConfig(redisURL))
	if err != nil {
		t.Fatalf("NewRedisClient: %v", err)
	}
	defer rc.Close() //nolint:errcheck

	t.Run("Ping", func(t *testing.T) {
		if err := rc.Ping(ctx); err != nil {
			t.Fatalf("Ping failed: %v", err)
		}
	})

	t.Run("RunSummaryCache", func(t *testing.T) {
		c := NewRunSummaryCache(rc)
		s := sampleSummary()

		if _, err := c.Get(ctx, s.ID); !errors.Is(err, redis.Nil) {
			t.Fatalf("Get before Set: want redis.Nil, got %v", err)
		}
		if err := c.Set(ctx, s); err != nil {
			t.Fatalf("Set: %v", err)
		}
		got, err := c.Get(ctx, s.ID)
		if err != nil {
			t.Fatalf("Get: %v", err)
		}
		if got.GrossTotal != s.GrossTotal || got.LineItemCount != s.LineItemCount {
			t.Fatalf("got %+v, want %+v", got, s)
		}
		ttl, err := rc.Client().TTL(ctx, runKey(s.ID)).Result()
		if err != nil || ttl <= 0 || ttl > RunSummaryTTL {
			t.Fatalf("unexpected ttl %v (err %v)", ttl, err)
		}
		if err := c.Delete(ctx, s.ID); err != nil {
			t.Fatalf("Delete: %v", err)
		}
		if _, err := c.Get(ctx, s.ID); !errors.Is(err, redis.Nil) {
			t.Fatalf("Get after Delete: want redis.Nil, got %v", err)
		}
	})
}
