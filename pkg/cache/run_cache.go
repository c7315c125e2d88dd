package cache

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	// RunSummaryTTL bounds how long a finished run stays in Redis.
	RunSummaryTTL = 7 * 24 * time.Hour

	runKeyPrefix = "seed_run"
)

// RunSummary is the cached view of a finished seed run. GrossTotal is kept
// as its decimal string so no precision is lost in the round trip.
type RunSummary struct {
	ID               uuid.UUID
	Seed             uint64
	TransactionCount int
	LineItemCount    int
	GrossTotal       string
	WindowStart      time.Time
	WindowEnd        time.Time
	StartedAt        time.Time
	FinishedAt       time.Time
}

// RunSummaryCache stores one hash per run under "seed_run:{id}".
type RunSummaryCache struct {
	client *RedisClient
}

func NewRunSummaryCache(r *RedisClient) *RunSummaryCache {
	return &RunSummaryCache{client: r}
}

// Get returns redis.Nil when the run is not cached.
func (c *RunSummaryCache) Get(ctx context.Context, id uuid.UUID) (*RunSummary, error) {
	vals, err := c.client.Client().HGetAll(ctx, runKey(id)).Result()
	if err != nil {
		return nil, fmt.Errorf("cache: get run: %w", err)
	}
	if len(vals) == 0 {
		return nil, redis.Nil
	}
	s, err := decodeRunSummary(vals)
	if err != nil {
		return nil, fmt.Errorf("cache: decode run %s: %w", id, err)
	}
	return s, nil
}

// Set writes s and its TTL in one pipeline.
func (c *RunSummaryCache) Set(ctx context.Context, s *RunSummary) error {
	key := runKey(s.ID)
	pipe := c.client.Client().TxPipeline()
	pipe.HSet(ctx, key, encodeRunSummary(s))
	pipe.Expire(ctx, key, RunSummaryTTL)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("cache: set run: %w", err)
	}
	return nil
}

func (c *RunSummaryCache) Delete(ctx context.Context, id uuid.UUID) error {
	if err := c.client.Client().Del(ctx, runKey(id)).Err(); err != nil {
		return fmt.Errorf("cache: delete run: %w", err)
	}
	return nil
}

func runKey(id uuid.UUID) string {
	return runKeyPrefix + ":" + id.String()
}

func encodeRunSummary(s *RunSummary) map[string]any {
	return map[string]any{
		"id":                s.ID.String(),
		"seed":              strconv.FormatUint(s.Seed, 10),
		"transaction_count": strconv.Itoa(s.TransactionCount),
		"line_item_count":   strconv.Itoa(s.LineItemCount),
		"gross_total":       s.GrossTotal,
		"window_start":      formatTime(s.WindowStart),
		"window_end":        formatTime(s.WindowEnd),
		"started_at":        formatTime(s.StartedAt),
		"finished_at":       formatTime(s.FinishedAt),
	}
}

func decodeRunSummary(vals map[string]string) (*RunSummary, error) {
	var (
		s    RunSummary
		errs []error
		err  error
	)
	if s.ID, err = uuid.Parse(vals["id"]); err != nil {
		errs = append(errs, fmt.Errorf("id: %w", err))
	}
	if s.Seed, err = strconv.ParseUint(vals["seed"], 10, 64); err != nil {
		errs = append(errs, fmt.Errorf("seed: %w", err))
	}
	if s.TransactionCount, err = strconv.Atoi(vals["transaction_count"]); err != nil {
		errs = append(errs, fmt.Errorf("transaction_count: %w", err))
	}
	if s.LineItemCount, err = strconv.Atoi(vals["line_item_count"]); err != nil {
		errs = append(errs, fmt.Errorf("line_item_count: %w", err))
	}
	s.GrossTotal = vals["gross_total"]

	for field, dst := range map[string]*time.Time{
		"window_start": &s.WindowStart,
		"window_end":   &s.WindowEnd,
		"started_at":   &s.StartedAt,
		"finished_at":  &s.FinishedAt,
	} {
		if *dst, err = time.Parse(time.RFC3339Nano, vals[field]); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", field, err))
		}
	}

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return &s, nil
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}
