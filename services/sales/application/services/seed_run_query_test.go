package services

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	pkgcache "github.com/ghuser/retailseed/pkg/cache"
	"github.com/ghuser/retailseed/pkg/logger"
	salesdomain "github.com/ghuser/retailseed/services/sales/domain"
	domainevents "github.com/ghuser/retailseed/services/sales/domain/events"
	"github.com/ghuser/retailseed/services/sales/domain/models"
)

func sampleRun() *models.SeedRun {
	return &models.SeedRun{
		ID:               uuid.New(),
		Seed:             42,
		TransactionCount: 10,
		LineItemCount:    37,
		GrossTotal:       decimal.RequireFromString("1234.50"),
		Window:           testWindow,
		StartedAt:        testWindow.End,
		FinishedAt:       testWindow.End.Add(3 * time.Second),
	}
}

func TestSeedRunQuery_CacheHit(t *testing.T) {
	run := sampleRun()
	repo := &mockRuns{}
	cache := &mockRunCache{}
	cache.On("Get", mock.Anything, run.ID).Return(SummaryFromRun(run), nil)

	got, err := NewSeedRunQuery(repo, cache, logger.Discard()).Get(t.Context(), run.ID)
	require.NoError(t, err)
	assert.Equal(t, run.ID, got.ID)
	assert.True(t, got.GrossTotal.Equal(run.GrossTotal))
	repo.AssertNotCalled(t, "GetRun", mock.Anything, mock.Anything)
}

func TestSeedRunQuery_MissWarmsCache(t *testing.T) {
	run := sampleRun()
	repo := &mockRuns{}
	cache := &mockRunCache{}
	cache.On("Get", mock.Anything, run.ID).Return(nil, redis.Nil)
	repo.On("GetRun", mock.Anything, run.ID).Return(run, nil)
	cache.On("Set", mock.Anything, mock.MatchedBy(func(s *pkgcache.RunSummary) bool {
		return s.ID == run.ID && s.GrossTotal == "1234.50"
	})).Return(nil)

	got, err := NewSeedRunQuery(repo, cache, logger.Discard()).Get(t.Context(), run.ID)
	require.NoError(t, err)
	assert.Same(t, run, got)
	cache.AssertExpectations(t)
}

func TestSeedRunQuery_CacheFailuresFallThrough(t *testing.T) {
	run := sampleRun()
	repo := &mockRuns{}
	cache := &mockRunCache{}
	cache.On("Get", mock.Anything, run.ID).Return(nil, errors.New("i/o timeout"))
	repo.On("GetRun", mock.Anything, run.ID).Return(run, nil)
	cache.On("Set", mock.Anything, mock.Anything).Return(errors.New("i/o timeout"))

	got, err := NewSeedRunQuery(repo, cache, logger.Discard()).Get(t.Context(), run.ID)
	require.NoError(t, err)
	assert.Equal(t, run.ID, got.ID)
}

func TestSeedRunQuery_CorruptCacheEntry(t *testing.T) {
	run := sampleRun()
	bad := SummaryFromRun(run)
	bad.GrossTotal = "lots"

	repo := &mockRuns{}
	cache := &mockRunCache{}
	cache.On("Get", mock.Anything, run.ID).Return(bad, nil)
	repo.On("GetRun", mock.Anything, run.ID).Return(run, nil)
	cache.On("Set", mock.Anything, mock.Anything).Return(nil)

	got, err := NewSeedRunQuery(repo, cache, logger.Discard()).Get(t.Context(), run.ID)
	require.NoError(t, err)
	assert.True(t, got.GrossTotal.Equal(run.GrossTotal))
	repo.AssertExpectations(t)
}

func TestSeedRunQuery_NotFoundWithoutCache(t *testing.T) {
	id := uuid.New()
	repo := &mockRuns{}
	repo.On("GetRun", mock.Anything, id).Return(nil, salesdomain.ErrSeedRunNotFound)

	_, err := NewSeedRunQuery(repo, nil, logger.Discard()).Get(t.Context(), id)
	assert.ErrorIs(t, err, salesdomain.ErrSeedRunNotFound)
}

func TestSummaryConversions(t *testing.T) {
	run := sampleRun()

	back, err := RunFromSummary(SummaryFromRun(run))
	require.NoError(t, err)
	assert.Equal(t, run.Seed, back.Seed)
	assert.Equal(t, run.LineItemCount, back.LineItemCount)
	assert.True(t, back.Window.Start.Equal(run.Window.Start))

	evt := domainevents.SalesSeededEvent{
		SeedRunID:        run.ID,
		Seed:             run.Seed,
		TransactionCount: run.TransactionCount,
		LineItemCount:    run.LineItemCount,
		GrossTotal:       "1234.50",
		WindowStart:      run.Window.Start,
		WindowEnd:        run.Window.End,
		StartedAt:        run.StartedAt,
		FinishedAt:       run.FinishedAt,
	}
	assert.Equal(t, SummaryFromRun(run), SummaryFromEvent(&evt))
}
