package services

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	pkgcache "github.com/ghuser/retailseed/pkg/cache"
	"github.com/ghuser/retailseed/services/sales/domain/models"
)

type mockCatalog struct{ mock.Mock }

func (m *mockCatalog) ListProducts(ctx context.Context) ([]models.Product, error) {
	args := m.Called(ctx)
	products, _ := args.Get(0).([]models.Product)
	return products, args.Error(1)
}

func (m *mockCatalog) ListStoreIDs(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	ids, _ := args.Get(0).([]string)
	return ids, args.Error(1)
}

type mockSink struct{ mock.Mock }

func (m *mockSink) SaveTransactions(ctx context.Context, runID uuid.UUID, txs []models.Transaction) error {
	return m.Called(ctx, runID, txs).Error(0)
}

func (m *mockSink) SaveLineItems(ctx context.Context, runID uuid.UUID, items []models.LineItem) error {
	return m.Called(ctx, runID, items).Error(0)
}

type mockRuns struct{ mock.Mock }

func (m *mockRuns) RecordRun(ctx context.Context, run *models.SeedRun) error {
	return m.Called(ctx, run).Error(0)
}

func (m *mockRuns) GetRun(ctx context.Context, id uuid.UUID) (*models.SeedRun, error) {
	args := m.Called(ctx, id)
	run, _ := args.Get(0).(*models.SeedRun)
	return run, args.Error(1)
}

type mockStoreSource struct{ mock.Mock }

func (m *mockStoreSource) Fetch(ctx context.Context) ([]models.Store, error) {
	args := m.Called(ctx)
	stores, _ := args.Get(0).([]models.Store)
	return stores, args.Error(1)
}

type mockStoreWriter struct{ mock.Mock }

func (m *mockStoreWriter) SaveStores(ctx context.Context, stores []models.Store) (int, error) {
	args := m.Called(ctx, stores)
	return args.Int(0), args.Error(1)
}

type mockProducts struct{ mock.Mock }

func (m *mockProducts) CountProducts(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *mockProducts) SaveProducts(ctx context.Context, products []models.Product) error {
	return m.Called(ctx, products).Error(0)
}

type mockRunCache struct{ mock.Mock }

func (m *mockRunCache) Get(ctx context.Context, id uuid.UUID) (*pkgcache.RunSummary, error) {
	args := m.Called(ctx, id)
	s, _ := args.Get(0).(*pkgcache.RunSummary)
	return s, args.Error(1)
}

func (m *mockRunCache) Set(ctx context.Context, s *pkgcache.RunSummary) error {
	return m.Called(ctx, s).Error(0)
}
