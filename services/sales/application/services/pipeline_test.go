package services

import (
	"errors"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/ghuser/retailseed/pkg/idgen"
	"github.com/ghuser/retailseed/pkg/logger"
	"github.com/ghuser/retailseed/services/sales/domain/models"
)

type pipelineFixture struct {
	src      *mockStoreSource
	stores   *mockStoreWriter
	products *mockProducts
	sales    *salesFixture
	pipeline *Pipeline
}

func newPipelineFixture() *pipelineFixture {
	f := &pipelineFixture{
		src:      &mockStoreSource{},
		stores:   &mockStoreWriter{},
		products: &mockProducts{},
		sales:    newSalesFixture(),
	}
	log := logger.Discard()
	f.pipeline = NewPipeline(
		NewStoreService(f.src, f.stores, log),
		NewCatalogService(f.products, rand.New(rand.NewPCG(3, 4)), idgen.ShortUUID(), log),
		f.sales.svc,
		log,
	)
	return f
}

func TestPipeline_Run(t *testing.T) {
	f := newPipelineFixture()
	f.src.On("Fetch", mock.Anything).Return([]models.Store{{ID: "s1", Name: "Main", State: "CO"}}, nil)
	f.stores.On("SaveStores", mock.Anything, mock.Anything).Return(1, nil)
	f.products.On("CountProducts", mock.Anything).Return(0, nil)
	f.products.On("SaveProducts", mock.Anything, mock.Anything).Return(nil)
	f.sales.catalog.On("ListProducts", mock.Anything).Return(testProducts(), nil)
	f.sales.catalog.On("ListStoreIDs", mock.Anything).Return([]string{"s1"}, nil)
	f.sales.sink.On("SaveTransactions", mock.Anything, mock.Anything, mock.Anything).Return(nil)
	f.sales.sink.On("SaveLineItems", mock.Anything, mock.Anything, mock.Anything).Return(nil)
	f.sales.runs.On("RecordRun", mock.Anything, mock.Anything).Return(nil)

	res, err := f.pipeline.Run(t.Context(), SeedParams{Count: 3, Window: testWindow, Seed: 7})
	require.NoError(t, err)
	assert.Equal(t, 1, res.StoresInserted)
	assert.Equal(t, 23, res.ProductsCreated)
	require.NotNil(t, res.Run)
	assert.Equal(t, 3, res.Run.TransactionCount)
}

func TestPipeline_Run_StopsAtFirstFailingStage(t *testing.T) {
	boom := errors.New("disk full")
	f := newPipelineFixture()
	f.src.On("Fetch", mock.Anything).Return([]models.Store{}, nil)
	f.products.On("CountProducts", mock.Anything).Return(0, nil)
	f.products.On("SaveProducts", mock.Anything, mock.Anything).Return(boom)

	res, err := f.pipeline.Run(t.Context(), SeedParams{Count: 3, Window: testWindow})
	assert.Nil(t, res)
	assert.ErrorIs(t, err, boom)
	assert.ErrorContains(t, err, "products stage")
	f.sales.catalog.AssertNotCalled(t, "ListProducts", mock.Anything)
}
