package domain

import "errors"

// Sentinel errors for the sales domain. Use errors.Is() to check these.
var (
	// ErrInvalidConfiguration is the parent of every input error that aborts a
	// generation run before it starts.
	ErrInvalidConfiguration = errors.New("invalid generation configuration")

	// ErrEmptyCatalog indicates there are no products to sell.
	ErrEmptyCatalog = errors.New("product catalog is empty")

	// ErrNoStores indicates there are no stores to assign transactions to.
	ErrNoStores = errors.New("store list is empty")

	// ErrInvalidProduct indicates a product violates catalog rules.
	ErrInvalidProduct = errors.New("invalid product")

	// ErrInvalidStore indicates a store record violates store rules.
	ErrInvalidStore = errors.New("invalid store")

	// ErrSeedRunNotFound indicates the requested seed run does not exist.
	ErrSeedRunNotFound = errors.New("seed run not found")

	// ErrSeedRunInProgress indicates a seed workflow is already running.
	ErrSeedRunInProgress = errors.New("seed run already in progress")

	// ErrStoresUnavailable indicates neither the stores file nor the stores URL produced data.
	ErrStoresUnavailable = errors.New("stores data unavailable")
)
