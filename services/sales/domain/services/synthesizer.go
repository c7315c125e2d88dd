package services

import (
	"encoding/binary"
	"fmt"
	"math"
	"math/rand/v2"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ghuser/retailseed/pkg/idgen"
	salesdomain "github.com/ghuser/retailseed/services/sales/domain"
	"github.com/ghuser/retailseed/services/sales/domain/models"
)

// Quantity bounds for a single line item, inclusive.
const (
	MinQuantity = 1
	MaxQuantity = 10
)

// SynthesisRequest describes one generation run.
type SynthesisRequest struct {
	// Catalog is read-only; Synthesize never reorders or mutates it.
	Catalog  []models.PricedSKU
	StoreIDs []string
	Count    int
	Window   models.Window
}

// Synthesizer fabricates transactions and line items from a catalog snapshot.
// It is not safe for concurrent use: every draw advances the shared random source.
type Synthesizer struct {
	rng *rand.Rand
	ids idgen.Generator
}

// NewSynthesizer returns a Synthesizer drawing from rng and naming line items with ids.
func NewSynthesizer(rng *rand.Rand, ids idgen.Generator) *Synthesizer {
	return &Synthesizer{rng: rng, ids: ids}
}

// NewSeededSynthesizer returns a Synthesizer whose output, identifiers
// included, is fully determined by seed.
func NewSeededSynthesizer(seed uint64) *Synthesizer {
	var key [32]byte
	binary.LittleEndian.PutUint64(key[:8], seed)
	src := rand.NewChaCha8(key)
	return NewSynthesizer(rand.New(src), idgen.FromReader(src))
}

// ValidateRequest reports caller-input errors. Every failure wraps
// salesdomain.ErrInvalidConfiguration.
func ValidateRequest(req SynthesisRequest) error {
	switch {
	case len(req.Catalog) == 0:
		return fmt.Errorf("%w: %w", salesdomain.ErrInvalidConfiguration, salesdomain.ErrEmptyCatalog)
	case len(req.StoreIDs) == 0:
		return fmt.Errorf("%w: %w", salesdomain.ErrInvalidConfiguration, salesdomain.ErrNoStores)
	case req.Count < 0:
		return fmt.Errorf("%w: transaction count %d is negative", salesdomain.ErrInvalidConfiguration, req.Count)
	}
	if err := req.Window.Validate(); err != nil {
		return fmt.Errorf("%w: %w", salesdomain.ErrInvalidConfiguration, err)
	}
	return nil
}

// Synthesize produces exactly req.Count transactions with ids 0..Count-1.
//
// Each transaction gets a uniformly drawn store, k ∈ [0, P-1] distinct
// products (P = catalog size), a quantity in [MinQuantity, MaxQuantity] per
// product, and a date inside the inclusive window. Its total is the exact sum
// of price × quantity over its items, zero when k is 0.
func (s *Synthesizer) Synthesize(req SynthesisRequest) (*models.SalesBatch, error) {
	if err := ValidateRequest(req); err != nil {
		return nil, err
	}

	p := len(req.Catalog)
	batch := &models.SalesBatch{
		Transactions: make([]models.Transaction, 0, req.Count),
		LineItems:    make([]models.LineItem, 0, req.Count*(p-1)/2),
	}
	scratch := make([]models.PricedSKU, p)

	for i := 0; i < req.Count; i++ {
		storeID := req.StoreIDs[s.rng.IntN(len(req.StoreIDs))]
		picks := s.pickDistinct(req.Catalog, scratch, s.rng.IntN(p))

		total := decimal.Zero
		for _, prod := range picks {
			item := models.LineItem{
				ID:            s.ids.NewID(),
				SKU:           prod.SKU,
				Price:         prod.Price,
				Quantity:      MinQuantity + s.rng.IntN(MaxQuantity-MinQuantity+1),
				TransactionID: i,
			}
			total = total.Add(item.Subtotal())
			batch.LineItems = append(batch.LineItems, item)
		}

		batch.Transactions = append(batch.Transactions, models.Transaction{
			ID:      i,
			StoreID: storeID,
			Date:    s.drawDate(req.Window),
			Total:   total,
		})
	}

	return batch, nil
}

// pickDistinct copies catalog into scratch and partially shuffles it so the
// first k entries are a uniform sample without replacement.
func (s *Synthesizer) pickDistinct(catalog, scratch []models.PricedSKU, k int) []models.PricedSKU {
	copy(scratch, catalog)
	for j := 0; j < k; j++ {
		r := j + s.rng.IntN(len(scratch)-j)
		scratch[j], scratch[r] = scratch[r], scratch[j]
	}
	return scratch[:k]
}

func (s *Synthesizer) drawDate(w models.Window) time.Time {
	if !w.End.After(w.Start) {
		return w.Start
	}
	if span := w.End.Sub(w.Start); span < math.MaxInt64 {
		return w.Start.Add(time.Duration(s.rng.Int64N(int64(span) + 1)))
	}

	// The span saturates time.Duration: draw whole seconds, then nanoseconds,
	// and clamp to the window.
	secs := uint64(w.End.Unix()) - uint64(w.Start.Unix())
	if secs < math.MaxUint64 {
		secs++
	}
	off := s.rng.Uint64N(secs)
	t := time.Unix(w.Start.Unix()+int64(off), s.rng.Int64N(int64(time.Second))).In(w.Start.Location())
	if t.Before(w.Start) {
		return w.Start
	}
	if t.After(w.End) {
		return w.End
	}
	return t
}
