// Package services holds the domain services of the sales bounded context:
// catalog and store validation rules and the transaction synthesizer.
// Nothing here performs I/O.
package services

import (
	"fmt"
	"strings"

	"github.com/ghuser/retailseed/pkg/usstates"
	pkgvalidator "github.com/ghuser/retailseed/pkg/validator"
	salesdomain "github.com/ghuser/retailseed/services/sales/domain"
	"github.com/ghuser/retailseed/services/sales/domain/models"
)

// PriceDecimals is the number of decimal places a catalog price keeps.
const PriceDecimals = 2

// ValidateProduct checks p against the catalog rules and returns the
// normalized product: trimmed name, price rounded to cents. The sign is
// checked on the price as given, so a sub-cent negative price is rejected.
//
// Rules:
//   - sku and name are present
//   - category is cannabis, caps or other
//   - unit is g, kg, oz, lb or pkg
//   - price is not negative
func ValidateProduct(p models.Product) (models.Product, error) {
	p.Name = strings.TrimSpace(p.Name)

	if err := pkgvalidator.Validate(&p); err != nil {
		return models.Product{}, fmt.Errorf("%w %q: %s", salesdomain.ErrInvalidProduct, p.SKU, pkgvalidator.Summary(err))
	}
	p.Price = p.Price.Round(PriceDecimals)
	return p, nil
}

// ValidateStore checks s against the store rules and returns the normalized
// store with State resolved to its two-letter postal code.
//
// Rules:
//   - id and name are present
//   - state is a US state or territory, by postal code or full name
//   - latitude in [-90, 90], longitude in [-180, 180]
func ValidateStore(s models.Store) (models.Store, error) {
	s.Name = strings.TrimSpace(s.Name)

	if err := pkgvalidator.Validate(&s); err != nil {
		return models.Store{}, fmt.Errorf("%w %q: %s", salesdomain.ErrInvalidStore, s.ID, pkgvalidator.Summary(err))
	}

	code, _ := usstates.Lookup(s.State)
	s.State = code
	return s, nil
}
