package services

import (
	"errors"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	salesdomain "github.com/ghuser/retailseed/services/sales/domain"
	"github.com/ghuser/retailseed/services/sales/domain/models"
)

func validProduct() models.Product {
	return models.Product{
		SKU:      "sku-1",
		Name:     "Pomelo",
		Price:    decimal.RequireFromString("12.345"),
		Category: models.CategoryCannabis,
		Unit:     models.UnitGram,
	}
}

func TestValidateProduct(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*models.Product)
		wantErr string
	}{
		{"valid", func(*models.Product) {}, ""},
		{"free product", func(p *models.Product) { p.Price = decimal.Zero }, ""},
		{"missing sku", func(p *models.Product) { p.SKU = "" }, "sku"},
		{"blank name", func(p *models.Product) { p.Name = "   " }, "name"},
		{"negative price", func(p *models.Product) { p.Price = decimal.RequireFromString("-1") }, "price"},
		{"unknown category", func(p *models.Product) { p.Category = "edibles" }, "category"},
		{"unknown unit", func(p *models.Product) { p.Unit = "ml" }, "unit"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := validProduct()
			tt.mutate(&p)
			got, err := ValidateProduct(p)
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				if got.Price.Exponent() < -PriceDecimals {
					t.Fatalf("price %s not rounded to cents", got.Price)
				}
				return
			}
			if !errors.Is(err, salesdomain.ErrInvalidProduct) {
				t.Fatalf("expected ErrInvalidProduct, got %v", err)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("error %q does not mention %q", err, tt.wantErr)
			}
		})
	}
}

func TestValidateProduct_RoundsPrice(t *testing.T) {
	got, err := ValidateProduct(validProduct())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got.Price.Equal(decimal.RequireFromString("12.35")) {
		t.Fatalf("price = %s, want 12.35", got.Price)
	}
}

func TestValidateProduct_SubCentNegativePrice(t *testing.T) {
	for _, price := range []string{"-0.001", "-0.004"} {
		p := validProduct()
		p.Price = decimal.RequireFromString(price)
		_, err := ValidateProduct(p)
		if !errors.Is(err, salesdomain.ErrInvalidProduct) {
			t.Fatalf("price %s: expected ErrInvalidProduct, got %v", price, err)
		}
	}
}

func validStore() models.Store {
	return models.Store{ID: "st-1", Name: "Downtown", State: "Washington", Latitude: 47.6, Longitude: -122.3}
}

func TestValidateStore(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*models.Store)
		wantErr string
	}{
		{"valid", func(*models.Store) {}, ""},
		{"pole latitude", func(s *models.Store) { s.Latitude = 90 }, ""},
		{"antimeridian", func(s *models.Store) { s.Longitude = -180 }, ""},
		{"missing id", func(s *models.Store) { s.ID = "" }, "id"},
		{"empty name", func(s *models.Store) { s.Name = "" }, "name"},
		{"bad state", func(s *models.Store) { s.State = "Ontario" }, "state"},
		{"district of columbia", func(s *models.Store) { s.State = "DC" }, "state"},
		{"latitude too high", func(s *models.Store) { s.Latitude = 90.01 }, "latitude"},
		{"longitude too low", func(s *models.Store) { s.Longitude = -180.5 }, "longitude"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := validStore()
			tt.mutate(&s)
			_, err := ValidateStore(s)
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, salesdomain.ErrInvalidStore) {
				t.Fatalf("expected ErrInvalidStore, got %v", err)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("error %q does not mention %q", err, tt.wantErr)
			}
		})
	}
}

func TestValidateStore_NormalizesState(t *testing.T) {
	got, err := ValidateStore(validStore())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.State != "WA" {
		t.Fatalf("state = %q, want WA", got.State)
	}
}
