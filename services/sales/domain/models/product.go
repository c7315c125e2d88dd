package models

import "github.com/shopspring/decimal"

// Category classifies a product in the catalog.
type Category string

// Product categories.
const (
	CategoryCannabis Category = "cannabis"
	CategoryCaps     Category = "caps"
	CategoryOther    Category = "other"
)

// Unit is the unit a product is sold in.
type Unit string

// Product units.
const (
	UnitGram     Unit = "g"
	UnitKilogram Unit = "kg"
	UnitOunce    Unit = "oz"
	UnitPound    Unit = "lb"
	UnitPackage  Unit = "pkg"
)

// Product is a sellable catalog entry. The sku never changes once created.
type Product struct {
	SKU      string          `json:"sku"      validate:"required"`
	Name     string          `json:"name"     validate:"required"`
	Price    decimal.Decimal `json:"price"    validate:"gte=0"`
	Category Category        `json:"category" validate:"oneof=cannabis caps other"`
	Unit     Unit            `json:"unit"     validate:"oneof=g kg oz lb pkg"`
}

// PricedSKU is the slice of a product the synthesizer needs.
type PricedSKU struct {
	SKU   string
	Price decimal.Decimal
}

// Priced returns the sku and price of p.
func (p Product) Priced() PricedSKU {
	return PricedSKU{SKU: p.SKU, Price: p.Price}
}
