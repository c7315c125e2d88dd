package services

import (
	"math/rand/v2"

	"github.com/shopspring/decimal"

	"github.com/ghuser/retailseed/pkg/idgen"
	"github.com/ghuser/retailseed/services/sales/domain/models"
)

// Flower prices are drawn uniformly from [FlowerMinPrice, FlowerMaxPrice).
const (
	FlowerMinPrice = 5
	FlowerMaxPrice = 30
)

var flowerStrains = []string{
	"Berry Pue", "Cereal Milk", "Collins Ave", "Gary Payton", "Gelatti",
	"Georgia Pie", "Grenadine", "Honey Bun", "London Pound Cake 75",
	"London Chello", "Ocean Beach", "Pancakes", "Pink Rozay", "Pomelo",
	"Snow Man", "Sticky Buns", "Sweet Tea",
}

var fixedPriceProducts = []struct {
	name     string
	price    int64
	category models.Category
}{
	{"Bed Head THC Rich", 48, models.CategoryCaps},
	{"Bed Head CBD Rich", 55, models.CategoryCaps},
	{"Clarity THC Rich", 45, models.CategoryCaps},
	{"Clarity CBD Rich", 55, models.CategoryCaps},
	{"BIC Lighter", 2, models.CategoryOther},
	{"Cheap Lighter", 1, models.CategoryOther},
}

// DefaultCatalog returns the house catalog: flower by the gram at random
// prices, capsule packs and lighters at fixed prices. Every sku comes from ids.
func DefaultCatalog(rng *rand.Rand, ids idgen.Generator) []models.Product {
	products := make([]models.Product, 0, len(flowerStrains)+len(fixedPriceProducts))
	for _, name := range flowerStrains {
		price := FlowerMinPrice + rng.Float64()*(FlowerMaxPrice-FlowerMinPrice)
		products = append(products, models.Product{
			SKU:      ids.NewID(),
			Name:     name,
			Price:    decimal.NewFromFloat(price).Round(PriceDecimals),
			Category: models.CategoryCannabis,
			Unit:     models.UnitGram,
		})
	}
	for _, p := range fixedPriceProducts {
		products = append(products, models.Product{
			SKU:      ids.NewID(),
			Name:     p.name,
			Price:    decimal.NewFromInt(p.price),
			Category: p.category,
			Unit:     models.UnitPackage,
		})
	}
	return products
}
