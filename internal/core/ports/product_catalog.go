package ports

import (
	"context"

	"freight/internal/core/domain/model/kernel"
)

// Product is the read model exposed by the product catalog collaborator.
// Zero physical measures mean "not set" and are defaulted by the volume
// calculator, not here.
type Product struct {
	ID          string
	Name        string
	Price       kernel.Money
	WeightGrams int
	HeightCm    float64
	WidthCm     float64
}

// ProductCatalog provides read access to the externally owned product data
// needed to price and measure a cart.
type ProductCatalog interface {
	// GetByIDs loads the products for the given ids, keyed by id. Missing ids
	// are simply absent from the result; callers decide whether that is fatal.
	GetByIDs(ctx context.Context, ids []string) (map[string]Product, error)
}
