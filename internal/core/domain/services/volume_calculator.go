package services

import (
	"context"

	"freight/internal/core/domain/model/freight"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/ports"
	"freight/internal/pkg/errs"
)

const (
	// defaultWeightGrams is assumed for products without a stored weight.
	defaultWeightGrams = 100

	// defaultDimensionCm is assumed for products without stored height/width.
	defaultDimensionCm = 1.0

	// minWeightKg is the smallest weight the carrier accepts.
	minWeightKg = 0.05

	// minInsuredCents is the smallest declarable value (R$1.00).
	minInsuredCents = 100
)

// Floors are the per-call-site minimum package dimensions in centimeters.
// Rate calculation tolerates tiny packages; cart reservation enforces the
// carrier's physical minimums.
type Floors struct {
	HeightCm float64
	WidthCm  float64
	LengthCm float64
}

// RateFloors are applied when quoting rates.
var RateFloors = Floors{HeightCm: 0.4, WidthCm: 1, LengthCm: 15}

// ReservationFloors are applied when reserving a cart entry.
var ReservationFloors = Floors{HeightCm: 10, WidthCm: 10, LengthCm: 15}

// VolumeCalculator derives one consolidated physical volume for a whole cart
// from the catalog data of its line items.
type VolumeCalculator struct {
	catalog ports.ProductCatalog
}

// NewVolumeCalculator creates a VolumeCalculator backed by the given catalog.
func NewVolumeCalculator(catalog ports.ProductCatalog) VolumeCalculator {
	return VolumeCalculator{catalog: catalog}
}

// Consolidate produces a single volume for the order: weight is the sum of
// per-item weights (grams to kilograms, floored), dimensions are the maxima
// across items subject to the call site's floors, and the insured value is
// the merchandise subtotal floored at R$1.00.
//
// The second return value is the raw subtotal (price x quantity summed,
// unfloored), which quote issuance needs for the free-shipping threshold.
// Fails with ObjectNotFoundError if any referenced product does not exist.
func (c VolumeCalculator) Consolidate(
	ctx context.Context,
	items []freight.CartItem,
	floors Floors,
) (freight.Volume, kernel.Money, error) {
	if len(items) == 0 {
		return freight.Volume{}, kernel.Money{}, errs.NewValueIsRequiredError("items")
	}

	ids := make([]string, 0, len(items))
	for _, item := range items {
		if err := item.Validate(); err != nil {
			return freight.Volume{}, kernel.Money{}, err
		}
		ids = append(ids, item.ProductID())
	}

	products, err := c.catalog.GetByIDs(ctx, ids)
	if err != nil {
		return freight.Volume{}, kernel.Money{}, err
	}

	var (
		totalGrams int
		height     = floors.HeightCm
		width      = floors.WidthCm
		length     = floors.LengthCm
		subtotal   kernel.Money
	)

	for _, item := range items {
		product, ok := products[item.ProductID()]
		if !ok {
			return freight.Volume{}, kernel.Money{}, errs.NewObjectNotFoundError("productId", item.ProductID())
		}

		grams := product.WeightGrams
		if grams <= 0 {
			grams = defaultWeightGrams
		}
		totalGrams += grams * item.Quantity()

		h, w := product.HeightCm, product.WidthCm
		if h <= 0 {
			h = defaultDimensionCm
		}
		if w <= 0 {
			w = defaultDimensionCm
		}
		height = max(height, h)
		width = max(width, w)
		length = max(length, w)

		subtotal = subtotal.Add(product.Price.MulQuantity(item.Quantity()))
	}

	weightKg := max(float64(totalGrams)/1000.0, minWeightKg)

	insured := subtotal
	if insured.Cents() < minInsuredCents {
		insured = kernel.MustMoneyFromCents(minInsuredCents)
	}

	volume, err := freight.NewVolume(weightKg, height, width, length, insured)
	if err != nil {
		return freight.Volume{}, kernel.Money{}, err
	}

	return volume, subtotal, nil
}
