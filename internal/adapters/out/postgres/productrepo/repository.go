// Package productrepo provides read-only access to the product table owned by
// the catalog service. The fulfillment core never writes here; it only reads
// the price and physical measures needed to quote and reserve a cart.
package productrepo

import (
	"context"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/ports"
	"freight/internal/pkg/errs"

	"gorm.io/gorm"
)

// ProductDTO represents the catalog-owned product row.
type ProductDTO struct {
	ID          string `gorm:"primaryKey"`
	Name        string
	PriceCents  int64
	WeightGrams int
	HeightCm    float64
	WidthCm     float64
}

// TableName specifies the database table name for product entities.
func (ProductDTO) TableName() string {
	return "products"
}

// GormProductCatalog implements ports.ProductCatalog over the shared database.
type GormProductCatalog struct {
	db *gorm.DB
}

// NewGormProductCatalog creates a read-only GORM product catalog.
func NewGormProductCatalog(db *gorm.DB) *GormProductCatalog {
	return &GormProductCatalog{db: db}
}

// GetByIDs loads the products for the given ids, keyed by id. Ids with no
// matching row are absent from the result.
func (c *GormProductCatalog) GetByIDs(ctx context.Context, ids []string) (map[string]ports.Product, error) {
	if len(ids) == 0 {
		return nil, errs.NewValueIsRequiredError("ids")
	}

	var dtos []ProductDTO
	if err := c.db.WithContext(ctx).Find(&dtos, "id IN ?", ids).Error; err != nil {
		return nil, err
	}

	products := make(map[string]ports.Product, len(dtos))
	for _, dto := range dtos {
		product, err := toProduct(dto)
		if err != nil {
			return nil, err
		}
		products[dto.ID] = product
	}

	return products, nil
}

func toProduct(dto ProductDTO) (ports.Product, error) {
	price, err := kernel.NewMoneyFromCents(dto.PriceCents)
	if err != nil {
		return ports.Product{}, err
	}

	return ports.Product{
		ID:          dto.ID,
		Name:        dto.Name,
		Price:       price,
		WeightGrams: dto.WeightGrams,
		HeightCm:    dto.HeightCm,
		WidthCm:     dto.WidthCm,
	}, nil
}
