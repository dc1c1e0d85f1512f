// Package orderrepo provides data transfer objects and mapping functions for
// order persistence. It implements the repository pattern for the order
// aggregate, converting between domain entities and database rows.
package orderrepo

import (
	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO represents the database structure for persisting order aggregates.
type OrderDTO struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	OwnerID       uuid.UUID `gorm:"type:uuid;index"`
	TotalCents    int64
	Status        int
	CartReference *string
}

// TableName specifies the database table name for order entities.
func (OrderDTO) TableName() string {
	return "orders"
}

// fromDomain converts an order aggregate to its database representation.
func fromDomain(aggregate *order.Order) OrderDTO {
	return OrderDTO{
		ID:            aggregate.ID().Bytes(),
		OwnerID:       aggregate.OwnerID().Bytes(),
		TotalCents:    aggregate.Total().Cents(),
		Status:        int(aggregate.Status()),
		CartReference: aggregate.CartReference(),
	}
}

// toDomain reconstructs an order aggregate from a database row.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	ownerID, err := kernel.UUIDFromBytes(dto.OwnerID[:])
	if err != nil {
		return nil, err
	}

	total, err := kernel.NewMoneyFromCents(dto.TotalCents)
	if err != nil {
		return nil, err
	}

	return order.RestoreOrder(id, ownerID, total, order.Status(dto.Status), dto.CartReference)
}
