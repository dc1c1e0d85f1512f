// Package shipmentrepo provides data transfer objects and mapping functions
// for shipment persistence. Every write goes through an upsert keyed by the
// carrier order id, which is what keeps replayed saga steps idempotent at the
// storage level.
package shipmentrepo

import (
	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/shipment"

	"github.com/google/uuid"
)

// ShipmentDTO represents the database structure for persisting shipment
// aggregates. The carrier order id carries a unique index so concurrent
// reservations of the same carrier order collapse into one row.
type ShipmentDTO struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID         uuid.UUID `gorm:"type:uuid;index"`
	CarrierOrderID  string    `gorm:"uniqueIndex"`
	Status          int
	Step            int
	LabelURL        *string
	TrackingCode    *string
	TrackingURL     *string
	TrackingCarrier *string
}

// TableName specifies the database table name for shipment entities.
func (ShipmentDTO) TableName() string {
	return "shipments"
}

// fromDomain converts a shipment aggregate to its database representation.
func fromDomain(aggregate *shipment.Shipment) ShipmentDTO {
	return ShipmentDTO{
		ID:              aggregate.ID().Bytes(),
		OrderID:         aggregate.OrderID().Bytes(),
		CarrierOrderID:  aggregate.CarrierOrderID(),
		Status:          int(aggregate.Status()),
		Step:            int(aggregate.Step()),
		LabelURL:        aggregate.LabelURL(),
		TrackingCode:    aggregate.TrackingCode(),
		TrackingURL:     aggregate.TrackingURL(),
		TrackingCarrier: aggregate.TrackingCarrier(),
	}
}

// toDomain reconstructs a shipment aggregate from a database row.
func toDomain(dto ShipmentDTO) (*shipment.Shipment, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}

	return shipment.RestoreShipment(
		id,
		orderID,
		dto.CarrierOrderID,
		shipment.Status(dto.Status),
		shipment.Step(dto.Step),
		dto.LabelURL,
		shipment.Tracking{
			Code:    dto.TrackingCode,
			URL:     dto.TrackingURL,
			Carrier: dto.TrackingCarrier,
		},
	)
}
