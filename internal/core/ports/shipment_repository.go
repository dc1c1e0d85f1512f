package ports

import (
	"context"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/shipment"
)

// ShipmentRepository defines the persistence contract for shipment aggregates.
//
// There is deliberately no Add/Update pair: every write goes through Upsert,
// keyed by the globally unique carrier order id. That single idempotent
// operation is what makes replayed webhook deliveries and retried admin calls
// safe without any distributed locking.
type ShipmentRepository interface {
	// Upsert inserts the shipment or, when a row with the same carrier order id
	// already exists, updates that row in place. Concurrent upserts for the
	// same id resolve last-writer-wins per column.
	Upsert(ctx context.Context, aggregate *shipment.Shipment) error

	// GetByCarrierOrderID retrieves a shipment by its carrier order id.
	GetByCarrierOrderID(ctx context.Context, carrierOrderID string) (*shipment.Shipment, error)

	// GetByOrderID retrieves all shipments belonging to an order.
	GetByOrderID(ctx context.Context, orderID kernel.UUID) ([]*shipment.Shipment, error)

	// GetAwaitingTracking retrieves up to limit purchased or labeled shipments
	// that have no tracking code yet. Used by the tracking reconciliation job.
	GetAwaitingTracking(ctx context.Context, limit int) ([]*shipment.Shipment, error)
}
