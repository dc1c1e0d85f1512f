package shipmentrepo

import (
	"context"
	"errors"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/shipment"
	"freight/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormShipmentRepository implements ShipmentRepository using GORM.
type GormShipmentRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormShipmentRepository creates a new GORM shipment repository.
func NewGormShipmentRepository(db *gorm.DB, tracker aggregateTracker) *GormShipmentRepository {
	return &GormShipmentRepository{
		db:      db,
		tracker: tracker,
	}
}

// Upsert inserts the shipment or merges it into the existing row with the
// same carrier order id. A retried reservation or a replayed saga step
// therefore converges on a single row instead of failing on the unique index.
//
// The merge is per field: status and step only ever move forward, and the
// nullable label/tracking columns are overwritten only by non-null values.
// A concurrent writer holding a stale aggregate can therefore never erase a
// label url or regress a status another writer already committed.
func (r *GormShipmentRepository) Upsert(ctx context.Context, aggregate *shipment.Shipment) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "carrier_order_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"status":           gorm.Expr("GREATEST(shipments.status, excluded.status)"),
			"step":             gorm.Expr("GREATEST(shipments.step, excluded.step)"),
			"label_url":        gorm.Expr("COALESCE(excluded.label_url, shipments.label_url)"),
			"tracking_code":    gorm.Expr("COALESCE(excluded.tracking_code, shipments.tracking_code)"),
			"tracking_url":     gorm.Expr("COALESCE(excluded.tracking_url, shipments.tracking_url)"),
			"tracking_carrier": gorm.Expr("COALESCE(excluded.tracking_carrier, shipments.tracking_carrier)"),
		}),
	}).Create(&dto).Error
	if err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// GetByCarrierOrderID retrieves a shipment by its carrier order id.
func (r *GormShipmentRepository) GetByCarrierOrderID(
	ctx context.Context,
	carrierOrderID string,
) (*shipment.Shipment, error) {
	if carrierOrderID == "" {
		return nil, errs.NewValueIsRequiredError("carrierOrderID")
	}

	var dto ShipmentDTO
	if err := r.db.WithContext(ctx).First(&dto, "carrier_order_id = ?", carrierOrderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("shipment", carrierOrderID)
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetByOrderID retrieves all shipments belonging to an order.
func (r *GormShipmentRepository) GetByOrderID(
	ctx context.Context,
	orderID kernel.UUID,
) ([]*shipment.Shipment, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}

	var dtos []ShipmentDTO
	err := r.db.WithContext(ctx).
		Order("carrier_order_id").
		Find(&dtos, "order_id = ?", orderID.Bytes()).Error
	if err != nil {
		return nil, err
	}

	return toDomainSlice(dtos)
}

// GetAwaitingTracking retrieves up to limit purchased or labeled shipments
// that still have no tracking code. The reconciliation job feeds on this.
func (r *GormShipmentRepository) GetAwaitingTracking(
	ctx context.Context,
	limit int,
) ([]*shipment.Shipment, error) {
	if limit <= 0 {
		return nil, errs.NewValueIsOutOfRangeError("limit", limit, 1, "unbounded")
	}

	var dtos []ShipmentDTO
	err := r.db.WithContext(ctx).
		Where("status IN ? AND tracking_code IS NULL",
			[]int{int(shipment.Paid), int(shipment.LabelGenerated)}).
		Order("carrier_order_id").
		Limit(limit).
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	return toDomainSlice(dtos)
}

func toDomainSlice(dtos []ShipmentDTO) ([]*shipment.Shipment, error) {
	shipments := make([]*shipment.Shipment, 0, len(dtos))
	for _, dto := range dtos {
		s, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		shipments = append(shipments, s)
	}

	return shipments, nil
}
