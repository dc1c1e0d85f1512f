package queries

import (
	"context"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/shipment"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetOrderShipmentsQueryHandler reads an order's shipments straight from the
// database, bypassing the aggregate layer. Read-only admin and storefront
// views use this instead of loading full aggregates.
type GetOrderShipmentsQueryHandler struct {
	db *gorm.DB
}

// NewGetOrderShipmentsQueryHandler creates a handler for shipment list queries.
func NewGetOrderShipmentsQueryHandler(db *gorm.DB) GetOrderShipmentsQueryHandler {
	return GetOrderShipmentsQueryHandler{db: db}
}

// Handle returns the order's shipments ordered by carrier order id.
func (h GetOrderShipmentsQueryHandler) Handle(
	ctx context.Context,
	query GetOrderShipmentsQuery,
) ([]GetOrderShipmentsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	shipments := make([]GetOrderShipmentsQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			carrier_order_id,
			status,
			label_url,
			tracking_code,
			tracking_url,
			tracking_carrier
		FROM shipments
		WHERE order_id = ?
		ORDER BY carrier_order_id
	`, query.OrderID().String()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var resp GetOrderShipmentsQueryResponse
		var id uuid.UUID
		var status int

		err = rows.Scan(
			&id,
			&resp.CarrierOrderID,
			&status,
			&resp.LabelURL,
			&resp.TrackingCode,
			&resp.TrackingURL,
			&resp.TrackingCarrier,
		)
		if err != nil {
			return nil, err
		}

		shipmentID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		resp.ID = shipmentID
		resp.Status = shipment.Status(status).String()

		shipments = append(shipments, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return shipments, nil
}
