package queries

import (
	"errors"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/guard"
)

var ErrGetOrderShipmentsQueryIsNotConstructed = errors.New(
	"GetOrderShipmentsQuery must be created via NewGetOrderShipmentsQuery constructor",
)

// GetOrderShipmentsQuery retrieves the shipments of one order with their
// fulfillment state, label and tracking data.
type GetOrderShipmentsQuery struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetOrderShipmentsQuery creates a query for an order's shipments.
func NewGetOrderShipmentsQuery(orderID kernel.UUID) (GetOrderShipmentsQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetOrderShipmentsQuery{}, err
	}

	return GetOrderShipmentsQuery{
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOrderShipmentsQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderShipmentsQueryIsNotConstructed)
}

// OrderID returns the identifier of the order.
func (q GetOrderShipmentsQuery) OrderID() kernel.UUID {
	return q.orderID
}

// GetOrderShipmentsQueryResponse is one shipment row of the order. Nullable
// columns stay nil until the corresponding saga step produced them.
type GetOrderShipmentsQueryResponse struct {
	ID              kernel.UUID
	CarrierOrderID  string
	Status          string
	LabelURL        *string
	TrackingCode    *string
	TrackingURL     *string
	TrackingCarrier *string
}
