package ports

import (
	"context"

	"freight/internal/core/domain/model/freight"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/shipment"
)

// RateOption is one shipping service option returned by the carrier's
// rate-calculation endpoint.
type RateOption struct {
	ServiceID    int64
	Name         string
	Company      string
	Price        kernel.Money
	DeliveryDays int
}

// CarrierOptions are the per-reservation flags the carrier accepts.
type CarrierOptions struct {
	Receipt          bool
	OwnHand          bool
	ReverseLogistics bool
	NonCommercial    bool
	Tags             []string
}

// ReserveCartRequest describes one cart reservation: the chosen service, the
// origin and destination snapshots, the consolidated volume and the options.
type ReserveCartRequest struct {
	ServiceID int64
	From      freight.Address
	To        freight.Address
	Volume    freight.Volume
	Options   CarrierOptions
}

// CartProduct is the item metadata attached to a carrier order after
// reservation (best-effort, for customs/declaration purposes).
type CartProduct struct {
	Name      string
	Quantity  int
	UnitValue kernel.Money
}

// PurchaseResult is the outcome of a purchase/checkout call.
type PurchaseResult struct {
	OrderIDs []string
	Status   string
}

// LabelResult is one generated label.
type LabelResult struct {
	CarrierOrderID string
	LabelURL       string
	Status         string
}

// TrackingResult is one normalized tracking entry. Absent fields are nil.
type TrackingResult struct {
	CarrierOrderID string
	Tracking       shipment.Tracking
}

// CarrierClient is the outbound gateway to the multi-courier shipping
// aggregator. Implementations translate to/from the carrier's wire formats;
// every non-2xx or unparseable response surfaces as errs.ExternalServiceError.
type CarrierClient interface {
	// CalculateRates quotes the available services for a package. The rate
	// endpoint only needs origin and destination postal codes.
	CalculateRates(ctx context.Context, fromPostalCode, toPostalCode string, volume freight.Volume) ([]RateOption, error)

	// ReserveCart places a shipment entry in the carrier cart and returns the
	// carrier order id.
	ReserveCart(ctx context.Context, req ReserveCartRequest) (string, error)

	// AttachProducts adds item metadata to a reserved carrier order.
	// Failures here are non-critical; callers log and continue.
	AttachProducts(ctx context.Context, carrierOrderID string, products []CartProduct) error

	// Purchase checks out the given carrier orders from the cart.
	Purchase(ctx context.Context, carrierOrderIDs []string) (PurchaseResult, error)

	// GenerateLabels requests label generation for purchased orders.
	GenerateLabels(ctx context.Context, carrierOrderIDs []string) ([]LabelResult, error)

	// Track fetches tracking data for the given orders in one batch call.
	Track(ctx context.Context, carrierOrderIDs []string) ([]TrackingResult, error)
}
