package shipment

import (
	"errors"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/errs"
)

// ErrShipmentIsNotConstructed is returned when a Shipment instance was not
// created through the NewShipment or RestoreShipment factory methods.
var ErrShipmentIsNotConstructed = errors.New("Shipment must be created via NewShipment constructor")

// Tracking carries the sparse tracking data extracted from one carrier
// tracking-lookup entry. Nil fields mean "not present in the response" and
// never overwrite already-known values.
type Tracking struct {
	Code    *string
	URL     *string
	Carrier *string
}

// Shipment is the aggregate for one carrier-side shipment of an order. The
// carrier order id is globally unique and is the idempotency key under which
// every persistence write is upserted.
type Shipment struct {
	id             kernel.UUID
	orderID        kernel.UUID
	carrierOrderID string
	status         Status
	step           Step

	labelURL        *string
	trackingCode    *string
	trackingURL     *string
	trackingCarrier *string

	isConstructed bool
}

// NewShipment creates a Shipment in Created status at the Reserved checkpoint,
// right after a successful cart reservation.
func NewShipment(id kernel.UUID, orderID kernel.UUID, carrierOrderID string) (*Shipment, error) {
	s := &Shipment{
		status:        Created,
		step:          StepReserved,
		isConstructed: true,
	}

	if err := errors.Join(
		s.setID(id),
		s.setOrderID(orderID),
		s.setCarrierOrderID(carrierOrderID),
	); err != nil {
		return nil, err
	}

	return s, nil
}

// RestoreShipment reconstructs a Shipment from persistence.
func RestoreShipment(
	id kernel.UUID,
	orderID kernel.UUID,
	carrierOrderID string,
	status Status,
	step Step,
	labelURL *string,
	tracking Tracking,
) (*Shipment, error) {
	if err := errors.Join(status.Validate(), step.Validate()); err != nil {
		return nil, err
	}

	s := &Shipment{
		status:          status,
		step:            step,
		labelURL:        labelURL,
		trackingCode:    tracking.Code,
		trackingURL:     tracking.URL,
		trackingCarrier: tracking.Carrier,
		isConstructed:   true,
	}

	if err := errors.Join(
		s.setID(id),
		s.setOrderID(orderID),
		s.setCarrierOrderID(carrierOrderID),
	); err != nil {
		return nil, err
	}

	return s, nil
}

// Validate ensures the Shipment instance was properly constructed.
func (s *Shipment) Validate() error {
	if s == nil || !s.isConstructed {
		return ErrShipmentIsNotConstructed
	}

	return nil
}

// ID returns the shipment's unique identifier.
func (s *Shipment) ID() kernel.UUID {
	return s.id
}

// OrderID returns the identifier of the owning order.
func (s *Shipment) OrderID() kernel.UUID {
	return s.orderID
}

// CarrierOrderID returns the carrier-side order id, the idempotency key.
func (s *Shipment) CarrierOrderID() string {
	return s.carrierOrderID
}

// Status returns the current status of the shipment.
func (s *Shipment) Status() Status {
	return s.status
}

// Step returns the last completed saga checkpoint.
func (s *Shipment) Step() Step {
	return s.step
}

// LabelURL returns the generated label URL, or nil before label generation.
func (s *Shipment) LabelURL() *string {
	return s.labelURL
}

// TrackingCode returns the tracking code, or nil while unknown.
func (s *Shipment) TrackingCode() *string {
	return s.trackingCode
}

// TrackingURL returns the tracking URL, or nil while unknown.
func (s *Shipment) TrackingURL() *string {
	return s.trackingURL
}

// TrackingCarrier returns the courier company name, or nil while unknown.
func (s *Shipment) TrackingCarrier() *string {
	return s.trackingCarrier
}

// MarkPaid records a successful carrier purchase. Safe to replay.
func (s *Shipment) MarkPaid() error {
	newStatus, err := s.status.Pay()
	if err != nil {
		return err
	}

	s.status = newStatus
	s.step = s.step.Advance(StepPurchased)
	return nil
}

// AttachLabel records a generated label and its URL. Safe to replay.
func (s *Shipment) AttachLabel(labelURL string) error {
	if labelURL == "" {
		return errs.NewValueIsRequiredError("labelURL")
	}

	newStatus, err := s.status.GenerateLabel()
	if err != nil {
		return err
	}

	s.status = newStatus
	s.labelURL = &labelURL
	s.step = s.step.Advance(StepLabelGenerated)
	return nil
}

// MergeTracking sparsely merges tracking data: only fields present in the
// carrier response overwrite known values. When a tracking code is known and
// the label has already been generated, the status advances to
// TrackingAvailable; otherwise the status is left untouched so it never
// regresses or skips ahead. Merging never fails.
func (s *Shipment) MergeTracking(tracking Tracking) {
	if tracking.Code != nil {
		s.trackingCode = tracking.Code
	}
	if tracking.URL != nil {
		s.trackingURL = tracking.URL
	}
	if tracking.Carrier != nil {
		s.trackingCarrier = tracking.Carrier
	}

	if s.trackingCode == nil {
		return
	}

	s.step = s.step.Advance(StepTrackingSynced)
	if newStatus, err := s.status.Track(); err == nil {
		s.status = newStatus
	}
}

// Cancel moves the shipment to the terminal Cancelled state.
func (s *Shipment) Cancel() error {
	newStatus, err := s.status.Cancel()
	if err != nil {
		return err
	}

	s.status = newStatus
	return nil
}

// Fail moves the shipment to the terminal Error state.
func (s *Shipment) Fail() error {
	newStatus, err := s.status.Fail()
	if err != nil {
		return err
	}

	s.status = newStatus
	return nil
}

func (s *Shipment) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	s.id = id
	return nil
}

func (s *Shipment) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	s.orderID = orderID
	return nil
}

func (s *Shipment) setCarrierOrderID(carrierOrderID string) error {
	if carrierOrderID == "" {
		return errs.NewValueIsRequiredError("carrierOrderID")
	}
	s.carrierOrderID = carrierOrderID
	return nil
}
