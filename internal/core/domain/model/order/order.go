package order

import (
	"errors"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created
	// through the NewOrder or RestoreOrder factory methods.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")

	// ErrPaymentWithoutReservation is returned when payment confirmation arrives
	// for an order that never received a carrier cart reference. This is an
	// invariant violation to surface to the operator, not to heal silently.
	ErrPaymentWithoutReservation = errors.New(
		"payment confirmed for an order without a carrier cart reference")
)

// Order is the aggregate root for a purchased order inside the fulfillment
// core. Catalog contents, customer data and cart state live with external
// collaborators; the core only owns the monetary total, the status and the
// carrier cart reference produced by the reservation step.
type Order struct {
	id            kernel.UUID
	ownerID       kernel.UUID
	total         kernel.Money
	status        Status
	cartReference *string

	isConstructed bool
}

// NewOrder creates an Order in Pending status with no carrier reservation yet.
func NewOrder(id kernel.UUID, ownerID kernel.UUID, total kernel.Money) (*Order, error) {
	order := &Order{
		status:        Pending,
		total:         total,
		isConstructed: true,
	}

	if err := errors.Join(
		order.setID(id),
		order.setOwnerID(ownerID),
	); err != nil {
		return nil, err
	}

	return order, nil
}

// RestoreOrder reconstructs an Order from persistence without re-running the
// creation transition. The stored status must be valid and consistent with
// the presence of a cart reference.
func RestoreOrder(
	id kernel.UUID,
	ownerID kernel.UUID,
	total kernel.Money,
	status Status,
	cartReference *string,
) (*Order, error) {
	if err := status.Validate(); err != nil {
		return nil, err
	}

	if status == PaymentConfirmed && cartReference == nil {
		return nil, ErrPaymentWithoutReservation
	}

	order := &Order{
		total:         total,
		status:        status,
		cartReference: cartReference,
		isConstructed: true,
	}

	if err := errors.Join(
		order.setID(id),
		order.setOwnerID(ownerID),
	); err != nil {
		return nil, err
	}

	return order, nil
}

// Validate ensures the Order instance was properly constructed.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}

	return nil
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// OwnerID returns the identifier of the account that placed the order.
func (o *Order) OwnerID() kernel.UUID {
	return o.ownerID
}

// Total returns the monetary total of the order.
func (o *Order) Total() kernel.Money {
	return o.total
}

// Status returns the current status of the order.
func (o *Order) Status() Status {
	return o.status
}

// CartReference returns the carrier cart/order id produced by the reservation
// step, or nil when no reservation succeeded yet.
func (o *Order) CartReference() *string {
	return o.cartReference
}

// AttachCartReference records the carrier order id after a successful cart
// reservation. Re-attaching the same reference on a retried reservation is
// allowed; attaching an empty one is not.
func (o *Order) AttachCartReference(carrierOrderID string) error {
	if carrierOrderID == "" {
		return errs.NewValueIsRequiredError("carrierOrderID")
	}

	o.cartReference = &carrierOrderID
	return nil
}

// ConfirmPayment idempotently marks the order as paid. An order can reach
// PaymentConfirmed only if it already carries a carrier cart reference.
func (o *Order) ConfirmPayment() error {
	if o.cartReference == nil {
		return ErrPaymentWithoutReservation
	}

	newStatus, err := o.status.ConfirmPayment()
	if err != nil {
		return err
	}

	o.status = newStatus
	return nil
}

// Cancel marks a pending order as cancelled.
func (o *Order) Cancel() error {
	newStatus, err := o.status.Cancel()
	if err != nil {
		return err
	}

	o.status = newStatus
	return nil
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setOwnerID(ownerID kernel.UUID) error {
	if err := ownerID.Validate(); err != nil {
		return err
	}
	o.ownerID = ownerID
	return nil
}
