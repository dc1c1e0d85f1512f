package order

import (
	"fmt"

	"freight/internal/pkg/errs"
)

// Status represents the lifecycle state of an order.
//
// State transitions:
//
//	Pending ──┬──> PaymentConfirmed
//	          │
//	          └──> Cancelled
//
// Confirming an already confirmed order is a no-op (payment webhooks are
// delivered at least once); every other repeated transition is rejected.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	Unknown Status = iota

	// Pending is the initial status at checkout submission.
	Pending

	// PaymentConfirmed indicates a verified payment event was processed.
	PaymentConfirmed

	// Cancelled indicates the order was abandoned before payment.
	Cancelled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:          "unknown",
		Pending:          "pending",
		PaymentConfirmed: "payment_confirmed",
		Cancelled:        "cancelled",
	}
}

func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Pending:          "pending",
		PaymentConfirmed: "payment_confirmed",
		Cancelled:        "cancelled",
	}
}

// Validate checks if the Status value is one of the defined states.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the wire/storage name of the status.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// ConfirmPayment transitions the status to PaymentConfirmed.
// Pending and PaymentConfirmed are both accepted as source states so that
// replayed payment events stay idempotent.
func (s Status) ConfirmPayment() (Status, error) {
	if s != Pending && s != PaymentConfirmed {
		return 0, errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%s is not a valid status to confirm payment", s))
	}

	return PaymentConfirmed, nil
}

// Cancel transitions the status to Cancelled. Only pending orders can be
// cancelled; paid orders move through the shipment saga instead.
func (s Status) Cancel() (Status, error) {
	if s != Pending && s != Cancelled {
		return 0, errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%s is not a valid status to cancel", s))
	}

	return Cancelled, nil
}
