package shipment

import (
	"fmt"

	"freight/internal/pkg/errs"
)

// Status represents the lifecycle state of a shipment.
//
// State transitions:
//
//	Created ──> Paid ──> LabelGenerated ──> TrackingAvailable
//	   │          │            │
//	   └──────────┴────────────┴──────> Cancelled / Error (terminal)
//
// Transitions are monotonic: a status never moves backwards. Re-applying the
// current state is a no-op so replayed webhook deliveries stay safe.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	Unknown Status = iota

	// Created is set when the carrier cart reservation succeeds.
	Created

	// Paid is set when the carrier purchase/checkout succeeds.
	Paid

	// LabelGenerated is set when the shipping label was produced.
	LabelGenerated

	// TrackingAvailable is set once a tracking code is known.
	TrackingAvailable

	// Cancelled is a terminal state for abandoned shipments.
	Cancelled

	// Error is a terminal state for shipments the carrier rejected.
	Error
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:           "unknown",
		Created:           "created",
		Paid:              "paid",
		LabelGenerated:    "label_generated",
		TrackingAvailable: "tracking_available",
		Cancelled:         "cancelled",
		Error:             "error",
	}
}

func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Created:           "created",
		Paid:              "paid",
		LabelGenerated:    "label_generated",
		TrackingAvailable: "tracking_available",
		Cancelled:         "cancelled",
		Error:             "error",
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

// IsTerminal reports whether no further transitions are possible.
func (s Status) IsTerminal() bool {
	return s == Cancelled || s == Error
}

// Pay transitions the status to Paid. Valid from Created and, idempotently,
// from Paid itself.
func (s Status) Pay() (Status, error) {
	if s != Created && s != Paid {
		return 0, errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%s is not a valid status to pay", s))
	}

	return Paid, nil
}

// GenerateLabel transitions the status to LabelGenerated. Valid from Paid
// and, idempotently, from LabelGenerated itself.
func (s Status) GenerateLabel() (Status, error) {
	if s != Paid && s != LabelGenerated {
		return 0, errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%s is not a valid status to generate a label", s))
	}

	return LabelGenerated, nil
}

// Track transitions the status to TrackingAvailable. Valid from
// LabelGenerated and, idempotently, from TrackingAvailable itself.
func (s Status) Track() (Status, error) {
	if s != LabelGenerated && s != TrackingAvailable {
		return 0, errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%s is not a valid status to record tracking", s))
	}

	return TrackingAvailable, nil
}

// Cancel transitions any non-terminal status to Cancelled.
func (s Status) Cancel() (Status, error) {
	if s.IsTerminal() && s != Cancelled {
		return 0, errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%s is not a valid status to cancel", s))
	}

	return Cancelled, nil
}

// Fail transitions any non-terminal status to Error.
func (s Status) Fail() (Status, error) {
	if s.IsTerminal() && s != Error {
		return 0, errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%s is not a valid status to fail", s))
	}

	return Error, nil
}
