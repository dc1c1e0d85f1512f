package shipment

import (
	"fmt"

	"freight/internal/pkg/errs"
)

// Step is the last completed saga checkpoint for a shipment. It is persisted
// alongside status and is what makes replayed payment events safe: a carrier
// order whose step is already Purchased is excluded from a repeated purchase
// call, so the carrier wallet is never debited twice for the same shipment.
type Step int

const (
	// StepUnknown represents an invalid or undefined step.
	StepUnknown Step = iota

	// StepReserved: the cart reservation succeeded.
	StepReserved

	// StepPurchased: the carrier purchase/checkout succeeded.
	StepPurchased

	// StepLabelGenerated: the label-generation call succeeded.
	StepLabelGenerated

	// StepTrackingSynced: tracking data was merged at least once.
	StepTrackingSynced
)

func getStepStrings() map[Step]string {
	return map[Step]string{
		StepUnknown:        "unknown",
		StepReserved:       "reserved",
		StepPurchased:      "purchased",
		StepLabelGenerated: "label_generated",
		StepTrackingSynced: "tracking_synced",
	}
}

// Validate checks if the Step value is one of the defined checkpoints.
func (s Step) Validate() error {
	if s < StepReserved || s > StepTrackingSynced {
		return errs.NewValueIsInvalidErrorWithCause("step", fmt.Errorf("%d is not a valid step", s))
	}
	return nil
}

// String returns the storage name of the step.
func (s Step) String() string {
	if str, ok := getStepStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// Advance returns the furthest of the two checkpoints. Steps only move
// forward; advancing to an earlier checkpoint keeps the current one.
func (s Step) Advance(to Step) Step {
	if to > s {
		return to
	}
	return s
}
