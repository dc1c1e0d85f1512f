package commands

import (
	"errors"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/errs"
	"freight/internal/pkg/guard"
)

var ErrSyncTrackingCommandIsNotConstructed = errors.New(
	"SyncTrackingCommand must be created via a NewSyncTrackingCommand constructor",
)

// SyncTrackingCommand represents a request to reconcile tracking data for a
// batch of shipments. The batch is addressed either by carrier order ids
// directly (saga and cron paths, which already hold shipment rows) or by order
// ids (admin path).
type SyncTrackingCommand struct { //nolint:recvcheck //using for validation
	carrierOrderIDs []string
	orderIDs        []kernel.UUID

	guard guard.ConstructorGuard
}

// NewSyncTrackingCommand creates a command addressing shipments by their
// carrier order ids.
func NewSyncTrackingCommand(carrierOrderIDs []string) (SyncTrackingCommand, error) {
	cmd := SyncTrackingCommand{
		guard: guard.NewConstructorGuard(),
	}

	if len(carrierOrderIDs) == 0 {
		return SyncTrackingCommand{}, errs.NewValueIsRequiredError("carrierOrderIDs")
	}

	for _, id := range carrierOrderIDs {
		if id == "" {
			return SyncTrackingCommand{}, errs.NewValueIsRequiredError("carrierOrderIDs")
		}
	}

	cmd.carrierOrderIDs = carrierOrderIDs
	return cmd, nil
}

// NewSyncTrackingCommandForOrders creates a command addressing all shipments
// of the given orders.
func NewSyncTrackingCommandForOrders(orderIDs []kernel.UUID) (SyncTrackingCommand, error) {
	cmd := SyncTrackingCommand{
		guard: guard.NewConstructorGuard(),
	}

	if len(orderIDs) == 0 {
		return SyncTrackingCommand{}, errs.NewValueIsRequiredError("orderIDs")
	}

	for _, id := range orderIDs {
		if err := id.Validate(); err != nil {
			return SyncTrackingCommand{}, err
		}
	}

	cmd.orderIDs = orderIDs
	return cmd, nil
}

// Validate ensures the command was created through a constructor.
func (c SyncTrackingCommand) Validate() error {
	return c.guard.Validate(ErrSyncTrackingCommandIsNotConstructed)
}

// CarrierOrderIDs returns the directly addressed carrier order ids, if any.
func (c SyncTrackingCommand) CarrierOrderIDs() []string {
	return c.carrierOrderIDs
}

// OrderIDs returns the addressed order ids, if any.
func (c SyncTrackingCommand) OrderIDs() []kernel.UUID {
	return c.orderIDs
}
