package commands

import (
	"errors"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/errs"
	"freight/internal/pkg/guard"
)

var ErrPurchaseShipmentsCommandIsNotConstructed = errors.New(
	"PurchaseShipmentsCommand must be created via NewPurchaseShipmentsCommand constructor",
)

// PurchaseShipmentsCommand represents a request to purchase the reserved
// shipments of one or more orders from the carrier cart.
type PurchaseShipmentsCommand struct { //nolint:recvcheck //using for validation
	orderIDs []kernel.UUID

	guard guard.ConstructorGuard
}

// NewPurchaseShipmentsCommand creates a command to purchase reserved shipments.
func NewPurchaseShipmentsCommand(orderIDs []kernel.UUID) (PurchaseShipmentsCommand, error) {
	cmd := PurchaseShipmentsCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := cmd.setOrderIDs(orderIDs); err != nil {
		return PurchaseShipmentsCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c PurchaseShipmentsCommand) Validate() error {
	return c.guard.Validate(ErrPurchaseShipmentsCommandIsNotConstructed)
}

// OrderIDs returns the identifiers of the orders whose shipments to purchase.
func (c PurchaseShipmentsCommand) OrderIDs() []kernel.UUID {
	return c.orderIDs
}

func (c *PurchaseShipmentsCommand) setOrderIDs(orderIDs []kernel.UUID) error {
	if len(orderIDs) == 0 {
		return errs.NewValueIsRequiredError("orderIDs")
	}

	for _, id := range orderIDs {
		if err := id.Validate(); err != nil {
			return err
		}
	}

	c.orderIDs = orderIDs
	return nil
}
