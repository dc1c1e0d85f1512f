package commands

import (
	"errors"

	"freight/internal/core/domain/model/freight"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/ports"
	"freight/internal/pkg/errs"
	"freight/internal/pkg/guard"
)

var (
	ErrReserveCartCommandIsNotConstructed = errors.New(
		"ReserveCartCommand must be created via NewReserveCartCommand constructor",
	)
	ErrServiceIDIsInvalid = errors.New("service id must be greater than 0")
)

// ReserveCartCommand represents a request to reserve a carrier cart entry for
// an order. The destination is optional: when absent, the owner's stored
// default address is resolved at handling time.
//
// Example:
//
//	items, _ := freight.NewCartItem("mug", 2)
//	cmd, err := NewReserveCartCommand(orderID, ownerID, 3,
//	    []freight.CartItem{items}, nil, ports.CarrierOptions{NonCommercial: true})
//	if err != nil {
//	    return fmt.Errorf("invalid reservation data: %w", err)
//	}
type ReserveCartCommand struct { //nolint:recvcheck //using for validation
	orderID     kernel.UUID
	ownerID     kernel.UUID
	serviceID   int64
	items       []freight.CartItem
	destination *ports.StoredAddress
	options     ports.CarrierOptions

	guard guard.ConstructorGuard
}

// NewReserveCartCommand creates a command to reserve a carrier cart entry.
// Validates identifiers, the chosen service id and every cart line item.
func NewReserveCartCommand(
	orderID kernel.UUID,
	ownerID kernel.UUID,
	serviceID int64,
	items []freight.CartItem,
	destination *ports.StoredAddress,
	options ports.CarrierOptions,
) (ReserveCartCommand, error) {
	cmd := ReserveCartCommand{
		destination: destination,
		options:     options,
		guard:       guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setOwnerID(ownerID),
		cmd.setServiceID(serviceID),
		cmd.setItems(items),
	); err != nil {
		return ReserveCartCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ReserveCartCommand) Validate() error {
	return c.guard.Validate(ErrReserveCartCommandIsNotConstructed)
}

// OrderID returns the identifier of the order being reserved.
func (c ReserveCartCommand) OrderID() kernel.UUID {
	return c.orderID
}

// OwnerID returns the identifier of the account that placed the order.
func (c ReserveCartCommand) OwnerID() kernel.UUID {
	return c.ownerID
}

// ServiceID returns the chosen carrier service id.
func (c ReserveCartCommand) ServiceID() int64 {
	return c.serviceID
}

// Items returns the cart line items of the order.
func (c ReserveCartCommand) Items() []freight.CartItem {
	return c.items
}

// Destination returns the explicit destination override, or nil to use the
// owner's stored default address.
func (c ReserveCartCommand) Destination() *ports.StoredAddress {
	return c.destination
}

// Options returns the carrier reservation options.
func (c ReserveCartCommand) Options() ports.CarrierOptions {
	return c.options
}

func (c *ReserveCartCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *ReserveCartCommand) setOwnerID(ownerID kernel.UUID) error {
	if err := ownerID.Validate(); err != nil {
		return err
	}

	c.ownerID = ownerID
	return nil
}

func (c *ReserveCartCommand) setServiceID(serviceID int64) error {
	if serviceID <= 0 {
		return ErrServiceIDIsInvalid
	}

	c.serviceID = serviceID
	return nil
}

func (c *ReserveCartCommand) setItems(items []freight.CartItem) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("items")
	}

	for _, item := range items {
		if err := item.Validate(); err != nil {
			return err
		}
	}

	c.items = items
	return nil
}
