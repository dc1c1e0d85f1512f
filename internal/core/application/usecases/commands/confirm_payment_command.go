package commands

import (
	"errors"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/guard"
)

var ErrConfirmPaymentCommandIsNotConstructed = errors.New(
	"ConfirmPaymentCommand must be created via NewConfirmPaymentCommand constructor",
)

// ConfirmPaymentCommand represents a verified payment-confirmation event. The
// owner id is carried as the raw webhook metadata value: an absent owner is a
// legitimate business skip handled by the saga, not a malformed command.
type ConfirmPaymentCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	ownerID string

	guard guard.ConstructorGuard
}

// NewConfirmPaymentCommand creates a command for a payment-confirmation event.
func NewConfirmPaymentCommand(orderID kernel.UUID, ownerID string) (ConfirmPaymentCommand, error) {
	cmd := ConfirmPaymentCommand{
		ownerID: ownerID,
		guard:   guard.NewConstructorGuard(),
	}

	if err := cmd.setOrderID(orderID); err != nil {
		return ConfirmPaymentCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ConfirmPaymentCommand) Validate() error {
	return c.guard.Validate(ErrConfirmPaymentCommandIsNotConstructed)
}

// OrderID returns the identifier of the paid order.
func (c ConfirmPaymentCommand) OrderID() kernel.UUID {
	return c.orderID
}

// OwnerID returns the paying account's identifier from the event metadata,
// or an empty string when the event carried none.
func (c ConfirmPaymentCommand) OwnerID() string {
	return c.ownerID
}

func (c *ConfirmPaymentCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}
