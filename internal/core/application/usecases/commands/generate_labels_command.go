package commands

import (
	"errors"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/errs"
	"freight/internal/pkg/guard"
)

var ErrGenerateLabelsCommandIsNotConstructed = errors.New(
	"GenerateLabelsCommand must be created via NewGenerateLabelsCommand constructor",
)

// GenerateLabelsCommand represents a request to generate shipping labels for
// the purchased shipments of one or more orders.
type GenerateLabelsCommand struct { //nolint:recvcheck //using for validation
	orderIDs []kernel.UUID

	guard guard.ConstructorGuard
}

// NewGenerateLabelsCommand creates a command to generate shipping labels.
func NewGenerateLabelsCommand(orderIDs []kernel.UUID) (GenerateLabelsCommand, error) {
	cmd := GenerateLabelsCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := cmd.setOrderIDs(orderIDs); err != nil {
		return GenerateLabelsCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c GenerateLabelsCommand) Validate() error {
	return c.guard.Validate(ErrGenerateLabelsCommandIsNotConstructed)
}

// OrderIDs returns the identifiers of the orders whose labels to generate.
func (c GenerateLabelsCommand) OrderIDs() []kernel.UUID {
	return c.orderIDs
}

func (c *GenerateLabelsCommand) setOrderIDs(orderIDs []kernel.UUID) error {
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
