package ports

import (
	"context"

	"freight/internal/core/domain/model/kernel"
)

// StoredAddress is a customer address as the address-book collaborator stores
// it: the state may be a full name ("São Paulo") rather than a UF code, so it
// must pass through the address resolver before reaching the carrier.
type StoredAddress struct {
	PostalCode string
	Street     string
	Number     string
	District   string
	City       string
	State      string
}

// AddressBook provides read access to customers' stored addresses.
type AddressBook interface {
	// DefaultAddress loads the owner's default address.
	// Returns errs.ObjectNotFoundError when the owner has none.
	DefaultAddress(ctx context.Context, ownerID kernel.UUID) (StoredAddress, error)
}
