// Package queries contains read operations in the CQRS architecture. Queries
// never modify state: they read from the database or recompute derived data,
// such as a signed shipping quote.
package queries

import (
	"errors"

	"freight/internal/core/domain/model/freight"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/errs"
	"freight/internal/pkg/guard"
)

var ErrQuoteShippingQueryIsNotConstructed = errors.New(
	"QuoteShippingQuery must be created via NewQuoteShippingQuery constructor",
)

// QuoteShippingQuery asks for a signed shipping price quote for a cart going
// to a postal code. A nil service id requests the free-shipping quote, which
// is only granted when the merchandise subtotal meets the configured
// threshold.
type QuoteShippingQuery struct { //nolint:recvcheck //using for validation
	ownerID    kernel.UUID
	postalCode string
	items      []freight.CartItem
	serviceID  *int64

	guard guard.ConstructorGuard
}

// NewQuoteShippingQuery creates a query for a signed shipping quote.
func NewQuoteShippingQuery(
	ownerID kernel.UUID,
	postalCode string,
	items []freight.CartItem,
	serviceID *int64,
) (QuoteShippingQuery, error) {
	q := QuoteShippingQuery{
		serviceID: serviceID,
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		q.setOwnerID(ownerID),
		q.setPostalCode(postalCode),
		q.setItems(items),
	); err != nil {
		return QuoteShippingQuery{}, err
	}

	if serviceID != nil && *serviceID <= 0 {
		return QuoteShippingQuery{}, errs.NewValueIsInvalidError("serviceId")
	}

	return q, nil
}

// Validate ensures the query was created through the constructor.
func (q QuoteShippingQuery) Validate() error {
	return q.guard.Validate(ErrQuoteShippingQueryIsNotConstructed)
}

// OwnerID returns the identifier of the quoting account.
func (q QuoteShippingQuery) OwnerID() kernel.UUID {
	return q.ownerID
}

// PostalCode returns the destination postal code.
func (q QuoteShippingQuery) PostalCode() string {
	return q.postalCode
}

// Items returns the cart line items being quoted.
func (q QuoteShippingQuery) Items() []freight.CartItem {
	return q.items
}

// ServiceID returns the chosen carrier service id, or nil for the
// free-shipping quote.
func (q QuoteShippingQuery) ServiceID() *int64 {
	return q.serviceID
}

func (q *QuoteShippingQuery) setOwnerID(ownerID kernel.UUID) error {
	if err := ownerID.Validate(); err != nil {
		return err
	}

	q.ownerID = ownerID
	return nil
}

func (q *QuoteShippingQuery) setPostalCode(postalCode string) error {
	if postalCode == "" {
		return errs.NewValueIsRequiredError("postalCode")
	}

	q.postalCode = postalCode
	return nil
}

func (q *QuoteShippingQuery) setItems(items []freight.CartItem) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("items")
	}

	for _, item := range items {
		if err := item.Validate(); err != nil {
			return err
		}
	}

	q.items = items
	return nil
}

// QuoteShippingQueryResponse carries the signed quote back to the storefront.
// The token is the only thing the client must echo at checkout; the name and
// price are display data.
type QuoteShippingQueryResponse struct {
	ShippingToken string
	Name          string
	PriceCents    int64
}
