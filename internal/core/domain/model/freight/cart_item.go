package freight

import (
	"errors"
	"fmt"

	"freight/internal/pkg/errs"
	"freight/internal/pkg/guard"
)

// ErrCartItemIsNotConstructed is returned when a CartItem was not created via NewCartItem.
var ErrCartItemIsNotConstructed = errors.New("CartItem must be created via NewCartItem constructor")

// CartItem is one (product, quantity) line of a cart. Product identifiers are
// opaque strings owned by the product catalog collaborator.
type CartItem struct { //nolint:recvcheck //using for validation
	productID string
	quantity  int

	guard guard.ConstructorGuard
}

// NewCartItem creates a validated cart line item.
func NewCartItem(productID string, quantity int) (CartItem, error) {
	item := CartItem{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		item.setProductID(productID),
		item.setQuantity(quantity),
	); err != nil {
		return CartItem{}, err
	}

	return item, nil
}

// Validate ensures the CartItem was created through NewCartItem.
func (i CartItem) Validate() error {
	return i.guard.Validate(ErrCartItemIsNotConstructed)
}

// ProductID returns the catalog identifier of the product.
func (i CartItem) ProductID() string {
	return i.productID
}

// Quantity returns how many units of the product are in the cart.
func (i CartItem) Quantity() int {
	return i.quantity
}

func (i *CartItem) setProductID(productID string) error {
	if productID == "" {
		return errs.NewValueIsRequiredError("productID")
	}
	i.productID = productID
	return nil
}

func (i *CartItem) setQuantity(quantity int) error {
	if quantity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("quantity",
			fmt.Errorf("%d is not greater than 0", quantity))
	}
	i.quantity = quantity
	return nil
}
