package freight

import (
	"errors"
	"fmt"

	"freight/internal/pkg/errs"
	"freight/internal/pkg/guard"
)

// ErrAddressIsNotConstructed is returned when an Address was not created via NewAddress.
var ErrAddressIsNotConstructed = errors.New("Address must be created via NewAddress constructor")

// Address is the destination snapshot embedded in a carrier reservation.
// The state field is a UF: a two-letter uppercase Brazilian state code.
type Address struct { //nolint:recvcheck //using for validation
	postalCode string
	street     string
	number     string
	district   string
	city       string
	state      string

	guard guard.ConstructorGuard
}

// NewAddress creates a validated destination address.
// The postal code and UF are mandatory; the UF must be exactly two uppercase
// letters. Validation happens here so no carrier call is ever made with a
// malformed destination.
func NewAddress(postalCode, street, number, district, city, state string) (Address, error) {
	address := Address{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		address.setPostalCode(postalCode),
		address.setState(state),
	); err != nil {
		return Address{}, err
	}

	address.street = street
	address.number = number
	address.district = district
	address.city = city

	return address, nil
}

// Validate ensures the Address was created through NewAddress.
func (a Address) Validate() error {
	return a.guard.Validate(ErrAddressIsNotConstructed)
}

// PostalCode returns the destination postal code (CEP).
func (a Address) PostalCode() string {
	return a.postalCode
}

// Street returns the street name.
func (a Address) Street() string {
	return a.street
}

// Number returns the street number.
func (a Address) Number() string {
	return a.number
}

// District returns the district (bairro).
func (a Address) District() string {
	return a.district
}

// City returns the city name.
func (a Address) City() string {
	return a.city
}

// State returns the two-letter UF code.
func (a Address) State() string {
	return a.state
}

func (a *Address) setPostalCode(postalCode string) error {
	if postalCode == "" {
		return errs.NewValueIsRequiredError("postalCode")
	}
	a.postalCode = postalCode
	return nil
}

func (a *Address) setState(state string) error {
	if !IsUF(state) {
		return errs.NewValueIsInvalidErrorWithCause("state",
			fmt.Errorf("%q is not a two-letter uppercase state code", state))
	}
	a.state = state
	return nil
}

// IsUF reports whether s is exactly two uppercase ASCII letters.
func IsUF(s string) bool {
	if len(s) != 2 {
		return false
	}
	for _, r := range s {
		if r < 'A' || r > 'Z' {
			return false
		}
	}
	return true
}
