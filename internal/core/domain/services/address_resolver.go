package services

import (
	"context"
	"fmt"
	"strings"
	"unicode"

	"freight/internal/core/domain/model/freight"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/ports"
	"freight/internal/pkg/errs"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// stateTable maps normalized full state names (lowercase, diacritics
// stripped) to their UF codes. All 27 federative units.
var stateTable = map[string]string{
	"acre":                "AC",
	"alagoas":             "AL",
	"amapa":               "AP",
	"amazonas":            "AM",
	"bahia":               "BA",
	"ceara":               "CE",
	"distrito federal":    "DF",
	"espirito santo":      "ES",
	"goias":               "GO",
	"maranhao":            "MA",
	"mato grosso":         "MT",
	"mato grosso do sul":  "MS",
	"minas gerais":        "MG",
	"para":                "PA",
	"paraiba":             "PB",
	"parana":              "PR",
	"pernambuco":          "PE",
	"piaui":               "PI",
	"rio de janeiro":      "RJ",
	"rio grande do norte": "RN",
	"rio grande do sul":   "RS",
	"rondonia":            "RO",
	"roraima":             "RR",
	"santa catarina":      "SC",
	"sao paulo":           "SP",
	"sergipe":             "SE",
	"tocantins":           "TO",
}

// AddressResolver turns stored or explicitly supplied destinations into
// validated freight.Address snapshots. It makes no external calls beyond the
// address-book lookup; state normalization is pure and synchronous.
type AddressResolver struct {
	addressBook ports.AddressBook
}

// NewAddressResolver creates an AddressResolver backed by the given address book.
func NewAddressResolver(addressBook ports.AddressBook) AddressResolver {
	return AddressResolver{addressBook: addressBook}
}

// Resolve loads the owner's default address and normalizes it into a
// destination snapshot.
func (r AddressResolver) Resolve(ctx context.Context, ownerID kernel.UUID) (freight.Address, error) {
	if err := ownerID.Validate(); err != nil {
		return freight.Address{}, err
	}

	stored, err := r.addressBook.DefaultAddress(ctx, ownerID)
	if err != nil {
		return freight.Address{}, err
	}

	return r.ResolveStored(stored)
}

// ResolveStored normalizes an explicitly supplied destination into a snapshot.
func (r AddressResolver) ResolveStored(stored ports.StoredAddress) (freight.Address, error) {
	state, err := ResolveState(stored.State)
	if err != nil {
		return freight.Address{}, err
	}

	return freight.NewAddress(
		stored.PostalCode, stored.Street, stored.Number, stored.District, stored.City, state)
}

// ResolveState normalizes a state designation to its two-letter UF code.
// Inputs that already are two uppercase letters pass through unchanged; full
// state names are looked up case- and diacritics-insensitively. Anything else
// fails validation.
func ResolveState(state string) (string, error) {
	if freight.IsUF(state) {
		return state, nil
	}

	if uf, ok := stateTable[normalizeStateName(state)]; ok {
		return uf, nil
	}

	return "", errs.NewValueIsInvalidErrorWithCause("state",
		fmt.Errorf("unresolvable state %q", state))
}

func normalizeStateName(name string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	stripped, _, err := transform.String(t, name)
	if err != nil {
		stripped = name
	}
	return strings.ToLower(strings.TrimSpace(stripped))
}
