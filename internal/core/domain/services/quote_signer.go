package services

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"freight/internal/core/domain/model/freight"
	"freight/internal/pkg/errs"
)

// quoteVersion is bumped whenever the payload layout changes; tokens signed
// under another version are rejected.
const quoteVersion = 1

// quoteTTL is how long an issued quote stays redeemable.
const quoteTTL = 10 * time.Minute

// QuotePayload is the claim set embedded in a signed shipping quote. It is
// never persisted server-side: the signature, the expiry and the items digest
// are the whole contract.
type QuotePayload struct {
	OwnerID     string `json:"owner_id"`
	ServiceID   *int64 `json:"service_id"`
	PriceCents  int64  `json:"price_cents"`
	ItemsDigest string `json:"items_digest"`
	PostalCode  string `json:"postal_code"`
	ExpiresAt   int64  `json:"expires_at"`
	Version     int    `json:"version"`
}

// QuoteSigner produces and verifies tamper-proof, expiring shipping price
// quotes bound to an exact cart item set. Tokens have the form
// "{base64url(payload)}.{hex(hmac-sha256)}".
type QuoteSigner struct {
	secret []byte
	now    func() time.Time
}

// NewQuoteSigner creates a QuoteSigner with the given server secret.
func NewQuoteSigner(secret []byte) QuoteSigner {
	return NewQuoteSignerWithClock(secret, time.Now)
}

// NewQuoteSignerWithClock creates a QuoteSigner with an injectable clock.
func NewQuoteSignerWithClock(secret []byte, now func() time.Time) QuoteSigner {
	return QuoteSigner{secret: secret, now: now}
}

// ItemsDigest canonicalizes an item list into its digest: lines formatted as
// "{id}x{quantity}", sorted by product id, joined with "|", hashed with
// SHA-256 and hex-encoded. Any change to the item set changes the digest.
func ItemsDigest(items []freight.CartItem) string {
	lines := make([]string, 0, len(items))
	for _, item := range items {
		lines = append(lines, fmt.Sprintf("%sx%d", item.ProductID(), item.Quantity()))
	}
	sort.Strings(lines)

	sum := sha256.Sum256([]byte(strings.Join(lines, "|")))
	return hex.EncodeToString(sum[:])
}

// Sign issues a token for the given quote data. The expiry and version are
// set here; callers supply everything else.
func (s QuoteSigner) Sign(ownerID string, serviceID *int64, priceCents int64, itemsDigest, postalCode string) (string, error) {
	if ownerID == "" {
		return "", errs.NewValueIsRequiredError("ownerID")
	}
	if itemsDigest == "" {
		return "", errs.NewValueIsRequiredError("itemsDigest")
	}

	payload := QuotePayload{
		OwnerID:     ownerID,
		ServiceID:   serviceID,
		PriceCents:  priceCents,
		ItemsDigest: itemsDigest,
		PostalCode:  postalCode,
		ExpiresAt:   s.now().Add(quoteTTL).Unix(),
		Version:     quoteVersion,
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	encoded := base64.RawURLEncoding.EncodeToString(raw)
	return encoded + "." + s.mac(encoded), nil
}

// Verify checks a token's signature, expiry, version and item binding and
// returns the embedded payload. The items passed in must hash to the digest
// stored inside the token, so a cart changed after quoting is rejected.
func (s QuoteSigner) Verify(token string, items []freight.CartItem) (QuotePayload, error) {
	encoded, mac, found := strings.Cut(token, ".")
	if !found || encoded == "" || mac == "" {
		return QuotePayload{}, errs.NewValueIsInvalidError("shippingToken")
	}

	if !hmac.Equal([]byte(mac), []byte(s.mac(encoded))) {
		return QuotePayload{}, errs.NewValueIsInvalidError("shippingToken signature")
	}

	raw, err := base64.RawURLEncoding.DecodeString(encoded)
	if err != nil {
		return QuotePayload{}, errs.NewValueIsInvalidErrorWithCause("shippingToken", err)
	}

	var payload QuotePayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return QuotePayload{}, errs.NewValueIsInvalidErrorWithCause("shippingToken", err)
	}

	if payload.Version != quoteVersion {
		return QuotePayload{}, errs.NewVersionIsInvalidError("shippingToken")
	}

	if s.now().Unix() > payload.ExpiresAt {
		return QuotePayload{}, errs.NewValueIsInvalidError("shippingToken expired")
	}

	if payload.ItemsDigest != ItemsDigest(items) {
		return QuotePayload{}, errs.NewValueIsInvalidError("shippingToken items digest")
	}

	return payload, nil
}

func (s QuoteSigner) mac(encodedPayload string) string {
	h := hmac.New(sha256.New, s.secret)
	h.Write([]byte(encodedPayload))
	return hex.EncodeToString(h.Sum(nil))
}
