package services_test

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"testing"
	"time"

	"freight/internal/core/domain/model/freight"
	"freight/internal/core/domain/services"
	"freight/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var quoteSecret = []byte("test-quote-secret")

func TestItemsDigest_CanonicalForm(t *testing.T) {
	items := []freight.CartItem{mustItem(t, "1", 2)}

	expected := sha256.Sum256([]byte("1x2"))
	assert.Equal(t, hex.EncodeToString(expected[:]), services.ItemsDigest(items))
}

func TestItemsDigest_OrderIndependent(t *testing.T) {
	a := []freight.CartItem{mustItem(t, "mug", 2), mustItem(t, "shirt", 1)}
	b := []freight.CartItem{mustItem(t, "shirt", 1), mustItem(t, "mug", 2)}

	assert.Equal(t, services.ItemsDigest(a), services.ItemsDigest(b))
}

func TestItemsDigest_QuantityChangesDigest(t *testing.T) {
	a := []freight.CartItem{mustItem(t, "mug", 2)}
	b := []freight.CartItem{mustItem(t, "mug", 3)}

	assert.NotEqual(t, services.ItemsDigest(a), services.ItemsDigest(b))
}

func TestQuoteSigner_SignAndVerify(t *testing.T) {
	items := []freight.CartItem{mustItem(t, "mug", 2)}
	serviceID := int64(3)

	signer := services.NewQuoteSigner(quoteSecret)
	token, err := signer.Sign("owner-1", &serviceID, 1890, services.ItemsDigest(items), "01310-100")
	require.NoError(t, err)

	payload, err := signer.Verify(token, items)
	require.NoError(t, err)
	assert.Equal(t, "owner-1", payload.OwnerID)
	require.NotNil(t, payload.ServiceID)
	assert.Equal(t, int64(3), *payload.ServiceID)
	assert.Equal(t, int64(1890), payload.PriceCents)
	assert.Equal(t, "01310-100", payload.PostalCode)
}

func TestQuoteSigner_FreeShippingHasNoService(t *testing.T) {
	items := []freight.CartItem{mustItem(t, "mug", 10)}

	signer := services.NewQuoteSigner(quoteSecret)
	token, err := signer.Sign("owner-1", nil, 0, services.ItemsDigest(items), "01310-100")
	require.NoError(t, err)

	payload, err := signer.Verify(token, items)
	require.NoError(t, err)
	assert.Nil(t, payload.ServiceID)
	assert.Zero(t, payload.PriceCents)
}

func TestQuoteSigner_Verify_RejectsTamperedPayload(t *testing.T) {
	items := []freight.CartItem{mustItem(t, "mug", 2)}

	signer := services.NewQuoteSigner(quoteSecret)
	token, err := signer.Sign("owner-1", nil, 1890, services.ItemsDigest(items), "01310-100")
	require.NoError(t, err)

	encoded, mac, _ := strings.Cut(token, ".")
	flipped := []byte(encoded)
	flipped[0] ^= 0x01
	tampered := string(flipped) + "." + mac

	_, err = signer.Verify(tampered, items)
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestQuoteSigner_Verify_RejectsWrongSecret(t *testing.T) {
	items := []freight.CartItem{mustItem(t, "mug", 2)}

	signer := services.NewQuoteSigner(quoteSecret)
	token, err := signer.Sign("owner-1", nil, 1890, services.ItemsDigest(items), "01310-100")
	require.NoError(t, err)

	other := services.NewQuoteSigner([]byte("another-secret"))
	_, err = other.Verify(token, items)
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestQuoteSigner_Verify_RejectsExpiredToken(t *testing.T) {
	items := []freight.CartItem{mustItem(t, "mug", 2)}

	issued := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	now := issued
	signer := services.NewQuoteSignerWithClock(quoteSecret, func() time.Time { return now })

	token, err := signer.Sign("owner-1", nil, 1890, services.ItemsDigest(items), "01310-100")
	require.NoError(t, err)

	now = issued.Add(9 * time.Minute)
	_, err = signer.Verify(token, items)
	require.NoError(t, err)

	now = issued.Add(11 * time.Minute)
	_, err = signer.Verify(token, items)
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestQuoteSigner_Verify_RejectsChangedCart(t *testing.T) {
	quoted := []freight.CartItem{mustItem(t, "mug", 2)}
	grown := []freight.CartItem{mustItem(t, "mug", 3)}

	signer := services.NewQuoteSigner(quoteSecret)
	token, err := signer.Sign("owner-1", nil, 1890, services.ItemsDigest(quoted), "01310-100")
	require.NoError(t, err)

	_, err = signer.Verify(token, grown)
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestQuoteSigner_Verify_RejectsMalformedToken(t *testing.T) {
	signer := services.NewQuoteSigner(quoteSecret)

	for _, token := range []string{"", "nodot", ".onlymac", "onlypayload.", "!!!.abc"} {
		_, err := signer.Verify(token, nil)
		require.Error(t, err, "token %q", token)
	}
}

func TestQuoteSigner_Sign_RequiresOwnerAndDigest(t *testing.T) {
	signer := services.NewQuoteSigner(quoteSecret)

	_, err := signer.Sign("", nil, 0, "digest", "01310-100")
	assert.ErrorIs(t, err, errs.ErrValueIsRequired)

	_, err = signer.Sign("owner-1", nil, 0, "", "01310-100")
	assert.ErrorIs(t, err, errs.ErrValueIsRequired)
}
