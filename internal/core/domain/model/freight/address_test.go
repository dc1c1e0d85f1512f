package freight_test

import (
	"testing"

	"freight/internal/core/domain/model/freight"
	"freight/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAddress(t *testing.T) {
	t.Run("valid_address", func(t *testing.T) {
		addr, err := freight.NewAddress("01001-000", "Praça da Sé", "100", "Sé", "São Paulo", "SP")

		require.NoError(t, err)
		require.NoError(t, addr.Validate())
		assert.Equal(t, "01001-000", addr.PostalCode())
		assert.Equal(t, "SP", addr.State())
		assert.Equal(t, "São Paulo", addr.City())
	})

	t.Run("missing_postal_code_fails", func(t *testing.T) {
		_, err := freight.NewAddress("", "Rua A", "1", "Centro", "Curitiba", "PR")
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("invalid_state_fails", func(t *testing.T) {
		for _, state := range []string{"", "S", "sp", "SPA", "S1", "Sã"} {
			_, err := freight.NewAddress("80000-000", "Rua A", "1", "Centro", "Curitiba", state)
			require.ErrorIs(t, err, errs.ErrValueIsInvalid, "state %q", state)
		}
	})

	t.Run("zero_value_fails_validation", func(t *testing.T) {
		var addr freight.Address
		require.ErrorIs(t, addr.Validate(), freight.ErrAddressIsNotConstructed)
	})
}

func TestIsUF(t *testing.T) {
	assert.True(t, freight.IsUF("SP"))
	assert.True(t, freight.IsUF("RJ"))
	assert.False(t, freight.IsUF("sp"))
	assert.False(t, freight.IsUF("SPX"))
	assert.False(t, freight.IsUF("S"))
	assert.False(t, freight.IsUF("12"))
}
