package kernel_test

import (
	"testing"

	"freight/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMoneyFromCents(t *testing.T) {
	t.Run("valid_amount", func(t *testing.T) {
		m, err := kernel.NewMoneyFromCents(15050)

		require.NoError(t, err)
		assert.Equal(t, int64(15050), m.Cents())
	})

	t.Run("zero_is_valid", func(t *testing.T) {
		m, err := kernel.NewMoneyFromCents(0)

		require.NoError(t, err)
		assert.True(t, m.IsZero())
	})

	t.Run("negative_amount_fails", func(t *testing.T) {
		_, err := kernel.NewMoneyFromCents(-1)
		require.Error(t, err)
	})
}

func TestMoney_Reais(t *testing.T) {
	m := kernel.MustMoneyFromCents(15050)
	assert.Equal(t, "150.50", m.Reais().StringFixed(2))

	cent := kernel.MustMoneyFromCents(1)
	assert.Equal(t, "0.01", cent.Reais().StringFixed(2))
}

func TestMoney_Arithmetic(t *testing.T) {
	t.Run("add", func(t *testing.T) {
		sum := kernel.MustMoneyFromCents(5000).Add(kernel.MustMoneyFromCents(2550))
		assert.Equal(t, int64(7550), sum.Cents())
	})

	t.Run("mul_quantity", func(t *testing.T) {
		total := kernel.MustMoneyFromCents(5000).MulQuantity(3)
		assert.Equal(t, int64(15000), total.Cents())
	})

	t.Run("less_than", func(t *testing.T) {
		assert.True(t, kernel.MustMoneyFromCents(100).LessThan(kernel.MustMoneyFromCents(101)))
		assert.False(t, kernel.MustMoneyFromCents(101).LessThan(kernel.MustMoneyFromCents(100)))
	})
}

func TestMoney_String(t *testing.T) {
	assert.Equal(t, "R$1.00", kernel.MustMoneyFromCents(100).String())
}
