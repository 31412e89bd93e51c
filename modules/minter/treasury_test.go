package minter

import (
	"testing"

	"github.com/gaze-network/uint128"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wrightcode/ladybugs/common/errs"
)

func newFundedEngine(t *testing.T) *Minter {
	t.Helper()
	m, _ := newTestEngine(t)
	_, err := m.Initialize(testOwner)
	require.NoError(t, err)
	_, err = m.Mint(testBuyer, testBuyer, testInitialPrice)
	require.NoError(t, err)
	return m
}

func TestWithdraw(t *testing.T) {
	t.Run("owner only", func(t *testing.T) {
		m := newFundedEngine(t)
		err := m.Withdraw(uint128.From64(1), testBuyer)
		assert.ErrorIs(t, err, errs.Unauthorized)
	})

	t.Run("cannot exceed balance", func(t *testing.T) {
		m := newFundedEngine(t)
		err := m.Withdraw(testInitialPrice.Add64(1), testOwner)
		assert.ErrorIs(t, err, errs.InsufficientFunds)
		assert.Equal(t, testInitialPrice, m.TreasuryBalance())
	})

	t.Run("partial withdrawal", func(t *testing.T) {
		m := newFundedEngine(t)
		part := uint128.From64(1_000)
		require.NoError(t, m.Withdraw(part, testOwner))
		assert.Equal(t, testInitialPrice.Sub(part), m.TreasuryBalance())
	})

	t.Run("full balance", func(t *testing.T) {
		m := newFundedEngine(t)
		require.NoError(t, m.Withdraw(testInitialPrice, testOwner))
		assert.True(t, m.TreasuryBalance().IsZero())
	})

	t.Run("repeat withdrawal exceeds remainder", func(t *testing.T) {
		m := newFundedEngine(t)
		most := testInitialPrice.Div64(2).Add64(1)
		require.NoError(t, m.Withdraw(most, testOwner))

		// less than the first withdrawal remains
		err := m.Withdraw(most, testOwner)
		assert.ErrorIs(t, err, errs.InsufficientFunds)
		assert.Equal(t, testInitialPrice.Sub(most), m.TreasuryBalance())
	})
}

func TestWithdrawAll(t *testing.T) {
	t.Run("owner only", func(t *testing.T) {
		m := newFundedEngine(t)
		_, err := m.WithdrawAll(testBuyer)
		assert.ErrorIs(t, err, errs.Unauthorized)
	})

	t.Run("empties the treasury", func(t *testing.T) {
		m := newFundedEngine(t)
		amount, err := m.WithdrawAll(testOwner)
		require.NoError(t, err)
		assert.Equal(t, testInitialPrice, amount)
		assert.True(t, m.TreasuryBalance().IsZero())

		// a second sweep moves nothing
		amount, err = m.WithdrawAll(testOwner)
		require.NoError(t, err)
		assert.True(t, amount.IsZero())
	})
}
