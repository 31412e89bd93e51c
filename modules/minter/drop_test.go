package minter

import (
	"testing"
	"time"

	"github.com/gaze-network/uint128"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wrightcode/ladybugs/common/errs"
)

func TestUpdateDrop(t *testing.T) {
	price := uint128.From64(1_000_000)

	t.Run("owner only", func(t *testing.T) {
		m, clock := newTestEngine(t)
		_, err := m.UpdateDrop(1, price, clock.now.Add(3*time.Hour), testBuyer)
		assert.ErrorIs(t, err, errs.Unauthorized)
	})

	t.Run("index out of range", func(t *testing.T) {
		m, clock := newTestEngine(t)
		_, err := m.UpdateDrop(DropCount, price, clock.now.Add(3*time.Hour), testOwner)
		assert.ErrorIs(t, err, errs.InvalidArgument)
		_, err = m.UpdateDrop(-1, price, clock.now.Add(3*time.Hour), testOwner)
		assert.ErrorIs(t, err, errs.InvalidArgument)
	})

	t.Run("lead time enforced", func(t *testing.T) {
		m, clock := newTestEngine(t)
		_, err := m.UpdateDrop(1, price, clock.now.Add(MinScheduleLead-time.Second), testOwner)
		assert.ErrorIs(t, err, errs.InvalidTransition)

		// exactly the minimum lead is allowed
		drop, err := m.UpdateDrop(1, price, clock.now.Add(MinScheduleLead), testOwner)
		require.NoError(t, err)
		assert.Equal(t, clock.now.Add(MinScheduleLead), drop.StartDate)
		assert.Equal(t, drop.StartDate, drop.PriceDate)
		assert.Equal(t, price, drop.PriceWei)
	})

	t.Run("started drop is frozen", func(t *testing.T) {
		m, clock := newTestEngine(t)
		_, err := m.Initialize(testOwner)
		require.NoError(t, err)
		_, err = m.UpdateDrop(0, price, clock.now.Add(3*time.Hour), testOwner)
		assert.ErrorIs(t, err, errs.InvalidTransition)
	})

	t.Run("rescheduling an unstarted drop", func(t *testing.T) {
		m, clock := newTestEngine(t)
		_, err := m.UpdateDrop(1, price, clock.now.Add(3*time.Hour), testOwner)
		require.NoError(t, err)
		drop, err := m.UpdateDrop(1, price.Add64(1), clock.now.Add(5*time.Hour), testOwner)
		require.NoError(t, err)
		assert.Equal(t, clock.now.Add(5*time.Hour), drop.StartDate)
	})

	t.Run("calendar order is kept", func(t *testing.T) {
		m, clock := newTestEngine(t)
		_, err := m.UpdateDrop(1, price, clock.now.Add(10*time.Hour), testOwner)
		require.NoError(t, err)

		// drop 2 may not start before drop 1
		_, err = m.UpdateDrop(2, price, clock.now.Add(5*time.Hour), testOwner)
		assert.ErrorIs(t, err, errs.InvalidTransition)

		_, err = m.UpdateDrop(2, price, clock.now.Add(10*time.Hour), testOwner)
		assert.NoError(t, err)
	})
}

func TestDropPrice(t *testing.T) {
	price := uint128.From64(2_000_000)

	t.Run("owner only", func(t *testing.T) {
		m, _ := newTestEngine(t)
		_, err := m.DropPrice(0, price, testBuyer)
		assert.ErrorIs(t, err, errs.Unauthorized)
	})

	t.Run("index out of range", func(t *testing.T) {
		m, _ := newTestEngine(t)
		_, err := m.DropPrice(DropCount, price, testOwner)
		assert.ErrorIs(t, err, errs.InvalidArgument)
	})

	t.Run("adjusts an active drop and restamps price date", func(t *testing.T) {
		m, clock := newTestEngine(t)
		_, err := m.Initialize(testOwner)
		require.NoError(t, err)

		clock.Advance(time.Hour)
		drop, err := m.DropPrice(0, price, testOwner)
		require.NoError(t, err)
		assert.Equal(t, price, drop.PriceWei)
		assert.Equal(t, clock.now, drop.PriceDate)

		// mint at the new price
		_, err = m.Mint(testBuyer, testBuyer, price)
		assert.NoError(t, err)
	})

	t.Run("sold out drop cannot be repriced", func(t *testing.T) {
		m, _ := newTestEngine(t)
		_, err := m.Initialize(testOwner)
		require.NoError(t, err)
		mintOut(t, m, testBuyer)

		_, err = m.DropPrice(0, price, testOwner)
		assert.ErrorIs(t, err, errs.InvalidTransition)
	})
}
