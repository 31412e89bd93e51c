package minter

import (
	"testing"
	"time"

	"github.com/gaze-network/uint128"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wrightcode/ladybugs/common/errs"
)

func TestMintStalledDropToOwner(t *testing.T) {
	// newStalled sets up an initialized engine with one unit sold from
	// drop 0 and the clock advanced past the stall age.
	newStalled := func(t *testing.T) (*Minter, *testClock) {
		t.Helper()
		m, clock := newTestEngine(t)
		_, err := m.Initialize(testOwner)
		require.NoError(t, err)
		_, err = m.Mint(testBuyer, testBuyer, testInitialPrice)
		require.NoError(t, err)
		clock.Advance(StallAge)
		return m, clock
	}

	t.Run("owner only", func(t *testing.T) {
		m, _ := newStalled(t)
		_, err := m.MintStalledDropToOwner(testBuyer)
		assert.ErrorIs(t, err, errs.Unauthorized)
	})

	t.Run("unstarted drop is not stalled", func(t *testing.T) {
		m, _ := newTestEngine(t)
		_, err := m.MintStalledDropToOwner(testOwner)
		assert.ErrorIs(t, err, errs.NotStalled)
	})

	t.Run("too young", func(t *testing.T) {
		m, clock := newTestEngine(t)
		_, err := m.Initialize(testOwner)
		require.NoError(t, err)
		clock.Advance(StallAge - time.Minute)
		_, err = m.MintStalledDropToOwner(testOwner)
		assert.ErrorIs(t, err, errs.NotStalled)
	})

	t.Run("recent price change blocks remediation", func(t *testing.T) {
		m, clock := newStalled(t)
		_, err := m.DropPrice(0, uint128.From64(1), testOwner)
		require.NoError(t, err)
		_, err = m.MintStalledDropToOwner(testOwner)
		assert.ErrorIs(t, err, errs.NotStalled)

		// once the cooldown passes the drop is reclaimable again
		clock.Advance(PriceCooldown)
		_, err = m.MintStalledDropToOwner(testOwner)
		assert.NoError(t, err)
	})

	t.Run("price above ceiling", func(t *testing.T) {
		m, clock := newStalled(t)
		_, err := m.DropPrice(0, StallPriceCeiling.Add64(1), testOwner)
		require.NoError(t, err)
		clock.Advance(PriceCooldown)
		_, err = m.MintStalledDropToOwner(testOwner)
		assert.ErrorIs(t, err, errs.NotStalled)
	})

	t.Run("price at ceiling is eligible", func(t *testing.T) {
		m, clock := newStalled(t)
		_, err := m.DropPrice(0, StallPriceCeiling, testOwner)
		require.NoError(t, err)
		clock.Advance(PriceCooldown)
		_, err = m.MintStalledDropToOwner(testOwner)
		assert.NoError(t, err)
	})

	t.Run("reclaims the remainder to the owner", func(t *testing.T) {
		m, _ := newStalled(t)
		minted, err := m.MintStalledDropToOwner(testOwner)
		require.NoError(t, err)
		assert.Len(t, minted, 4) // 5 allocated, 1 sold
		for _, token := range minted {
			assert.Equal(t, testOwner, token.Owner)
		}

		drop := m.Drops()[0]
		assert.True(t, drop.SoldOut())
		assert.Equal(t, 1, m.Status().CurrentIndex)
		assert.Equal(t, testInitialPrice, m.TreasuryBalance(), "reclaimed units are free")
		requireLedgerInvariant(t, m)
	})

	t.Run("complete collection", func(t *testing.T) {
		m, clock := newTestEngine(t)
		_, err := m.Initialize(testOwner)
		require.NoError(t, err)
		mintOut(t, m, testBuyer)
		for index := 1; index < DropCount; index++ {
			scheduleAndStart(t, m, clock, index, testInitialPrice)
			mintOut(t, m, testBuyer)
		}
		require.True(t, m.Status().Complete)

		_, err = m.MintStalledDropToOwner(testOwner)
		assert.ErrorIs(t, err, errs.NotStalled)
	})
}
