package minter

import (
	"testing"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/gaze-network/uint128"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wrightcode/ladybugs/common/errs"
)

const (
	testOwner  = "0xOWNER"
	testBuyer  = "0xBUYER"
	testBuyer2 = "0xBUYER2"
)

var testInitialPrice = uint128.From64(5_000_000_000_000_000) // 0.005 ETH

type testClock struct {
	now time.Time
}

func (c *testClock) Advance(d time.Duration) {
	c.now = c.now.Add(d)
}

func newTestEngine(t *testing.T) (*Minter, *testClock) {
	t.Helper()
	clock := &testClock{now: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)}
	m, err := New(Options{
		Owner:        testOwner,
		TotalSupply:  24,
		Reserved:     4,
		InitialPrice: testInitialPrice,
		Now:          func() time.Time { return clock.now },
	})
	require.NoError(t, err)
	return m, clock
}

func requireLedgerInvariant(t *testing.T, m *Minter) {
	t.Helper()
	snap := m.Snapshot()
	var sold uint64
	for _, d := range m.Drops() {
		require.LessOrEqual(t, d.Minted, d.Allocated)
		sold += d.Minted
	}
	require.Equal(t, snap.TotalMinted, snap.ReservedMinted+sold)
	require.LessOrEqual(t, snap.TotalMinted, m.TotalSupply())
}

// mintOut buys every remaining unit of the currently active drop.
func mintOut(t *testing.T, m *Minter, buyer string) {
	t.Helper()
	st := m.Status()
	require.True(t, st.Active)
	drop := m.Drops()[st.CurrentIndex]
	for i := drop.Minted; i < drop.Allocated; i++ {
		_, err := m.Mint(buyer, buyer, drop.PriceWei)
		require.NoError(t, err)
	}
}

// scheduleAndStart schedules the given drop with minimum lead and advances
// the clock past its start date.
func scheduleAndStart(t *testing.T, m *Minter, clock *testClock, index int, price uint128.Uint128) {
	t.Helper()
	_, err := m.UpdateDrop(index, price, clock.now.Add(MinScheduleLead), testOwner)
	require.NoError(t, err)
	clock.Advance(MinScheduleLead + time.Minute)
}

func TestNew(t *testing.T) {
	testcases := []struct {
		name        string
		opts        Options
		shouldError bool
	}{
		{
			name: "valid",
			opts: Options{Owner: testOwner, TotalSupply: 24, Reserved: 4},
		},
		{
			name: "valid without reserve",
			opts: Options{Owner: testOwner, TotalSupply: 20},
		},
		{
			name:        "missing owner",
			opts:        Options{TotalSupply: 24, Reserved: 4},
			shouldError: true,
		},
		{
			name:        "zero supply",
			opts:        Options{Owner: testOwner},
			shouldError: true,
		},
		{
			name:        "reserved swallows supply",
			opts:        Options{Owner: testOwner, TotalSupply: 4, Reserved: 4},
			shouldError: true,
		},
		{
			name:        "uneven split",
			opts:        Options{Owner: testOwner, TotalSupply: 23, Reserved: 4},
			shouldError: true,
		},
	}

	for _, tc := range testcases {
		t.Run(tc.name, func(t *testing.T) {
			m, err := New(tc.opts)
			if tc.shouldError {
				assert.ErrorIs(t, err, errs.InvalidArgument)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, (tc.opts.TotalSupply-tc.opts.Reserved)/DropCount, m.TokensPerDrop())
			assert.Equal(t, uint64(0), m.TotalMinted())
		})
	}
}

func TestInitialize(t *testing.T) {
	t.Run("premints reserve and opens first drop", func(t *testing.T) {
		m, clock := newTestEngine(t)

		minted, err := m.Initialize(testOwner)
		require.NoError(t, err)
		require.Len(t, minted, 4)
		for i, token := range minted {
			assert.Equal(t, uint64(i), token.ID)
			assert.Equal(t, testOwner, token.Owner)
		}
		assert.Equal(t, uint64(4), m.BalanceOf(testOwner))
		assert.Equal(t, uint64(4), m.TotalMinted())
		assert.Equal(t, uint64(20), m.Unminted())

		st := m.Status()
		assert.Equal(t, 0, st.CurrentIndex)
		assert.True(t, st.Active)

		drop := m.Drops()[0]
		assert.Equal(t, clock.now, drop.StartDate)
		assert.Equal(t, clock.now, drop.PriceDate)
		assert.Equal(t, testInitialPrice, drop.PriceWei)
		requireLedgerInvariant(t, m)
	})

	t.Run("owner only", func(t *testing.T) {
		m, _ := newTestEngine(t)
		_, err := m.Initialize(testBuyer)
		assert.ErrorIs(t, err, errs.Unauthorized)
	})

	t.Run("one-time only", func(t *testing.T) {
		m, _ := newTestEngine(t)
		_, err := m.Initialize(testOwner)
		require.NoError(t, err)
		_, err = m.Initialize(testOwner)
		assert.ErrorIs(t, err, errs.AlreadyInitialized)
	})

	t.Run("keeps pre-scheduled first drop price", func(t *testing.T) {
		m, clock := newTestEngine(t)
		custom := uint128.From64(42)
		_, err := m.UpdateDrop(0, custom, clock.now.Add(3*time.Hour), testOwner)
		require.NoError(t, err)

		_, err = m.Initialize(testOwner)
		require.NoError(t, err)
		drop := m.Drops()[0]
		assert.Equal(t, custom, drop.PriceWei)
		assert.Equal(t, clock.now, drop.StartDate)
	})
}

func TestMint(t *testing.T) {
	t.Run("before initialization", func(t *testing.T) {
		m, _ := newTestEngine(t)
		_, err := m.Mint(testBuyer, testBuyer, testInitialPrice)
		assert.ErrorIs(t, err, errs.NoActiveDrop)
	})

	t.Run("caller must be buyer", func(t *testing.T) {
		m, _ := newTestEngine(t)
		_, err := m.Initialize(testOwner)
		require.NoError(t, err)
		_, err = m.Mint(testBuyer, testBuyer2, testInitialPrice)
		assert.ErrorIs(t, err, errs.Unauthorized)
	})

	t.Run("insufficient payment", func(t *testing.T) {
		m, _ := newTestEngine(t)
		_, err := m.Initialize(testOwner)
		require.NoError(t, err)
		_, err = m.Mint(testBuyer, testBuyer, testInitialPrice.Sub64(1))
		assert.ErrorIs(t, err, errs.InsufficientPayment)
		assert.True(t, m.TreasuryBalance().IsZero())
	})

	t.Run("sequential ids and treasury accumulation", func(t *testing.T) {
		m, _ := newTestEngine(t)
		_, err := m.Initialize(testOwner)
		require.NoError(t, err)

		token, err := m.Mint(testBuyer, testBuyer, testInitialPrice)
		require.NoError(t, err)
		assert.Equal(t, uint64(4), token.ID) // ids 0..3 are the premint

		// overpayment is kept
		overpaid := testInitialPrice.Add64(7)
		token2, err := m.Mint(testBuyer2, testBuyer2, overpaid)
		require.NoError(t, err)
		assert.Equal(t, uint64(5), token2.ID)

		assert.Equal(t, testInitialPrice.Add(overpaid), m.TreasuryBalance())
		assert.Equal(t, []uint64{4}, m.TokenIDsOf(testBuyer))
		owner, err := m.OwnerOf(5)
		require.NoError(t, err)
		assert.Equal(t, testBuyer2, owner)
		requireLedgerInvariant(t, m)
	})
}

func TestDropProgression(t *testing.T) {
	m, clock := newTestEngine(t)
	_, err := m.Initialize(testOwner)
	require.NoError(t, err)

	// Sell out drop 0.
	mintOut(t, m, testBuyer)
	st := m.Status()
	assert.Equal(t, 1, st.CurrentIndex)
	assert.False(t, st.Active, "unscheduled next drop must not be active")

	// A sold-out drop no longer accepts mints.
	_, err = m.Mint(testBuyer, testBuyer, testInitialPrice)
	assert.ErrorIs(t, err, errs.NoActiveDrop)

	// Walk the remaining drops to completion.
	for index := 1; index < DropCount; index++ {
		price := uint128.From64(uint64(index) * 1_000_000)
		scheduleAndStart(t, m, clock, index, price)

		st := m.Status()
		require.Equal(t, index, st.CurrentIndex)
		require.True(t, st.Active)

		mintOut(t, m, testBuyer)
		requireLedgerInvariant(t, m)
	}

	st = m.Status()
	assert.True(t, st.Complete)
	assert.Equal(t, DropCount-1, st.CurrentIndex)
	assert.Equal(t, uint64(0), m.Unminted())
	assert.Equal(t, m.TotalSupply(), m.TotalMinted())

	_, err = m.Mint(testBuyer, testBuyer, uint128.Max)
	assert.ErrorIs(t, err, errs.NoActiveDrop)
}

func TestStatusBlockedByUnsoldDrop(t *testing.T) {
	m, clock := newTestEngine(t)
	_, err := m.Initialize(testOwner)
	require.NoError(t, err)

	// Schedule drop 1 far in the future, then let a lot of time pass with
	// drop 0 still unsold. Drop 0 keeps blocking.
	_, err = m.UpdateDrop(1, uint128.From64(1), clock.now.Add(24*time.Hour), testOwner)
	require.NoError(t, err)
	clock.Advance(48 * time.Hour)

	st := m.Status()
	assert.Equal(t, 0, st.CurrentIndex)
	assert.True(t, st.Active)
}

func TestApproveAndTransfer(t *testing.T) {
	newMinted := func(t *testing.T) *Minter {
		m, _ := newTestEngine(t)
		_, err := m.Initialize(testOwner)
		require.NoError(t, err)
		_, err = m.Mint(testBuyer, testBuyer, testInitialPrice)
		require.NoError(t, err)
		return m
	}

	t.Run("approve requires token owner", func(t *testing.T) {
		m := newMinted(t)
		err := m.Approve(testBuyer2, 4, testBuyer2)
		assert.ErrorIs(t, err, errs.Unauthorized)
	})

	t.Run("approve unminted token", func(t *testing.T) {
		m := newMinted(t)
		err := m.Approve(testBuyer2, 23, testBuyer)
		assert.ErrorIs(t, err, errs.NotFound)
	})

	t.Run("transfer by owner", func(t *testing.T) {
		m := newMinted(t)
		err := m.ApplyTransfer(testBuyer, testBuyer2, 4, testBuyer)
		require.NoError(t, err)
		owner, err := m.OwnerOf(4)
		require.NoError(t, err)
		assert.Equal(t, testBuyer2, owner)
		assert.Empty(t, m.TokenIDsOf(testBuyer))
		assert.Equal(t, []uint64{4}, m.TokenIDsOf(testBuyer2))
	})

	t.Run("transfer by approved clears approval", func(t *testing.T) {
		m := newMinted(t)
		require.NoError(t, m.Approve(testBuyer2, 4, testBuyer))
		require.NoError(t, m.ApplyTransfer(testBuyer, testBuyer2, 4, testBuyer2))

		token, err := m.Token(4)
		require.NoError(t, err)
		assert.Empty(t, token.Approved)

		// stale approval no longer works
		err = m.ApplyTransfer(testBuyer2, testBuyer, 4, testBuyer)
		assert.ErrorIs(t, err, errs.Unauthorized)
	})

	t.Run("transfer validates holder", func(t *testing.T) {
		m := newMinted(t)
		err := m.ApplyTransfer(testBuyer2, testBuyer, 4, testBuyer2)
		assert.ErrorIs(t, err, errs.InvalidArgument)
	})
}

func TestRestoreRoundTrip(t *testing.T) {
	m, clock := newTestEngine(t)
	_, err := m.Initialize(testOwner)
	require.NoError(t, err)
	_, err = m.Mint(testBuyer, testBuyer, testInitialPrice)
	require.NoError(t, err)
	_, err = m.Mint(testBuyer2, testBuyer2, testInitialPrice)
	require.NoError(t, err)
	require.NoError(t, m.ApplyTransfer(testBuyer, testBuyer2, 4, testBuyer))

	snap := m.Snapshot()
	drops := m.Drops()
	tokens := m.Tokens()

	restored, err := New(Options{
		Owner:        testOwner,
		TotalSupply:  24,
		Reserved:     4,
		InitialPrice: testInitialPrice,
		Now:          func() time.Time { return clock.now },
	})
	require.NoError(t, err)
	require.NoError(t, restored.Restore(snap, drops, tokens))

	assert.Equal(t, m.TotalMinted(), restored.TotalMinted())
	assert.Equal(t, m.TreasuryBalance(), restored.TreasuryBalance())
	assert.Equal(t, m.Status(), restored.Status())
	// token 5 was acquired before the transfer of token 4
	assert.Equal(t, []uint64{5, 4}, restored.TokenIDsOf(testBuyer2))
	requireLedgerInvariant(t, restored)
}

func TestRestoreRejectsCorruptState(t *testing.T) {
	m, _ := newTestEngine(t)
	snap := m.Snapshot()

	err := m.Restore(snap, nil, nil)
	assert.Error(t, err)

	snap.TotalMinted = 3
	err = m.Restore(snap, m.Drops(), nil)
	assert.True(t, errors.Is(err, errs.InternalError))
}
