package minter

import (
	"testing"

	"github.com/gaze-network/uint128"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wrightcode/ladybugs/common/errs"
	"github.com/wrightcode/ladybugs/modules/minter/internal/entity"
)

func TestRoyalty(t *testing.T) {
	t.Run("defaults to owner at 2.5%", func(t *testing.T) {
		m, _ := newTestEngine(t)
		config := m.RoyaltyConfig()
		assert.Equal(t, entity.RoyaltyConfig{Receiver: testOwner, BasisPoints: DefaultRoyaltyBasis}, config)
	})

	t.Run("set royalty info", func(t *testing.T) {
		m, _ := newTestEngine(t)
		require.NoError(t, m.SetRoyaltyInfo("0xARTIST", 400, testOwner))
		config := m.RoyaltyConfig()
		assert.Equal(t, "0xARTIST", config.Receiver)
		assert.Equal(t, uint16(400), config.BasisPoints)
	})

	t.Run("owner only", func(t *testing.T) {
		m, _ := newTestEngine(t)
		err := m.SetRoyaltyInfo("0xARTIST", 100, testBuyer)
		assert.ErrorIs(t, err, errs.Unauthorized)
	})

	t.Run("receiver required", func(t *testing.T) {
		m, _ := newTestEngine(t)
		err := m.SetRoyaltyInfo("", 100, testOwner)
		assert.ErrorIs(t, err, errs.InvalidArgument)
	})

	t.Run("rate capped", func(t *testing.T) {
		m, _ := newTestEngine(t)
		err := m.SetRoyaltyInfo("0xARTIST", MaxRoyaltyBasis+1, testOwner)
		assert.ErrorIs(t, err, errs.InvalidRate)
	})
}

func TestRoyaltyInfo(t *testing.T) {
	testcases := []struct {
		name        string
		basisPoints uint16
		salePrice   uint64
		expected    uint64
	}{
		{name: "default rate", basisPoints: DefaultRoyaltyBasis, salePrice: 10_000, expected: 250},
		{name: "floors fractional wei", basisPoints: DefaultRoyaltyBasis, salePrice: 199, expected: 4}, // 199*250/10000 = 4.975
		{name: "max rate", basisPoints: MaxRoyaltyBasis, salePrice: 1_000_000, expected: 40_000},
		{name: "zero rate", basisPoints: 0, salePrice: 1_000_000, expected: 0},
		{name: "tiny sale rounds to zero", basisPoints: DefaultRoyaltyBasis, salePrice: 39, expected: 0},
	}

	for _, tc := range testcases {
		t.Run(tc.name, func(t *testing.T) {
			m, _ := newTestEngine(t)
			if tc.basisPoints != DefaultRoyaltyBasis {
				require.NoError(t, m.SetRoyaltyInfo(testOwner, tc.basisPoints, testOwner))
			}
			receiver, amount := m.RoyaltyInfo(0, uint128.From64(tc.salePrice))
			assert.Equal(t, testOwner, receiver)
			assert.Equal(t, uint128.From64(tc.expected), amount)
		})
	}

	t.Run("sale price beyond the multiply range", func(t *testing.T) {
		m, _ := newTestEngine(t)
		receiver, amount := m.RoyaltyInfo(0, uint128.Max)
		assert.Equal(t, testOwner, receiver)
		// 250/10000 reduces to 1/40, so the floor is Max/40
		expected, _ := uint128.Max.QuoRem64(40)
		assert.Equal(t, expected, amount)
	})
}
