package config

import (
	"testing"

	"github.com/gaze-network/uint128"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitialPriceWei(t *testing.T) {
	testcases := []struct {
		name        string
		price       string
		expected    uint128.Uint128
		shouldError bool
	}{
		{name: "empty defaults to zero", price: "", expected: uint128.Zero},
		{name: "whole eth", price: "1", expected: uint128.From64(1_000_000_000_000_000_000)},
		{name: "fractional eth", price: "0.01", expected: uint128.From64(10_000_000_000_000_000)},
		{name: "single wei", price: "0.000000000000000001", expected: uint128.From64(1)},
		{name: "sub-wei precision", price: "0.0000000000000000001", shouldError: true},
		{name: "negative", price: "-0.01", shouldError: true},
		{name: "not a number", price: "abc", shouldError: true},
	}

	for _, tc := range testcases {
		t.Run(tc.name, func(t *testing.T) {
			conf := Config{InitialPrice: tc.price}
			wei, err := conf.InitialPriceWei()
			if tc.shouldError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expected, wei)
		})
	}
}
