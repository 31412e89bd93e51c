package postgres

import (
	"testing"

	"github.com/gaze-network/uint128"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNumericUint128Conversion(t *testing.T) {
	values := []uint128.Uint128{
		uint128.Zero,
		uint128.From64(1),
		uint128.From64(10_000_000_000_000_000), // 0.01 ETH in wei
		uint128.Max,
	}

	for _, value := range values {
		t.Run(value.String(), func(t *testing.T) {
			numeric, err := numericFromUint128(&value)
			require.NoError(t, err)
			parsed, err := uint128FromNumeric(numeric)
			require.NoError(t, err)
			require.NotNil(t, parsed)
			assert.Equal(t, value, *parsed)
		})
	}
}

func TestNumericUint128ConversionNil(t *testing.T) {
	numeric, err := numericFromUint128(nil)
	require.NoError(t, err)
	assert.False(t, numeric.Valid)

	parsed, err := uint128FromNumeric(numeric)
	require.NoError(t, err)
	assert.Nil(t, parsed)
}
