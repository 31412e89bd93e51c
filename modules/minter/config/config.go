package config

import (
	"github.com/cockroachdb/errors"
	"github.com/gaze-network/uint128"
	"github.com/shopspring/decimal"
	"github.com/wrightcode/ladybugs/common/errs"
	"github.com/wrightcode/ladybugs/internal/postgres"
)

type Config struct {
	Postgres postgres.Config `mapstructure:"postgres"`

	// Owner is the address with administrative privilege over the drops,
	// royalty config and treasury.
	Owner string `mapstructure:"owner"`

	// TotalSupply is the fixed collection size.
	TotalSupply uint64 `mapstructure:"total_supply"`

	// Reserved is the number of tokens pre-minted to the owner at
	// initialization, before any public sale.
	Reserved uint64 `mapstructure:"reserved"`

	// InitialPrice is the price of the first drop in ETH, e.g. "0.01".
	// The first drop activates at initialization and is frozen for schedule
	// edits afterwards, so its price has to be known up front.
	InitialPrice string `mapstructure:"initial_price"`
}

var weiPerEth = decimal.New(1, 18)

// InitialPriceWei converts the configured ETH price to wei.
func (c Config) InitialPriceWei() (uint128.Uint128, error) {
	if c.InitialPrice == "" {
		return uint128.Zero, nil
	}
	eth, err := decimal.NewFromString(c.InitialPrice)
	if err != nil {
		return uint128.Zero, errors.Wrapf(errs.InvalidArgument, "invalid initial_price %q", c.InitialPrice)
	}
	wei := eth.Mul(weiPerEth)
	if wei.IsNegative() || !wei.Equal(wei.Truncate(0)) {
		return uint128.Zero, errors.Wrapf(errs.InvalidArgument, "initial_price %q is not a whole number of wei", c.InitialPrice)
	}
	result, err := uint128.FromString(wei.String())
	if err != nil {
		return uint128.Zero, errors.Wrapf(errs.InvalidArgument, "initial_price %q out of range", c.InitialPrice)
	}
	return result, nil
}
