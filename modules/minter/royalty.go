package minter

import (
	"github.com/cockroachdb/errors"
	"github.com/gaze-network/uint128"
	"github.com/wrightcode/ladybugs/common/errs"
	"github.com/wrightcode/ladybugs/modules/minter/internal/entity"
)

// SetRoyaltyInfo updates the advertised royalty receiver and rate.
// Owner-only; the rate is capped at MaxRoyaltyBasis.
func (m *Minter) SetRoyaltyInfo(receiver string, basisPoints uint16, caller string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if caller != m.owner {
		return errors.Wrap(errs.Unauthorized, "royalty config is owner-only")
	}
	if receiver == "" {
		return errors.Wrap(errs.InvalidArgument, "royalty receiver is required")
	}
	if basisPoints > MaxRoyaltyBasis {
		return errors.Wrapf(errs.InvalidRate, "%d basis points exceeds the %d ceiling", basisPoints, MaxRoyaltyBasis)
	}

	m.royalty = entity.RoyaltyConfig{Receiver: receiver, BasisPoints: basisPoints}
	return nil
}

// RoyaltyConfig returns the current receiver and rate.
func (m *Minter) RoyaltyConfig() entity.RoyaltyConfig {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.royalty
}

// RoyaltyInfo computes the royalty owed on a sale. The rate is global, so
// the token id does not affect the amount; it is accepted to match the
// token-standard royalty query shape. Integer floor division: the royalty
// on salePrice is salePrice * basis / 10000, rounded down.
func (m *Minter) RoyaltyInfo(tokenID uint64, salePrice uint128.Uint128) (receiver string, amount uint128.Uint128) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_ = tokenID
	basis := uint128.From64(uint64(m.royalty.BasisPoints))
	product, overflow := salePrice.MulOverflow(basis)
	if overflow {
		// salePrice*basis exceeds 128 bits even though the royalty itself
		// fits. Divide first: salePrice*basis/10000 equals
		// quotient*basis + remainder*basis/10000.
		quotient, remainder := salePrice.QuoRem64(royaltyDenominator)
		amount = quotient.Mul(basis).Add64(remainder * uint64(m.royalty.BasisPoints) / royaltyDenominator)
		return m.royalty.Receiver, amount
	}
	return m.royalty.Receiver, product.Div64(royaltyDenominator)
}
