package minter

import (
	"github.com/cockroachdb/errors"
	"github.com/gaze-network/uint128"
	"github.com/wrightcode/ladybugs/common/errs"
)

// TreasuryBalance returns the pooled payment balance.
func (m *Minter) TreasuryBalance() uint128.Uint128 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.treasury
}

// Withdraw moves part of the treasury to the owner's external account.
// Owner-only; fails if the amount exceeds the balance.
func (m *Minter) Withdraw(amount uint128.Uint128, caller string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if caller != m.owner {
		return errors.Wrap(errs.Unauthorized, "withdrawals are owner-only")
	}
	if amount.Cmp(m.treasury) > 0 {
		return errors.Wrapf(errs.InsufficientFunds, "treasury holds %s wei", m.treasury)
	}

	m.treasury = m.treasury.Sub(amount)
	return nil
}

// WithdrawAll empties the treasury to the owner's external account and
// returns the amount moved.
func (m *Minter) WithdrawAll(caller string) (uint128.Uint128, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if caller != m.owner {
		return uint128.Zero, errors.Wrap(errs.Unauthorized, "withdrawals are owner-only")
	}

	amount := m.treasury
	m.treasury = uint128.Zero
	return amount, nil
}
