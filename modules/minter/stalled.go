package minter

import (
	"github.com/cockroachdb/errors"
	"github.com/wrightcode/ladybugs/common/errs"
	"github.com/wrightcode/ladybugs/modules/minter/internal/entity"
)

// MintStalledDropToOwner force-completes the current drop by minting every
// remaining unit to the owner. Owner-only, and only for a drop that is
// genuinely abandoned: on sale for at least StallAge, price untouched for at
// least PriceCooldown, and priced at or below StallPriceCeiling. The
// cooldown blocks the obvious gaming move of cutting the price right before
// reclaiming; the ceiling keeps remediation to cheap drops the market
// actually rejected.
func (m *Minter) MintStalledDropToOwner(caller string) ([]entity.Token, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := m.now()

	if caller != m.owner {
		return nil, errors.Wrap(errs.Unauthorized, "stalled remediation is owner-only")
	}
	st := m.status(now)
	if st.Complete {
		return nil, errors.Wrap(errs.NotStalled, "all drops are complete")
	}
	drop := &m.drops[st.CurrentIndex]
	if !drop.Started(now) {
		return nil, errors.Wrapf(errs.NotStalled, "drop %d has not started", drop.Index)
	}
	if now.Sub(drop.StartDate) < StallAge {
		return nil, errors.Wrapf(errs.NotStalled, "drop %d has been on sale less than %s", drop.Index, StallAge)
	}
	if now.Sub(drop.PriceDate) < PriceCooldown {
		return nil, errors.Wrapf(errs.NotStalled, "drop %d price changed less than %s ago", drop.Index, PriceCooldown)
	}
	if drop.PriceWei.Cmp(StallPriceCeiling) > 0 {
		return nil, errors.Wrapf(errs.NotStalled, "drop %d price %s wei exceeds the stall ceiling", drop.Index, drop.PriceWei)
	}

	remaining := drop.Allocated - drop.Minted
	minted := make([]entity.Token, 0, remaining)
	for i := uint64(0); i < remaining; i++ {
		minted = append(minted, m.assign(m.owner, now))
	}
	drop.Minted = drop.Allocated
	return minted, nil
}
