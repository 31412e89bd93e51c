package minter

import (
	"time"

	"github.com/cockroachdb/errors"
	"github.com/gaze-network/uint128"
	"github.com/wrightcode/ladybugs/common/errs"
	"github.com/wrightcode/ladybugs/modules/minter/internal/entity"
)

// UpdateDrop schedules a future drop: sets its price and start date in one
// edit. Owner-only. A drop that has already started is frozen, the new date
// needs at least MinScheduleLead of notice, and drops staged back-to-back
// must keep their index order on the calendar. The price is considered fresh
// as of the scheduled start.
func (m *Minter) UpdateDrop(index int, price uint128.Uint128, startDate time.Time, caller string) (entity.Drop, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := m.now()

	if caller != m.owner {
		return entity.Drop{}, errors.Wrap(errs.Unauthorized, "drop updates are owner-only")
	}
	if index < 0 || index >= DropCount {
		return entity.Drop{}, errors.Wrapf(errs.InvalidArgument, "drop index %d out of range", index)
	}
	drop := &m.drops[index]
	if drop.Started(now) {
		return entity.Drop{}, errors.Wrapf(errs.InvalidTransition, "drop %d has already started", index)
	}
	newStart := startDate.UTC()
	if newStart.Before(now.Add(MinScheduleLead)) {
		return entity.Drop{}, errors.Wrapf(errs.InvalidTransition, "start date must be at least %s out", MinScheduleLead)
	}
	if index > 0 {
		prev := m.drops[index-1].StartDate
		if !prev.IsZero() && newStart.Before(prev) {
			return entity.Drop{}, errors.Wrapf(errs.InvalidTransition, "drop %d cannot start before drop %d", index, index-1)
		}
	}

	drop.PriceWei = price
	drop.StartDate = newStart
	drop.PriceDate = newStart
	return *drop, nil
}

// DropPrice adjusts the price of a drop that has not sold out, active ones
// included. This is the live lever for an under-selling drop; it carries no
// lead-time restriction but restamps the price-change date, which feeds the
// stalled-remediation cooldown.
func (m *Minter) DropPrice(index int, price uint128.Uint128, caller string) (entity.Drop, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := m.now()

	if caller != m.owner {
		return entity.Drop{}, errors.Wrap(errs.Unauthorized, "price adjustments are owner-only")
	}
	if index < 0 || index >= DropCount {
		return entity.Drop{}, errors.Wrapf(errs.InvalidArgument, "drop index %d out of range", index)
	}
	drop := &m.drops[index]
	if drop.SoldOut() {
		return entity.Drop{}, errors.Wrapf(errs.InvalidTransition, "drop %d is already complete", index)
	}

	drop.PriceWei = price
	drop.PriceDate = now
	return *drop, nil
}
