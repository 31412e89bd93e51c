package minter

import (
	"time"

	"github.com/wrightcode/ladybugs/modules/minter/internal/entity"
)

// Status derives the scheduler's view of the drops at this instant. The
// current index is always the lowest drop that has not sold out: a drop
// whose start date has passed but still has unsold units blocks every later
// drop, no matter how overdue their dates are.
func (m *Minter) Status() entity.DropStatus {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.status(m.now())
}

// status is the lock-held walk shared by every operation that needs the
// current drop. now is the single time read of the calling operation.
func (m *Minter) status(now time.Time) entity.DropStatus {
	for i := range m.drops {
		drop := &m.drops[i]
		if !drop.SoldOut() {
			return entity.DropStatus{
				CurrentIndex: i,
				Active:       drop.Started(now),
				AsOf:         now,
			}
		}
	}
	return entity.DropStatus{
		CurrentIndex: DropCount - 1,
		Complete:     true,
		AsOf:         now,
	}
}

// Drops returns a snapshot of all four drops in index order.
func (m *Minter) Drops() []entity.Drop {
	m.mu.Lock()
	defer m.mu.Unlock()
	drops := make([]entity.Drop, DropCount)
	copy(drops, m.drops[:])
	return drops
}
