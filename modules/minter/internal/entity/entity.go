package entity

import (
	"time"

	"github.com/gaze-network/uint128"
)

// Drop is one of the four fixed sale tiers. StartDate and PriceDate are zero
// until the drop is scheduled.
type Drop struct {
	Index     int
	PriceWei  uint128.Uint128
	StartDate time.Time
	PriceDate time.Time
	Allocated uint64
	Minted    uint64
}

// Started reports whether the drop's start date has passed as of now.
// A zero start date means the drop is unscheduled.
func (d Drop) Started(now time.Time) bool {
	return !d.StartDate.IsZero() && !d.StartDate.After(now)
}

// SoldOut reports whether every allocated unit has been minted.
func (d Drop) SoldOut() bool {
	return d.Minted >= d.Allocated
}

// Token is a single minted item. AcquiredRank is a global monotonic counter
// stamped on every assignment, so per-holder enumeration can reproduce
// acquisition order after a reload.
type Token struct {
	ID           uint64
	Owner        string
	Approved     string
	MintedAt     time.Time
	AcquiredRank uint64
}

// DropStatus is the scheduler's derived view. Never stored.
type DropStatus struct {
	CurrentIndex int
	Active       bool
	Complete     bool
	AsOf         time.Time
}

// RoyaltyConfig is the advertised royalty: receiver plus rate in basis
// points (10000 = 100%).
type RoyaltyConfig struct {
	Receiver    string
	BasisPoints uint16
}

// StateSnapshot is the persisted singleton row backing the supply ledger and
// treasury counters.
type StateSnapshot struct {
	Initialized    bool
	TotalMinted    uint64
	ReservedMinted uint64
	Acquisitions   uint64
	TreasuryWei    uint128.Uint128
	Royalty        RoyaltyConfig
	UpdatedAt      time.Time
}

type EventType string

const (
	EventInitialize  = EventType("initialize")
	EventMint        = EventType("mint")
	EventDropUpdate  = EventType("drop_update")
	EventPriceChange = EventType("price_change")
	EventRemediation = EventType("stalled_remediation")
	EventRoyalty     = EventType("royalty_update")
	EventWithdrawal  = EventType("withdrawal")
	EventTransfer    = EventType("transfer")
	EventApproval    = EventType("approval")
)

// MinterEvent is one row of the persisted mutation log. Sequence is assigned
// by the database.
type MinterEvent struct {
	Sequence   int64
	Type       EventType
	Actor      string
	TokenID    *uint64
	DropIndex  *int
	AmountWei  *uint128.Uint128
	OccurredAt time.Time
}
