package minter

import (
	"time"

	"github.com/gaze-network/uint128"
)

const Version = "v0.2.0"

const (
	// DropCount is the number of sequential drops a collection is split into.
	DropCount = 4

	// MinScheduleLead is the minimum notice required when scheduling or
	// rescheduling a drop that has not started yet.
	MinScheduleLead = 2 * time.Hour

	// StallAge is how long a drop must have been on sale before it can be
	// force-completed to the owner.
	StallAge = 30 * 24 * time.Hour

	// PriceCooldown is how long the price must have been unchanged before
	// stalled remediation. Guards against dropping the price right before
	// reclaiming the remaining supply.
	PriceCooldown = 14 * 24 * time.Hour

	// MaxRoyaltyBasis is the hard ceiling for the royalty rate.
	MaxRoyaltyBasis = 400

	// DefaultRoyaltyBasis is the royalty rate configured at construction.
	DefaultRoyaltyBasis = 250

	royaltyDenominator = 10_000
)

// StallPriceCeiling is the highest drop price eligible for stalled
// remediation: 0.01 ETH in wei. A protocol constant, deliberately not
// configurable.
var StallPriceCeiling = uint128.From64(10_000_000_000_000_000)
