package minter

import (
	"sort"
	"sync"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/gaze-network/uint128"
	"github.com/samber/lo"
	"github.com/wrightcode/ladybugs/common/errs"
	"github.com/wrightcode/ladybugs/modules/minter/internal/entity"
)

// Minter is the drop scheduler and supply ledger: four sequential sale tiers
// over a fixed token supply, plus ownership index, royalty registry and
// treasury. All mutating operations validate fully before touching state and
// run under one mutex, so a status check and its consequent mutation can
// never interleave with another caller.
//
// Time is read exactly once per operation via the now func.
type Minter struct {
	mu  sync.Mutex
	now func() time.Time

	owner        string
	totalSupply  uint64
	reserved     uint64
	initialPrice uint128.Uint128

	initialized    bool
	drops          [DropCount]entity.Drop
	totalMinted    uint64
	reservedMinted uint64
	acquisitions   uint64

	ownerOf  []string // token id -> holder, "" while unminted
	approved map[uint64]string
	holdings map[string][]uint64 // holder -> token ids in acquisition order
	mintedAt []time.Time
	rankOf   []uint64
	royalty  entity.RoyaltyConfig
	treasury uint128.Uint128
}

// Options fixes the collection parameters at construction.
type Options struct {
	Owner        string
	TotalSupply  uint64
	Reserved     uint64
	InitialPrice uint128.Uint128
	Now          func() time.Time
}

// New validates the collection parameters and allocates the four empty
// drops. The sellable supply (total minus reserved) must divide evenly by
// the drop count; there is no remainder-assignment rule.
func New(opts Options) (*Minter, error) {
	if opts.Owner == "" {
		return nil, errors.Wrap(errs.InvalidArgument, "owner address is required")
	}
	if opts.TotalSupply == 0 {
		return nil, errors.Wrap(errs.InvalidArgument, "total supply must be positive")
	}
	if opts.Reserved >= opts.TotalSupply {
		return nil, errors.Wrap(errs.InvalidArgument, "reserved allocation must be smaller than total supply")
	}
	sellable := opts.TotalSupply - opts.Reserved
	if sellable%DropCount != 0 {
		return nil, errors.Wrapf(errs.InvalidArgument, "sellable supply %d does not divide evenly into %d drops", sellable, DropCount)
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	m := &Minter{
		now:          opts.Now,
		owner:        opts.Owner,
		totalSupply:  opts.TotalSupply,
		reserved:     opts.Reserved,
		initialPrice: opts.InitialPrice,
		ownerOf:      make([]string, opts.TotalSupply),
		approved:     make(map[uint64]string),
		holdings:     make(map[string][]uint64),
		mintedAt:     make([]time.Time, opts.TotalSupply),
		rankOf:       make([]uint64, opts.TotalSupply),
		royalty: entity.RoyaltyConfig{
			Receiver:    opts.Owner,
			BasisPoints: DefaultRoyaltyBasis,
		},
	}
	perDrop := sellable / DropCount
	for i := range m.drops {
		m.drops[i] = entity.Drop{Index: i, Allocated: perDrop}
	}
	return m, nil
}

// Initialize pre-mints the reserved allocation to the owner and puts the
// first drop on sale immediately. One-time, owner-only.
func (m *Minter) Initialize(caller string) ([]entity.Token, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := m.now()

	if caller != m.owner {
		return nil, errors.Wrap(errs.Unauthorized, "initialize is owner-only")
	}
	if m.initialized {
		return nil, errors.WithStack(errs.AlreadyInitialized)
	}

	minted := make([]entity.Token, 0, m.reserved)
	for i := uint64(0); i < m.reserved; i++ {
		minted = append(minted, m.assign(m.owner, now))
	}
	m.reservedMinted = m.reserved

	first := &m.drops[0]
	first.StartDate = now
	first.PriceDate = now
	if first.PriceWei.IsZero() {
		first.PriceWei = m.initialPrice
	}
	m.initialized = true
	return minted, nil
}

// Mint sells one token from the currently active drop. Self-service only:
// the caller must be the buyer. Overpayment is accepted and kept.
func (m *Minter) Mint(buyer, caller string, payment uint128.Uint128) (entity.Token, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := m.now()

	if caller != buyer {
		return entity.Token{}, errors.Wrap(errs.Unauthorized, "caller must be the buyer")
	}
	st := m.status(now)
	if !st.Active {
		return entity.Token{}, errors.WithStack(errs.NoActiveDrop)
	}
	drop := &m.drops[st.CurrentIndex]
	if payment.Cmp(drop.PriceWei) < 0 {
		return entity.Token{}, errors.Wrapf(errs.InsufficientPayment, "drop %d price is %s wei", drop.Index, drop.PriceWei)
	}

	token := m.assign(buyer, now)
	drop.Minted++
	m.treasury = m.treasury.Add(payment)
	return token, nil
}

// assign mints the next unused token id to holder. Callers hold the lock and
// have validated that supply remains.
func (m *Minter) assign(holder string, now time.Time) entity.Token {
	id := m.totalMinted
	m.totalMinted++
	m.acquisitions++
	m.ownerOf[id] = holder
	m.holdings[holder] = append(m.holdings[holder], id)
	m.mintedAt[id] = now
	m.rankOf[id] = m.acquisitions
	return entity.Token{
		ID:           id,
		Owner:        holder,
		MintedAt:     now,
		AcquiredRank: m.acquisitions,
	}
}

// Approve lets the current owner of a token authorize one other address to
// transfer it. Mirrors the token standard's approve at the interface
// boundary; the engine only tracks it to validate transfer ingestion.
func (m *Minter) Approve(spender string, tokenID uint64, caller string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if tokenID >= m.totalMinted {
		return errors.Wrapf(errs.NotFound, "token %d is not minted", tokenID)
	}
	if m.ownerOf[tokenID] != caller {
		return errors.Wrap(errs.Unauthorized, "only the token owner can approve")
	}
	m.approved[tokenID] = spender
	return nil
}

// ApplyTransfer ingests an ownership transfer committed by the token
// standard collaborator, keeping the ownership index consistent. The caller
// must be the current owner or the approved address for the token.
func (m *Minter) ApplyTransfer(from, to string, tokenID uint64, caller string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if tokenID >= m.totalMinted {
		return errors.Wrapf(errs.NotFound, "token %d is not minted", tokenID)
	}
	if m.ownerOf[tokenID] != from {
		return errors.Wrapf(errs.InvalidArgument, "token %d is not held by %s", tokenID, from)
	}
	if to == "" {
		return errors.Wrap(errs.InvalidArgument, "transfer target is required")
	}
	if caller != from && caller != m.approved[tokenID] {
		return errors.Wrap(errs.Unauthorized, "caller is neither owner nor approved")
	}

	m.holdings[from] = lo.Without(m.holdings[from], tokenID)
	m.holdings[to] = append(m.holdings[to], tokenID)
	m.ownerOf[tokenID] = to
	m.acquisitions++
	m.rankOf[tokenID] = m.acquisitions
	delete(m.approved, tokenID)
	return nil
}

// Owner returns the administrative owner address.
func (m *Minter) Owner() string {
	return m.owner
}

// Initialized reports whether the one-time initialization has run.
func (m *Minter) Initialized() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.initialized
}

// TotalSupply returns the fixed collection size.
func (m *Minter) TotalSupply() uint64 {
	return m.totalSupply
}

// TotalMinted returns how many tokens exist so far.
func (m *Minter) TotalMinted() uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.totalMinted
}

// Unminted returns how many tokens remain to be minted.
func (m *Minter) Unminted() uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.totalSupply - m.totalMinted
}

// TokensPerDrop returns the per-drop allocation.
func (m *Minter) TokensPerDrop() uint64 {
	return m.drops[0].Allocated
}

// BalanceOf returns how many tokens the holder owns.
func (m *Minter) BalanceOf(holder string) uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return uint64(len(m.holdings[holder]))
}

// TokenIDsOf returns the holder's token ids in acquisition order.
func (m *Minter) TokenIDsOf(holder string) []uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	ids := make([]uint64, len(m.holdings[holder]))
	copy(ids, m.holdings[holder])
	return ids
}

// OwnerOf returns the current holder of a token.
func (m *Minter) OwnerOf(tokenID uint64) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if tokenID >= m.totalMinted {
		return "", errors.Wrapf(errs.NotFound, "token %d is not minted", tokenID)
	}
	return m.ownerOf[tokenID], nil
}

// Token returns the current record of a minted token.
func (m *Minter) Token(tokenID uint64) (entity.Token, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if tokenID >= m.totalMinted {
		return entity.Token{}, errors.Wrapf(errs.NotFound, "token %d is not minted", tokenID)
	}
	return entity.Token{
		ID:           tokenID,
		Owner:        m.ownerOf[tokenID],
		Approved:     m.approved[tokenID],
		MintedAt:     m.mintedAt[tokenID],
		AcquiredRank: m.rankOf[tokenID],
	}, nil
}

// Snapshot returns the persisted-state view of the ledger counters.
func (m *Minter) Snapshot() entity.StateSnapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	return entity.StateSnapshot{
		Initialized:    m.initialized,
		TotalMinted:    m.totalMinted,
		ReservedMinted: m.reservedMinted,
		Acquisitions:   m.acquisitions,
		TreasuryWei:    m.treasury,
		Royalty:        m.royalty,
		UpdatedAt:      m.now(),
	}
}

// Tokens returns every minted token.
func (m *Minter) Tokens() []entity.Token {
	m.mu.Lock()
	defer m.mu.Unlock()
	tokens := make([]entity.Token, 0, m.totalMinted)
	for id := uint64(0); id < m.totalMinted; id++ {
		tokens = append(tokens, entity.Token{
			ID:           id,
			Owner:        m.ownerOf[id],
			Approved:     m.approved[id],
			MintedAt:     m.mintedAt[id],
			AcquiredRank: m.rankOf[id],
		})
	}
	return tokens
}

// Restore rebuilds the in-memory ledger from a persisted snapshot. Runs at
// startup before the engine is shared, and rolls the engine back when a
// write-through fails.
func (m *Minter) Restore(snap entity.StateSnapshot, drops []entity.Drop, tokens []entity.Token) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(drops) != DropCount {
		return errors.Wrapf(errs.InternalError, "expected %d persisted drops, got %d", DropCount, len(drops))
	}
	if uint64(len(tokens)) != snap.TotalMinted {
		return errors.Wrapf(errs.InternalError, "persisted %d tokens but snapshot counts %d minted", len(tokens), snap.TotalMinted)
	}
	for _, d := range drops {
		if d.Index < 0 || d.Index >= DropCount {
			return errors.Wrapf(errs.InternalError, "persisted drop index %d out of range", d.Index)
		}
		m.drops[d.Index] = d
	}

	m.initialized = snap.Initialized
	m.totalMinted = snap.TotalMinted
	m.reservedMinted = snap.ReservedMinted
	m.acquisitions = snap.Acquisitions
	m.treasury = snap.TreasuryWei
	m.royalty = snap.Royalty

	m.ownerOf = make([]string, m.totalSupply)
	m.approved = make(map[uint64]string)
	m.holdings = make(map[string][]uint64)
	m.mintedAt = make([]time.Time, m.totalSupply)
	m.rankOf = make([]uint64, m.totalSupply)

	ordered := make([]entity.Token, len(tokens))
	copy(ordered, tokens)
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].AcquiredRank < ordered[j].AcquiredRank })
	for _, t := range ordered {
		if t.ID >= m.totalSupply {
			return errors.Wrapf(errs.InternalError, "persisted token id %d out of range", t.ID)
		}
		m.ownerOf[t.ID] = t.Owner
		m.holdings[t.Owner] = append(m.holdings[t.Owner], t.ID)
		m.mintedAt[t.ID] = t.MintedAt
		m.rankOf[t.ID] = t.AcquiredRank
		if t.Approved != "" {
			m.approved[t.ID] = t.Approved
		}
	}
	return nil
}
