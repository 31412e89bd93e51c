package minter

import (
	"context"
	"sync"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/gaze-network/uint128"
	"github.com/wrightcode/ladybugs/common/errs"
	"github.com/wrightcode/ladybugs/modules/minter/datagateway"
	"github.com/wrightcode/ladybugs/modules/minter/internal/entity"
	"github.com/wrightcode/ladybugs/pkg/logger"
	"github.com/wrightcode/ladybugs/pkg/logger/slogx"
)

// Service pairs the in-memory engine with durable storage. The engine is
// authoritative while the process runs; every mutation is written through to
// the database in one transaction so a restart can rebuild the exact ledger.
// The mutex serializes each engine mutation with its write-through, so
// snapshots reach the database in mutation order and a failed write can
// undo the mutation before another caller observes it.
type Service struct {
	mu     sync.Mutex
	engine *Minter
	dg     datagateway.MinterDataGateway
}

func NewService(engine *Minter, dg datagateway.MinterDataGateway) *Service {
	return &Service{
		engine: engine,
		dg:     dg,
	}
}

// Load hydrates the engine from the database, or seeds the database from a
// fresh engine when no state row exists yet. Must run before the service is
// shared.
func (s *Service) Load(ctx context.Context) error {
	state, err := s.dg.GetState(ctx)
	if err != nil {
		if !errors.Is(err, errs.NotFound) {
			return errors.Wrap(err, "failed to load minter state")
		}
		logger.InfoContext(ctx, "No persisted minter state, seeding database")
		return errors.WithStack(s.seed(ctx))
	}

	drops, err := s.dg.GetDrops(ctx)
	if err != nil {
		return errors.Wrap(err, "failed to load drops")
	}
	tokens, err := s.dg.GetTokens(ctx)
	if err != nil {
		return errors.Wrap(err, "failed to load tokens")
	}
	if err := s.engine.Restore(*state, drops, tokens); err != nil {
		return errors.Wrap(err, "failed to restore engine state")
	}
	logger.InfoContext(ctx, "Restored minter state",
		slogx.Uint64("totalMinted", state.TotalMinted),
		slogx.Bool("initialized", state.Initialized),
	)
	return nil
}

func (s *Service) seed(ctx context.Context) error {
	tx, err := s.dg.BeginMinterTx(ctx)
	if err != nil {
		return errors.Wrap(err, "failed to begin transaction")
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := tx.SaveState(ctx, s.engine.Snapshot()); err != nil {
		return errors.Wrap(err, "failed to seed state")
	}
	for _, drop := range s.engine.Drops() {
		if err := tx.SaveDrop(ctx, drop); err != nil {
			return errors.Wrap(err, "failed to seed drop")
		}
	}
	if err := tx.Commit(ctx); err != nil {
		return errors.Wrap(err, "failed to commit transaction")
	}
	return nil
}

// checkpoint captures the full engine state ahead of a mutation so a failed
// write-through can be undone before the service lock is released.
type checkpoint struct {
	state  entity.StateSnapshot
	drops  []entity.Drop
	tokens []entity.Token
}

func (s *Service) checkpoint() checkpoint {
	return checkpoint{
		state:  s.engine.Snapshot(),
		drops:  s.engine.Drops(),
		tokens: s.engine.Tokens(),
	}
}

func (s *Service) revert(ctx context.Context, cp checkpoint) {
	if err := s.engine.Restore(cp.state, cp.drops, cp.tokens); err != nil {
		logger.ErrorContext(ctx, "Failed to revert engine after write failure", slogx.Error(err))
	}
}

// persist writes the current engine snapshot, the given event and any
// per-operation rows in one transaction. Callers hold s.mu.
func (s *Service) persist(ctx context.Context, event entity.MinterEvent, fn func(ctx context.Context, tx datagateway.MinterDataGateway) error) error {
	snapshot := s.engine.Snapshot()
	if event.OccurredAt.IsZero() {
		event.OccurredAt = snapshot.UpdatedAt
	}

	tx, err := s.dg.BeginMinterTx(ctx)
	if err != nil {
		return errors.Wrap(err, "failed to begin transaction")
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if fn != nil {
		if err := fn(ctx, tx); err != nil {
			return errors.WithStack(err)
		}
	}
	if err := tx.SaveState(ctx, snapshot); err != nil {
		return errors.Wrap(err, "failed to save state")
	}
	if err := tx.CreateEvent(ctx, event); err != nil {
		return errors.Wrap(err, "failed to record event")
	}
	if err := tx.Commit(ctx); err != nil {
		return errors.Wrap(err, "failed to commit transaction")
	}
	return nil
}

func saveDrops(ctx context.Context, tx datagateway.MinterDataGateway, drops []entity.Drop) error {
	for _, drop := range drops {
		if err := tx.SaveDrop(ctx, drop); err != nil {
			return errors.Wrap(err, "failed to save drop")
		}
	}
	return nil
}

func (s *Service) Initialize(ctx context.Context, caller string) ([]entity.Token, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := s.checkpoint()

	minted, err := s.engine.Initialize(caller)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	event := entity.MinterEvent{Type: entity.EventInitialize, Actor: caller}
	err = s.persist(ctx, event, func(ctx context.Context, tx datagateway.MinterDataGateway) error {
		for _, token := range minted {
			if err := tx.CreateToken(ctx, token); err != nil {
				return errors.Wrap(err, "failed to save premint token")
			}
		}
		return saveDrops(ctx, tx, s.engine.Drops())
	})
	if err != nil {
		s.revert(ctx, cp)
		return nil, errors.WithStack(err)
	}
	return minted, nil
}

func (s *Service) Mint(ctx context.Context, buyer, caller string, payment uint128.Uint128) (entity.Token, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := s.checkpoint()

	token, err := s.engine.Mint(buyer, caller, payment)
	if err != nil {
		return entity.Token{}, errors.WithStack(err)
	}
	event := entity.MinterEvent{
		Type:      entity.EventMint,
		Actor:     buyer,
		TokenID:   &token.ID,
		AmountWei: &payment,
	}
	err = s.persist(ctx, event, func(ctx context.Context, tx datagateway.MinterDataGateway) error {
		if err := tx.CreateToken(ctx, token); err != nil {
			return errors.Wrap(err, "failed to save token")
		}
		return saveDrops(ctx, tx, s.engine.Drops())
	})
	if err != nil {
		s.revert(ctx, cp)
		return entity.Token{}, errors.WithStack(err)
	}
	return token, nil
}

func (s *Service) UpdateDrop(ctx context.Context, index int, price uint128.Uint128, startDate time.Time, caller string) (entity.Drop, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := s.checkpoint()

	drop, err := s.engine.UpdateDrop(index, price, startDate, caller)
	if err != nil {
		return entity.Drop{}, errors.WithStack(err)
	}
	event := entity.MinterEvent{
		Type:      entity.EventDropUpdate,
		Actor:     caller,
		DropIndex: &drop.Index,
		AmountWei: &price,
	}
	err = s.persist(ctx, event, func(ctx context.Context, tx datagateway.MinterDataGateway) error {
		return errors.WithStack(tx.SaveDrop(ctx, drop))
	})
	if err != nil {
		s.revert(ctx, cp)
		return entity.Drop{}, errors.WithStack(err)
	}
	return drop, nil
}

func (s *Service) SetDropPrice(ctx context.Context, index int, price uint128.Uint128, caller string) (entity.Drop, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := s.checkpoint()

	drop, err := s.engine.DropPrice(index, price, caller)
	if err != nil {
		return entity.Drop{}, errors.WithStack(err)
	}
	event := entity.MinterEvent{
		Type:      entity.EventPriceChange,
		Actor:     caller,
		DropIndex: &drop.Index,
		AmountWei: &price,
	}
	err = s.persist(ctx, event, func(ctx context.Context, tx datagateway.MinterDataGateway) error {
		return errors.WithStack(tx.SaveDrop(ctx, drop))
	})
	if err != nil {
		s.revert(ctx, cp)
		return entity.Drop{}, errors.WithStack(err)
	}
	return drop, nil
}

func (s *Service) MintStalledDropToOwner(ctx context.Context, caller string) ([]entity.Token, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := s.checkpoint()

	minted, err := s.engine.MintStalledDropToOwner(caller)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	event := entity.MinterEvent{Type: entity.EventRemediation, Actor: caller}
	err = s.persist(ctx, event, func(ctx context.Context, tx datagateway.MinterDataGateway) error {
		for _, token := range minted {
			if err := tx.CreateToken(ctx, token); err != nil {
				return errors.Wrap(err, "failed to save reclaimed token")
			}
		}
		return saveDrops(ctx, tx, s.engine.Drops())
	})
	if err != nil {
		s.revert(ctx, cp)
		return nil, errors.WithStack(err)
	}
	return minted, nil
}

func (s *Service) SetRoyaltyInfo(ctx context.Context, receiver string, basisPoints uint16, caller string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := s.checkpoint()

	if err := s.engine.SetRoyaltyInfo(receiver, basisPoints, caller); err != nil {
		return errors.WithStack(err)
	}
	event := entity.MinterEvent{Type: entity.EventRoyalty, Actor: caller}
	if err := s.persist(ctx, event, nil); err != nil {
		s.revert(ctx, cp)
		return errors.WithStack(err)
	}
	return nil
}

func (s *Service) Withdraw(ctx context.Context, amount uint128.Uint128, caller string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := s.checkpoint()

	if err := s.engine.Withdraw(amount, caller); err != nil {
		return errors.WithStack(err)
	}
	event := entity.MinterEvent{
		Type:      entity.EventWithdrawal,
		Actor:     caller,
		AmountWei: &amount,
	}
	if err := s.persist(ctx, event, nil); err != nil {
		s.revert(ctx, cp)
		return errors.WithStack(err)
	}
	return nil
}

func (s *Service) WithdrawAll(ctx context.Context, caller string) (uint128.Uint128, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := s.checkpoint()

	amount, err := s.engine.WithdrawAll(caller)
	if err != nil {
		return uint128.Zero, errors.WithStack(err)
	}
	event := entity.MinterEvent{
		Type:      entity.EventWithdrawal,
		Actor:     caller,
		AmountWei: &amount,
	}
	if err := s.persist(ctx, event, nil); err != nil {
		s.revert(ctx, cp)
		return uint128.Zero, errors.WithStack(err)
	}
	return amount, nil
}

func (s *Service) Approve(ctx context.Context, spender string, tokenID uint64, caller string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := s.checkpoint()

	if err := s.engine.Approve(spender, tokenID, caller); err != nil {
		return errors.WithStack(err)
	}
	token, err := s.engine.Token(tokenID)
	if err != nil {
		return errors.WithStack(err)
	}
	event := entity.MinterEvent{
		Type:    entity.EventApproval,
		Actor:   caller,
		TokenID: &tokenID,
	}
	err = s.persist(ctx, event, func(ctx context.Context, tx datagateway.MinterDataGateway) error {
		return errors.WithStack(tx.SetTokenOwner(ctx, datagateway.SetTokenOwnerParams{
			TokenID:      token.ID,
			Owner:        token.Owner,
			Approved:     token.Approved,
			AcquiredRank: token.AcquiredRank,
		}))
	})
	if err != nil {
		s.revert(ctx, cp)
		return errors.WithStack(err)
	}
	return nil
}

func (s *Service) ApplyTransfer(ctx context.Context, from, to string, tokenID uint64, caller string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := s.checkpoint()

	if err := s.engine.ApplyTransfer(from, to, tokenID, caller); err != nil {
		return errors.WithStack(err)
	}
	token, err := s.engine.Token(tokenID)
	if err != nil {
		return errors.WithStack(err)
	}
	event := entity.MinterEvent{
		Type:    entity.EventTransfer,
		Actor:   caller,
		TokenID: &tokenID,
	}
	err = s.persist(ctx, event, func(ctx context.Context, tx datagateway.MinterDataGateway) error {
		return errors.WithStack(tx.SetTokenOwner(ctx, datagateway.SetTokenOwnerParams{
			TokenID:      token.ID,
			Owner:        token.Owner,
			Approved:     token.Approved,
			AcquiredRank: token.AcquiredRank,
		}))
	})
	if err != nil {
		s.revert(ctx, cp)
		return errors.WithStack(err)
	}
	return nil
}

// Engine exposes the read-only side of the in-memory ledger.
func (s *Service) Engine() *Minter {
	return s.engine
}

// Events pages the persisted mutation log, newest first.
func (s *Service) Events(ctx context.Context, limit, offset int32) ([]entity.MinterEvent, error) {
	events, err := s.dg.GetEvents(ctx, datagateway.GetEventsParams{Limit: limit, Offset: offset})
	if err != nil {
		return nil, errors.Wrap(err, "failed to load events")
	}
	return events, nil
}
