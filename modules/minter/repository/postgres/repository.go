package postgres

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/wrightcode/ladybugs/common/errs"
	"github.com/wrightcode/ladybugs/internal/postgres"
	"github.com/wrightcode/ladybugs/modules/minter/datagateway"
	"github.com/wrightcode/ladybugs/modules/minter/internal/entity"
)

// queryable is the subset of postgres.DB the Repository uses; pgx.Tx also
// satisfies it, so a transaction-scoped Repository can share the same methods.
type queryable interface {
	postgres.Queryable
	Begin(ctx context.Context) (pgx.Tx, error)
}

type Repository struct {
	db queryable
	tx pgx.Tx
}

func NewRepository(db postgres.DB) *Repository {
	return &Repository{
		db: db,
	}
}

func (repo *Repository) GetState(ctx context.Context) (*entity.StateSnapshot, error) {
	row := repo.db.QueryRow(ctx, `
		SELECT initialized, total_minted, reserved_minted, acquisitions, treasury_wei, royalty_receiver, royalty_basis_points, updated_at
		FROM minter_state WHERE id = TRUE
	`)
	state, err := scanState(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errors.WithStack(errs.NotFound)
		}
		return nil, errors.Wrap(err, "cannot get minter state")
	}
	return state, nil
}

func (repo *Repository) SaveState(ctx context.Context, arg entity.StateSnapshot) error {
	treasury, err := numericFromUint128(&arg.TreasuryWei)
	if err != nil {
		return errors.Wrap(err, "cannot convert treasury balance")
	}
	_, err = repo.db.Exec(ctx, `
		INSERT INTO minter_state (id, initialized, total_minted, reserved_minted, acquisitions, treasury_wei, royalty_receiver, royalty_basis_points, updated_at)
		VALUES (TRUE, $1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (id) DO UPDATE SET
			initialized = EXCLUDED.initialized,
			total_minted = EXCLUDED.total_minted,
			reserved_minted = EXCLUDED.reserved_minted,
			acquisitions = EXCLUDED.acquisitions,
			treasury_wei = EXCLUDED.treasury_wei,
			royalty_receiver = EXCLUDED.royalty_receiver,
			royalty_basis_points = EXCLUDED.royalty_basis_points,
			updated_at = EXCLUDED.updated_at
	`,
		arg.Initialized,
		int64(arg.TotalMinted),
		int64(arg.ReservedMinted),
		int64(arg.Acquisitions),
		treasury,
		arg.Royalty.Receiver,
		int16(arg.Royalty.BasisPoints),
		pgtype.Timestamp{Time: arg.UpdatedAt.UTC(), Valid: true},
	)
	if err != nil {
		return errors.Wrap(err, "cannot save minter state")
	}
	return nil
}

func (repo *Repository) GetDrops(ctx context.Context) ([]entity.Drop, error) {
	rows, err := repo.db.Query(ctx, `
		SELECT drop_index, price_wei, start_date, price_date, allocated, minted
		FROM minter_drops ORDER BY drop_index
	`)
	if err != nil {
		return nil, errors.Wrap(err, "cannot get drops")
	}
	defer rows.Close()

	drops := make([]entity.Drop, 0)
	for rows.Next() {
		drop, err := scanDrop(rows)
		if err != nil {
			return nil, errors.Wrap(err, "cannot scan drop")
		}
		drops = append(drops, drop)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.WithStack(err)
	}
	return drops, nil
}

func (repo *Repository) SaveDrop(ctx context.Context, arg entity.Drop) error {
	price, err := numericFromUint128(&arg.PriceWei)
	if err != nil {
		return errors.Wrap(err, "cannot convert drop price")
	}
	_, err = repo.db.Exec(ctx, `
		INSERT INTO minter_drops (drop_index, price_wei, start_date, price_date, allocated, minted)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (drop_index) DO UPDATE SET
			price_wei = EXCLUDED.price_wei,
			start_date = EXCLUDED.start_date,
			price_date = EXCLUDED.price_date,
			allocated = EXCLUDED.allocated,
			minted = EXCLUDED.minted
	`,
		int16(arg.Index),
		price,
		pgtype.Timestamp{Time: arg.StartDate.UTC(), Valid: true},
		pgtype.Timestamp{Time: arg.PriceDate.UTC(), Valid: true},
		int64(arg.Allocated),
		int64(arg.Minted),
	)
	if err != nil {
		return errors.Wrap(err, "cannot save drop")
	}
	return nil
}

func (repo *Repository) GetTokens(ctx context.Context) ([]entity.Token, error) {
	rows, err := repo.db.Query(ctx, `
		SELECT token_id, owner, approved, minted_at, acquired_rank
		FROM minter_tokens ORDER BY token_id
	`)
	if err != nil {
		return nil, errors.Wrap(err, "cannot get tokens")
	}
	defer rows.Close()
	return collectTokens(rows)
}

func (repo *Repository) GetTokensByOwner(ctx context.Context, owner string) ([]entity.Token, error) {
	rows, err := repo.db.Query(ctx, `
		SELECT token_id, owner, approved, minted_at, acquired_rank
		FROM minter_tokens WHERE owner = $1 ORDER BY acquired_rank
	`, owner)
	if err != nil {
		return nil, errors.Wrap(err, "cannot get tokens by owner")
	}
	defer rows.Close()
	return collectTokens(rows)
}

func (repo *Repository) CreateToken(ctx context.Context, arg entity.Token) error {
	_, err := repo.db.Exec(ctx, `
		INSERT INTO minter_tokens (token_id, owner, approved, minted_at, acquired_rank)
		VALUES ($1, $2, $3, $4, $5)
	`,
		int64(arg.ID),
		arg.Owner,
		arg.Approved,
		pgtype.Timestamp{Time: arg.MintedAt.UTC(), Valid: true},
		int64(arg.AcquiredRank),
	)
	if err != nil {
		return errors.Wrap(err, "cannot create token")
	}
	return nil
}

func (repo *Repository) SetTokenOwner(ctx context.Context, arg datagateway.SetTokenOwnerParams) error {
	_, err := repo.db.Exec(ctx, `
		UPDATE minter_tokens SET owner = $2, approved = $3, acquired_rank = $4
		WHERE token_id = $1
	`,
		int64(arg.TokenID),
		arg.Owner,
		arg.Approved,
		int64(arg.AcquiredRank),
	)
	if err != nil {
		return errors.Wrap(err, "cannot set token owner")
	}
	return nil
}

func (repo *Repository) GetEvents(ctx context.Context, arg datagateway.GetEventsParams) ([]entity.MinterEvent, error) {
	rows, err := repo.db.Query(ctx, `
		SELECT sequence, type, actor, token_id, drop_index, amount_wei, occurred_at
		FROM minter_events ORDER BY sequence DESC LIMIT $1 OFFSET $2
	`, arg.Limit, arg.Offset)
	if err != nil {
		return nil, errors.Wrap(err, "cannot get events")
	}
	defer rows.Close()

	events := make([]entity.MinterEvent, 0)
	for rows.Next() {
		event, err := scanEvent(rows)
		if err != nil {
			return nil, errors.Wrap(err, "cannot scan event")
		}
		events = append(events, event)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.WithStack(err)
	}
	return events, nil
}

func (repo *Repository) CreateEvent(ctx context.Context, arg entity.MinterEvent) error {
	amount, err := numericFromUint128(arg.AmountWei)
	if err != nil {
		return errors.Wrap(err, "cannot convert event amount")
	}
	var tokenID pgtype.Int8
	if arg.TokenID != nil {
		tokenID = pgtype.Int8{Int64: int64(*arg.TokenID), Valid: true}
	}
	var dropIndex pgtype.Int2
	if arg.DropIndex != nil {
		dropIndex = pgtype.Int2{Int16: int16(*arg.DropIndex), Valid: true}
	}
	_, err = repo.db.Exec(ctx, `
		INSERT INTO minter_events (type, actor, token_id, drop_index, amount_wei, occurred_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`,
		string(arg.Type),
		arg.Actor,
		tokenID,
		dropIndex,
		amount,
		pgtype.Timestamp{Time: arg.OccurredAt.UTC(), Valid: true},
	)
	if err != nil {
		return errors.Wrap(err, "cannot create event")
	}
	return nil
}
