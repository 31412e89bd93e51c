package postgres

import (
	"github.com/cockroachdb/errors"
	"github.com/gaze-network/uint128"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/wrightcode/ladybugs/modules/minter/internal/entity"
)

func uint128FromNumeric(src pgtype.Numeric) (*uint128.Uint128, error) {
	if !src.Valid {
		return nil, nil
	}
	bytes, err := src.MarshalJSON()
	if err != nil {
		return nil, errors.WithStack(err)
	}
	result, err := uint128.FromString(string(bytes))
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return &result, nil
}

func numericFromUint128(src *uint128.Uint128) (pgtype.Numeric, error) {
	if src == nil {
		return pgtype.Numeric{}, nil
	}
	bytes := []byte(src.String())
	var result pgtype.Numeric
	err := result.UnmarshalJSON(bytes)
	if err != nil {
		return pgtype.Numeric{}, errors.WithStack(err)
	}
	return result, nil
}

func scanState(row pgx.Row) (*entity.StateSnapshot, error) {
	var (
		initialized                               bool
		totalMinted, reservedMinted, acquisitions int64
		treasury                                  pgtype.Numeric
		royaltyReceiver                           string
		royaltyBasisPoints                        int16
		updatedAt                                 pgtype.Timestamp
	)
	if err := row.Scan(&initialized, &totalMinted, &reservedMinted, &acquisitions, &treasury, &royaltyReceiver, &royaltyBasisPoints, &updatedAt); err != nil {
		return nil, errors.WithStack(err)
	}
	treasuryWei, err := uint128FromNumeric(treasury)
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse treasury balance")
	}
	state := entity.StateSnapshot{
		Initialized:    initialized,
		TotalMinted:    uint64(totalMinted),
		ReservedMinted: uint64(reservedMinted),
		Acquisitions:   uint64(acquisitions),
		Royalty: entity.RoyaltyConfig{
			Receiver:    royaltyReceiver,
			BasisPoints: uint16(royaltyBasisPoints),
		},
		UpdatedAt: updatedAt.Time.UTC(),
	}
	if treasuryWei != nil {
		state.TreasuryWei = *treasuryWei
	}
	return &state, nil
}

func scanDrop(row pgx.Row) (entity.Drop, error) {
	var (
		dropIndex            int16
		price                pgtype.Numeric
		startDate, priceDate pgtype.Timestamp
		allocated, minted    int64
	)
	if err := row.Scan(&dropIndex, &price, &startDate, &priceDate, &allocated, &minted); err != nil {
		return entity.Drop{}, errors.WithStack(err)
	}
	priceWei, err := uint128FromNumeric(price)
	if err != nil {
		return entity.Drop{}, errors.Wrap(err, "failed to parse drop price")
	}
	drop := entity.Drop{
		Index:     int(dropIndex),
		StartDate: startDate.Time.UTC(),
		PriceDate: priceDate.Time.UTC(),
		Allocated: uint64(allocated),
		Minted:    uint64(minted),
	}
	if priceWei != nil {
		drop.PriceWei = *priceWei
	}
	return drop, nil
}

func collectTokens(rows pgx.Rows) ([]entity.Token, error) {
	tokens := make([]entity.Token, 0)
	for rows.Next() {
		var (
			tokenID, acquiredRank int64
			owner, approved       string
			mintedAt              pgtype.Timestamp
		)
		if err := rows.Scan(&tokenID, &owner, &approved, &mintedAt, &acquiredRank); err != nil {
			return nil, errors.Wrap(err, "cannot scan token")
		}
		tokens = append(tokens, entity.Token{
			ID:           uint64(tokenID),
			Owner:        owner,
			Approved:     approved,
			MintedAt:     mintedAt.Time.UTC(),
			AcquiredRank: uint64(acquiredRank),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, errors.WithStack(err)
	}
	return tokens, nil
}

func scanEvent(row pgx.Row) (entity.MinterEvent, error) {
	var (
		sequence   int64
		eventType  string
		actor      string
		tokenID    pgtype.Int8
		dropIndex  pgtype.Int2
		amount     pgtype.Numeric
		occurredAt pgtype.Timestamp
	)
	if err := row.Scan(&sequence, &eventType, &actor, &tokenID, &dropIndex, &amount, &occurredAt); err != nil {
		return entity.MinterEvent{}, errors.WithStack(err)
	}
	amountWei, err := uint128FromNumeric(amount)
	if err != nil {
		return entity.MinterEvent{}, errors.Wrap(err, "failed to parse event amount")
	}
	event := entity.MinterEvent{
		Sequence:   sequence,
		Type:       entity.EventType(eventType),
		Actor:      actor,
		AmountWei:  amountWei,
		OccurredAt: occurredAt.Time.UTC(),
	}
	if tokenID.Valid {
		id := uint64(tokenID.Int64)
		event.TokenID = &id
	}
	if dropIndex.Valid {
		index := int(dropIndex.Int16)
		event.DropIndex = &index
	}
	return event, nil
}
