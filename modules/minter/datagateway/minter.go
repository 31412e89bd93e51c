package datagateway

import (
	"context"

	"github.com/wrightcode/ladybugs/modules/minter/internal/entity"
)

type MinterDataGateway interface {
	BeginMinterTx(ctx context.Context) (MinterDataGatewayWithTx, error)

	GetState(ctx context.Context) (*entity.StateSnapshot, error)
	GetDrops(ctx context.Context) ([]entity.Drop, error)
	GetTokens(ctx context.Context) ([]entity.Token, error)
	GetTokensByOwner(ctx context.Context, owner string) ([]entity.Token, error)
	GetEvents(ctx context.Context, arg GetEventsParams) ([]entity.MinterEvent, error)

	SaveState(ctx context.Context, arg entity.StateSnapshot) error
	SaveDrop(ctx context.Context, arg entity.Drop) error
	CreateToken(ctx context.Context, arg entity.Token) error
	SetTokenOwner(ctx context.Context, arg SetTokenOwnerParams) error
	CreateEvent(ctx context.Context, arg entity.MinterEvent) error
}

type MinterDataGatewayWithTx interface {
	MinterDataGateway
	Tx
}

type GetEventsParams struct {
	Limit  int32
	Offset int32
}

type SetTokenOwnerParams struct {
	TokenID      uint64
	Owner        string
	Approved     string
	AcquiredRank uint64
}
