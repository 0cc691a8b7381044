package domain

import (
	"github.com/ihrahat0/deposcan/base/ctx"
)

// ChainCursor is the last block height fully attempted by the account-chain
// block scanner. It starts at the chain head on first run (no backfill) and
// never decreases.
type ChainCursor struct {
	ChainId       ChainId `bson:"chainId"`
	LastProcessed uint64  `bson:"lastProcessed"`
}

func (c *ChainCursor) ToId() *ChainCursorId {
	return &ChainCursorId{ChainId: c.ChainId}
}

type ChainCursorId struct {
	ChainId ChainId `bson:"chainId"`
}

type ChainCursorRepo interface {
	Get(ctx.Ctx, *ChainCursorId) (*ChainCursor, error)
	Update(ctx.Ctx, *ChainCursor) error
	Store(ctx.Ctx, *ChainCursor) error
}

type ChainCursorUseCase interface {
	Get(ctx.Ctx, *ChainCursorId) (*ChainCursor, error)
	Update(ctx.Ctx, *ChainCursor) error
	Store(ctx.Ctx, *ChainCursor) error
}
