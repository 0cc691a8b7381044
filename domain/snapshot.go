package domain

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/ihrahat0/deposcan/base/ctx"
)

// BalanceSnapshot is the most recently observed balance of one
// (address, token) pair. It is superseded entirely on each pass, the
// previous value only lives long enough to compute a delta.
type BalanceSnapshot struct {
	ChainId    ChainId     `bson:"chainId"`
	Address    Address     `bson:"address"`
	Token      TokenSymbol `bson:"token"`
	Amount     string      `bson:"amount"`
	CapturedAt time.Time   `bson:"capturedAt"`
}

func (s *BalanceSnapshot) ToId() *BalanceSnapshotId {
	return &BalanceSnapshotId{ChainId: s.ChainId, Address: s.Address, Token: s.Token}
}

func (s *BalanceSnapshot) AmountDecimal() decimal.Decimal {
	d, err := decimal.NewFromString(s.Amount)
	if err != nil {
		return decimal.Zero
	}
	return d
}

type BalanceSnapshotId struct {
	ChainId ChainId     `bson:"chainId"`
	Address Address     `bson:"address"`
	Token   TokenSymbol `bson:"token"`
}

type BalanceSnapshotRepo interface {
	Get(ctx.Ctx, *BalanceSnapshotId) (*BalanceSnapshot, error)
	Upsert(ctx.Ctx, *BalanceSnapshot) error
}

type BalanceSnapshotUseCase interface {
	Get(ctx.Ctx, *BalanceSnapshotId) (*BalanceSnapshot, error)
	Upsert(ctx.Ctx, *BalanceSnapshot) error
}
