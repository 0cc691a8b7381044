package domain

import (
	"github.com/shopspring/decimal"

	"github.com/ihrahat0/deposcan/base/ctx"
)

// MonitoredAddress is one watched wallet on one chain. The set is refreshed
// from the directory before every pass and is immutable during a pass,
// a refresh supersedes the previous set instead of mutating it.
type MonitoredAddress struct {
	ChainId ChainId
	Address Address
	UserId  string
	Label   string
}

// DirectoryRepo resolves the monitored address set from the external user
// directory. Malformed addresses are dropped with a warning, never fatal.
type DirectoryRepo interface {
	GetMonitoredAddresses(c ctx.Ctx, chainId ChainId) ([]*MonitoredAddress, error)
}

type DirectoryUseCase interface {
	GetMonitoredAddresses(c ctx.Ctx, chainId ChainId) ([]*MonitoredAddress, error)
}

// UserBalance is the running per-user, per-token balance maintained by the
// deposit ledger writer.
type UserBalance struct {
	UserId    string      `bson:"userId"`
	ChainId   ChainId     `bson:"chainId"`
	Token     TokenSymbol `bson:"token"`
	Balance   string      `bson:"balance"`
	UpdatedAt int64       `bson:"updatedAt"`
}

func (b *UserBalance) BalanceDecimal() decimal.Decimal {
	d, err := decimal.NewFromString(b.Balance)
	if err != nil {
		return decimal.Zero
	}
	return d
}

type UserBalanceId struct {
	UserId  string      `bson:"userId"`
	ChainId ChainId     `bson:"chainId"`
	Token   TokenSymbol `bson:"token"`
}

type UserBalanceRepo interface {
	Get(c ctx.Ctx, id *UserBalanceId) (*UserBalance, error)
	// Add increments the stored balance by delta, creating the document at
	// delta when absent.
	Add(c ctx.Ctx, id *UserBalanceId, delta decimal.Decimal) error
	// Set overwrites the stored balance.
	Set(c ctx.Ctx, id *UserBalanceId, balance decimal.Decimal) error
}
