package domain

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/ihrahat0/deposcan/base/ctx"
)

// SolanaSignature is one entry of getSignaturesForAddress.
type SolanaSignature struct {
	Signature string
	Slot      uint64
	BlockTime *time.Time
	Failed    bool
}

// SolanaTokenBalance is a pre/post token balance inside a transaction,
// amounts already scaled by the mint's decimals.
type SolanaTokenBalance struct {
	AccountIndex int
	Mint         string
	Owner        Address
	Amount       decimal.Decimal
}

// SolanaTransaction is the decoded detail of one confirmed transaction.
// Pre/PostBalances are lamports, indexed like Accounts.
type SolanaTransaction struct {
	Signature         string
	Slot              uint64
	BlockTime         *time.Time
	Accounts          []Address
	PreBalances       []int64
	PostBalances      []int64
	PreTokenBalances  []SolanaTokenBalance
	PostTokenBalances []SolanaTokenBalance
}

// SolanaTokenHolding is a currently held SPL token amount, scaled by decimals.
type SolanaTokenHolding struct {
	Mint   string
	Amount decimal.Decimal
}

type SolanaClientRepo interface {
	CurrentSlot(ctx.Ctx) (uint64, error)
	NativeBalance(ctx.Ctx, Address) (decimal.Decimal, error)
	SignaturesForAddress(c ctx.Ctx, addr Address, limit int) ([]SolanaSignature, error)
	Transaction(c ctx.Ctx, signature string) (*SolanaTransaction, error)
	TokenHoldings(c ctx.Ctx, owner Address) ([]SolanaTokenHolding, error)
}
