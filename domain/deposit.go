package domain

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/ihrahat0/deposcan/base/ctx"
)

// DepositRecord is the durable, append-only record of one real economic
// deposit. It is created exactly once and never mutated.
type DepositRecord struct {
	UserId          string          `bson:"userId" json:"userId"`
	ChainId         ChainId         `bson:"chainId" json:"chainId"`
	WalletAddress   Address         `bson:"walletAddress" json:"walletAddress"`
	Counterparty    Address         `bson:"counterparty,omitempty" json:"counterparty,omitempty"`
	Token           TokenSymbol     `bson:"token" json:"token"`
	Amount          string          `bson:"amount" json:"amount"`
	PreviousBalance string          `bson:"previousBalance" json:"previousBalance"`
	NewBalance      string          `bson:"newBalance" json:"newBalance"`
	TxHash          TxHash          `bson:"txHash,omitempty" json:"txHash,omitempty"`
	DetectionMethod DetectionMethod `bson:"detectionMethod" json:"detectionMethod"`
	DetectedAt      time.Time       `bson:"detectedAt" json:"detectedAt"`
}

func (r *DepositRecord) AmountDecimal() decimal.Decimal {
	d, err := decimal.NewFromString(r.Amount)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// DepositCandidate is what a scanner emits before the ledger writer has
// accepted it. Amounts stay decimal until persistence.
type DepositCandidate struct {
	UserId          string
	ChainId         ChainId
	WalletAddress   Address
	Counterparty    Address
	Token           TokenSymbol
	Amount          decimal.Decimal
	PreviousBalance decimal.Decimal
	NewBalance      decimal.Decimal
	TxHash          TxHash
	DetectionMethod DetectionMethod
	ObservedAt      time.Time
	// BaselineAt is the capture time of the snapshot the delta was computed
	// against. Balance-diff candidates only.
	BaselineAt time.Time
}

type DepositRepo interface {
	Append(ctx.Ctx, *DepositRecord) error
	ExistsByTxHash(c ctx.Ctx, chainId ChainId, hash TxHash) (bool, error)
	// SumDetectedSince sums transaction-detected deposit amounts for one
	// (wallet, token) recorded at or after `since`.
	SumDetectedSince(c ctx.Ctx, chainId ChainId, wallet Address, token TokenSymbol, since time.Time) (decimal.Decimal, error)
	Search(c ctx.Ctx, chainId ChainId, wallet Address, limit int) ([]*DepositRecord, error)
}

// DepositQueryUseCase serves read access to the recorded ledger.
type DepositQueryUseCase interface {
	Recent(c ctx.Ctx, chainId ChainId, wallet Address, limit int) ([]*DepositRecord, error)
}

// LedgerUseCase is the single serialization point turning candidates into
// durable deposit records plus user balance updates.
type LedgerUseCase interface {
	// Record persists a candidate exactly once. It reports false when the
	// candidate was discarded as a duplicate or suppressed as noise.
	Record(ctx.Ctx, *DepositCandidate) (bool, error)
	// HasTransaction reports whether a deposit with the hash is already
	// recorded, used by the slot scanner's signature dedup.
	HasTransaction(c ctx.Ctx, chainId ChainId, hash TxHash) (bool, error)
}
