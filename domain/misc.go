package domain

import (
	"strings"
)

type ChainId int32

const (
	ChainIdEthereum ChainId = 1
	ChainIdBsc      ChainId = 56
	// ChainIdSolana is an internal identifier, solana has no EVM-style chain id
	ChainIdSolana ChainId = -501
)

type Address string

func (a Address) ToLower() Address {
	return Address(strings.ToLower(string(a)))
}

func (a Address) ToLowerStr() string {
	return strings.ToLower(string(a))
}

func (a Address) IsEmpty() bool {
	return len(a) == 0
}

func (a Address) Equals(b Address) bool {
	return a.ToLowerStr() == b.ToLowerStr()
}

// TokenSymbol is a canonical (uppercased) token key. Balance maps are always
// keyed by the canonical form, never matched case-insensitively at lookup.
type TokenSymbol string

func ToTokenSymbol(s string) TokenSymbol {
	return TokenSymbol(strings.ToUpper(strings.TrimSpace(s)))
}

func (t TokenSymbol) String() string {
	return string(t)
}

type TxHash string

func (h TxHash) ToLower() TxHash {
	return TxHash(strings.ToLower(string(h)))
}

type BlockNumber uint64

// DetectionMethod tells how a deposit was discovered.
type DetectionMethod string

const (
	DetectionMethodTransaction DetectionMethod = "transaction"
	DetectionMethodBalanceDiff DetectionMethod = "balance-diff"
)
