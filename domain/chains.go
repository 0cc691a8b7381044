package domain

import (
	"sort"
	"strings"

	"golang.org/x/xerrors"
)

type ChainKind string

const (
	// ChainKindAccount chains have one mutable balance per address and
	// explicit sender/recipient transactions.
	ChainKindAccount ChainKind = "account"
	// ChainKindSlot chains progress in slots, deposits are inferred from
	// pre/post balances inside a transaction's account list.
	ChainKindSlot ChainKind = "slot"
)

type Chain struct {
	Name        string
	ChainId     ChainId
	Kind        ChainKind
	NativeToken TokenSymbol
}

var chains = []Chain{
	{Name: "ethereum", ChainId: ChainIdEthereum, Kind: ChainKindAccount, NativeToken: "ETH"},
	{Name: "bsc", ChainId: ChainIdBsc, Kind: ChainKindAccount, NativeToken: "BNB"},
	{Name: "solana", ChainId: ChainIdSolana, Kind: ChainKindSlot, NativeToken: "SOL"},
}

var chainAliases = map[string]string{
	"eth":      "ethereum",
	"ethereum": "ethereum",
	"bsc":      "bsc",
	"binance":  "bsc",
	"sol":      "solana",
	"solana":   "solana",
}

func Chains() []Chain {
	res := make([]Chain, len(chains))
	copy(res, chains)
	return res
}

func ChainByName(name string) (Chain, bool) {
	canonical, ok := chainAliases[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return Chain{}, false
	}
	for _, c := range chains {
		if c.Name == canonical {
			return c, true
		}
	}
	return Chain{}, false
}

func ChainById(id ChainId) (Chain, bool) {
	for _, c := range chains {
		if c.ChainId == id {
			return c, true
		}
	}
	return Chain{}, false
}

// ParseChainList resolves a comma-separated list of chain names or aliases,
// case-insensitive, deduplicated, with "all" expanding to every known chain.
func ParseChainList(list string) ([]Chain, error) {
	if strings.EqualFold(strings.TrimSpace(list), "all") {
		return Chains(), nil
	}
	seen := map[ChainId]bool{}
	res := []Chain{}
	for _, part := range strings.Split(list, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if strings.EqualFold(part, "all") {
			return Chains(), nil
		}
		c, ok := ChainByName(part)
		if !ok {
			return nil, xerrors.Errorf("chain %q: %w", part, ErrUnsupportedChain)
		}
		if seen[c.ChainId] {
			continue
		}
		seen[c.ChainId] = true
		res = append(res, c)
	}
	if len(res) == 0 {
		return nil, xerrors.Errorf("empty chain list: %w", ErrBadParamInput)
	}
	sort.Slice(res, func(i, j int) bool { return res[i].Name < res[j].Name })
	return res, nil
}
