package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseChainList(t *testing.T) {
	req := require.New(t)

	cases := []struct {
		name  string
		input string
		want  []string
		err   error
	}{
		{name: "single alias", input: "eth", want: []string{"ethereum"}},
		{name: "mixed case and spaces", input: " ETH , Binance ", want: []string{"bsc", "ethereum"}},
		{name: "dedup", input: "eth,ethereum,sol", want: []string{"ethereum", "solana"}},
		{name: "all wildcard", input: "all", want: []string{"ethereum", "bsc", "solana"}},
		{name: "all wins inside list", input: "eth,ALL", want: []string{"ethereum", "bsc", "solana"}},
		{name: "unknown chain", input: "eth,dogecoin", err: ErrUnsupportedChain},
		{name: "empty", input: " , ", err: ErrBadParamInput},
	}

	for _, c := range cases {
		got, err := ParseChainList(c.input)
		if c.err != nil {
			req.ErrorIs(err, c.err, c.name)
			continue
		}
		req.NoError(err, c.name)
		names := []string{}
		for _, chain := range got {
			names = append(names, chain.Name)
		}
		req.ElementsMatch(c.want, names, c.name)
	}
}

func TestChainByName(t *testing.T) {
	req := require.New(t)

	c, ok := ChainByName("SOL")
	req.True(ok)
	req.Equal(ChainIdSolana, c.ChainId)
	req.Equal(ChainKindSlot, c.Kind)
	req.Equal(TokenSymbol("SOL"), c.NativeToken)

	_, ok = ChainByName("cardano")
	req.False(ok)
}
