package solana

import (
	"strconv"
	"sync"
	"time"

	"github.com/blocto/solana-go-sdk/client"
	"github.com/blocto/solana-go-sdk/common"
	"github.com/blocto/solana-go-sdk/rpc"
	"github.com/coocood/freecache"
	"github.com/mr-tron/base58"
	"github.com/shopspring/decimal"

	bCtx "github.com/ihrahat0/deposcan/base/ctx"
	"github.com/ihrahat0/deposcan/base/log"
	"github.com/ihrahat0/deposcan/domain"
	"github.com/ihrahat0/deposcan/service/endpoint"
)

const (
	nativeDecimals = 9

	// mint account layout keeps decimals at byte 44
	mintDecimalsOffset = 44
	mintAccountMinLen  = 45

	decimalsCacheTTL = 24 * 60 * 60 // seconds
)

// IsValidAddress reports whether addr is a well-formed base58 32-byte
// public key.
func IsValidAddress(addr string) bool {
	b, err := base58.Decode(addr)
	return err == nil && len(b) == 32
}

// SlotProbe builds an endpoint probe asking for the current slot.
func SlotProbe(timeout time.Duration) endpoint.Probe {
	return func(c bCtx.Ctx, url string) error {
		tCtx, cancel := bCtx.WithTimeout(c, timeout)
		defer cancel()
		_, err := client.NewClient(url).GetSlot(tCtx)
		return err
	}
}

type ClientCfg struct {
	Pool *endpoint.Pool
	// DecimalsCacheSize is in megabytes
	DecimalsCacheSize int
}

// Client implements domain.SolanaClientRepo on top of the endpoint pool.
// Mint decimals are memoised in an in-process cache since they never change.
type Client struct {
	pool     *endpoint.Pool
	decimals *freecache.Cache

	mu    sync.Mutex
	conns map[string]*client.Client
}

func NewClient(c bCtx.Ctx, cfg *ClientCfg) domain.SolanaClientRepo {
	size := cfg.DecimalsCacheSize
	if size <= 0 {
		size = 1
	}
	return &Client{
		pool:     cfg.Pool,
		decimals: freecache.NewCache(size * 1024 * 1024),
		conns:    map[string]*client.Client{},
	}
}

func (c *Client) acquire(ctx bCtx.Ctx) (*client.Client, error) {
	url, err := c.pool.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if conn, ok := c.conns[url]; ok {
		return conn, nil
	}
	conn := client.NewClient(url)
	c.conns[url] = conn
	return conn, nil
}

func (c *Client) CurrentSlot(ctx bCtx.Ctx) (uint64, error) {
	conn, err := c.acquire(ctx)
	if err != nil {
		return 0, err
	}
	return conn.GetSlot(ctx)
}

func (c *Client) NativeBalance(ctx bCtx.Ctx, addr domain.Address) (decimal.Decimal, error) {
	if !IsValidAddress(string(addr)) {
		return decimal.Zero, domain.ErrInvalidAddress
	}
	conn, err := c.acquire(ctx)
	if err != nil {
		return decimal.Zero, err
	}
	lamports, err := conn.GetBalance(ctx, string(addr))
	if err != nil {
		return decimal.Zero, err
	}
	return decimal.New(int64(lamports), -nativeDecimals), nil
}

func (c *Client) SignaturesForAddress(ctx bCtx.Ctx, addr domain.Address, limit int) ([]domain.SolanaSignature, error) {
	conn, err := c.acquire(ctx)
	if err != nil {
		return nil, err
	}
	sigs, err := conn.GetSignaturesForAddressWithConfig(ctx, string(addr), client.GetSignaturesForAddressConfig{
		Limit: limit,
	})
	if err != nil {
		return nil, err
	}
	res := make([]domain.SolanaSignature, 0, len(sigs))
	for _, sig := range sigs {
		s := domain.SolanaSignature{
			Signature: sig.Signature,
			Slot:      sig.Slot,
			Failed:    sig.Err != nil,
		}
		if sig.BlockTime != nil {
			t := time.Unix(*sig.BlockTime, 0)
			s.BlockTime = &t
		}
		res = append(res, s)
	}
	return res, nil
}

func (c *Client) Transaction(ctx bCtx.Ctx, signature string) (*domain.SolanaTransaction, error) {
	conn, err := c.acquire(ctx)
	if err != nil {
		return nil, err
	}
	tx, err := conn.GetTransaction(ctx, signature)
	if err != nil {
		return nil, err
	}
	if tx == nil || tx.Meta == nil {
		return nil, domain.ErrNotFound
	}

	res := &domain.SolanaTransaction{
		Signature:    signature,
		Slot:         tx.Slot,
		PreBalances:  tx.Meta.PreBalances,
		PostBalances: tx.Meta.PostBalances,
	}
	if tx.BlockTime != nil {
		t := time.Unix(*tx.BlockTime, 0)
		res.BlockTime = &t
	}
	for _, key := range tx.Transaction.Message.Accounts {
		res.Accounts = append(res.Accounts, domain.Address(key.ToBase58()))
	}
	for _, b := range tx.Meta.PreTokenBalances {
		res.PreTokenBalances = append(res.PreTokenBalances, toTokenBalance(ctx, b))
	}
	for _, b := range tx.Meta.PostTokenBalances {
		res.PostTokenBalances = append(res.PostTokenBalances, toTokenBalance(ctx, b))
	}
	return res, nil
}

func (c *Client) TokenHoldings(ctx bCtx.Ctx, owner domain.Address) ([]domain.SolanaTokenHolding, error) {
	conn, err := c.acquire(ctx)
	if err != nil {
		return nil, err
	}
	accounts, err := conn.GetTokenAccountsByOwnerByProgram(ctx, string(owner), common.TokenProgramID.ToBase58())
	if err != nil {
		return nil, err
	}

	totals := map[string]uint64{}
	mints := make([]string, 0, len(accounts))
	for _, account := range accounts {
		mint := account.Mint.ToBase58()
		if _, ok := totals[mint]; !ok {
			mints = append(mints, mint)
		}
		totals[mint] += account.Amount
	}

	decimalsByMint := c.mintDecimals(ctx, conn, mints)
	res := make([]domain.SolanaTokenHolding, 0, len(mints))
	for _, mint := range mints {
		d, ok := decimalsByMint[mint]
		if !ok {
			// unknown mint layout, skip rather than misreport the amount
			ctx.WithField("mint", mint).Warn("unknown mint decimals, skipping holding")
			continue
		}
		res = append(res, domain.SolanaTokenHolding{
			Mint:   mint,
			Amount: decimal.New(int64(totals[mint]), 0).Shift(-d),
		})
	}
	return res, nil
}

// mintDecimals resolves decimals of every mint, serving from cache first and
// batch-reading the remaining mint accounts. Decimals live at a fixed offset
// of the mint account data.
func (c *Client) mintDecimals(ctx bCtx.Ctx, conn *client.Client, mints []string) map[string]int32 {
	res := make(map[string]int32, len(mints))
	missing := make([]string, 0, len(mints))
	for _, mint := range mints {
		if v, err := c.decimals.Get([]byte(mint)); err == nil {
			if d, err := strconv.Atoi(string(v)); err == nil {
				res[mint] = int32(d)
				continue
			}
		}
		missing = append(missing, mint)
	}
	if len(missing) == 0 {
		return res
	}

	infos, err := conn.GetMultipleAccounts(ctx, missing)
	if err != nil {
		ctx.WithFields(log.Fields{
			"err":    err,
			"#mints": len(missing),
		}).Warn("GetMultipleAccounts failed, decimals unresolved")
		return res
	}
	for i, info := range infos {
		if len(info.Data) < mintAccountMinLen {
			continue
		}
		d := int32(info.Data[mintDecimalsOffset])
		mint := missing[i]
		res[mint] = d
		if err := c.decimals.Set([]byte(mint), []byte(strconv.Itoa(int(d))), decimalsCacheTTL); err != nil {
			ctx.WithField("err", err).Warn("decimals cache set failed")
		}
	}
	return res
}

func toTokenBalance(ctx bCtx.Ctx, b rpc.TransactionMetaTokenBalance) domain.SolanaTokenBalance {
	amount, err := decimal.NewFromString(b.UITokenAmount.Amount)
	if err != nil {
		ctx.WithField("err", err).Warn("invalid token amount")
		amount = decimal.Zero
	}
	return domain.SolanaTokenBalance{
		AccountIndex: int(b.AccountIndex),
		Mint:         b.Mint,
		Owner:        domain.Address(b.Owner),
		Amount:       amount.Shift(-int32(b.UITokenAmount.Decimals)),
	}
}
