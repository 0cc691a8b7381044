package chain

import (
	"context"
	"math/big"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/shopspring/decimal"
	"golang.org/x/xerrors"

	"github.com/ihrahat0/deposcan/base/abi"
	bCtx "github.com/ihrahat0/deposcan/base/ctx"
	"github.com/ihrahat0/deposcan/base/log"
	"github.com/ihrahat0/deposcan/domain"
	"github.com/ihrahat0/deposcan/service/endpoint"
)

const nativeDecimals = 18

// HeightProbe builds an endpoint probe that dials the url and asks for the
// current block number.
func HeightProbe(timeout time.Duration) endpoint.Probe {
	return func(c bCtx.Ctx, url string) error {
		tCtx, cancel := bCtx.WithTimeout(c, timeout)
		defer cancel()
		client, err := ethclient.DialContext(tCtx, url)
		if err != nil {
			return err
		}
		defer client.Close()
		_, err = client.BlockNumber(tCtx)
		return err
	}
}

type ClientCfg struct {
	ChainId domain.ChainId
	Pool    *endpoint.Pool
}

// Client is an EVM rpc client that acquires its connection from the endpoint
// pool on every call, so failover is transparent to the scanners.
type Client struct {
	chainId domain.ChainId
	pool    *endpoint.Pool

	mu    sync.Mutex
	conns map[string]*ethclient.Client
}

func NewClient(c bCtx.Ctx, cfg *ClientCfg) *Client {
	return &Client{
		chainId: cfg.ChainId,
		pool:    cfg.Pool,
		conns:   map[string]*ethclient.Client{},
	}
}

func (c *Client) acquire(ctx bCtx.Ctx) (*ethclient.Client, error) {
	url, err := c.pool.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if conn, ok := c.conns[url]; ok {
		return conn, nil
	}
	conn, err := ethclient.DialContext(ctx, url)
	if err != nil {
		ctx.WithFields(log.Fields{
			"err":     err,
			"chainId": c.chainId,
			"url":     url,
		}).Error("ethclient.DialContext failed")
		return nil, err
	}
	c.conns[url] = conn
	return conn, nil
}

func (c *Client) BlockNumber(ctx context.Context) (uint64, error) {
	conn, err := c.acquire(bCtx.FromContext(ctx))
	if err != nil {
		return 0, err
	}
	return conn.BlockNumber(ctx)
}

func (c *Client) BlockByNumber(ctx context.Context, number *big.Int) (*types.Block, error) {
	conn, err := c.acquire(bCtx.FromContext(ctx))
	if err != nil {
		return nil, err
	}
	return conn.BlockByNumber(ctx, number)
}

func (c *Client) HeaderByNumber(ctx context.Context, number *big.Int) (*types.Header, error) {
	conn, err := c.acquire(bCtx.FromContext(ctx))
	if err != nil {
		return nil, err
	}
	return conn.HeaderByNumber(ctx, number)
}

func (c *Client) BalanceAt(ctx context.Context, account common.Address, blockNumber *big.Int) (*big.Int, error) {
	conn, err := c.acquire(bCtx.FromContext(ctx))
	if err != nil {
		return nil, err
	}
	return conn.BalanceAt(ctx, account, blockNumber)
}

func (c *Client) CallContract(ctx context.Context, msg ethereum.CallMsg, blockNumber *big.Int) ([]byte, error) {
	conn, err := c.acquire(bCtx.FromContext(ctx))
	if err != nil {
		return nil, err
	}
	return conn.CallContract(ctx, msg, blockNumber)
}

// NativeBalance returns the native coin balance scaled to whole units.
func (c *Client) NativeBalance(ctx bCtx.Ctx, addr domain.Address) (decimal.Decimal, error) {
	if !common.IsHexAddress(string(addr)) {
		return decimal.Zero, domain.ErrInvalidAddress
	}
	wei, err := c.BalanceAt(ctx, common.HexToAddress(string(addr)), nil)
	if err != nil {
		return decimal.Zero, err
	}
	return decimal.NewFromBigInt(wei, -nativeDecimals), nil
}

// TokenBalance reads an erc20 balanceOf and scales it by the token's
// configured decimals.
func (c *Client) TokenBalance(ctx bCtx.Ctx, owner domain.Address, token domain.Address, decimals int32) (decimal.Decimal, error) {
	if !common.IsHexAddress(string(owner)) || !common.IsHexAddress(string(token)) {
		return decimal.Zero, domain.ErrInvalidAddress
	}
	data, err := abi.ERC20ABI.Pack("balanceOf", common.HexToAddress(string(owner)))
	if err != nil {
		return decimal.Zero, xerrors.Errorf("failed to pack balanceOf: %w", err)
	}
	contract := common.HexToAddress(string(token))
	msg := ethereum.CallMsg{
		To:   &contract,
		Data: data,
	}
	res, err := c.CallContract(ctx, msg, nil)
	if err != nil {
		return decimal.Zero, err
	}
	unpacked, err := abi.ERC20ABI.Unpack("balanceOf", res)
	if err != nil {
		return decimal.Zero, xerrors.Errorf("failed to unpack balanceOf: %w", err)
	}
	raw, ok := unpacked[0].(*big.Int)
	if !ok {
		return decimal.Zero, xerrors.New("unexpected balanceOf result type")
	}
	return decimal.NewFromBigInt(raw, -decimals), nil
}
