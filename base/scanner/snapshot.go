package scanner

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/viney-shih/goroutines"

	bCtx "github.com/ihrahat0/deposcan/base/ctx"
	"github.com/ihrahat0/deposcan/base/log"
	"github.com/ihrahat0/deposcan/domain"
)

// TokenConfig is one allow-listed token contract on an account chain.
type TokenConfig struct {
	Symbol   domain.TokenSymbol
	Contract domain.Address
	Decimals int32
}

// AccountBalanceProvider reads current balances on an account chain.
type AccountBalanceProvider interface {
	NativeBalance(c bCtx.Ctx, addr domain.Address) (decimal.Decimal, error)
	TokenBalance(c bCtx.Ctx, owner, token domain.Address, decimals int32) (decimal.Decimal, error)
}

type SnapshotEngineCfg struct {
	Chain     domain.Chain
	Directory domain.DirectoryUseCase
	Snapshots domain.BalanceSnapshotUseCase
	Ledger    domain.LedgerUseCase
	// Account serves account chains, Solana serves slot chains. Exactly one
	// is set depending on Chain.Kind.
	Account AccountBalanceProvider
	Solana  domain.SolanaClientRepo
	// Tokens is the account-chain allow-list, slot chains enumerate held
	// tokens instead.
	Tokens    []TokenConfig
	Epsilon   decimal.Decimal
	BatchSize int
	Workers   int
}

// SnapshotEngine is the detection backstop. It compares every monitored
// wallet's current balances against the previous snapshot and hands
// positive deltas to the ledger writer as balance-diff candidates.
type SnapshotEngine struct {
	chain     domain.Chain
	directory domain.DirectoryUseCase
	snapshots domain.BalanceSnapshotUseCase
	ledger    domain.LedgerUseCase
	account   AccountBalanceProvider
	solana    domain.SolanaClientRepo
	tokens    []TokenConfig
	epsilon   decimal.Decimal
	batchSize int
	workers   int
}

func NewSnapshotEngine(cfg *SnapshotEngineCfg) *SnapshotEngine {
	initMetrics()
	batchSize := cfg.BatchSize
	if batchSize <= 0 {
		batchSize = 50
	}
	workers := cfg.Workers
	if workers <= 0 {
		workers = 8
	}
	return &SnapshotEngine{
		chain:     cfg.Chain,
		directory: cfg.Directory,
		snapshots: cfg.Snapshots,
		ledger:    cfg.Ledger,
		account:   cfg.Account,
		solana:    cfg.Solana,
		tokens:    cfg.Tokens,
		epsilon:   cfg.Epsilon,
		batchSize: batchSize,
		workers:   workers,
	}
}

func (e *SnapshotEngine) Chain() domain.Chain {
	return e.chain
}

// observation is one (wallet, token, balance) reading.
type observation struct {
	addr    *domain.MonitoredAddress
	token   domain.TokenSymbol
	balance decimal.Decimal
}

type observeResult struct {
	observations []observation
	skipped      int
}

func (e *SnapshotEngine) Scan(ctx bCtx.Ctx) (*ScanResult, error) {
	res := &ScanResult{}

	monitored, err := e.directory.GetMonitoredAddresses(ctx, e.chain.ChainId)
	if err != nil {
		return res, err
	}

	// sequential batches, bounded fan-out inside a batch
	for start := 0; start < len(monitored); start += e.batchSize {
		end := start + e.batchSize
		if end > len(monitored) {
			end = len(monitored)
		}
		e.scanBatch(ctx, monitored[start:end], res)
	}

	res.Notes = append(res.Notes, fmt.Sprintf("%s: snapshotted %d addresses", e.chain.Name, len(monitored)))
	return res, nil
}

func (e *SnapshotEngine) scanBatch(ctx bCtx.Ctx, batch []*domain.MonitoredAddress, res *ScanResult) {
	b := goroutines.NewBatch(e.workers, goroutines.WithBatchSize(len(batch)))
	defer b.Close()
	for _, m := range batch {
		m := m
		b.Queue(func() (interface{}, error) {
			return e.observe(ctx, m)
		})
	}
	b.QueueComplete()

	for ret := range b.Results() {
		if ret.Error() != nil {
			ctx.WithFields(log.Fields{
				"err":   ret.Error(),
				"chain": e.chain.Name,
			}).Warn("failed to observe balances, skipping address")
			met.BumpSum("snapshot.addressSkipped", 1, "chain", e.chain.Name)
			res.SkippedUnits++
			continue
		}
		or := ret.Value().(*observeResult)
		res.SkippedUnits += or.skipped
		for _, o := range or.observations {
			recorded, err := e.reconcile(ctx, o)
			if err != nil {
				res.SkippedUnits++
				continue
			}
			if recorded {
				res.DepositsFound++
			}
		}
	}
}

func (e *SnapshotEngine) observe(ctx bCtx.Ctx, m *domain.MonitoredAddress) (*observeResult, error) {
	if e.chain.Kind == domain.ChainKindSlot {
		return e.observeSlot(ctx, m)
	}
	return e.observeAccount(ctx, m)
}

func (e *SnapshotEngine) observeAccount(ctx bCtx.Ctx, m *domain.MonitoredAddress) (*observeResult, error) {
	or := &observeResult{}

	native, err := e.account.NativeBalance(ctx, m.Address)
	if err != nil {
		return nil, err
	}
	or.observations = append(or.observations, observation{addr: m, token: e.chain.NativeToken, balance: native})

	for _, t := range e.tokens {
		bal, err := e.account.TokenBalance(ctx, m.Address, t.Contract, t.Decimals)
		if err != nil {
			// one unreadable token does not block the rest of the wallet
			ctx.WithFields(log.Fields{
				"err":   err,
				"chain": e.chain.Name,
				"token": t.Symbol,
			}).Warn("failed to read token balance, skipping")
			or.skipped++
			continue
		}
		or.observations = append(or.observations, observation{addr: m, token: t.Symbol, balance: bal})
	}
	return or, nil
}

func (e *SnapshotEngine) observeSlot(ctx bCtx.Ctx, m *domain.MonitoredAddress) (*observeResult, error) {
	or := &observeResult{}

	native, err := e.solana.NativeBalance(ctx, m.Address)
	if err != nil {
		return nil, err
	}
	or.observations = append(or.observations, observation{addr: m, token: e.chain.NativeToken, balance: native})

	holdings, err := e.solana.TokenHoldings(ctx, m.Address)
	if err != nil {
		ctx.WithFields(log.Fields{
			"err":     err,
			"chain":   e.chain.Name,
			"address": m.Address,
		}).Warn("failed to read token holdings, skipping")
		or.skipped++
		return or, nil
	}
	for _, h := range holdings {
		or.observations = append(or.observations, observation{addr: m, token: domain.TokenSymbol(h.Mint), balance: h.Amount})
	}
	return or, nil
}

// reconcile diffs one observation against the stored snapshot. Only
// positive deltas above epsilon become candidates, everything else just
// advances the snapshot.
func (e *SnapshotEngine) reconcile(ctx bCtx.Ctx, o observation) (bool, error) {
	id := &domain.BalanceSnapshotId{
		ChainId: e.chain.ChainId,
		Address: o.addr.Address,
		Token:   o.token,
	}

	prevAmount := decimal.Zero
	baselineAt := time.Time{}
	prev, err := e.snapshots.Get(ctx, id)
	if err == nil {
		prevAmount = prev.AmountDecimal()
		baselineAt = prev.CapturedAt
	} else if err != domain.ErrNotFound {
		ctx.WithFields(log.Fields{
			"err":     err,
			"chain":   e.chain.Name,
			"address": o.addr.Address,
			"token":   o.token,
		}).Error("failed to load snapshot")
		return false, err
	}

	observedAt := time.Now()
	delta := o.balance.Sub(prevAmount)
	if delta.Cmp(e.epsilon) <= 0 {
		// flat, noise, or withdrawal: advance the baseline only
		err := e.snapshots.Upsert(ctx, &domain.BalanceSnapshot{
			ChainId:    e.chain.ChainId,
			Address:    o.addr.Address,
			Token:      o.token,
			Amount:     o.balance.String(),
			CapturedAt: observedAt,
		})
		return false, err
	}

	// the ledger writer advances the snapshot atomically with acceptance
	return e.ledger.Record(ctx, &domain.DepositCandidate{
		UserId:          o.addr.UserId,
		ChainId:         e.chain.ChainId,
		WalletAddress:   o.addr.Address,
		Token:           o.token,
		Amount:          delta,
		PreviousBalance: prevAmount,
		NewBalance:      o.balance,
		DetectionMethod: domain.DetectionMethodBalanceDiff,
		ObservedAt:      observedAt,
		BaselineAt:      baselineAt,
	})
}
