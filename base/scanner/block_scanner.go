package scanner

import (
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/core/types"
	"github.com/shopspring/decimal"
	"golang.org/x/xerrors"

	bCtx "github.com/ihrahat0/deposcan/base/ctx"
	"github.com/ihrahat0/deposcan/base/log"
	"github.com/ihrahat0/deposcan/domain"
)

// native coin precision shared by the supported account chains
const nativeDecimals = -18

type BlockScannerCfg struct {
	Chain     domain.Chain
	Client    domain.EthClientRepo
	Directory domain.DirectoryUseCase
	Cursor    domain.ChainCursorUseCase
	Ledger    domain.LedgerUseCase
	// DustMin drops native transfers below this amount, in whole coins.
	DustMin decimal.Decimal
	// MaxBlocksPerPass bounds a single pass, 0 means no cap.
	MaxBlocksPerPass uint64
}

// BlockScanner walks an account chain block by block, turning native
// transfers into monitored wallets into deposit candidates.
type BlockScanner struct {
	chain            domain.Chain
	client           domain.EthClientRepo
	directory        domain.DirectoryUseCase
	cursor           domain.ChainCursorUseCase
	ledger           domain.LedgerUseCase
	dustMin          decimal.Decimal
	maxBlocksPerPass uint64
	signer           types.Signer
}

func NewBlockScanner(cfg *BlockScannerCfg) *BlockScanner {
	initMetrics()
	return &BlockScanner{
		chain:            cfg.Chain,
		client:           cfg.Client,
		directory:        cfg.Directory,
		cursor:           cfg.Cursor,
		ledger:           cfg.Ledger,
		dustMin:          cfg.DustMin,
		maxBlocksPerPass: cfg.MaxBlocksPerPass,
		signer:           types.LatestSignerForChainID(big.NewInt(int64(cfg.Chain.ChainId))),
	}
}

func (s *BlockScanner) Chain() domain.Chain {
	return s.chain
}

func (s *BlockScanner) Scan(ctx bCtx.Ctx) (*ScanResult, error) {
	res := &ScanResult{}

	monitored, err := s.monitoredSet(ctx)
	if err != nil {
		return res, err
	}

	head, err := s.client.BlockNumber(ctx)
	if err != nil {
		ctx.WithFields(log.Fields{
			"err":   err,
			"chain": s.chain.Name,
		}).Error("failed to get chain head")
		return res, err
	}
	met.BumpAvg("blockchain.head", float64(head), "chain", s.chain.Name)

	cursor, err := s.cursor.Get(ctx, &domain.ChainCursorId{ChainId: s.chain.ChainId})
	if err == domain.ErrNotFound {
		// first run, anchor at head without backfilling history
		cursor = &domain.ChainCursor{ChainId: s.chain.ChainId, LastProcessed: head}
		if err := s.cursor.Store(ctx, cursor); err != nil {
			return res, err
		}
		res.Notes = append(res.Notes, fmt.Sprintf("%s: cursor initialized at block %d", s.chain.Name, head))
		return res, nil
	} else if err != nil {
		return res, err
	}

	if head <= cursor.LastProcessed {
		return res, nil
	}

	start := cursor.LastProcessed + 1
	end := head
	if s.maxBlocksPerPass > 0 && end-start+1 > s.maxBlocksPerPass {
		end = start + s.maxBlocksPerPass - 1
	}

	for n := start; n <= end; n++ {
		block, err := s.fetchBlock(ctx, n)
		if err != nil {
			// skip the block, the cursor still advances past it
			ctx.WithFields(log.Fields{
				"err":   err,
				"chain": s.chain.Name,
				"block": n,
			}).Warn("failed to fetch block, skipping")
			met.BumpSum("block.skipped", 1, "chain", s.chain.Name)
			res.SkippedUnits++
			continue
		}
		res.DepositsFound += s.processBlock(ctx, block, monitored)
	}

	cursor.LastProcessed = end
	if err := s.cursor.Update(ctx, cursor); err != nil {
		return res, err
	}
	met.BumpAvg("cursor.lastProcessed", float64(end), "chain", s.chain.Name)
	res.Notes = append(res.Notes, fmt.Sprintf("%s: scanned blocks %d..%d", s.chain.Name, start, end))
	return res, nil
}

func (s *BlockScanner) fetchBlock(ctx bCtx.Ctx, n uint64) (*types.Block, error) {
	block, err := s.client.BlockByNumber(ctx, new(big.Int).SetUint64(n))
	if err != nil {
		return nil, xerrors.Errorf("block %d: %v: %w", n, err, domain.ErrBlockFetch)
	}
	return block, nil
}

func (s *BlockScanner) processBlock(ctx bCtx.Ctx, block *types.Block, monitored map[string]*domain.MonitoredAddress) int {
	found := 0
	observedAt := time.Unix(int64(block.Time()), 0)
	for _, tx := range block.Transactions() {
		to := tx.To()
		if to == nil {
			// contract creation
			continue
		}
		m, ok := monitored[strings.ToLower(to.Hex())]
		if !ok {
			continue
		}

		amount := decimal.NewFromBigInt(tx.Value(), nativeDecimals)
		if amount.Cmp(s.dustMin) < 0 || amount.IsZero() {
			continue
		}

		counterparty := domain.Address("")
		if from, err := types.Sender(s.signer, tx); err == nil {
			counterparty = domain.Address(strings.ToLower(from.Hex()))
		}

		recorded, err := s.ledger.Record(ctx, &domain.DepositCandidate{
			UserId:          m.UserId,
			ChainId:         s.chain.ChainId,
			WalletAddress:   m.Address,
			Counterparty:    counterparty,
			Token:           s.chain.NativeToken,
			Amount:          amount,
			TxHash:          domain.TxHash(strings.ToLower(tx.Hash().Hex())),
			DetectionMethod: domain.DetectionMethodTransaction,
			ObservedAt:      observedAt,
		})
		if err != nil {
			ctx.WithFields(log.Fields{
				"err":    err,
				"chain":  s.chain.Name,
				"txHash": tx.Hash().Hex(),
			}).Error("failed to record deposit")
			continue
		}
		if recorded {
			found++
		}
	}
	return found
}

func (s *BlockScanner) monitoredSet(ctx bCtx.Ctx) (map[string]*domain.MonitoredAddress, error) {
	addrs, err := s.directory.GetMonitoredAddresses(ctx, s.chain.ChainId)
	if err != nil {
		return nil, err
	}
	set := make(map[string]*domain.MonitoredAddress, len(addrs))
	for _, m := range addrs {
		set[m.Address.ToLowerStr()] = m
	}
	return set, nil
}
