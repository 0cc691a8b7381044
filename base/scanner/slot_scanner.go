package scanner

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	bCtx "github.com/ihrahat0/deposcan/base/ctx"
	"github.com/ihrahat0/deposcan/base/log"
	"github.com/ihrahat0/deposcan/domain"
)

type SlotScannerCfg struct {
	Chain     domain.Chain
	Client    domain.SolanaClientRepo
	Directory domain.DirectoryUseCase
	Ledger    domain.LedgerUseCase
	// SignatureLimit caps the lookback window per address per pass.
	SignatureLimit int
	DustMin        decimal.Decimal
}

// SlotScanner detects deposits on a slot chain from each monitored
// address's recent signature history. There is no range cursor, the
// ledger's signature membership is the dedup boundary.
type SlotScanner struct {
	chain          domain.Chain
	client         domain.SolanaClientRepo
	directory      domain.DirectoryUseCase
	ledger         domain.LedgerUseCase
	signatureLimit int
	dustMin        decimal.Decimal
}

func NewSlotScanner(cfg *SlotScannerCfg) *SlotScanner {
	initMetrics()
	limit := cfg.SignatureLimit
	if limit <= 0 {
		limit = 20
	}
	return &SlotScanner{
		chain:          cfg.Chain,
		client:         cfg.Client,
		directory:      cfg.Directory,
		ledger:         cfg.Ledger,
		signatureLimit: limit,
		dustMin:        cfg.DustMin,
	}
}

func (s *SlotScanner) Chain() domain.Chain {
	return s.chain
}

func (s *SlotScanner) Scan(ctx bCtx.Ctx) (*ScanResult, error) {
	res := &ScanResult{}

	monitored, err := s.directory.GetMonitoredAddresses(ctx, s.chain.ChainId)
	if err != nil {
		return res, err
	}

	if slot, err := s.client.CurrentSlot(ctx); err == nil {
		met.BumpAvg("blockchain.slot", float64(slot), "chain", s.chain.Name)
	}

	for _, m := range monitored {
		if err := s.scanAddress(ctx, m, res); err != nil {
			ctx.WithFields(log.Fields{
				"err":     err,
				"chain":   s.chain.Name,
				"address": m.Address,
			}).Warn("failed to scan address, skipping")
			res.SkippedUnits++
		}
	}

	res.Notes = append(res.Notes, fmt.Sprintf("%s: scanned %d addresses", s.chain.Name, len(monitored)))
	return res, nil
}

func (s *SlotScanner) scanAddress(ctx bCtx.Ctx, m *domain.MonitoredAddress, res *ScanResult) error {
	sigs, err := s.client.SignaturesForAddress(ctx, m.Address, s.signatureLimit)
	if err != nil {
		return err
	}

	for _, sig := range sigs {
		if sig.Failed {
			continue
		}
		seen, err := s.ledger.HasTransaction(ctx, s.chain.ChainId, domain.TxHash(sig.Signature))
		if err != nil {
			return err
		}
		if seen {
			continue
		}

		tx, err := s.client.Transaction(ctx, sig.Signature)
		if err != nil {
			ctx.WithFields(log.Fields{
				"err":       err,
				"chain":     s.chain.Name,
				"signature": sig.Signature,
			}).Warn("failed to fetch transaction, skipping")
			res.SkippedUnits++
			continue
		}
		res.DepositsFound += s.processTransaction(ctx, m, tx)
	}
	return nil
}

func (s *SlotScanner) processTransaction(ctx bCtx.Ctx, m *domain.MonitoredAddress, tx *domain.SolanaTransaction) int {
	found := 0
	observedAt := time.Now()
	if tx.BlockTime != nil {
		observedAt = *tx.BlockTime
	}

	if cand := s.nativeCandidate(m, tx, observedAt); cand != nil {
		found += s.record(ctx, cand)
	}
	for _, cand := range s.tokenCandidates(m, tx, observedAt) {
		found += s.record(ctx, cand)
	}
	return found
}

// nativeCandidate computes the lamport delta at the wallet's account index.
func (s *SlotScanner) nativeCandidate(m *domain.MonitoredAddress, tx *domain.SolanaTransaction, observedAt time.Time) *domain.DepositCandidate {
	idx := -1
	for i, acc := range tx.Accounts {
		if acc == m.Address {
			idx = i
			break
		}
	}
	if idx < 0 || idx >= len(tx.PreBalances) || idx >= len(tx.PostBalances) {
		return nil
	}

	deltaLamports := tx.PostBalances[idx] - tx.PreBalances[idx]
	if deltaLamports <= 0 {
		return nil
	}
	amount := decimal.New(deltaLamports, -9)
	if amount.Cmp(s.dustMin) < 0 {
		return nil
	}

	// the sender is the first account whose balance decreased
	counterparty := domain.Address("")
	for i := range tx.Accounts {
		if i == idx || i >= len(tx.PreBalances) || i >= len(tx.PostBalances) {
			continue
		}
		if tx.PostBalances[i] < tx.PreBalances[i] {
			counterparty = tx.Accounts[i]
			break
		}
	}

	return &domain.DepositCandidate{
		UserId:          m.UserId,
		ChainId:         s.chain.ChainId,
		WalletAddress:   m.Address,
		Counterparty:    counterparty,
		Token:           s.chain.NativeToken,
		Amount:          amount,
		TxHash:          domain.TxHash(tx.Signature),
		DetectionMethod: domain.DetectionMethodTransaction,
		ObservedAt:      observedAt,
	}
}

// tokenCandidates diffs the wallet's pre/post token balances per mint.
func (s *SlotScanner) tokenCandidates(m *domain.MonitoredAddress, tx *domain.SolanaTransaction, observedAt time.Time) []*domain.DepositCandidate {
	pre := map[int]decimal.Decimal{}
	for _, b := range tx.PreTokenBalances {
		if b.Owner == m.Address {
			pre[b.AccountIndex] = b.Amount
		}
	}

	cands := []*domain.DepositCandidate{}
	for _, b := range tx.PostTokenBalances {
		if b.Owner != m.Address {
			continue
		}
		delta := b.Amount.Sub(pre[b.AccountIndex])
		if delta.Sign() <= 0 {
			continue
		}
		cands = append(cands, &domain.DepositCandidate{
			UserId:          m.UserId,
			ChainId:         s.chain.ChainId,
			WalletAddress:   m.Address,
			Token:           domain.TokenSymbol(b.Mint),
			Amount:          delta,
			TxHash:          domain.TxHash(tx.Signature),
			DetectionMethod: domain.DetectionMethodTransaction,
			ObservedAt:      observedAt,
		})
	}
	return cands
}

func (s *SlotScanner) record(ctx bCtx.Ctx, cand *domain.DepositCandidate) int {
	recorded, err := s.ledger.Record(ctx, cand)
	if err != nil {
		ctx.WithFields(log.Fields{
			"err":       err,
			"chain":     s.chain.Name,
			"signature": cand.TxHash,
		}).Error("failed to record deposit")
		return 0
	}
	if recorded {
		return 1
	}
	return 0
}
