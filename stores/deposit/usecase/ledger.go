package usecase

import (
	"sync"

	"github.com/shopspring/decimal"

	bCtx "github.com/ihrahat0/deposcan/base/ctx"
	"github.com/ihrahat0/deposcan/base/log"
	"github.com/ihrahat0/deposcan/base/metrics"
	"github.com/ihrahat0/deposcan/domain"
	"github.com/ihrahat0/deposcan/service/query"
)

var metOnce sync.Once
var met metrics.Service

type LedgerCfg struct {
	Mongo        query.Mongo
	DepositRepo  domain.DepositRepo
	BalanceRepo  domain.UserBalanceRepo
	SnapshotRepo domain.BalanceSnapshotRepo
	// NoiseEpsilon is the absolute threshold below which a balance delta is
	// ignored as noise.
	NoiseEpsilon decimal.Decimal
}

// ledgerUseCase is the single serialization point for deposits. Both
// detection paths (transaction scanners and the balance-diff engine) write
// through here, which is what makes the dedup contract hold.
type ledgerUseCase struct {
	q            query.Mongo
	depositRepo  domain.DepositRepo
	balanceRepo  domain.UserBalanceRepo
	snapshotRepo domain.BalanceSnapshotRepo
	noiseEpsilon decimal.Decimal
}

func NewLedgerUseCase(cfg *LedgerCfg) domain.LedgerUseCase {
	metOnce.Do(func() {
		met = metrics.New("ledger")
	})
	return &ledgerUseCase{
		q:            cfg.Mongo,
		depositRepo:  cfg.DepositRepo,
		balanceRepo:  cfg.BalanceRepo,
		snapshotRepo: cfg.SnapshotRepo,
		noiseEpsilon: cfg.NoiseEpsilon,
	}
}

func (u *ledgerUseCase) HasTransaction(ctx bCtx.Ctx, chainId domain.ChainId, hash domain.TxHash) (bool, error) {
	return u.depositRepo.ExistsByTxHash(ctx, chainId, hash)
}

func (u *ledgerUseCase) Record(ctx bCtx.Ctx, cand *domain.DepositCandidate) (bool, error) {
	switch cand.DetectionMethod {
	case domain.DetectionMethodTransaction:
		return u.recordTransaction(ctx, cand)
	case domain.DetectionMethodBalanceDiff:
		return u.recordBalanceDiff(ctx, cand)
	}
	return false, domain.ErrBadParamInput
}

func (u *ledgerUseCase) recordTransaction(ctx bCtx.Ctx, cand *domain.DepositCandidate) (bool, error) {
	if cand.TxHash == "" {
		return false, domain.ErrBadParamInput
	}

	exists, err := u.depositRepo.ExistsByTxHash(ctx, cand.ChainId, cand.TxHash)
	if err != nil {
		return false, err
	}
	if exists {
		// replaying the same hash is a success, not an error
		return false, nil
	}

	record := toRecord(cand)
	balanceId := &domain.UserBalanceId{
		UserId:  cand.UserId,
		ChainId: cand.ChainId,
		Token:   cand.Token,
	}

	err = u.q.RunWithTransaction(ctx, func(c bCtx.Ctx) error {
		if err := u.depositRepo.Append(c, record); err != nil {
			return err
		}
		return u.balanceRepo.Add(c, balanceId, cand.Amount)
	})
	if err == domain.ErrConflict {
		// lost the race against the other detection loop, already recorded
		ctx.WithFields(log.Fields{
			"txHash":  cand.TxHash,
			"chainId": cand.ChainId,
		}).Info("duplicate deposit discarded")
		return false, nil
	} else if err != nil {
		return false, err
	}

	chain, _ := domain.ChainById(cand.ChainId)
	met.BumpSum("deposit.recorded", 1, "chain", chain.Name, "method", string(domain.DetectionMethodTransaction))
	return true, nil
}

func (u *ledgerUseCase) recordBalanceDiff(ctx bCtx.Ctx, cand *domain.DepositCandidate) (bool, error) {
	delta := cand.Amount
	if delta.Cmp(u.noiseEpsilon) <= 0 {
		return false, nil
	}

	snapshot := &domain.BalanceSnapshot{
		ChainId:    cand.ChainId,
		Address:    cand.WalletAddress,
		Token:      cand.Token,
		Amount:     cand.NewBalance.String(),
		CapturedAt: cand.ObservedAt,
	}

	// cross-path reconciliation: a delta fully explained by deposits the
	// transaction scanners already recorded since the baseline snapshot
	// must not be counted again
	explained, err := u.depositRepo.SumDetectedSince(ctx, cand.ChainId, cand.WalletAddress, cand.Token, cand.BaselineAt)
	if err != nil {
		return false, err
	}
	remainder := delta.Sub(explained)
	if remainder.Cmp(u.noiseEpsilon) <= 0 {
		// advance the baseline so the next pass diffs against reality
		if err := u.snapshotRepo.Upsert(ctx, snapshot); err != nil {
			return false, err
		}
		ctx.WithFields(log.Fields{
			"address":   cand.WalletAddress,
			"token":     cand.Token,
			"delta":     delta.String(),
			"explained": explained.String(),
		}).Info("balance delta already explained by recorded transactions")
		return false, nil
	}

	record := toRecord(cand)
	// the portion already recorded by the transaction path is not restated,
	// only the unexplained remainder is a new deposit
	record.Amount = remainder.String()
	balanceId := &domain.UserBalanceId{
		UserId:  cand.UserId,
		ChainId: cand.ChainId,
		Token:   cand.Token,
	}

	// the stored balance and baseline snapshot advance atomically with the
	// record append, so a retried pass recomputes a zero delta
	err = u.q.RunWithTransaction(ctx, func(c bCtx.Ctx) error {
		if err := u.depositRepo.Append(c, record); err != nil {
			return err
		}
		if err := u.balanceRepo.Set(c, balanceId, cand.NewBalance); err != nil {
			return err
		}
		return u.snapshotRepo.Upsert(c, snapshot)
	})
	if err != nil {
		return false, err
	}

	chain, _ := domain.ChainById(cand.ChainId)
	met.BumpSum("deposit.recorded", 1, "chain", chain.Name, "method", string(domain.DetectionMethodBalanceDiff))
	return true, nil
}

func toRecord(cand *domain.DepositCandidate) *domain.DepositRecord {
	return &domain.DepositRecord{
		UserId:          cand.UserId,
		ChainId:         cand.ChainId,
		WalletAddress:   cand.WalletAddress,
		Counterparty:    cand.Counterparty,
		Token:           cand.Token,
		Amount:          cand.Amount.String(),
		PreviousBalance: cand.PreviousBalance.String(),
		NewBalance:      cand.NewBalance.String(),
		TxHash:          cand.TxHash,
		DetectionMethod: cand.DetectionMethod,
		DetectedAt:      cand.ObservedAt,
	}
}
