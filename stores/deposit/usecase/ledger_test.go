package usecase

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	bCtx "github.com/ihrahat0/deposcan/base/ctx"
	"github.com/ihrahat0/deposcan/domain"
	"github.com/ihrahat0/deposcan/domain/mocks"
	queryMocks "github.com/ihrahat0/deposcan/service/query/mocks"
)

func newLedgerMocks() (*queryMocks.Mongo, *mocks.DepositRepo, *mocks.UserBalanceRepo, *mocks.BalanceSnapshotRepo) {
	q := &queryMocks.Mongo{}
	q.On("RunWithTransaction", mock.Anything, mock.Anything).
		Return(func(c bCtx.Ctx, run func(bCtx.Ctx) error) error {
			return run(c)
		})
	return q, &mocks.DepositRepo{}, &mocks.UserBalanceRepo{}, &mocks.BalanceSnapshotRepo{}
}

func newTestLedger(q *queryMocks.Mongo, deposits *mocks.DepositRepo, balances *mocks.UserBalanceRepo, snapshots *mocks.BalanceSnapshotRepo) domain.LedgerUseCase {
	return NewLedgerUseCase(&LedgerCfg{
		Mongo:        q,
		DepositRepo:  deposits,
		BalanceRepo:  balances,
		SnapshotRepo: snapshots,
		NoiseEpsilon: decimal.RequireFromString("0.000001"),
	})
}

func txCandidate() *domain.DepositCandidate {
	return &domain.DepositCandidate{
		UserId:          "user-1",
		ChainId:         domain.ChainIdEthereum,
		WalletAddress:   "0x52fa75e9abb9b6a73b7e7d4e8f6b6d2b4e1d9f00",
		Counterparty:    "0x11118e9abb9b6a73b7e7d4e8f6b6d2b4e1d91111",
		Token:           "ETH",
		Amount:          decimal.RequireFromString("1.5"),
		PreviousBalance: decimal.RequireFromString("2"),
		NewBalance:      decimal.RequireFromString("3.5"),
		TxHash:          "0xabc123",
		DetectionMethod: domain.DetectionMethodTransaction,
		ObservedAt:      time.Unix(1700000000, 0),
	}
}

func TestRecordTransactionDeposit(t *testing.T) {
	q, deposits, balances, snapshots := newLedgerMocks()
	cand := txCandidate()

	deposits.On("ExistsByTxHash", mock.Anything, cand.ChainId, cand.TxHash).Return(false, nil)
	deposits.On("Append", mock.Anything, mock.MatchedBy(func(r *domain.DepositRecord) bool {
		return r.TxHash == cand.TxHash &&
			r.Amount == "1.5" &&
			r.DetectionMethod == domain.DetectionMethodTransaction
	})).Return(nil)
	balances.On("Add", mock.Anything, &domain.UserBalanceId{
		UserId:  cand.UserId,
		ChainId: cand.ChainId,
		Token:   cand.Token,
	}, cand.Amount).Return(nil)

	u := newTestLedger(q, deposits, balances, snapshots)
	recorded, err := u.Record(bCtx.Background(), cand)
	require.NoError(t, err)
	require.True(t, recorded)
	deposits.AssertExpectations(t)
	balances.AssertExpectations(t)
}

func TestRecordDuplicateHashIsNoop(t *testing.T) {
	q, deposits, balances, snapshots := newLedgerMocks()
	cand := txCandidate()

	deposits.On("ExistsByTxHash", mock.Anything, cand.ChainId, cand.TxHash).Return(true, nil)

	u := newTestLedger(q, deposits, balances, snapshots)
	recorded, err := u.Record(bCtx.Background(), cand)
	require.NoError(t, err)
	require.False(t, recorded)
	deposits.AssertNotCalled(t, "Append", mock.Anything, mock.Anything)
	balances.AssertNotCalled(t, "Add", mock.Anything, mock.Anything, mock.Anything)
}

func TestRecordLostRaceIsNoop(t *testing.T) {
	q, deposits, balances, snapshots := newLedgerMocks()
	cand := txCandidate()

	// the other detection loop slipped in between the existence check and
	// the append
	deposits.On("ExistsByTxHash", mock.Anything, cand.ChainId, cand.TxHash).Return(false, nil)
	deposits.On("Append", mock.Anything, mock.Anything).Return(domain.ErrConflict)

	u := newTestLedger(q, deposits, balances, snapshots)
	recorded, err := u.Record(bCtx.Background(), cand)
	require.NoError(t, err)
	require.False(t, recorded)
}

func TestRecordTransactionWithoutHashRejected(t *testing.T) {
	q, deposits, balances, snapshots := newLedgerMocks()
	cand := txCandidate()
	cand.TxHash = ""

	u := newTestLedger(q, deposits, balances, snapshots)
	recorded, err := u.Record(bCtx.Background(), cand)
	require.ErrorIs(t, err, domain.ErrBadParamInput)
	require.False(t, recorded)
}

func TestRecordPropagatesAppendError(t *testing.T) {
	q, deposits, balances, snapshots := newLedgerMocks()
	cand := txCandidate()

	deposits.On("ExistsByTxHash", mock.Anything, cand.ChainId, cand.TxHash).Return(false, nil)
	deposits.On("Append", mock.Anything, mock.Anything).Return(errors.New("write failed"))

	u := newTestLedger(q, deposits, balances, snapshots)
	recorded, err := u.Record(bCtx.Background(), cand)
	require.Error(t, err)
	require.False(t, recorded)
	balances.AssertNotCalled(t, "Add", mock.Anything, mock.Anything, mock.Anything)
}

func diffCandidate() *domain.DepositCandidate {
	return &domain.DepositCandidate{
		UserId:          "user-2",
		ChainId:         domain.ChainIdBsc,
		WalletAddress:   "0x99fa75e9abb9b6a73b7e7d4e8f6b6d2b4e1d9f99",
		Token:           "BNB",
		Amount:          decimal.RequireFromString("0.7"),
		PreviousBalance: decimal.RequireFromString("1"),
		NewBalance:      decimal.RequireFromString("1.7"),
		DetectionMethod: domain.DetectionMethodBalanceDiff,
		ObservedAt:      time.Unix(1700000600, 0),
		BaselineAt:      time.Unix(1700000000, 0),
	}
}

func TestRecordBalanceDiffDeposit(t *testing.T) {
	q, deposits, balances, snapshots := newLedgerMocks()
	cand := diffCandidate()

	deposits.On("SumDetectedSince", mock.Anything, cand.ChainId, cand.WalletAddress, cand.Token, cand.BaselineAt).
		Return(decimal.Zero, nil)
	deposits.On("Append", mock.Anything, mock.MatchedBy(func(r *domain.DepositRecord) bool {
		return r.TxHash == "" &&
			r.Amount == "0.7" &&
			r.DetectionMethod == domain.DetectionMethodBalanceDiff
	})).Return(nil)
	balances.On("Set", mock.Anything, mock.Anything, cand.NewBalance).Return(nil)
	snapshots.On("Upsert", mock.Anything, mock.MatchedBy(func(s *domain.BalanceSnapshot) bool {
		return s.Amount == "1.7" && s.CapturedAt.Equal(cand.ObservedAt)
	})).Return(nil)

	u := newTestLedger(q, deposits, balances, snapshots)
	recorded, err := u.Record(bCtx.Background(), cand)
	require.NoError(t, err)
	require.True(t, recorded)
	deposits.AssertExpectations(t)
	balances.AssertExpectations(t)
	snapshots.AssertExpectations(t)
}

func TestRecordBalanceDiffBelowEpsilonSuppressed(t *testing.T) {
	q, deposits, balances, snapshots := newLedgerMocks()
	cand := diffCandidate()
	cand.Amount = decimal.RequireFromString("0.0000005")

	u := newTestLedger(q, deposits, balances, snapshots)
	recorded, err := u.Record(bCtx.Background(), cand)
	require.NoError(t, err)
	require.False(t, recorded)
	deposits.AssertNotCalled(t, "Append", mock.Anything, mock.Anything)
}

func TestRecordBalanceDiffExplainedByTransactions(t *testing.T) {
	q, deposits, balances, snapshots := newLedgerMocks()
	cand := diffCandidate()

	// the whole delta was already recorded by the transaction scanner, the
	// snapshot still has to advance so the next pass sees a zero delta
	deposits.On("SumDetectedSince", mock.Anything, cand.ChainId, cand.WalletAddress, cand.Token, cand.BaselineAt).
		Return(cand.Amount, nil)
	snapshots.On("Upsert", mock.Anything, mock.MatchedBy(func(s *domain.BalanceSnapshot) bool {
		return s.Amount == "1.7"
	})).Return(nil)

	u := newTestLedger(q, deposits, balances, snapshots)
	recorded, err := u.Record(bCtx.Background(), cand)
	require.NoError(t, err)
	require.False(t, recorded)
	deposits.AssertNotCalled(t, "Append", mock.Anything, mock.Anything)
	snapshots.AssertExpectations(t)
}

func TestRecordBalanceDiffPartiallyExplained(t *testing.T) {
	q, deposits, balances, snapshots := newLedgerMocks()
	cand := diffCandidate()

	deposits.On("SumDetectedSince", mock.Anything, cand.ChainId, cand.WalletAddress, cand.Token, cand.BaselineAt).
		Return(decimal.RequireFromString("0.2"), nil)
	// only the remainder the transaction path has not already recorded is
	// stated as the deposit amount
	deposits.On("Append", mock.Anything, mock.MatchedBy(func(r *domain.DepositRecord) bool {
		return r.Amount == "0.5" && r.NewBalance == "1.7"
	})).Return(nil)
	balances.On("Set", mock.Anything, mock.Anything, cand.NewBalance).Return(nil)
	snapshots.On("Upsert", mock.Anything, mock.Anything).Return(nil)

	u := newTestLedger(q, deposits, balances, snapshots)
	recorded, err := u.Record(bCtx.Background(), cand)
	require.NoError(t, err)
	require.True(t, recorded)
	deposits.AssertExpectations(t)
}

func TestRecordUnknownDetectionMethod(t *testing.T) {
	q, deposits, balances, snapshots := newLedgerMocks()
	cand := diffCandidate()
	cand.DetectionMethod = "guesswork"

	u := newTestLedger(q, deposits, balances, snapshots)
	recorded, err := u.Record(bCtx.Background(), cand)
	require.ErrorIs(t, err, domain.ErrBadParamInput)
	require.False(t, recorded)
}

func TestHasTransactionDelegates(t *testing.T) {
	q, deposits, balances, snapshots := newLedgerMocks()

	deposits.On("ExistsByTxHash", mock.Anything, domain.ChainIdSolana, domain.TxHash("5Sig")).Return(true, nil)

	u := newTestLedger(q, deposits, balances, snapshots)
	got, err := u.HasTransaction(bCtx.Background(), domain.ChainIdSolana, "5Sig")
	require.NoError(t, err)
	require.True(t, got)
}
