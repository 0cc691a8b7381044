package scanner

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	bCtx "github.com/ihrahat0/deposcan/base/ctx"
	"github.com/ihrahat0/deposcan/domain"
	"github.com/ihrahat0/deposcan/domain/mocks"
)

const (
	solWallet = "7nYabs8mxYgGqy5JZx3hghzAUDCBSqCvsJHWXQsomeQL"
	solSender = "4Nd1mYQA6yenHjGCJeDqpyxKnvvFjbjUqBCLQh3Bvnqs"
)

func newSlotScannerMocks() (*mocks.SolanaClientRepo, *mocks.DirectoryUseCase, *mocks.LedgerUseCase) {
	return &mocks.SolanaClientRepo{}, &mocks.DirectoryUseCase{}, &mocks.LedgerUseCase{}
}

func newTestSlotScanner(client *mocks.SolanaClientRepo, directory *mocks.DirectoryUseCase, ledger *mocks.LedgerUseCase) *SlotScanner {
	chain, _ := domain.ChainByName("solana")
	return NewSlotScanner(&SlotScannerCfg{
		Chain:          chain,
		Client:         client,
		Directory:      directory,
		Ledger:         ledger,
		SignatureLimit: 20,
		DustMin:        decimal.RequireFromString("0.000001"),
	})
}

func solMonitored() []*domain.MonitoredAddress {
	return []*domain.MonitoredAddress{{
		ChainId: domain.ChainIdSolana,
		Address: domain.Address(solWallet),
		UserId:  "user-3",
	}}
}

func TestSlotScannerRecordsLamportDelta(t *testing.T) {
	client, directory, ledger := newSlotScannerMocks()

	blockTime := time.Unix(1700000000, 0)
	directory.On("GetMonitoredAddresses", mock.Anything, domain.ChainIdSolana).
		Return(solMonitored(), nil)
	client.On("CurrentSlot", mock.Anything).Return(uint64(250000000), nil)
	client.On("SignaturesForAddress", mock.Anything, domain.Address(solWallet), 20).
		Return([]domain.SolanaSignature{{Signature: "5Sig1", Slot: 249999990, BlockTime: &blockTime}}, nil)
	client.On("Transaction", mock.Anything, "5Sig1").Return(&domain.SolanaTransaction{
		Signature:    "5Sig1",
		Slot:         249999990,
		BlockTime:    &blockTime,
		Accounts:     []domain.Address{domain.Address(solSender), domain.Address(solWallet)},
		PreBalances:  []int64{5000000000, 1000000000},
		PostBalances: []int64{3499995000, 2500000000},
	}, nil)
	ledger.On("HasTransaction", mock.Anything, domain.ChainIdSolana, domain.TxHash("5Sig1")).
		Return(false, nil)
	ledger.On("Record", mock.Anything, mock.MatchedBy(func(cand *domain.DepositCandidate) bool {
		return cand.Token == "SOL" &&
			cand.Amount.Equal(decimal.RequireFromString("1.5")) &&
			cand.Counterparty == domain.Address(solSender) &&
			string(cand.TxHash) == "5Sig1"
	})).Return(true, nil)

	s := newTestSlotScanner(client, directory, ledger)
	res, err := s.Scan(bCtx.Background())
	require.NoError(t, err)
	require.Equal(t, 1, res.DepositsFound)
	ledger.AssertExpectations(t)
}

func TestSlotScannerSkipsKnownAndFailedSignatures(t *testing.T) {
	client, directory, ledger := newSlotScannerMocks()

	directory.On("GetMonitoredAddresses", mock.Anything, domain.ChainIdSolana).
		Return(solMonitored(), nil)
	client.On("CurrentSlot", mock.Anything).Return(uint64(250000000), nil)
	client.On("SignaturesForAddress", mock.Anything, domain.Address(solWallet), 20).
		Return([]domain.SolanaSignature{
			{Signature: "5Known", Slot: 1},
			{Signature: "5Failed", Slot: 2, Failed: true},
		}, nil)
	ledger.On("HasTransaction", mock.Anything, domain.ChainIdSolana, domain.TxHash("5Known")).
		Return(true, nil)

	s := newTestSlotScanner(client, directory, ledger)
	res, err := s.Scan(bCtx.Background())
	require.NoError(t, err)
	require.Zero(t, res.DepositsFound)
	client.AssertNotCalled(t, "Transaction", mock.Anything, mock.Anything)
	// failed signatures never reach the ledger
	ledger.AssertNotCalled(t, "HasTransaction", mock.Anything, domain.ChainIdSolana, domain.TxHash("5Failed"))
}

func TestSlotScannerRecordsTokenBalanceDelta(t *testing.T) {
	client, directory, ledger := newSlotScannerMocks()

	mint := "EPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v"
	directory.On("GetMonitoredAddresses", mock.Anything, domain.ChainIdSolana).
		Return(solMonitored(), nil)
	client.On("CurrentSlot", mock.Anything).Return(uint64(250000000), nil)
	client.On("SignaturesForAddress", mock.Anything, domain.Address(solWallet), 20).
		Return([]domain.SolanaSignature{{Signature: "5SigT", Slot: 3}}, nil)
	client.On("Transaction", mock.Anything, "5SigT").Return(&domain.SolanaTransaction{
		Signature:    "5SigT",
		Slot:         3,
		Accounts:     []domain.Address{domain.Address(solSender)},
		PreBalances:  []int64{5000000000},
		PostBalances: []int64{4999995000},
		PreTokenBalances: []domain.SolanaTokenBalance{
			{AccountIndex: 2, Mint: mint, Owner: domain.Address(solWallet), Amount: decimal.RequireFromString("10")},
		},
		PostTokenBalances: []domain.SolanaTokenBalance{
			{AccountIndex: 2, Mint: mint, Owner: domain.Address(solWallet), Amount: decimal.RequireFromString("35.5")},
		},
	}, nil)
	ledger.On("HasTransaction", mock.Anything, domain.ChainIdSolana, domain.TxHash("5SigT")).
		Return(false, nil)
	ledger.On("Record", mock.Anything, mock.MatchedBy(func(cand *domain.DepositCandidate) bool {
		return cand.Token == domain.TokenSymbol(mint) &&
			cand.Amount.Equal(decimal.RequireFromString("25.5"))
	})).Return(true, nil)

	s := newTestSlotScanner(client, directory, ledger)
	res, err := s.Scan(bCtx.Background())
	require.NoError(t, err)
	require.Equal(t, 1, res.DepositsFound)
	ledger.AssertExpectations(t)
}

func TestSlotScannerSkipsAddressOnSignatureFetchError(t *testing.T) {
	client, directory, ledger := newSlotScannerMocks()

	directory.On("GetMonitoredAddresses", mock.Anything, domain.ChainIdSolana).
		Return(solMonitored(), nil)
	client.On("CurrentSlot", mock.Anything).Return(uint64(0), domain.ErrEndpointExhausted)
	client.On("SignaturesForAddress", mock.Anything, domain.Address(solWallet), 20).
		Return(nil, domain.ErrEndpointExhausted)

	s := newTestSlotScanner(client, directory, ledger)
	res, err := s.Scan(bCtx.Background())
	require.NoError(t, err)
	require.Equal(t, 1, res.SkippedUnits)
}
