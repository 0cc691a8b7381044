package scanner

import (
	"errors"
	"math/big"
	"strings"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/trie"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	bCtx "github.com/ihrahat0/deposcan/base/ctx"
	"github.com/ihrahat0/deposcan/domain"
	"github.com/ihrahat0/deposcan/domain/mocks"
)

func makeBlock(t *testing.T, number uint64, txs []*types.Transaction) *types.Block {
	t.Helper()
	header := &types.Header{
		Number: new(big.Int).SetUint64(number),
		Time:   1700000000,
	}
	return types.NewBlock(header, txs, nil, nil, trie.NewStackTrie(nil))
}

func makeTransfer(t *testing.T, to common.Address, value *big.Int) *types.Transaction {
	t.Helper()
	key, err := crypto.GenerateKey()
	require.NoError(t, err)
	signer := types.LatestSignerForChainID(big.NewInt(int64(domain.ChainIdEthereum)))
	return types.MustSignNewTx(key, signer, &types.LegacyTx{
		Nonce:    0,
		To:       &to,
		Value:    value,
		Gas:      21000,
		GasPrice: big.NewInt(1),
	})
}

func newBlockScannerMocks() (*mocks.EthClientRepo, *mocks.DirectoryUseCase, *mocks.ChainCursorUseCase, *mocks.LedgerUseCase) {
	return &mocks.EthClientRepo{}, &mocks.DirectoryUseCase{}, &mocks.ChainCursorUseCase{}, &mocks.LedgerUseCase{}
}

func newTestBlockScanner(client *mocks.EthClientRepo, directory *mocks.DirectoryUseCase, cursor *mocks.ChainCursorUseCase, ledger *mocks.LedgerUseCase) *BlockScanner {
	chain, _ := domain.ChainByName("ethereum")
	return NewBlockScanner(&BlockScannerCfg{
		Chain:     chain,
		Client:    client,
		Directory: directory,
		Cursor:    cursor,
		Ledger:    ledger,
		DustMin:   decimal.RequireFromString("0.0001"),
	})
}

func TestBlockScannerInitializesCursorAtHead(t *testing.T) {
	client, directory, cursor, ledger := newBlockScannerMocks()

	directory.On("GetMonitoredAddresses", mock.Anything, domain.ChainIdEthereum).
		Return([]*domain.MonitoredAddress{}, nil)
	client.On("BlockNumber", mock.Anything).Return(uint64(500), nil)
	cursor.On("Get", mock.Anything, mock.Anything).Return(nil, domain.ErrNotFound)
	cursor.On("Store", mock.Anything, &domain.ChainCursor{
		ChainId:       domain.ChainIdEthereum,
		LastProcessed: 500,
	}).Return(nil)

	s := newTestBlockScanner(client, directory, cursor, ledger)
	res, err := s.Scan(bCtx.Background())
	require.NoError(t, err)
	require.Zero(t, res.DepositsFound)
	cursor.AssertExpectations(t)
	// no backfill on first run
	client.AssertNotCalled(t, "BlockByNumber", mock.Anything, mock.Anything)
}

func TestBlockScannerRecordsMonitoredTransfer(t *testing.T) {
	client, directory, cursor, ledger := newBlockScannerMocks()

	wallet := common.HexToAddress("0x52fa75e9abb9b6a73b7e7d4e8f6b6d2b4e1d9f00")
	tx := makeTransfer(t, wallet, big.NewInt(2e18))
	block := makeBlock(t, 101, []*types.Transaction{tx})

	directory.On("GetMonitoredAddresses", mock.Anything, domain.ChainIdEthereum).
		Return([]*domain.MonitoredAddress{{
			ChainId: domain.ChainIdEthereum,
			Address: domain.Address(strings.ToLower(wallet.Hex())),
			UserId:  "user-1",
		}}, nil)
	client.On("BlockNumber", mock.Anything).Return(uint64(101), nil)
	client.On("BlockByNumber", mock.Anything, big.NewInt(101)).Return(block, nil)
	cursor.On("Get", mock.Anything, mock.Anything).
		Return(&domain.ChainCursor{ChainId: domain.ChainIdEthereum, LastProcessed: 100}, nil)
	cursor.On("Update", mock.Anything, &domain.ChainCursor{
		ChainId:       domain.ChainIdEthereum,
		LastProcessed: 101,
	}).Return(nil)
	ledger.On("Record", mock.Anything, mock.MatchedBy(func(cand *domain.DepositCandidate) bool {
		return cand.UserId == "user-1" &&
			cand.Token == "ETH" &&
			cand.Amount.Equal(decimal.RequireFromString("2")) &&
			cand.DetectionMethod == domain.DetectionMethodTransaction &&
			string(cand.TxHash) == strings.ToLower(tx.Hash().Hex())
	})).Return(true, nil)

	s := newTestBlockScanner(client, directory, cursor, ledger)
	res, err := s.Scan(bCtx.Background())
	require.NoError(t, err)
	require.Equal(t, 1, res.DepositsFound)
	ledger.AssertExpectations(t)
	cursor.AssertExpectations(t)
}

func TestBlockScannerFiltersDustAndStrangers(t *testing.T) {
	client, directory, cursor, ledger := newBlockScannerMocks()

	wallet := common.HexToAddress("0x52fa75e9abb9b6a73b7e7d4e8f6b6d2b4e1d9f00")
	stranger := common.HexToAddress("0x1111111111111111111111111111111111111111")
	dust := makeTransfer(t, wallet, big.NewInt(1))
	unrelated := makeTransfer(t, stranger, big.NewInt(5e18))
	block := makeBlock(t, 101, []*types.Transaction{dust, unrelated})

	directory.On("GetMonitoredAddresses", mock.Anything, domain.ChainIdEthereum).
		Return([]*domain.MonitoredAddress{{
			ChainId: domain.ChainIdEthereum,
			Address: domain.Address(strings.ToLower(wallet.Hex())),
			UserId:  "user-1",
		}}, nil)
	client.On("BlockNumber", mock.Anything).Return(uint64(101), nil)
	client.On("BlockByNumber", mock.Anything, big.NewInt(101)).Return(block, nil)
	cursor.On("Get", mock.Anything, mock.Anything).
		Return(&domain.ChainCursor{ChainId: domain.ChainIdEthereum, LastProcessed: 100}, nil)
	cursor.On("Update", mock.Anything, mock.Anything).Return(nil)

	s := newTestBlockScanner(client, directory, cursor, ledger)
	res, err := s.Scan(bCtx.Background())
	require.NoError(t, err)
	require.Zero(t, res.DepositsFound)
	ledger.AssertNotCalled(t, "Record", mock.Anything, mock.Anything)
}

func TestBlockScannerSkipsFailedBlockAndAdvances(t *testing.T) {
	client, directory, cursor, ledger := newBlockScannerMocks()

	directory.On("GetMonitoredAddresses", mock.Anything, domain.ChainIdEthereum).
		Return([]*domain.MonitoredAddress{}, nil)
	client.On("BlockNumber", mock.Anything).Return(uint64(102), nil)
	client.On("BlockByNumber", mock.Anything, big.NewInt(101)).
		Return(nil, errors.New("missing trie node"))
	client.On("BlockByNumber", mock.Anything, big.NewInt(102)).
		Return(makeBlock(t, 102, nil), nil)
	cursor.On("Get", mock.Anything, mock.Anything).
		Return(&domain.ChainCursor{ChainId: domain.ChainIdEthereum, LastProcessed: 100}, nil)
	cursor.On("Update", mock.Anything, &domain.ChainCursor{
		ChainId:       domain.ChainIdEthereum,
		LastProcessed: 102,
	}).Return(nil)

	s := newTestBlockScanner(client, directory, cursor, ledger)
	res, err := s.Scan(bCtx.Background())
	require.NoError(t, err)
	require.Equal(t, 1, res.SkippedUnits)
	cursor.AssertExpectations(t)
}

func TestBlockScannerWrapsBlockFetchFailure(t *testing.T) {
	client, directory, cursor, ledger := newBlockScannerMocks()

	client.On("BlockByNumber", mock.Anything, big.NewInt(101)).
		Return(nil, errors.New("missing trie node"))

	s := newTestBlockScanner(client, directory, cursor, ledger)
	_, err := s.fetchBlock(bCtx.Background(), 101)
	require.ErrorIs(t, err, domain.ErrBlockFetch)
}

func TestBlockScannerNoNewBlocks(t *testing.T) {
	client, directory, cursor, ledger := newBlockScannerMocks()

	directory.On("GetMonitoredAddresses", mock.Anything, domain.ChainIdEthereum).
		Return([]*domain.MonitoredAddress{}, nil)
	client.On("BlockNumber", mock.Anything).Return(uint64(100), nil)
	cursor.On("Get", mock.Anything, mock.Anything).
		Return(&domain.ChainCursor{ChainId: domain.ChainIdEthereum, LastProcessed: 100}, nil)

	s := newTestBlockScanner(client, directory, cursor, ledger)
	res, err := s.Scan(bCtx.Background())
	require.NoError(t, err)
	require.Zero(t, res.DepositsFound)
	cursor.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}
