package scanner

import (
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	bCtx "github.com/ihrahat0/deposcan/base/ctx"
	"github.com/ihrahat0/deposcan/domain"
	"github.com/ihrahat0/deposcan/domain/mocks"
)

type stubScanner struct {
	chain   domain.Chain
	res     *ScanResult
	err     error
	blockCh chan struct{}
}

func (s *stubScanner) Chain() domain.Chain {
	return s.chain
}

func (s *stubScanner) Scan(bCtx.Ctx) (*ScanResult, error) {
	if s.blockCh != nil {
		<-s.blockCh
	}
	if s.res == nil {
		return &ScanResult{}, s.err
	}
	return s.res, s.err
}

// finishedScanRuns returns a scan run usecase mock, a channel closed on the
// first terminal status update, and an accessor for that terminal run.
func finishedScanRuns() (*mocks.ScanRunUseCase, chan struct{}, func() *domain.ScanRun) {
	scanRuns := &mocks.ScanRunUseCase{}
	finished := make(chan struct{})
	var once sync.Once
	var mu sync.Mutex
	var final *domain.ScanRun
	scanRuns.On("Store", mock.Anything, mock.Anything).Return(nil)
	scanRuns.On("Update", mock.Anything, mock.Anything).Return(nil).Run(func(args mock.Arguments) {
		run := args.Get(1).(*domain.ScanRun)
		if run.Status != domain.ScanStatusRunning {
			mu.Lock()
			final = run.Clone()
			mu.Unlock()
			once.Do(func() { close(finished) })
		}
	})
	return scanRuns, finished, func() *domain.ScanRun {
		mu.Lock()
		defer mu.Unlock()
		return final
	}
}

func waitFinished(t *testing.T, finished chan struct{}) {
	t.Helper()
	select {
	case <-finished:
	case <-time.After(5 * time.Second):
		t.Fatal("scan run did not finish")
	}
}

func TestOrchestratorRejectsConcurrentTrigger(t *testing.T) {
	eth, _ := domain.ChainByName("ethereum")
	blockCh := make(chan struct{})
	scanRuns, finished, finalRun := finishedScanRuns()

	o := NewOrchestrator(&OrchestratorCfg{
		Scanners: map[domain.ChainId][]ChainScanner{
			eth.ChainId: {&stubScanner{chain: eth, blockCh: blockCh, res: &ScanResult{DepositsFound: 1}}},
		},
		ScanRuns: scanRuns,
	})

	run, err := o.Trigger(bCtx.Background(), []domain.Chain{eth})
	require.NoError(t, err)
	require.Equal(t, domain.ScanStatusRunning, run.Status)

	_, err = o.Trigger(bCtx.Background(), []domain.Chain{eth})
	require.ErrorIs(t, err, domain.ErrScanInProgress)

	close(blockCh)
	waitFinished(t, finished)
	require.Equal(t, domain.ScanStatusCompleted, finalRun().Status)
	require.Equal(t, 1, finalRun().DepositsFound)
	require.Equal(t, 100, finalRun().ProgressPercent)
}

func TestTriggerReturnsDetachedRunCopy(t *testing.T) {
	eth, _ := domain.ChainByName("ethereum")
	blockCh := make(chan struct{})
	scanRuns, finished, finalRun := finishedScanRuns()

	o := NewOrchestrator(&OrchestratorCfg{
		Scanners: map[domain.ChainId][]ChainScanner{
			eth.ChainId: {&stubScanner{chain: eth, blockCh: blockCh, res: &ScanResult{DepositsFound: 3}}},
		},
		ScanRuns: scanRuns,
	})

	run, err := o.Trigger(bCtx.Background(), []domain.Chain{eth})
	require.NoError(t, err)

	// encode the returned run concurrently with the pass aggregation, the
	// race detector flags any sharing with the orchestrator's own run
	stop := make(chan struct{})
	encoded := make(chan struct{})
	go func() {
		defer close(encoded)
		for {
			select {
			case <-stop:
				return
			default:
				if _, err := json.Marshal(run); err != nil {
					return
				}
			}
		}
	}()

	close(blockCh)
	waitFinished(t, finished)
	close(stop)
	<-encoded

	// the caller holds a snapshot taken at trigger time
	require.Equal(t, domain.ScanStatusRunning, run.Status)
	require.Zero(t, run.DepositsFound)
	require.Equal(t, domain.ScanStatusCompleted, finalRun().Status)
	require.Equal(t, 3, finalRun().DepositsFound)
}

func TestOrchestratorIsolatesChainFailures(t *testing.T) {
	eth, _ := domain.ChainByName("ethereum")
	sol, _ := domain.ChainByName("solana")
	scanRuns, finished, finalRun := finishedScanRuns()

	o := NewOrchestrator(&OrchestratorCfg{
		Scanners: map[domain.ChainId][]ChainScanner{
			eth.ChainId: {&stubScanner{chain: eth, res: &ScanResult{DepositsFound: 2, SkippedUnits: 1}}},
			sol.ChainId: {&stubScanner{chain: sol, err: errors.New("endpoint exhausted")}},
		},
		ScanRuns: scanRuns,
	})

	_, err := o.Trigger(bCtx.Background(), []domain.Chain{eth, sol})
	require.NoError(t, err)
	waitFinished(t, finished)

	final := finalRun()
	require.Equal(t, domain.ScanStatusCompleted, final.Status)
	require.Equal(t, 2, final.DepositsFound)
	require.Equal(t, 1, final.SkippedUnits)
	require.Contains(t, final.ChainErrors, "solana")
	require.NotContains(t, final.ChainErrors, "ethereum")
	require.NotNil(t, final.FinishedAt)
}

func TestOrchestratorFailsWhenEveryChainFails(t *testing.T) {
	eth, _ := domain.ChainByName("ethereum")
	scanRuns, finished, finalRun := finishedScanRuns()

	o := NewOrchestrator(&OrchestratorCfg{
		Scanners: map[domain.ChainId][]ChainScanner{
			eth.ChainId: {&stubScanner{chain: eth, err: errors.New("boom")}},
		},
		ScanRuns: scanRuns,
	})

	_, err := o.Trigger(bCtx.Background(), []domain.Chain{eth})
	require.NoError(t, err)
	waitFinished(t, finished)
	require.Equal(t, domain.ScanStatusFailed, finalRun().Status)
}

func TestOrchestratorAllowsTriggerAfterCompletion(t *testing.T) {
	eth, _ := domain.ChainByName("ethereum")
	scanRuns, finished, _ := finishedScanRuns()

	o := NewOrchestrator(&OrchestratorCfg{
		Scanners: map[domain.ChainId][]ChainScanner{
			eth.ChainId: {&stubScanner{chain: eth, res: &ScanResult{}}},
		},
		ScanRuns: scanRuns,
	})

	_, err := o.Trigger(bCtx.Background(), []domain.Chain{eth})
	require.NoError(t, err)
	waitFinished(t, finished)

	// allow the running flag to clear after the final update
	require.Eventually(t, func() bool {
		_, err := o.Trigger(bCtx.Background(), []domain.Chain{eth})
		return err == nil
	}, 5*time.Second, 10*time.Millisecond)
}
