package scanner

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	bCtx "github.com/ihrahat0/deposcan/base/ctx"
	"github.com/ihrahat0/deposcan/domain"
)

type countingScanner struct {
	chain domain.Chain
	calls int32
}

func (s *countingScanner) Chain() domain.Chain {
	return s.chain
}

func (s *countingScanner) Scan(bCtx.Ctx) (*ScanResult, error) {
	atomic.AddInt32(&s.calls, 1)
	return &ScanResult{}, nil
}

func TestMonitorDrivesScannersOnInterval(t *testing.T) {
	eth, _ := domain.ChainByName("ethereum")
	s := &countingScanner{chain: eth}

	m := NewMonitor(&MonitorCfg{
		Scanners: []ChainScanner{s},
		Interval: 10 * time.Millisecond,
	})
	m.Start(bCtx.Background())

	require.Eventually(t, func() bool {
		return atomic.LoadInt32(&s.calls) >= 2
	}, 5*time.Second, 5*time.Millisecond)

	m.Stop()
	after := atomic.LoadInt32(&s.calls)
	time.Sleep(50 * time.Millisecond)
	require.Equal(t, after, atomic.LoadInt32(&s.calls))
}
