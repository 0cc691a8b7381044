package scanner

import (
	"time"

	bCtx "github.com/ihrahat0/deposcan/base/ctx"
	"github.com/ihrahat0/deposcan/base/goroutine"
	"github.com/ihrahat0/deposcan/base/log"
)

type MonitorCfg struct {
	// Scanners are the transaction scanners only. The snapshot engine is
	// batch-pass work, not realtime work.
	Scanners []ChainScanner
	Interval time.Duration
}

// Monitor is the realtime detection loop. It runs independently of
// orchestrated passes, the ledger writer's dedup absorbs the overlap.
type Monitor struct {
	scanners []ChainScanner
	interval time.Duration
	stopCh   chan struct{}
	doneCh   chan struct{}
}

func NewMonitor(cfg *MonitorCfg) *Monitor {
	initMetrics()
	interval := cfg.Interval
	if interval <= 0 {
		interval = 15 * time.Second
	}
	return &Monitor{
		scanners: cfg.Scanners,
		interval: interval,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
}

func (m *Monitor) Start(ctx bCtx.Ctx) {
	goroutine.RecoverableGo(func() {
		defer close(m.doneCh)
		ticker := time.NewTicker(m.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-m.stopCh:
				return
			case <-ticker.C:
				m.tick(ctx)
			}
		}
	})
}

func (m *Monitor) Stop() {
	close(m.stopCh)
	<-m.doneCh
}

func (m *Monitor) tick(ctx bCtx.Ctx) {
	for _, s := range m.scanners {
		res, err := s.Scan(ctx)
		if err != nil {
			// a failed tick is retried on the next interval
			ctx.WithFields(log.Fields{
				"err":   err,
				"chain": s.Chain().Name,
			}).Warn("realtime scan failed")
			met.BumpSum("monitor.tickFailed", 1, "chain", s.Chain().Name)
			continue
		}
		if res.DepositsFound > 0 {
			ctx.WithFields(log.Fields{
				"chain":    s.Chain().Name,
				"deposits": res.DepositsFound,
			}).Info("realtime deposits detected")
		}
	}
}
