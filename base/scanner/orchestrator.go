package scanner

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/xerrors"

	bCtx "github.com/ihrahat0/deposcan/base/ctx"
	"github.com/ihrahat0/deposcan/base/goroutine"
	"github.com/ihrahat0/deposcan/base/log"
	"github.com/ihrahat0/deposcan/domain"
)

type OrchestratorCfg struct {
	// Scanners lists each chain's passes in execution order, the
	// transaction scanner first and the snapshot engine after it.
	Scanners map[domain.ChainId][]ChainScanner
	ScanRuns domain.ScanRunUseCase
}

// Orchestrator drives full batch passes. At most one pass runs at a time,
// chains inside a pass run concurrently and fail independently.
type Orchestrator struct {
	scanners map[domain.ChainId][]ChainScanner
	scanRuns domain.ScanRunUseCase

	mu      sync.Mutex
	running bool
}

func NewOrchestrator(cfg *OrchestratorCfg) *Orchestrator {
	initMetrics()
	return &Orchestrator{
		scanners: cfg.Scanners,
		scanRuns: cfg.ScanRuns,
	}
}

func (o *Orchestrator) Trigger(ctx bCtx.Ctx, chains []domain.Chain) (*domain.ScanRun, error) {
	o.mu.Lock()
	if o.running {
		o.mu.Unlock()
		return nil, domain.ErrScanInProgress
	}
	o.running = true
	o.mu.Unlock()

	names := make([]string, 0, len(chains))
	for _, c := range chains {
		names = append(names, c.Name)
	}

	run := &domain.ScanRun{
		ScanId:          uuid.New().String(),
		RequestedChains: names,
		Status:          domain.ScanStatusRunning,
		StartedAt:       time.Now(),
		OutputLog:       []string{},
		ChainErrors:     map[string]string{},
	}
	if err := o.scanRuns.Store(ctx, run); err != nil {
		o.setRunning(false)
		return nil, err
	}

	goroutine.RecoverableGo(func() {
		// detach from the request context, the pass outlives it
		o.execute(bCtx.Background(), run, chains)
	}, goroutine.WithAfterRecovered(func(p interface{}, _ []byte) {
		o.finish(bCtx.Background(), run, domain.ScanStatusFailed, fmt.Sprintf("pass panicked: %v", p))
		o.setRunning(false)
	}))

	// the pass goroutine keeps mutating run, callers get their own copy
	return run.Clone(), nil
}

func (o *Orchestrator) setRunning(v bool) {
	o.mu.Lock()
	o.running = v
	o.mu.Unlock()
}

type chainResult struct {
	chain domain.Chain
	res   *ScanResult
	err   error
}

func (o *Orchestrator) execute(ctx bCtx.Ctx, run *domain.ScanRun, chains []domain.Chain) {
	defer o.setRunning(false)
	start := time.Now()

	resultCh := make(chan chainResult, len(chains))
	for _, chain := range chains {
		chain := chain
		goroutine.RecoverableGo(func() {
			res, err := o.scanChain(ctx, chain)
			resultCh <- chainResult{chain: chain, res: res, err: err}
		}, goroutine.WithAfterRecovered(func(p interface{}, _ []byte) {
			resultCh <- chainResult{
				chain: chain,
				res:   &ScanResult{},
				err:   xerrors.Errorf("chain %s panicked: %v", chain.Name, p),
			}
		}))
	}

	// single aggregation point, the run document is only touched here
	for done := 1; done <= len(chains); done++ {
		r := <-resultCh
		if r.res != nil {
			run.DepositsFound += r.res.DepositsFound
			run.SkippedUnits += r.res.SkippedUnits
			run.OutputLog = append(run.OutputLog, r.res.Notes...)
		}
		if r.err != nil {
			run.ChainErrors[r.chain.Name] = r.err.Error()
			run.OutputLog = append(run.OutputLog, fmt.Sprintf("%s: failed: %v", r.chain.Name, r.err))
			met.BumpSum("pass.chainFailed", 1, "chain", r.chain.Name)
		}
		run.ProgressPercent = done * 100 / len(chains)
		if err := o.scanRuns.Update(ctx, run); err != nil {
			ctx.WithFields(log.Fields{
				"err":    err,
				"scanId": run.ScanId,
			}).Error("failed to update scan run")
		}
	}

	status := domain.ScanStatusCompleted
	if len(chains) > 0 && len(run.ChainErrors) == len(chains) {
		status = domain.ScanStatusFailed
	}
	o.finish(ctx, run, status, fmt.Sprintf("pass finished: %d deposits, %d skipped", run.DepositsFound, run.SkippedUnits))
	met.BumpAvg("pass.duration", float64(time.Since(start)/time.Millisecond))
}

func (o *Orchestrator) finish(ctx bCtx.Ctx, run *domain.ScanRun, status domain.ScanStatus, note string) {
	now := time.Now()
	run.Status = status
	run.FinishedAt = &now
	run.ProgressPercent = 100
	run.OutputLog = append(run.OutputLog, note)
	if err := o.scanRuns.Update(ctx, run); err != nil {
		ctx.WithFields(log.Fields{
			"err":    err,
			"scanId": run.ScanId,
		}).Error("failed to finalize scan run")
	}
	ctx.WithFields(log.Fields{
		"scanId":   run.ScanId,
		"status":   status,
		"deposits": run.DepositsFound,
		"skipped":  run.SkippedUnits,
	}).Info("scan run finished")
}

func (o *Orchestrator) scanChain(ctx bCtx.Ctx, chain domain.Chain) (*ScanResult, error) {
	scanners, ok := o.scanners[chain.ChainId]
	if !ok {
		return &ScanResult{}, xerrors.Errorf("chain %s: %w", chain.Name, domain.ErrUnsupportedChain)
	}

	merged := &ScanResult{}
	for _, s := range scanners {
		res, err := s.Scan(ctx)
		if res != nil {
			merged.Merge(res)
		}
		if err != nil {
			// keep whatever earlier passes found, the chain is reported failed
			return merged, err
		}
	}
	met.BumpSum("pass.deposits", float64(merged.DepositsFound), "chain", chain.Name)
	return merged, nil
}
