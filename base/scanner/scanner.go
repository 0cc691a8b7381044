package scanner

import (
	"sync"

	"github.com/ihrahat0/deposcan/base/ctx"
	"github.com/ihrahat0/deposcan/base/metrics"
	"github.com/ihrahat0/deposcan/domain"
)

var metOnce sync.Once
var met metrics.Service

func initMetrics() {
	metOnce.Do(func() {
		met = metrics.New("scanner")
	})
}

// ScanResult aggregates one scanner's pass over one chain.
type ScanResult struct {
	DepositsFound int
	SkippedUnits  int
	Notes         []string
}

func (r *ScanResult) Merge(other *ScanResult) {
	r.DepositsFound += other.DepositsFound
	r.SkippedUnits += other.SkippedUnits
	r.Notes = append(r.Notes, other.Notes...)
}

// ChainScanner is one detection pass over one chain. Both transaction
// scanners and the snapshot engine implement it, the orchestrator and the
// realtime monitor only drive this interface.
type ChainScanner interface {
	Chain() domain.Chain
	Scan(ctx.Ctx) (*ScanResult, error)
}
