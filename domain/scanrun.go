package domain

import (
	"time"

	"github.com/ihrahat0/deposcan/base/ctx"
)

type ScanStatus string

const (
	ScanStatusRunning   ScanStatus = "running"
	ScanStatusCompleted ScanStatus = "completed"
	ScanStatusFailed    ScanStatus = "failed"
)

// ScanRun is one orchestrated batch pass. Terminal once status leaves
// running. A completed run reports whatever subset succeeded, per-chain
// failures are recorded in ChainErrors instead of failing the run.
type ScanRun struct {
	ScanId          string            `bson:"scanId" json:"scanId"`
	RequestedChains []string          `bson:"requestedChains" json:"requestedChains"`
	Status          ScanStatus        `bson:"status" json:"status"`
	ProgressPercent int               `bson:"progressPercent" json:"progressPercent"`
	StartedAt       time.Time         `bson:"startedAt" json:"startedAt"`
	FinishedAt      *time.Time        `bson:"finishedAt,omitempty" json:"finishedAt,omitempty"`
	OutputLog       []string          `bson:"outputLog" json:"outputLog"`
	ChainErrors     map[string]string `bson:"chainErrors,omitempty" json:"chainErrors,omitempty"`
	DepositsFound   int               `bson:"depositsFound" json:"depositsFound"`
	SkippedUnits    int               `bson:"skippedUnits" json:"skippedUnits"`
}

// Clone returns a deep copy, safe to hand to callers while the pass keeps
// mutating the original.
func (r *ScanRun) Clone() *ScanRun {
	clone := *r
	if r.FinishedAt != nil {
		t := *r.FinishedAt
		clone.FinishedAt = &t
	}
	if r.RequestedChains != nil {
		clone.RequestedChains = make([]string, len(r.RequestedChains))
		copy(clone.RequestedChains, r.RequestedChains)
	}
	if r.OutputLog != nil {
		clone.OutputLog = make([]string, len(r.OutputLog))
		copy(clone.OutputLog, r.OutputLog)
	}
	if r.ChainErrors != nil {
		clone.ChainErrors = make(map[string]string, len(r.ChainErrors))
		for k, v := range r.ChainErrors {
			clone.ChainErrors[k] = v
		}
	}
	return &clone
}

type ScanRunRepo interface {
	Store(ctx.Ctx, *ScanRun) error
	Update(ctx.Ctx, *ScanRun) error
	GetLatest(ctx.Ctx) (*ScanRun, error)
	Get(c ctx.Ctx, scanId string) (*ScanRun, error)
}

type ScanRunUseCase interface {
	Store(ctx.Ctx, *ScanRun) error
	Update(ctx.Ctx, *ScanRun) error
	GetLatest(ctx.Ctx) (*ScanRun, error)
	Get(c ctx.Ctx, scanId string) (*ScanRun, error)
}

// ScanOrchestratorUseCase launches batch passes. Trigger returns the run
// in running state, or ErrScanInProgress while another pass is active.
type ScanOrchestratorUseCase interface {
	Trigger(c ctx.Ctx, chains []Chain) (*ScanRun, error)
}

// ScanArtifactRepo persists the last completed pass's results as a local
// JSON file, read back on startup so comparison state survives restarts.
type ScanArtifactRepo interface {
	Write(c ctx.Ctx, run *ScanRun) error
	Read(c ctx.Ctx) (*ScanRun, error)
}
