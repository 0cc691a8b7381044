package usecase

import (
	"time"

	bCtx "github.com/ihrahat0/deposcan/base/ctx"
	"github.com/ihrahat0/deposcan/domain"
)

type scanRunUseCase struct {
	scanRunRepo  domain.ScanRunRepo
	artifactRepo domain.ScanArtifactRepo
	ctxTimeout   time.Duration
}

// NewScanRunUseCase keeps the mongo record authoritative and mirrors
// terminal runs into the local artifact file.
func NewScanRunUseCase(r domain.ScanRunRepo, artifact domain.ScanArtifactRepo, ctxTimeout time.Duration) domain.ScanRunUseCase {
	return &scanRunUseCase{
		scanRunRepo:  r,
		artifactRepo: artifact,
		ctxTimeout:   ctxTimeout,
	}
}

func (u *scanRunUseCase) Store(c bCtx.Ctx, run *domain.ScanRun) error {
	ctx, cancel := bCtx.WithTimeout(c, u.ctxTimeout)
	defer cancel()
	return u.scanRunRepo.Store(ctx, run)
}

func (u *scanRunUseCase) Update(c bCtx.Ctx, run *domain.ScanRun) error {
	ctx, cancel := bCtx.WithTimeout(c, u.ctxTimeout)
	defer cancel()
	if err := u.scanRunRepo.Update(ctx, run); err != nil {
		return err
	}
	if run.Status != domain.ScanStatusRunning {
		// artifact failures do not fail the run, mongo already has it
		if err := u.artifactRepo.Write(ctx, run); err != nil {
			ctx.WithField("err", err).Warn("failed to mirror scan artifact")
		}
	}
	return nil
}

func (u *scanRunUseCase) GetLatest(c bCtx.Ctx) (*domain.ScanRun, error) {
	ctx, cancel := bCtx.WithTimeout(c, u.ctxTimeout)
	defer cancel()
	run, err := u.scanRunRepo.GetLatest(ctx)
	if err == domain.ErrNotFound {
		// fresh database, fall back to the artifact from a previous deploy
		return u.artifactRepo.Read(ctx)
	}
	return run, err
}

func (u *scanRunUseCase) Get(c bCtx.Ctx, scanId string) (*domain.ScanRun, error) {
	ctx, cancel := bCtx.WithTimeout(c, u.ctxTimeout)
	defer cancel()
	return u.scanRunRepo.Get(ctx, scanId)
}
