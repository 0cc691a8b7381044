package usecase

import (
	"time"

	bCtx "github.com/ihrahat0/deposcan/base/ctx"
	"github.com/ihrahat0/deposcan/domain"
)

type balanceSnapshotUseCase struct {
	snapshotRepo domain.BalanceSnapshotRepo
	ctxTimeout   time.Duration
}

func NewBalanceSnapshotUseCase(r domain.BalanceSnapshotRepo, ctxTimeout time.Duration) domain.BalanceSnapshotUseCase {
	return &balanceSnapshotUseCase{
		snapshotRepo: r,
		ctxTimeout:   ctxTimeout,
	}
}

func (u *balanceSnapshotUseCase) Get(c bCtx.Ctx, id *domain.BalanceSnapshotId) (*domain.BalanceSnapshot, error) {
	ctx, cancel := bCtx.WithTimeout(c, u.ctxTimeout)
	defer cancel()
	return u.snapshotRepo.Get(ctx, id)
}

func (u *balanceSnapshotUseCase) Upsert(c bCtx.Ctx, snapshot *domain.BalanceSnapshot) error {
	ctx, cancel := bCtx.WithTimeout(c, u.ctxTimeout)
	defer cancel()
	return u.snapshotRepo.Upsert(ctx, snapshot)
}
