package usecase

import (
	"time"

	bCtx "github.com/ihrahat0/deposcan/base/ctx"
	"github.com/ihrahat0/deposcan/domain"
)

type depositQueryUseCase struct {
	depositRepo domain.DepositRepo
	ctxTimeout  time.Duration
}

func NewDepositQueryUseCase(r domain.DepositRepo, ctxTimeout time.Duration) domain.DepositQueryUseCase {
	return &depositQueryUseCase{
		depositRepo: r,
		ctxTimeout:  ctxTimeout,
	}
}

func (u *depositQueryUseCase) Recent(c bCtx.Ctx, chainId domain.ChainId, wallet domain.Address, limit int) ([]*domain.DepositRecord, error) {
	ctx, cancel := bCtx.WithTimeout(c, u.ctxTimeout)
	defer cancel()
	return u.depositRepo.Search(ctx, chainId, wallet, limit)
}
