package usecase

import (
	"time"

	bCtx "github.com/ihrahat0/deposcan/base/ctx"
	"github.com/ihrahat0/deposcan/domain"
)

type directoryUseCase struct {
	directoryRepo domain.DirectoryRepo
	ctxTimeout    time.Duration
}

func NewDirectoryUseCase(r domain.DirectoryRepo, ctxTimeout time.Duration) domain.DirectoryUseCase {
	return &directoryUseCase{
		directoryRepo: r,
		ctxTimeout:    ctxTimeout,
	}
}

func (u *directoryUseCase) GetMonitoredAddresses(c bCtx.Ctx, chainId domain.ChainId) ([]*domain.MonitoredAddress, error) {
	ctx, cancel := bCtx.WithTimeout(c, u.ctxTimeout)
	defer cancel()
	return u.directoryRepo.GetMonitoredAddresses(ctx, chainId)
}
