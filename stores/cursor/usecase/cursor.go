package usecase

import (
	"time"

	bCtx "github.com/ihrahat0/deposcan/base/ctx"
	"github.com/ihrahat0/deposcan/domain"
)

type chainCursorUseCase struct {
	chainCursorRepo domain.ChainCursorRepo
	ctxTimeout      time.Duration
}

func NewChainCursorUseCase(r domain.ChainCursorRepo, ctxTimeout time.Duration) domain.ChainCursorUseCase {
	return &chainCursorUseCase{
		chainCursorRepo: r,
		ctxTimeout:      ctxTimeout,
	}
}

func (u *chainCursorUseCase) Get(c bCtx.Ctx, id *domain.ChainCursorId) (*domain.ChainCursor, error) {
	ctx, cancel := bCtx.WithTimeout(c, u.ctxTimeout)
	defer cancel()
	return u.chainCursorRepo.Get(ctx, id)
}

func (u *chainCursorUseCase) Update(c bCtx.Ctx, cursor *domain.ChainCursor) error {
	ctx, cancel := bCtx.WithTimeout(c, u.ctxTimeout)
	defer cancel()
	return u.chainCursorRepo.Update(ctx, cursor)
}

func (u *chainCursorUseCase) Store(c bCtx.Ctx, cursor *domain.ChainCursor) error {
	ctx, cancel := bCtx.WithTimeout(c, u.ctxTimeout)
	defer cancel()
	return u.chainCursorRepo.Store(ctx, cursor)
}
