package http

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	bCtx "github.com/ihrahat0/deposcan/base/ctx"
	"github.com/ihrahat0/deposcan/base/delivery"
	"github.com/ihrahat0/deposcan/base/validator"
	"github.com/ihrahat0/deposcan/domain"
)

const (
	defaultLimit = 20
	maxLimit     = 100
)

type handler struct {
	deposits domain.DepositQueryUseCase
}

func New(e *echo.Echo, deposits domain.DepositQueryUseCase) {
	h := &handler{deposits}
	e.GET("/chains/:chain/wallets/:address/deposits", h.listDeposits)
}

func (h *handler) listDeposits(_ctx echo.Context) error {
	ctx := _ctx.Get("ctx").(bCtx.Ctx)

	chain, ok := domain.ChainByName(_ctx.Param("chain"))
	if !ok {
		return delivery.MakeJsonResp(_ctx, http.StatusBadRequest, domain.ErrUnsupportedChain)
	}

	wallet := domain.Address(_ctx.Param("address"))
	if chain.Kind == domain.ChainKindAccount {
		if !validator.IsValidAddress(wallet.ToLowerStr()) {
			return delivery.MakeJsonResp(_ctx, http.StatusBadRequest, domain.ErrInvalidAddress)
		}
		wallet = wallet.ToLower()
	}

	limit := defaultLimit
	if raw := _ctx.QueryParam("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			return delivery.MakeJsonResp(_ctx, http.StatusBadRequest, "invalid limit")
		}
		limit = n
	}
	if limit > maxLimit {
		limit = maxLimit
	}

	records, err := h.deposits.Recent(ctx, chain.ChainId, wallet, limit)
	if err != nil {
		return delivery.MakeJsonResp(_ctx, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(_ctx, http.StatusOK, records)
}
