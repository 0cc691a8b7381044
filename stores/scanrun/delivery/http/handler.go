package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	bCtx "github.com/ihrahat0/deposcan/base/ctx"
	"github.com/ihrahat0/deposcan/base/delivery"
	"github.com/ihrahat0/deposcan/domain"
)

type handler struct {
	scanRun      domain.ScanRunUseCase
	orchestrator domain.ScanOrchestratorUseCase
}

func New(e *echo.Echo, scanRun domain.ScanRunUseCase, orchestrator domain.ScanOrchestratorUseCase) {
	h := &handler{scanRun, orchestrator}
	e.POST("/scans", h.triggerScan)
	e.GET("/scans/latest", h.getLatestScan)
	e.GET("/scans/:scanId", h.getScan)
}

func (h *handler) triggerScan(_ctx echo.Context) error {
	ctx := _ctx.Get("ctx").(bCtx.Ctx)
	type params struct {
		Chains string `json:"chains"`
	}

	p := &params{}
	if err := _ctx.Bind(p); err != nil {
		return delivery.MakeJsonResp(_ctx, http.StatusBadRequest, "invalid params")
	}
	if p.Chains == "" {
		p.Chains = "all"
	}

	chains, err := domain.ParseChainList(p.Chains)
	if err != nil {
		return delivery.MakeJsonResp(_ctx, http.StatusBadRequest, err)
	}

	run, err := h.orchestrator.Trigger(ctx, chains)
	if err == domain.ErrScanInProgress {
		return delivery.MakeJsonResp(_ctx, http.StatusConflict, err)
	} else if err != nil {
		return delivery.MakeJsonResp(_ctx, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(_ctx, http.StatusAccepted, run)
}

func (h *handler) getLatestScan(_ctx echo.Context) error {
	ctx := _ctx.Get("ctx").(bCtx.Ctx)

	run, err := h.scanRun.GetLatest(ctx)
	if err == domain.ErrNotFound {
		return delivery.MakeJsonResp(_ctx, http.StatusNotFound, err)
	} else if err != nil {
		return delivery.MakeJsonResp(_ctx, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(_ctx, http.StatusOK, run)
}

func (h *handler) getScan(_ctx echo.Context) error {
	ctx := _ctx.Get("ctx").(bCtx.Ctx)

	run, err := h.scanRun.Get(ctx, _ctx.Param("scanId"))
	if err == domain.ErrNotFound {
		return delivery.MakeJsonResp(_ctx, http.StatusNotFound, err)
	} else if err != nil {
		return delivery.MakeJsonResp(_ctx, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(_ctx, http.StatusOK, run)
}
