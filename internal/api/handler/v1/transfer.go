package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ovenledger/bakehouse-api/internal/api/handler/v1/request"
	"github.com/ovenledger/bakehouse-api/internal/api/handler/v1/response"
	"github.com/ovenledger/bakehouse-api/internal/domain"
	"github.com/ovenledger/bakehouse-api/internal/service"
)

type TransferService interface {
	CreateTransfer(ctx context.Context, tenantID uint, transfer domain.StockTransfer) (domain.StockTransfer, error)
	GetTransfer(ctx context.Context, tenantID, id uint) (domain.StockTransfer, error)
	ListTransfers(ctx context.Context, tenantID uint, status domain.TransferStatus) ([]domain.StockTransfer, error)
	Dispatch(ctx context.Context, tenantID, id uint, approvedBy *uint) (domain.StockTransfer, error)
	Complete(ctx context.Context, tenantID, id uint, approvedBy *uint) (domain.StockTransfer, error)
	Cancel(ctx context.Context, tenantID, id uint) (domain.StockTransfer, error)
}

type TransferHandler struct {
	svc  TransferService
	uSvc UserService
}

func NewTransferHandler(svc TransferService, uSvc UserService) *TransferHandler {
	return &TransferHandler{
		svc:  svc,
		uSvc: uSvc,
	}
}

func renderTransferErr(ctx *gin.Context, op string, err error) {
	switch {
	case errors.Is(err, service.ErrTransferNotFound):
		response.RenderErr(ctx, response.ErrNotFound("transfer", "ID", ctx.Param("transferID")))
	case errors.Is(err, service.ErrProductNotFound):
		response.RenderErr(ctx, response.ErrNotFound("product", "ID", ctx.Param("transferID")))
	case errors.Is(err, service.ErrInvalidTransition):
		response.RenderErr(ctx, response.ErrConflict(service.ErrInvalidTransition))
	case errors.Is(err, service.ErrTransferIsTerminal):
		response.RenderErr(ctx, response.ErrConflict(service.ErrTransferIsTerminal))
	case errors.Is(err, service.ErrInsufficientStock):
		response.RenderErr(ctx, response.ErrBadRequest(service.ErrInsufficientStock))
	case errors.Is(err, service.ErrSameBranch):
		response.RenderErr(ctx, response.ErrBadRequest(service.ErrSameBranch))
	case errors.Is(err, service.ErrTenantMismatch):
		response.RenderErr(ctx, response.ErrPermissionDenied(service.ErrTenantMismatch))
	default:
		response.RenderErr(ctx, response.ErrInternalServerError(fmt.Errorf("%v -> %w", op, err)))
	}
}

// HandleCreateTransfer godoc
// @Summary      Create a stock transfer
// @Description  Records a Pending transfer between two branches. Stock moves only on completion.
// @Tags         transfers
// @Accept       json
// @Produce      json
// @Param        input  body      request.CreateTransferRequest  true  "transfer details"
// @Success      201    {object}  domain.StockTransfer
// @Failure      400    {object}  response.Err
// @Failure      403    {object}  response.Err
// @Failure      404    {object}  response.Err
// @Failure      500    {object}  response.Err
// @Router       /transfers [post]
// @Security BearerAuth
func (h *TransferHandler) HandleCreateTransfer(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var input request.CreateTransferRequest
	if err := ctx.ShouldBindJSON(&input); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := input.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	transfer := domain.StockTransfer{
		ProductID:  input.ProductID,
		Quantity:   input.Quantity,
		FromBranch: input.FromBranch,
		ToBranch:   input.ToBranch,
	}

	created, err := h.svc.CreateTransfer(ctx.Request.Context(), user.EffectiveTenantID(), transfer)
	if err != nil {
		renderTransferErr(ctx, "HandleCreateTransfer -> h.svc.CreateTransfer", err)
		return
	}

	ctx.JSON(http.StatusCreated, created)
}

// HandleGetTransfers godoc
// @Summary      List the tenant's transfers
// @Tags         transfers
// @Produce      json
// @Param        status  query     string  false  "filter by status"
// @Success      200    {array}   domain.StockTransfer
// @Failure      401    {object}  response.Err
// @Failure      500    {object}  response.Err
// @Router       /transfers [get]
// @Security BearerAuth
func (h *TransferHandler) HandleGetTransfers(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	transfers, err := h.svc.ListTransfers(ctx.Request.Context(), user.EffectiveTenantID(),
		domain.TransferStatus(ctx.Query("status")))
	if err != nil {
		renderTransferErr(ctx, "HandleGetTransfers -> h.svc.ListTransfers", err)
		return
	}

	ctx.JSON(http.StatusOK, transfers)
}

// HandleGetTransfer godoc
// @Summary      Get one transfer
// @Tags         transfers
// @Produce      json
// @Param        transferID  path      int  true  "transfer ID"
// @Success      200    {object}  domain.StockTransfer
// @Failure      400    {object}  response.Err
// @Failure      403    {object}  response.Err
// @Failure      404    {object}  response.Err
// @Failure      500    {object}  response.Err
// @Router       /transfers/{transferID} [get]
// @Security BearerAuth
func (h *TransferHandler) HandleGetTransfer(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	transferID, err := parseIDParam(ctx, "transferID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	transfer, err := h.svc.GetTransfer(ctx.Request.Context(), user.EffectiveTenantID(), transferID)
	if err != nil {
		renderTransferErr(ctx, "HandleGetTransfer -> h.svc.GetTransfer", err)
		return
	}

	ctx.JSON(http.StatusOK, transfer)
}

// HandleUpdateTransferStatus godoc
// @Summary      Transition a transfer
// @Description  Dispatch (Pending to In Transit), complete (moves the stock atomically) or cancel.
// @Tags         transfers
// @Accept       json
// @Produce      json
// @Param        transferID  path      int                                  true  "transfer ID"
// @Param        input       body      request.UpdateTransferStatusRequest  true  "action"
// @Success      200    {object}  domain.StockTransfer
// @Failure      400    {object}  response.Err
// @Failure      403    {object}  response.Err
// @Failure      404    {object}  response.Err
// @Failure      409    {object}  response.Err
// @Failure      500    {object}  response.Err
// @Router       /transfers/{transferID}/status [post]
// @Security BearerAuth
func (h *TransferHandler) HandleUpdateTransferStatus(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	transferID, err := parseIDParam(ctx, "transferID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	var input request.UpdateTransferStatusRequest
	if err := ctx.ShouldBindJSON(&input); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := input.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	tenantID := user.EffectiveTenantID()

	var transfer domain.StockTransfer
	switch input.Action {
	case "dispatch":
		transfer, err = h.svc.Dispatch(ctx.Request.Context(), tenantID, transferID, &user.ID)
	case "complete":
		transfer, err = h.svc.Complete(ctx.Request.Context(), tenantID, transferID, &user.ID)
	case "cancel":
		transfer, err = h.svc.Cancel(ctx.Request.Context(), tenantID, transferID)
	}
	if err != nil {
		renderTransferErr(ctx, "HandleUpdateTransferStatus -> h.svc."+input.Action, err)
		return
	}

	ctx.JSON(http.StatusOK, transfer)
}
