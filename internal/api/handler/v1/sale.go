package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ovenledger/bakehouse-api/internal/api/handler/v1/request"
	"github.com/ovenledger/bakehouse-api/internal/api/handler/v1/response"
	"github.com/ovenledger/bakehouse-api/internal/domain"
	"github.com/ovenledger/bakehouse-api/internal/repository"
	"github.com/ovenledger/bakehouse-api/internal/service"
)

type SaleService interface {
	CreateSale(ctx context.Context, tenantID, soldBy uint, sale domain.Sale) (domain.Sale, error)
	GetSale(ctx context.Context, tenantID, id uint) (domain.Sale, error)
	ListSales(ctx context.Context, tenantID uint, filter repository.SaleFilter) ([]domain.Sale, error)
}

type SaleHandler struct {
	svc  SaleService
	uSvc UserService
}

func NewSaleHandler(svc SaleService, uSvc UserService) *SaleHandler {
	return &SaleHandler{
		svc:  svc,
		uSvc: uSvc,
	}
}

// saleFilterFromQuery parses ?branch=&from=&to= where dates are 2006-01-02.
func saleFilterFromQuery(ctx *gin.Context) (repository.SaleFilter, error) {
	filter := repository.SaleFilter{Branch: ctx.Query("branch")}

	if raw := ctx.Query("from"); raw != "" {
		from, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return repository.SaleFilter{}, fmt.Errorf("invalid from date: %w", err)
		}
		filter.From = &from
	}

	if raw := ctx.Query("to"); raw != "" {
		to, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return repository.SaleFilter{}, fmt.Errorf("invalid to date: %w", err)
		}
		filter.To = &to
	}

	return filter, nil
}

func renderSaleErr(ctx *gin.Context, op string, err error) {
	switch {
	case errors.Is(err, service.ErrSaleNotFound):
		response.RenderErr(ctx, response.ErrNotFound("sale", "ID", ctx.Param("saleID")))
	case errors.Is(err, service.ErrProductNotFound):
		response.RenderErr(ctx, response.ErrBadRequest(service.ErrProductNotFound))
	case errors.Is(err, service.ErrBillNumberExists):
		response.RenderErr(ctx, response.ErrConflict(service.ErrBillNumberExists))
	case errors.Is(err, service.ErrSaleWithoutItems):
		response.RenderErr(ctx, response.ErrBadRequest(service.ErrSaleWithoutItems))
	case errors.Is(err, service.ErrInsufficientStock):
		response.RenderErr(ctx, response.ErrBadRequest(service.ErrInsufficientStock))
	case errors.Is(err, service.ErrTenantMismatch):
		response.RenderErr(ctx, response.ErrPermissionDenied(service.ErrTenantMismatch))
	default:
		response.RenderErr(ctx, response.ErrInternalServerError(fmt.Errorf("%v -> %w", op, err)))
	}
}

// HandleCreateSale godoc
// @Summary      Record a sale
// @Description  Records a bill and decrements stock for each line item. The bill number must be unique within the shop.
// @Tags         sales
// @Accept       json
// @Produce      json
// @Param        input  body      request.CreateSaleRequest  true  "sale details"
// @Success      201    {object}  domain.Sale
// @Failure      400    {object}  response.Err
// @Failure      403    {object}  response.Err
// @Failure      409    {object}  response.Err
// @Failure      500    {object}  response.Err
// @Router       /sales [post]
// @Security BearerAuth
func (h *SaleHandler) HandleCreateSale(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var input request.CreateSaleRequest
	if err := ctx.ShouldBindJSON(&input); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := input.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	sale := domain.Sale{
		BillNumber: input.BillNumber,
		Branch:     input.Branch,
		Discount:   input.Discount,
		Items:      make([]domain.SaleItem, 0, len(input.Items)),
	}
	for _, item := range input.Items {
		sale.Items = append(sale.Items, domain.SaleItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		})
	}

	created, err := h.svc.CreateSale(ctx.Request.Context(), user.EffectiveTenantID(), user.ID, sale)
	if err != nil {
		renderSaleErr(ctx, "HandleCreateSale -> h.svc.CreateSale", err)
		return
	}

	ctx.JSON(http.StatusCreated, created)
}

// HandleGetSales godoc
// @Summary      List the tenant's sales
// @Tags         sales
// @Produce      json
// @Param        branch  query     string  false  "filter by branch"
// @Param        from    query     string  false  "start date (2006-01-02)"
// @Param        to      query     string  false  "end date (2006-01-02)"
// @Success      200    {array}   domain.Sale
// @Failure      400    {object}  response.Err
// @Failure      401    {object}  response.Err
// @Failure      500    {object}  response.Err
// @Router       /sales [get]
// @Security BearerAuth
func (h *SaleHandler) HandleGetSales(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	filter, err := saleFilterFromQuery(ctx)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	sales, err := h.svc.ListSales(ctx.Request.Context(), user.EffectiveTenantID(), filter)
	if err != nil {
		renderSaleErr(ctx, "HandleGetSales -> h.svc.ListSales", err)
		return
	}

	ctx.JSON(http.StatusOK, sales)
}

// HandleGetSale godoc
// @Summary      Get one sale
// @Tags         sales
// @Produce      json
// @Param        saleID  path      int  true  "sale ID"
// @Success      200    {object}  domain.Sale
// @Failure      400    {object}  response.Err
// @Failure      403    {object}  response.Err
// @Failure      404    {object}  response.Err
// @Failure      500    {object}  response.Err
// @Router       /sales/{saleID} [get]
// @Security BearerAuth
func (h *SaleHandler) HandleGetSale(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	saleID, err := parseIDParam(ctx, "saleID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	sale, err := h.svc.GetSale(ctx.Request.Context(), user.EffectiveTenantID(), saleID)
	if err != nil {
		renderSaleErr(ctx, "HandleGetSale -> h.svc.GetSale", err)
		return
	}

	ctx.JSON(http.StatusOK, sale)
}
