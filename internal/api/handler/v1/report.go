package v1

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"

	"github.com/ovenledger/bakehouse-api/internal/api/handler/v1/response"
	"github.com/ovenledger/bakehouse-api/internal/repository"
)

type ReportService interface {
	SalesReport(ctx context.Context, tenantID uint, filter repository.SaleFilter) (*excelize.File, error)
	InventoryReport(ctx context.Context, tenantID uint, filter repository.ProductFilter) (*excelize.File, error)
}

type ReportHandler struct {
	svc  ReportService
	uSvc UserService
}

func NewReportHandler(svc ReportService, uSvc UserService) *ReportHandler {
	return &ReportHandler{
		svc:  svc,
		uSvc: uSvc,
	}
}

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

func streamXLSX(ctx *gin.Context, op, name string, f *excelize.File) {
	ctx.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	ctx.Header("Content-Type", xlsxContentType)
	ctx.Status(http.StatusOK)

	if _, err := f.WriteTo(ctx.Writer); err != nil {
		response.RenderErr(ctx, response.ErrInternalServerError(fmt.Errorf("%v -> f.WriteTo -> %w", op, err)))
	}
}

// HandleSalesReport godoc
// @Summary      Download a sales report
// @Description  Exports the tenant's sales for the requested window as an XLSX workbook.
// @Tags         reports
// @Produce      octet-stream
// @Param        branch  query  string  false  "filter by branch"
// @Param        from    query  string  false  "start date (2006-01-02)"
// @Param        to      query  string  false  "end date (2006-01-02)"
// @Success      200
// @Failure      400  {object}  response.Err
// @Failure      401  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /reports/sales.xlsx [get]
// @Security BearerAuth
func (h *ReportHandler) HandleSalesReport(ctx *gin.Context) {
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

	f, err := h.svc.SalesReport(ctx.Request.Context(), user.EffectiveTenantID(), filter)
	if err != nil {
		response.RenderErr(ctx, response.ErrInternalServerError(
			fmt.Errorf("HandleSalesReport -> h.svc.SalesReport -> %w", err)))
		return
	}

	name := fmt.Sprintf("sales-%s.xlsx", time.Now().UTC().Format("2006-01-02"))
	streamXLSX(ctx, "HandleSalesReport", name, f)
}

// HandleInventoryReport godoc
// @Summary      Download an inventory report
// @Description  Exports the tenant's products with their derived expiry status as an XLSX workbook.
// @Tags         reports
// @Produce      octet-stream
// @Param        branch    query  string  false  "filter by branch"
// @Param        category  query  string  false  "filter by category"
// @Success      200
// @Failure      401  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /reports/inventory.xlsx [get]
// @Security BearerAuth
func (h *ReportHandler) HandleInventoryReport(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	filter := repository.ProductFilter{
		Branch:   ctx.Query("branch"),
		Category: ctx.Query("category"),
	}

	f, err := h.svc.InventoryReport(ctx.Request.Context(), user.EffectiveTenantID(), filter)
	if err != nil {
		response.RenderErr(ctx, response.ErrInternalServerError(
			fmt.Errorf("HandleInventoryReport -> h.svc.InventoryReport -> %w", err)))
		return
	}

	name := fmt.Sprintf("inventory-%s.xlsx", time.Now().UTC().Format("2006-01-02"))
	streamXLSX(ctx, "HandleInventoryReport", name, f)
}
