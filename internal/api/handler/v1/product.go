package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/ovenledger/bakehouse-api/internal/api/handler/v1/request"
	"github.com/ovenledger/bakehouse-api/internal/api/handler/v1/response"
	"github.com/ovenledger/bakehouse-api/internal/domain"
	"github.com/ovenledger/bakehouse-api/internal/service"
)

type InventoryService interface {
	CreateProduct(ctx context.Context, tenantID, addedBy uint, product domain.Product) (domain.Product, error)
	GetProduct(ctx context.Context, tenantID, id uint) (domain.Product, error)
	ListProducts(ctx context.Context, tenantID uint, filter service.ProductListFilter) ([]domain.Product, error)
	UpdateProduct(ctx context.Context, tenantID uint, product domain.Product) (domain.Product, error)
	DeleteProduct(ctx context.Context, tenantID, id uint) error
	AdjustStock(ctx context.Context, tenantID, id uint, delta int) (domain.Product, error)
	AddBatch(ctx context.Context, tenantID uint, batch domain.Batch) (domain.Batch, error)
	ListBatches(ctx context.Context, tenantID, productID uint) ([]domain.Batch, error)
	DeleteBatch(ctx context.Context, tenantID, batchID uint) error
}

type ProductHandler struct {
	svc  InventoryService
	uSvc UserService
}

func NewProductHandler(svc InventoryService, uSvc UserService) *ProductHandler {
	return &ProductHandler{
		svc:  svc,
		uSvc: uSvc,
	}
}

func parseIDParam(ctx *gin.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(ctx.Param(name), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %v", name)
	}

	return uint(id), nil
}

// renderInventoryErr maps the shared inventory error taxonomy onto HTTP
// statuses. Tenant mismatches fail closed as 403, not 404.
func renderInventoryErr(ctx *gin.Context, op string, err error) {
	switch {
	case errors.Is(err, service.ErrProductNotFound):
		response.RenderErr(ctx, response.ErrNotFound("product", "ID", ctx.Param("productID")))
	case errors.Is(err, service.ErrBatchNotFound):
		response.RenderErr(ctx, response.ErrNotFound("batch", "ID", ctx.Param("batchID")))
	case errors.Is(err, service.ErrInsufficientStock):
		response.RenderErr(ctx, response.ErrBadRequest(service.ErrInsufficientStock))
	case errors.Is(err, service.ErrTenantMismatch):
		response.RenderErr(ctx, response.ErrPermissionDenied(service.ErrTenantMismatch))
	default:
		response.RenderErr(ctx, response.ErrInternalServerError(fmt.Errorf("%v -> %w", op, err)))
	}
}

// HandleCreateProduct godoc
// @Summary      Create a product
// @Tags         products
// @Accept       json
// @Produce      json
// @Param        input  body      request.CreateProductRequest  true  "product details"
// @Success      201    {object}  domain.Product
// @Failure      400    {object}  response.Err
// @Failure      401    {object}  response.Err
// @Failure      500    {object}  response.Err
// @Router       /products [post]
// @Security BearerAuth
func (h *ProductHandler) HandleCreateProduct(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var input request.CreateProductRequest
	if err := ctx.ShouldBindJSON(&input); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := input.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	product := domain.Product{
		Name:       input.Name,
		Category:   input.Category,
		Branch:     input.Branch,
		Quantity:   input.Quantity,
		Price:      input.Price,
		CostPrice:  input.CostPrice,
		ExpiryDate: input.ExpiryDate,
	}

	created, err := h.svc.CreateProduct(ctx.Request.Context(), user.EffectiveTenantID(), user.ID, product)
	if err != nil {
		renderInventoryErr(ctx, "HandleCreateProduct -> h.svc.CreateProduct", err)
		return
	}

	ctx.JSON(http.StatusCreated, created)
}

// HandleGetProducts godoc
// @Summary      List the tenant's products
// @Tags         products
// @Produce      json
// @Param        branch         query     string  false  "filter by branch"
// @Param        category       query     string  false  "filter by category"
// @Param        expiry_status  query     string  false  "Fresh, Expiring Soon or Expired"
// @Success      200    {array}   domain.Product
// @Failure      401    {object}  response.Err
// @Failure      500    {object}  response.Err
// @Router       /products [get]
// @Security BearerAuth
func (h *ProductHandler) HandleGetProducts(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	filter := service.ProductListFilter{
		Branch:       ctx.Query("branch"),
		Category:     ctx.Query("category"),
		ExpiryStatus: domain.ExpiryStatus(ctx.Query("expiry_status")),
	}

	products, err := h.svc.ListProducts(ctx.Request.Context(), user.EffectiveTenantID(), filter)
	if err != nil {
		renderInventoryErr(ctx, "HandleGetProducts -> h.svc.ListProducts", err)
		return
	}

	ctx.JSON(http.StatusOK, products)
}

// HandleGetProduct godoc
// @Summary      Get one product
// @Tags         products
// @Produce      json
// @Param        productID  path      int  true  "product ID"
// @Success      200    {object}  domain.Product
// @Failure      400    {object}  response.Err
// @Failure      403    {object}  response.Err
// @Failure      404    {object}  response.Err
// @Failure      500    {object}  response.Err
// @Router       /products/{productID} [get]
// @Security BearerAuth
func (h *ProductHandler) HandleGetProduct(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	productID, err := parseIDParam(ctx, "productID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	product, err := h.svc.GetProduct(ctx.Request.Context(), user.EffectiveTenantID(), productID)
	if err != nil {
		renderInventoryErr(ctx, "HandleGetProduct -> h.svc.GetProduct", err)
		return
	}

	ctx.JSON(http.StatusOK, product)
}

// HandleUpdateProduct godoc
// @Summary      Update a product
// @Tags         products
// @Accept       json
// @Produce      json
// @Param        productID  path      int                            true  "product ID"
// @Param        input      body      request.UpdateProductRequest  true  "product details"
// @Success      200    {object}  domain.Product
// @Failure      400    {object}  response.Err
// @Failure      403    {object}  response.Err
// @Failure      404    {object}  response.Err
// @Failure      500    {object}  response.Err
// @Router       /products/{productID} [put]
// @Security BearerAuth
func (h *ProductHandler) HandleUpdateProduct(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	productID, err := parseIDParam(ctx, "productID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	var input request.UpdateProductRequest
	if err := ctx.ShouldBindJSON(&input); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := input.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	product := domain.Product{
		ID:         productID,
		Name:       input.Name,
		Category:   input.Category,
		Branch:     input.Branch,
		Price:      input.Price,
		CostPrice:  input.CostPrice,
		ExpiryDate: input.ExpiryDate,
	}

	updated, err := h.svc.UpdateProduct(ctx.Request.Context(), user.EffectiveTenantID(), product)
	if err != nil {
		renderInventoryErr(ctx, "HandleUpdateProduct -> h.svc.UpdateProduct", err)
		return
	}

	ctx.JSON(http.StatusOK, updated)
}

// HandleDeleteProduct godoc
// @Summary      Delete a product and its batches
// @Tags         products
// @Produce      json
// @Param        productID  path      int  true  "product ID"
// @Success      204    "no content"
// @Failure      400    {object}  response.Err
// @Failure      403    {object}  response.Err
// @Failure      404    {object}  response.Err
// @Failure      500    {object}  response.Err
// @Router       /products/{productID} [delete]
// @Security BearerAuth
func (h *ProductHandler) HandleDeleteProduct(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	productID, err := parseIDParam(ctx, "productID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := h.svc.DeleteProduct(ctx.Request.Context(), user.EffectiveTenantID(), productID); err != nil {
		renderInventoryErr(ctx, "HandleDeleteProduct -> h.svc.DeleteProduct", err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// HandleAdjustStock godoc
// @Summary      Adjust a product's stock
// @Description  Applies a positive or negative delta. Stock can never go below zero.
// @Tags         products
// @Accept       json
// @Produce      json
// @Param        productID  path      int                         true  "product ID"
// @Param        input      body      request.AdjustStockRequest  true  "delta"
// @Success      200    {object}  domain.Product
// @Failure      400    {object}  response.Err
// @Failure      403    {object}  response.Err
// @Failure      404    {object}  response.Err
// @Failure      500    {object}  response.Err
// @Router       /products/{productID}/adjust-stock [post]
// @Security BearerAuth
func (h *ProductHandler) HandleAdjustStock(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	productID, err := parseIDParam(ctx, "productID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	var input request.AdjustStockRequest
	if err := ctx.ShouldBindJSON(&input); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := input.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	product, err := h.svc.AdjustStock(ctx.Request.Context(), user.EffectiveTenantID(), productID, input.Delta)
	if err != nil {
		renderInventoryErr(ctx, "HandleAdjustStock -> h.svc.AdjustStock", err)
		return
	}

	ctx.JSON(http.StatusOK, product)
}

// HandleCreateBatch godoc
// @Summary      Add a batch to a product
// @Tags         products
// @Accept       json
// @Produce      json
// @Param        productID  path      int                         true  "product ID"
// @Param        input      body      request.CreateBatchRequest  true  "batch details"
// @Success      201    {object}  domain.Batch
// @Failure      400    {object}  response.Err
// @Failure      403    {object}  response.Err
// @Failure      404    {object}  response.Err
// @Failure      500    {object}  response.Err
// @Router       /products/{productID}/batches [post]
// @Security BearerAuth
func (h *ProductHandler) HandleCreateBatch(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	productID, err := parseIDParam(ctx, "productID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	var input request.CreateBatchRequest
	if err := ctx.ShouldBindJSON(&input); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := input.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	batch := domain.Batch{
		ProductID:       productID,
		BatchCode:       input.BatchCode,
		Quantity:        input.Quantity,
		ManufactureDate: input.ManufactureDate,
		ExpiryDate:      input.ExpiryDate,
	}

	created, err := h.svc.AddBatch(ctx.Request.Context(), user.EffectiveTenantID(), batch)
	if err != nil {
		renderInventoryErr(ctx, "HandleCreateBatch -> h.svc.AddBatch", err)
		return
	}

	ctx.JSON(http.StatusCreated, created)
}

// HandleGetBatches godoc
// @Summary      List a product's batches
// @Tags         products
// @Produce      json
// @Param        productID  path      int  true  "product ID"
// @Success      200    {array}   domain.Batch
// @Failure      400    {object}  response.Err
// @Failure      403    {object}  response.Err
// @Failure      404    {object}  response.Err
// @Failure      500    {object}  response.Err
// @Router       /products/{productID}/batches [get]
// @Security BearerAuth
func (h *ProductHandler) HandleGetBatches(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	productID, err := parseIDParam(ctx, "productID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	batches, err := h.svc.ListBatches(ctx.Request.Context(), user.EffectiveTenantID(), productID)
	if err != nil {
		renderInventoryErr(ctx, "HandleGetBatches -> h.svc.ListBatches", err)
		return
	}

	ctx.JSON(http.StatusOK, batches)
}

// HandleDeleteBatch godoc
// @Summary      Delete a batch
// @Tags         products
// @Produce      json
// @Param        productID  path      int  true  "product ID"
// @Param        batchID    path      int  true  "batch ID"
// @Success      204    "no content"
// @Failure      400    {object}  response.Err
// @Failure      403    {object}  response.Err
// @Failure      404    {object}  response.Err
// @Failure      500    {object}  response.Err
// @Router       /products/{productID}/batches/{batchID} [delete]
// @Security BearerAuth
func (h *ProductHandler) HandleDeleteBatch(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	batchID, err := parseIDParam(ctx, "batchID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := h.svc.DeleteBatch(ctx.Request.Context(), user.EffectiveTenantID(), batchID); err != nil {
		renderInventoryErr(ctx, "HandleDeleteBatch -> h.svc.DeleteBatch", err)
		return
	}

	ctx.Status(http.StatusNoContent)
}
