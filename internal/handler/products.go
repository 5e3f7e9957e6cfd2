package handler

import (
	"net/http"

	"github.com/MarceloCamachh/tecnoWebEmail/internal/apierror"
	"github.com/MarceloCamachh/tecnoWebEmail/internal/dto"
	"github.com/MarceloCamachh/tecnoWebEmail/internal/service"

	"github.com/gin-gonic/gin"
)

type ProductsHandler struct {
	svc service.ProductService
	bom service.BomService
}

func NewProductsHandler(svc service.ProductService, bom service.BomService) *ProductsHandler {
	return &ProductsHandler{svc: svc, bom: bom}
}

// CreateProduct godoc
// @Summary      Create a product
// @Tags         products
// @Accept       json
// @Produce      json
// @Param        body body dto.CreateProductRequest true "Product"
// @Success      201  {object} dto.ProductResponse
// @Failure      409  {object} apierror.APIError
// @Router       /v1/products [post]
func (h *ProductsHandler) CreateProduct(c *gin.Context) {
	var req dto.CreateProductRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Create(c.Request.Context(), req)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// GetProduct godoc
// @Summary      Get one product
// @Tags         products
// @Produce      json
// @Param        id path string true "Product UUID"
// @Success      200 {object} dto.ProductResponse
// @Failure      404 {object} apierror.APIError
// @Router       /v1/products/{id} [get]
func (h *ProductsHandler) GetProduct(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	resp, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ListProducts godoc
// @Summary      List products
// @Tags         products
// @Produce      json
// @Param        name  query string false "Name filter (substring)"
// @Param        page  query int    false "Page (default 1)"
// @Param        limit query int    false "Rows per page (default 20)"
// @Success      200 {array} dto.ProductResponse
// @Router       /v1/products [get]
func (h *ProductsHandler) ListProducts(c *gin.Context) {
	var filter dto.CatalogFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	products, total, err := h.svc.List(c.Request.Context(), filter)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": products, "total": total})
}

// GetPrice godoc
// @Summary      Price lookup by SKU
// @Description  Served from the redis read-through cache when warm.
// @Tags         products
// @Produce      json
// @Param        sku path string true "Product SKU"
// @Success      200 {object} dto.PriceResponse
// @Failure      404 {object} apierror.APIError
// @Router       /v1/price/{sku} [get]
func (h *ProductsHandler) GetPrice(c *gin.Context) {
	sku := c.Param("sku")
	resp, err := h.svc.PriceBySKU(c.Request.Context(), sku)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// RegisterProductMovement godoc
// @Summary      Register a product stock movement
// @Description  ENTRY adds, EXIT subtracts (409 when stock is short), ADJUSTMENT sets the balance. Product stock moves in whole units.
// @Tags         products
// @Accept       json
// @Produce      json
// @Param        id   path string true "Product UUID"
// @Param        body body dto.RegisterMovementRequest true "Movement"
// @Success      201  {object} dto.ProductMovementResponse
// @Failure      409  {object} apierror.APIError
// @Router       /v1/products/{id}/movements [post]
func (h *ProductsHandler) RegisterProductMovement(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	var req dto.RegisterMovementRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.RegisterMovement(c.Request.Context(), id, req)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// ListProductMovements godoc
// @Summary      Movement history of a product
// @Tags         products
// @Produce      json
// @Param        id path string true "Product UUID"
// @Success      200 {array} dto.ProductMovementResponse
// @Router       /v1/products/{id}/movements [get]
func (h *ProductsHandler) ListProductMovements(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	resp, err := h.svc.ListMovements(c.Request.Context(), id)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ListProductBom godoc
// @Summary      Bill of materials of a product
// @Tags         products
// @Produce      json
// @Param        id path string true "Product UUID"
// @Success      200 {array} dto.BomEdgeResponse
// @Router       /v1/products/{id}/bom [get]
func (h *ProductsHandler) ListProductBom(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	resp, err := h.bom.EdgesForProduct(c.Request.Context(), id)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
