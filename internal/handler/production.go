package handler

import (
	"net/http"

	"github.com/MarceloCamachh/tecnoWebEmail/internal/dto"
	"github.com/MarceloCamachh/tecnoWebEmail/internal/service"

	"github.com/gin-gonic/gin"
)

type ProductionHandler struct{ svc service.ProductionService }

func NewProductionHandler(svc service.ProductionService) *ProductionHandler {
	return &ProductionHandler{svc: svc}
}

// CreateProductionOrder godoc
// @Summary      Create a production order for an order line
// @Description  One production order per order detail; a duplicate create is a 409.
// @Tags         production
// @Accept       json
// @Produce      json
// @Param        body body dto.CreateProductionOrderRequest true "Production order"
// @Success      201  {object} dto.ProductionOrderResponse
// @Failure      409  {object} apierror.APIError
// @Router       /v1/production-orders [post]
func (h *ProductionHandler) CreateProductionOrder(c *gin.Context) {
	var req dto.CreateProductionOrderRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CreateForDetail(c.Request.Context(), req)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// GetProductionOrder godoc
// @Summary      Get one production order
// @Tags         production
// @Produce      json
// @Param        id path string true "Production order UUID"
// @Success      200 {object} dto.ProductionOrderResponse
// @Failure      404 {object} apierror.APIError
// @Router       /v1/production-orders/{id} [get]
func (h *ProductionHandler) GetProductionOrder(c *gin.Context) {
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

// UpdateProductionStatus godoc
// @Summary      Move a production order to a new status
// @Tags         production
// @Accept       json
// @Produce      json
// @Param        id   path string true "Production order UUID"
// @Param        body body dto.UpdateProductionStatusRequest true "New status"
// @Success      200 {object} dto.ProductionOrderResponse
// @Failure      404 {object} apierror.APIError
// @Failure      422 {object} apierror.APIError
// @Router       /v1/production-orders/{id}/status [put]
func (h *ProductionHandler) UpdateProductionStatus(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateProductionStatusRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.UpdateStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ListProductionOrders godoc
// @Summary      List production orders
// @Tags         production
// @Produce      json
// @Param        status query string false "Pending | InProgress | Completed"
// @Success      200 {array} dto.ProductionOrderResponse
// @Router       /v1/production-orders [get]
func (h *ProductionHandler) ListProductionOrders(c *gin.Context) {
	resp, err := h.svc.List(c.Request.Context(), c.Query("status"))
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
