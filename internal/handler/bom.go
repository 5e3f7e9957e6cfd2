package handler

import (
	"net/http"
	"strconv"

	"github.com/MarceloCamachh/tecnoWebEmail/internal/apierror"
	"github.com/MarceloCamachh/tecnoWebEmail/internal/dto"
	"github.com/MarceloCamachh/tecnoWebEmail/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type BomHandler struct{ svc service.BomService }

func NewBomHandler(svc service.BomService) *BomHandler { return &BomHandler{svc: svc} }

// AddEdge godoc
// @Summary      Add a bill-of-materials requirement
// @Description  Declares that one unit of the product consumes required_amount of the supply. The pair must not already exist.
// @Tags         bom
// @Accept       json
// @Produce      json
// @Param        body body dto.BomEdgeRequest true "BOM edge"
// @Success      201  {object} dto.BomEdgeResponse
// @Failure      409  {object} apierror.APIError
// @Router       /v1/bom [post]
func (h *BomHandler) AddEdge(c *gin.Context) {
	var req dto.BomEdgeRequest
	if !bindAndValidate(c, &req) {
		return
	}
	productID, _ := uuid.Parse(req.ProductID)
	supplyID, _ := uuid.Parse(req.SupplyID)

	resp, err := h.svc.AddEdge(c.Request.Context(), productID, supplyID, req.RequiredAmount)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// UpdateEdge godoc
// @Summary      Update a bill-of-materials requirement
// @Tags         bom
// @Accept       json
// @Produce      json
// @Param        body body dto.BomEdgeRequest true "BOM edge"
// @Success      200  {object} dto.BomEdgeResponse
// @Failure      404  {object} apierror.APIError
// @Router       /v1/bom [put]
func (h *BomHandler) UpdateEdge(c *gin.Context) {
	var req dto.BomEdgeRequest
	if !bindAndValidate(c, &req) {
		return
	}
	productID, _ := uuid.Parse(req.ProductID)
	supplyID, _ := uuid.Parse(req.SupplyID)

	resp, err := h.svc.UpdateEdge(c.Request.Context(), productID, supplyID, req.RequiredAmount)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// RemoveEdge godoc
// @Summary      Remove a bill-of-materials requirement
// @Tags         bom
// @Produce      json
// @Param        product_id query string true "Product UUID"
// @Param        supply_id  query string true "Supply UUID"
// @Success      204
// @Failure      404 {object} apierror.APIError
// @Router       /v1/bom [delete]
func (h *BomHandler) RemoveEdge(c *gin.Context) {
	productID, supplyID, ok := h.pairFromQuery(c)
	if !ok {
		return
	}
	if err := h.svc.RemoveEdge(c.Request.Context(), productID, supplyID); err != nil {
		respondErr(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// RequiredSupplies godoc
// @Summary      Supplies required to build a quantity of a product
// @Tags         bom
// @Produce      json
// @Param        product_id query string true "Product UUID"
// @Param        quantity   query int    true "Units to build"
// @Success      200 {array} dto.RequiredSupplyResponse
// @Router       /v1/bom/required [get]
func (h *BomHandler) RequiredSupplies(c *gin.Context) {
	productID, qty, ok := h.productQtyFromQuery(c)
	if !ok {
		return
	}
	resp, err := h.svc.RequiredFor(c.Request.Context(), productID, qty)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// CheckAvailability godoc
// @Summary      Check whether supply stock covers a production quantity
// @Description  Point-in-time answer; consumption re-validates under row locks.
// @Tags         bom
// @Produce      json
// @Param        product_id query string true "Product UUID"
// @Param        quantity   query int    true "Units to build"
// @Success      200 {object} dto.AvailabilityResponse
// @Router       /v1/bom/available [get]
func (h *BomHandler) CheckAvailability(c *gin.Context) {
	productID, qty, ok := h.productQtyFromQuery(c)
	if !ok {
		return
	}
	available, err := h.svc.IsAvailable(c.Request.Context(), productID, qty)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.AvailabilityResponse{
		ProductID: productID.String(),
		Quantity:  qty,
		Available: available,
	})
}

// Consume godoc
// @Summary      Consume supplies for a production order
// @Description  All-or-nothing: every required supply is locked and re-checked before any EXIT movement is written.
// @Tags         bom
// @Accept       json
// @Produce      json
// @Param        body body dto.ConsumeRequest true "Consumption"
// @Success      204
// @Failure      409 {object} apierror.APIError
// @Router       /v1/bom/consume [post]
func (h *BomHandler) Consume(c *gin.Context) {
	var req dto.ConsumeRequest
	if !bindAndValidate(c, &req) {
		return
	}
	productID, _ := uuid.Parse(req.ProductID)
	productionOrderID, _ := uuid.Parse(req.ProductionOrderID)

	if err := h.svc.Consume(c.Request.Context(), productID, req.Quantity, productionOrderID); err != nil {
		respondErr(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *BomHandler) pairFromQuery(c *gin.Context) (productID, supplyID uuid.UUID, ok bool) {
	productID, err := uuid.Parse(c.Query("product_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid product_id"))
		return uuid.Nil, uuid.Nil, false
	}
	supplyID, err = uuid.Parse(c.Query("supply_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid supply_id"))
		return uuid.Nil, uuid.Nil, false
	}
	return productID, supplyID, true
}

func (h *BomHandler) productQtyFromQuery(c *gin.Context) (uuid.UUID, int, bool) {
	productID, err := uuid.Parse(c.Query("product_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid product_id"))
		return uuid.Nil, 0, false
	}
	qty, err := strconv.Atoi(c.Query("quantity"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid quantity"))
		return uuid.Nil, 0, false
	}
	return productID, qty, true
}
