package handler

import (
	"net/http"

	"github.com/MarceloCamachh/tecnoWebEmail/internal/apierror"
	"github.com/MarceloCamachh/tecnoWebEmail/internal/dto"
	"github.com/MarceloCamachh/tecnoWebEmail/internal/service"

	"github.com/gin-gonic/gin"
)

type SuppliesHandler struct {
	svc service.SupplyService
}

func NewSuppliesHandler(svc service.SupplyService) *SuppliesHandler {
	return &SuppliesHandler{svc: svc}
}

// CreateSupply godoc
// @Summary      Create a supply
// @Tags         supplies
// @Accept       json
// @Produce      json
// @Param        body body dto.CreateSupplyRequest true "Supply"
// @Success      201  {object} dto.SupplyResponse
// @Failure      409  {object} apierror.APIError
// @Router       /v1/supplies [post]
func (h *SuppliesHandler) CreateSupply(c *gin.Context) {
	var req dto.CreateSupplyRequest
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

// GetSupply godoc
// @Summary      Get one supply
// @Tags         supplies
// @Produce      json
// @Param        id path string true "Supply UUID"
// @Success      200 {object} dto.SupplyResponse
// @Failure      404 {object} apierror.APIError
// @Router       /v1/supplies/{id} [get]
func (h *SuppliesHandler) GetSupply(c *gin.Context) {
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

// ListSupplies godoc
// @Summary      List supplies
// @Tags         supplies
// @Produce      json
// @Param        name  query string false "Name filter (substring)"
// @Param        page  query int    false "Page (default 1)"
// @Param        limit query int    false "Rows per page (default 20)"
// @Success      200 {array} dto.SupplyResponse
// @Router       /v1/supplies [get]
func (h *SuppliesHandler) ListSupplies(c *gin.Context) {
	var filter dto.CatalogFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	supplies, total, err := h.svc.List(c.Request.Context(), filter)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": supplies, "total": total})
}

// RegisterSupplyMovement godoc
// @Summary      Register a supply stock movement
// @Description  ENTRY adds, EXIT subtracts (409 when stock is short), ADJUSTMENT sets the balance.
// @Tags         supplies
// @Accept       json
// @Produce      json
// @Param        id   path string true "Supply UUID"
// @Param        body body dto.RegisterMovementRequest true "Movement"
// @Success      201  {object} dto.SupplyMovementResponse
// @Failure      409  {object} apierror.APIError
// @Router       /v1/supplies/{id}/movements [post]
func (h *SuppliesHandler) RegisterSupplyMovement(c *gin.Context) {
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

// ListSupplyMovements godoc
// @Summary      Movement history of a supply
// @Tags         supplies
// @Produce      json
// @Param        id path string true "Supply UUID"
// @Success      200 {array} dto.SupplyMovementResponse
// @Router       /v1/supplies/{id}/movements [get]
func (h *SuppliesHandler) ListSupplyMovements(c *gin.Context) {
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
