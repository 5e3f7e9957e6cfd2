package handler

import (
	"net/http"

	"github.com/MarceloCamachh/tecnoWebEmail/internal/apierror"
	"github.com/MarceloCamachh/tecnoWebEmail/internal/dto"
	"github.com/MarceloCamachh/tecnoWebEmail/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type OrdersHandler struct {
	svc          service.OrderService
	payments     service.PaymentService
	installments service.InstallmentService
}

func NewOrdersHandler(svc service.OrderService, payments service.PaymentService, installments service.InstallmentService) *OrdersHandler {
	return &OrdersHandler{svc: svc, payments: payments, installments: installments}
}

// CreateOrder godoc
// @Summary      Create an order header
// @Description  Creates a Draft order for a client with a Cash or Credit payment condition.
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        body body dto.CreateOrderRequest true "Order header"
// @Success      201  {object} dto.OrderResponse
// @Failure      400  {object} apierror.APIError
// @Router       /v1/orders [post]
func (h *OrdersHandler) CreateOrder(c *gin.Context) {
	var req dto.CreateOrderRequest
	if !bindAndValidate(c, &req) {
		return
	}
	clientID, _ := uuid.Parse(req.ClientID)
	userID, _ := uuid.Parse(req.UserID)

	resp, err := h.svc.CreateHeader(c.Request.Context(), clientID, userID, req.PaymentCondition)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// AddDetail godoc
// @Summary      Add a line to a draft order
// @Description  Snapshots the product's current price and recomputes the order total.
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        id   path string true "Order UUID"
// @Param        body body dto.AddDetailRequest true "Order line"
// @Success      201  {object} dto.OrderDetailResponse
// @Failure      422  {object} apierror.APIError
// @Router       /v1/orders/{id}/details [post]
func (h *OrdersHandler) AddDetail(c *gin.Context) {
	orderID, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	var req dto.AddDetailRequest
	if !bindAndValidate(c, &req) {
		return
	}
	productID, _ := uuid.Parse(req.ProductID)

	resp, err := h.svc.AddDetail(c.Request.Context(), orderID, productID, req.Quantity)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// ConfirmOrder godoc
// @Summary      Confirm an order
// @Description  Moves the order Draft→Pending; Credit orders get their installment schedule in the same transaction.
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        id   path string true "Order UUID"
// @Param        body body dto.ConfirmOrderRequest false "Installment count for Credit orders"
// @Success      200  {object} dto.OrderResponse
// @Failure      422  {object} apierror.APIError
// @Router       /v1/orders/{id}/confirm [post]
func (h *OrdersHandler) ConfirmOrder(c *gin.Context) {
	orderID, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	var req dto.ConfirmOrderRequest
	if c.Request.ContentLength > 0 && !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Confirm(c.Request.Context(), orderID, req.Installments)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GetOrder godoc
// @Summary      Get one order
// @Tags         orders
// @Produce      json
// @Param        id path string true "Order UUID"
// @Success      200 {object} dto.OrderResponse
// @Failure      404 {object} apierror.APIError
// @Router       /v1/orders/{id} [get]
func (h *OrdersHandler) GetOrder(c *gin.Context) {
	orderID, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	resp, err := h.svc.Get(c.Request.Context(), orderID)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ListOrders godoc
// @Summary      List orders
// @Tags         orders
// @Produce      json
// @Param        status        query string false "Order status"
// @Param        payment_state query string false "Pending | Partial | Paid"
// @Param        client_id     query string false "Client UUID"
// @Param        page          query int    false "Page (default 1)"
// @Param        limit         query int    false "Rows per page (default 20)"
// @Success      200 {object} dto.OrderListResponse
// @Router       /v1/orders [get]
func (h *OrdersHandler) ListOrders(c *gin.Context) {
	var filter dto.OrderFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	resp, err := h.svc.List(c.Request.Context(), filter)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ListOrderDetails godoc
// @Summary      List the lines of an order
// @Tags         orders
// @Produce      json
// @Param        id path string true "Order UUID"
// @Success      200 {array} dto.OrderDetailResponse
// @Router       /v1/orders/{id}/details [get]
func (h *OrdersHandler) ListOrderDetails(c *gin.Context) {
	orderID, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	resp, err := h.svc.ListDetails(c.Request.Context(), orderID)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ListOrderInstallments godoc
// @Summary      Installment schedule of an order
// @Tags         orders
// @Produce      json
// @Param        id path string true "Order UUID"
// @Success      200 {array} dto.InstallmentResponse
// @Router       /v1/orders/{id}/installments [get]
func (h *OrdersHandler) ListOrderInstallments(c *gin.Context) {
	orderID, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	resp, err := h.installments.ListByOrder(c.Request.Context(), orderID)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ListOrderPayments godoc
// @Summary      Payments recorded against an order
// @Tags         orders
// @Produce      json
// @Param        id path string true "Order UUID"
// @Success      200 {array} dto.PaymentResponse
// @Router       /v1/orders/{id}/payments [get]
func (h *OrdersHandler) ListOrderPayments(c *gin.Context) {
	orderID, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	resp, err := h.payments.ListByOrder(c.Request.Context(), orderID)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
