package handler

import (
	"net/http"

	"github.com/MarceloCamachh/tecnoWebEmail/internal/apierror"
	"github.com/MarceloCamachh/tecnoWebEmail/internal/dto"
	"github.com/MarceloCamachh/tecnoWebEmail/internal/service"

	"github.com/gin-gonic/gin"
)

type PaymentsHandler struct {
	svc          service.PaymentService
	installments service.InstallmentService
}

func NewPaymentsHandler(svc service.PaymentService, installments service.InstallmentService) *PaymentsHandler {
	return &PaymentsHandler{svc: svc, installments: installments}
}

// RecordPayment godoc
// @Summary      Record a payment
// @Description  Appends an immutable payment, re-derives the order's amount paid from the ledger and updates payment states. An optional installment target must belong to the same order.
// @Tags         payments
// @Accept       json
// @Produce      json
// @Param        body body dto.RecordPaymentRequest true "Payment"
// @Success      201  {object} dto.PaymentResponse
// @Failure      422  {object} apierror.APIError
// @Router       /v1/payments [post]
func (h *PaymentsHandler) RecordPayment(c *gin.Context) {
	var req dto.RecordPaymentRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Record(c.Request.Context(), req)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// GetPayment godoc
// @Summary      Get one payment
// @Tags         payments
// @Produce      json
// @Param        id path string true "Payment UUID"
// @Success      200 {object} dto.PaymentResponse
// @Failure      404 {object} apierror.APIError
// @Router       /v1/payments/{id} [get]
func (h *PaymentsHandler) GetPayment(c *gin.Context) {
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

// ListInstallments godoc
// @Summary      List installments
// @Description  Filter by state or overdue=true (due date past and not Paid).
// @Tags         payments
// @Produce      json
// @Param        state   query string false "Pending | Partial | Paid"
// @Param        overdue query bool   false "Only overdue installments"
// @Success      200 {array} dto.InstallmentResponse
// @Router       /v1/installments [get]
func (h *PaymentsHandler) ListInstallments(c *gin.Context) {
	var filter dto.InstallmentFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}

	var (
		resp []dto.InstallmentResponse
		err  error
	)
	switch {
	case filter.Overdue:
		resp, err = h.installments.ListOverdue(c.Request.Context())
	case filter.State != "":
		resp, err = h.installments.ListByState(c.Request.Context(), filter.State)
	default:
		resp, err = h.installments.ListByState(c.Request.Context(), "Pending")
	}
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
