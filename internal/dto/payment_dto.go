package dto

import "github.com/shopspring/decimal"

type RecordPaymentRequest struct {
	OrderID       string          `json:"order_id" binding:"required" validate:"required,uuid4"`
	Amount        decimal.Decimal `json:"amount" binding:"required" validate:"required,gt=0"`
	PaymentType   string          `json:"payment_type" binding:"required" validate:"required"`
	InstallmentID *string         `json:"installment_id,omitempty" validate:"omitempty,uuid4"`
}

type PaymentResponse struct {
	ID            string          `json:"id"`
	OrderID       string          `json:"order_id"`
	InstallmentID *string         `json:"installment_id,omitempty"`
	Amount        decimal.Decimal `json:"amount"`
	PaymentType   string          `json:"payment_type"`
	PaidAt        string          `json:"paid_at"`

	// Derived states after this payment was applied.
	OrderPaymentState string  `json:"order_payment_state"`
	InstallmentState  *string `json:"installment_state,omitempty"`
}
