package dto

import "github.com/shopspring/decimal"

type CreateOrderRequest struct {
	ClientID         string `json:"client_id" binding:"required" validate:"required,uuid4"`
	UserID           string `json:"user_id" binding:"required" validate:"required,uuid4"`
	PaymentCondition string `json:"payment_condition" binding:"required" validate:"required,oneof=Cash Credit"`
}

type AddDetailRequest struct {
	ProductID string `json:"product_id" binding:"required" validate:"required,uuid4"`
	Quantity  int    `json:"quantity" binding:"required" validate:"required,gt=0"`
}

type ConfirmOrderRequest struct {
	// Installments is ignored for Cash orders; required > 0 for Credit.
	Installments int `json:"installments" validate:"min=0"`
}

type OrderDetailResponse struct {
	ID        string          `json:"id"`
	ProductID string          `json:"product_id"`
	Product   string          `json:"product,omitempty"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	LineTotal decimal.Decimal `json:"line_total"`
}

type OrderResponse struct {
	ID               string                `json:"id"`
	Status           string                `json:"status"`
	PaymentCondition string                `json:"payment_condition"`
	TotalAmount      decimal.Decimal       `json:"total_amount"`
	AmountPaid       decimal.Decimal       `json:"amount_paid"`
	PaymentState     string                `json:"payment_state"`
	ClientID         string                `json:"client_id"`
	Client           string                `json:"client,omitempty"`
	UserID           string                `json:"user_id"`
	Details          []OrderDetailResponse `json:"details,omitempty"`
	Installments     []InstallmentResponse `json:"installments,omitempty"`
	CreatedAt        string                `json:"created_at"`
}

type OrderFilter struct {
	Status       string `form:"status"`
	PaymentState string `form:"payment_state"`
	ClientID     string `form:"client_id"`
	From         string `form:"from"`
	To           string `form:"to"`
	Page         int    `form:"page"`
	Limit        int    `form:"limit"`
}

type OrderListResponse struct {
	Data  []OrderResponse `json:"data"`
	Total int64           `json:"total"`
	Page  int             `json:"page"`
	Limit int             `json:"limit"`
}
