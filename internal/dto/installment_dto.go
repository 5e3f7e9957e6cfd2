package dto

import "github.com/shopspring/decimal"

type InstallmentResponse struct {
	ID         string          `json:"id"`
	OrderID    string          `json:"order_id"`
	Number     int             `json:"number"`
	Amount     decimal.Decimal `json:"amount"`
	DueDate    string          `json:"due_date"`
	AmountPaid decimal.Decimal `json:"amount_paid"`
	State      string          `json:"state"`
}

type InstallmentFilter struct {
	State   string `form:"state"`
	Overdue bool   `form:"overdue"`
}
