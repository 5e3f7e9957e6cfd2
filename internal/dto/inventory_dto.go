package dto

import "github.com/shopspring/decimal"

// RegisterMovementRequest drives both stock ledgers. Quantity is the movement
// amount for ENTRY/EXIT and the new absolute balance for ADJUSTMENT, so the
// per-type sign rules live in the services.
type RegisterMovementRequest struct {
	Type        string          `json:"type" binding:"required" validate:"required,oneof=ENTRY EXIT ADJUSTMENT"`
	Quantity    decimal.Decimal `json:"quantity" validate:"required"`
	Reason      string          `json:"reason"`
	ReferenceID *string         `json:"reference_id,omitempty" validate:"omitempty,uuid4"`
}

type SupplyMovementResponse struct {
	ID          string          `json:"id"`
	SupplyID    string          `json:"supply_id"`
	Type        string          `json:"type"`
	Quantity    decimal.Decimal `json:"quantity"`
	StockBefore decimal.Decimal `json:"stock_before"`
	StockAfter  decimal.Decimal `json:"stock_after"`
	Reason      string          `json:"reason,omitempty"`
	ReferenceID *string         `json:"reference_id,omitempty"`
	CreatedAt   string          `json:"created_at"`
}

type ProductMovementResponse struct {
	ID          string  `json:"id"`
	ProductID   string  `json:"product_id"`
	Type        string  `json:"type"`
	Quantity    int     `json:"quantity"`
	StockBefore int     `json:"stock_before"`
	StockAfter  int     `json:"stock_after"`
	Reason      string  `json:"reason,omitempty"`
	ReferenceID *string `json:"reference_id,omitempty"`
	CreatedAt   string  `json:"created_at"`
}
