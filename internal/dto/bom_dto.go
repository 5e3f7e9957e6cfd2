package dto

import "github.com/shopspring/decimal"

type BomEdgeRequest struct {
	ProductID      string          `json:"product_id" binding:"required" validate:"required,uuid4"`
	SupplyID       string          `json:"supply_id" binding:"required" validate:"required,uuid4"`
	RequiredAmount decimal.Decimal `json:"required_amount" binding:"required" validate:"required,gt=0"`
}

type BomEdgeResponse struct {
	ProductID      string          `json:"product_id"`
	SupplyID       string          `json:"supply_id"`
	Supply         string          `json:"supply,omitempty"`
	RequiredAmount decimal.Decimal `json:"required_amount"`
}

type RequiredSupplyResponse struct {
	SupplyID string          `json:"supply_id"`
	Supply   string          `json:"supply"`
	Required decimal.Decimal `json:"required"`
	InStock  decimal.Decimal `json:"in_stock"`
}

type AvailabilityResponse struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
	Available bool   `json:"available"`
}

type ConsumeRequest struct {
	ProductID         string `json:"product_id" binding:"required" validate:"required,uuid4"`
	Quantity          int    `json:"quantity" binding:"required" validate:"required,gt=0"`
	ProductionOrderID string `json:"production_order_id" binding:"required" validate:"required,uuid4"`
}
