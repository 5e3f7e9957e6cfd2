package dto

import "github.com/shopspring/decimal"

type CreateProductRequest struct {
	SKU         string          `json:"sku" binding:"required" validate:"required"`
	Name        string          `json:"name" binding:"required" validate:"required"`
	Description *string         `json:"description,omitempty"`
	SalePrice   decimal.Decimal `json:"sale_price" binding:"required" validate:"required,gt=0"`
	Stock       int             `json:"stock" validate:"min=0"`
}

type ProductResponse struct {
	ID          string          `json:"id"`
	SKU         string          `json:"sku"`
	Name        string          `json:"name"`
	Description *string         `json:"description,omitempty"`
	SalePrice   decimal.Decimal `json:"sale_price"`
	Stock       int             `json:"stock"`
}

type CreateSupplyRequest struct {
	Name        string          `json:"name" binding:"required" validate:"required"`
	Description *string         `json:"description,omitempty"`
	UnitMeasure string          `json:"unit_measure"`
	Stock       decimal.Decimal `json:"stock" validate:"min=0"`
}

type SupplyResponse struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description *string         `json:"description,omitempty"`
	UnitMeasure string          `json:"unit_measure"`
	Stock       decimal.Decimal `json:"stock"`
}

type CreateClientRequest struct {
	CI      string  `json:"ci" binding:"required" validate:"required"`
	Name    string  `json:"name" binding:"required" validate:"required"`
	Email   string  `json:"email" validate:"omitempty,email"`
	Phone   string  `json:"phone"`
	Address *string `json:"address,omitempty"`
}

type ClientResponse struct {
	ID    string `json:"id"`
	CI    string `json:"ci"`
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
	Phone string `json:"phone,omitempty"`
}

type CreateUserRequest struct {
	CI    string `json:"ci" binding:"required" validate:"required"`
	Name  string `json:"name" binding:"required" validate:"required"`
	Email string `json:"email" validate:"omitempty,email"`
	Role  string `json:"role"`
}

type UserResponse struct {
	ID   string `json:"id"`
	CI   string `json:"ci"`
	Name string `json:"name"`
	Role string `json:"role"`
}

type CatalogFilter struct {
	Name  string `form:"name"`
	Page  int    `form:"page"`
	Limit int    `form:"limit"`
}

type PriceResponse struct {
	SKU       string          `json:"sku"`
	Name      string          `json:"name"`
	SalePrice decimal.Decimal `json:"sale_price"`
	Cached    bool            `json:"cached"`
}
