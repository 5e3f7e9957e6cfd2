package dto

type CreateProductionOrderRequest struct {
	OrderDetailID string `json:"order_detail_id" binding:"required" validate:"required,uuid4"`
	StartDate     string `json:"start_date" binding:"required" validate:"required,datetime=2006-01-02"`
	EstimatedDate string `json:"estimated_date" binding:"required" validate:"required,datetime=2006-01-02"`
}

type UpdateProductionStatusRequest struct {
	Status string `json:"status" binding:"required" validate:"required"`
}

type ProductionOrderResponse struct {
	ID            string `json:"id"`
	OrderDetailID string `json:"order_detail_id"`
	Product       string `json:"product,omitempty"`
	Quantity      int    `json:"quantity,omitempty"`
	Status        string `json:"status"`
	StartDate     string `json:"start_date"`
	EstimatedDate string `json:"estimated_date"`
}
