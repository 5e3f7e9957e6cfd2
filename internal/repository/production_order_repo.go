package repository

import (
	"context"

	"github.com/MarceloCamachh/tecnoWebEmail/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProductionOrderRepository interface {
	Create(ctx context.Context, po *model.ProductionOrder) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.ProductionOrder, error)
	FindByDetail(ctx context.Context, orderDetailID uuid.UUID) (*model.ProductionOrder, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) error
	List(ctx context.Context, status string) ([]model.ProductionOrder, error)
}

type productionOrderRepo struct{ db *gorm.DB }

func NewProductionOrderRepository(db *gorm.DB) ProductionOrderRepository {
	return &productionOrderRepo{db: db}
}

func (r *productionOrderRepo) Create(ctx context.Context, po *model.ProductionOrder) error {
	return r.db.WithContext(ctx).Create(po).Error
}

func (r *productionOrderRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.ProductionOrder, error) {
	var po model.ProductionOrder
	err := r.db.WithContext(ctx).Preload("OrderDetail.Product").First(&po, "id = ?", id).Error
	return &po, err
}

func (r *productionOrderRepo) FindByDetail(ctx context.Context, orderDetailID uuid.UUID) (*model.ProductionOrder, error) {
	var po model.ProductionOrder
	err := r.db.WithContext(ctx).Where("order_detail_id = ?", orderDetailID).First(&po).Error
	return &po, err
}

func (r *productionOrderRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	return r.db.WithContext(ctx).Model(&model.ProductionOrder{}).
		Where("id = ?", id).Update("status", status).Error
}

func (r *productionOrderRepo) List(ctx context.Context, status string) ([]model.ProductionOrder, error) {
	var orders []model.ProductionOrder
	q := r.db.WithContext(ctx).Preload("OrderDetail.Product")
	if status != "" {
		q = q.Where("status = ?", status)
	}
	err := q.Order("created_at DESC").Find(&orders).Error
	return orders, err
}
