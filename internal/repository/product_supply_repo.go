package repository

import (
	"context"

	"github.com/MarceloCamachh/tecnoWebEmail/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProductSupplyRepository is the access layer for bill-of-materials edges.
type ProductSupplyRepository interface {
	Create(ctx context.Context, ps *model.ProductSupply) error
	Update(ctx context.Context, ps *model.ProductSupply) error
	FindByPair(ctx context.Context, productID, supplyID uuid.UUID) (*model.ProductSupply, error)
	FindByProduct(ctx context.Context, productID uuid.UUID) ([]model.ProductSupply, error)
	FindBySupply(ctx context.Context, supplyID uuid.UUID) ([]model.ProductSupply, error)
	// DeleteByPair reports the number of rows removed so the caller can
	// distinguish a missing edge.
	DeleteByPair(ctx context.Context, productID, supplyID uuid.UUID) (int64, error)
}

type productSupplyRepo struct{ db *gorm.DB }

func NewProductSupplyRepository(db *gorm.DB) ProductSupplyRepository {
	return &productSupplyRepo{db: db}
}

func (r *productSupplyRepo) Create(ctx context.Context, ps *model.ProductSupply) error {
	return r.db.WithContext(ctx).Create(ps).Error
}

func (r *productSupplyRepo) Update(ctx context.Context, ps *model.ProductSupply) error {
	return r.db.WithContext(ctx).Save(ps).Error
}

func (r *productSupplyRepo) FindByPair(ctx context.Context, productID, supplyID uuid.UUID) (*model.ProductSupply, error) {
	var ps model.ProductSupply
	err := r.db.WithContext(ctx).
		Where("product_id = ? AND supply_id = ?", productID, supplyID).First(&ps).Error
	return &ps, err
}

func (r *productSupplyRepo) FindByProduct(ctx context.Context, productID uuid.UUID) ([]model.ProductSupply, error) {
	var edges []model.ProductSupply
	err := r.db.WithContext(ctx).Preload("Supply").
		Where("product_id = ?", productID).Find(&edges).Error
	return edges, err
}

func (r *productSupplyRepo) FindBySupply(ctx context.Context, supplyID uuid.UUID) ([]model.ProductSupply, error) {
	var edges []model.ProductSupply
	err := r.db.WithContext(ctx).Preload("Product").
		Where("supply_id = ?", supplyID).Find(&edges).Error
	return edges, err
}

func (r *productSupplyRepo) DeleteByPair(ctx context.Context, productID, supplyID uuid.UUID) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("product_id = ? AND supply_id = ?", productID, supplyID).
		Delete(&model.ProductSupply{})
	return res.RowsAffected, res.Error
}
