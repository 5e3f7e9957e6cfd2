package repository

import (
	"context"

	"github.com/MarceloCamachh/tecnoWebEmail/internal/dto"
	"github.com/MarceloCamachh/tecnoWebEmail/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// OrderRepository defines the data access contract for orders and their detail
// lines. Services depend on this interface, not on the concrete GORM
// implementation, enabling clean unit testing via stubs.
type OrderRepository interface {
	Create(ctx context.Context, o *model.Order) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Order, error)
	FindByIDWithAll(ctx context.Context, id uuid.UUID) (*model.Order, error)
	List(ctx context.Context, filter dto.OrderFilter) ([]model.Order, int64, error)

	// Used inside transactions — callers pass the live tx (nil in unit tests).
	FindByIDForUpdateTx(tx *gorm.DB, id uuid.UUID) (*model.Order, error)
	SaveTx(tx *gorm.DB, o *model.Order) error

	CreateDetailTx(tx *gorm.DB, d *model.OrderDetail) error
	FindDetailByID(ctx context.Context, id uuid.UUID) (*model.OrderDetail, error)
	FindDetailsByOrderTx(tx *gorm.DB, orderID uuid.UUID) ([]model.OrderDetail, error)
	FindDetailsByOrder(ctx context.Context, orderID uuid.UUID) ([]model.OrderDetail, error)

	// DB exposes the underlying *gorm.DB so services can open transactions.
	DB() *gorm.DB
}

type orderRepo struct{ db *gorm.DB }

func NewOrderRepository(db *gorm.DB) OrderRepository { return &orderRepo{db: db} }

func (r *orderRepo) DB() *gorm.DB { return r.db }

func (r *orderRepo) Create(ctx context.Context, o *model.Order) error {
	return r.db.WithContext(ctx).Create(o).Error
}

func (r *orderRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Order, error) {
	var o model.Order
	err := r.db.WithContext(ctx).First(&o, "id = ?", id).Error
	return &o, err
}

func (r *orderRepo) FindByIDWithAll(ctx context.Context, id uuid.UUID) (*model.Order, error) {
	var o model.Order
	err := r.db.WithContext(ctx).
		Preload("Client").
		Preload("Details.Product").
		Preload("Installments").
		Preload("Payments").
		First(&o, "id = ?", id).Error
	return &o, err
}

// FindByIDForUpdateTx locks the order row for the duration of the transaction.
// Payment recompute and confirmation read-modify-write cycles run under this
// lock so concurrent writers on the same order serialize.
func (r *orderRepo) FindByIDForUpdateTx(tx *gorm.DB, id uuid.UUID) (*model.Order, error) {
	var o model.Order
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&o, "id = ?", id).Error
	return &o, err
}

func (r *orderRepo) SaveTx(tx *gorm.DB, o *model.Order) error {
	return tx.Save(o).Error
}

func (r *orderRepo) CreateDetailTx(tx *gorm.DB, d *model.OrderDetail) error {
	return tx.Create(d).Error
}

func (r *orderRepo) FindDetailByID(ctx context.Context, id uuid.UUID) (*model.OrderDetail, error) {
	var d model.OrderDetail
	err := r.db.WithContext(ctx).Preload("Product").First(&d, "id = ?", id).Error
	return &d, err
}

func (r *orderRepo) FindDetailsByOrderTx(tx *gorm.DB, orderID uuid.UUID) ([]model.OrderDetail, error) {
	var details []model.OrderDetail
	err := tx.Where("order_id = ?", orderID).Order("created_at ASC").Find(&details).Error
	return details, err
}

func (r *orderRepo) FindDetailsByOrder(ctx context.Context, orderID uuid.UUID) ([]model.OrderDetail, error) {
	var details []model.OrderDetail
	err := r.db.WithContext(ctx).Preload("Product").
		Where("order_id = ?", orderID).Order("created_at ASC").Find(&details).Error
	return details, err
}

func (r *orderRepo) List(ctx context.Context, filter dto.OrderFilter) ([]model.Order, int64, error) {
	var orders []model.Order
	var total int64

	q := r.db.WithContext(ctx).Model(&model.Order{})

	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.PaymentState != "" {
		q = q.Where("payment_state = ?", filter.PaymentState)
	}
	if filter.ClientID != "" {
		q = q.Where("client_id = ?", filter.ClientID)
	}
	if filter.From != "" {
		q = q.Where("created_at >= ?", filter.From)
	}
	if filter.To != "" {
		q = q.Where("created_at <= ?", filter.To)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	err := q.Preload("Client").
		Order("created_at DESC").Limit(filter.Limit).Offset(offset).
		Find(&orders).Error
	return orders, total, err
}
