package repository

import (
	"context"

	"github.com/MarceloCamachh/tecnoWebEmail/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type PaymentRepository interface {
	CreateTx(tx *gorm.DB, p *model.Payment) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Payment, error)
	FindByOrder(ctx context.Context, orderID uuid.UUID) ([]model.Payment, error)
	FindByInstallment(ctx context.Context, installmentID uuid.UUID) ([]model.Payment, error)
	// SumByOrderTx re-derives the total paid from the ledger inside the
	// payment transaction. Never incremented — always recomputed.
	SumByOrderTx(tx *gorm.DB, orderID uuid.UUID) (decimal.Decimal, error)
	DB() *gorm.DB
}

type paymentRepo struct{ db *gorm.DB }

func NewPaymentRepository(db *gorm.DB) PaymentRepository { return &paymentRepo{db: db} }

func (r *paymentRepo) DB() *gorm.DB { return r.db }

func (r *paymentRepo) CreateTx(tx *gorm.DB, p *model.Payment) error {
	return tx.Create(p).Error
}

func (r *paymentRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Payment, error) {
	var p model.Payment
	err := r.db.WithContext(ctx).Preload("Installment").First(&p, "id = ?", id).Error
	return &p, err
}

func (r *paymentRepo) FindByOrder(ctx context.Context, orderID uuid.UUID) ([]model.Payment, error) {
	var payments []model.Payment
	err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID).Order("paid_at ASC").Find(&payments).Error
	return payments, err
}

func (r *paymentRepo) FindByInstallment(ctx context.Context, installmentID uuid.UUID) ([]model.Payment, error) {
	var payments []model.Payment
	err := r.db.WithContext(ctx).
		Where("installment_id = ?", installmentID).Order("paid_at ASC").Find(&payments).Error
	return payments, err
}

func (r *paymentRepo) SumByOrderTx(tx *gorm.DB, orderID uuid.UUID) (decimal.Decimal, error) {
	var total decimal.NullDecimal
	err := tx.Model(&model.Payment{}).
		Where("order_id = ?", orderID).
		Select("COALESCE(SUM(amount), 0)").Scan(&total).Error
	if err != nil {
		return decimal.Zero, err
	}
	if !total.Valid {
		return decimal.Zero, nil
	}
	return total.Decimal, nil
}
