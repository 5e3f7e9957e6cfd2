package repository

import (
	"context"
	"time"

	"github.com/MarceloCamachh/tecnoWebEmail/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type InstallmentRepository interface {
	// CreateBatchTx writes the full installment set in one insert — partial
	// sets are never visible.
	CreateBatchTx(tx *gorm.DB, installments []model.Installment) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Installment, error)
	FindByIDForUpdateTx(tx *gorm.DB, id uuid.UUID) (*model.Installment, error)
	SaveTx(tx *gorm.DB, i *model.Installment) error
	FindByOrder(ctx context.Context, orderID uuid.UUID) ([]model.Installment, error)
	FindByState(ctx context.Context, state string) ([]model.Installment, error)
	FindOverdue(ctx context.Context, asOf time.Time) ([]model.Installment, error)
}

type installmentRepo struct{ db *gorm.DB }

func NewInstallmentRepository(db *gorm.DB) InstallmentRepository { return &installmentRepo{db: db} }

func (r *installmentRepo) CreateBatchTx(tx *gorm.DB, installments []model.Installment) error {
	return tx.Create(&installments).Error
}

func (r *installmentRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Installment, error) {
	var i model.Installment
	err := r.db.WithContext(ctx).First(&i, "id = ?", id).Error
	return &i, err
}

func (r *installmentRepo) FindByIDForUpdateTx(tx *gorm.DB, id uuid.UUID) (*model.Installment, error) {
	var i model.Installment
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&i, "id = ?", id).Error
	return &i, err
}

func (r *installmentRepo) SaveTx(tx *gorm.DB, i *model.Installment) error {
	return tx.Save(i).Error
}

func (r *installmentRepo) FindByOrder(ctx context.Context, orderID uuid.UUID) ([]model.Installment, error) {
	var installments []model.Installment
	err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID).Order("number ASC").Find(&installments).Error
	return installments, err
}

func (r *installmentRepo) FindByState(ctx context.Context, state string) ([]model.Installment, error) {
	var installments []model.Installment
	err := r.db.WithContext(ctx).
		Where("state = ?", state).Order("due_date ASC").Find(&installments).Error
	return installments, err
}

// FindOverdue returns unpaid installments whose due date has passed.
func (r *installmentRepo) FindOverdue(ctx context.Context, asOf time.Time) ([]model.Installment, error) {
	var installments []model.Installment
	err := r.db.WithContext(ctx).
		Where("due_date < ? AND state <> ?", asOf, model.PaymentStatePaid).
		Order("due_date ASC").Find(&installments).Error
	return installments, err
}
