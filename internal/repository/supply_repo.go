package repository

import (
	"context"

	"github.com/MarceloCamachh/tecnoWebEmail/internal/dto"
	"github.com/MarceloCamachh/tecnoWebEmail/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SupplyRepository interface {
	Create(ctx context.Context, s *model.Supply) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Supply, error)
	FindByName(ctx context.Context, name string) (*model.Supply, error)
	List(ctx context.Context, filter dto.CatalogFilter) ([]model.Supply, int64, error)
	Update(ctx context.Context, s *model.Supply) error
	Delete(ctx context.Context, id uuid.UUID) error

	// Stock ledger. FindByIDForUpdateTx takes a row lock so the availability
	// check and the balance write of a consumption are a single critical
	// section per supply.
	FindByIDForUpdateTx(tx *gorm.DB, id uuid.UUID) (*model.Supply, error)
	SaveTx(tx *gorm.DB, s *model.Supply) error
	CreateMovementTx(tx *gorm.DB, m *model.SupplyMovement) error
	ListMovements(ctx context.Context, supplyID uuid.UUID) ([]model.SupplyMovement, error)
	ListMovementsByReference(ctx context.Context, referenceID uuid.UUID) ([]model.SupplyMovement, error)

	DB() *gorm.DB
}

type supplyRepo struct{ db *gorm.DB }

func NewSupplyRepository(db *gorm.DB) SupplyRepository { return &supplyRepo{db: db} }

func (r *supplyRepo) DB() *gorm.DB { return r.db }

func (r *supplyRepo) Create(ctx context.Context, s *model.Supply) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *supplyRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Supply, error) {
	var s model.Supply
	err := r.db.WithContext(ctx).First(&s, "id = ?", id).Error
	return &s, err
}

func (r *supplyRepo) FindByName(ctx context.Context, name string) (*model.Supply, error) {
	var s model.Supply
	err := r.db.WithContext(ctx).Where("name = ?", name).First(&s).Error
	return &s, err
}

func (r *supplyRepo) List(ctx context.Context, filter dto.CatalogFilter) ([]model.Supply, int64, error) {
	var supplies []model.Supply
	var total int64

	q := r.db.WithContext(ctx).Model(&model.Supply{})
	if filter.Name != "" {
		q = q.Where("name ILIKE ?", "%"+filter.Name+"%")
	}
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	offset := (filter.Page - 1) * filter.Limit
	err := q.Order("name ASC").Limit(filter.Limit).Offset(offset).Find(&supplies).Error
	return supplies, total, err
}

func (r *supplyRepo) Update(ctx context.Context, s *model.Supply) error {
	return r.db.WithContext(ctx).Save(s).Error
}

func (r *supplyRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Supply{}, "id = ?", id).Error
}

func (r *supplyRepo) FindByIDForUpdateTx(tx *gorm.DB, id uuid.UUID) (*model.Supply, error) {
	var s model.Supply
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&s, "id = ?", id).Error
	return &s, err
}

func (r *supplyRepo) SaveTx(tx *gorm.DB, s *model.Supply) error {
	return tx.Save(s).Error
}

func (r *supplyRepo) CreateMovementTx(tx *gorm.DB, m *model.SupplyMovement) error {
	return tx.Create(m).Error
}

func (r *supplyRepo) ListMovements(ctx context.Context, supplyID uuid.UUID) ([]model.SupplyMovement, error) {
	var movements []model.SupplyMovement
	err := r.db.WithContext(ctx).
		Where("supply_id = ?", supplyID).Order("created_at DESC").Find(&movements).Error
	return movements, err
}

func (r *supplyRepo) ListMovementsByReference(ctx context.Context, referenceID uuid.UUID) ([]model.SupplyMovement, error) {
	var movements []model.SupplyMovement
	err := r.db.WithContext(ctx).
		Where("reference_id = ?", referenceID).Order("created_at ASC").Find(&movements).Error
	return movements, err
}
